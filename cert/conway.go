package cert

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

// readOptionalAnchor reads a nullable anchor (used by committee and DRep
// certificates).
func readOptionalAnchor(r *cbor.CborReader) (*common.Anchor, error) {
	isNull, err := r.TryReadNull()
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	return common.AnchorFromCBOR(r)
}

func writeOptionalAnchor(w *cbor.CborWriter, a *common.Anchor) error {
	if a == nil {
		return w.WriteNull()
	}
	return a.ToCBOR(w)
}

// RegCert registers a stake credential with an explicit deposit amount
// (Conway-era replacement for StakeRegistration).
type RegCert struct {
	Credential *common.Credential
	Deposit    uint64
}

func (c *RegCert) Kind() Kind { return KindRegCert }

func regCertFromCBOR(r *cbor.CborReader) (*RegCert, error) {
	if err := cbor.ValidateArrayOfNElements("reg_cert", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("reg_cert", "type", r, uint64(KindRegCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	deposit, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("reg_cert", r); err != nil {
		return nil, err
	}
	return &RegCert{Credential: cred, Deposit: deposit}, nil
}

func (c *RegCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindRegCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteUint64(c.Deposit); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// UnregCert deregisters a stake credential, refunding its deposit.
type UnregCert struct {
	Credential *common.Credential
	Deposit    uint64
}

func (c *UnregCert) Kind() Kind { return KindUnregCert }

func unregCertFromCBOR(r *cbor.CborReader) (*UnregCert, error) {
	if err := cbor.ValidateArrayOfNElements("unreg_cert", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("unreg_cert", "type", r, uint64(KindUnregCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	deposit, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("unreg_cert", r); err != nil {
		return nil, err
	}
	return &UnregCert{Credential: cred, Deposit: deposit}, nil
}

func (c *UnregCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindUnregCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteUint64(c.Deposit); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// VoteDelegCert delegates a stake credential's governance vote to a DRep.
type VoteDelegCert struct {
	Credential *common.Credential
	DRep       *common.DRep
}

func (c *VoteDelegCert) Kind() Kind { return KindVoteDelegCert }

func voteDelegCertFromCBOR(r *cbor.CborReader) (*VoteDelegCert, error) {
	if err := cbor.ValidateArrayOfNElements("vote_deleg_cert", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("vote_deleg_cert", "type", r, uint64(KindVoteDelegCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	drep, err := common.DRepFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("vote_deleg_cert", r); err != nil {
		return nil, err
	}
	return &VoteDelegCert{Credential: cred, DRep: drep}, nil
}

func (c *VoteDelegCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindVoteDelegCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	return appendDRepAndClose(w, c.DRep)
}

func appendDRepAndClose(w *cbor.CborWriter, drep *common.DRep) error {
	if err := drep.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// StakeVoteDelegCert simultaneously delegates stake to a pool and
// governance vote to a DRep.
type StakeVoteDelegCert struct {
	Credential  *common.Credential
	PoolKeyHash [PoolKeyHashLen]byte
	DRep        *common.DRep
}

func (c *StakeVoteDelegCert) Kind() Kind { return KindStakeVoteDelegCert }

func stakeVoteDelegCertFromCBOR(r *cbor.CborReader) (*StakeVoteDelegCert, error) {
	if err := cbor.ValidateArrayOfNElements("stake_vote_deleg_cert", r, 4); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("stake_vote_deleg_cert", "type", r, uint64(KindStakeVoteDelegCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	pool, err := readPoolKeyHash(r)
	if err != nil {
		return nil, err
	}
	drep, err := common.DRepFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("stake_vote_deleg_cert", r); err != nil {
		return nil, err
	}
	return &StakeVoteDelegCert{Credential: cred, PoolKeyHash: pool, DRep: drep}, nil
}

func (c *StakeVoteDelegCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(4); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindStakeVoteDelegCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteByteString(c.PoolKeyHash[:]); err != nil {
		return err
	}
	return appendDRepAndClose(w, c.DRep)
}

// StakeRegDelegCert registers a stake credential (with deposit) and
// delegates its stake to a pool in one certificate.
type StakeRegDelegCert struct {
	Credential  *common.Credential
	PoolKeyHash [PoolKeyHashLen]byte
	Deposit     uint64
}

func (c *StakeRegDelegCert) Kind() Kind { return KindStakeRegDelegCert }

func stakeRegDelegCertFromCBOR(r *cbor.CborReader) (*StakeRegDelegCert, error) {
	if err := cbor.ValidateArrayOfNElements("stake_reg_deleg_cert", r, 4); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("stake_reg_deleg_cert", "type", r, uint64(KindStakeRegDelegCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	pool, err := readPoolKeyHash(r)
	if err != nil {
		return nil, err
	}
	deposit, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("stake_reg_deleg_cert", r); err != nil {
		return nil, err
	}
	return &StakeRegDelegCert{Credential: cred, PoolKeyHash: pool, Deposit: deposit}, nil
}

func (c *StakeRegDelegCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(4); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindStakeRegDelegCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteByteString(c.PoolKeyHash[:]); err != nil {
		return err
	}
	if err := w.WriteUint64(c.Deposit); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// VoteRegDelegCert registers a stake credential (with deposit) and
// delegates its vote to a DRep in one certificate.
type VoteRegDelegCert struct {
	Credential *common.Credential
	DRep       *common.DRep
	Deposit    uint64
}

func (c *VoteRegDelegCert) Kind() Kind { return KindVoteRegDelegCert }

func voteRegDelegCertFromCBOR(r *cbor.CborReader) (*VoteRegDelegCert, error) {
	if err := cbor.ValidateArrayOfNElements("vote_reg_deleg_cert", r, 4); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("vote_reg_deleg_cert", "type", r, uint64(KindVoteRegDelegCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	drep, err := common.DRepFromCBOR(r)
	if err != nil {
		return nil, err
	}
	deposit, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("vote_reg_deleg_cert", r); err != nil {
		return nil, err
	}
	return &VoteRegDelegCert{Credential: cred, DRep: drep, Deposit: deposit}, nil
}

func (c *VoteRegDelegCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(4); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindVoteRegDelegCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := c.DRep.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteUint64(c.Deposit); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// StakeVoteRegDelegCert registers a stake credential and simultaneously
// delegates both its stake (to a pool) and its vote (to a DRep).
type StakeVoteRegDelegCert struct {
	Credential  *common.Credential
	PoolKeyHash [PoolKeyHashLen]byte
	DRep        *common.DRep
	Deposit     uint64
}

func (c *StakeVoteRegDelegCert) Kind() Kind { return KindStakeVoteRegDelegCert }

func stakeVoteRegDelegCertFromCBOR(r *cbor.CborReader) (*StakeVoteRegDelegCert, error) {
	if err := cbor.ValidateArrayOfNElements("stake_vote_reg_deleg_cert", r, 5); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("stake_vote_reg_deleg_cert", "type", r, uint64(KindStakeVoteRegDelegCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	pool, err := readPoolKeyHash(r)
	if err != nil {
		return nil, err
	}
	drep, err := common.DRepFromCBOR(r)
	if err != nil {
		return nil, err
	}
	deposit, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("stake_vote_reg_deleg_cert", r); err != nil {
		return nil, err
	}
	return &StakeVoteRegDelegCert{Credential: cred, PoolKeyHash: pool, DRep: drep, Deposit: deposit}, nil
}

func (c *StakeVoteRegDelegCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(5); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindStakeVoteRegDelegCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteByteString(c.PoolKeyHash[:]); err != nil {
		return err
	}
	if err := c.DRep.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteUint64(c.Deposit); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// AuthCommitteeHotCert authorizes a constitutional committee cold
// credential to act through a hot credential.
type AuthCommitteeHotCert struct {
	ColdCredential *common.Credential
	HotCredential  *common.Credential
}

func (c *AuthCommitteeHotCert) Kind() Kind { return KindAuthCommitteeHotCert }

func authCommitteeHotCertFromCBOR(r *cbor.CborReader) (*AuthCommitteeHotCert, error) {
	if err := cbor.ValidateArrayOfNElements("auth_committee_hot_cert", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("auth_committee_hot_cert", "type", r, uint64(KindAuthCommitteeHotCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cold, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	hot, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("auth_committee_hot_cert", r); err != nil {
		return nil, err
	}
	return &AuthCommitteeHotCert{ColdCredential: cold, HotCredential: hot}, nil
}

func (c *AuthCommitteeHotCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindAuthCommitteeHotCert)); err != nil {
		return err
	}
	if err := c.ColdCredential.ToCBOR(w); err != nil {
		return err
	}
	if err := c.HotCredential.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// ResignCommitteeColdCert resigns a constitutional committee member's cold
// credential, with an optional anchor documenting the reason.
type ResignCommitteeColdCert struct {
	ColdCredential *common.Credential
	Anchor         *common.Anchor // nil when absent
}

func (c *ResignCommitteeColdCert) Kind() Kind { return KindResignCommitteeColdCert }

func resignCommitteeColdCertFromCBOR(r *cbor.CborReader) (*ResignCommitteeColdCert, error) {
	if err := cbor.ValidateArrayOfNElements("resign_committee_cold_cert", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("resign_committee_cold_cert", "type", r, uint64(KindResignCommitteeColdCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cold, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	anchor, err := readOptionalAnchor(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("resign_committee_cold_cert", r); err != nil {
		return nil, err
	}
	return &ResignCommitteeColdCert{ColdCredential: cold, Anchor: anchor}, nil
}

func (c *ResignCommitteeColdCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindResignCommitteeColdCert)); err != nil {
		return err
	}
	if err := c.ColdCredential.ToCBOR(w); err != nil {
		return err
	}
	if err := writeOptionalAnchor(w, c.Anchor); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// RegDrepCert registers a new DRep with a deposit and optional anchor.
type RegDrepCert struct {
	Credential *common.Credential
	Deposit    uint64
	Anchor     *common.Anchor // nil when absent
}

func (c *RegDrepCert) Kind() Kind { return KindRegDrepCert }

func regDrepCertFromCBOR(r *cbor.CborReader) (*RegDrepCert, error) {
	if err := cbor.ValidateArrayOfNElements("reg_drep_cert", r, 4); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("reg_drep_cert", "type", r, uint64(KindRegDrepCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	deposit, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	anchor, err := readOptionalAnchor(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("reg_drep_cert", r); err != nil {
		return nil, err
	}
	return &RegDrepCert{Credential: cred, Deposit: deposit, Anchor: anchor}, nil
}

func (c *RegDrepCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(4); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindRegDrepCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteUint64(c.Deposit); err != nil {
		return err
	}
	if err := writeOptionalAnchor(w, c.Anchor); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// UnregDrepCert deregisters a DRep, refunding its deposit.
type UnregDrepCert struct {
	Credential *common.Credential
	Deposit    uint64
}

func (c *UnregDrepCert) Kind() Kind { return KindUnregDrepCert }

func unregDrepCertFromCBOR(r *cbor.CborReader) (*UnregDrepCert, error) {
	if err := cbor.ValidateArrayOfNElements("unreg_drep_cert", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("unreg_drep_cert", "type", r, uint64(KindUnregDrepCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	deposit, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("unreg_drep_cert", r); err != nil {
		return nil, err
	}
	return &UnregDrepCert{Credential: cred, Deposit: deposit}, nil
}

func (c *UnregDrepCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindUnregDrepCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteUint64(c.Deposit); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// UpdateDrepCert updates a registered DRep's anchor.
type UpdateDrepCert struct {
	Credential *common.Credential
	Anchor     *common.Anchor // nil when absent
}

func (c *UpdateDrepCert) Kind() Kind { return KindUpdateDrepCert }

func updateDrepCertFromCBOR(r *cbor.CborReader) (*UpdateDrepCert, error) {
	if err := cbor.ValidateArrayOfNElements("update_drep_cert", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("update_drep_cert", "type", r, uint64(KindUpdateDrepCert), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	anchor, err := readOptionalAnchor(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("update_drep_cert", r); err != nil {
		return nil, err
	}
	return &UpdateDrepCert{Credential: cred, Anchor: anchor}, nil
}

func (c *UpdateDrepCert) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindUpdateDrepCert)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := writeOptionalAnchor(w, c.Anchor); err != nil {
		return err
	}
	return w.WriteEndArray()
}
