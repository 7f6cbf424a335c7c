// Package cert implements the Conway-era certificate set: the nineteen
// on-chain certificate variants a transaction body's certificate list can
// carry, each a small-integer-discriminated CBOR array.
package cert

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

// Kind is a certificate's wire discriminant.
type Kind uint64

const (
	KindStakeRegistration       Kind = 0
	KindStakeDeregistration     Kind = 1
	KindStakeDelegation         Kind = 2
	KindPoolRegistration        Kind = 3
	KindPoolRetirement          Kind = 4
	KindGenesisKeyDelegation    Kind = 5
	KindMoveInstantaneousReward Kind = 6
	KindRegCert                 Kind = 7
	KindUnregCert                Kind = 8
	KindVoteDelegCert            Kind = 9
	KindStakeVoteDelegCert       Kind = 10
	KindStakeRegDelegCert        Kind = 11
	KindVoteRegDelegCert         Kind = 12
	KindStakeVoteRegDelegCert    Kind = 13
	KindAuthCommitteeHotCert     Kind = 14
	KindResignCommitteeColdCert  Kind = 15
	KindRegDrepCert              Kind = 16
	KindUnregDrepCert            Kind = 17
	KindUpdateDrepCert           Kind = 18
)

func (k Kind) String() string {
	switch k {
	case KindStakeRegistration:
		return "stake_registration"
	case KindStakeDeregistration:
		return "stake_deregistration"
	case KindStakeDelegation:
		return "stake_delegation"
	case KindPoolRegistration:
		return "pool_registration"
	case KindPoolRetirement:
		return "pool_retirement"
	case KindGenesisKeyDelegation:
		return "genesis_key_delegation"
	case KindMoveInstantaneousReward:
		return "move_instantaneous_rewards"
	case KindRegCert:
		return "reg_cert"
	case KindUnregCert:
		return "unreg_cert"
	case KindVoteDelegCert:
		return "vote_deleg_cert"
	case KindStakeVoteDelegCert:
		return "stake_vote_deleg_cert"
	case KindStakeRegDelegCert:
		return "stake_reg_deleg_cert"
	case KindVoteRegDelegCert:
		return "vote_reg_deleg_cert"
	case KindStakeVoteRegDelegCert:
		return "stake_vote_reg_deleg_cert"
	case KindAuthCommitteeHotCert:
		return "auth_committee_hot_cert"
	case KindResignCommitteeColdCert:
		return "resign_committee_cold_cert"
	case KindRegDrepCert:
		return "reg_drep_cert"
	case KindUnregDrepCert:
		return "unreg_drep_cert"
	case KindUpdateDrepCert:
		return "update_drep_cert"
	default:
		return "unknown"
	}
}

// Certificate is implemented by every certificate variant.
type Certificate interface {
	Kind() Kind
	ToCBOR(w *cbor.CborWriter) error
}

// FromCBOR peeks the certificate's array discriminant (spec.md §4.4
// peek-by-savepoint pattern) and dispatches to the matching variant
// decoder, returning ErrInvalidCertificateType for any unrecognized value.
func FromCBOR(r *cbor.CborReader) (Certificate, error) {
	discriminant, err := r.PeekArrayDiscriminant()
	if err != nil {
		return nil, err
	}

	switch Kind(discriminant) {
	case KindStakeRegistration:
		return stakeRegistrationFromCBOR(r)
	case KindStakeDeregistration:
		return stakeDeregistrationFromCBOR(r)
	case KindStakeDelegation:
		return stakeDelegationFromCBOR(r)
	case KindPoolRegistration:
		return poolRegistrationFromCBOR(r)
	case KindPoolRetirement:
		return poolRetirementFromCBOR(r)
	case KindGenesisKeyDelegation:
		return genesisKeyDelegationFromCBOR(r)
	case KindMoveInstantaneousReward:
		return mirFromCBOR(r)
	case KindRegCert:
		return regCertFromCBOR(r)
	case KindUnregCert:
		return unregCertFromCBOR(r)
	case KindVoteDelegCert:
		return voteDelegCertFromCBOR(r)
	case KindStakeVoteDelegCert:
		return stakeVoteDelegCertFromCBOR(r)
	case KindStakeRegDelegCert:
		return stakeRegDelegCertFromCBOR(r)
	case KindVoteRegDelegCert:
		return voteRegDelegCertFromCBOR(r)
	case KindStakeVoteRegDelegCert:
		return stakeVoteRegDelegCertFromCBOR(r)
	case KindAuthCommitteeHotCert:
		return authCommitteeHotCertFromCBOR(r)
	case KindResignCommitteeColdCert:
		return resignCommitteeColdCertFromCBOR(r)
	case KindRegDrepCert:
		return regDrepCertFromCBOR(r)
	case KindUnregDrepCert:
		return unregDrepCertFromCBOR(r)
	case KindUpdateDrepCert:
		return updateDrepCertFromCBOR(r)
	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidCertificateType, "certificate", "unknown certificate type")
	}
}

// StakeRegistration registers a stake credential (pre-Conway, no deposit
// recorded on-chain).
type StakeRegistration struct {
	Credential *common.Credential
}

func (c *StakeRegistration) Kind() Kind { return KindStakeRegistration }

func stakeRegistrationFromCBOR(r *cbor.CborReader) (*StakeRegistration, error) {
	if err := cbor.ValidateArrayOfNElements("stake_registration", r, 2); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("stake_registration", "type", r, uint64(KindStakeRegistration), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("stake_registration", r); err != nil {
		return nil, err
	}
	return &StakeRegistration{Credential: cred}, nil
}

func (c *StakeRegistration) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindStakeRegistration)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// StakeDeregistration deregisters a stake credential.
type StakeDeregistration struct {
	Credential *common.Credential
}

func (c *StakeDeregistration) Kind() Kind { return KindStakeDeregistration }

func stakeDeregistrationFromCBOR(r *cbor.CborReader) (*StakeDeregistration, error) {
	if err := cbor.ValidateArrayOfNElements("stake_deregistration", r, 2); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("stake_deregistration", "type", r, uint64(KindStakeDeregistration), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("stake_deregistration", r); err != nil {
		return nil, err
	}
	return &StakeDeregistration{Credential: cred}, nil
}

func (c *StakeDeregistration) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindStakeDeregistration)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// PoolKeyHashLen is the fixed length of a stake pool's operator key hash.
const PoolKeyHashLen = 28

// StakeDelegation delegates a stake credential's rewards to a stake pool.
type StakeDelegation struct {
	Credential  *common.Credential
	PoolKeyHash [PoolKeyHashLen]byte
}

func (c *StakeDelegation) Kind() Kind { return KindStakeDelegation }

func stakeDelegationFromCBOR(r *cbor.CborReader) (*StakeDelegation, error) {
	if err := cbor.ValidateArrayOfNElements("stake_delegation", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("stake_delegation", "type", r, uint64(KindStakeDelegation), kindName, cbor.ErrInvalidCertificateType); err != nil {
		return nil, err
	}
	cred, err := common.CredentialFromCBOR(r)
	if err != nil {
		return nil, err
	}
	poolHash, err := readPoolKeyHash(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("stake_delegation", r); err != nil {
		return nil, err
	}
	return &StakeDelegation{Credential: cred, PoolKeyHash: poolHash}, nil
}

func (c *StakeDelegation) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindStakeDelegation)); err != nil {
		return err
	}
	if err := c.Credential.ToCBOR(w); err != nil {
		return err
	}
	if err := w.WriteByteString(c.PoolKeyHash[:]); err != nil {
		return err
	}
	return w.WriteEndArray()
}

func readPoolKeyHash(r *cbor.CborReader) ([PoolKeyHashLen]byte, error) {
	var out [PoolKeyHashLen]byte
	hash, err := r.ReadByteString()
	if err != nil {
		return out, err
	}
	if len(hash) != PoolKeyHashLen {
		return out, cbor.NewDomainError(cbor.ErrInvalidArgument, "pool_keyhash", "must be 28 bytes")
	}
	copy(out[:], hash)
	return out, nil
}

func kindName(v uint64) string {
	return Kind(v).String()
}
