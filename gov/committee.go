package gov

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

// committeeKey is a comparable stand-in for *common.Credential, letting a
// cold credential key an OrderedMap.
type committeeKey struct {
	kind common.CredentialType
	hash [common.CredentialHashLen]byte
}

func committeeKeyOf(c *common.Credential) committeeKey {
	var k committeeKey
	k.kind = c.Type()
	copy(k.hash[:], c.Hash())
	return k
}

func committeeKeyCmp(a, b committeeKey) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	for i := range a.hash {
		if a.hash[i] != b.hash[i] {
			if a.hash[i] < b.hash[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// UpdateCommitteeAction proposes adding/removing constitutional committee
// members and/or changing the committee's quorum threshold.
type UpdateCommitteeAction struct {
	Parent        *ActionID
	MembersToRemove []*common.Credential
	MembersToAdd    *common.OrderedMap[committeeKey, uint64] // cold credential -> term-limit epoch
	Quorum          *common.UnitInterval
}

func (a *UpdateCommitteeAction) Kind() ActionKind { return ActionKindUpdateCommittee }

func updateCommitteeActionFromCBOR(r *cbor.CborReader) (*UpdateCommitteeAction, error) {
	if err := cbor.ValidateArrayOfNElements("update_committee", r, 5); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("update_committee", "type", r, uint64(ActionKindUpdateCommittee), actionKindName, cbor.ErrInvalidGovernanceActionType); err != nil {
		return nil, err
	}
	parent, err := readOptionalActionID(r)
	if err != nil {
		return nil, err
	}

	removeLen, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	var toRemove []*common.Credential
	for i := 0; removeLen < 0 || i < removeLen; i++ {
		if removeLen < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndArray {
				break
			}
		}
		cred, err := common.CredentialFromCBOR(r)
		if err != nil {
			return nil, err
		}
		toRemove = append(toRemove, cred)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}

	toAdd := common.NewOrderedMap[committeeKey, uint64](committeeKeyCmp)
	addLen, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	for i := 0; addLen < 0 || i < addLen; i++ {
		if addLen < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndMap {
				break
			}
		}
		cred, err := common.CredentialFromCBOR(r)
		if err != nil {
			return nil, err
		}
		epoch, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		toAdd.Insert(committeeKeyOf(cred), epoch)
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}

	quorum, err := common.UnitIntervalFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("update_committee", r); err != nil {
		return nil, err
	}
	return &UpdateCommitteeAction{Parent: parent, MembersToRemove: toRemove, MembersToAdd: toAdd, Quorum: quorum}, nil
}

func (a *UpdateCommitteeAction) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(5); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(ActionKindUpdateCommittee)); err != nil {
		return err
	}
	if err := writeOptionalActionID(w, a.Parent); err != nil {
		return err
	}

	if err := w.WriteStartArray(len(a.MembersToRemove)); err != nil {
		return err
	}
	for _, cred := range a.MembersToRemove {
		if err := cred.ToCBOR(w); err != nil {
			return err
		}
	}
	if err := w.WriteEndArray(); err != nil {
		return err
	}

	if err := w.WriteStartMap(a.MembersToAdd.Len()); err != nil {
		return err
	}
	var innerErr error
	a.MembersToAdd.Each(func(key committeeKey, epoch uint64) {
		if innerErr != nil {
			return
		}
		cred, err := common.NewCredential(key.kind, key.hash[:])
		if err != nil {
			innerErr = err
			return
		}
		if innerErr = cred.ToCBOR(w); innerErr != nil {
			return
		}
		innerErr = w.WriteUint64(epoch)
	})
	if innerErr != nil {
		return innerErr
	}
	if err := w.WriteEndMap(); err != nil {
		return err
	}

	if err := a.Quorum.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// Constitution is an anchor pointing at the off-chain constitution
// document plus the optional guardrail script hash enforcing it.
type Constitution struct {
	Anchor     *common.Anchor
	ScriptHash *[28]byte // nil when absent
}

func constitutionFromCBOR(r *cbor.CborReader) (*Constitution, error) {
	if err := cbor.ValidateArrayOfNElements("constitution", r, 2); err != nil {
		return nil, err
	}
	anchor, err := common.AnchorFromCBOR(r)
	if err != nil {
		return nil, err
	}
	scriptHash, err := readOptionalScriptHash(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("constitution", r); err != nil {
		return nil, err
	}
	return &Constitution{Anchor: anchor, ScriptHash: scriptHash}, nil
}

func (c *Constitution) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := c.Anchor.ToCBOR(w); err != nil {
		return err
	}
	if err := writeOptionalScriptHash(w, c.ScriptHash); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// NewConstitutionAction proposes replacing the on-chain constitution.
type NewConstitutionAction struct {
	Parent       *ActionID
	Constitution *Constitution
}

func (a *NewConstitutionAction) Kind() ActionKind { return ActionKindNewConstitution }

func newConstitutionActionFromCBOR(r *cbor.CborReader) (*NewConstitutionAction, error) {
	if err := cbor.ValidateArrayOfNElements("new_constitution", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("new_constitution", "type", r, uint64(ActionKindNewConstitution), actionKindName, cbor.ErrInvalidGovernanceActionType); err != nil {
		return nil, err
	}
	parent, err := readOptionalActionID(r)
	if err != nil {
		return nil, err
	}
	constitution, err := constitutionFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("new_constitution", r); err != nil {
		return nil, err
	}
	return &NewConstitutionAction{Parent: parent, Constitution: constitution}, nil
}

func (a *NewConstitutionAction) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(ActionKindNewConstitution)); err != nil {
		return err
	}
	if err := writeOptionalActionID(w, a.Parent); err != nil {
		return err
	}
	if err := a.Constitution.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}
