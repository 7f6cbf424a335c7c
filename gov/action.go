package gov

import "github.com/biglup-go/cardano-serialization/cbor"

// ActionKind discriminates the seven governance action variants.
type ActionKind uint64

const (
	ActionKindParameterChange      ActionKind = 0
	ActionKindHardForkInitiation   ActionKind = 1
	ActionKindTreasuryWithdrawals  ActionKind = 2
	ActionKindNoConfidence         ActionKind = 3
	ActionKindUpdateCommittee      ActionKind = 4
	ActionKindNewConstitution      ActionKind = 5
	ActionKindInfo                 ActionKind = 6
)

func (k ActionKind) String() string {
	switch k {
	case ActionKindParameterChange:
		return "parameter_change_action"
	case ActionKindHardForkInitiation:
		return "hard_fork_initiation_action"
	case ActionKindTreasuryWithdrawals:
		return "treasury_withdrawals_action"
	case ActionKindNoConfidence:
		return "no_confidence"
	case ActionKindUpdateCommittee:
		return "update_committee"
	case ActionKindNewConstitution:
		return "new_constitution"
	case ActionKindInfo:
		return "info_action"
	default:
		return "unknown"
	}
}

func actionKindName(v uint64) string { return ActionKind(v).String() }

// Action is implemented by every governance action variant.
type Action interface {
	Kind() ActionKind
	ToCBOR(w *cbor.CborWriter) error
}

// ActionFromCBOR peeks the action's discriminant and dispatches to the
// matching variant decoder.
func ActionFromCBOR(r *cbor.CborReader) (Action, error) {
	discriminant, err := r.PeekArrayDiscriminant()
	if err != nil {
		return nil, err
	}

	switch ActionKind(discriminant) {
	case ActionKindParameterChange:
		return parameterChangeActionFromCBOR(r)
	case ActionKindHardForkInitiation:
		return hardForkInitiationActionFromCBOR(r)
	case ActionKindTreasuryWithdrawals:
		return treasuryWithdrawalsActionFromCBOR(r)
	case ActionKindNoConfidence:
		return noConfidenceActionFromCBOR(r)
	case ActionKindUpdateCommittee:
		return updateCommitteeActionFromCBOR(r)
	case ActionKindNewConstitution:
		return newConstitutionActionFromCBOR(r)
	case ActionKindInfo:
		return infoActionFromCBOR(r)
	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidGovernanceActionType, "governance_action", "unknown action type")
	}
}

// ParameterChangeAction proposes a protocol parameter update, optionally
// superseding a prior parameter-change action and guarded by an optional
// constitutional-script policy hash.
type ParameterChangeAction struct {
	Parent *ActionID
	Update *ProtocolParamUpdate
	Policy *[28]byte // nil when absent
}

func (a *ParameterChangeAction) Kind() ActionKind { return ActionKindParameterChange }

func parameterChangeActionFromCBOR(r *cbor.CborReader) (*ParameterChangeAction, error) {
	if err := cbor.ValidateArrayOfNElements("parameter_change_action", r, 4); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("parameter_change_action", "type", r, uint64(ActionKindParameterChange), actionKindName, cbor.ErrInvalidGovernanceActionType); err != nil {
		return nil, err
	}
	parent, err := readOptionalActionID(r)
	if err != nil {
		return nil, err
	}
	update, err := ProtocolParamUpdateFromCBOR(r)
	if err != nil {
		return nil, err
	}
	policy, err := readOptionalScriptHash(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("parameter_change_action", r); err != nil {
		return nil, err
	}
	return &ParameterChangeAction{Parent: parent, Update: update, Policy: policy}, nil
}

func (a *ParameterChangeAction) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(4); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(ActionKindParameterChange)); err != nil {
		return err
	}
	if err := writeOptionalActionID(w, a.Parent); err != nil {
		return err
	}
	if err := a.Update.ToCBOR(w); err != nil {
		return err
	}
	if err := writeOptionalScriptHash(w, a.Policy); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// HardForkInitiationAction proposes moving the chain to a new protocol
// version.
type HardForkInitiationAction struct {
	Parent          *ActionID
	ProtocolVersion *ProtocolVersion
}

func (a *HardForkInitiationAction) Kind() ActionKind { return ActionKindHardForkInitiation }

func hardForkInitiationActionFromCBOR(r *cbor.CborReader) (*HardForkInitiationAction, error) {
	if err := cbor.ValidateArrayOfNElements("hard_fork_initiation_action", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("hard_fork_initiation_action", "type", r, uint64(ActionKindHardForkInitiation), actionKindName, cbor.ErrInvalidGovernanceActionType); err != nil {
		return nil, err
	}
	parent, err := readOptionalActionID(r)
	if err != nil {
		return nil, err
	}
	version, err := ProtocolVersionFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("hard_fork_initiation_action", r); err != nil {
		return nil, err
	}
	return &HardForkInitiationAction{Parent: parent, ProtocolVersion: version}, nil
}

func (a *HardForkInitiationAction) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(ActionKindHardForkInitiation)); err != nil {
		return err
	}
	if err := writeOptionalActionID(w, a.Parent); err != nil {
		return err
	}
	if err := a.ProtocolVersion.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// Withdrawal pairs a reward account with the lovelace amount a treasury
// withdrawal action pays out to it.
type Withdrawal struct {
	RewardAccount []byte
	Amount        uint64
}

// TreasuryWithdrawalsAction pays treasury funds out to one or more reward
// accounts.
type TreasuryWithdrawalsAction struct {
	Withdrawals []Withdrawal
	Policy      *[28]byte // nil when absent
}

func (a *TreasuryWithdrawalsAction) Kind() ActionKind { return ActionKindTreasuryWithdrawals }

func treasuryWithdrawalsActionFromCBOR(r *cbor.CborReader) (*TreasuryWithdrawalsAction, error) {
	if err := cbor.ValidateArrayOfNElements("treasury_withdrawals_action", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("treasury_withdrawals_action", "type", r, uint64(ActionKindTreasuryWithdrawals), actionKindName, cbor.ErrInvalidGovernanceActionType); err != nil {
		return nil, err
	}

	count, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	var withdrawals []Withdrawal
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndMap {
				break
			}
		}
		account, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		amount, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, Withdrawal{RewardAccount: account, Amount: amount})
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}

	policy, err := readOptionalScriptHash(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("treasury_withdrawals_action", r); err != nil {
		return nil, err
	}
	return &TreasuryWithdrawalsAction{Withdrawals: withdrawals, Policy: policy}, nil
}

func (a *TreasuryWithdrawalsAction) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(ActionKindTreasuryWithdrawals)); err != nil {
		return err
	}
	if err := w.WriteStartMap(len(a.Withdrawals)); err != nil {
		return err
	}
	for _, wd := range a.Withdrawals {
		if err := w.WriteByteString(wd.RewardAccount); err != nil {
			return err
		}
		if err := w.WriteUint64(wd.Amount); err != nil {
			return err
		}
	}
	if err := w.WriteEndMap(); err != nil {
		return err
	}
	if err := writeOptionalScriptHash(w, a.Policy); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// NoConfidenceAction proposes a vote of no confidence in the current
// constitutional committee.
type NoConfidenceAction struct {
	Parent *ActionID
}

func (a *NoConfidenceAction) Kind() ActionKind { return ActionKindNoConfidence }

func noConfidenceActionFromCBOR(r *cbor.CborReader) (*NoConfidenceAction, error) {
	if err := cbor.ValidateArrayOfNElements("no_confidence", r, 2); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("no_confidence", "type", r, uint64(ActionKindNoConfidence), actionKindName, cbor.ErrInvalidGovernanceActionType); err != nil {
		return nil, err
	}
	parent, err := readOptionalActionID(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("no_confidence", r); err != nil {
		return nil, err
	}
	return &NoConfidenceAction{Parent: parent}, nil
}

func (a *NoConfidenceAction) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(ActionKindNoConfidence)); err != nil {
		return err
	}
	if err := writeOptionalActionID(w, a.Parent); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// InfoAction carries no on-chain effect beyond recording that a vote took
// place (used for informational polls).
type InfoAction struct{}

func (a *InfoAction) Kind() ActionKind { return ActionKindInfo }

func infoActionFromCBOR(r *cbor.CborReader) (*InfoAction, error) {
	if err := cbor.ValidateArrayOfNElements("info_action", r, 1); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("info_action", "type", r, uint64(ActionKindInfo), actionKindName, cbor.ErrInvalidGovernanceActionType); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("info_action", r); err != nil {
		return nil, err
	}
	return &InfoAction{}, nil
}

func (a *InfoAction) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(1); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(ActionKindInfo)); err != nil {
		return err
	}
	return w.WriteEndArray()
}

func readOptionalScriptHash(r *cbor.CborReader) (*[28]byte, error) {
	isNull, err := r.TryReadNull()
	if err != nil {
		return nil, err
	}
	if isNull {
		return nil, nil
	}
	hash, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(hash) != 28 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "script_hash", "must be 28 bytes")
	}
	var out [28]byte
	copy(out[:], hash)
	return &out, nil
}

func writeOptionalScriptHash(w *cbor.CborWriter, hash *[28]byte) error {
	if hash == nil {
		return w.WriteNull()
	}
	return w.WriteByteString(hash[:])
}
