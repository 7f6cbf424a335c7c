package gov

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

// VoterKind discriminates which kind of principal cast a vote:
// constitutional committee (hot credential), DRep, or stake pool operator.
type VoterKind uint64

const (
	VoterKindCommitteeHotKeyHash    VoterKind = 0
	VoterKindCommitteeHotScriptHash VoterKind = 1
	VoterKindDRepKeyHash            VoterKind = 2
	VoterKindDRepScriptHash         VoterKind = 3
	VoterKindStakePoolKeyHash       VoterKind = 4
)

// Voter identifies a governance vote's caster: a [kind, hash] pair.
type Voter struct {
	Kind VoterKind
	Hash [28]byte
}

// VoterFromCBOR decodes the [kind, hash] array.
func VoterFromCBOR(r *cbor.CborReader) (*Voter, error) {
	if err := cbor.ValidateArrayOfNElements("voter", r, 2); err != nil {
		return nil, err
	}
	kind, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	hash, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(hash) != 28 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "voter", "hash must be 28 bytes")
	}
	v := &Voter{Kind: VoterKind(kind)}
	copy(v.Hash[:], hash)
	if err := cbor.ValidateEndArray("voter", r); err != nil {
		return nil, err
	}
	return v, nil
}

// ToCBOR encodes the voter.
func (v *Voter) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(v.Kind)); err != nil {
		return err
	}
	if err := w.WriteByteString(v.Hash[:]); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// VoteChoice is a yes/no/abstain ballot.
type VoteChoice uint64

const (
	VoteNo      VoteChoice = 0
	VoteYes     VoteChoice = 1
	VoteAbstain VoteChoice = 2
)

// VotingProcedure is a single voter's ballot on a single governance
// action: the choice plus an optional rationale anchor.
type VotingProcedure struct {
	Vote   VoteChoice
	Anchor *common.Anchor // nil when absent
}

// VotingProcedureFromCBOR decodes the 2-element [vote, anchor/null] array.
func VotingProcedureFromCBOR(r *cbor.CborReader) (*VotingProcedure, error) {
	if err := cbor.ValidateArrayOfNElements("voting_procedure", r, 2); err != nil {
		return nil, err
	}
	vote, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	isNull, err := r.TryReadNull()
	if err != nil {
		return nil, err
	}
	var anchor *common.Anchor
	if !isNull {
		anchor, err = common.AnchorFromCBOR(r)
		if err != nil {
			return nil, err
		}
	}
	if err := cbor.ValidateEndArray("voting_procedure", r); err != nil {
		return nil, err
	}
	return &VotingProcedure{Vote: VoteChoice(vote), Anchor: anchor}, nil
}

// ToCBOR encodes the voting procedure.
func (p *VotingProcedure) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(p.Vote)); err != nil {
		return err
	}
	if p.Anchor == nil {
		return concludeVotingProcedure(w)
	}
	if err := p.Anchor.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

func concludeVotingProcedure(w *cbor.CborWriter) error {
	if err := w.WriteNull(); err != nil {
		return err
	}
	return w.WriteEndArray()
}
