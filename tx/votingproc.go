package tx

import (
	"sort"

	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
	"github.com/biglup-go/cardano-serialization/gov"
)

// VoterBallot pairs a single voter with every action it cast a vote on,
// flattening the wire's nested { voter => { action_id => procedure } }
// map into a list for easy iteration while keeping (voter, action_id)
// identity intact.
type VoterBallot struct {
	Voter     gov.Voter
	ActionID  gov.ActionID
	Procedure *gov.VotingProcedure
}

func votingProceduresFromCBOR(r *cbor.CborReader) ([]VoterBallot, error) {
	outerCount, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	var ballots []VoterBallot
	for i := 0; outerCount < 0 || i < outerCount; i++ {
		if outerCount < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndMap {
				break
			}
		}
		voter, err := gov.VoterFromCBOR(r)
		if err != nil {
			return nil, err
		}
		innerCount, err := r.ReadStartMap()
		if err != nil {
			return nil, err
		}
		for j := 0; innerCount < 0 || j < innerCount; j++ {
			if innerCount < 0 {
				state, err := r.PeekState()
				if err != nil {
					return nil, err
				}
				if state == cbor.StateEndMap {
					break
				}
			}
			actionID, err := gov.ActionIDFromCBOR(r)
			if err != nil {
				return nil, err
			}
			procedure, err := gov.VotingProcedureFromCBOR(r)
			if err != nil {
				return nil, err
			}
			ballots = append(ballots, VoterBallot{Voter: *voter, ActionID: *actionID, Procedure: procedure})
		}
		if err := r.ReadEndMap(); err != nil {
			return nil, err
		}
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return ballots, nil
}

func votingProceduresToCBOR(w *cbor.CborWriter, ballots []VoterBallot) error {
	grouped := make(map[gov.Voter][]VoterBallot)
	var voters []gov.Voter
	for _, b := range ballots {
		if _, ok := grouped[b.Voter]; !ok {
			voters = append(voters, b.Voter)
		}
		grouped[b.Voter] = append(grouped[b.Voter], b)
	}
	sort.Slice(voters, func(i, j int) bool { return voterLess(voters[i], voters[j]) })

	if err := w.WriteStartMap(len(voters)); err != nil {
		return err
	}
	for _, voter := range voters {
		if err := voter.ToCBOR(w); err != nil {
			return err
		}
		entries := grouped[voter]
		sort.Slice(entries, func(i, j int) bool { return actionIDLess(entries[i].ActionID, entries[j].ActionID) })
		if err := w.WriteStartMap(len(entries)); err != nil {
			return err
		}
		for _, e := range entries {
			if err := e.ActionID.ToCBOR(w); err != nil {
				return err
			}
			if err := e.Procedure.ToCBOR(w); err != nil {
				return err
			}
		}
		if err := w.WriteEndMap(); err != nil {
			return err
		}
	}
	return w.WriteEndMap()
}

func voterLess(a, b gov.Voter) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return string(a.Hash[:]) < string(b.Hash[:])
}

func actionIDLess(a, b gov.ActionID) bool {
	for i := range a.TransactionID {
		if a.TransactionID[i] != b.TransactionID[i] {
			return a.TransactionID[i] < b.TransactionID[i]
		}
	}
	return a.Index < b.Index
}

// ProposalProcedure is a governance action proposal submitted with its
// required deposit, the refund address, and a rationale anchor.
type ProposalProcedure struct {
	Deposit       uint64
	RewardAccount []byte
	GovAction     gov.Action
	Anchor        *common.Anchor
}

func proposalProcedureFromCBOR(r *cbor.CborReader) (*ProposalProcedure, error) {
	if err := cbor.ValidateArrayOfNElements("proposal_procedure", r, 4); err != nil {
		return nil, err
	}
	deposit, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	rewardAccount, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	action, err := gov.ActionFromCBOR(r)
	if err != nil {
		return nil, err
	}
	anchor, err := common.AnchorFromCBOR(r)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("proposal_procedure", r); err != nil {
		return nil, err
	}
	return &ProposalProcedure{Deposit: deposit, RewardAccount: rewardAccount, GovAction: action, Anchor: anchor}, nil
}

func (p *ProposalProcedure) toCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(4); err != nil {
		return err
	}
	if err := w.WriteUint64(p.Deposit); err != nil {
		return err
	}
	if err := w.WriteByteString(p.RewardAccount); err != nil {
		return err
	}
	if err := p.GovAction.ToCBOR(w); err != nil {
		return err
	}
	if err := p.Anchor.ToCBOR(w); err != nil {
		return err
	}
	return w.WriteEndArray()
}

func proposalProceduresFromCBOR(r *cbor.CborReader) ([]*ProposalProcedure, error) {
	count, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	var procedures []*ProposalProcedure
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndArray {
				break
			}
		}
		p, err := proposalProcedureFromCBOR(r)
		if err != nil {
			return nil, err
		}
		procedures = append(procedures, p)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return procedures, nil
}

func proposalProceduresToCBOR(w *cbor.CborWriter, procedures []*ProposalProcedure) error {
	if err := w.WriteStartArray(len(procedures)); err != nil {
		return err
	}
	for _, p := range procedures {
		if err := p.toCBOR(w); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}
