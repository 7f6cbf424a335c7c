package tx

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/gov"
)

func genesisHashCmp(a, b [28]byte) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Update is a proposed protocol parameter change, co-signed by a quorum
// of genesis delegates, to take effect at a given epoch (pre-Conway hard
// fork governance; Conway replaces this with gov.ParameterChangeAction
// but the legacy form remains decodable).
type Update struct {
	Proposals *ProposalsByGenesisHash
	Epoch     uint64
}

// ProposalsByGenesisHash is the genesis-hash-keyed map of proposed
// protocol parameter updates carried by Update.
type ProposalsByGenesisHash struct {
	Keys   [][28]byte
	Values []*gov.ProtocolParamUpdate
}

// UpdateFromCBOR decodes the 2-element [proposals, epoch] array.
func UpdateFromCBOR(r *cbor.CborReader) (*Update, error) {
	if err := cbor.ValidateArrayOfNElements("update", r, 2); err != nil {
		return nil, err
	}
	count, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	proposals := &ProposalsByGenesisHash{}
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
		hashBytes, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		if len(hashBytes) != 28 {
			return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "update", "genesis hash must be 28 bytes")
		}
		var hash [28]byte
		copy(hash[:], hashBytes)
		update, err := gov.ProtocolParamUpdateFromCBOR(r)
		if err != nil {
			return nil, err
		}
		proposals.Keys = append(proposals.Keys, hash)
		proposals.Values = append(proposals.Values, update)
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	epoch, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("update", r); err != nil {
		return nil, err
	}
	return &Update{Proposals: proposals, Epoch: epoch}, nil
}

// ToCBOR encodes the update.
func (u *Update) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	indices := sortedGenesisHashIndices(u.Proposals.Keys)
	if err := w.WriteStartMap(len(indices)); err != nil {
		return err
	}
	for _, i := range indices {
		if err := w.WriteByteString(u.Proposals.Keys[i][:]); err != nil {
			return err
		}
		if err := u.Proposals.Values[i].ToCBOR(w); err != nil {
			return err
		}
	}
	if err := w.WriteEndMap(); err != nil {
		return err
	}
	if err := w.WriteUint64(u.Epoch); err != nil {
		return err
	}
	return w.WriteEndArray()
}

func sortedGenesisHashIndices(keys [][28]byte) []int {
	indices := make([]int, len(keys))
	for i := range indices {
		indices[i] = i
	}
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0 && genesisHashCmp(keys[indices[j-1]], keys[indices[j]]) > 0; j-- {
			indices[j-1], indices[j] = indices[j], indices[j-1]
		}
	}
	return indices
}
