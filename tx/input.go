// Package tx implements the transaction body, the transaction envelope
// (body, witness set, validity flag, auxiliary data), and auxiliary data
// itself.
package tx

import "github.com/biglup-go/cardano-serialization/cbor"

// TransactionInput references a previous transaction's output by its
// transaction ID and output index.
type TransactionInput struct {
	TransactionID [32]byte
	Index         uint64
}

// TransactionInputFromCBOR decodes the 2-element [tx_id, index] array.
func TransactionInputFromCBOR(r *cbor.CborReader) (*TransactionInput, error) {
	if err := cbor.ValidateArrayOfNElements("transaction_input", r, 2); err != nil {
		return nil, err
	}
	id, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(id) != 32 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "transaction_input", "transaction id must be 32 bytes")
	}
	index, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	in := &TransactionInput{Index: index}
	copy(in.TransactionID[:], id)
	if err := cbor.ValidateEndArray("transaction_input", r); err != nil {
		return nil, err
	}
	return in, nil
}

// ToCBOR encodes the input.
func (in *TransactionInput) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteByteString(in.TransactionID[:]); err != nil {
		return err
	}
	if err := w.WriteUint64(in.Index); err != nil {
		return err
	}
	return w.WriteEndArray()
}

func compareInputs(a, b *TransactionInput) int {
	for i := range a.TransactionID {
		if a.TransactionID[i] != b.TransactionID[i] {
			if a.TransactionID[i] < b.TransactionID[i] {
				return -1
			}
			return 1
		}
	}
	if a.Index != b.Index {
		if a.Index < b.Index {
			return -1
		}
		return 1
	}
	return 0
}
