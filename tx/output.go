package tx

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
	"github.com/biglup-go/cardano-serialization/script"
)

// DatumOptionKind discriminates whether a script-carrying output commits
// to a datum by hash (pointer to off-chain data) or inline (the full
// Plutus Data item embedded in the output).
type DatumOptionKind uint64

const (
	DatumOptionKindHash DatumOptionKind = 0
	DatumOptionKindData DatumOptionKind = 1
)

// DatumOption is the Babbage-era [kind, payload] datum commitment.
type DatumOption struct {
	Kind DatumOptionKind
	Hash [32]byte
	Data *script.PlutusData
}

const embeddedCBORTag cbor.CborTag = 24

func datumOptionFromCBOR(r *cbor.CborReader) (*DatumOption, error) {
	if err := cbor.ValidateArrayOfNElements("datum_option", r, 2); err != nil {
		return nil, err
	}
	kind, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	d := &DatumOption{Kind: DatumOptionKind(kind)}
	switch d.Kind {
	case DatumOptionKindHash:
		hash, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		if len(hash) != 32 {
			return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "datum_option", "hash must be 32 bytes")
		}
		copy(d.Hash[:], hash)
	case DatumOptionKindData:
		data, err := readEmbeddedCBOR(r, script.PlutusDataFromCBOR)
		if err != nil {
			return nil, err
		}
		d.Data = data
	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "datum_option", "unknown kind")
	}
	if err := cbor.ValidateEndArray("datum_option", r); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DatumOption) toCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(d.Kind)); err != nil {
		return err
	}
	switch d.Kind {
	case DatumOptionKindHash:
		if err := w.WriteByteString(d.Hash[:]); err != nil {
			return err
		}
	case DatumOptionKindData:
		if err := writeEmbeddedCBOR(w, d.Data.ToCBOR); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}

// readEmbeddedCBOR decodes a tag-24-wrapped byte string holding a nested
// CBOR-encoded value (script refs, inline datums).
func readEmbeddedCBOR[T any](r *cbor.CborReader, decode func(*cbor.CborReader) (T, error)) (T, error) {
	var zero T
	tag, err := r.ReadTag()
	if err != nil {
		return zero, err
	}
	if tag != embeddedCBORTag {
		return zero, cbor.NewDomainError(cbor.ErrInvalidArgument, "embedded_cbor", "expected tag 24")
	}
	raw, err := r.ReadByteString()
	if err != nil {
		return zero, err
	}
	inner := cbor.NewCborReader(raw)
	return decode(inner)
}

func writeEmbeddedCBOR(w *cbor.CborWriter, encode func(*cbor.CborWriter) error) error {
	inner := cbor.NewCborWriter()
	if err := encode(inner); err != nil {
		return err
	}
	if err := w.WriteTag(embeddedCBORTag); err != nil {
		return err
	}
	return w.WriteByteString(inner.Bytes())
}

// ScriptRef wraps one of the script kinds an output can reference
// in-ledger: the wrapper shape (which language) is modeled, the script
// body itself stays opaque.
type ScriptRef struct {
	Native   script.NativeScript
	PlutusV1 *script.PlutusScript
	PlutusV2 *script.PlutusScript
	PlutusV3 *script.PlutusScript
}

func scriptRefFromCBOR(r *cbor.CborReader) (*ScriptRef, error) {
	return readEmbeddedCBOR(r, func(r *cbor.CborReader) (*ScriptRef, error) {
		if err := cbor.ValidateArrayOfNElements("script_ref", r, 2); err != nil {
			return nil, err
		}
		kind, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		ref := &ScriptRef{}
		switch kind {
		case 0:
			s, err := script.FromCBOR(r)
			if err != nil {
				return nil, err
			}
			ref.Native = s
		case 1:
			s, err := script.PlutusScriptFromCBOR(r, script.PlutusV1)
			if err != nil {
				return nil, err
			}
			ref.PlutusV1 = s
		case 2:
			s, err := script.PlutusScriptFromCBOR(r, script.PlutusV2)
			if err != nil {
				return nil, err
			}
			ref.PlutusV2 = s
		case 3:
			s, err := script.PlutusScriptFromCBOR(r, script.PlutusV3)
			if err != nil {
				return nil, err
			}
			ref.PlutusV3 = s
		default:
			return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "script_ref", "unknown language kind")
		}
		if err := cbor.ValidateEndArray("script_ref", r); err != nil {
			return nil, err
		}
		return ref, nil
	})
}

func (s *ScriptRef) toCBOR(w *cbor.CborWriter) error {
	return writeEmbeddedCBOR(w, func(w *cbor.CborWriter) error {
		if err := w.WriteStartArray(2); err != nil {
			return err
		}
		switch {
		case s.Native != nil:
			if err := w.WriteUint64(0); err != nil {
				return err
			}
			if err := s.Native.ToCBOR(w); err != nil {
				return err
			}
		case s.PlutusV1 != nil:
			if err := w.WriteUint64(1); err != nil {
				return err
			}
			if err := s.PlutusV1.ToCBOR(w); err != nil {
				return err
			}
		case s.PlutusV2 != nil:
			if err := w.WriteUint64(2); err != nil {
				return err
			}
			if err := s.PlutusV2.ToCBOR(w); err != nil {
				return err
			}
		case s.PlutusV3 != nil:
			if err := w.WriteUint64(3); err != nil {
				return err
			}
			if err := s.PlutusV3.ToCBOR(w); err != nil {
				return err
			}
		}
		return w.WriteEndArray()
	})
}

const (
	outputKeyAddress     = 0
	outputKeyAmount      = 1
	outputKeyDatumOption = 2
	outputKeyScriptRef   = 3
)

// TransactionOutput is a payment locked to an address. The legacy
// 2/3-element array form ([address, amount, ?datum_hash]) and the
// Babbage-era sparse map form are both accepted on decode; encode always
// emits the Babbage map form.
type TransactionOutput struct {
	Address     []byte
	Amount      *common.Value
	DatumHash   *[32]byte
	DatumOption *DatumOption
	ScriptRef   *ScriptRef
}

// TransactionOutputFromCBOR decodes either wire shape.
func TransactionOutputFromCBOR(r *cbor.CborReader) (*TransactionOutput, error) {
	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}
	if state == cbor.StateStartMap {
		return transactionOutputFromMap(r)
	}
	return transactionOutputFromArray(r)
}

func transactionOutputFromArray(r *cbor.CborReader) (*TransactionOutput, error) {
	sp := r.Savepoint()
	length, err := r.ReadStartArray()
	r.Restore(sp)
	if err != nil {
		return nil, err
	}
	if length != 2 && length != 3 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidCborArraySize, "transaction_output", "expected 2 or 3 elements")
	}
	if err := cbor.ValidateArrayOfNElements("transaction_output", r, length); err != nil {
		return nil, err
	}
	address, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	amount, err := common.ValueFromCBOR(r)
	if err != nil {
		return nil, err
	}
	out := &TransactionOutput{Address: address, Amount: amount}
	if length == 3 {
		hash, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		if len(hash) != 32 {
			return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "transaction_output", "datum hash must be 32 bytes")
		}
		var h [32]byte
		copy(h[:], hash)
		out.DatumHash = &h
	}
	if err := cbor.ValidateEndArray("transaction_output", r); err != nil {
		return nil, err
	}
	return out, nil
}

func transactionOutputFromMap(r *cbor.CborReader) (*TransactionOutput, error) {
	count, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	out := &TransactionOutput{}
	seen := make(map[uint64]bool)
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
		key, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, cbor.NewDomainError(cbor.ErrDuplicatedCborMapKey, "transaction_output", "duplicate key")
		}
		seen[key] = true
		switch key {
		case outputKeyAddress:
			addr, err := r.ReadByteString()
			if err != nil {
				return nil, err
			}
			out.Address = addr
		case outputKeyAmount:
			amount, err := common.ValueFromCBOR(r)
			if err != nil {
				return nil, err
			}
			out.Amount = amount
		case outputKeyDatumOption:
			d, err := datumOptionFromCBOR(r)
			if err != nil {
				return nil, err
			}
			out.DatumOption = d
		case outputKeyScriptRef:
			sref, err := scriptRefFromCBOR(r)
			if err != nil {
				return nil, err
			}
			out.ScriptRef = sref
		default:
			return nil, cbor.NewDomainError(cbor.ErrInvalidCborMapKey, "transaction_output", "unrecognized key")
		}
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return out, nil
}

// ToCBOR always emits the Babbage-era sparse map form.
func (out *TransactionOutput) ToCBOR(w *cbor.CborWriter) error {
	n := 2
	if out.DatumOption != nil {
		n++
	}
	if out.ScriptRef != nil {
		n++
	}
	if err := w.WriteStartMap(n); err != nil {
		return err
	}
	if err := w.WriteUint64(outputKeyAddress); err != nil {
		return err
	}
	if err := w.WriteByteString(out.Address); err != nil {
		return err
	}
	if err := w.WriteUint64(outputKeyAmount); err != nil {
		return err
	}
	if err := out.Amount.ToCBOR(w); err != nil {
		return err
	}
	if out.DatumOption != nil {
		if err := w.WriteUint64(outputKeyDatumOption); err != nil {
			return err
		}
		if err := out.DatumOption.toCBOR(w); err != nil {
			return err
		}
	}
	if out.ScriptRef != nil {
		if err := w.WriteUint64(outputKeyScriptRef); err != nil {
			return err
		}
		if err := out.ScriptRef.toCBOR(w); err != nil {
			return err
		}
	}
	return w.WriteEndMap()
}
