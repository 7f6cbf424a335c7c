package witness

import (
	"sort"

	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
	"github.com/biglup-go/cardano-serialization/gov"
	"github.com/biglup-go/cardano-serialization/script"
)

// RedeemerTag identifies which part of the transaction a redeemer
// authorizes Plutus script execution for.
type RedeemerTag uint64

const (
	RedeemerTagSpend     RedeemerTag = 0
	RedeemerTagMint      RedeemerTag = 1
	RedeemerTagCert      RedeemerTag = 2
	RedeemerTagReward    RedeemerTag = 3
	RedeemerTagVoting    RedeemerTag = 4
	RedeemerTagProposing RedeemerTag = 5
)

// Redeemer supplies a Plutus Data argument and an execution unit budget
// for the script attached to one purpose-tagged transaction element.
type Redeemer struct {
	Tag     RedeemerTag
	Index   uint64
	Data    *script.PlutusData
	ExUnits *gov.ExUnits
}

func redeemerCompare(a, b Redeemer) int {
	if a.Tag != b.Tag {
		if a.Tag < b.Tag {
			return -1
		}
		return 1
	}
	if a.Index != b.Index {
		if a.Index < b.Index {
			return -1
		}
		return 1
	}
	return 0
}

// RedeemerList is the witness set's redeemers field. The wire format has
// two historical shapes: a flat array of [tag, index, data, ex_units]
// quads (pre-Conway), and a map keyed by [tag, index] to [data, ex_units]
// (Conway onward). Both are accepted on decode; encode re-emits the cached
// decode bytes verbatim when present, and otherwise emits the canonical map
// form, sorted by (tag, index), per spec.md's map-form-only re-encode rule.
type RedeemerList struct {
	common.CBORCache
	Items []Redeemer
}

// RedeemerListFromCBOR decodes either wire shape, caching the raw bytes
// so an unmutated list re-encodes byte-exact via ToCBOR.
func RedeemerListFromCBOR(r *cbor.CborReader) (*RedeemerList, error) {
	raw, err := r.ReadEncodedValue()
	if err != nil {
		return nil, err
	}
	inner := cbor.NewCborReader(raw)

	state, err := inner.PeekState()
	if err != nil {
		return nil, err
	}

	list := &RedeemerList{}
	switch state {
	case cbor.StateStartArray:
		if err := redeemerListFromArray(inner, list); err != nil {
			return nil, err
		}
	case cbor.StateStartMap:
		if err := redeemerListFromMap(inner, list); err != nil {
			return nil, err
		}
	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "redeemers", "expected array or map")
	}

	sort.Slice(list.Items, func(i, j int) bool {
		return redeemerCompare(list.Items[i], list.Items[j]) < 0
	})
	list.SetCached(raw)
	return list, nil
}

func redeemerListFromArray(r *cbor.CborReader, list *RedeemerList) error {
	count, err := r.ReadStartArray()
	if err != nil {
		return err
	}
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			state, err := r.PeekState()
			if err != nil {
				return err
			}
			if state == cbor.StateEndArray {
				break
			}
		}
		if err := cbor.ValidateArrayOfNElements("redeemer", r, 4); err != nil {
			return err
		}
		tag, err := r.ReadUint64()
		if err != nil {
			return err
		}
		index, err := r.ReadUint64()
		if err != nil {
			return err
		}
		data, err := script.PlutusDataFromCBOR(r)
		if err != nil {
			return err
		}
		exUnits, err := gov.ExUnitsFromCBOR(r)
		if err != nil {
			return err
		}
		if err := cbor.ValidateEndArray("redeemer", r); err != nil {
			return err
		}
		list.Items = append(list.Items, Redeemer{Tag: RedeemerTag(tag), Index: index, Data: data, ExUnits: exUnits})
	}
	return r.ReadEndArray()
}

func redeemerListFromMap(r *cbor.CborReader, list *RedeemerList) error {
	count, err := r.ReadStartMap()
	if err != nil {
		return err
	}
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			state, err := r.PeekState()
			if err != nil {
				return err
			}
			if state == cbor.StateEndMap {
				break
			}
		}
		if err := cbor.ValidateArrayOfNElements("redeemer_key", r, 2); err != nil {
			return err
		}
		tag, err := r.ReadUint64()
		if err != nil {
			return err
		}
		index, err := r.ReadUint64()
		if err != nil {
			return err
		}
		if err := cbor.ValidateEndArray("redeemer_key", r); err != nil {
			return err
		}

		if err := cbor.ValidateArrayOfNElements("redeemer_value", r, 2); err != nil {
			return err
		}
		data, err := script.PlutusDataFromCBOR(r)
		if err != nil {
			return err
		}
		exUnits, err := gov.ExUnitsFromCBOR(r)
		if err != nil {
			return err
		}
		if err := cbor.ValidateEndArray("redeemer_value", r); err != nil {
			return err
		}
		list.Items = append(list.Items, Redeemer{Tag: RedeemerTag(tag), Index: index, Data: data, ExUnits: exUnits})
	}
	return r.ReadEndMap()
}

// ToCBOR re-emits the cached bytes verbatim when present; otherwise it emits
// the canonical map form, items sorted by (tag, index).
func (l *RedeemerList) ToCBOR(w *cbor.CborWriter) error {
	if l.HasCache() {
		return w.WriteRaw(l.Cached())
	}
	sorted := make([]Redeemer, len(l.Items))
	copy(sorted, l.Items)
	sort.Slice(sorted, func(i, j int) bool {
		return redeemerCompare(sorted[i], sorted[j]) < 0
	})

	if err := w.WriteStartMap(len(sorted)); err != nil {
		return err
	}
	for _, item := range sorted {
		if err := w.WriteStartArray(2); err != nil {
			return err
		}
		if err := w.WriteUint64(uint64(item.Tag)); err != nil {
			return err
		}
		if err := w.WriteUint64(item.Index); err != nil {
			return err
		}
		if err := w.WriteEndArray(); err != nil {
			return err
		}

		if err := w.WriteStartArray(2); err != nil {
			return err
		}
		if err := item.Data.ToCBOR(w); err != nil {
			return err
		}
		if err := item.ExUnits.ToCBOR(w); err != nil {
			return err
		}
		if err := w.WriteEndArray(); err != nil {
			return err
		}
	}
	return w.WriteEndMap()
}
