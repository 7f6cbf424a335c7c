package script

import "github.com/biglup-go/cardano-serialization/cbor"

// PlutusLanguage identifies a Plutus script's language version. The
// script body itself is never interpreted (spec.md non-goal): only its
// language tag and opaque bytes are modeled.
type PlutusLanguage uint64

const (
	PlutusV1 PlutusLanguage = 1
	PlutusV2 PlutusLanguage = 2
	PlutusV3 PlutusLanguage = 3
)

// PlutusScript is an opaque, language-tagged compiled script body.
type PlutusScript struct {
	Language PlutusLanguage
	Bytes    []byte
}

// PlutusScriptFromCBOR reads a bare byte string for the given language
// (Plutus scripts are stored as opaque bounded byte strings inside the
// witness set's language-keyed lists; the language tag comes from which
// list the caller is decoding, not from the wire bytes themselves).
func PlutusScriptFromCBOR(r *cbor.CborReader, lang PlutusLanguage) (*PlutusScript, error) {
	data, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	return &PlutusScript{Language: lang, Bytes: data}, nil
}

// ToCBOR encodes the opaque script body.
func (s *PlutusScript) ToCBOR(w *cbor.CborWriter) error {
	return w.WriteByteString(s.Bytes)
}

// PlutusDataKind discriminates the five Plutus Data wire shapes.
type PlutusDataKind int

const (
	PlutusDataKindConstructor PlutusDataKind = iota
	PlutusDataKindMap
	PlutusDataKindList
	PlutusDataKindInteger
	PlutusDataKindBytes
)

// plutusConstructorTagBase and the two extension ranges implement the
// constructor-index-to-CBOR-tag packing Plutus Data uses: tags 121..127
// and 1280..1400 encode small constructor indices directly in the tag,
// falling back to an explicit [index, fields] array under tag 102 for
// larger indices. The extension range covers constructor indices
// 7..127 (121 tags, 1280..1400 inclusive); index 128 onward always uses
// the general tag-102 fallback.
const (
	plutusConstructorTagBase      = 121
	plutusConstructorTagBaseCount = 7
	plutusConstructorTagExtBase   = 1280
	plutusConstructorTagExtCount  = 121
	plutusConstructorTagGeneral   = 102
)

// PlutusData is the opaque-but-structurally-navigable CBOR Data Item
// wrapper: its shape (constructor/map/list/integer/bounded-bytes) is
// decoded and re-encoded faithfully, but the Plutus semantics of the
// payload are never interpreted.
type PlutusData struct {
	Kind            PlutusDataKind
	ConstructorTag  uint64
	Fields          []*PlutusData // constructor or list payload
	MapKeys         []*PlutusData
	MapValues       []*PlutusData
	Int             int64
	Bytes           []byte
}

// PlutusDataFromCBOR decodes a Plutus Data item, preserving which of the
// five shapes it took.
func PlutusDataFromCBOR(r *cbor.CborReader) (*PlutusData, error) {
	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}

	switch state {
	case cbor.StateUnsignedInteger, cbor.StateNegativeInteger:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		return &PlutusData{Kind: PlutusDataKindInteger, Int: v}, nil

	case cbor.StateByteString:
		b, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		return &PlutusData{Kind: PlutusDataKindBytes, Bytes: b}, nil

	case cbor.StateStartMap:
		return plutusDataMapFromCBOR(r)

	case cbor.StateStartArray:
		return plutusDataListFromCBOR(r)

	case cbor.StateTag:
		return plutusDataConstructorFromCBOR(r)

	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "plutus_data", "unexpected shape")
	}
}

func plutusDataMapFromCBOR(r *cbor.CborReader) (*PlutusData, error) {
	count, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	d := &PlutusData{Kind: PlutusDataKindMap}
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
		key, err := PlutusDataFromCBOR(r)
		if err != nil {
			return nil, err
		}
		value, err := PlutusDataFromCBOR(r)
		if err != nil {
			return nil, err
		}
		d.MapKeys = append(d.MapKeys, key)
		d.MapValues = append(d.MapValues, value)
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return d, nil
}

func plutusDataListFromCBOR(r *cbor.CborReader) (*PlutusData, error) {
	count, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	d := &PlutusData{Kind: PlutusDataKindList}
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
		item, err := PlutusDataFromCBOR(r)
		if err != nil {
			return nil, err
		}
		d.Fields = append(d.Fields, item)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return d, nil
}

func plutusDataConstructorFromCBOR(r *cbor.CborReader) (*PlutusData, error) {
	tag, err := r.ReadTag()
	if err != nil {
		return nil, err
	}

	var ctor uint64
	switch {
	case uint64(tag) >= plutusConstructorTagBase && uint64(tag) < plutusConstructorTagBase+plutusConstructorTagBaseCount:
		ctor = uint64(tag) - plutusConstructorTagBase
	case uint64(tag) >= plutusConstructorTagExtBase && uint64(tag) < plutusConstructorTagExtBase+plutusConstructorTagExtCount:
		ctor = uint64(tag) - plutusConstructorTagExtBase + plutusConstructorTagBaseCount
	case uint64(tag) == plutusConstructorTagGeneral:
		count, err := cborReadArrayLen(r)
		if err != nil {
			return nil, err
		}
		if count != 2 {
			return nil, cbor.NewDomainError(cbor.ErrInvalidCborArraySize, "plutus_data", "general constructor expects [index, fields]")
		}
		ctorValue, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		fields, err := plutusDataListFromCBOR(r)
		if err != nil {
			return nil, err
		}
		if err := cbor.ValidateEndArray("plutus_data", r); err != nil {
			return nil, err
		}
		return &PlutusData{Kind: PlutusDataKindConstructor, ConstructorTag: ctorValue, Fields: fields.Fields}, nil
	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "plutus_data", "unrecognized constructor tag")
	}

	list, err := plutusDataListFromCBOR(r)
	if err != nil {
		return nil, err
	}
	return &PlutusData{Kind: PlutusDataKindConstructor, ConstructorTag: ctor, Fields: list.Fields}, nil
}

func cborReadArrayLen(r *cbor.CborReader) (int, error) {
	return r.ReadStartArray()
}

// ToCBOR re-encodes the Plutus Data item in its original shape.
func (d *PlutusData) ToCBOR(w *cbor.CborWriter) error {
	switch d.Kind {
	case PlutusDataKindInteger:
		return w.WriteInt64(d.Int)

	case PlutusDataKindBytes:
		return w.WriteByteString(d.Bytes)

	case PlutusDataKindMap:
		if err := w.WriteStartMap(len(d.MapKeys)); err != nil {
			return err
		}
		for i := range d.MapKeys {
			if err := d.MapKeys[i].ToCBOR(w); err != nil {
				return err
			}
			if err := d.MapValues[i].ToCBOR(w); err != nil {
				return err
			}
		}
		return w.WriteEndMap()

	case PlutusDataKindList:
		if err := w.WriteStartArray(len(d.Fields)); err != nil {
			return err
		}
		for _, f := range d.Fields {
			if err := f.ToCBOR(w); err != nil {
				return err
			}
		}
		return w.WriteEndArray()

	case PlutusDataKindConstructor:
		return d.constructorToCBOR(w)

	default:
		return cbor.NewDomainError(cbor.ErrInvalidArgument, "plutus_data", "unknown kind")
	}
}

func (d *PlutusData) constructorToCBOR(w *cbor.CborWriter) error {
	var tag cbor.CborTag
	switch {
	case d.ConstructorTag < plutusConstructorTagBaseCount:
		tag = cbor.CborTag(plutusConstructorTagBase + d.ConstructorTag)
	case d.ConstructorTag < plutusConstructorTagBaseCount+plutusConstructorTagExtCount:
		tag = cbor.CborTag(plutusConstructorTagExtBase + d.ConstructorTag - plutusConstructorTagBaseCount)
	default:
		if err := w.WriteTag(plutusConstructorTagGeneral); err != nil {
			return err
		}
		if err := w.WriteStartArray(2); err != nil {
			return err
		}
		if err := w.WriteUint64(d.ConstructorTag); err != nil {
			return err
		}
		if err := w.WriteStartArray(len(d.Fields)); err != nil {
			return err
		}
		for _, f := range d.Fields {
			if err := f.ToCBOR(w); err != nil {
				return err
			}
		}
		if err := w.WriteEndArray(); err != nil {
			return err
		}
		return w.WriteEndArray()
	}

	if err := w.WriteTag(tag); err != nil {
		return err
	}
	if err := w.WriteStartArray(len(d.Fields)); err != nil {
		return err
	}
	for _, f := range d.Fields {
		if err := f.ToCBOR(w); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}
