package tx

import (
	"sort"

	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
	"github.com/biglup-go/cardano-serialization/script"
)

const auxiliaryDataTag cbor.CborTag = 259

const (
	auxKeyMetadata      = 0
	auxKeyNativeScripts = 1
	auxKeyPlutusV1      = 2
	auxKeyPlutusV2      = 3
	auxKeyPlutusV3      = 4
)

// AuxiliaryData is a transaction's off-chain metadata plus the scripts
// attached to authorize it. Metadata values are kept as opaque raw CBOR
// (spec.md's stance on not interpreting payload bodies applies equally to
// free-form transaction metadata). The raw bytes of whichever of the three
// historical wire shapes was decoded are cached, so an unmutated value
// re-encodes byte-exact regardless of which shape it arrived in.
type AuxiliaryData struct {
	common.CBORCache
	MetadataKeys   []uint64
	MetadataValues [][]byte
	NativeScripts  []script.NativeScript
	PlutusV1       []*script.PlutusScript
	PlutusV2       []*script.PlutusScript
	PlutusV3       []*script.PlutusScript
}

// AuxiliaryDataFromCBOR accepts all three historical wire shapes: a bare
// metadata map (pre-Mary), a [metadata, native_scripts] array
// (shelley-ma), and the tag-259 sparse map (Alonzo onward).
func AuxiliaryDataFromCBOR(r *cbor.CborReader) (*AuxiliaryData, error) {
	raw, err := r.ReadEncodedValue()
	if err != nil {
		return nil, err
	}
	inner := cbor.NewCborReader(raw)
	aux, err := auxiliaryDataFromShape(inner)
	if err != nil {
		return nil, err
	}
	aux.SetCached(raw)
	return aux, nil
}

func auxiliaryDataFromShape(r *cbor.CborReader) (*AuxiliaryData, error) {
	state, err := r.PeekState()
	if err != nil {
		return nil, err
	}

	switch state {
	case cbor.StateTag:
		tag, err := r.PeekTag()
		if err != nil {
			return nil, err
		}
		if tag != auxiliaryDataTag {
			return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "auxiliary_data", "unexpected tag")
		}
		if _, err := r.ReadTag(); err != nil {
			return nil, err
		}
		return auxiliaryDataFromSparseMap(r)

	case cbor.StateStartMap:
		aux := &AuxiliaryData{}
		keys, values, err := readMetadataMap(r)
		if err != nil {
			return nil, err
		}
		aux.MetadataKeys, aux.MetadataValues = keys, values
		return aux, nil

	case cbor.StateStartArray:
		if err := cbor.ValidateArrayOfNElements("auxiliary_data", r, 2); err != nil {
			return nil, err
		}
		keys, values, err := readMetadataMap(r)
		if err != nil {
			return nil, err
		}
		scripts, err := readNativeScriptArray(r)
		if err != nil {
			return nil, err
		}
		if err := cbor.ValidateEndArray("auxiliary_data", r); err != nil {
			return nil, err
		}
		return &AuxiliaryData{MetadataKeys: keys, MetadataValues: values, NativeScripts: scripts}, nil

	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "auxiliary_data", "unexpected shape")
	}
}

func auxiliaryDataFromSparseMap(r *cbor.CborReader) (*AuxiliaryData, error) {
	count, err := r.ReadStartMap()
	if err != nil {
		return nil, err
	}
	aux := &AuxiliaryData{}
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
			return nil, cbor.NewDomainError(cbor.ErrDuplicatedCborMapKey, "auxiliary_data", "duplicate key")
		}
		seen[key] = true
		switch key {
		case auxKeyMetadata:
			keys, values, err := readMetadataMap(r)
			if err != nil {
				return nil, err
			}
			aux.MetadataKeys, aux.MetadataValues = keys, values
		case auxKeyNativeScripts:
			scripts, err := readNativeScriptArray(r)
			if err != nil {
				return nil, err
			}
			aux.NativeScripts = scripts
		case auxKeyPlutusV1:
			scripts, err := readPlutusScriptArray(r, script.PlutusV1)
			if err != nil {
				return nil, err
			}
			aux.PlutusV1 = scripts
		case auxKeyPlutusV2:
			scripts, err := readPlutusScriptArray(r, script.PlutusV2)
			if err != nil {
				return nil, err
			}
			aux.PlutusV2 = scripts
		case auxKeyPlutusV3:
			scripts, err := readPlutusScriptArray(r, script.PlutusV3)
			if err != nil {
				return nil, err
			}
			aux.PlutusV3 = scripts
		default:
			return nil, cbor.NewDomainError(cbor.ErrInvalidCborMapKey, "auxiliary_data", "unrecognized key")
		}
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, err
	}
	return aux, nil
}

func readMetadataMap(r *cbor.CborReader) ([]uint64, [][]byte, error) {
	count, err := r.ReadStartMap()
	if err != nil {
		return nil, nil, err
	}
	var keys []uint64
	var values [][]byte
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			state, err := r.PeekState()
			if err != nil {
				return nil, nil, err
			}
			if state == cbor.StateEndMap {
				break
			}
		}
		key, err := r.ReadUint64()
		if err != nil {
			return nil, nil, err
		}
		raw, err := r.ReadEncodedValue()
		if err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values = append(values, raw)
	}
	if err := r.ReadEndMap(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

func readNativeScriptArray(r *cbor.CborReader) ([]script.NativeScript, error) {
	count, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	var scripts []script.NativeScript
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
		s, err := script.FromCBOR(r)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return scripts, nil
}

func readPlutusScriptArray(r *cbor.CborReader, lang script.PlutusLanguage) ([]*script.PlutusScript, error) {
	count, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	var scripts []*script.PlutusScript
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
		s, err := script.PlutusScriptFromCBOR(r, lang)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return scripts, nil
}

// ToCBOR re-emits the cached bytes verbatim when present (preserving
// whichever of the three historical shapes was decoded); otherwise it
// emits the current tag-259 sparse map form.
func (aux *AuxiliaryData) ToCBOR(w *cbor.CborWriter) error {
	if aux.HasCache() {
		return w.WriteRaw(aux.Cached())
	}
	if err := w.WriteTag(auxiliaryDataTag); err != nil {
		return err
	}

	type entry struct {
		key   uint64
		write func(*cbor.CborWriter) error
	}
	var entries []entry
	add := func(key uint64, present bool, fn func(*cbor.CborWriter) error) {
		if present {
			entries = append(entries, entry{key: key, write: fn})
		}
	}

	add(auxKeyMetadata, len(aux.MetadataKeys) > 0, func(w *cbor.CborWriter) error {
		return writeMetadataMap(w, aux.MetadataKeys, aux.MetadataValues)
	})
	add(auxKeyNativeScripts, len(aux.NativeScripts) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(aux.NativeScripts), func(i int) error { return aux.NativeScripts[i].ToCBOR(w) })
	})
	add(auxKeyPlutusV1, len(aux.PlutusV1) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(aux.PlutusV1), func(i int) error { return aux.PlutusV1[i].ToCBOR(w) })
	})
	add(auxKeyPlutusV2, len(aux.PlutusV2) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(aux.PlutusV2), func(i int) error { return aux.PlutusV2[i].ToCBOR(w) })
	})
	add(auxKeyPlutusV3, len(aux.PlutusV3) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(aux.PlutusV3), func(i int) error { return aux.PlutusV3[i].ToCBOR(w) })
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	if err := w.WriteStartMap(len(entries)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := w.WriteUint64(e.key); err != nil {
			return err
		}
		if err := e.write(w); err != nil {
			return err
		}
	}
	return w.WriteEndMap()
}

func writeMetadataMap(w *cbor.CborWriter, keys []uint64, values [][]byte) error {
	if err := w.WriteStartMap(len(keys)); err != nil {
		return err
	}
	for i, key := range keys {
		if err := w.WriteUint64(key); err != nil {
			return err
		}
		if err := w.WriteRaw(values[i]); err != nil {
			return err
		}
	}
	return w.WriteEndMap()
}

func writeArrayOf(w *cbor.CborWriter, n int, write func(i int) error) error {
	if err := w.WriteStartArray(n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := write(i); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}
