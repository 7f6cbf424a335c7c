package witness

import (
	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
	"github.com/biglup-go/cardano-serialization/script"
)

const (
	witnessKeyVKeys           = 0
	witnessKeyNativeScripts   = 1
	witnessKeyBootstraps      = 2
	witnessKeyPlutusV1Scripts = 3
	witnessKeyPlutusData      = 4
	witnessKeyRedeemers       = 5
	witnessKeyPlutusV2Scripts = 6
	witnessKeyPlutusV3Scripts = 7
)

// TransactionWitnessSet gathers every proof element a transaction carries:
// vkey signatures, native and Plutus scripts, bootstrap witnesses, Plutus
// datums, and redeemers. Like ProtocolParamUpdate it is a sparse keyed
// map — only present fields are encoded.
type TransactionWitnessSet struct {
	common.CBORCache
	VKeyWitnesses     []*VKeyWitness
	NativeScripts     []script.NativeScript
	BootstrapWitnesses []*BootstrapWitness
	PlutusV1Scripts   []*script.PlutusScript
	PlutusV2Scripts   []*script.PlutusScript
	PlutusV3Scripts   []*script.PlutusScript
	PlutusData        []*script.PlutusData
	Redeemers         *RedeemerList
}

// TransactionWitnessSetFromCBOR decodes the sparse witness set map.
func TransactionWitnessSetFromCBOR(r *cbor.CborReader) (*TransactionWitnessSet, error) {
	raw, err := r.ReadEncodedValue()
	if err != nil {
		return nil, err
	}
	inner := cbor.NewCborReader(raw)

	ws := &TransactionWitnessSet{}
	count, err := inner.ReadStartMap()
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]bool)
	for i := 0; count < 0 || i < count; i++ {
		if count < 0 {
			state, err := inner.PeekState()
			if err != nil {
				return nil, err
			}
			if state == cbor.StateEndMap {
				break
			}
		}
		key, err := inner.ReadUint64()
		if err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, cbor.NewDomainError(cbor.ErrDuplicatedCborMapKey, "witness_set", "duplicate key")
		}
		seen[key] = true

		if err := ws.readField(inner, key); err != nil {
			return nil, err
		}
	}
	if err := inner.ReadEndMap(); err != nil {
		return nil, err
	}
	ws.SetCached(raw)
	return ws, nil
}

func (ws *TransactionWitnessSet) readField(r *cbor.CborReader, key uint64) error {
	switch key {
	case witnessKeyVKeys:
		items, err := readArrayOf(r, "vkeywitnesses", func(r *cbor.CborReader) (*VKeyWitness, error) {
			return VKeyWitnessFromCBOR(r)
		})
		if err != nil {
			return err
		}
		ws.VKeyWitnesses = items
	case witnessKeyNativeScripts:
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
			s, err := script.FromCBOR(r)
			if err != nil {
				return err
			}
			ws.NativeScripts = append(ws.NativeScripts, s)
		}
		if err := r.ReadEndArray(); err != nil {
			return err
		}
	case witnessKeyBootstraps:
		items, err := readArrayOf(r, "bootstrap_witnesses", func(r *cbor.CborReader) (*BootstrapWitness, error) {
			return BootstrapWitnessFromCBOR(r)
		})
		if err != nil {
			return err
		}
		ws.BootstrapWitnesses = items
	case witnessKeyPlutusV1Scripts:
		items, err := readPlutusScriptList(r, script.PlutusV1)
		if err != nil {
			return err
		}
		ws.PlutusV1Scripts = items
	case witnessKeyPlutusV2Scripts:
		items, err := readPlutusScriptList(r, script.PlutusV2)
		if err != nil {
			return err
		}
		ws.PlutusV2Scripts = items
	case witnessKeyPlutusV3Scripts:
		items, err := readPlutusScriptList(r, script.PlutusV3)
		if err != nil {
			return err
		}
		ws.PlutusV3Scripts = items
	case witnessKeyPlutusData:
		items, err := readArrayOf(r, "plutus_data", script.PlutusDataFromCBOR)
		if err != nil {
			return err
		}
		ws.PlutusData = items
	case witnessKeyRedeemers:
		redeemers, err := RedeemerListFromCBOR(r)
		if err != nil {
			return err
		}
		ws.Redeemers = redeemers
	default:
		return cbor.NewDomainError(cbor.ErrInvalidCborMapKey, "witness_set", "unrecognized key")
	}
	return nil
}

func readArrayOf[T any](r *cbor.CborReader, name string, decode func(*cbor.CborReader) (T, error)) ([]T, error) {
	count, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	var items []T
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
		item, err := decode(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	return items, nil
}

func readPlutusScriptList(r *cbor.CborReader, lang script.PlutusLanguage) ([]*script.PlutusScript, error) {
	return readArrayOf(r, "plutus_scripts", func(r *cbor.CborReader) (*script.PlutusScript, error) {
		return script.PlutusScriptFromCBOR(r, lang)
	})
}

// ToCBOR encodes the witness set's sparse map, emitting only present
// fields, re-emitting the original bytes verbatim when cached.
func (ws *TransactionWitnessSet) ToCBOR(w *cbor.CborWriter) error {
	if ws.HasCache() {
		return w.WriteRaw(ws.Cached())
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

	add(witnessKeyVKeys, len(ws.VKeyWitnesses) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(ws.VKeyWitnesses), func(i int) error { return ws.VKeyWitnesses[i].ToCBOR(w) })
	})
	add(witnessKeyNativeScripts, len(ws.NativeScripts) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(ws.NativeScripts), func(i int) error { return ws.NativeScripts[i].ToCBOR(w) })
	})
	add(witnessKeyBootstraps, len(ws.BootstrapWitnesses) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(ws.BootstrapWitnesses), func(i int) error { return ws.BootstrapWitnesses[i].ToCBOR(w) })
	})
	add(witnessKeyPlutusV1Scripts, len(ws.PlutusV1Scripts) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(ws.PlutusV1Scripts), func(i int) error { return ws.PlutusV1Scripts[i].ToCBOR(w) })
	})
	add(witnessKeyPlutusData, len(ws.PlutusData) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(ws.PlutusData), func(i int) error { return ws.PlutusData[i].ToCBOR(w) })
	})
	add(witnessKeyRedeemers, ws.Redeemers != nil, func(w *cbor.CborWriter) error {
		return ws.Redeemers.ToCBOR(w)
	})
	add(witnessKeyPlutusV2Scripts, len(ws.PlutusV2Scripts) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(ws.PlutusV2Scripts), func(i int) error { return ws.PlutusV2Scripts[i].ToCBOR(w) })
	})
	add(witnessKeyPlutusV3Scripts, len(ws.PlutusV3Scripts) > 0, func(w *cbor.CborWriter) error {
		return writeArrayOf(w, len(ws.PlutusV3Scripts), func(i int) error { return ws.PlutusV3Scripts[i].ToCBOR(w) })
	})

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

// ClearCBORCache drops this witness set's cache and its children's,
// forcing full re-derivation on the next encode.
func (ws *TransactionWitnessSet) ClearCBORCache() {
	ws.Clear()
	if ws.Redeemers != nil {
		ws.Redeemers.Clear()
	}
}
