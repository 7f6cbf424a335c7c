// Package script implements native scripts (with CBOR and JSON ingest),
// opaque Plutus script byte wrappers, and the Plutus Data CBOR wrapper
// shape.
package script

import (
	"encoding/hex"
	"encoding/json"

	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/common"
)

// Kind discriminates the six native script variants.
type Kind uint64

const (
	KindPubkey           Kind = 0
	KindAll              Kind = 1
	KindAny              Kind = 2
	KindNOfK             Kind = 3
	KindInvalidBefore    Kind = 4
	KindInvalidHereafter Kind = 5
)

func (k Kind) String() string {
	switch k {
	case KindPubkey:
		return "sig"
	case KindAll:
		return "all"
	case KindAny:
		return "any"
	case KindNOfK:
		return "atLeast"
	case KindInvalidBefore:
		return "after"
	case KindInvalidHereafter:
		return "before"
	default:
		return "unknown"
	}
}

func kindName(v uint64) string { return Kind(v).String() }

// NativeScript is implemented by every native script variant.
type NativeScript interface {
	Kind() Kind
	ToCBOR(w *cbor.CborWriter) error
}

// FromCBOR peeks the script's array discriminant and dispatches to the
// matching variant decoder.
func FromCBOR(r *cbor.CborReader) (NativeScript, error) {
	discriminant, err := r.PeekArrayDiscriminant()
	if err != nil {
		return nil, err
	}

	switch Kind(discriminant) {
	case KindPubkey:
		return pubkeyFromCBOR(r)
	case KindAll:
		return allFromCBOR(r)
	case KindAny:
		return anyFromCBOR(r)
	case KindNOfK:
		return nOfKFromCBOR(r)
	case KindInvalidBefore:
		return invalidBeforeFromCBOR(r)
	case KindInvalidHereafter:
		return invalidHereafterFromCBOR(r)
	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidNativeScriptType, "native_script", "unknown script type")
	}
}

// Pubkey requires a signature from the given key hash.
type Pubkey struct {
	KeyHash [28]byte
}

func (s *Pubkey) Kind() Kind { return KindPubkey }

func pubkeyFromCBOR(r *cbor.CborReader) (*Pubkey, error) {
	if err := cbor.ValidateArrayOfNElements("script_pubkey", r, 2); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("script_pubkey", "type", r, uint64(KindPubkey), kindName, cbor.ErrInvalidNativeScriptType); err != nil {
		return nil, err
	}
	hash, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(hash) != 28 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "script_pubkey", "key hash must be 28 bytes")
	}
	s := &Pubkey{}
	copy(s.KeyHash[:], hash)
	if err := cbor.ValidateEndArray("script_pubkey", r); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Pubkey) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindPubkey)); err != nil {
		return err
	}
	if err := w.WriteByteString(s.KeyHash[:]); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// All requires every sub-script to be satisfied.
type All struct {
	Scripts []NativeScript
}

func (s *All) Kind() Kind { return KindAll }

func allFromCBOR(r *cbor.CborReader) (*All, error) {
	scripts, err := nativeScriptListFromCBOR(r, "script_all", KindAll)
	if err != nil {
		return nil, err
	}
	return &All{Scripts: scripts}, nil
}

func (s *All) ToCBOR(w *cbor.CborWriter) error {
	return nativeScriptListToCBOR(w, KindAll, s.Scripts)
}

// Any requires at least one sub-script to be satisfied.
type Any struct {
	Scripts []NativeScript
}

func (s *Any) Kind() Kind { return KindAny }

func anyFromCBOR(r *cbor.CborReader) (*Any, error) {
	scripts, err := nativeScriptListFromCBOR(r, "script_any", KindAny)
	if err != nil {
		return nil, err
	}
	return &Any{Scripts: scripts}, nil
}

func (s *Any) ToCBOR(w *cbor.CborWriter) error {
	return nativeScriptListToCBOR(w, KindAny, s.Scripts)
}

func nativeScriptListFromCBOR(r *cbor.CborReader, name string, kind Kind) ([]NativeScript, error) {
	if err := cbor.ValidateArrayOfNElements(name, r, 2); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue(name, "type", r, uint64(kind), kindName, cbor.ErrInvalidNativeScriptType); err != nil {
		return nil, err
	}
	count, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	var scripts []NativeScript
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
		sub, err := FromCBOR(r)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, sub)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray(name, r); err != nil {
		return nil, err
	}
	return scripts, nil
}

func nativeScriptListToCBOR(w *cbor.CborWriter, kind Kind, scripts []NativeScript) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(kind)); err != nil {
		return err
	}
	if err := w.WriteStartArray(len(scripts)); err != nil {
		return err
	}
	for _, s := range scripts {
		if err := s.ToCBOR(w); err != nil {
			return err
		}
	}
	if err := w.WriteEndArray(); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// NOfK requires at least Required of Scripts to be satisfied.
type NOfK struct {
	Required uint64
	Scripts  []NativeScript
}

func (s *NOfK) Kind() Kind { return KindNOfK }

func nOfKFromCBOR(r *cbor.CborReader) (*NOfK, error) {
	if err := cbor.ValidateArrayOfNElements("script_n_of_k", r, 3); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEnumValue("script_n_of_k", "type", r, uint64(KindNOfK), kindName, cbor.ErrInvalidNativeScriptType); err != nil {
		return nil, err
	}
	required, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	var scripts []NativeScript
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
		sub, err := FromCBOR(r)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, sub)
	}
	if err := r.ReadEndArray(); err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("script_n_of_k", r); err != nil {
		return nil, err
	}
	return &NOfK{Required: required, Scripts: scripts}, nil
}

func (s *NOfK) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(3); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(KindNOfK)); err != nil {
		return err
	}
	if err := w.WriteUint64(s.Required); err != nil {
		return err
	}
	if err := w.WriteStartArray(len(s.Scripts)); err != nil {
		return err
	}
	for _, sub := range s.Scripts {
		if err := sub.ToCBOR(w); err != nil {
			return err
		}
	}
	return w.WriteEndArray()
}

// InvalidBefore is satisfied only at or after the given slot (the
// "invalid_before" / time-lock-start variant).
type InvalidBefore struct {
	Slot uint64
}

func (s *InvalidBefore) Kind() Kind { return KindInvalidBefore }

func invalidBeforeFromCBOR(r *cbor.CborReader) (*InvalidBefore, error) {
	slot, err := slotLockFromCBOR(r, "invalid_before", KindInvalidBefore)
	if err != nil {
		return nil, err
	}
	return &InvalidBefore{Slot: slot}, nil
}

func (s *InvalidBefore) ToCBOR(w *cbor.CborWriter) error {
	return slotLockToCBOR(w, KindInvalidBefore, s.Slot)
}

// InvalidHereafter is satisfied only strictly before the given slot (the
// "invalid_hereafter" / time-lock-expiry variant).
type InvalidHereafter struct {
	Slot uint64
}

func (s *InvalidHereafter) Kind() Kind { return KindInvalidHereafter }

func invalidHereafterFromCBOR(r *cbor.CborReader) (*InvalidHereafter, error) {
	slot, err := slotLockFromCBOR(r, "invalid_hereafter", KindInvalidHereafter)
	if err != nil {
		return nil, err
	}
	return &InvalidHereafter{Slot: slot}, nil
}

func (s *InvalidHereafter) ToCBOR(w *cbor.CborWriter) error {
	return slotLockToCBOR(w, KindInvalidHereafter, s.Slot)
}

func slotLockFromCBOR(r *cbor.CborReader, name string, kind Kind) (uint64, error) {
	if err := cbor.ValidateArrayOfNElements(name, r, 2); err != nil {
		return 0, err
	}
	if err := cbor.ValidateEnumValue(name, "type", r, uint64(kind), kindName, cbor.ErrInvalidNativeScriptType); err != nil {
		return 0, err
	}
	slot, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	if err := cbor.ValidateEndArray(name, r); err != nil {
		return 0, err
	}
	return slot, nil
}

func slotLockToCBOR(w *cbor.CborWriter, kind Kind, slot uint64) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(kind)); err != nil {
		return err
	}
	if err := w.WriteUint64(slot); err != nil {
		return err
	}
	return w.WriteEndArray()
}

// jsonNativeScript mirrors the native-script JSON ingest shape Cardano
// tooling emits: {"type": "sig"|"all"|"any"|"atLeast"|"before"|"after",
// "keyHash"/"slot"/"required"/"scripts": ...}.
type jsonNativeScript struct {
	Type     string             `json:"type"`
	KeyHash  string             `json:"keyHash,omitempty"`
	Slot     *uint64            `json:"slot,omitempty"`
	Required *uint64            `json:"required,omitempty"`
	Scripts  []jsonNativeScript `json:"scripts,omitempty"`
}

// FromJSON parses the native-script JSON ingest format into a NativeScript
// tree.
func FromJSON(data []byte) (NativeScript, error) {
	var doc jsonNativeScript
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, cbor.NewDomainError(cbor.ErrInvalidJSON, "native_script", err.Error())
	}
	return nativeScriptFromJSONDoc(&doc)
}

func nativeScriptFromJSONDoc(doc *jsonNativeScript) (NativeScript, error) {
	switch doc.Type {
	case "sig":
		keyHashBytes, err := hex.DecodeString(doc.KeyHash)
		if err != nil {
			return nil, cbor.NewDomainError(cbor.ErrInvalidJSON, "native_script", "keyHash must be hex")
		}
		hash, err := common.NewCredential(common.CredentialTypeKeyHash, keyHashBytes)
		if err != nil {
			return nil, err
		}
		var s Pubkey
		copy(s.KeyHash[:], hash.Hash())
		return &s, nil
	case "all":
		subs, err := nativeScriptListFromJSONDoc(doc.Scripts)
		if err != nil {
			return nil, err
		}
		return &All{Scripts: subs}, nil
	case "any":
		subs, err := nativeScriptListFromJSONDoc(doc.Scripts)
		if err != nil {
			return nil, err
		}
		return &Any{Scripts: subs}, nil
	case "atLeast":
		if doc.Required == nil {
			return nil, cbor.NewDomainError(cbor.ErrInvalidJSON, "native_script", "atLeast requires \"required\"")
		}
		subs, err := nativeScriptListFromJSONDoc(doc.Scripts)
		if err != nil {
			return nil, err
		}
		return &NOfK{Required: *doc.Required, Scripts: subs}, nil
	case "after":
		if doc.Slot == nil {
			return nil, cbor.NewDomainError(cbor.ErrInvalidJSON, "native_script", "after requires \"slot\"")
		}
		return &InvalidBefore{Slot: *doc.Slot}, nil
	case "before":
		if doc.Slot == nil {
			return nil, cbor.NewDomainError(cbor.ErrInvalidJSON, "native_script", "before requires \"slot\"")
		}
		return &InvalidHereafter{Slot: *doc.Slot}, nil
	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidNativeScriptType, "native_script", "unknown json type "+doc.Type)
	}
}

func nativeScriptListFromJSONDoc(docs []jsonNativeScript) ([]NativeScript, error) {
	scripts := make([]NativeScript, 0, len(docs))
	for i := range docs {
		s, err := nativeScriptFromJSONDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}
