package common

import "github.com/biglup-go/cardano-serialization/cbor"

// DRepType discriminates the four forms a delegated representative
// reference can take.
type DRepType uint64

const (
	// DRepTypeKeyHash delegates to a DRep identified by a key hash credential.
	DRepTypeKeyHash DRepType = 0
	// DRepTypeScriptHash delegates to a DRep identified by a script hash credential.
	DRepTypeScriptHash DRepType = 1
	// DRepTypeAlwaysAbstain is the predefined "always abstain" DRep.
	DRepTypeAlwaysAbstain DRepType = 2
	// DRepTypeAlwaysNoConfidence is the predefined "always no confidence" DRep.
	DRepTypeAlwaysNoConfidence DRepType = 3
)

// DRep is a tagged-variant reference to a delegated representative: either
// a credential-backed DRep or one of the two predefined DReps (always
// abstain, always no confidence).
type DRep struct {
	Type       DRepType
	Credential *Credential // set iff Type is KeyHash or ScriptHash
}

// DRepFromCBOR decodes the 1- or 2-element array form: predefined DReps
// encode as [2] / [3]; credential-backed DReps encode as [0, hash] /
// [1, hash].
func DRepFromCBOR(r *cbor.CborReader) (*DRep, error) {
	length, err := r.ReadStartArray()
	if err != nil {
		return nil, err
	}
	kind, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}

	switch DRepType(kind) {
	case DRepTypeKeyHash, DRepTypeScriptHash:
		if length != 2 {
			return nil, cbor.NewDomainError(cbor.ErrInvalidCborArraySize, "drep", "expected 2 elements")
		}
		hash, err := r.ReadByteString()
		if err != nil {
			return nil, err
		}
		credType := CredentialTypeKeyHash
		if DRepType(kind) == DRepTypeScriptHash {
			credType = CredentialTypeScriptHash
		}
		cred, err := NewCredential(credType, hash)
		if err != nil {
			return nil, err
		}
		if err := cbor.ValidateEndArray("drep", r); err != nil {
			return nil, err
		}
		return &DRep{Type: DRepType(kind), Credential: cred}, nil

	case DRepTypeAlwaysAbstain, DRepTypeAlwaysNoConfidence:
		if length != 1 {
			return nil, cbor.NewDomainError(cbor.ErrInvalidCborArraySize, "drep", "expected 1 element")
		}
		if err := cbor.ValidateEndArray("drep", r); err != nil {
			return nil, err
		}
		return &DRep{Type: DRepType(kind)}, nil

	default:
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "drep", "unknown drep type")
	}
}

// ToCBOR encodes the DRep reference.
func (d *DRep) ToCBOR(w *cbor.CborWriter) error {
	switch d.Type {
	case DRepTypeKeyHash, DRepTypeScriptHash:
		if err := w.WriteStartArray(2); err != nil {
			return err
		}
		if err := w.WriteUint64(uint64(d.Type)); err != nil {
			return err
		}
		if err := w.WriteByteString(d.Credential.Hash()); err != nil {
			return err
		}
		return w.WriteEndArray()
	case DRepTypeAlwaysAbstain, DRepTypeAlwaysNoConfidence:
		if err := w.WriteStartArray(1); err != nil {
			return err
		}
		if err := w.WriteUint64(uint64(d.Type)); err != nil {
			return err
		}
		return w.WriteEndArray()
	default:
		return cbor.NewDomainError(cbor.ErrInvalidArgument, "drep", "unknown drep type")
	}
}

// Anchor is a governance metadata pointer: a URL plus the blake2b-256 hash
// of the document it resolves to. Used by DRep registration, committee
// votes, and governance actions.
type Anchor struct {
	URL        string
	DataHash   [32]byte
}

// AnchorFromCBOR decodes the 2-element [url, data_hash] array form.
func AnchorFromCBOR(r *cbor.CborReader) (*Anchor, error) {
	if err := cbor.ValidateArrayOfNElements("anchor", r, 2); err != nil {
		return nil, err
	}
	url, err := r.ReadTextString()
	if err != nil {
		return nil, err
	}
	hash, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	if len(hash) != 32 {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "anchor", "data_hash must be 32 bytes")
	}
	a := &Anchor{URL: url}
	copy(a.DataHash[:], hash)
	if err := cbor.ValidateEndArray("anchor", r); err != nil {
		return nil, err
	}
	return a, nil
}

// ToCBOR encodes the anchor.
func (a *Anchor) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteTextString(a.URL); err != nil {
		return err
	}
	if err := w.WriteByteString(a.DataHash[:]); err != nil {
		return err
	}
	return w.WriteEndArray()
}
