package common

import (
	"bytes"

	"github.com/biglup-go/cardano-serialization/cbor"
)

// CredentialType discriminates the two forms a Cardano credential can
// take: a verification-key hash, or a native/Plutus script hash. Both are
// 28-byte blake2b-224 digests; only their provenance differs.
type CredentialType uint64

const (
	// CredentialTypeKeyHash is a verification-key-hash credential.
	CredentialTypeKeyHash CredentialType = 0
	// CredentialTypeScriptHash is a script-hash credential.
	CredentialTypeScriptHash CredentialType = 1
)

func (t CredentialType) String() string {
	switch t {
	case CredentialTypeKeyHash:
		return "key_hash"
	case CredentialTypeScriptHash:
		return "script_hash"
	default:
		return "unknown"
	}
}

// CredentialHashLen is the fixed length of a credential's hash digest
// (blake2b-224).
const CredentialHashLen = 28

// Credential identifies a stake/governance/committee principal by either a
// key hash or a script hash. It is the element type of the sorted
// containers spec.md §3 describes (e.g. MIR-to-stake-credentials maps,
// committee member maps), so it exposes Compare for use as their
// comparator.
type Credential struct {
	kind CredentialType
	hash [CredentialHashLen]byte
}

// NewCredential constructs a credential of the given kind from a 28-byte
// hash.
func NewCredential(kind CredentialType, hash []byte) (*Credential, error) {
	if len(hash) != CredentialHashLen {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "credential",
			"hash must be 28 bytes")
	}
	c := &Credential{kind: kind}
	copy(c.hash[:], hash)
	return c, nil
}

// Type returns the credential's discriminant.
func (c *Credential) Type() CredentialType { return c.kind }

// Hash returns the credential's 28-byte digest.
func (c *Credential) Hash() []byte { return c.hash[:] }

// Compare orders credentials first by kind then by hash, matching the
// canonical ordering Cardano's ledger uses for credential-keyed maps.
func (c *Credential) Compare(other *Credential) int {
	if c.kind != other.kind {
		if c.kind < other.kind {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.hash[:], other.hash[:])
}

// CredentialFromCBOR decodes a credential from its canonical 2-element array form:
// [type, hash].
func CredentialFromCBOR(r *cbor.CborReader) (*Credential, error) {
	if err := cbor.ValidateArrayOfNElements("credential", r, 2); err != nil {
		return nil, err
	}
	kind, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if kind != uint64(CredentialTypeKeyHash) && kind != uint64(CredentialTypeScriptHash) {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "credential", "unknown credential type")
	}
	hash, err := r.ReadByteString()
	if err != nil {
		return nil, err
	}
	cred, err := NewCredential(CredentialType(kind), hash)
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("credential", r); err != nil {
		return nil, err
	}
	return cred, nil
}

// ToCBOR encodes the credential as its canonical 2-element array form.
func (c *Credential) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(uint64(c.kind)); err != nil {
		return err
	}
	if err := w.WriteByteString(c.hash[:]); err != nil {
		return err
	}
	return w.WriteEndArray()
}
