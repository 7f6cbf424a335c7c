// Package ccrypto defines the external collaborator interfaces spec.md §6
// treats as out of scope for the CBOR/domain core (cryptographic
// primitives, proper), plus a default blake2b-backed Hasher the domain
// layer uses to compute transaction and auxiliary-data identifiers.
package ccrypto

import (
	"crypto/ed25519"

	"golang.org/x/crypto/blake2b"
)

// Hasher computes a fixed-length digest of data. Cardano uses blake2b-256
// for transaction/script/auxiliary-data hashes and blake2b-224 for
// key/script hashes; outLen selects which.
type Hasher interface {
	Hash(data []byte, outLen int) ([]byte, error)
}

// Blake2bHasher is the default Hasher implementation.
type Blake2bHasher struct{}

// Hash computes blake2b over data, truncated to outLen bytes via blake2b's
// native variable digest size support (outLen must be 1..64).
func (Blake2bHasher) Hash(data []byte, outLen int) ([]byte, error) {
	h, err := blake2b.New(outLen, nil)
	if err != nil {
		return nil, err
	}
	if _, err := h.Write(data); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// DefaultHasher is the Hasher used when a domain constructor is not given
// one explicitly.
var DefaultHasher Hasher = Blake2bHasher{}

// Ed25519PublicKeySize is the fixed size of an Ed25519 public key.
const Ed25519PublicKeySize = ed25519.PublicKeySize

// Ed25519SignatureSize is the fixed size of an Ed25519 signature.
const Ed25519SignatureSize = ed25519.SignatureSize

// Ed25519PublicKey is an opaque, fixed-size Ed25519 public key container.
type Ed25519PublicKey [Ed25519PublicKeySize]byte

// NewEd25519PublicKey constructs a key from raw bytes, failing if the
// length does not match Ed25519PublicKeySize.
func NewEd25519PublicKey(b []byte) (Ed25519PublicKey, error) {
	var k Ed25519PublicKey
	if len(b) != Ed25519PublicKeySize {
		return k, ErrInvalidKeySize
	}
	copy(k[:], b)
	return k, nil
}

// Bytes returns the key's raw bytes.
func (k Ed25519PublicKey) Bytes() []byte {
	return k[:]
}

// Ed25519Signature is an opaque, fixed-size Ed25519 signature container.
type Ed25519Signature [Ed25519SignatureSize]byte

// NewEd25519Signature constructs a signature from raw bytes, failing if the
// length does not match Ed25519SignatureSize.
func NewEd25519Signature(b []byte) (Ed25519Signature, error) {
	var s Ed25519Signature
	if len(b) != Ed25519SignatureSize {
		return s, ErrInvalidSignatureSize
	}
	copy(s[:], b)
	return s, nil
}

// Bytes returns the signature's raw bytes.
func (s Ed25519Signature) Bytes() []byte {
	return s[:]
}

// Verify checks sig against msg under pub using the standard library's
// Ed25519 implementation.
func Verify(pub Ed25519PublicKey, msg []byte, sig Ed25519Signature) bool {
	return ed25519.Verify(pub[:], msg, sig[:])
}
