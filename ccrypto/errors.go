package ccrypto

import "errors"

// ErrInvalidKeySize is returned when constructing an Ed25519PublicKey from
// a byte slice of the wrong length.
var ErrInvalidKeySize = errors.New("ccrypto: invalid public key size")

// ErrInvalidSignatureSize is returned when constructing an Ed25519Signature
// from a byte slice of the wrong length.
var ErrInvalidSignatureSize = errors.New("ccrypto: invalid signature size")
