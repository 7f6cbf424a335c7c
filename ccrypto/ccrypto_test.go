package ccrypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlake2bHasherKnownVector(t *testing.T) {
	// blake2b-256 of the empty input.
	want := "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	digest, err := Blake2bHasher{}.Hash(nil, 32)
	require.NoError(t, err)
	require.Equal(t, want, hex.EncodeToString(digest))
}

func TestEd25519KeyRoundTrip(t *testing.T) {
	raw := make([]byte, Ed25519PublicKeySize)
	for i := range raw {
		raw[i] = byte(i)
	}
	key, err := NewEd25519PublicKey(raw)
	require.NoError(t, err)
	require.Equal(t, raw, key.Bytes())

	_, err = NewEd25519PublicKey(raw[:4])
	require.ErrorIs(t, err, ErrInvalidKeySize)
}
