package common

import (
	"testing"

	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/stretchr/testify/require"
)

func TestCredentialRoundTrip(t *testing.T) {
	hash := make([]byte, CredentialHashLen)
	for i := range hash {
		hash[i] = byte(i)
	}
	cred, err := NewCredential(CredentialTypeScriptHash, hash)
	require.NoError(t, err)

	w := cbor.NewCborWriter()
	require.NoError(t, cred.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := CredentialFromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, 0, cred.Compare(got))
}

func TestCredentialOrdering(t *testing.T) {
	lo, _ := NewCredential(CredentialTypeKeyHash, make([]byte, CredentialHashLen))
	hiHash := make([]byte, CredentialHashLen)
	hiHash[0] = 1
	hi, _ := NewCredential(CredentialTypeKeyHash, hiHash)
	require.True(t, lo.Compare(hi) < 0)
	require.True(t, hi.Compare(lo) > 0)
}

func TestOrderedMapStaysSorted(t *testing.T) {
	m := NewOrderedMap[int, string](func(a, b int) int { return a - b })
	m.Insert(5, "five")
	m.Insert(1, "one")
	m.Insert(3, "three")

	var keys []int
	m.Each(func(k int, v string) { keys = append(keys, k) })
	require.Equal(t, []int{1, 3, 5}, keys)

	m.Insert(3, "THREE")
	v, ok := m.Get(3)
	require.True(t, ok)
	require.Equal(t, "THREE", v)
}

func TestOrderedMapDeferredFreeze(t *testing.T) {
	m := NewOrderedMap[int, int](func(a, b int) int { return a - b })
	m.InsertDeferred(3, 30)
	m.InsertDeferred(1, 10)
	m.InsertDeferred(2, 20)

	var keys []int
	m.Each(func(k, v int) { keys = append(keys, k) })
	require.Equal(t, []int{1, 2, 3}, keys)
}

func TestRelayRoundTripAllVariants(t *testing.T) {
	port := uint16(3001)
	variants := []*Relay{
		{Type: RelayTypeSingleHostAddr, Port: &port, IPv4: []byte{127, 0, 0, 1}},
		{Type: RelayTypeSingleHostName, Port: &port, DNSName: "relay.example.com"},
		{Type: RelayTypeMultiHostName, DNSName: "pool.example.com"},
	}

	for _, relay := range variants {
		w := cbor.NewCborWriter()
		require.NoError(t, relay.ToCBOR(w))

		r := cbor.NewCborReader(w.Bytes())
		got, err := RelayFromCBOR(r)
		require.NoError(t, err)
		require.Equal(t, relay.Type, got.Type)
		require.Equal(t, relay.DNSName, got.DNSName)
	}
}

func TestValueRoundTripAdaOnly(t *testing.T) {
	v := &Value{Coin: 1_500_000}
	w := cbor.NewCborWriter()
	require.NoError(t, v.ToCBOR(w))
	require.Equal(t, []byte{0x1a, 0x00, 0x16, 0xe3, 0x60}, w.Bytes())

	r := cbor.NewCborReader(w.Bytes())
	got, err := ValueFromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, v.Coin, got.Coin)
	require.Nil(t, got.Assets)
}

func TestValueRoundTripWithAssets(t *testing.T) {
	assets := NewMultiAsset()
	var policy PolicyID
	policy[0] = 0xAB
	assets.Set(policy, AssetName("token"), 42)

	v := &Value{Coin: 2_000_000, Assets: assets}
	w := cbor.NewCborWriter()
	require.NoError(t, v.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := ValueFromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, v.Coin, got.Coin)
	qty, ok := got.Assets.Get(policy, AssetName("token"))
	require.True(t, ok)
	require.Equal(t, int64(42), qty)
}
