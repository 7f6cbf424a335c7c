package witness

import (
	"testing"

	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/biglup-go/cardano-serialization/ccrypto"
	"github.com/biglup-go/cardano-serialization/gov"
	"github.com/biglup-go/cardano-serialization/script"
	"github.com/stretchr/testify/require"
)

func TestVKeyWitnessRoundTrip(t *testing.T) {
	var vkey ccrypto.Ed25519PublicKey
	vkey[0] = 1
	var sig ccrypto.Ed25519Signature
	sig[0] = 2
	v := &VKeyWitness{VKey: vkey, Signature: sig}

	w := cbor.NewCborWriter()
	require.NoError(t, v.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := VKeyWitnessFromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, v.VKey, got.VKey)
	require.Equal(t, v.Signature, got.Signature)
}

func TestBootstrapWitnessRoundTrip(t *testing.T) {
	var vkey ccrypto.Ed25519PublicKey
	var sig ccrypto.Ed25519Signature
	b := &BootstrapWitness{
		VKey:       vkey,
		Signature:  sig,
		ChainCode:  []byte{1, 2, 3, 4},
		Attributes: []byte{},
	}
	w := cbor.NewCborWriter()
	require.NoError(t, b.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := BootstrapWitnessFromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, b.ChainCode, got.ChainCode)
}

func TestRedeemerListMapFormRoundTrip(t *testing.T) {
	list := &RedeemerList{
		Items: []Redeemer{
			{Tag: RedeemerTagMint, Index: 0, Data: &script.PlutusData{Kind: script.PlutusDataKindInteger, Int: 1}, ExUnits: &gov.ExUnits{Memory: 100, Steps: 200}},
			{Tag: RedeemerTagSpend, Index: 1, Data: &script.PlutusData{Kind: script.PlutusDataKindInteger, Int: 2}, ExUnits: &gov.ExUnits{Memory: 50, Steps: 60}},
		},
	}
	w := cbor.NewCborWriter()
	require.NoError(t, list.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := RedeemerListFromCBOR(r)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.Equal(t, RedeemerTagSpend, got.Items[0].Tag)
	require.Equal(t, RedeemerTagMint, got.Items[1].Tag)
}

func TestRedeemerListArrayFormDecodes(t *testing.T) {
	w := cbor.NewCborWriter()
	require.NoError(t, w.WriteStartArray(1))
	require.NoError(t, w.WriteStartArray(4))
	require.NoError(t, w.WriteUint64(uint64(RedeemerTagSpend)))
	require.NoError(t, w.WriteUint64(0))
	require.NoError(t, w.WriteInt64(7))
	exUnits := &gov.ExUnits{Memory: 1, Steps: 2}
	require.NoError(t, exUnits.ToCBOR(w))
	require.NoError(t, w.WriteEndArray())
	require.NoError(t, w.WriteEndArray())

	r := cbor.NewCborReader(w.Bytes())
	got, err := RedeemerListFromCBOR(r)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, RedeemerTagSpend, got.Items[0].Tag)
}

func TestRedeemerListArrayFormCachePreservesBytes(t *testing.T) {
	w := cbor.NewCborWriter()
	require.NoError(t, w.WriteStartArray(2))
	// Written in non-canonical order (Mint before Spend) so a re-sort on
	// encode would change the bytes if the cache weren't honored.
	require.NoError(t, w.WriteStartArray(4))
	require.NoError(t, w.WriteUint64(uint64(RedeemerTagMint)))
	require.NoError(t, w.WriteUint64(0))
	require.NoError(t, w.WriteInt64(1))
	require.NoError(t, (&gov.ExUnits{Memory: 1, Steps: 2}).ToCBOR(w))
	require.NoError(t, w.WriteEndArray())
	require.NoError(t, w.WriteStartArray(4))
	require.NoError(t, w.WriteUint64(uint64(RedeemerTagSpend)))
	require.NoError(t, w.WriteUint64(0))
	require.NoError(t, w.WriteInt64(2))
	require.NoError(t, (&gov.ExUnits{Memory: 3, Steps: 4}).ToCBOR(w))
	require.NoError(t, w.WriteEndArray())
	require.NoError(t, w.WriteEndArray())
	original := w.Bytes()

	r := cbor.NewCborReader(original)
	got, err := RedeemerListFromCBOR(r)
	require.NoError(t, err)

	w2 := cbor.NewCborWriter()
	require.NoError(t, got.ToCBOR(w2))
	require.Equal(t, original, w2.Bytes())
}

func TestTransactionWitnessSetRoundTrip(t *testing.T) {
	var vkey ccrypto.Ed25519PublicKey
	vkey[0] = 9
	var sig ccrypto.Ed25519Signature

	pubkeyScript := &script.Pubkey{}
	pubkeyScript.KeyHash[0] = 5

	ws := &TransactionWitnessSet{
		VKeyWitnesses: []*VKeyWitness{{VKey: vkey, Signature: sig}},
		NativeScripts: []script.NativeScript{pubkeyScript},
		PlutusV2Scripts: []*script.PlutusScript{
			{Language: script.PlutusV2, Bytes: []byte{0xAA}},
		},
		PlutusData: []*script.PlutusData{
			{Kind: script.PlutusDataKindInteger, Int: 42},
		},
	}

	w := cbor.NewCborWriter()
	require.NoError(t, ws.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := TransactionWitnessSetFromCBOR(r)
	require.NoError(t, err)
	require.Len(t, got.VKeyWitnesses, 1)
	require.Len(t, got.NativeScripts, 1)
	require.Len(t, got.PlutusV2Scripts, 1)
	require.Len(t, got.PlutusData, 1)
	require.Nil(t, got.Redeemers)
}

func TestTransactionWitnessSetCachePreservesBytes(t *testing.T) {
	var vkey ccrypto.Ed25519PublicKey
	var sig ccrypto.Ed25519Signature
	ws := &TransactionWitnessSet{VKeyWitnesses: []*VKeyWitness{{VKey: vkey, Signature: sig}}}

	w := cbor.NewCborWriter()
	require.NoError(t, ws.ToCBOR(w))
	original := w.Bytes()

	r := cbor.NewCborReader(original)
	got, err := TransactionWitnessSetFromCBOR(r)
	require.NoError(t, err)

	w2 := cbor.NewCborWriter()
	require.NoError(t, got.ToCBOR(w2))
	require.Equal(t, original, w2.Bytes())
}
