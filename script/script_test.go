package script

import (
	"testing"

	"github.com/biglup-go/cardano-serialization/cbor"
	"github.com/stretchr/testify/require"
)

func roundTripScript(t *testing.T, s NativeScript) NativeScript {
	t.Helper()
	w := cbor.NewCborWriter()
	require.NoError(t, s.ToCBOR(w))
	r := cbor.NewCborReader(w.Bytes())
	got, err := FromCBOR(r)
	require.NoError(t, err)
	require.Equal(t, s.Kind(), got.Kind())
	return got
}

func TestPubkeyRoundTrip(t *testing.T) {
	s := &Pubkey{}
	s.KeyHash[0] = 0xAB
	got := roundTripScript(t, s).(*Pubkey)
	require.Equal(t, s.KeyHash, got.KeyHash)
}

func TestAllAnyNOfKRoundTrip(t *testing.T) {
	a := &Pubkey{}
	a.KeyHash[0] = 1
	b := &Pubkey{}
	b.KeyHash[0] = 2

	all := &All{Scripts: []NativeScript{a, b}}
	gotAll := roundTripScript(t, all).(*All)
	require.Len(t, gotAll.Scripts, 2)

	any := &Any{Scripts: []NativeScript{a, b}}
	gotAny := roundTripScript(t, any).(*Any)
	require.Len(t, gotAny.Scripts, 2)

	nOfK := &NOfK{Required: 1, Scripts: []NativeScript{a, b}}
	gotNOfK := roundTripScript(t, nOfK).(*NOfK)
	require.Equal(t, uint64(1), gotNOfK.Required)
	require.Len(t, gotNOfK.Scripts, 2)
}

func TestNestedCombinatorRoundTrip(t *testing.T) {
	leaf := &Pubkey{}
	leaf.KeyHash[0] = 9
	inner := &Any{Scripts: []NativeScript{leaf}}
	outer := &All{Scripts: []NativeScript{inner, leaf}}

	got := roundTripScript(t, outer).(*All)
	require.Len(t, got.Scripts, 2)
	innerGot, ok := got.Scripts[0].(*Any)
	require.True(t, ok)
	require.Len(t, innerGot.Scripts, 1)
}

func TestInvalidBeforeAndHereafterRoundTrip(t *testing.T) {
	before := &InvalidBefore{Slot: 1000}
	got := roundTripScript(t, before).(*InvalidBefore)
	require.Equal(t, uint64(1000), got.Slot)

	after := &InvalidHereafter{Slot: 2000}
	gotAfter := roundTripScript(t, after).(*InvalidHereafter)
	require.Equal(t, uint64(2000), gotAfter.Slot)
}

func TestUnknownNativeScriptTypeRejected(t *testing.T) {
	w := cbor.NewCborWriter()
	require.NoError(t, w.WriteStartArray(2))
	require.NoError(t, w.WriteUint64(99))
	require.NoError(t, w.WriteByteString(make([]byte, 28)))
	require.NoError(t, w.WriteEndArray())

	r := cbor.NewCborReader(w.Bytes())
	_, err := FromCBOR(r)
	require.Error(t, err)
}

func TestFromJSONSig(t *testing.T) {
	doc := []byte(`{"type":"sig","keyHash":"` + hexRepeat("ab", 28) + `"}`)
	s, err := FromJSON(doc)
	require.NoError(t, err)
	pk, ok := s.(*Pubkey)
	require.True(t, ok)
	require.Equal(t, byte(0xab), pk.KeyHash[0])
}

func TestFromJSONAtLeast(t *testing.T) {
	doc := []byte(`{
		"type": "atLeast",
		"required": 2,
		"scripts": [
			{"type":"sig","keyHash":"` + hexRepeat("11", 28) + `"},
			{"type":"sig","keyHash":"` + hexRepeat("22", 28) + `"},
			{"type":"before","slot":500}
		]
	}`)
	s, err := FromJSON(doc)
	require.NoError(t, err)
	n, ok := s.(*NOfK)
	require.True(t, ok)
	require.Equal(t, uint64(2), n.Required)
	require.Len(t, n.Scripts, 3)
}

func TestFromJSONUnknownTypeRejected(t *testing.T) {
	_, err := FromJSON([]byte(`{"type":"bogus"}`))
	require.Error(t, err)
}

func hexRepeat(pair string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += pair
	}
	return out
}

func TestPlutusScriptRoundTrip(t *testing.T) {
	s := &PlutusScript{Language: PlutusV2, Bytes: []byte{0x01, 0x02, 0x03}}
	w := cbor.NewCborWriter()
	require.NoError(t, s.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	got, err := PlutusScriptFromCBOR(r, PlutusV2)
	require.NoError(t, err)
	require.Equal(t, s.Bytes, got.Bytes)
	require.Equal(t, PlutusV2, got.Language)
}

func roundTripPlutusData(t *testing.T, d *PlutusData) *PlutusData {
	t.Helper()
	w := cbor.NewCborWriter()
	require.NoError(t, d.ToCBOR(w))
	r := cbor.NewCborReader(w.Bytes())
	got, err := PlutusDataFromCBOR(r)
	require.NoError(t, err)
	return got
}

func TestPlutusDataIntegerRoundTrip(t *testing.T) {
	d := &PlutusData{Kind: PlutusDataKindInteger, Int: -42}
	got := roundTripPlutusData(t, d)
	require.Equal(t, PlutusDataKindInteger, got.Kind)
	require.Equal(t, int64(-42), got.Int)
}

func TestPlutusDataBytesRoundTrip(t *testing.T) {
	d := &PlutusData{Kind: PlutusDataKindBytes, Bytes: []byte{0xDE, 0xAD}}
	got := roundTripPlutusData(t, d)
	require.Equal(t, PlutusDataKindBytes, got.Kind)
	require.Equal(t, d.Bytes, got.Bytes)
}

func TestPlutusDataListRoundTrip(t *testing.T) {
	d := &PlutusData{Kind: PlutusDataKindList, Fields: []*PlutusData{
		{Kind: PlutusDataKindInteger, Int: 1},
		{Kind: PlutusDataKindInteger, Int: 2},
	}}
	got := roundTripPlutusData(t, d)
	require.Equal(t, PlutusDataKindList, got.Kind)
	require.Len(t, got.Fields, 2)
	require.Equal(t, int64(2), got.Fields[1].Int)
}

func TestPlutusDataMapRoundTrip(t *testing.T) {
	d := &PlutusData{
		Kind:      PlutusDataKindMap,
		MapKeys:   []*PlutusData{{Kind: PlutusDataKindInteger, Int: 1}},
		MapValues: []*PlutusData{{Kind: PlutusDataKindBytes, Bytes: []byte{0x01}}},
	}
	got := roundTripPlutusData(t, d)
	require.Equal(t, PlutusDataKindMap, got.Kind)
	require.Len(t, got.MapKeys, 1)
	require.Equal(t, int64(1), got.MapKeys[0].Int)
}

func TestPlutusDataSmallConstructorRoundTrip(t *testing.T) {
	d := &PlutusData{
		Kind:           PlutusDataKindConstructor,
		ConstructorTag: 2,
		Fields:         []*PlutusData{{Kind: PlutusDataKindInteger, Int: 7}},
	}
	got := roundTripPlutusData(t, d)
	require.Equal(t, PlutusDataKindConstructor, got.Kind)
	require.Equal(t, uint64(2), got.ConstructorTag)
	require.Len(t, got.Fields, 1)
}

func TestPlutusDataLargeConstructorRoundTrip(t *testing.T) {
	d := &PlutusData{
		Kind:           PlutusDataKindConstructor,
		ConstructorTag: 300,
		Fields:         []*PlutusData{{Kind: PlutusDataKindInteger, Int: 1}},
	}
	got := roundTripPlutusData(t, d)
	require.Equal(t, uint64(300), got.ConstructorTag)
}

func TestPlutusDataConstructorExtensionRangeBoundary(t *testing.T) {
	d := &PlutusData{
		Kind:           PlutusDataKindConstructor,
		ConstructorTag: 127,
		Fields:         []*PlutusData{{Kind: PlutusDataKindInteger, Int: 9}},
	}
	w := cbor.NewCborWriter()
	require.NoError(t, d.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	tag, err := r.PeekTag()
	require.NoError(t, err)
	require.Equal(t, cbor.CborTag(1400), tag)

	r2 := cbor.NewCborReader(w.Bytes())
	got, err := PlutusDataFromCBOR(r2)
	require.NoError(t, err)
	require.Equal(t, uint64(127), got.ConstructorTag)
}

func TestPlutusDataConstructorGeneralFallbackBoundary(t *testing.T) {
	d := &PlutusData{
		Kind:           PlutusDataKindConstructor,
		ConstructorTag: 128,
		Fields:         []*PlutusData{{Kind: PlutusDataKindInteger, Int: 9}},
	}
	w := cbor.NewCborWriter()
	require.NoError(t, d.ToCBOR(w))

	r := cbor.NewCborReader(w.Bytes())
	tag, err := r.PeekTag()
	require.NoError(t, err)
	require.Equal(t, cbor.CborTag(102), tag)

	r2 := cbor.NewCborReader(w.Bytes())
	got, err := PlutusDataFromCBOR(r2)
	require.NoError(t, err)
	require.Equal(t, uint64(128), got.ConstructorTag)
}

func TestPlutusDataConstructorTag134RoundTripsViaGeneralFallback(t *testing.T) {
	d := &PlutusData{
		Kind:           PlutusDataKindConstructor,
		ConstructorTag: 134,
		Fields:         []*PlutusData{{Kind: PlutusDataKindInteger, Int: 1}},
	}
	got := roundTripPlutusData(t, d)
	require.Equal(t, uint64(134), got.ConstructorTag)
}

func TestPlutusDataConstructorTag1401Rejected(t *testing.T) {
	w := cbor.NewCborWriter()
	require.NoError(t, w.WriteTag(1401))
	require.NoError(t, w.WriteStartArray(0))
	require.NoError(t, w.WriteEndArray())

	r := cbor.NewCborReader(w.Bytes())
	_, err := PlutusDataFromCBOR(r)
	require.Error(t, err)
}
