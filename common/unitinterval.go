package common

import "github.com/biglup-go/cardano-serialization/cbor"

// UnitIntervalTag is the CBOR tag marking a rational-number-in-[0,1]
// wrapper (pool margins, governance voting thresholds).
const UnitIntervalTag cbor.CborTag = 30

// UnitInterval is a rational number in [0, 1], encoded as CBOR tag 30
// wrapping a [numerator, denominator] array.
type UnitInterval struct {
	Numerator   uint64
	Denominator uint64
}

// UnitIntervalFromCBOR decodes a tag-30-wrapped [numerator, denominator]
// array.
func UnitIntervalFromCBOR(r *cbor.CborReader) (*UnitInterval, error) {
	tag, err := r.ReadTag()
	if err != nil {
		return nil, err
	}
	if tag != UnitIntervalTag {
		return nil, cbor.NewDomainError(cbor.ErrInvalidArgument, "unit_interval", "expected tag 30")
	}
	if err := cbor.ValidateArrayOfNElements("unit_interval", r, 2); err != nil {
		return nil, err
	}
	num, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	den, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if err := cbor.ValidateEndArray("unit_interval", r); err != nil {
		return nil, err
	}
	return &UnitInterval{Numerator: num, Denominator: den}, nil
}

// ToCBOR encodes the rational as a tag-30-wrapped array.
func (u *UnitInterval) ToCBOR(w *cbor.CborWriter) error {
	if err := w.WriteTag(UnitIntervalTag); err != nil {
		return err
	}
	if err := w.WriteStartArray(2); err != nil {
		return err
	}
	if err := w.WriteUint64(u.Numerator); err != nil {
		return err
	}
	if err := w.WriteUint64(u.Denominator); err != nil {
		return err
	}
	return w.WriteEndArray()
}
