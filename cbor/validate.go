package cbor

import "fmt"

// ValidateArrayOfNElements reads a start-array token and requires its
// length to be exactly n, rejecting both definite-length mismatches and
// indefinite-length arrays. name is used only to build a descriptive
// error message (e.g. "stake_registration_cert").
func ValidateArrayOfNElements(name string, r *CborReader, n int) error {
	length, err := r.ReadStartArray()
	if err != nil {
		return err
	}
	if length != n {
		return NewDomainError(ErrInvalidCborArraySize, name,
			fmt.Sprintf("expected array of %d elements, got %d", n, length))
	}
	return nil
}

// ValidateEndArray reads the end-of-array token, surfacing a
// domain-named error on failure.
func ValidateEndArray(name string, r *CborReader) error {
	if err := r.ReadEndArray(); err != nil {
		return NewDomainError(ErrInvalidCbor, name, "expected end of array: "+err.Error())
	}
	return nil
}

// ValidateEndMap reads the end-of-map token, surfacing a domain-named
// error on failure.
func ValidateEndMap(name string, r *CborReader) error {
	if err := r.ReadEndMap(); err != nil {
		return NewDomainError(ErrInvalidCbor, name, "expected end of map: "+err.Error())
	}
	return nil
}

// ValidateEnumValue reads an unsigned integer and requires it to equal
// expected, using toString to render both values in the error message on
// mismatch. kind is the domain-appropriate sentinel error to report on
// mismatch (e.g. ErrInvalidCertificateType, ErrInvalidNativeScriptType,
// ErrInvalidGovernanceActionType) — callers name the error after what they
// actually decode, rather than every mismatch being reported as a
// certificate-type error.
func ValidateEnumValue(name, field string, r *CborReader, expected uint64, toString func(uint64) string, kind error) error {
	got, err := r.ReadUint64()
	if err != nil {
		return err
	}
	if got != expected {
		return NewDomainError(kind, name,
			fmt.Sprintf("%s: expected %s, got %s", field, toString(expected), toString(got)))
	}
	return nil
}

// ValidateUintInRange reads an unsigned integer and requires
// lo <= value <= hi.
func ValidateUintInRange(name, field string, r *CborReader, lo, hi uint64) (uint64, error) {
	got, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	if got < lo || got > hi {
		return 0, NewDomainError(ErrInvalidArgument, name,
			fmt.Sprintf("%s: value %d out of range [%d, %d]", field, got, lo, hi))
	}
	return got, nil
}
