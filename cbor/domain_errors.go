package cbor

import "errors"

// Additional error sentinels used by the domain binding layer (packages
// common, cert, gov, script, witness, tx) and by the validation helpers in
// validate.go. These extend the wire-level errors in errors.go with the
// distinguished kinds spec.md §7 requires: invalid_cbor_map_key,
// duplicated_cbor_map_key, invalid_cbor_array_size, invalid_certificate_type,
// invalid_native_script_type, invalid_governance_action_type,
// invalid_relay_type, invalid_argument, element_not_found,
// index_out_of_bounds, loss_of_precision, invalid_json, pointer_is_null.
// No sentinel is defined for memory_allocation_failed.
var (
	// ErrInvalidCborMapKey is returned when a keyed map contains a key the
	// decoder does not recognize for that map's domain type.
	ErrInvalidCborMapKey = errors.New("cbor: invalid cbor map key")

	// ErrDuplicatedCborMapKey is returned when a keyed map contains the same
	// key more than once.
	ErrDuplicatedCborMapKey = errors.New("cbor: duplicated cbor map key")

	// ErrInvalidCborArraySize is returned when a fixed-size array framing
	// check fails.
	ErrInvalidCborArraySize = errors.New("cbor: invalid cbor array size")

	// ErrInvalidCertificateType is returned when a certificate's
	// discriminant does not match any known certificate variant.
	ErrInvalidCertificateType = errors.New("cbor: invalid certificate type")

	// ErrInvalidNativeScriptType is returned when a native script's
	// discriminant does not match any known script variant.
	ErrInvalidNativeScriptType = errors.New("cbor: invalid native script type")

	// ErrInvalidGovernanceActionType is returned when a governance action's
	// discriminant does not match any known action variant.
	ErrInvalidGovernanceActionType = errors.New("cbor: invalid governance action type")

	// ErrInvalidRelayType is returned when a relay's discriminant does not
	// match any known relay variant.
	ErrInvalidRelayType = errors.New("cbor: invalid relay type")

	// ErrInvalidArgument is returned on a caller contract violation that is
	// not specifically a null pointer.
	ErrInvalidArgument = errors.New("cbor: invalid argument")

	// ErrPointerIsNull is returned when a required argument is nil.
	ErrPointerIsNull = errors.New("cbor: required argument is nil")

	// ErrElementNotFound is returned by lookup operations that find nothing.
	ErrElementNotFound = errors.New("cbor: element not found")

	// ErrIndexOutOfBounds is returned by indexed accessors given an
	// out-of-range index.
	ErrIndexOutOfBounds = errors.New("cbor: index out of bounds")

	// ErrLossOfPrecision is returned when encoding a float as half-precision
	// would not round-trip.
	ErrLossOfPrecision = errors.New("cbor: loss of precision")

	// ErrInvalidJSON is returned by native-script JSON ingest on malformed
	// input.
	ErrInvalidJSON = errors.New("cbor: invalid json")
)

// DomainError carries a distinguished error kind plus an optional
// contextual message for the domain binding layer, mirroring CborError's
// shape at the wire-decoding layer. It wraps an underlying error (typically
// one of the cbor package sentinels) so callers can both switch on the
// sentinel with errors.Is and print a human-readable message.
type DomainError struct {
	Kind    error
	Field   string
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Field != "" && e.Message != "" {
		return e.Field + ": " + e.Message + ": " + e.Kind.Error()
	}
	if e.Field != "" {
		return e.Field + ": " + e.Kind.Error()
	}
	if e.Message != "" {
		return e.Message + ": " + e.Kind.Error()
	}
	return e.Kind.Error()
}

// Unwrap returns the wrapped sentinel error.
func (e *DomainError) Unwrap() error {
	return e.Kind
}

// NewDomainError constructs a DomainError for the given field and kind.
func NewDomainError(kind error, field, message string) *DomainError {
	return &DomainError{Kind: kind, Field: field, Message: message}
}
