package cbor

import "encoding/hex"

// NewCborReaderFromHex creates a new CborReader from a hex-encoded string.
func NewCborReaderFromHex(s string, opts ...ReaderOption) (*CborReader, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, NewCborError(ErrInvalidCbor, 0, "invalid hex input")
	}
	return NewCborReader(data, opts...), nil
}

// readerSavepoint is a lightweight snapshot of a reader's position, used by
// tagged-variant decoders that need to peek past the current item to decide
// which variant to construct without paying for a full buffer clone.
type readerSavepoint struct {
	offset        int
	nestingStack  []readerNestingInfo
	cachedState   CborReaderState
	stateComputed bool
}

// Savepoint captures the reader's current position so it can be restored
// later via Restore. The nesting stack is copied defensively since the
// reader mutates it in place.
func (r *CborReader) Savepoint() readerSavepoint {
	stack := make([]readerNestingInfo, len(r.nestingStack))
	copy(stack, r.nestingStack)
	return readerSavepoint{
		offset:        r.offset,
		nestingStack:  stack,
		cachedState:   r.cachedState,
		stateComputed: r.stateComputed,
	}
}

// Restore rewinds the reader to a previously captured savepoint.
func (r *CborReader) Restore(sp readerSavepoint) {
	r.offset = sp.offset
	r.nestingStack = append(r.nestingStack[:0], sp.nestingStack...)
	r.cachedState = sp.cachedState
	r.stateComputed = sp.stateComputed
}

// Clone returns a deep copy of the reader, including its backing buffer.
// Domain decoders that need to look arbitrarily far ahead (deeper than a
// tag header) without disturbing the caller's reader use this; simple
// single-item lookahead should prefer Savepoint/Restore instead.
func (r *CborReader) Clone() *CborReader {
	data := make([]byte, len(r.data))
	copy(data, r.data)

	stack := make([]readerNestingInfo, len(r.nestingStack))
	copy(stack, r.nestingStack)

	return &CborReader{
		data:                    data,
		offset:                  r.offset,
		conformanceMode:         r.conformanceMode,
		nestingStack:            stack,
		maxNestingDepth:         r.maxNestingDepth,
		cachedState:             r.cachedState,
		stateComputed:           r.stateComputed,
		allowMultipleRootValues: r.allowMultipleRootValues,
	}
}

// RemainderBytes returns the unconsumed suffix of the reader's buffer.
func (r *CborReader) RemainderBytes() []byte {
	return r.data[r.offset:]
}

// PeekTag returns the upcoming tag without consuming it or entering tag
// context. Used by tagged-variant entities (relay, MIR certificate,
// governance action, CBOR data item) that must decide a variant before
// committing to ReadTag.
func (r *CborReader) PeekTag() (CborTag, error) {
	sp := r.Savepoint()
	tag, err := r.ReadTag()
	r.Restore(sp)
	return tag, err
}

// PeekArrayDiscriminant peeks the first element of an upcoming definite- or
// indefinite-length array without disturbing the reader, returning the
// small unsigned-integer discriminant at index 0. This is the "peek
// deeper than one byte" pattern spec.md §4.4 describes for tagged-variant
// entities whose discriminant lives inside an array rather than under a
// CBOR tag (certificates, governance actions).
func (r *CborReader) PeekArrayDiscriminant() (uint64, error) {
	sp := r.Savepoint()
	defer r.Restore(sp)

	if _, err := r.ReadStartArray(); err != nil {
		return 0, err
	}
	return r.ReadUint64()
}
