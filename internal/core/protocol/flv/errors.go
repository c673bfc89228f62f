// If you are AI: This file defines the demuxer error kinds and the structured Error type.
// Every fatal error carries the absolute stream offset where it was detected.

package flv

import (
	"fmt"
)

// Kind classifies a demux failure.
type Kind uint8

// Error kinds. KindInsufficientData is a suspension signal, all others are fatal to the stream.
const (
	KindInsufficientData Kind = iota + 1
	KindInvalidSignature
	KindInvalidReservedBits
	KindInvalidDataOffset
	KindUnknownTagType
	KindInvalidStreamID
	KindTagSizeMismatch
	KindMissingEndMarker
	KindScriptDataOverrun
	KindInvalidScriptData
	KindTruncatedStream
	KindInvalidFieldSpec // a malformed FieldSpec or BitField; never caused by input
)

var kindNames = map[Kind]string{
	KindInsufficientData:    "insufficient data",
	KindInvalidSignature:    "invalid signature",
	KindInvalidReservedBits: "invalid reserved bits",
	KindInvalidDataOffset:   "invalid data offset",
	KindUnknownTagType:      "unknown tag type",
	KindInvalidStreamID:     "invalid stream id",
	KindTagSizeMismatch:     "tag size mismatch",
	KindMissingEndMarker:    "missing end marker",
	KindScriptDataOverrun:   "script data overrun",
	KindInvalidScriptData:   "invalid script data",
	KindTruncatedStream:     "truncated stream",
	KindInvalidFieldSpec:    "invalid field spec",
}

// String returns the human readable kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Error describes a demux failure.
// Expected and Actual hold the compared values when the kind involves a comparison.
// Bit is the violating bit position (0 = most significant) for KindInvalidReservedBits.
type Error struct {
	Kind     Kind
	Offset   uint64
	Field    string
	Bit      int
	Expected uint64
	Actual   uint64
}

// Sentinels for errors.Is. Matching compares Kind only.
var (
	ErrInsufficientData    = &Error{Kind: KindInsufficientData}
	ErrInvalidSignature    = &Error{Kind: KindInvalidSignature}
	ErrInvalidReservedBits = &Error{Kind: KindInvalidReservedBits}
	ErrInvalidDataOffset   = &Error{Kind: KindInvalidDataOffset}
	ErrUnknownTagType      = &Error{Kind: KindUnknownTagType}
	ErrInvalidStreamID     = &Error{Kind: KindInvalidStreamID}
	ErrTagSizeMismatch     = &Error{Kind: KindTagSizeMismatch}
	ErrMissingEndMarker    = &Error{Kind: KindMissingEndMarker}
	ErrScriptDataOverrun   = &Error{Kind: KindScriptDataOverrun}
	ErrInvalidScriptData   = &Error{Kind: KindInvalidScriptData}
	ErrTruncatedStream     = &Error{Kind: KindTruncatedStream}
	ErrInvalidFieldSpec    = &Error{Kind: KindInvalidFieldSpec}
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindInsufficientData:
		return "flv: insufficient data"
	case KindInvalidReservedBits:
		return fmt.Sprintf("flv: %s at offset %d bit %d: want %d, got %d", e.Kind, e.Offset, e.Bit, e.Expected, e.Actual)
	case KindUnknownTagType, KindInvalidStreamID, KindInvalidScriptData:
		return fmt.Sprintf("flv: %s %d at offset %d", e.Kind, e.Actual, e.Offset)
	case KindTruncatedStream:
		return fmt.Sprintf("flv: %s at offset %d while reading %s", e.Kind, e.Offset, e.Field)
	}
	if e.Field != "" {
		return fmt.Sprintf("flv: %s at offset %d (%s): want %d, got %d", e.Kind, e.Offset, e.Field, e.Expected, e.Actual)
	}
	return fmt.Sprintf("flv: %s at offset %d: want %d, got %d", e.Kind, e.Offset, e.Expected, e.Actual)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Fatal reports whether the error ends the stream.
func (e *Error) Fatal() bool {
	return e.Kind != KindInsufficientData
}

// at returns a copy of the error positioned at the given absolute offset.
func (e *Error) at(offset uint64) *Error {
	c := *e
	c.Offset = offset
	return &c
}

// newError creates a positioned error of the given kind.
func newError(kind Kind, offset uint64, field string, expected, actual uint64) *Error {
	return &Error{
		Kind:     kind,
		Offset:   offset,
		Field:    field,
		Expected: expected,
		Actual:   actual,
	}
}
