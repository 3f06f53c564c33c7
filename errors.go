package etf

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions with no useful extra context.
var (
	// ErrBadVersion is returned when the first byte of a frame is not 0x83.
	ErrBadVersion = errors.New("etf: bad version byte")

	// ErrBadCompression is returned when a compressed frame's inflated
	// length disagrees with its declared size, or the deflate stream is
	// corrupt.
	ErrBadCompression = errors.New("etf: bad compression frame")

	// ErrEncodeOverflow is returned when a length or arity exceeds the
	// wire-format limit for its tag.
	ErrEncodeOverflow = errors.New("etf: value exceeds wire format limit")

	// ErrInvalidField is returned when a Pid/Port/Reference field has the
	// wrong fixed width to encode.
	ErrInvalidField = errors.New("etf: invalid fixed-width field")

	// ErrUnsupportedType is returned when a host term has no encoding rule
	// and the Fallback Bridge declined it (or none is registered).
	ErrUnsupportedType = errors.New("etf: unsupported host type")

	// ErrDepthExceeded is returned by the anti-recursion guard when a term
	// nests deeper than the fixed limit maxDecodeDepth.
	ErrDepthExceeded = errors.New("etf: term nesting too deep")

	// ErrMalformedLegacyFloat is returned when the legacy 31-byte
	// FLOAT_EXT payload does not parse as a NUL-terminated decimal number.
	ErrMalformedLegacyFloat = errors.New("etf: malformed legacy float text")
)

// IncompleteDataError reports that the input was exhausted mid-term. Input
// holds the complete byte slice that was being decoded, for diagnostic
// context.
type IncompleteDataError struct {
	Input []byte
}

func (e IncompleteDataError) Error() string {
	return fmt.Sprintf("etf: incomplete data (%d bytes available)", len(e.Input))
}

// UnsupportedTagError reports a term-body tag byte outside the known tag
// table.
type UnsupportedTagError struct {
	Tag byte
	Pos int
}

func (e UnsupportedTagError) Error() string {
	return fmt.Sprintf("etf: unsupported tag %d (%#x) at position %d", e.Tag, e.Tag, e.Pos)
}
