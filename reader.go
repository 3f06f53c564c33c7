package etf

import (
	"encoding/binary"
	"math"
)

// byteReader is a cursor over an immutable byte slice. Every operation
// either advances the cursor and returns bytes, or returns an
// IncompleteDataError carrying the original input for diagnostic context.
// No operation mutates the underlying bytes; slices it returns alias the
// input.
type byteReader struct {
	orig []byte // the complete input, for IncompleteDataError context
	buf  []byte // unread remainder
}

func newByteReader(b []byte) *byteReader {
	return &byteReader{orig: b, buf: b}
}

func (r *byteReader) incomplete() error {
	return IncompleteDataError{Input: r.orig}
}

// peekTag returns the next byte without advancing the cursor.
func (r *byteReader) peekTag() (byte, error) {
	if len(r.buf) < 1 {
		return 0, r.incomplete()
	}
	return r.buf[0], nil
}

// take returns the next n bytes and advances the cursor past them.
func (r *byteReader) take(n int) ([]byte, error) {
	if len(r.buf) < n {
		return nil, r.incomplete()
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b, nil
}

func (r *byteReader) takeU8() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *byteReader) takeU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *byteReader) takeU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *byteReader) takeI32() (int32, error) {
	u, err := r.takeU32()
	if err != nil {
		return 0, err
	}
	return int32(u), nil
}

func (r *byteReader) takeF64BE() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// remaining returns the unread tail of the input, as a fresh slice header
// (but not a copy) over the same backing array.
func (r *byteReader) remaining() []byte {
	return r.buf
}

func (r *byteReader) len() int {
	return len(r.buf)
}
