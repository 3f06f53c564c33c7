package etf

import (
	"bytes"
	"encoding/binary"
	"math"
)

// byteWriter is an append-only buffer. No size limit is enforced here;
// callers enforce per-tag length bounds before calling putBytes.
type byteWriter struct {
	buf bytes.Buffer
}

func newByteWriter() *byteWriter {
	return &byteWriter{}
}

func (w *byteWriter) putU8(b byte) {
	w.buf.WriteByte(b)
}

func (w *byteWriter) putBytes(b []byte) {
	w.buf.Write(b)
}

// putBE appends value as a big-endian integer occupying width bytes
// (width 1, 2, 4, or 8).
func (w *byteWriter) putBE(width int, value uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], value)
	w.buf.Write(b[8-width:])
}

func (w *byteWriter) putF64BE(f float64) {
	w.putBE(8, math.Float64bits(f))
}

func (w *byteWriter) takeBuffer() []byte {
	return w.buf.Bytes()
}
