package etf

import "testing"

func TestByteWriterPutBE(t *testing.T) {
	w := newByteWriter()
	w.putBE(2, 0x0102)
	w.putBE(4, 3)
	got := w.takeBuffer()
	want := []byte{0x01, 0x02, 0x00, 0x00, 0x00, 0x03}
	if string(got) != string(want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestByteWriterPutF64BE(t *testing.T) {
	w := newByteWriter()
	w.putF64BE(1.5)
	r := newByteReader(w.takeBuffer())
	f, err := r.takeF64BE()
	if err != nil || f != 1.5 {
		t.Fatalf("roundtrip got %v, %v", f, err)
	}
}

func TestByteWriterTakeBuffer(t *testing.T) {
	w := newByteWriter()
	w.putU8(1)
	w.putBytes([]byte{2, 3, 4})
	got := w.takeBuffer()
	want := []byte{1, 2, 3, 4}
	if string(got) != string(want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}
