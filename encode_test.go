package etf

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeTermScenarios(t *testing.T) {
	tests := []struct {
		name string
		term any
		want []byte
	}{
		{"empty tuple", Tuple{}, []byte{0x68, 0x00}},
		{"list 1 2 3", List{int64(1), int64(2), int64(3)}, []byte{0x6B, 0x00, 0x03, 0x01, 0x02, 0x03}},
		{"integer 256", int64(256), []byte{0x62, 0x00, 0x00, 0x01, 0x00}},
		{"integer -1", int64(-1), []byte{0x62, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"small integer 0", int64(0), []byte{0x61, 0x00}},
		{"atom ok", Atom("ok"), []byte{0x64, 0x00, 0x02, 0x6F, 0x6B}},
		{"nil", Nil{}, []byte{0x6A}},
		{"empty list", List{}, []byte{0x6A}},
		{"empty string", "", []byte{0x6A}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeTerm(tt.term)
			if err != nil {
				t.Fatalf("EncodeTerm: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpByteSlice); diff != "" {
				t.Fatalf("encode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeBitBinaryRoundTrip(t *testing.T) {
	bb := BitBinary{Bytes: []byte{0xAB}, Bits: 4}
	payload, err := EncodeTerm(bb)
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	got, tail, err := decodeTermBytes(payload)
	if err != nil {
		t.Fatalf("decodeTermBytes: %v", err)
	}
	if len(tail) != 0 {
		t.Fatalf("unexpected tail: %x", tail)
	}
	gotBB, ok := got.(BitBinary)
	if !ok || !gotBB.Equal(bb) {
		t.Fatalf("got %#v, want %#v", got, bb)
	}
}

func TestEncodeBoolBeforeInteger(t *testing.T) {
	payload, err := EncodeTerm(true)
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	want, _ := EncodeTerm(Atom("true"))
	if string(payload) != string(want) {
		t.Fatalf("bool true encoded as %x, want atom encoding %x", payload, want)
	}
}

func TestEncodeNullSentinel(t *testing.T) {
	payload, err := EncodeTerm(NullSentinel{})
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	want, _ := EncodeTerm(Atom("none"))
	if string(payload) != string(want) {
		t.Fatalf("NullSentinel encoded as %x, want atom encoding %x", payload, want)
	}
}

func TestLargeTupleUsesTag105(t *testing.T) {
	elems := make(Tuple, 256)
	for i := range elems {
		elems[i] = int64(0)
	}
	payload, err := EncodeTerm(elems)
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	if payload[0] != tagLargeTuple {
		t.Fatalf("256-element tuple should use LARGE_TUPLE (%d), got tag %d", tagLargeTuple, payload[0])
	}
}

func TestEncodeMapSortsByKey(t *testing.T) {
	m := Map{
		{Key: Atom("b"), Value: int64(2)},
		{Key: Atom("a"), Value: int64(1)},
	}
	payload, err := EncodeTerm(m)
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	got, _, err := decodeTermBytes(payload)
	if err != nil {
		t.Fatalf("decodeTermBytes: %v", err)
	}
	list, ok := got.(List)
	if !ok || len(list) != 2 {
		t.Fatalf("got %#v, want a 2-element List", got)
	}
	first, ok := list[0].(Tuple)
	if !ok || first[0] != Atom("a") {
		t.Fatalf("got %#v, want sorted with key \"a\" first", list)
	}
}

func TestEncodeBignum(t *testing.T) {
	n := new(big.Int)
	n.SetString("340282366920938463463374607431768211456", 10) // 2^128
	payload, err := EncodeTerm(n)
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	got, _, err := decodeTermBytes(payload)
	if err != nil {
		t.Fatalf("decodeTermBytes: %v", err)
	}
	gotBig, err := AsBigInt(got)
	if err != nil {
		t.Fatalf("AsBigInt: %v", err)
	}
	if gotBig.Cmp(n) != 0 {
		t.Fatalf("got %v, want %v", gotBig, n)
	}
}

func TestEncodeUnicodeTextFallsBackToCodepointList(t *testing.T) {
	payload, err := EncodeTerm("héllo 中")
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	if payload[0] != tagList {
		t.Fatalf("non-Latin-1 string should encode with LIST_EXT (%d), got tag %d", tagList, payload[0])
	}
}

func TestEncodeLatin1TextUsesStringTag(t *testing.T) {
	payload, err := EncodeTerm("hello")
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	if payload[0] != tagString {
		t.Fatalf("Latin-1 string should encode with STRING_EXT (%d), got tag %d", tagString, payload[0])
	}
}

func TestEncodeUnsupportedTypeWithoutBridge(t *testing.T) {
	RegisterBridge(nil)
	type weird struct{ X int }
	_, err := EncodeTerm(weird{X: 1})
	if err != ErrUnsupportedType {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
}
