package etf

import (
	"fmt"
	"math/big"
	"sort"
)

// Compression selects whether and how strongly Encode compresses a frame's
// payload.
type Compression int

const (
	// CompressionOff never compresses.
	CompressionOff Compression = 0
	// CompressionDefault compresses at zlib level 6.
	CompressionDefault Compression = -1
)

// CompressionLevel returns a Compression requesting a specific zlib level
// in [0,9].
func CompressionLevel(level int) Compression {
	return Compression(level)
}

// EncodeTerm encodes term as ETF payload bytes (no version byte, no
// compression), selecting the most compact legal encoding for term's type.
// Any host value with no built-in encoding rule is routed through the
// registered Fallback Bridge; if none is registered, or it declines,
// EncodeTerm returns ErrUnsupportedType.
func EncodeTerm(term any) ([]byte, error) {
	w := newByteWriter()
	if err := encodeTerm(w, term); err != nil {
		return nil, err
	}
	return w.takeBuffer(), nil
}

func encodeTerm(w *byteWriter, term any) error {
	switch v := term.(type) {
	case bool:
		return encodeBool(w, v)
	case Nil:
		w.putU8(tagNil)
		return nil
	case NullSentinel:
		return encodeAtom(w, atomNone)
	case Atom:
		return encodeAtom(w, v)
	case BitBinary:
		return encodeBitBinary(w, v)
	case []byte:
		return encodeBinary(w, v)
	case string:
		return encodeUnicodeText(w, v)
	case int:
		return encodeInt64(w, int64(v))
	case int8:
		return encodeInt64(w, int64(v))
	case int16:
		return encodeInt64(w, int64(v))
	case int32:
		return encodeInt64(w, int64(v))
	case int64:
		return encodeInt64(w, v)
	case uint:
		return encodeUint64(w, uint64(v))
	case uint8:
		return encodeUint64(w, uint64(v))
	case uint16:
		return encodeUint64(w, uint64(v))
	case uint32:
		return encodeUint64(w, uint64(v))
	case uint64:
		return encodeUint64(w, v)
	case *big.Int:
		return encodeBigInt(w, v)
	case float32:
		w.putU8(tagNewFloat)
		w.putF64BE(float64(v))
		return nil
	case float64:
		w.putU8(tagNewFloat)
		w.putF64BE(v)
		return nil
	case Tuple:
		return encodeTuple(w, v)
	case List:
		return encodeList(w, v)
	case []any:
		return encodeList(w, List(v))
	case Map:
		return encodeMap(w, v)
	case Pid:
		return encodePid(w, v)
	case Port:
		return encodePort(w, v)
	case Reference:
		return encodeReference(w, v)
	case Export:
		return encodeExport(w, v)
	default:
		bridged, err := encodeBridge(term)
		if err != nil {
			return err
		}
		return encodeTuple(w, bridged)
	}
}

func encodeBool(w *byteWriter, b bool) error {
	if b {
		return encodeAtom(w, atomTrue)
	}
	return encodeAtom(w, atomFalse)
}

func encodeAtom(w *byteWriter, a Atom) error {
	if len(a) > 0xFFFF {
		return ErrEncodeOverflow
	}
	w.putU8(tagAtomCompat)
	w.putBE(2, uint64(len(a)))
	w.putBytes([]byte(a))
	return nil
}

func encodeBitBinary(w *byteWriter, b BitBinary) error {
	if len(b.Bytes) > 0xFFFFFFFF {
		return ErrEncodeOverflow
	}
	w.putU8(tagBitBinary)
	w.putBE(4, uint64(len(b.Bytes)))
	w.putU8(b.Bits)
	w.putBytes(b.Bytes)
	return nil
}

func encodeBinary(w *byteWriter, b []byte) error {
	if len(b) > 0xFFFFFFFF {
		return ErrEncodeOverflow
	}
	w.putU8(tagBinary)
	w.putBE(4, uint64(len(b)))
	w.putBytes(b)
	return nil
}

// encodeUnicodeText encodes a host Go string: empty -> NIL;
// Latin-1-representable and short -> STRING_EXT fast path; otherwise fall
// back to a List of code-point integers.
func encodeUnicodeText(w *byteWriter, s string) error {
	runes := []rune(s)
	if len(runes) == 0 {
		w.putU8(tagNil)
		return nil
	}
	if len(runes) <= 0xFFFF {
		latin1 := make([]byte, len(runes))
		ok := true
		for i, r := range runes {
			if r > 0xFF {
				ok = false
				break
			}
			latin1[i] = byte(r)
		}
		if ok {
			w.putU8(tagString)
			w.putBE(2, uint64(len(latin1)))
			w.putBytes(latin1)
			return nil
		}
	}
	list := make(List, len(runes))
	for i, r := range runes {
		list[i] = int64(r)
	}
	return encodeList(w, list)
}

// encodeList picks the tightest wire form for list: empty -> NIL; a short
// all-byte-range list -> STRING_EXT; otherwise LIST_EXT with a NIL tail.
func encodeList(w *byteWriter, list List) error {
	if len(list) == 0 {
		w.putU8(tagNil)
		return nil
	}
	if len(list) <= 0xFFFF {
		if bytes, ok := asByteRangeList(list); ok {
			w.putU8(tagString)
			w.putBE(2, uint64(len(bytes)))
			w.putBytes(bytes)
			return nil
		}
	}
	if uint64(len(list)) > 0xFFFFFFFF {
		return ErrEncodeOverflow
	}
	w.putU8(tagList)
	w.putBE(4, uint64(len(list)))
	for _, el := range list {
		if err := encodeTerm(w, el); err != nil {
			return err
		}
	}
	w.putU8(tagNil) // tail
	return nil
}

// asByteRangeList reports whether every element of list is an integer in
// [0,255], returning the raw bytes if so.
func asByteRangeList(list List) ([]byte, bool) {
	out := make([]byte, len(list))
	for i, el := range list {
		n, err := AsInt64(el)
		if err != nil || n < 0 || n > 255 {
			return nil, false
		}
		out[i] = byte(n)
	}
	return out, true
}

func encodeTuple(w *byteWriter, t Tuple) error {
	switch {
	case len(t) <= 255:
		w.putU8(tagSmallTuple)
		w.putU8(byte(len(t)))
	case uint64(len(t)) <= 0xFFFFFFFF:
		w.putU8(tagLargeTuple)
		w.putBE(4, uint64(len(t)))
	default:
		return ErrEncodeOverflow
	}
	for _, el := range t {
		if err := encodeTerm(w, el); err != nil {
			return err
		}
	}
	return nil
}

// encodeMap sorts entries by key in a total order stable across runs, and
// encodes the result as a List of 2-tuples, so decoded output is
// order-compatible with Erlang's orddict.
func encodeMap(w *byteWriter, m Map) error {
	pairs := make([]MapPair, len(m))
	copy(pairs, m)
	sort.SliceStable(pairs, func(i, j int) bool {
		return lessTermKey(pairs[i].Key, pairs[j].Key)
	})
	list := make(List, len(pairs))
	for i, p := range pairs {
		list[i] = Tuple{p.Key, p.Value}
	}
	return encodeList(w, list)
}

func encodeInt64(w *byteWriter, n int64) error {
	if n >= 0 && n <= 255 {
		w.putU8(tagSmallInteger)
		w.putU8(byte(n))
		return nil
	}
	if n >= -(1<<31) && n <= (1<<31-1) {
		w.putU8(tagInteger)
		w.putBE(4, uint64(uint32(n)))
		return nil
	}
	return encodeBigInt(w, big.NewInt(n))
}

func encodeUint64(w *byteWriter, n uint64) error {
	if n <= 255 {
		w.putU8(tagSmallInteger)
		w.putU8(byte(n))
		return nil
	}
	if n <= (1<<31 - 1) {
		w.putU8(tagInteger)
		w.putBE(4, n)
		return nil
	}
	return encodeBigInt(w, new(big.Int).SetUint64(n))
}

func encodeBigInt(w *byteWriter, n *big.Int) error {
	if n.IsInt64() {
		v := n.Int64()
		if v >= 0 && v <= 255 {
			w.putU8(tagSmallInteger)
			w.putU8(byte(v))
			return nil
		}
		if v >= -(1<<31) && v <= (1<<31-1) {
			w.putU8(tagInteger)
			w.putBE(4, uint64(uint32(v)))
			return nil
		}
	}
	sign, mag := encodeBigMagnitude(n)
	switch {
	case len(mag) <= 255:
		w.putU8(tagSmallBig)
		w.putU8(byte(len(mag)))
	case uint64(len(mag)) <= 0xFFFFFFFF:
		w.putU8(tagLargeBig)
		w.putBE(4, uint64(len(mag)))
	default:
		return ErrEncodeOverflow
	}
	w.putU8(sign)
	w.putBytes(mag)
	return nil
}

func encodePid(w *byteWriter, p Pid) error {
	w.putU8(tagPid)
	if err := encodeAtom(w, p.Node); err != nil {
		return err
	}
	w.putBytes(p.Id[:])
	w.putBytes(p.Serial[:])
	w.putU8(p.Creation)
	return nil
}

func encodePort(w *byteWriter, p Port) error {
	w.putU8(tagPort)
	if err := encodeAtom(w, p.Node); err != nil {
		return err
	}
	w.putBytes(p.Id[:])
	w.putU8(p.Creation)
	return nil
}

// encodeReference always emits NEW_REFERENCE_EXT (tag 114), never the
// legacy REFERENCE_EXT (101) the decoder also accepts; the asymmetry is
// intentional.
func encodeReference(w *byteWriter, r Reference) error {
	if len(r.Id) == 0 {
		return ErrInvalidField
	}
	if len(r.Id) > 0xFFFF {
		return ErrEncodeOverflow
	}
	w.putU8(tagNewReference)
	w.putBE(2, uint64(len(r.Id)))
	if err := encodeAtom(w, r.Node); err != nil {
		return err
	}
	w.putU8(r.Creation)
	for _, id := range r.Id {
		w.putBE(4, uint64(id))
	}
	return nil
}

func encodeExport(w *byteWriter, e Export) error {
	w.putU8(tagExport)
	if err := encodeAtom(w, e.Module); err != nil {
		return err
	}
	if err := encodeAtom(w, e.Function); err != nil {
		return err
	}
	return encodeInt64(w, e.Arity)
}

// termKeyRank orders Map keys into the buckets Erlang's term order uses for
// the corresponding wire types: numbers, then atoms, then strings/binaries,
// then everything else by encoded byte form. This is a total order stable
// across runs, not a faithful implementation of Erlang's full term order
// (which also interleaves numbers and atoms by magnitude across types
// Erlang itself can hold but this package doesn't expose).
func termKeyRank(x any) int {
	switch x.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, *big.Int, float32, float64:
		return 0
	case Atom, bool, NullSentinel:
		return 1
	case string, []byte, BitBinary:
		return 2
	default:
		return 3
	}
}

// lessTermKey implements the total order encodeMap sorts by.
func lessTermKey(a, b any) bool {
	ra, rb := termKeyRank(a), termKeyRank(b)
	if ra != rb {
		return ra < rb
	}
	switch ra {
	case 0:
		na, erra := AsBigInt(numericToComparable(a))
		nb, errb := AsBigInt(numericToComparable(b))
		if erra == nil && errb == nil {
			return na.Cmp(nb) < 0
		}
		fa, fb := numericToFloat(a), numericToFloat(b)
		return fa < fb
	case 1:
		return fmt.Sprint(a) < fmt.Sprint(b)
	case 2:
		return termKeyBytes(a) < termKeyBytes(b)
	default:
		wa := newByteWriter()
		wb := newByteWriter()
		_ = encodeTerm(wa, a)
		_ = encodeTerm(wb, b)
		return string(wa.takeBuffer()) < string(wb.takeBuffer())
	}
}

func numericToComparable(x any) any {
	switch v := x.(type) {
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return x
	}
}

func numericToFloat(x any) float64 {
	switch v := x.(type) {
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case *big.Int:
		f := new(big.Float).SetInt(v)
		out, _ := f.Float64()
		return out
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

func termKeyBytes(x any) string {
	switch v := x.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case BitBinary:
		return string(v.Bytes)
	default:
		return ""
	}
}
