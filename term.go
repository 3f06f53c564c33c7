package etf

import (
	"fmt"
	"hash/maphash"
)

// Atom is an Erlang atom: a short interned symbol whose wire form is a
// length-prefixed byte string. Atom names longer than 255 bytes cannot be
// constructed by NewAtom.
type Atom string

// NewAtom validates s as an ETF atom and returns it as an Atom.
//
// len(s) must not exceed 255 bytes.
func NewAtom(s string) (Atom, error) {
	if len(s) > 255 {
		return "", fmt.Errorf("etf: invalid atom length %d > 255", len(s))
	}
	return Atom(s), nil
}

// reserved atom names with decode-asymmetric meaning.
const (
	atomTrue  Atom = "true"
	atomFalse Atom = "false"
	atomNone  Atom = "none"
)

// NullSentinel represents the host-side "no value", decoded from and
// encoded as the atom "none". It is distinct from Nil (the empty list).
type NullSentinel struct{}

func (NullSentinel) String() string { return "none" }

// Nil is the ETF empty-list marker (tag NIL_EXT). It decodes every empty
// list and proper-list terminator; it is distinct from NullSentinel.
type Nil struct{}

func (Nil) String() string { return "[]" }

// Tuple is an ordered, fixed-arity sequence of terms.
type Tuple []any

// List is an ordered, variable-length sequence of terms, decoded from
// LIST_EXT/STRING_EXT and encoded to the most compact of those two tags.
// The empty list decodes to Nil, not an empty List.
type List []any

// BitBinary is a binary whose bit-length is not a multiple of 8. Bits is
// the number of significant bits in the final byte, 1 <= Bits <= 8.
type BitBinary struct {
	Bytes []byte
	Bits  uint8
}

// NewBitBinary validates bits and constructs a BitBinary.
func NewBitBinary(b []byte, bits uint8) (BitBinary, error) {
	if bits < 1 || bits > 8 {
		return BitBinary{}, fmt.Errorf("etf: invalid bitstring trailing bit count %d", bits)
	}
	return BitBinary{Bytes: b, Bits: bits}, nil
}

func (b BitBinary) Equal(o BitBinary) bool {
	return b.Bits == o.Bits && string(b.Bytes) == string(o.Bytes)
}

// MapPair is one (key, value) entry of a Map.
type MapPair struct {
	Key   any
	Value any
}

// Map is an ordered sequence of (key, value) pairs. Unlike a Go map, keys
// need not be unique and insertion order is kept; it is an association
// list, not a hash table. Map is encode-only: it is written as a key-sorted
// List of 2-Tuples, and decoding that wire shape yields a List, never a Map.
type Map []MapPair

// Get returns the value of the first pair whose key is == to key, and
// whether such a pair was found. Keys are compared with plain Go equality;
// callers needing Erlang-term equality across mixed numeric representations
// should compare keys themselves.
func (m Map) Get(key any) (value any, ok bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Pid is an Erlang process identifier: an opaque 4-byte id, 4-byte serial
// and 1-byte creation minted by a node. The codec does not interpret the
// internal structure of Id/Serial.
type Pid struct {
	Node     Atom
	Id       [4]byte
	Serial   [4]byte
	Creation byte
}

func (p Pid) Equal(o Pid) bool {
	return p.Node == o.Node && p.Id == o.Id && p.Serial == o.Serial && p.Creation == o.Creation
}

func (p Pid) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(string(p.Node))
	h.Write(p.Id[:])
	h.Write(p.Serial[:])
	h.WriteByte(p.Creation)
	return h.Sum64()
}

// Port is an Erlang port identifier: opaque 4-byte id and 1-byte creation.
type Port struct {
	Node     Atom
	Id       [4]byte
	Creation byte
}

func (p Port) Equal(o Port) bool {
	return p.Node == o.Node && p.Id == o.Id && p.Creation == o.Creation
}

func (p Port) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(string(p.Node))
	h.Write(p.Id[:])
	h.WriteByte(p.Creation)
	return h.Sum64()
}

// Reference is an Erlang reference: an opaque multiple-of-4-byte id (k >= 1
// words) and 1-byte creation. Decoding the legacy single-id REFERENCE_EXT
// form produces a Reference with one id word; the encoder always emits the
// newer NEW_REFERENCE_EXT form.
type Reference struct {
	Node     Atom
	Id       []uint32
	Creation byte
}

func (r Reference) Equal(o Reference) bool {
	if r.Node != o.Node || r.Creation != o.Creation || len(r.Id) != len(o.Id) {
		return false
	}
	for i := range r.Id {
		if r.Id[i] != o.Id[i] {
			return false
		}
	}
	return true
}

func (r Reference) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(string(r.Node))
	h.WriteByte(r.Creation)
	for _, w := range r.Id {
		var b [4]byte
		b[0] = byte(w >> 24)
		b[1] = byte(w >> 16)
		b[2] = byte(w >> 8)
		b[3] = byte(w)
		h.Write(b[:])
	}
	return h.Sum64()
}

// Export is an Erlang function reference module:function/arity.
type Export struct {
	Module   Atom
	Function Atom
	Arity    int64
}

func (e Export) Equal(o Export) bool {
	return e.Module == o.Module && e.Function == o.Function && e.Arity == o.Arity
}

func (e Export) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(string(e.Module))
	h.WriteString(string(e.Function))
	fmt.Fprintf(&hashWriter{&h}, "%d", e.Arity)
	return h.Sum64()
}

// hashWriter adapts maphash.Hash to io.Writer for use with fmt.Fprintf.
type hashWriter struct{ h *maphash.Hash }

func (w *hashWriter) Write(p []byte) (int, error) { return w.h.Write(p) }
