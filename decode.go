package etf

import (
	"math/big"
)

// Tag bytes for the ETF term bodies this codec understands. Names follow
// the Erlang External Term Format documentation.
const (
	tagNewFloat      byte = 70
	tagBitBinary     byte = 77
	tagAtomCompat    byte = 100 // ATOM_EXT
	tagReference     byte = 101 // REFERENCE_EXT (legacy)
	tagPort          byte = 102 // PORT_EXT
	tagPid           byte = 103 // PID_EXT
	tagSmallTuple    byte = 104
	tagLargeTuple    byte = 105
	tagNil           byte = 106
	tagString        byte = 107
	tagList          byte = 108
	tagBinary        byte = 109
	tagSmallBig      byte = 110
	tagLargeBig      byte = 111
	tagNewReference  byte = 114 // NEW_REFERENCE_EXT
	tagExport        byte = 113
	tagSmallInteger  byte = 97
	tagInteger       byte = 98
	tagLegacyFloat   byte = 99
)

// maxDecodeDepth bounds recursive term nesting on decode, guarding against
// stack exhaustion on adversarial input.
const maxDecodeDepth = 5000

// decodeTermBytes decodes a single term (no version byte, no compression
// sub-frame) from data and returns the term plus the unread tail.
func decodeTermBytes(data []byte) (any, []byte, error) {
	r := newByteReader(data)
	term, err := decodeTerm(r, 0)
	if err != nil {
		return nil, nil, err
	}
	return term, r.remaining(), nil
}

// decodeTerm dispatches on the tag byte at the front of r, consuming the
// term's full body and recursing for nested terms.
func decodeTerm(r *byteReader, depth int) (any, error) {
	if depth > maxDecodeDepth {
		return nil, ErrDepthExceeded
	}

	pos := len(r.orig) - r.len()
	tag, err := r.takeU8()
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagSmallInteger:
		b, err := r.takeU8()
		if err != nil {
			return nil, err
		}
		return int64(b), nil

	case tagInteger:
		i, err := r.takeI32()
		if err != nil {
			return nil, err
		}
		return int64(i), nil

	case tagNewFloat:
		return r.takeF64BE()

	case tagLegacyFloat:
		return decodeLegacyFloat(r)

	case tagAtomCompat:
		n, err := r.takeU16()
		if err != nil {
			return nil, err
		}
		b, err := r.take(int(n))
		if err != nil {
			return nil, err
		}
		return atomToTerm(Atom(b)), nil

	case tagNil:
		return Nil{}, nil

	case tagString:
		n, err := r.takeU16()
		if err != nil {
			return nil, err
		}
		b, err := r.take(int(n))
		if err != nil {
			return nil, err
		}
		if len(b) == 0 {
			return Nil{}, nil
		}
		list := make(List, len(b))
		for i, c := range b {
			list[i] = int64(c)
		}
		return list, nil

	case tagList:
		n, err := r.takeU32()
		if err != nil {
			return nil, err
		}
		list := make(List, n)
		for i := range list {
			el, err := decodeTerm(r, depth+1)
			if err != nil {
				return nil, err
			}
			list[i] = el
		}
		// the tail term is decoded and discarded unconditionally; improper
		// lists are not preserved by this codec.
		if _, err := decodeTerm(r, depth+1); err != nil {
			return nil, err
		}
		if n == 0 {
			return Nil{}, nil
		}
		return list, nil

	case tagBinary:
		n, err := r.takeU32()
		if err != nil {
			return nil, err
		}
		b, err := r.take(int(n))
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil

	case tagSmallTuple:
		arity, err := r.takeU8()
		if err != nil {
			return nil, err
		}
		return decodeTupleElements(r, int(arity), depth)

	case tagLargeTuple:
		arity, err := r.takeU32()
		if err != nil {
			return nil, err
		}
		return decodeTupleElements(r, int(arity), depth)

	case tagSmallBig:
		n, err := r.takeU8()
		if err != nil {
			return nil, err
		}
		return decodeBig(r, int(n))

	case tagLargeBig:
		n, err := r.takeU32()
		if err != nil {
			return nil, err
		}
		return decodeBig(r, int(n))

	case tagBitBinary:
		n, err := r.takeU32()
		if err != nil {
			return nil, err
		}
		bits, err := r.takeU8()
		if err != nil {
			return nil, err
		}
		b, err := r.take(int(n))
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(b))
		copy(out, b)
		return BitBinary{Bytes: out, Bits: bits}, nil

	case tagPid:
		node, err := decodeTerm(r, depth+1)
		if err != nil {
			return nil, err
		}
		nodeAtom, ok := node.(Atom)
		if !ok {
			return nil, UnsupportedTagError{Tag: tagPid, Pos: pos}
		}
		idb, err := r.take(4)
		if err != nil {
			return nil, err
		}
		serialb, err := r.take(4)
		if err != nil {
			return nil, err
		}
		creation, err := r.takeU8()
		if err != nil {
			return nil, err
		}
		var pid Pid
		pid.Node = nodeAtom
		copy(pid.Id[:], idb)
		copy(pid.Serial[:], serialb)
		pid.Creation = creation
		return pid, nil

	case tagPort:
		node, err := decodeTerm(r, depth+1)
		if err != nil {
			return nil, err
		}
		nodeAtom, ok := node.(Atom)
		if !ok {
			return nil, UnsupportedTagError{Tag: tagPort, Pos: pos}
		}
		idb, err := r.take(4)
		if err != nil {
			return nil, err
		}
		creation, err := r.takeU8()
		if err != nil {
			return nil, err
		}
		var port Port
		port.Node = nodeAtom
		copy(port.Id[:], idb)
		port.Creation = creation
		return port, nil

	case tagReference:
		node, err := decodeTerm(r, depth+1)
		if err != nil {
			return nil, err
		}
		nodeAtom, ok := node.(Atom)
		if !ok {
			return nil, UnsupportedTagError{Tag: tagReference, Pos: pos}
		}
		idb, err := r.take(4)
		if err != nil {
			return nil, err
		}
		creation, err := r.takeU8()
		if err != nil {
			return nil, err
		}
		return Reference{
			Node:     nodeAtom,
			Id:       []uint32{beUint32(idb)},
			Creation: creation,
		}, nil

	case tagNewReference:
		k, err := r.takeU16()
		if err != nil {
			return nil, err
		}
		if k == 0 {
			return nil, UnsupportedTagError{Tag: tagNewReference, Pos: pos}
		}
		node, err := decodeTerm(r, depth+1)
		if err != nil {
			return nil, err
		}
		nodeAtom, ok := node.(Atom)
		if !ok {
			return nil, UnsupportedTagError{Tag: tagNewReference, Pos: pos}
		}
		creation, err := r.takeU8()
		if err != nil {
			return nil, err
		}
		ids := make([]uint32, k)
		for i := range ids {
			idb, err := r.take(4)
			if err != nil {
				return nil, err
			}
			ids[i] = beUint32(idb)
		}
		return Reference{Node: nodeAtom, Id: ids, Creation: creation}, nil

	case tagExport:
		module, err := decodeTerm(r, depth+1)
		if err != nil {
			return nil, err
		}
		moduleAtom, ok := module.(Atom)
		if !ok {
			return nil, UnsupportedTagError{Tag: tagExport, Pos: pos}
		}
		function, err := decodeTerm(r, depth+1)
		if err != nil {
			return nil, err
		}
		functionAtom, ok := function.(Atom)
		if !ok {
			return nil, UnsupportedTagError{Tag: tagExport, Pos: pos}
		}
		arityTerm, err := decodeTerm(r, depth+1)
		if err != nil {
			return nil, err
		}
		arity, err := AsInt64(arityTerm)
		if err != nil {
			return nil, UnsupportedTagError{Tag: tagExport, Pos: pos}
		}
		return Export{Module: moduleAtom, Function: functionAtom, Arity: arity}, nil

	default:
		return nil, UnsupportedTagError{Tag: tag, Pos: pos}
	}
}

// decodeTupleElements decodes arity elements and recognizes the fallback
// bridge 2-tuple shape: (Atom "python_pickle", Binary).
func decodeTupleElements(r *byteReader, arity int, depth int) (any, error) {
	elems := make(Tuple, arity)
	for i := range elems {
		el, err := decodeTerm(r, depth+1)
		if err != nil {
			return nil, err
		}
		elems[i] = el
	}
	if len(elems) == 2 {
		if tag, ok := elems[0].(Atom); ok && tag == bridgeAtom {
			if payload, ok := elems[1].([]byte); ok {
				if v, err := decodeBridge(payload); err == nil {
					return v, nil
				}
			}
		}
	}
	return elems, nil
}

// decodeBig reconstructs the signed integer carried by a SMALL_BIG/LARGE_BIG
// body of n magnitude bytes.
func decodeBig(r *byteReader, n int) (*big.Int, error) {
	sign, err := r.takeU8()
	if err != nil {
		return nil, err
	}
	mag, err := r.take(n)
	if err != nil {
		return nil, err
	}
	return decodeBigMagnitude(mag, sign), nil
}

// decodeLegacyFloat parses the 31-byte NUL-padded ASCII float body of
// FLOAT_EXT.
func decodeLegacyFloat(r *byteReader) (float64, error) {
	b, err := r.take(31)
	if err != nil {
		return 0, err
	}
	end := len(b)
	for i, c := range b {
		if c == 0 {
			end = i
			break
		}
	}
	f, perr := parseFloatStrict(string(b[:end]))
	if perr != nil {
		return 0, ErrMalformedLegacyFloat
	}
	return f, nil
}

// atomToTerm applies the decode-asymmetric Atom/Boolean/NullSentinel
// mapping: the atoms true, false, none decode to bool/NullSentinel; every
// other atom remains an Atom.
func atomToTerm(a Atom) any {
	switch a {
	case atomTrue:
		return true
	case atomFalse:
		return false
	case atomNone:
		return NullSentinel{}
	default:
		return a
	}
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
