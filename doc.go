// Package etf implements the Erlang External Term Format (ETF), the wire
// format produced and consumed by an Erlang runtime's term_to_binary and
// binary_to_term primitives (protocol version 131).
//
// Use Decode to turn a framed byte sequence into a term and any unread
// suffix:
//
//	term, tail, err := etf.Decode(data)
//
// Use Encode to turn a term back into framed bytes, optionally compressed:
//
//	data, err := etf.Encode(term, etf.CompressionOff)
//
// The following table summarizes the mapping between Erlang terms and Go
// values used by this package:
//
//	Erlang             Go
//	------             --
//
//	small integer      int64
//	integer            int64
//	bignum             *big.Int
//	float              float64
//	atom               etf.Atom
//	true / false       bool
//	none               etf.NullSentinel
//	nil (empty list)   etf.Nil
//	list               etf.List
//	string (charlist)  etf.List of int64, or etf.Nil if empty
//	binary             []byte
//	bitstring          etf.BitBinary
//	tuple              etf.Tuple
//	map (encode only)  etf.Map -> list of 2-tuples
//	pid                etf.Pid
//	port               etf.Port
//	reference          etf.Reference
//	export (M:F/A)     etf.Export
//
// Host values with no direct ETF representation are carried through the
// Fallback Bridge (see RegisterBridge) as a 2-tuple tagged with the
// reserved atom "python_pickle"; see the package-level Bridge type.
//
// This package implements only the plain term format. It does not
// implement the distribution header used between Erlang nodes, and it does
// not preserve improper list tails (the final, non-Nil tail of an ETF LIST
// is decoded and discarded, matching the behavior of the prior
// implementation this package is modeled on).
package etf
