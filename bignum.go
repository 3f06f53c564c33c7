package etf

import "math/big"

// decodeBigMagnitude reconstructs a signed arbitrary-precision integer from
// an ETF SMALL_BIG/LARGE_BIG body: len little-endian magnitude bytes plus a
// sign byte.
//
// Any sign byte other than 0 is treated as negative.
func decodeBigMagnitude(mag []byte, sign byte) *big.Int {
	// mag is little-endian; big.Int.SetBytes wants big-endian.
	be := make([]byte, len(mag))
	for i, b := range mag {
		be[len(mag)-1-i] = b
	}
	n := new(big.Int).SetBytes(be)
	if sign != 0 {
		n.Neg(n)
	}
	return n
}

// encodeBigMagnitude walks n's absolute value out as little-endian bytes,
// stopping at the natural minimum length (no padding beyond what's needed
// to represent the magnitude), and returns (sign, magnitude).
func encodeBigMagnitude(n *big.Int) (sign byte, mag []byte) {
	if n.Sign() < 0 {
		sign = 1
	}
	abs := new(big.Int).Abs(n)
	be := abs.Bytes() // big-endian, no leading zero byte (big.Int invariant)
	mag = make([]byte, len(be))
	for i, b := range be {
		mag[len(be)-1-i] = b
	}
	return sign, mag
}
