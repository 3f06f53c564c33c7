package etf

import (
	"fmt"
	"math/big"
	"strconv"
)

// AsInt64 accepts the two Go representations this package uses for the
// Integer term variant -- int64 for values produced from SMALL_INTEGER/
// INTEGER, and *big.Int for values produced from SMALL_BIG/LARGE_BIG -- and
// returns a plain int64, failing if a *big.Int doesn't fit.
func AsInt64(x any) (int64, error) {
	switch v := x.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case *big.Int:
		if !v.IsInt64() {
			return 0, fmt.Errorf("etf: bignum outside int64 range")
		}
		return v.Int64(), nil
	}
	return 0, fmt.Errorf("etf: expected integer; got %T", x)
}

// AsBigInt returns x as a *big.Int regardless of whether it was decoded as
// int64 or *big.Int.
func AsBigInt(x any) (*big.Int, error) {
	switch v := x.(type) {
	case int64:
		return big.NewInt(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case *big.Int:
		return v, nil
	}
	return nil, fmt.Errorf("etf: expected integer; got %T", x)
}

// IsNil reports whether x is the ETF empty-list marker.
func IsNil(x any) bool {
	_, ok := x.(Nil)
	return ok
}

// IsNone reports whether x is the host "no value" sentinel.
func IsNone(x any) bool {
	_, ok := x.(NullSentinel)
	return ok
}

// parseFloatStrict parses s as a decimal floating point number, rejecting
// the non-numeric spellings (Inf, NaN, hex floats) that strconv.ParseFloat
// otherwise accepts -- the legacy FLOAT_EXT wire text is always a plain
// decimal produced by an Erlang runtime, never those spellings.
func parseFloatStrict(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("etf: empty float text")
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E':
		default:
			return 0, fmt.Errorf("etf: invalid character %q in float text", c)
		}
	}
	return strconv.ParseFloat(s, 64)
}
