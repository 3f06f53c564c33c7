package etf

import "sync/atomic"

// bridgeAtom is the reserved atom tagging a Fallback Bridge 2-tuple. Other
// users of the wire format must treat this name as opaque.
const bridgeAtom Atom = "python_pickle"

// Bridge is the pair of host-supplied callbacks used to carry opaque
// host-native objects through an ETF stream. Serialize is invoked only
// after every built-in encoding rule in EncodeTerm has been considered;
// Deserialize is invoked only when decode recognizes the reserved 2-tuple
// shape, and a Deserialize failure falls back silently to the raw Tuple
// value.
type Bridge struct {
	Serialize   func(term any) ([]byte, error)
	Deserialize func(data []byte) (any, error)
}

// activeBridge holds the process-wide registered Bridge, if any. The codec
// core remains usable -- rejecting unknown term types with
// ErrUnsupportedType -- without one registered.
var activeBridge atomic.Pointer[Bridge]

// RegisterBridge installs b as the Fallback Bridge used by Encode/Decode.
// Passing nil clears the registration.
func RegisterBridge(b *Bridge) {
	activeBridge.Store(b)
}

// encodeBridge invokes the registered Bridge's Serialize callback and
// wraps its result as the reserved 2-tuple. It returns ErrUnsupportedType
// if no Bridge is registered or Serialize fails.
func encodeBridge(term any) (Tuple, error) {
	b := activeBridge.Load()
	if b == nil || b.Serialize == nil {
		return nil, ErrUnsupportedType
	}
	data, err := b.Serialize(term)
	if err != nil {
		return nil, ErrUnsupportedType
	}
	return Tuple{bridgeAtom, data}, nil
}

// decodeBridge invokes the registered Bridge's Deserialize callback. It
// returns an error if no Bridge is registered or Deserialize fails; callers
// fall back to the raw tuple value in that case.
func decodeBridge(data []byte) (any, error) {
	b := activeBridge.Load()
	if b == nil || b.Deserialize == nil {
		return nil, ErrUnsupportedType
	}
	return b.Deserialize(data)
}
