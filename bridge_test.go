package etf

import "testing"

func TestBridgeRoundTrip(t *testing.T) {
	type widget struct{ Name string }

	RegisterBridge(&Bridge{
		Serialize: func(term any) ([]byte, error) {
			w, ok := term.(widget)
			if !ok {
				return nil, ErrUnsupportedType
			}
			return []byte(w.Name), nil
		},
		Deserialize: func(data []byte) (any, error) {
			return widget{Name: string(data)}, nil
		},
	})
	defer RegisterBridge(nil)

	payload, err := EncodeTerm(widget{Name: "gear"})
	if err != nil {
		t.Fatalf("EncodeTerm: %v", err)
	}
	got, _, err := decodeTermBytes(payload)
	if err != nil {
		t.Fatalf("decodeTermBytes: %v", err)
	}
	w, ok := got.(widget)
	if !ok || w.Name != "gear" {
		t.Fatalf("got %#v, want widget{Name: \"gear\"}", got)
	}
}

func TestBridgeUnregisteredEncodeFails(t *testing.T) {
	RegisterBridge(nil)
	type widget struct{ Name string }
	_, err := EncodeTerm(widget{Name: "gear"})
	if err != ErrUnsupportedType {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
}
