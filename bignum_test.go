package etf

import (
	"math/big"
	"testing"
)

func TestEncodeBigMagnitudeMinimalLength(t *testing.T) {
	n := big.NewInt(255)
	sign, mag := encodeBigMagnitude(n)
	if sign != 0 {
		t.Fatalf("positive number should have sign 0")
	}
	if len(mag) != 1 || mag[0] != 0xFF {
		t.Fatalf("magnitude = %x, want [ff]", mag)
	}
}

func TestEncodeBigMagnitudeNegative(t *testing.T) {
	n := big.NewInt(-256)
	sign, mag := encodeBigMagnitude(n)
	if sign != 1 {
		t.Fatalf("negative number should have sign 1")
	}
	// 256 = 0x0100, little-endian minimal magnitude is [00, 01].
	if len(mag) != 2 || mag[0] != 0x00 || mag[1] != 0x01 {
		t.Fatalf("magnitude = %x, want [00 01]", mag)
	}
}

func TestDecodeBigMagnitudeSignHandling(t *testing.T) {
	got := decodeBigMagnitude([]byte{0x00, 0x01}, 0)
	if got.Cmp(big.NewInt(256)) != 0 {
		t.Fatalf("got %v, want 256", got)
	}
	got = decodeBigMagnitude([]byte{0x00, 0x01}, 1)
	if got.Cmp(big.NewInt(-256)) != 0 {
		t.Fatalf("got %v, want -256", got)
	}
	// Any nonzero sign byte means negative (§4.3).
	got = decodeBigMagnitude([]byte{0x01}, 42)
	if got.Sign() >= 0 {
		t.Fatalf("nonzero, non-1 sign byte should still be treated as negative")
	}
}

func TestBignumRoundTripTable(t *testing.T) {
	values := []string{
		"0", "1", "-1", "255", "256", "-256",
		"123456789012345678901234567890",
		"-123456789012345678901234567890",
	}
	for _, s := range values {
		n := new(big.Int)
		if _, ok := n.SetString(s, 10); !ok {
			t.Fatalf("bad test literal %q", s)
		}
		sign, mag := encodeBigMagnitude(n)
		got := decodeBigMagnitude(mag, sign)
		if got.Cmp(n) != 0 {
			t.Fatalf("roundtrip(%s) = %v", s, got)
		}
	}
}
