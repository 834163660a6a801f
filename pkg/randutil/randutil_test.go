package randutil

import (
	"encoding/hex"
	"testing"
)

func TestString(t *testing.T) {
	s := String(12)
	if len(s) != 12 {
		t.Fatalf("expected 12 characters, got %q", s)
	}
	if _, err := hex.DecodeString(Hex(16)); err != nil {
		t.Fatal(err)
	}
}

func TestSeed(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := Seed()
		if v < 0 || v >= 1<<15 {
			t.Fatalf("seed %d out of range", v)
		}
	}
}
