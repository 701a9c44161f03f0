package padding

import (
	"bytes"
	"errors"
	"testing"
)

func TestPadAlwaysApplied(t *testing.T) {
	for n := 0; n <= 33; n++ {
		data := bytes.Repeat([]byte{'x'}, n)
		padded := Pad(data, 16)
		if len(padded)%16 != 0 || len(padded) == len(data) {
			t.Fatalf("len %d: padded to %d, want a strictly larger multiple of 16", n, len(padded))
		}
		padLen := 16 - n%16
		if int(padded[len(padded)-1]) != padLen {
			t.Errorf("len %d: pad byte %d, want %d", n, padded[len(padded)-1], padLen)
		}
	}
}

func TestPadDoesNotAliasInput(t *testing.T) {
	data := []byte("hello")
	padded := Pad(data, 16)
	padded[0] = 'X'
	if data[0] != 'h' {
		t.Error("Pad modified its input")
	}
}

func TestUnpadRoundTrip(t *testing.T) {
	for n := 0; n <= 33; n++ {
		data := bytes.Repeat([]byte{'y'}, n)
		out, err := Unpad(Pad(data, 16))
		if err != nil {
			t.Fatalf("len %d: Unpad failed: %v", n, err)
		}
		if !bytes.Equal(out, data) {
			t.Errorf("len %d: round trip mismatch", n)
		}
	}
}

func TestUnpadInvalid(t *testing.T) {
	cases := map[string][]byte{
		"empty":          {},
		"zero pad":       {1, 2, 3, 0},
		"pad too large":  {1, 2, 3, 5},
		"only oversized": {200},
	}
	for name, data := range cases {
		if _, err := Unpad(data); !errors.Is(err, ErrInvalidPadding) {
			t.Errorf("%s: expected ErrInvalidPadding, got %v", name, err)
		}
	}
}

func TestUnpadFullBlock(t *testing.T) {
	block := bytes.Repeat([]byte{16}, 16)
	out, err := Unpad(block)
	if err != nil {
		t.Fatalf("Unpad failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d bytes", len(out))
	}
}
