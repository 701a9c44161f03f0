package transform

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func roundTrip(t *testing.T, tr Transform, data []byte) {
	t.Helper()
	applied, err := tr.Apply(data)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	reversed, err := tr.Reverse(applied)
	if err != nil {
		t.Fatalf("Reverse failed: %v", err)
	}
	if !bytes.Equal(reversed, data) {
		t.Errorf("round trip mismatch: expected %q, got %q", data, reversed)
	}
}

func TestNoOpTransform(t *testing.T) {
	roundTrip(t, NewNoOpTransform(), []byte("untouched"))
}

func TestARXTransform(t *testing.T) {
	tr := NewARXTransform("testkey")
	roundTrip(t, tr, []byte("secret payload"))
	roundTrip(t, tr, []byte{})

	applied, err := tr.Apply([]byte("secret payload"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if _, err := tr.Reverse(applied[:len(applied)-1]); err == nil {
		t.Error("expected error for truncated ciphertext")
	}
}

func TestBase64Transform(t *testing.T) {
	tr := NewBase64Transform()
	roundTrip(t, tr, []byte{0x00, 0xff, 0x10, 0x80})

	applied, err := tr.Apply([]byte("text safe"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	for _, b := range applied {
		if b < '+' || b > 'z' {
			t.Fatalf("encoded output contains non-base64 byte %#x", b)
		}
	}
	if _, err := tr.Reverse([]byte("%%%not base64%%%")); err == nil {
		t.Error("expected error for malformed base64")
	}
}

func TestGzipTransform(t *testing.T) {
	roundTrip(t, NewGzipTransform(), []byte(strings.Repeat("compress me ", 100)))
}

func TestZstdTransform(t *testing.T) {
	tr, err := NewZstdTransform(zstd.SpeedFastest)
	if err != nil {
		t.Fatalf("NewZstdTransform failed: %v", err)
	}
	data := []byte(strings.Repeat("compress me ", 100))
	roundTrip(t, tr, data)

	applied, err := tr.Apply(data)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(applied) >= len(data) {
		t.Errorf("repetitive data did not shrink: %d -> %d", len(data), len(applied))
	}
}

func TestPayloadProcessorPipeline(t *testing.T) {
	proc, err := NewPayloadProcessor([]Transform{
		NewGzipTransform(),
		NewARXTransform("pipeline key"),
		NewBase64Transform(),
	})
	if err != nil {
		t.Fatalf("NewPayloadProcessor failed: %v", err)
	}
	payload := []byte(strings.Repeat("pipeline payload ", 32))
	out, err := proc.PrepareOutput(payload)
	if err != nil {
		t.Fatalf("PrepareOutput failed: %v", err)
	}
	back, err := proc.ParseInput(out)
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if !bytes.Equal(back, payload) {
		t.Error("pipeline round trip mismatch")
	}
}

func TestPayloadProcessorRequiresStage(t *testing.T) {
	if _, err := NewPayloadProcessor(nil); err == nil {
		t.Error("expected error for empty pipeline")
	}
}

func TestPayloadProcessorWrapsStageErrors(t *testing.T) {
	proc, err := NewPayloadProcessor([]Transform{NewARXTransform("k"), NewBase64Transform()})
	if err != nil {
		t.Fatalf("NewPayloadProcessor failed: %v", err)
	}
	if _, err := proc.ParseInput([]byte("!!!")); err == nil {
		t.Error("expected error for malformed transport encoding")
	}
}
