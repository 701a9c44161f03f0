package service

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arxcrypt/pkg/arx128"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Passphrase = "testkey"
	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return s
}

func postJSON(s *Server, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Api.ServeHTTP(rec, req)
	return rec
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	s := newTestServer(t)

	rec := postJSON(s, "/encrypt", `{"plaintext":"hello service"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("encrypt: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var enc struct {
		Ciphertext string `json:"ciphertext"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &enc); err != nil {
		t.Fatalf("bad encrypt response: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(enc.Ciphertext)
	if err != nil {
		t.Fatalf("ciphertext is not valid base64: %v", err)
	}
	if len(raw)%arx128.BlockSize != 0 {
		t.Fatalf("ciphertext length %d not a multiple of 16", len(raw))
	}

	rec = postJSON(s, "/decrypt", `{"ciphertext":"`+enc.Ciphertext+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("decrypt: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var dec struct {
		Plaintext string `json:"plaintext"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &dec); err != nil {
		t.Fatalf("bad decrypt response: %v", err)
	}
	if dec.Plaintext != "hello service" {
		t.Errorf("expected original plaintext, got %q", dec.Plaintext)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("ARXCRYPT_PASSPHRASE", "from-env")
	t.Setenv("ARXCRYPT_LISTEN_ADDRESS", ":9999")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Passphrase != "from-env" {
		t.Errorf("ARXCRYPT_PASSPHRASE not honored: got %q", cfg.Passphrase)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ARXCRYPT_LISTEN_ADDRESS not honored: got %q", cfg.ListenAddr)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ListenAddr == "" || cfg.LogLevel == "" {
		t.Errorf("expected defaults to apply, got %+v", cfg)
	}
}

func TestDecryptRejectsMalformedBase64(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(s, "/decrypt", `{"ciphertext":"%%% not base64 %%%"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDecryptRejectsBadLength(t *testing.T) {
	s := newTestServer(t)
	// 17 raw bytes: valid base64, invalid ciphertext length.
	ct := base64.StdEncoding.EncodeToString(make([]byte, 17))
	rec := postJSON(s, "/decrypt", `{"ciphertext":"`+ct+`"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestDecryptRejectsInvalidPadding(t *testing.T) {
	s := newTestServer(t)
	// A block whose decryption ends in a zero pad byte.
	c := arx128.NewCipher([]byte("testkey"))
	sealed := make([]byte, arx128.BlockSize)
	c.Encrypt(sealed, make([]byte, arx128.BlockSize))
	ct := base64.StdEncoding.EncodeToString(sealed)
	rec := postJSON(s, "/decrypt", `{"ciphertext":"`+ct+`"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Api.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
