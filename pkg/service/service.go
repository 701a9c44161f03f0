// Package service exposes the ARX-128/8 cipher over a small HTTP API.
package service

import (
	"encoding/base64"
	"errors"
	"net/http"

	"arxcrypt/pkg/arx128"
	"arxcrypt/pkg/log"
	"arxcrypt/pkg/padding"

	"github.com/labstack/echo/v4"
)

// Server wires an echo instance to a cipher derived from the configured
// key.
type Server struct {
	Api    *echo.Echo
	Config *Config
	cipher *arx128.Cipher
}

type encryptRequest struct {
	Plaintext string `json:"plaintext"`
}

type encryptResponse struct {
	Ciphertext string `json:"ciphertext"`
}

type decryptRequest struct {
	Ciphertext string `json:"ciphertext"`
}

type decryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// NewServer builds the API around cfg. The key is derived once; handlers
// share the immutable cipher.
func NewServer(cfg *Config) (*Server, error) {
	key, err := cfg.Key()
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		log.Warn().Msg("no passphrase or key file configured, running with an empty key")
	}
	api := echo.New()
	api.HideBanner = true
	s := &Server{
		Api:    api,
		Config: cfg,
		cipher: arx128.NewCipher(key),
	}
	s.Api.POST("/encrypt", s.Encrypt)
	s.Api.POST("/decrypt", s.Decrypt)
	s.Api.GET("/healthz", s.Health)
	return s, nil
}

// Encrypt seals the request plaintext and returns it base64-encoded.
func (s *Server) Encrypt(c echo.Context) error {
	var req encryptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sealed := s.cipher.Seal([]byte(req.Plaintext))
	return c.JSON(http.StatusOK, encryptResponse{
		Ciphertext: base64.StdEncoding.EncodeToString(sealed),
	})
}

// Decrypt decodes and opens the request ciphertext. Malformed base64, a bad
// ciphertext length and invalid padding all map to 400.
func (s *Server) Decrypt(c echo.Context) error {
	var req decryptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	sealed, err := base64.StdEncoding.DecodeString(req.Ciphertext)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed base64 ciphertext")
	}
	plaintext, err := s.cipher.Open(sealed)
	switch {
	case errors.Is(err, arx128.ErrCiphertextLength):
		return echo.NewHTTPError(http.StatusBadRequest, "ciphertext length must be a positive multiple of 16")
	case errors.Is(err, padding.ErrInvalidPadding):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid padding")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, decryptResponse{Plaintext: string(plaintext)})
}

// Health reports liveness.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Run starts the API and blocks until the listener fails or is closed.
func (s *Server) Run() {
	log.Printf("serving cipher API on %s", s.Config.ListenAddr)
	s.Api.Logger.Fatal(s.Api.Start(s.Config.ListenAddr))
}
