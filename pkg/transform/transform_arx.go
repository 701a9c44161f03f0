package transform

import (
	"fmt"

	"arxcrypt/pkg/arx128"
)

type arxTransform struct{ cipher *arx128.Cipher }

// NewARXTransform returns an encryption stage backed by the ARX-128/8
// cipher in ECB mode with PKCS#7 padding. The round-key schedule is derived
// from the passphrase once; the stage is safe for concurrent use.
func NewARXTransform(passphrase string) Transform {
	return &arxTransform{cipher: arx128.NewCipher([]byte(passphrase))}
}

func (e *arxTransform) Apply(plaintext []byte) ([]byte, error) {
	return e.cipher.Seal(plaintext), nil
}

func (e *arxTransform) Reverse(ciphertext []byte) ([]byte, error) {
	plaintext, err := e.cipher.Open(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("arx reverse (decrypt): %w", err)
	}
	return plaintext, nil
}
