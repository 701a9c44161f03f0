// Package arx128 implements the ARX-128/8 block cipher: a 16-byte-block,
// 8-round add/rotate/xor construction whose round keys are derived from an
// arbitrary-length key via SHA-256.
//
// ARX-128/8 is a didactic, non-standard cipher kept for interoperability
// with existing deployments. It has had no cryptanalysis and the stream
// wrapper is plain ECB; use AES-GCM when actual confidentiality matters.
package arx128

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math/bits"
	"strconv"

	"arxcrypt/pkg/padding"
)

const (
	// BlockSize is the cipher block size in bytes.
	BlockSize = 16
	// NumRounds is the fixed number of mixing rounds per block.
	NumRounds = 8
	// KeyWords is the number of 32-bit round keys in the schedule.
	KeyWords = 8
)

// ErrCiphertextLength is returned by Open when the ciphertext is empty or
// not a multiple of the block size.
var ErrCiphertextLength = errors.New("arx128: ciphertext length must be a positive multiple of 16")

// Cipher holds the derived round-key schedule. It is immutable after
// NewCipher returns and safe for concurrent use.
type Cipher struct {
	roundKeys [KeyWords]uint32
}

// NewCipher derives the round-key schedule from key and returns a ready
// cipher. Any key length is accepted, including empty; derivation never
// fails.
func NewCipher(key []byte) *Cipher {
	digest := sha256.Sum256(key)
	hexDigest := hex.EncodeToString(digest[:])
	c := &Cipher{}
	for i := 0; i < KeyWords; i++ {
		// Eight hex chars parse into a uint32; ParseUint cannot fail on
		// hex.EncodeToString output.
		word, _ := strconv.ParseUint(hexDigest[i*8:(i+1)*8], 16, 32)
		c.roundKeys[i] = uint32(word)
	}
	return c
}

func rotl32(v uint32, shift int) uint32 { return bits.RotateLeft32(v, shift) }
func rotr32(v uint32, shift int) uint32 { return bits.RotateLeft32(v, -shift) }

// BlockSize returns the cipher block size in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts a single 16-byte block from src into dst.
// src and dst must be at least 16 bytes and may overlap entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("arx128: input not full block")
	}
	a := binary.LittleEndian.Uint32(src[0:4])
	b := binary.LittleEndian.Uint32(src[4:8])
	x := binary.LittleEndian.Uint32(src[8:12])
	y := binary.LittleEndian.Uint32(src[12:16])
	for r := 0; r < NumRounds; r++ {
		a ^= c.roundKeys[r%KeyWords]
		b += a
		x = rotl32(x^b, 3)
		y = rotr32(y+x, 2)
		a, x = x, a
	}
	binary.LittleEndian.PutUint32(dst[0:4], a)
	binary.LittleEndian.PutUint32(dst[4:8], b)
	binary.LittleEndian.PutUint32(dst[8:12], x)
	binary.LittleEndian.PutUint32(dst[12:16], y)
}

// Decrypt decrypts a single 16-byte block from src into dst, exactly
// inverting Encrypt. src and dst must be at least 16 bytes.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("arx128: input not full block")
	}
	a := binary.LittleEndian.Uint32(src[0:4])
	b := binary.LittleEndian.Uint32(src[4:8])
	x := binary.LittleEndian.Uint32(src[8:12])
	y := binary.LittleEndian.Uint32(src[12:16])
	// Each round undoes the forward steps in reverse order; the swap must
	// come first or the y/x updates read post-swap words.
	for r := NumRounds - 1; r >= 0; r-- {
		a, x = x, a
		y = rotl32(y, 2) - x
		x = rotr32(x, 3) ^ b
		b -= a
		a ^= c.roundKeys[r%KeyWords]
	}
	binary.LittleEndian.PutUint32(dst[0:4], a)
	binary.LittleEndian.PutUint32(dst[4:8], b)
	binary.LittleEndian.PutUint32(dst[8:12], x)
	binary.LittleEndian.PutUint32(dst[12:16], y)
}

// Seal pads plaintext with PKCS#7 and encrypts it block by block in ECB
// mode. The result is always a positive multiple of 16 bytes; a plaintext
// already block-aligned still gains a full padding block.
func (c *Cipher) Seal(plaintext []byte) []byte {
	padded := padding.Pad(plaintext, BlockSize)
	out := make([]byte, len(padded))
	for off := 0; off < len(padded); off += BlockSize {
		c.Encrypt(out[off:off+BlockSize], padded[off:off+BlockSize])
	}
	return out
}

// Open decrypts ciphertext produced by Seal and strips the padding.
// It returns ErrCiphertextLength when the input is empty or not a multiple
// of the block size, and padding.ErrInvalidPadding when the recovered
// pad-length byte is out of range.
func (c *Cipher) Open(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, ErrCiphertextLength
	}
	out := make([]byte, len(ciphertext))
	for off := 0; off < len(ciphertext); off += BlockSize {
		c.Decrypt(out[off:off+BlockSize], ciphertext[off:off+BlockSize])
	}
	return padding.Unpad(out)
}
