// Package padding implements the PKCS#7 byte padding used by the block
// cipher stream wrapper.
package padding

import "errors"

// ErrInvalidPadding is returned by Unpad when the trailing pad-length byte
// is zero or larger than the padded data.
var ErrInvalidPadding = errors.New("padding: invalid pad length")

// Pad appends PKCS#7 padding so that the result is a multiple of blockSize.
// Padding is always applied: block-aligned input gains a full extra block of
// pad bytes. The input slice is not modified.
func Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// Unpad strips PKCS#7 padding by the trailing pad-length byte. Only the
// length byte is validated; pad-byte contents are not checked, so any
// trailing byte in [1, len(data)] truncates that many bytes.
func Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrInvalidPadding
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) {
		return nil, ErrInvalidPadding
	}
	return data[:len(data)-padLen], nil
}
