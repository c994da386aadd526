package hash

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// AESSealer is AES-256 in ECB mode with PKCS#7 padding and hex output.
// Equal plaintexts give equal ciphertexts.
type AESSealer struct {
	block cipher.Block
}

// NewAESSealer uses a 32 byte secret as the key directly and stretches any
// other secret with SHA-256.
func NewAESSealer(secret []byte) (*AESSealer, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty cipher key")
	}
	key := secret
	if len(key) != 32 {
		sum := sha256.Sum256(secret)
		key = sum[:]
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &AESSealer{block: block}, nil
}

func (s *AESSealer) Seal(plain string) (string, error) {
	bs := s.block.BlockSize()
	data := pad([]byte(plain), bs)
	out := make([]byte, len(data))
	for i := 0; i < len(data); i += bs {
		s.block.Encrypt(out[i:i+bs], data[i:i+bs])
	}
	return hex.EncodeToString(out), nil
}

func (s *AESSealer) Open(sealed string) (string, error) {
	raw, err := hex.DecodeString(sealed)
	if err != nil {
		return "", ErrMalformedCiphertext
	}
	bs := s.block.BlockSize()
	if len(raw) == 0 || len(raw)%bs != 0 {
		return "", ErrMalformedCiphertext
	}
	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i += bs {
		s.block.Decrypt(out[i:i+bs], raw[i:i+bs])
	}
	plain, err := unpad(out, bs)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func (s *AESSealer) Matches(sealed, plain string) (bool, error) {
	opened, err := s.Open(sealed)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(opened), []byte(plain)) == 1, nil
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(append([]byte{}, b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, ErrMalformedCiphertext
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, ErrMalformedCiphertext
		}
	}
	return b[:len(b)-n], nil
}
