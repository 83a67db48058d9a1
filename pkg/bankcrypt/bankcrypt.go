// Package bankcrypt provides reversible encryption for sensitive bank-detail
// fields (account number, routing code) before they are persisted.
package bankcrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// kdfSalt is a domain-separation constant for key derivation, not a secret.
const kdfSalt = "farm-api/bank-details"

var (
	ErrMalformedToken = errors.New("bankcrypt: malformed token")
	ErrBadPadding     = errors.New("bankcrypt: bad padding")
)

// Cipher encrypts and decrypts individual field values with AES-256-CBC.
// Output format is "iv_hex:ciphertext_hex" with a fresh random IV per call.
type Cipher struct {
	key []byte
}

// New derives a 256-bit key from the configured secret via scrypt.
func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.New("bankcrypt: empty secret")
	}
	key, err := scrypt.Key([]byte(secret), []byte(kdfSalt), 1<<15, 8, 1, 32)
	if err != nil {
		return nil, err
	}
	return &Cipher{key: key}, nil
}

// IsEncrypted reports whether a stored value already carries the iv:ciphertext
// shape. Used by save paths to avoid double-encrypting on repeated saves.
func IsEncrypted(s string) bool {
	return strings.Contains(s, ":")
}

// Encrypt returns "iv_hex:ciphertext_hex" for the given plaintext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)
	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ct), nil
}

// Decrypt reverses Encrypt. Values without a colon are returned unchanged:
// they predate field encryption and are treated as legacy plaintext.
func (c *Cipher) Decrypt(token string) (string, error) {
	ivHex, ctHex, found := strings.Cut(token, ":")
	if !found {
		return token, nil
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", ErrMalformedToken
	}
	ct, err := hex.DecodeString(ctHex)
	if err != nil {
		return "", ErrMalformedToken
	}
	if len(iv) != aes.BlockSize || len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", ErrMalformedToken
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)
	unpadded, err := pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, ErrBadPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, ErrBadPadding
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, ErrBadPadding
		}
	}
	return b[:len(b)-n], nil
}
