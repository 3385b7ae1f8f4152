// Package aead wraps the single authenticated-encryption construction used
// by luaucx containers: XChaCha20-Poly1305 with a 256-bit key, a 192-bit
// nonce, and a 128-bit tag.
//
// The container format stores the tag in the header rather than appended to
// the ciphertext, so Seal and Open carry the tag as a separate value and
// the ciphertext is always exactly as long as the plaintext.
//
// This is the only package that touches key material. It never logs, keeps
// no buffers beyond the returned slices, and retains no reference to the
// key after a call returns. Nonce uniqueness per (key, message) is the
// caller's responsibility; reuse breaks every guarantee the construction
// makes.
package aead

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the XChaCha20-Poly1305 key size in bytes.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the XChaCha20-Poly1305 nonce size in bytes.
	NonceSize = chacha20poly1305.NonceSizeX
	// TagSize is the Poly1305 authentication tag size in bytes.
	TagSize = chacha20poly1305.Overhead
)

var (
	// ErrInvalidKeySize is returned when the key is not 32 bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce is not 24 bytes.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrAuthentication is returned when tag verification fails.
	ErrAuthentication = errors.New("message authentication failed")
)

// Seal encrypts plaintext and authenticates (plaintext, aad) under
// (key, nonce). It is deterministic for identical inputs. The returned
// ciphertext has the same length as the plaintext; the 16-byte tag is
// returned separately.
func Seal(key, nonce, plaintext, aad []byte) (ciphertext, tag []byte, err error) {
	c, err := newCipher(key, nonce)
	if err != nil {
		return nil, nil, err
	}

	sealed := c.Seal(nil, nonce, plaintext, aad)
	return sealed[:len(plaintext)], sealed[len(plaintext):], nil
}

// Open verifies tag over (ciphertext, aad) under (key, nonce) and returns
// the plaintext. Verification is all-or-nothing: on any mismatch Open
// returns ErrAuthentication and no plaintext, partial or otherwise.
func Open(key, nonce, ciphertext, tag, aad []byte) ([]byte, error) {
	c, err := newCipher(key, nonce)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

func newCipher(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}
	return chacha20poly1305.NewX(key)
}
