package luaucx

import (
	"fmt"

	"github.com/luaucx/luaucx-go/internal/aead"
	"github.com/luaucx/luaucx-go/internal/header"
)

// Wire-format constants.
const (
	// Magic identifies a luaucx container; it is the first 8 bytes on the
	// wire.
	Magic = "LUAUBYTX"

	// Version is the container format revision this package produces and
	// the only one it accepts.
	Version = 1

	// KeySize is the required key length in bytes.
	KeySize = aead.KeySize

	// NonceSize is the nonce length in bytes.
	NonceSize = aead.NonceSize

	// TagSize is the authentication tag length in bytes.
	TagSize = aead.TagSize

	// HeaderLen is the fixed header length in bytes; a container is always
	// HeaderLen + ct_len + ad_len bytes long.
	HeaderLen = header.Len
)

// Cipher identifies the AEAD suite recorded in a container's cipher id
// byte. The set of suites is closed: anything other than the constants
// below is rejected as unsupported rather than guessed at, so a future
// suite is a new constant and a new switch arm, not a change to existing
// wire semantics.
type Cipher byte

// CipherXChaCha20Poly1305 is the only suite defined by format version 1:
// XChaCha20-Poly1305 with a 256-bit key, 192-bit nonce, and 128-bit tag.
const CipherXChaCha20Poly1305 Cipher = 1

// String returns a human-readable suite name.
func (c Cipher) String() string {
	switch c {
	case CipherXChaCha20Poly1305:
		return "xchacha20-poly1305"
	default:
		return fmt.Sprintf("unsupported(%d)", byte(c))
	}
}

// supported reports whether c names a suite this package implements.
func (c Cipher) supported() bool {
	switch c {
	case CipherXChaCha20Poly1305:
		return true
	default:
		return false
	}
}

func (c Cipher) seal(key, nonce, plaintext, aad []byte) (ciphertext, tag []byte, err error) {
	switch c {
	case CipherXChaCha20Poly1305:
		return aead.Seal(key, nonce, plaintext, aad)
	default:
		return nil, nil, &FormatError{Field: "cipher id", Got: byte(c)}
	}
}

func (c Cipher) open(key, nonce, ciphertext, tag, aad []byte) ([]byte, error) {
	switch c {
	case CipherXChaCha20Poly1305:
		return aead.Open(key, nonce, ciphertext, tag, aad)
	default:
		return nil, &FormatError{Field: "cipher id", Got: byte(c)}
	}
}

// validateHeader checks the constant header fields in the order mandated by
// the format: magic, then version, then cipher id. It returns the cipher
// for the dispatch that follows.
func validateHeader(h header.Header) (Cipher, error) {
	if h.Magic != header.Magic {
		return 0, &FormatError{Field: "magic"}
	}
	if h.Version != Version {
		return 0, &FormatError{Field: "version", Got: h.Version}
	}
	c := Cipher(h.CipherID)
	if !c.supported() {
		return 0, &FormatError{Field: "cipher id", Got: h.CipherID}
	}
	return c, nil
}
