package luaucx

import "io"

// encodeConfig holds configuration for Encode.
type encodeConfig struct {
	keyID uint16
	aad   []byte
	nonce *[NonceSize]byte
	rand  io.Reader
}

// decodeConfig holds configuration for Decode.
type decodeConfig struct {
	expectedKeyID *uint16
	aadSink       io.Writer
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeConfig)

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

// WithKeyID sets the operator-assigned key identifier stored in the header.
// Defaults to 0.
//
// The key id is cleartext rotation bookkeeping and is not bound to the
// authentication tag; include it in the associated data if it must be
// tamper-proof.
func WithKeyID(id uint16) EncodeOption {
	return func(c *encodeConfig) {
		c.keyID = id
	}
}

// WithAAD sets the associated data: bytes stored in cleartext after the
// ciphertext and bound to the authentication tag.
func WithAAD(aad []byte) EncodeOption {
	return func(c *encodeConfig) {
		c.aad = aad
	}
}

// WithNonce fixes the nonce instead of drawing one from the random source.
// The nonce must never repeat for the same key. Intended for deterministic
// tests and for callers that manage nonce uniqueness themselves.
func WithNonce(nonce [NonceSize]byte) EncodeOption {
	return func(c *encodeConfig) {
		n := nonce
		c.nonce = &n
	}
}

// WithRand sets the source nonces are generated from. Defaults to
// crypto/rand.Reader; anything weaker undermines nonce uniqueness.
func WithRand(r io.Reader) EncodeOption {
	return func(c *encodeConfig) {
		c.rand = r
	}
}

// WithExpectedKeyID makes Decode fail with a KeyIDMismatchError unless the
// header's key id equals id. The check runs before any cryptography.
func WithExpectedKeyID(id uint16) DecodeOption {
	return func(c *decodeConfig) {
		v := id
		c.expectedKeyID = &v
	}
}

// WithAADSink sets the writer that receives the container's associated data
// on successful decode. Without it the associated data is still
// authenticated, just not emitted.
func WithAADSink(w io.Writer) DecodeOption {
	return func(c *decodeConfig) {
		c.aadSink = w
	}
}
