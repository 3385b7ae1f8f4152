package luaucx

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"

	"github.com/luaucx/luaucx-go/internal/header"
)

// Encode seals plaintext into a luaucx container and writes it to w. The
// key must be exactly 32 bytes. Unless WithNonce is given, a fresh nonce is
// drawn from the configured random source (crypto/rand by default).
//
// It returns the total number of bytes written: HeaderLen plus the lengths
// of the plaintext and the associated data. Writer failures are reported as
// *SinkError with the writer's error preserved.
func Encode(w io.Writer, plaintext, key []byte, opts ...EncodeOption) (int, error) {
	if len(key) != KeySize {
		return 0, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), KeySize)
	}

	cfg := encodeConfig{rand: rand.Reader}
	for _, opt := range opts {
		opt(&cfg)
	}

	// The wire format stores both lengths as u32; a Go slice can be longer.
	if uint64(len(plaintext)) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: plaintext is %d bytes", ErrPayloadTooLarge, len(plaintext))
	}
	if uint64(len(cfg.aad)) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: associated data is %d bytes", ErrPayloadTooLarge, len(cfg.aad))
	}

	var nonce [NonceSize]byte
	if cfg.nonce != nil {
		nonce = *cfg.nonce
	} else if _, err := io.ReadFull(cfg.rand, nonce[:]); err != nil {
		return 0, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext, tag, err := CipherXChaCha20Poly1305.seal(key, nonce[:], plaintext, cfg.aad)
	if err != nil {
		return 0, wrapError(err)
	}

	h := header.Header{
		Magic:    header.Magic,
		Version:  Version,
		CipherID: byte(CipherXChaCha20Poly1305),
		KeyID:    cfg.keyID,
		ADLen:    uint32(len(cfg.aad)),
		CTLen:    uint32(len(ciphertext)),
		Nonce:    nonce,
	}
	copy(h.Tag[:], tag)

	sections := []struct {
		op  string
		buf []byte
	}{
		{"header", h.AppendTo(make([]byte, 0, header.Len))},
		{"ciphertext", ciphertext},
		{"associated data", cfg.aad},
	}

	total := 0
	for _, s := range sections {
		n, err := w.Write(s.buf)
		total += n
		if err != nil {
			return total, &SinkError{Op: s.op, Err: err}
		}
	}
	return total, nil
}
