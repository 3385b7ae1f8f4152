package luaucx

import (
	"fmt"
	"io"

	"github.com/luaucx/luaucx-go/internal/header"
)

// DecodeResult reports what Decode recovered from a container.
type DecodeResult struct {
	// PlaintextLen is the number of plaintext bytes written to the sink.
	PlaintextLen int

	// AADLen is the length of the container's associated data. The data
	// itself is only written out when an AAD sink was provided.
	AADLen int

	// KeyID is the operator-assigned key identifier from the header. It is
	// not covered by the authentication tag; see WithKeyID.
	KeyID uint16
}

// Decode validates container, verifies it under key, and writes the
// recovered plaintext to the plaintext sink. The associated data, if any,
// is written to the sink given via WithAADSink.
//
// Checks run cheapest-first: fixed header length, magic, version, cipher
// id, expected key id (when enforced), declared lengths against the real
// input size, and only then tag verification. The cipher is never invoked
// with an unvalidated length, and not a single plaintext byte is emitted
// unless the whole container authenticates.
func Decode(container, key []byte, plaintext io.Writer, opts ...DecodeOption) (DecodeResult, error) {
	if len(key) != KeySize {
		return DecodeResult{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, len(key), KeySize)
	}

	var cfg decodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	h, err := header.Parse(container)
	if err != nil {
		return DecodeResult{}, wrapError(err)
	}
	cipher, err := validateHeader(h)
	if err != nil {
		return DecodeResult{}, err
	}
	if cfg.expectedKeyID != nil && *cfg.expectedKeyID != h.KeyID {
		return DecodeResult{}, &KeyIDMismatchError{Expected: *cfg.expectedKeyID, Got: h.KeyID}
	}

	// ad_len and ct_len come off the wire. Check them against the real
	// input size before slicing anything; the sum is computed in 64 bits so
	// a crafted pair cannot wrap.
	body := container[header.Len:]
	need := uint64(h.CTLen) + uint64(h.ADLen)
	if need > uint64(len(body)) {
		return DecodeResult{}, &TruncatedError{Field: "body", Need: int(need), Have: len(body)}
	}
	ciphertext := body[:h.CTLen]
	aad := body[h.CTLen:need]

	recovered, err := cipher.open(key, h.Nonce[:], ciphertext, h.Tag[:], aad)
	if err != nil {
		return DecodeResult{}, wrapError(err)
	}

	if cfg.aadSink != nil {
		if _, err := cfg.aadSink.Write(aad); err != nil {
			return DecodeResult{}, &SinkError{Op: "associated data", Err: err}
		}
	}
	if _, err := plaintext.Write(recovered); err != nil {
		return DecodeResult{}, &SinkError{Op: "plaintext", Err: err}
	}

	return DecodeResult{
		PlaintextLen: len(recovered),
		AADLen:       int(h.ADLen),
		KeyID:        h.KeyID,
	}, nil
}
