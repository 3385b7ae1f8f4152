package luaucx

import "github.com/luaucx/luaucx-go/internal/header"

// Info describes a container's header fields.
//
// Inspect performs no cryptography, so everything here is an unauthenticated
// claim made by whoever produced the bytes; treat it as operational metadata,
// not proof.
type Info struct {
	// Version is the container format revision.
	Version byte
	// Cipher is the AEAD suite recorded in the header.
	Cipher Cipher
	// KeyID is the operator-assigned key identifier.
	KeyID uint16
	// CiphertextLen is the declared ciphertext length in bytes.
	CiphertextLen int
	// AADLen is the declared associated data length in bytes.
	AADLen int
	// TotalLen is the full container length implied by the header.
	TotalLen int
}

// Inspect parses and validates container's header without needing a key.
// It applies the same format and length checks as Decode, so a container
// that fails Inspect would fail Decode for the same reason.
func Inspect(container []byte) (*Info, error) {
	h, err := header.Parse(container)
	if err != nil {
		return nil, wrapError(err)
	}
	cipher, err := validateHeader(h)
	if err != nil {
		return nil, err
	}

	body := container[header.Len:]
	need := uint64(h.CTLen) + uint64(h.ADLen)
	if need > uint64(len(body)) {
		return nil, &TruncatedError{Field: "body", Need: int(need), Have: len(body)}
	}

	return &Info{
		Version:       h.Version,
		Cipher:        cipher,
		KeyID:         h.KeyID,
		CiphertextLen: int(h.CTLen),
		AADLen:        int(h.ADLen),
		TotalLen:      header.Len + int(h.CTLen) + int(h.ADLen),
	}, nil
}
