// Package header implements the fixed-layout header of the luaucx container
// format. The header carries the format magic, version, cipher id, key id,
// the declared lengths of the two variable-size sections, the nonce, and the
// authentication tag, in that order, with all multi-byte integers
// little-endian.
//
// Parsing is strictly bounds-checked: every read verifies the remaining
// buffer length first and reports a TruncatedError instead of reading past
// the end. The declared lengths are returned as stored; validating them
// against the rest of the input is the caller's job, since their values are
// attacker-controlled.
package header

import (
	"encoding/binary"
	"fmt"
)

const (
	// MagicLen is the length of the format magic.
	MagicLen = 8
	// NonceSize is the XChaCha20-Poly1305 nonce length carried in the header.
	NonceSize = 24
	// TagSize is the Poly1305 authentication tag length carried in the header.
	TagSize = 16

	// Len is the fixed header length: magic, version, cipher id, key id,
	// ad length, ct length, nonce, tag.
	Len = MagicLen + 1 + 1 + 2 + 4 + 4 + NonceSize + TagSize
)

// Magic identifies a luaucx container.
var Magic = [MagicLen]byte{'L', 'U', 'A', 'U', 'B', 'Y', 'T', 'X'}

// Header holds the fixed fields of a container. The two variable-size
// sections (ciphertext, then associated data) follow the header on the wire
// and are not part of this struct.
type Header struct {
	Magic    [MagicLen]byte
	Version  byte
	CipherID byte
	KeyID    uint16
	ADLen    uint32
	CTLen    uint32
	Nonce    [NonceSize]byte
	Tag      [TagSize]byte
}

// TruncatedError reports a read that would run past the end of the input.
type TruncatedError struct {
	Field string // field being read when the input ran out
	Need  int    // bytes the field requires
	Have  int    // bytes that were actually available
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated input: %s needs %d bytes, %d available", e.Field, e.Need, e.Have)
}

// AppendTo appends the serialized header to dst and returns the extended
// slice. The output is always exactly Len bytes longer than dst.
func (h *Header) AppendTo(dst []byte) []byte {
	dst = append(dst, h.Magic[:]...)
	dst = append(dst, h.Version, h.CipherID)
	dst = binary.LittleEndian.AppendUint16(dst, h.KeyID)
	dst = binary.LittleEndian.AppendUint32(dst, h.ADLen)
	dst = binary.LittleEndian.AppendUint32(dst, h.CTLen)
	dst = append(dst, h.Nonce[:]...)
	dst = append(dst, h.Tag[:]...)
	return dst
}

// Parse reads the fixed header fields from the front of buf. Every field
// read is bounds-checked and a short buffer yields a *TruncatedError naming
// the field that ran out. Field values are returned exactly as stored;
// Parse does not judge whether the magic, version or lengths are acceptable.
func Parse(buf []byte) (Header, error) {
	var h Header
	r := reader{buf: buf}

	magic, err := r.bytes("magic", MagicLen)
	if err != nil {
		return Header{}, err
	}
	copy(h.Magic[:], magic)

	if h.Version, err = r.u8("version"); err != nil {
		return Header{}, err
	}
	if h.CipherID, err = r.u8("cipher id"); err != nil {
		return Header{}, err
	}
	if h.KeyID, err = r.u16("key id"); err != nil {
		return Header{}, err
	}
	if h.ADLen, err = r.u32("ad length"); err != nil {
		return Header{}, err
	}
	if h.CTLen, err = r.u32("ct length"); err != nil {
		return Header{}, err
	}

	nonce, err := r.bytes("nonce", NonceSize)
	if err != nil {
		return Header{}, err
	}
	copy(h.Nonce[:], nonce)

	tag, err := r.bytes("tag", TagSize)
	if err != nil {
		return Header{}, err
	}
	copy(h.Tag[:], tag)

	return h, nil
}
