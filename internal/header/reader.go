package header

import "encoding/binary"

// reader is a forward-only cursor over a borrowed buffer. Reads never pass
// len(buf): each one checks the remaining length and fails with a
// *TruncatedError instead of indexing out of range.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) bytes(field string, n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, &TruncatedError{Field: field, Need: n, Have: r.remaining()}
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8(field string) (byte, error) {
	b, err := r.bytes(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16(field string) (uint16, error) {
	b, err := r.bytes(field, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *reader) u32(field string) (uint32, error) {
	b, err := r.bytes(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
