package header

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func sampleHeader() Header {
	h := Header{
		Magic:    Magic,
		Version:  1,
		CipherID: 1,
		KeyID:    0x1234,
		ADLen:    7,
		CTLen:    0xDEADBEEF,
	}
	for i := range h.Nonce {
		h.Nonce[i] = byte(i + 1)
	}
	for i := range h.Tag {
		h.Tag[i] = byte(0xA0 + i)
	}
	return h
}

func TestAppendToParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Header)
	}{
		{"sample", func(*Header) {}},
		{"zero lengths", func(h *Header) { h.ADLen, h.CTLen = 0, 0 }},
		{"max lengths", func(h *Header) { h.ADLen, h.CTLen = 0xFFFFFFFF, 0xFFFFFFFF }},
		{"key id zero", func(h *Header) { h.KeyID = 0 }},
		{"key id max", func(h *Header) { h.KeyID = 0xFFFF }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := sampleHeader()
			tt.mutate(&h)

			buf := h.AppendTo(nil)
			if len(buf) != Len {
				t.Fatalf("serialized length = %d, want %d", len(buf), Len)
			}

			got, err := Parse(buf)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != h {
				t.Errorf("Parse() = %+v, want %+v", got, h)
			}
		})
	}
}

func TestAppendTo_Layout(t *testing.T) {
	h := sampleHeader()
	buf := h.AppendTo(nil)

	if !bytes.Equal(buf[0:8], []byte("LUAUBYTX")) {
		t.Errorf("magic = %q", buf[0:8])
	}
	if buf[8] != h.Version {
		t.Errorf("version byte = %#x", buf[8])
	}
	if buf[9] != h.CipherID {
		t.Errorf("cipher id byte = %#x", buf[9])
	}
	if got := binary.LittleEndian.Uint16(buf[10:12]); got != h.KeyID {
		t.Errorf("key id = %#x, want %#x", got, h.KeyID)
	}
	if got := binary.LittleEndian.Uint32(buf[12:16]); got != h.ADLen {
		t.Errorf("ad length = %d, want %d", got, h.ADLen)
	}
	if got := binary.LittleEndian.Uint32(buf[16:20]); got != h.CTLen {
		t.Errorf("ct length = %d, want %d", got, h.CTLen)
	}
	if !bytes.Equal(buf[20:44], h.Nonce[:]) {
		t.Error("nonce bytes misplaced")
	}
	if !bytes.Equal(buf[44:60], h.Tag[:]) {
		t.Error("tag bytes misplaced")
	}
}

func TestAppendTo_ExtendsDst(t *testing.T) {
	h := sampleHeader()
	prefix := []byte("prefix")
	buf := h.AppendTo(append([]byte(nil), prefix...))
	if !bytes.HasPrefix(buf, prefix) {
		t.Fatal("AppendTo clobbered dst prefix")
	}
	if len(buf) != len(prefix)+Len {
		t.Fatalf("length = %d, want %d", len(buf), len(prefix)+Len)
	}
}

func TestParse_Truncated(t *testing.T) {
	h := sampleHeader()
	full := h.AppendTo(nil)

	for n := 0; n < Len; n++ {
		_, err := Parse(full[:n])
		var trunc *TruncatedError
		if !errors.As(err, &trunc) {
			t.Fatalf("Parse(%d bytes) error = %v, want *TruncatedError", n, err)
		}
		if trunc.Have > n {
			t.Errorf("Parse(%d bytes): reported %d available", n, trunc.Have)
		}
	}
}

func TestParse_TruncatedFieldNames(t *testing.T) {
	h := sampleHeader()
	full := h.AppendTo(nil)

	tests := []struct {
		cut   int
		field string
	}{
		{0, "magic"},
		{7, "magic"},
		{8, "version"},
		{9, "cipher id"},
		{10, "key id"},
		{11, "key id"},
		{12, "ad length"},
		{15, "ad length"},
		{16, "ct length"},
		{19, "ct length"},
		{20, "nonce"},
		{43, "nonce"},
		{44, "tag"},
		{59, "tag"},
	}

	for _, tt := range tests {
		_, err := Parse(full[:tt.cut])
		var trunc *TruncatedError
		if !errors.As(err, &trunc) {
			t.Fatalf("Parse(%d bytes) error = %v, want *TruncatedError", tt.cut, err)
		}
		if trunc.Field != tt.field {
			t.Errorf("Parse(%d bytes) failed on %q, want %q", tt.cut, trunc.Field, tt.field)
		}
	}
}

func TestParse_IgnoresTrailingBytes(t *testing.T) {
	h := sampleHeader()
	buf := h.AppendTo(nil)
	buf = append(buf, 0xFF, 0xFE, 0xFD)

	got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != h {
		t.Errorf("Parse() = %+v, want %+v", got, h)
	}
}
