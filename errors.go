package luaucx

import (
	"errors"
	"fmt"

	"github.com/luaucx/luaucx-go/internal/aead"
	"github.com/luaucx/luaucx-go/internal/header"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrInvalidKeySize is returned when the supplied key is not 32 bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidFormat is returned when the magic, version, or cipher id is
	// not one this package supports.
	ErrInvalidFormat = errors.New("invalid container format")

	// ErrTruncated is returned when fixed or declared field lengths exceed
	// the available input.
	ErrTruncated = errors.New("truncated container")

	// ErrKeyIDMismatch is returned when the caller's expected key id does
	// not match the container header.
	ErrKeyIDMismatch = errors.New("key id mismatch")

	// ErrAuthentication is returned when tag verification fails: the
	// container was tampered with, or the key, nonce, or associated data
	// is wrong.
	ErrAuthentication = errors.New("authentication failed")

	// ErrPayloadTooLarge is returned when the plaintext or associated data
	// does not fit the container's 32-bit length fields.
	ErrPayloadTooLarge = errors.New("payload too large for container length fields")
)

// FormatError reports a header field carrying a value this package does not
// support. It matches ErrInvalidFormat under errors.Is.
type FormatError struct {
	Field string // "magic", "version", or "cipher id"
	Got   byte   // offending value; zero for magic, which has no single byte
}

func (e *FormatError) Error() string {
	if e.Field == "magic" {
		return "invalid container format: bad magic"
	}
	return fmt.Sprintf("invalid container format: unsupported %s %d", e.Field, e.Got)
}

// Is implements errors.Is for sentinel error matching.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// TruncatedError reports a fixed field or a declared length running past
// the end of the input. It matches ErrTruncated under errors.Is.
type TruncatedError struct {
	Field string // field or section that ran out of bytes
	Need  int    // bytes required
	Have  int    // bytes available
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated container: %s needs %d bytes, %d available", e.Field, e.Need, e.Have)
}

// Is implements errors.Is for sentinel error matching.
func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

// KeyIDMismatchError reports a header key id that differs from the one the
// caller opted to enforce. It matches ErrKeyIDMismatch under errors.Is.
type KeyIDMismatchError struct {
	Expected uint16
	Got      uint16
}

func (e *KeyIDMismatchError) Error() string {
	return fmt.Sprintf("key id mismatch: expected %d, got %d", e.Expected, e.Got)
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyIDMismatchError) Is(target error) bool {
	return target == ErrKeyIDMismatch
}

// SinkError reports a failure of a caller-supplied writer. The writer's own
// error is preserved and reachable through errors.Is/errors.As.
type SinkError struct {
	Op  string // section being written: "header", "ciphertext", ...
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying writer error.
func (e *SinkError) Unwrap() error {
	return e.Err
}

// wrapError converts internal-package errors to public ones so that
// errors.Is() checks work with the sentinels above.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var trunc *header.TruncatedError
	if errors.As(err, &trunc) {
		return &TruncatedError{Field: trunc.Field, Need: trunc.Need, Have: trunc.Have}
	}

	if errors.Is(err, aead.ErrAuthentication) {
		return ErrAuthentication
	}
	if errors.Is(err, aead.ErrInvalidKeySize) {
		return fmt.Errorf("%w: %v", ErrInvalidKeySize, err)
	}

	return err
}
