package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"

	"github.com/luaucx/luaucx-go"
)

// resolveKey obtains the 32-byte key: from the key file when one is
// configured, else from the LUAUCX_KEY hex variable, else by prompting on
// an interactive terminal.
func resolveKey(keyFile string) ([]byte, error) {
	if keyFile != "" {
		return loadKeyFile(keyFile)
	}
	if hexKey := os.Getenv(envKey); hexKey != "" {
		return parseHexKey(hexKey)
	}
	return promptHexKey()
}

// loadKeyFile reads a raw key file, which must hold exactly 32 bytes.
func loadKeyFile(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	if len(key) != luaucx.KeySize {
		return nil, fmt.Errorf("key file %s must be exactly %d bytes, got %d", path, luaucx.KeySize, len(key))
	}
	return key, nil
}

// parseHexKey decodes a key given as 64 hex digits.
func parseHexKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("key is not valid hex: %w", err)
	}
	if len(key) != luaucx.KeySize {
		return nil, fmt.Errorf("key must be %d bytes (%d hex digits), got %d bytes",
			luaucx.KeySize, 2*luaucx.KeySize, len(key))
	}
	return key, nil
}

// promptHexKey reads a hex key without echo when running interactively.
func promptHexKey() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("no key configured: pass -key, or set LUAUCX_KEY_FILE or LUAUCX_KEY")
	}

	fmt.Fprint(os.Stderr, "Enter key (hex): ")
	line, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read key: %w", err)
	}
	defer zeroBytes(line)

	return parseHexKey(string(line))
}

// zeroBytes overwrites a byte slice with zeros.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
