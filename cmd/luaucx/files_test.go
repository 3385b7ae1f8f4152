package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luaucx/luaucx-go"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testSettings(t *testing.T) settings {
	t.Helper()
	key := bytes.Repeat([]byte{0x24}, luaucx.KeySize)
	id := uint16(7)
	return settings{key: key, keyID: &id, outDir: t.TempDir()}
}

func writeTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "chunk.luaucx"), outputPath("out", "src/chunk.luau", extEncrypted))
	assert.Equal(t, filepath.Join("out", "chunk.luauc"), outputPath("out", "build/chunk.luaucx", extDecrypted))
	assert.Equal(t, filepath.Join("out", "noext.luaucx"), outputPath("out", "noext", extEncrypted))
}

func TestEncryptDecryptOne_RoundTrip(t *testing.T) {
	set := testSettings(t)
	bytecode := []byte{0x04, 0x00, 0x01, 0xFF, 0x7F}
	in := writeTempFile(t, t.TempDir(), "chunk.luauc", bytecode)

	out, err := encryptOne(in, os.ReadFile, set, []byte("build-1"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(set.outDir, "chunk.luaucx"), out)

	container, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, container, luaucx.HeaderLen+len(bytecode)+len("build-1"))

	decrypted, err := decryptOne(out, set)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(set.outDir, "chunk.luauc"), decrypted)

	got, err := os.ReadFile(decrypted)
	require.NoError(t, err)
	assert.Equal(t, bytecode, got)
}

func TestDecryptOne_KeyIDEnforced(t *testing.T) {
	set := testSettings(t)
	in := writeTempFile(t, t.TempDir(), "chunk.luauc", []byte("bytecode"))

	out, err := encryptOne(in, os.ReadFile, set, nil)
	require.NoError(t, err)

	wrong := uint16(9)
	set.keyID = &wrong
	_, err = decryptOne(out, set)
	require.ErrorIs(t, err, luaucx.ErrKeyIDMismatch)

	// The failed decrypt must not leave a partial output file behind.
	_, statErr := os.Stat(filepath.Join(set.outDir, "chunk.luauc"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDecryptOne_WrongKey(t *testing.T) {
	set := testSettings(t)
	in := writeTempFile(t, t.TempDir(), "chunk.luauc", []byte("bytecode"))

	out, err := encryptOne(in, os.ReadFile, set, nil)
	require.NoError(t, err)

	set.key = bytes.Repeat([]byte{0x99}, luaucx.KeySize)
	_, err = decryptOne(out, set)
	require.ErrorIs(t, err, luaucx.ErrAuthentication)
}

func TestProcessFiles_BatchIsolation(t *testing.T) {
	set := testSettings(t)
	dir := t.TempDir()
	good := writeTempFile(t, dir, "good.luauc", []byte("bytecode"))
	missing := filepath.Join(dir, "missing.luauc")

	err := processFiles([]string{missing, good}, quietLogger(), "encrypted", func(in string) (string, error) {
		return encryptOne(in, os.ReadFile, set, nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")

	// The good file must still have been produced.
	_, statErr := os.Stat(filepath.Join(set.outDir, "good.luaucx"))
	assert.NoError(t, statErr)
}

func TestProcessFiles_NoInputs(t *testing.T) {
	err := processFiles(nil, quietLogger(), "encrypted", func(string) (string, error) {
		t.Fatal("fn must not be called")
		return "", nil
	})
	require.Error(t, err)
}

func TestInspectOne(t *testing.T) {
	set := testSettings(t)
	in := writeTempFile(t, t.TempDir(), "chunk.luauc", []byte("bytecode"))

	out, err := encryptOne(in, os.ReadFile, set, []byte("v1"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, inspectOne(out, &buf))
	assert.Contains(t, buf.String(), "key_id=7")
	assert.Contains(t, buf.String(), "cipher=xchacha20-poly1305")
	assert.Contains(t, buf.String(), "ct_len=8")
	assert.Contains(t, buf.String(), "ad_len=2")
}

func TestInspectOne_RejectsGarbage(t *testing.T) {
	in := writeTempFile(t, t.TempDir(), "garbage.luaucx", []byte("not a container"))
	err := inspectOne(in, io.Discard)
	require.Error(t, err)
}
