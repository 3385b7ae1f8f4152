package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/luaucx/luaucx-go"
)

// Output file extensions, matching the container format's conventions:
// encrypted containers and decrypted raw bytecode.
const (
	extEncrypted = ".luaucx"
	extDecrypted = ".luauc"
)

// processFiles runs fn once per input file. A failed file is logged and
// skipped so the rest of the batch still runs; the batch as a whole fails
// if any file did.
func processFiles(inputs []string, log *logrus.Logger, verb string, fn func(in string) (string, error)) error {
	if len(inputs) == 0 {
		return errors.New("no input files")
	}

	failed := 0
	for _, in := range inputs {
		out, err := fn(in)
		if err != nil {
			failed++
			log.WithError(err).WithField("file", in).Error("failed")
			continue
		}
		log.WithFields(logrus.Fields{"file": in, "output": out}).Info(verb)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(inputs))
	}
	return nil
}

// encryptOne loads bytecode for one input via load (a file read, or a
// compile step) and seals it into <out-dir>/<name>.luaucx.
func encryptOne(in string, load func(string) ([]byte, error), set settings, aad []byte) (string, error) {
	bytecode, err := load(in)
	if err != nil {
		return "", err
	}

	opts := []luaucx.EncodeOption{luaucx.WithAAD(aad)}
	if set.keyID != nil {
		opts = append(opts, luaucx.WithKeyID(*set.keyID))
	}

	out := outputPath(set.outDir, in, extEncrypted)
	err = writeOutputFile(out, func(f *os.File) error {
		_, err := luaucx.Encode(f, bytecode, set.key, opts...)
		return err
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// decryptOne opens one container and writes the recovered bytecode to
// <out-dir>/<name>.luauc. When a key id is configured it is enforced
// against the header.
func decryptOne(in string, set settings) (string, error) {
	container, err := os.ReadFile(in)
	if err != nil {
		return "", fmt.Errorf("read container: %w", err)
	}

	var opts []luaucx.DecodeOption
	if set.keyID != nil {
		opts = append(opts, luaucx.WithExpectedKeyID(*set.keyID))
	}

	out := outputPath(set.outDir, in, extDecrypted)
	err = writeOutputFile(out, func(f *os.File) error {
		_, err := luaucx.Decode(container, set.key, f, opts...)
		return err
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// inspectOne prints one container's header fields; no key is needed.
func inspectOne(in string, w io.Writer) error {
	container, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read container: %w", err)
	}

	info, err := luaucx.Inspect(container)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s: version=%d cipher=%s key_id=%d ct_len=%d ad_len=%d total=%d\n",
		in, info.Version, info.Cipher, info.KeyID, info.CiphertextLen, info.AADLen, info.TotalLen)
	return err
}

// writeOutputFile creates path, lets write fill it, and syncs it to disk.
// On failure the partial output is removed so a failed file never leaves a
// half-written container behind.
func writeOutputFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("sync output file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

// outputPath places the input's base name under dir with its extension
// swapped: dir + foo.luau -> dir/foo.luaucx.
func outputPath(dir, in, ext string) string {
	base := filepath.Base(in)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
}
