// Command luaucx compiles and encrypts Luau bytecode into luaucx containers,
// and decrypts or inspects existing containers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/luaucx/luaucx-go/compiler"
)

const usageText = `luaucx - encrypted Luau bytecode containers

USAGE:
    luaucx <command> [options] <file...>

COMMANDS:
    compile    compile Luau source files, then encrypt the bytecode (.luaucx)
    encrypt    encrypt precompiled Luau bytecode files (.luaucx)
    decrypt    decrypt container files back to bytecode (.luauc)
    inspect    print container header fields; needs no key
    help       show this help

COMMON OPTIONS:
    -key PATH       path to the 32-byte encryption key file
    -key-id N       key id stored in the header; enforced when decrypting
    -out-dir DIR    directory for output files (default: working directory)
    -config PATH    YAML config file (default: ./luaucx.yaml when present)
    -verbose        enable debug logging

COMPILE OPTIONS:
    -O N            optimization level 0..2 (default 1)
    -g N            debug level 0..2 (default 1)
    -compiler PATH  luau-compile executable (default: from $PATH)
    -aad S          associated data, stored cleartext but authenticated

ENCRYPT OPTIONS:
    -aad S          associated data, stored cleartext but authenticated

ENVIRONMENT (also read from ./.env):
    LUAUCX_KEY_FILE   key file path
    LUAUCX_KEY        key as 64 hex digits, used when no key file is set
    LUAUCX_KEY_ID     key id
    LUAUCX_OUT_DIR    output directory
    LUAUCX_COMPILER   luau-compile executable

One output file is produced per input file. A file that fails is reported
and skipped; the rest of the batch still runs.
`

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if err := run(os.Args[1:], log); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, log *logrus.Logger) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usageText)
		return errors.New("no command specified")
	}

	// A .env file is optional; its absence is not an error.
	_ = godotenv.Load()

	switch args[0] {
	case "compile":
		return runCompile(args[1:], log)
	case "encrypt":
		return runEncrypt(args[1:], log)
	case "decrypt":
		return runDecrypt(args[1:], log)
	case "inspect":
		return runInspect(args[1:], log)
	case "help", "-h", "--help":
		fmt.Fprint(os.Stderr, usageText)
		return nil
	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newFlagSet(name string, cf *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cf.keyFile, "key", "", "path to the 32-byte encryption key file")
	fs.StringVar(&cf.keyID, "key-id", "", "key id stored in the header; enforced when decrypting")
	fs.StringVar(&cf.outDir, "out-dir", "", "directory for output files")
	fs.StringVar(&cf.configPath, "config", "", "path to a YAML config file")
	fs.BoolVar(&cf.verbose, "verbose", false, "enable debug logging")
	return fs
}

func runCompile(args []string, log *logrus.Logger) error {
	var cf commonFlags
	fs := newFlagSet("compile", &cf)
	optLevel := fs.Int("O", 1, "optimization level 0..2")
	debugLevel := fs.Int("g", 1, "debug level 0..2")
	compilerPath := fs.String("compiler", "", "luau-compile executable")
	aad := fs.String("aad", "", "associated data, stored cleartext but authenticated")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set, err := resolveSettings(cf, true, log)
	if err != nil {
		return err
	}

	path := *compilerPath
	if path == "" {
		path = set.compiler
	}
	comp := &compiler.ExecCompiler{Path: path}
	opts := compiler.Options{OptimizationLevel: *optLevel, DebugLevel: *debugLevel}

	load := func(in string) ([]byte, error) {
		source, err := os.ReadFile(in)
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		return comp.Compile(context.Background(), source, opts)
	}

	return processFiles(fs.Args(), log, "encrypted", func(in string) (string, error) {
		return encryptOne(in, load, set, []byte(*aad))
	})
}

func runEncrypt(args []string, log *logrus.Logger) error {
	var cf commonFlags
	fs := newFlagSet("encrypt", &cf)
	aad := fs.String("aad", "", "associated data, stored cleartext but authenticated")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set, err := resolveSettings(cf, true, log)
	if err != nil {
		return err
	}

	load := func(in string) ([]byte, error) {
		return os.ReadFile(in)
	}

	return processFiles(fs.Args(), log, "encrypted", func(in string) (string, error) {
		return encryptOne(in, load, set, []byte(*aad))
	})
}

func runDecrypt(args []string, log *logrus.Logger) error {
	var cf commonFlags
	fs := newFlagSet("decrypt", &cf)
	if err := fs.Parse(args); err != nil {
		return err
	}

	set, err := resolveSettings(cf, true, log)
	if err != nil {
		return err
	}

	return processFiles(fs.Args(), log, "decrypted", func(in string) (string, error) {
		return decryptOne(in, set)
	})
}

func runInspect(args []string, log *logrus.Logger) error {
	var cf commonFlags
	fs := newFlagSet("inspect", &cf)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cf.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return processFiles(fs.Args(), log, "inspected", func(in string) (string, error) {
		return in, inspectOne(in, os.Stdout)
	})
}
