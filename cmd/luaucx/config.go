package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables honored by the tool; a ./.env file is loaded into
// the environment at startup.
const (
	envKeyFile  = "LUAUCX_KEY_FILE"
	envKey      = "LUAUCX_KEY"
	envKeyID    = "LUAUCX_KEY_ID"
	envOutDir   = "LUAUCX_OUT_DIR"
	envCompiler = "LUAUCX_COMPILER"
)

// defaultConfigFile is picked up from the working directory when no -config
// flag is given.
const defaultConfigFile = "luaucx.yaml"

// commonFlags holds the flag values shared by all subcommands.
type commonFlags struct {
	keyFile    string
	keyID      string
	outDir     string
	configPath string
	verbose    bool
}

// fileConfig is the YAML config file schema.
type fileConfig struct {
	KeyFile  string  `yaml:"key_file"`
	KeyID    *uint16 `yaml:"key_id"`
	OutDir   string  `yaml:"out_dir"`
	Compiler string  `yaml:"compiler"`
}

// settings is the fully resolved tool configuration.
type settings struct {
	key      []byte
	keyID    *uint16
	outDir   string
	compiler string
}

// resolveSettings merges flags, environment, and the config file, in that
// precedence order, and loads the key when the command needs one.
func resolveSettings(cf commonFlags, needKey bool, log *logrus.Logger) (settings, error) {
	if cf.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	fileCfg, err := loadConfigFile(cf.configPath)
	if err != nil {
		return settings{}, err
	}

	var set settings

	switch {
	case cf.keyID != "":
		id, err := parseKeyID(cf.keyID)
		if err != nil {
			return settings{}, err
		}
		set.keyID = &id
	case os.Getenv(envKeyID) != "":
		id, err := parseKeyID(os.Getenv(envKeyID))
		if err != nil {
			return settings{}, err
		}
		set.keyID = &id
	case fileCfg.KeyID != nil:
		set.keyID = fileCfg.KeyID
	}

	set.outDir = firstNonEmpty(cf.outDir, os.Getenv(envOutDir), fileCfg.OutDir)
	if set.outDir == "" {
		set.outDir, err = os.Getwd()
		if err != nil {
			return settings{}, err
		}
	}
	if err := os.MkdirAll(set.outDir, 0o755); err != nil {
		return settings{}, fmt.Errorf("create output directory: %w", err)
	}

	set.compiler = firstNonEmpty(os.Getenv(envCompiler), fileCfg.Compiler)

	if needKey {
		keyFile := firstNonEmpty(cf.keyFile, os.Getenv(envKeyFile), fileCfg.KeyFile)
		set.key, err = resolveKey(keyFile)
		if err != nil {
			return settings{}, err
		}
	}

	log.WithFields(logrus.Fields{
		"out_dir": set.outDir,
		"key_id":  keyIDString(set.keyID),
	}).Debug("settings resolved")

	return set, nil
}

// loadConfigFile reads a YAML config. With an empty path it falls back to
// ./luaucx.yaml, whose absence is fine; an explicitly named file must exist.
func loadConfigFile(path string) (fileConfig, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func parseKeyID(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid key id %q: must be an integer between 0 and 65535", s)
	}
	return uint16(v), nil
}

func keyIDString(id *uint16) string {
	if id == nil {
		return "unset"
	}
	return strconv.FormatUint(uint64(*id), 10)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
