// Package config loads the settings of the lox command from a YAML
// file. Every key is optional; missing keys keep their defaults.
//
//	prompt: "> "
//	history_file: ~/.lox_history
//	trace_level: error   # error, info or debug
//	closures: shared     # shared or snapshot
//	banner: true
package config

import (
	"errors"
	"fmt"
	"io"
	"lox/eval"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no file is
// given on the command line.
const EnvVar = "LOX_CONFIG"

type Config struct {
	Path        string `yaml:"-"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	TraceLevel  string `yaml:"trace_level"`
	Closures    string `yaml:"closures"`
	Banner      bool   `yaml:"banner"`
}

func Default() *Config {
	return &Config{
		Prompt:     "> ",
		TraceLevel: "error",
		Closures:   eval.Shared.String(),
		Banner:     true,
	}
}

// Load reads the configuration at path on top of the defaults. An
// empty path yields the defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(conf); err != nil {
		// an empty file is fine.
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse %s: %w", abs, err)
		}
	}
	conf.Path = abs
	conf.HistoryFile = expandHome(conf.HistoryFile)
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return conf, nil
}

// LoadDefault loads from path, or from $LOX_CONFIG when path is empty.
func LoadDefault(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	return Load(path)
}

// Validate rejects values the interpreter does not understand.
func (c *Config) Validate() error {
	switch strings.ToLower(c.TraceLevel) {
	case "error", "info", "debug":
	default:
		return fmt.Errorf("unknown trace_level %q", c.TraceLevel)
	}
	if _, err := eval.ParseClosurePolicy(c.Closures); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() tracing.TraceLevel {
	return tracing.TraceLevelFromString(c.TraceLevel)
}

func (c *Config) ClosurePolicy() (eval.ClosurePolicy, error) {
	p, err := eval.ParseClosurePolicy(c.Closures)
	if err != nil {
		return p, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
