// Package config loads the YAML file that selects a solver's branching
// mode, timeout and conflict budget at the start of each subcommand, following
// the retrieval pack's own cobra + yaml.v3 config-loading idiom.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/halvorsen-dev/cdclsat/internal/sat"
)

// Config is the on-disk shape of a solver run's configuration.
type Config struct {
	Mode         string        `yaml:"mode"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxConflicts int64         `yaml:"max_conflicts"`
}

// rawConfig mirrors Config but with Timeout as a string, since yaml.v3 has
// no built-in notion of time.Duration.
type rawConfig struct {
	Mode         string `yaml:"mode"`
	Timeout      string `yaml:"timeout"`
	MaxConflicts int64  `yaml:"max_conflicts"`
}

// Default returns the default configuration: plain BCP-only solving, no
// timeout, and an unbounded conflict budget.
func Default() Config {
	return Config{Mode: "plain", MaxConflicts: -1}
}

// Load reads and validates the YAML config file at path. An empty path
// returns Default(), matching a CLI invocation with no --config flag.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %q: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("config: parsing %q: %w", path, err)
	}

	cfg := Config{Mode: raw.Mode, MaxConflicts: raw.MaxConflicts}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid timeout %q: %w", raw.Timeout, err)
		}
		cfg.Timeout = d
	}
	if cfg.Mode == "" {
		cfg.Mode = "plain"
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MaxConflicts < -1 {
		return fmt.Errorf("config: max_conflicts must be -1 (unbounded) or >= 0, got %d", c.MaxConflicts)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must be non-negative, got %s", c.Timeout)
	}
	if _, err := c.mode(); err != nil {
		return err
	}
	return nil
}

// mnemonics maps each recognized mode string to its sat.Mode bitmask.
// MOM and JW are mutually exclusive as branching seeds (see sat.Mode):
// when a mnemonic combines both, MOM wins at seed time, matching the
// original solver's initHeuristic, which is documented on sat.seedHeuristic.
var mnemonics = map[string]sat.Mode{
	"plain":        sat.ModePlain,
	"vsids":        sat.ModeVSIDS,
	"vsids+mom":    sat.ModeVSIDS | sat.ModeMOM,
	"vsids+jw":     sat.ModeVSIDS | sat.ModeJW,
	"vsids+mom+jw": sat.ModeVSIDS | sat.ModeMOM | sat.ModeJW,
}

func (c Config) mode() (sat.Mode, error) {
	return ModeFromMnemonic(c.Mode)
}

// ModeFromMnemonic maps one of the recognized mode strings ("plain",
// "vsids", "vsids+mom", "vsids+jw", "vsids+mom+jw") to a sat.Mode bitmask.
// It is exported so cmd/cdclsat can validate a --mode flag the same way
// Load validates the YAML field.
func ModeFromMnemonic(s string) (sat.Mode, error) {
	m, ok := mnemonics[s]
	if !ok {
		return 0, fmt.Errorf("config: unrecognized mode %q", s)
	}
	return m, nil
}

// Mode maps the configured mnemonic string to a sat.Mode bitmask. An
// unrecognized string, such as the empty Mode of a zero Config, maps to
// sat.ModePlain; Load and Default never return a Config with one.
func (c Config) Mode() sat.Mode {
	m, _ := c.mode()
	return m
}

// Options builds the sat.Options this configuration describes.
func (c Config) Options() sat.Options {
	return sat.Options{
		Mode:         c.Mode(),
		Timeout:      c.Timeout,
		MaxConflicts: c.MaxConflicts,
	}
}
