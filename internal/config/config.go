// Package config handles demo configuration loading from TOML files
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/xonecas/lined/internal/textseg"
)

// Config is the root configuration structure for the demo REPL.
type Config struct {
	// Prompt is written before the editable region.
	Prompt string `toml:"prompt"`
	// HistoryFile is the NUL-separated history file path.
	HistoryFile string `toml:"history_file"`
	// NotesDB is the SQLite notes database path.
	NotesDB string `toml:"notes_db"`
	// LogFile receives structured logs; stderr belongs to the editor
	// while a prompt is live.
	LogFile string `toml:"log_file"`
	// Mask is the password mask grapheme. Empty means "*".
	Mask string `toml:"mask"`
}

// MaskOrDefault returns the configured mask or "*" if unset.
func (c Config) MaskOrDefault() string {
	if c.Mask == "" {
		return "*"
	}
	return c.Mask
}

// Load reads configuration from a TOML file and applies environment
// variable overrides. An empty path yields the defaults, so the demo
// runs unconfigured; a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Prompt:      "> ",
		HistoryFile: filepath.Join(dir, "history"),
		NotesDB:     filepath.Join(dir, "notes.db"),
		LogFile:     filepath.Join(dir, "demo.log"),
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Prompt == "" {
		errs = append(errs, errors.New("prompt must not be empty"))
	}
	if c.Mask != "" && textseg.Count(c.Mask) != 1 {
		errs = append(errs, fmt.Errorf("mask=%q must be a single character", c.Mask))
	}
	for _, p := range []struct {
		name, value string
	}{
		{"history_file", c.HistoryFile},
		{"notes_db", c.NotesDB},
		{"log_file", c.LogFile},
	} {
		if p.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", p.name))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"LINED_HISTORY_FILE", func(v string) {
			if v != "" {
				cfg.HistoryFile = v
			}
		}},
		{"LINED_NOTES_DB", func(v string) {
			if v != "" {
				cfg.NotesDB = v
			}
		}},
		{"LINED_LOG_FILE", func(v string) {
			if v != "" {
				cfg.LogFile = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the demo data directory (~/.config/lined).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lined"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
