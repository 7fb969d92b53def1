// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable [Load] reads.
const EnvVar = "DCC_CONFIG"

// Nesting bounds accepted for decode.max_depth. They match the limits
// of the CBOR decoder.
const (
	MinDepth = 4
	MaxDepth = 65535
)

// Config is the master configuration.
type Config struct {
	// Decode configures the decoding pipeline.
	Decode DecodeConfig `yaml:"decode" json:"decode"`

	// Log configures command logging.
	Log LogConfig `yaml:"log" json:"log"`
}

// DecodeConfig configures the decoding pipeline.
type DecodeConfig struct {
	// MaxDepth bounds CBOR nesting and envelope unwrapping.
	// Default: 32
	MaxDepth int `yaml:"max_depth" json:"max_depth"`

	// MaxInflatedBytes bounds the size of every inflated buffer.
	// Default: 4194304
	MaxInflatedBytes int64 `yaml:"max_inflated_bytes" json:"max_inflated_bytes"`

	// View is the default rendering of the structured view.
	// Values: "hex", "diag", "json"
	// Default: hex
	View string `yaml:"view" json:"view"`
}

// LogConfig configures command logging.
type LogConfig struct {
	// Level is the minimum level logged.
	// Values: "debug", "info", "warn", "error"
	// Default: info
	Level string `yaml:"level" json:"level"`

	// Format selects the handler.
	// Values: "auto" (text on a terminal, JSON otherwise), "text", "json"
	// Default: auto
	Format string `yaml:"format" json:"format"`

	// File receives log output instead of stderr when set.
	File string `yaml:"file" json:"file"`
}

var (
	views   = []string{"hex", "diag", "json"}
	levels  = []string{"debug", "info", "warn", "error"}
	formats = []string{"auto", "text", "json"}
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Decode: DecodeConfig{
			MaxDepth:         32,
			MaxInflatedBytes: 4 << 20,
			View:             "hex",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the DCC_CONFIG environment variable.
// When DCC_CONFIG is not set it returns [Default].
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Fields the
// file omits keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges one configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// ToJSON strips comments and trailing commas; the result is
		// valid YAML as well as JSON.
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// log file path.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Log.File = expandVars(c.Log.File, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. vars is
// consulted before the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Decode.MaxDepth < MinDepth || c.Decode.MaxDepth > MaxDepth {
		errs = append(errs, fmt.Errorf("decode.max_depth must be between %d and %d, got %d", MinDepth, MaxDepth, c.Decode.MaxDepth))
	}

	if c.Decode.MaxInflatedBytes <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_inflated_bytes must be positive, got %d", c.Decode.MaxInflatedBytes))
	}

	if !slices.Contains(views, c.Decode.View) {
		errs = append(errs, fmt.Errorf("decode.view must be one of: %v", views))
	}

	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}

	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel returns Level as a slog.Level. Unknown levels map to
// slog.LevelInfo; Validate reports them.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
