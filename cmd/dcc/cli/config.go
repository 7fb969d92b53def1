// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dcc/lib/config"
)

// ConfigFlags adds --config to a command. Put it in a params struct;
// [BindFlags] calls AddFlags.
type ConfigFlags struct {
	// Path is the --config value. Empty means DCC_CONFIG, and built-in
	// defaults when that is unset too.
	Path string
}

// AddFlags implements [FlagBinder].
func (flags *ConfigFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.Path, "config", "", "config file (default: $"+config.EnvVar+", else built-in defaults)")
}

// Load reads and validates the configuration. Unreadable, malformed
// and invalid files are validation errors.
func (flags *ConfigFlags) Load() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.Path != "" {
		cfg, err = config.LoadFile(flags.Path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, Validation("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, Validation("invalid config:\n%w", err)
	}
	return cfg, nil
}
