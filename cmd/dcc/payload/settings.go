// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"io"
	"log/slog"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
	"github.com/bureau-foundation/dcc/lib/config"
	"github.com/bureau-foundation/dcc/lib/envelope"
	"github.com/bureau-foundation/dcc/lib/pipeline"
)

// DecodeFlags are the pipeline settings shared by every decoding
// command. Flags override the config file; zero values keep it.
type DecodeFlags struct {
	Config cli.ConfigFlags `json:"-"`

	MaxDepth         int    `json:"max_depth"          flag:"max-depth"          desc:"maximum CBOR nesting and envelope depth (default from config: 32)"`
	MaxInflatedBytes int64  `json:"max_inflated_bytes" flag:"max-inflated-bytes" desc:"maximum size of an inflated buffer (default from config: 4194304)"`
	View             string `json:"view"               flag:"view"               desc:"structured view: hex, diag or json (default from config: hex)"`
}

// Session is a configured pipeline and the logger that goes with it.
type Session struct {
	Pipeline *pipeline.Pipeline
	Logger   *slog.Logger
	Config   *config.Config

	closer io.Closer
}

// Close releases the log file, if any.
func (session *Session) Close() error {
	return session.closer.Close()
}

// Open loads the config, applies the flag overrides and builds the
// pipeline and a logger that follows the config's log section. The
// logger carries command as its "command" attribute.
func (flags *DecodeFlags) Open(command string) (*Session, error) {
	cfg, err := flags.Config.Load()
	if err != nil {
		return nil, err
	}

	if flags.MaxDepth != 0 {
		cfg.Decode.MaxDepth = flags.MaxDepth
	}
	if flags.MaxInflatedBytes != 0 {
		cfg.Decode.MaxInflatedBytes = flags.MaxInflatedBytes
	}
	if flags.View != "" {
		cfg.Decode.View = flags.View
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid flags:\n%w", err)
	}

	logger, closer, err := cli.NewLogger(cfg.Log)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	logger = logger.With("command", command)

	decoder, err := pipeline.New(pipeline.Options{
		MaxDepth:         cfg.Decode.MaxDepth,
		MaxInflatedBytes: cfg.Decode.MaxInflatedBytes,
		View:             envelope.View(cfg.Decode.View),
		Logger:           logger,
	})
	if err != nil {
		closer.Close()
		return nil, cli.Validation("%w", err)
	}

	return &Session{Pipeline: decoder, Logger: logger, Config: cfg, closer: closer}, nil
}
