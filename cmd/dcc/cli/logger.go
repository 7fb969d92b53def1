// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/dcc/lib/config"
)

// NewCommandLogger creates the logger commands receive before any
// config file is read. When stderr is a terminal, uses slog.TextHandler
// for human-readable output. When stderr is piped or redirected (CI,
// scripts), uses slog.JSONHandler for machine-parseable output.
func NewCommandLogger() *slog.Logger {
	return slog.New(newHandler(os.Stderr, "auto", slog.LevelInfo))
}

// NewLogger builds a logger from a config log section. Output goes to
// settings.File when set (appended, created if missing) and to stderr
// otherwise. The returned closer releases the file; it is a no-op for
// stderr.
func NewLogger(settings config.LogConfig) (*slog.Logger, io.Closer, error) {
	if settings.File == "" {
		return slog.New(newHandler(os.Stderr, settings.Format, settings.SlogLevel())), nopCloser{}, nil
	}

	file, err := os.OpenFile(settings.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(newHandler(file, settings.Format, settings.SlogLevel())), file, nil
}

// newHandler picks the handler for format. "auto" means text on a
// terminal and JSON otherwise.
func newHandler(output *os.File, format string, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.NewTextHandler(output, options)
	case "json":
		return slog.NewJSONHandler(output, options)
	}
	if term.IsTerminal(int(output.Fd())) {
		return slog.NewTextHandler(output, options)
	}
	return slog.NewJSONHandler(output, options)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
