// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for dcc.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a flag set built from a tagged
// parameter struct, and a Run function. Commands are assembled into a tree
// in cmd/dcc/commands and dispatched via [Command.Execute], which handles
// flag parsing, subcommand routing, and structured help output with
// examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// [ConfigFlags] adds --config to a command and loads the file (or
// DCC_CONFIG) through lib/config. [NewLogger] turns the loaded log
// section into a *slog.Logger.
package cli
