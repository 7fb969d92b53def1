// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the dcc tools.
//
// Configuration is loaded from a single file specified by either the
// DCC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Running without a file uses
// [Default].
//
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas; everything else is YAML. Both use the same field
// names.
//
// The only expansion performed is ${VAR} and ${VAR:-default} in
// log.file. No environment variable overrides a config value.
//
// Key exports:
//
//   - [Config] -- master struct with Decode and Log sections
//   - [Default] -- returns a Config with every default filled in
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field at once
//
// This package depends on no other dcc packages.
package config
