// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package payload implements the dcc commands that act on a single
// certificate payload: inspect (every view), prefix, base45, inflate
// and decode (one view each), and encode (the reverse direction, for
// producing test payloads).
//
// Every command takes the payload as an optional trailing argument.
// An argument naming a regular file is read from disk; any other
// argument is the payload itself; no argument reads stdin. Surrounding
// whitespace is trimmed, so a payload file with a trailing newline
// decodes the same as the bare text.
//
// Single-view commands print the view. When the view is a stage
// diagnostic they print it and exit 1 without an extra error line.
package payload
