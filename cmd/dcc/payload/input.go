// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
)

// readInput resolves the payload from the last positional argument (a
// file path or the payload text) or, with no arguments, from stdin.
// More than one positional argument is a validation error.
func readInput(args []string, stdin io.Reader) ([]byte, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, cli.Internal("read stdin: %w", err)
		}
		return data, nil

	case 1:
		candidate := args[0]
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			data, err := os.ReadFile(candidate)
			if err != nil {
				return nil, cli.Internal("read %s: %w", candidate, err)
			}
			return data, nil
		}
		return []byte(candidate), nil

	default:
		return nil, cli.Validation("expected at most one payload argument, got %d", len(args))
	}
}

// ReadPayload resolves the payload like the decoding commands do and
// returns it as trimmed text.
func ReadPayload(args []string, stdin io.Reader) (string, error) {
	data, err := readInput(args, stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// writeLine writes text followed by a newline.
func writeLine(w io.Writer, text string) error {
	_, err := fmt.Fprintln(w, text)
	return err
}
