// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package view implements "dcc view", the interactive terminal viewer.
package view

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
	"github.com/bureau-foundation/dcc/cmd/dcc/payload"
	"github.com/bureau-foundation/dcc/lib/viewer"
)

// Command returns the view command.
func Command() *cli.Command {
	var params payload.DecodeFlags

	return &cli.Command{
		Name:    "view",
		Summary: "Decode payloads interactively",
		Description: `Open a full-screen viewer with an input area and one pane per view.
Every edit to the input (typing, pasting, a scanner's keystrokes)
recomputes all four panes.

Keys:
  tab     cycle the structured pane between hex, diag and json
  ctrl+l  clear the input
  esc     quit

An optional argument (payload text or a file) is loaded into the input
at start.`,
		Usage:  "dcc view [flags] [payload|file]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return cli.Validation("dcc view needs a terminal; use \"dcc watch\" for piped input")
			}

			var initial string
			if len(args) > 0 {
				data, err := payload.ReadPayload(args, os.Stdin)
				if err != nil {
					return err
				}
				initial = data
			}

			session, err := params.Open("dcc view")
			if err != nil {
				return err
			}
			defer session.Close()

			if err := viewer.Run(ctx, session.Pipeline, initial); err != nil {
				if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
					return nil
				}
				return cli.Internal("viewer: %w", err)
			}
			return nil
		},
	}
}
