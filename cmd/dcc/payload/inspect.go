// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
	"github.com/bureau-foundation/dcc/lib/pipeline"
	"github.com/bureau-foundation/dcc/lib/present"
)

type inspectParams struct {
	DecodeFlags
	cli.JSONOutput
	Slots []string `json:"slots" flag:"slots" desc:"views to print: prefix, base45, inflate, structured (default all)"`
}

func inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show every stage of a payload",
		Description: `Run the whole pipeline on a payload and print all four views:

  prefix      the text after "HC1:", or a warning when the marker is missing
  base45      hex of the base45-decoded bytes
  inflate     hex of the inflated bytes (empty when not zlib-compressed)
  structured  the decoded CBOR tree with nested envelopes unwrapped

A failing stage shows a JSON diagnostic in its view; the other views are
still computed. The command exits 1 when any view holds a diagnostic.

With --json, prints a report object with every view, the diagnostics and
a fingerprint of the input.`,
		Usage:  "dcc inspect [flags] [payload|file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Inspect a scanned payload",
				Command:     "dcc inspect \"$(cat qr.txt)\"",
			},
			{
				Description: "Machine-readable report of a payload file",
				Command:     "dcc inspect --json qr.txt",
			},
			{
				Description: "Only the decoded tree, as diagnostic notation",
				Command:     "dcc inspect --slots structured --view diag qr.txt",
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			raw, err := ReadPayload(args, os.Stdin)
			if err != nil {
				return err
			}
			session, err := params.Open("dcc inspect")
			if err != nil {
				return err
			}
			defer session.Close()
			return inspect(session.Pipeline, &params, raw, os.Stdout)
		},
	}
}

// inspect prints the report for raw and returns an ExitError when any
// view holds a diagnostic.
func inspect(decoder *pipeline.Pipeline, params *inspectParams, raw string, w io.Writer) error {
	report := decoder.Run(raw)

	if done, err := params.EmitJSON(w, report); done {
		if err != nil {
			return err
		}
		return reportExit(report)
	}

	for _, name := range params.Slots {
		if !present.Valid(name) {
			return cli.Validation("unknown slot %q (want prefix, base45, inflate or structured)", name)
		}
	}
	slots := present.NewWriterSlots(w, params.Slots...)
	present.Fill(report, slots)
	if err := slots.Err(); err != nil {
		return err
	}
	return reportExit(report)
}

func reportExit(report pipeline.Report) error {
	if len(report.Diagnostics) > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
