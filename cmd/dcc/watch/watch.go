// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package watch implements "dcc watch", which decodes a stream of
// payloads, one per input line, the way a scanner feeding a terminal
// would: each line is an input event that recomputes every view.
package watch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
	"github.com/bureau-foundation/dcc/cmd/dcc/payload"
	"github.com/bureau-foundation/dcc/lib/pipeline"
	"github.com/bureau-foundation/dcc/lib/present"
)

// maxLineBytes bounds one input line. QR codes top out below 8 KiB of
// text; the margin covers pasted test payloads.
const maxLineBytes = 1 << 20

type watchParams struct {
	payload.DecodeFlags
	JSON  bool     `json:"-"     flag:"json"  desc:"write one compact JSON report per line"`
	Slots []string `json:"slots" flag:"slots" desc:"views to print: prefix, base45, inflate, structured (default all)"`
}

// Command returns the watch command.
func Command() *cli.Command {
	var params watchParams

	return &cli.Command{
		Name:    "watch",
		Summary: "Decode one payload per line of stdin",
		Description: `Read payloads from stdin, one per line, and print the views of each as
it arrives. Blank lines are skipped. Pipe a barcode scanner or a file
of payloads into it.

Text output separates payloads with a blank line. With --json every
payload becomes one compact report object on its own line, suitable
for jq.

The command exits 0 at end of input even when payloads fail to decode;
failures are visible in the views.`,
		Usage:  "dcc watch [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Decode a file of payloads as JSON lines",
				Command:     "dcc watch --json < payloads.txt | jq .structured",
			},
		},
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("watch reads stdin and takes no arguments, got %q", args[0])
			}
			session, err := params.Open("dcc watch")
			if err != nil {
				return err
			}
			defer session.Close()
			return watch(ctx, session.Pipeline, session.Logger, &params, os.Stdin, os.Stdout)
		},
	}
}

// watch decodes every non-blank line of input until end of input or
// until ctx is done.
func watch(ctx context.Context, decoder *pipeline.Pipeline, logger *slog.Logger, params *watchParams, input io.Reader, w io.Writer) error {
	for _, name := range params.Slots {
		if !present.Valid(name) {
			return cli.Validation("unknown slot %q (want prefix, base45, inflate or structured)", name)
		}
	}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	events, failures := 0, 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		report := decoder.Run(raw)
		if len(report.Diagnostics) > 0 {
			failures++
		}
		if err := emit(report, params, events > 0, w); err != nil {
			return cli.Internal("write output: %w", err)
		}
		events++
	}
	if err := scanner.Err(); err != nil {
		return cli.Internal("read stdin: %w", err)
	}

	logger.Info("input closed", "payloads", events, "failed", failures)
	return nil
}

func emit(report pipeline.Report, params *watchParams, separate bool, w io.Writer) error {
	if params.JSON {
		return writeCompactJSON(w, report)
	}

	if separate {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	slots := present.NewWriterSlots(w, params.Slots...)
	present.Fill(report, slots)
	return slots.Err()
}
