// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
	"github.com/bureau-foundation/dcc/lib/hexfmt"
	"github.com/bureau-foundation/dcc/lib/pipeline"
)

type viewParams struct {
	DecodeFlags
	Wrap int `json:"wrap" flag:"wrap,w" desc:"wrap hex output at this many characters (0: no wrapping)"`
}

func prefixCommand() *cli.Command {
	var params DecodeFlags

	return &cli.Command{
		Name:    "prefix",
		Summary: "Strip the HC1: marker",
		Description: `Print the payload with its "HC1:" marker removed.

Input without the marker prints a warning instead of the payload text.
A warning is not an error: the command still exits 0, and the other
commands decode such input as a payload from an older version.`,
		Usage:  "dcc prefix [flags] [payload|file]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			raw, err := ReadPayload(args, os.Stdin)
			if err != nil {
				return err
			}
			session, err := params.Open("dcc prefix")
			if err != nil {
				return err
			}
			defer session.Close()
			return writeLine(os.Stdout, session.Pipeline.PrefixOnly(raw))
		},
	}
}

func base45Command() *cli.Command {
	var params viewParams

	return &cli.Command{
		Name:    "base45",
		Summary: "Print the base45-decoded bytes as hex",
		Usage:   "dcc base45 [flags] [payload|file]",
		Params:  func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Decode a bare zlib header",
				Command:     "dcc base45 HC1:6BF",
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			raw, err := ReadPayload(args, os.Stdin)
			if err != nil {
				return err
			}
			session, err := params.Open("dcc base45")
			if err != nil {
				return err
			}
			defer session.Close()
			return printBase45(session.Pipeline, raw, params.Wrap, os.Stdout)
		},
	}
}

func inflateCommand() *cli.Command {
	var params viewParams

	return &cli.Command{
		Name:    "inflate",
		Summary: "Print the inflated bytes as hex",
		Description: `Base45-decode the payload and inflate it when it starts with the zlib
header byte 0x78. Prints the inflated bytes as hex.

Prints nothing when the decoded bytes are not compressed: such payloads
carry their CBOR directly and "dcc decode" parses them as they are.`,
		Usage:  "dcc inflate [flags] [payload|file]",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			raw, err := ReadPayload(args, os.Stdin)
			if err != nil {
				return err
			}
			session, err := params.Open("dcc inflate")
			if err != nil {
				return err
			}
			defer session.Close()
			return printInflate(session.Pipeline, session.Logger, raw, params.Wrap, os.Stdout)
		},
	}
}

func printBase45(decoder *pipeline.Pipeline, raw string, wrap int, w io.Writer) error {
	decoded, err := decoder.Base45(raw)
	if err != nil {
		return printDiagnostic(w, err, pipeline.StageBase45)
	}
	return writeLine(w, wrapHex(hexfmt.Encode(decoded), wrap))
}

func printInflate(decoder *pipeline.Pipeline, logger *slog.Logger, raw string, wrap int, w io.Writer) error {
	inflated, compressed, err := decoder.Inflate(raw)
	if err != nil {
		return printDiagnostic(w, err, pipeline.StageInflate)
	}
	if !compressed {
		logger.Info("payload is not zlib-compressed")
		return nil
	}
	return writeLine(w, wrapHex(hexfmt.Encode(inflated), wrap))
}

// printDiagnostic writes the diagnostic for err and returns the
// ExitError that makes the command exit 1 without another message.
func printDiagnostic(w io.Writer, err error, stage pipeline.Stage) error {
	if writeErr := writeLine(w, pipeline.Diagnose(err, stage).String()); writeErr != nil {
		return writeErr
	}
	return &cli.ExitError{Code: 1}
}

func wrapHex(encoded string, width int) string {
	if width <= 0 {
		return encoded
	}
	return hexfmt.Wrap(encoded, width)
}
