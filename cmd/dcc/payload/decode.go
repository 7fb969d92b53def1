// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
	"github.com/bureau-foundation/dcc/lib/envelope"
	"github.com/bureau-foundation/dcc/lib/hexfmt"
	"github.com/bureau-foundation/dcc/lib/pipeline"
)

type decodeParams struct {
	DecodeFlags
	HexInput bool `json:"hex_input" flag:"hex,x" desc:"treat input as hex-encoded CBOR and skip the text stages"`
	Color    bool `json:"color"     flag:"color" desc:"syntax-highlight json output for a terminal"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode a payload to its CBOR tree",
		Description: `Run the whole pipeline and print the decoded CBOR tree. Byte strings
that hold another base45 envelope are decoded in place, recursively, up
to --max-depth levels; other byte strings are shown as base64 text.

Views:
  hex   lowercase hex of the unwrapped tree's CBOR encoding (default)
  diag  RFC 8949 diagnostic notation
  json  a JSON projection: map keys become strings, bytes become base64

With --hex the input is hex-encoded CBOR rather than a payload.
Whitespace in the hex is ignored.`,
		Usage:  "dcc decode [flags] [payload|file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Decode a payload file as JSON",
				Command:     "dcc decode --view json qr.txt",
			},
			{
				Description: "Decode raw CBOR given as hex",
				Command:     "echo 'a1 61 61 01' | dcc decode --hex --view diag",
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, err := readInput(args, os.Stdin)
			if err != nil {
				return err
			}
			session, err := params.Open("dcc decode")
			if err != nil {
				return err
			}
			defer session.Close()
			return decode(session.Pipeline, &params, data, os.Stdout)
		},
	}
}

func decode(decoder *pipeline.Pipeline, params *decodeParams, data []byte, w io.Writer) error {
	var (
		value envelope.Value
		err   error
	)
	if params.HexInput {
		buf, hexErr := hexfmt.Decode(data)
		if hexErr != nil {
			return cli.Validation("%w", hexErr)
		}
		value, err = decoder.DecodeStructured(buf)
	} else {
		value, err = decoder.Structured(strings.TrimSpace(string(data)))
	}
	if err != nil {
		return printDiagnostic(w, err, pipeline.StageStructured)
	}

	rendered, err := decoder.Render(value)
	if err != nil {
		return printDiagnostic(w, err, pipeline.StageStructured)
	}

	if params.Color && decoder.View() == envelope.ViewJSON {
		if err := quick.Highlight(w, rendered, "json", colorFormatter(w), "monokai"); err != nil {
			return cli.Internal("highlight: %w", err)
		}
		return writeLine(w, "")
	}
	return writeLine(w, rendered)
}

// colorFormatter picks the Chroma terminal formatter for w's color
// profile. Output that is not a terminal gets 256 colors.
func colorFormatter(w io.Writer) string {
	switch termenv.NewOutput(w).ColorProfile() {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI:
		return "terminal16"
	default:
		return "terminal256"
	}
}
