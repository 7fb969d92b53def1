// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete dcc command tree.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
	"github.com/bureau-foundation/dcc/cmd/dcc/payload"
	viewcmd "github.com/bureau-foundation/dcc/cmd/dcc/view"
	watchcmd "github.com/bureau-foundation/dcc/cmd/dcc/watch"
	"github.com/bureau-foundation/dcc/lib/version"
)

// Root builds and returns the complete dcc command tree.
func Root() *cli.Command {
	subcommands := payload.Commands()
	subcommands = append(subcommands,
		watchcmd.Command(),
		viewcmd.Command(),
		versionCommand(),
	)

	return &cli.Command{
		Name: "dcc",
		Description: `dcc: inspect digital certificate QR payloads.

A payload is the text of a certificate QR code: the "HC1:" marker, then
base45 text of (usually zlib-compressed) CBOR. dcc shows the payload at
each stage of decoding and reports which stage fails and why.`,
		Subcommands: subcommands,
		Examples: []cli.Example{
			{
				Description: "Show every stage of a scanned payload",
				Command:     "dcc inspect qr.txt",
			},
			{
				Description: "Decode to JSON",
				Command:     "dcc decode --view json qr.txt",
			},
			{
				Description: "Decode payloads interactively",
				Command:     "dcc view",
			},
			{
				Description: "Build a test payload",
				Command:     "echo '{\"v\":[{\"ci\":\"URN:UVCI:01\"}]}' | dcc encode",
			},
		},
	}
}

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "dcc version [--json]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments, got %q", args[0])
			}
			if done, err := params.EmitJSON(os.Stdout, version.Current()); done {
				return err
			}
			_, err := os.Stdout.WriteString("dcc " + version.Full() + "\n")
			return err
		},
	}
}
