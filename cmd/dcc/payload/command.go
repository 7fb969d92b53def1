// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import "github.com/bureau-foundation/dcc/cmd/dcc/cli"

// Commands returns the payload commands, one per pipeline view plus
// inspect (all views) and encode (the reverse direction).
func Commands() []*cli.Command {
	return []*cli.Command{
		inspectCommand(),
		prefixCommand(),
		base45Command(),
		inflateCommand(),
		decodeCommand(),
		encodeCommand(),
	}
}
