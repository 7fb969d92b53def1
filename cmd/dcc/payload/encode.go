// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
	"github.com/bureau-foundation/dcc/lib/base45"
	"github.com/bureau-foundation/dcc/lib/codec"
	"github.com/bureau-foundation/dcc/lib/inflate"
	"github.com/bureau-foundation/dcc/lib/scheme"
)

type encodeParams struct {
	NoCompress bool `json:"no_compress" flag:"no-compress" desc:"store the CBOR without zlib compression"`
	NoPrefix   bool `json:"no_prefix"   flag:"no-prefix"   desc:"omit the HC1: marker"`
	Level      int  `json:"level"       flag:"level"       desc:"zlib compression level, -1 (default) to 9" default:"-1"`
	Nest       int  `json:"nest"        flag:"nest"        desc:"wrap the payload in this many additional envelopes"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Build a payload from JSON",
		Description: `Read JSON from stdin (or a file argument) and write an "HC1:" payload:
the JSON is encoded as deterministic CBOR, compressed with zlib and
base45-encoded.

JSON integers stay CBOR integers. With --nest N the payload is wrapped N
more times: each wrapper is a one-element CBOR array holding the inner
envelope text as a byte string, which "dcc decode" unwraps again.`,
		Usage:  "dcc encode [flags] [file]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Encode JSON and decode it back",
				Command:     "echo '{\"a\":1}' | dcc encode | dcc decode --view json",
			},
			{
				Description: "An uncompressed payload inside two envelopes",
				Command:     "dcc encode --no-compress --nest 2 cert.json",
			},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			data, err := readInput(args, os.Stdin)
			if err != nil {
				return err
			}
			return encode(&params, data, os.Stdout)
		},
	}
}

// encode converts JSON data into a payload and writes it to w.
func encode(params *encodeParams, data []byte, w io.Writer) error {
	if params.Level < -1 || params.Level > 9 {
		return cli.Validation("--level must be between -1 and 9, got %d", params.Level)
	}
	if params.Nest < 0 {
		return cli.Validation("--nest must not be negative, got %d", params.Nest)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cli.Validation("empty input: expected JSON data")
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return cli.Validation("decode JSON: %w", err)
	}
	value, err := convertNumbers(value)
	if err != nil {
		return cli.Validation("%w", err)
	}

	body, err := codec.Marshal(value)
	if err != nil {
		return cli.Internal("encode CBOR: %w", err)
	}

	text, err := envelopeText(body, params)
	if err != nil {
		return err
	}
	for range params.Nest {
		wrapper, err := codec.Marshal([]any{[]byte(text)})
		if err != nil {
			return cli.Internal("encode wrapper: %w", err)
		}
		if text, err = envelopeText(wrapper, params); err != nil {
			return err
		}
	}

	if !params.NoPrefix {
		text = scheme.Marker + ":" + text
	}
	return writeLine(w, text)
}

// envelopeText compresses body unless disabled and returns its base45 text.
func envelopeText(body []byte, params *encodeParams) (string, error) {
	if !params.NoCompress {
		compressed, err := inflate.Deflate(body, params.Level)
		if err != nil {
			return "", cli.Internal("compress: %w", err)
		}
		body = compressed
	}
	return base45.Encode(body), nil
}

// convertNumbers recursively walks a JSON-decoded value and converts
// json.Number to int64 or float64, so integers encode as CBOR integers
// rather than floats or text.
func convertNumbers(v any) (any, error) {
	switch value := v.(type) {
	case json.Number:
		if integer, err := value.Int64(); err == nil {
			return integer, nil
		}
		if float, err := value.Float64(); err == nil {
			return float, nil
		}
		return nil, fmt.Errorf("number %q is out of range", value.String())

	case map[string]any:
		for key, element := range value {
			converted, err := convertNumbers(element)
			if err != nil {
				return nil, err
			}
			value[key] = converted
		}
		return value, nil

	case []any:
		for index, element := range value {
			converted, err := convertNumbers(element)
			if err != nil {
				return nil, err
			}
			value[index] = converted
		}
		return value, nil

	default:
		return v, nil
	}
}
