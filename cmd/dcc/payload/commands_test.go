// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/dcc/cmd/dcc/cli"
	"github.com/bureau-foundation/dcc/lib/envelope"
	"github.com/bureau-foundation/dcc/lib/pipeline"
	"github.com/bureau-foundation/dcc/lib/testutil"
)

// {"a": 1}
var smallMap = []byte{0xa1, 0x61, 0x61, 0x01}

func newPipeline(t *testing.T, view envelope.View) *pipeline.Pipeline {
	t.Helper()
	decoder, err := pipeline.New(pipeline.Options{View: view})
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	return decoder
}

func exitCode(err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func TestInspectText(t *testing.T) {
	t.Parallel()

	payload := testutil.QR(t, smallMap, true)
	var buffer bytes.Buffer
	if err := inspect(newPipeline(t, envelope.ViewHex), &inspectParams{}, payload, &buffer); err != nil {
		t.Fatalf("inspect: %v", err)
	}

	output := buffer.String()
	for _, want := range []string{
		"prefix: " + strings.TrimPrefix(payload, "HC1:") + "\n",
		"inflate: a1616101\n",
		"structured: a1616101\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if !strings.HasPrefix(output, "prefix: ") {
		t.Errorf("first view is not prefix:\n%s", output)
	}
}

func TestInspectSlots(t *testing.T) {
	t.Parallel()

	payload := testutil.QR(t, smallMap, false)
	var buffer bytes.Buffer
	params := &inspectParams{Slots: []string{"structured"}}
	if err := inspect(newPipeline(t, envelope.ViewDiag), params, payload, &buffer); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if got, want := buffer.String(), "structured: {\"a\": 1}\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	params = &inspectParams{Slots: []string{"cbor"}}
	err := inspect(newPipeline(t, envelope.ViewHex), params, payload, &buffer)
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryValidation {
		t.Errorf("unknown slot error = %v, want validation error", err)
	}
}

func TestInspectJSON(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	params := &inspectParams{JSONOutput: cli.JSONOutput{OutputJSON: true}}
	err := inspect(newPipeline(t, envelope.ViewHex), params, "HC1:A", &buffer)
	if exitCode(err) != 1 {
		t.Fatalf("inspect error = %v, want exit code 1", err)
	}

	var report pipeline.Report
	if err := json.Unmarshal(buffer.Bytes(), &report); err != nil {
		t.Fatalf("output is not a report: %v\n%s", err, buffer.String())
	}
	if report.Prefix != "A" {
		t.Errorf("prefix = %q, want A", report.Prefix)
	}
	if len(report.Diagnostics) != 3 {
		t.Fatalf("diagnostics = %+v, want one per failing stage", report.Diagnostics)
	}
	for _, diagnostic := range report.Diagnostics {
		if diagnostic.Code != pipeline.CodeInvalidLength {
			t.Errorf("diagnostic %+v, want invalid_length", diagnostic)
		}
	}
	if report.Fingerprint == "" {
		t.Error("report has no fingerprint")
	}
}

func TestPrintBase45(t *testing.T) {
	t.Parallel()

	decoder := newPipeline(t, envelope.ViewHex)

	var buffer bytes.Buffer
	if err := printBase45(decoder, "HC1:6BF", 0, &buffer); err != nil {
		t.Fatalf("printBase45: %v", err)
	}
	if buffer.String() != "789c\n" {
		t.Errorf("output = %q, want 789c", buffer.String())
	}

	buffer.Reset()
	err := printBase45(decoder, "HC1:ab", 0, &buffer)
	if exitCode(err) != 1 {
		t.Fatalf("error = %v, want exit code 1", err)
	}
	var diagnostic pipeline.Diagnostic
	if err := json.Unmarshal(buffer.Bytes(), &diagnostic); err != nil {
		t.Fatalf("output is not a diagnostic: %q", buffer.String())
	}
	if diagnostic.Stage != pipeline.StageBase45 || diagnostic.Code != pipeline.CodeInvalidCharacter {
		t.Errorf("diagnostic = %+v", diagnostic)
	}
}

func TestPrintBase45Wrap(t *testing.T) {
	t.Parallel()

	payload := testutil.QR(t, smallMap, false)
	var buffer bytes.Buffer
	if err := printBase45(newPipeline(t, envelope.ViewHex), payload, 4, &buffer); err != nil {
		t.Fatalf("printBase45: %v", err)
	}
	if buffer.String() != "a161\n6101\n" {
		t.Errorf("output = %q, want two wrapped lines", buffer.String())
	}
}

func TestPrintInflate(t *testing.T) {
	t.Parallel()

	decoder := newPipeline(t, envelope.ViewHex)
	logger := testLogger()

	var buffer bytes.Buffer
	if err := printInflate(decoder, logger, testutil.QR(t, smallMap, true), 0, &buffer); err != nil {
		t.Fatalf("printInflate: %v", err)
	}
	if buffer.String() != "a1616101\n" {
		t.Errorf("output = %q, want a1616101", buffer.String())
	}

	buffer.Reset()
	if err := printInflate(decoder, logger, testutil.QR(t, smallMap, false), 0, &buffer); err != nil {
		t.Fatalf("printInflate uncompressed: %v", err)
	}
	if buffer.Len() != 0 {
		t.Errorf("uncompressed output = %q, want nothing", buffer.String())
	}

	buffer.Reset()
	if err := printInflate(decoder, logger, "HC1:6BF", 0, &buffer); exitCode(err) != 1 {
		t.Errorf("header-only error = %v, want exit code 1", err)
	}
	if !strings.Contains(buffer.String(), `"code":"inflate_failed"`) {
		t.Errorf("output = %q, want inflate_failed diagnostic", buffer.String())
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		view   envelope.View
		params decodeParams
		input  string
		want   string
	}{
		{
			name:  "payload",
			view:  envelope.ViewHex,
			input: testutil.QR(t, smallMap, true) + "\n",
			want:  "a1616101\n",
		},
		{
			name:  "nested payload",
			view:  envelope.ViewHex,
			input: testutil.QR(t, testutil.NestLevels(t, smallMap, 2), true),
			want:  "8181a1616101\n",
		},
		{
			name:   "hex input",
			view:   envelope.ViewDiag,
			params: decodeParams{HexInput: true},
			input:  "a1 61 61\n01",
			want:   "{\"a\": 1}\n",
		},
		{
			name:   "json view",
			view:   envelope.ViewJSON,
			params: decodeParams{HexInput: true},
			input:  "a1616101",
			want:   "{\"a\":1}\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buffer bytes.Buffer
			if err := decode(newPipeline(t, test.view), &test.params, []byte(test.input), &buffer); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if buffer.String() != test.want {
				t.Errorf("output = %q, want %q", buffer.String(), test.want)
			}
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	t.Parallel()

	decoder := newPipeline(t, envelope.ViewHex)

	var buffer bytes.Buffer
	err := decode(decoder, &decodeParams{HexInput: true}, []byte("ff"), &buffer)
	if exitCode(err) != 1 {
		t.Fatalf("lone break error = %v, want exit code 1", err)
	}
	if !strings.Contains(buffer.String(), `"code":"structured_parse_error"`) {
		t.Errorf("output = %q, want structured_parse_error", buffer.String())
	}

	err = decode(decoder, &decodeParams{HexInput: true}, []byte("zz"), &buffer)
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryValidation {
		t.Errorf("bad hex error = %v, want validation error", err)
	}
}

func TestDecodeColor(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	params := &decodeParams{HexInput: true, Color: true}
	if err := decode(newPipeline(t, envelope.ViewJSON), params, []byte("a1616101"), &buffer); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(buffer.String(), "\x1b[") {
		t.Errorf("output %q has no terminal escapes", buffer.String())
	}

	// Color only applies to the json view.
	buffer.Reset()
	if err := decode(newPipeline(t, envelope.ViewHex), params, []byte("a1616101"), &buffer); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if buffer.String() != "a1616101\n" {
		t.Errorf("hex output = %q", buffer.String())
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		params     encodeParams
		structured string
		compressed bool
		wantPrefix bool
	}{
		{name: "default", params: encodeParams{Level: -1}, structured: "a1616101", compressed: true, wantPrefix: true},
		{name: "best", params: encodeParams{Level: 9}, structured: "a1616101", compressed: true, wantPrefix: true},
		{name: "no compress", params: encodeParams{Level: -1, NoCompress: true}, structured: "a1616101", wantPrefix: true},
		{name: "no prefix", params: encodeParams{Level: -1, NoPrefix: true}, structured: "a1616101", compressed: true},
		{name: "nested", params: encodeParams{Level: -1, Nest: 2}, structured: "8181a1616101", compressed: true, wantPrefix: true},
	}
	decoder := newPipeline(t, envelope.ViewHex)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buffer bytes.Buffer
			if err := encode(&test.params, []byte(`{"a": 1}`), &buffer); err != nil {
				t.Fatalf("encode: %v", err)
			}
			payload := strings.TrimSuffix(buffer.String(), "\n")

			if got := strings.HasPrefix(payload, "HC1:"); got != test.wantPrefix {
				t.Errorf("payload %q has marker = %v, want %v", payload, got, test.wantPrefix)
			}
			if got := decoder.AfterStructuredDecode(payload); got != test.structured {
				t.Errorf("structured view = %q, want %q", got, test.structured)
			}
			if got := decoder.AfterInflate(payload) != ""; got != test.compressed {
				t.Errorf("compressed = %v, want %v", got, test.compressed)
			}
		})
	}
}

func TestEncodeNumbers(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	params := &encodeParams{Level: -1}
	if err := encode(params, []byte(`{"n": 42, "f": 1.5}`), &buffer); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoder := newPipeline(t, envelope.ViewDiag)
	got := decoder.AfterStructuredDecode(strings.TrimSpace(buffer.String()))
	if got != `{"f": 1.5, "n": 42}` {
		t.Errorf("structured view = %q", got)
	}
}

func TestEncodeValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params encodeParams
		input  string
	}{
		{name: "empty", params: encodeParams{Level: -1}, input: "  \n"},
		{name: "bad json", params: encodeParams{Level: -1}, input: "{"},
		{name: "level too high", params: encodeParams{Level: 10}, input: "1"},
		{name: "level too low", params: encodeParams{Level: -2}, input: "1"},
		{name: "negative nest", params: encodeParams{Level: -1, Nest: -1}, input: "1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buffer bytes.Buffer
			err := encode(&test.params, []byte(test.input), &buffer)
			var toolErr *cli.ToolError
			if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryValidation {
				t.Errorf("encode error = %v, want validation error", err)
			}
			if buffer.Len() != 0 {
				t.Errorf("wrote %q on error", buffer.String())
			}
		})
	}
}

func TestCommandsHaveParams(t *testing.T) {
	t.Parallel()

	for _, command := range Commands() {
		if command.Params == nil || command.Run == nil {
			t.Errorf("%s: Params and Run must both be set", command.Name)
		}
		if command.Summary == "" {
			t.Errorf("%s: no summary", command.Name)
		}
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"inspect": {"config", "max-depth", "max-inflated-bytes", "view", "json", "slots"},
		"prefix":  {"config", "max-depth", "view"},
		"base45":  {"config", "view", "wrap"},
		"inflate": {"config", "max-inflated-bytes", "wrap"},
		"decode":  {"config", "max-depth", "view", "hex", "color"},
		"encode":  {"no-compress", "no-prefix", "level", "nest"},
	}
	for _, command := range Commands() {
		want, ok := tests[command.Name]
		if !ok {
			t.Errorf("unexpected command %q", command.Name)
			continue
		}
		flagSet := cli.FlagsFromParams(command.Name, command.Params())
		for _, name := range want {
			if flagSet.Lookup(name) == nil {
				t.Errorf("%s: missing --%s", command.Name, name)
			}
		}
	}
}

func TestDecodeFlagsOverrideConfig(t *testing.T) {
	t.Setenv("DCC_CONFIG", "")

	flags := DecodeFlags{MaxDepth: 4, View: "json"}
	session, err := flags.Open("dcc test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer session.Close()

	if session.Pipeline.View() != envelope.ViewJSON {
		t.Errorf("view = %s, want json", session.Pipeline.View())
	}
	if session.Config.Decode.MaxDepth != 4 {
		t.Errorf("max depth = %d, want 4", session.Config.Decode.MaxDepth)
	}
	if got := session.Pipeline.AfterStructuredDecode(testutil.QR(t, testutil.NestLevels(t, smallMap, 3), true)); !strings.Contains(got, `"code":"too_deep"`) {
		t.Errorf("structured view = %q, want too_deep at depth 4", got)
	}

	flags = DecodeFlags{View: "xml"}
	_, err = flags.Open("dcc test")
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryValidation {
		t.Errorf("Open with view xml: %v, want validation error", err)
	}
}
