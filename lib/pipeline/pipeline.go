// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"io"
	"log/slog"

	"github.com/bureau-foundation/dcc/lib/base45"
	"github.com/bureau-foundation/dcc/lib/envelope"
	"github.com/bureau-foundation/dcc/lib/fingerprint"
	"github.com/bureau-foundation/dcc/lib/hexfmt"
	"github.com/bureau-foundation/dcc/lib/inflate"
	"github.com/bureau-foundation/dcc/lib/scheme"
)

// Options configures a [Pipeline]. The zero value is valid.
type Options struct {
	// MaxDepth bounds CBOR nesting and envelope unwrapping. Zero
	// means 32.
	MaxDepth int

	// MaxInflatedBytes bounds every inflated buffer. Zero means
	// inflate.DefaultLimit.
	MaxInflatedBytes int64

	// View selects the rendering of the structured view. Empty
	// means envelope.ViewHex.
	View envelope.View

	// Logger receives a debug record for every stage failure. Nil
	// discards.
	Logger *slog.Logger
}

// Pipeline decodes certificate payloads. Construct with [New].
type Pipeline struct {
	decoder      *envelope.Decoder
	inflateLimit int64
	view         envelope.View
	logger       *slog.Logger
}

// New returns a Pipeline for options.
func New(options Options) (*Pipeline, error) {
	decoder, err := envelope.NewDecoder(envelope.Options{
		MaxDepth:     options.MaxDepth,
		InflateLimit: options.MaxInflatedBytes,
	})
	if err != nil {
		return nil, err
	}

	view := options.View
	if view == "" {
		view = envelope.ViewHex
	}
	if _, err := envelope.ParseView(string(view)); err != nil {
		return nil, err
	}

	inflateLimit := options.MaxInflatedBytes
	if inflateLimit <= 0 {
		inflateLimit = inflate.DefaultLimit
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Pipeline{
		decoder:      decoder,
		inflateLimit: inflateLimit,
		view:         view,
		logger:       logger,
	}, nil
}

// View returns the structured view this Pipeline renders.
func (pipeline *Pipeline) View() envelope.View {
	return pipeline.view
}

// WithView returns a copy of pipeline that renders the structured view
// as view.
func (pipeline *Pipeline) WithView(view envelope.View) (*Pipeline, error) {
	if _, err := envelope.ParseView(string(view)); err != nil {
		return nil, err
	}
	copied := *pipeline
	copied.view = view
	return &copied, nil
}

// Prefix runs the prefix stage.
func (pipeline *Pipeline) Prefix(raw string) scheme.Result {
	return scheme.Strip(raw)
}

// Base45 returns the base45-decoded bytes of raw's payload.
func (pipeline *Pipeline) Base45(raw string) ([]byte, error) {
	decoded, err := base45.Decode(scheme.Payload(raw))
	if err != nil {
		return nil, &StageError{Stage: StageBase45, Err: err}
	}
	return decoded, nil
}

// Inflate returns the inflated bytes of raw's payload and true, or
// nil and false when the decoded bytes are not zlib-compressed.
func (pipeline *Pipeline) Inflate(raw string) ([]byte, bool, error) {
	decoded, err := pipeline.Base45(raw)
	if err != nil {
		return nil, false, retag(err, StageInflate)
	}
	inflated, compressed, err := inflate.Maybe(decoded, pipeline.inflateLimit)
	if err != nil {
		return nil, true, &StageError{Stage: StageInflate, Err: err}
	}
	return inflated, compressed, nil
}

// Structured returns the decoded and recursively unwrapped CBOR tree
// of raw's payload. Uncompressed payloads are parsed as they are.
func (pipeline *Pipeline) Structured(raw string) (envelope.Value, error) {
	decoded, err := pipeline.Base45(raw)
	if err != nil {
		return nil, retag(err, StageStructured)
	}
	buf, err := pipeline.decoder.Payload(decoded)
	if err != nil {
		return nil, &StageError{Stage: StageStructured, Err: err}
	}
	return pipeline.DecodeStructured(buf)
}

// DecodeStructured parses one CBOR data item and unwraps the
// envelopes nested in it, skipping the text stages.
func (pipeline *Pipeline) DecodeStructured(buf []byte) (envelope.Value, error) {
	value, err := pipeline.decoder.Decode(buf)
	if err != nil {
		return nil, &StageError{Stage: StageStructured, Err: err}
	}
	unwrapped, err := pipeline.decoder.Unwrap(value)
	if err != nil {
		return nil, &StageError{Stage: StageStructured, Err: err}
	}
	return unwrapped, nil
}

// Render presents value in the pipeline's structured view.
func (pipeline *Pipeline) Render(value envelope.Value) (string, error) {
	rendered, err := pipeline.decoder.Render(value, pipeline.view)
	if err != nil {
		return "", &StageError{Stage: StageStructured, Err: err}
	}
	return rendered, nil
}

// retag moves an earlier stage's failure onto the view being computed,
// keeping the original cause.
func retag(err error, stage Stage) error {
	if stageError, ok := err.(*StageError); ok {
		return &StageError{Stage: stage, Err: stageError.Err}
	}
	return &StageError{Stage: stage, Err: err}
}

// PrefixOnly returns the prefix view: the stripped payload, or the
// warning text.
func (pipeline *Pipeline) PrefixOnly(raw string) string {
	return scheme.Strip(raw).String()
}

// AfterBase45 returns the hex of the base45-decoded bytes, or a
// diagnostic.
func (pipeline *Pipeline) AfterBase45(raw string) string {
	decoded, err := pipeline.Base45(raw)
	if err != nil {
		return pipeline.diagnose(raw, err, StageBase45)
	}
	return hexfmt.Encode(decoded)
}

// AfterInflate returns the hex of the inflated bytes, "" when the
// payload is not compressed, or a diagnostic.
func (pipeline *Pipeline) AfterInflate(raw string) string {
	inflated, compressed, err := pipeline.Inflate(raw)
	if err != nil {
		return pipeline.diagnose(raw, err, StageInflate)
	}
	if !compressed {
		return ""
	}
	return hexfmt.Encode(inflated)
}

// AfterStructuredDecode returns the unwrapped tree in the configured
// view, or a diagnostic.
func (pipeline *Pipeline) AfterStructuredDecode(raw string) string {
	value, err := pipeline.Structured(raw)
	if err != nil {
		return pipeline.diagnose(raw, err, StageStructured)
	}
	rendered, err := pipeline.Render(value)
	if err != nil {
		return pipeline.diagnose(raw, err, StageStructured)
	}
	return rendered
}

func (pipeline *Pipeline) diagnose(raw string, err error, stage Stage) string {
	diagnostic := Diagnose(err, stage)
	pipeline.logger.Debug("stage failed",
		"stage", diagnostic.Stage,
		"code", diagnostic.Code,
		"fingerprint", fingerprint.Of(raw).Short(),
		"error", err,
	)
	return diagnostic.String()
}
