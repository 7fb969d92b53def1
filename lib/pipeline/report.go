// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"github.com/bureau-foundation/dcc/lib/fingerprint"
	"github.com/bureau-foundation/dcc/lib/hexfmt"
)

// Report holds every view of one input.
type Report struct {
	// Fingerprint identifies the raw input without revealing it.
	Fingerprint string `json:"fingerprint"`

	Prefix     string `json:"prefix"`
	Base45     string `json:"base45"`
	Inflate    string `json:"inflate"`
	Structured string `json:"structured"`

	// Warning is the prefix warning message for input without a
	// well-formed "HC1:" marker, or "" when the marker was stripped.
	Warning string `json:"warning,omitempty"`

	// Diagnostics lists the failures behind any view that holds a
	// diagnostic instead of a value. A prefix warning is not a
	// failure and is not listed.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// View returns the text for stage.
func (report Report) View(stage Stage) string {
	switch stage {
	case StagePrefix:
		return report.Prefix
	case StageBase45:
		return report.Base45
	case StageInflate:
		return report.Inflate
	case StageStructured:
		return report.Structured
	default:
		return ""
	}
}

// Run computes all four views of raw.
func (pipeline *Pipeline) Run(raw string) Report {
	prefix := pipeline.Prefix(raw)
	report := Report{
		Fingerprint: fingerprint.Of(raw).String(),
		Prefix:      prefix.String(),
	}
	if message, isWarning := prefix.Message(); isWarning {
		report.Warning = message
	}

	if decoded, err := pipeline.Base45(raw); err != nil {
		report.Base45 = pipeline.record(&report, raw, err, StageBase45)
	} else {
		report.Base45 = hexfmt.Encode(decoded)
	}

	if inflated, compressed, err := pipeline.Inflate(raw); err != nil {
		report.Inflate = pipeline.record(&report, raw, err, StageInflate)
	} else if compressed {
		report.Inflate = hexfmt.Encode(inflated)
	}

	if value, err := pipeline.Structured(raw); err != nil {
		report.Structured = pipeline.record(&report, raw, err, StageStructured)
	} else if rendered, err := pipeline.Render(value); err != nil {
		report.Structured = pipeline.record(&report, raw, err, StageStructured)
	} else {
		report.Structured = rendered
	}

	return report
}

func (pipeline *Pipeline) record(report *Report, raw string, err error, stage Stage) string {
	report.Diagnostics = append(report.Diagnostics, Diagnose(err, stage))
	return pipeline.diagnose(raw, err, stage)
}
