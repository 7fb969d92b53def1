// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scheme

import "strings"

// Marker is the three-character scheme identifier for health
// certificate payloads.
const Marker = "HC1"

// Warning messages for the two historical payload forms.
const (
	MessageUnsafeHeader = "unsafe " + Marker + ": header from older versions"
	MessageNoHeader     = "no " + Marker + ": header from older versions"
)

// kind distinguishes the two variants of a [Result].
type kind int

const (
	// kindStripped means the marker and colon were present and removed.
	kindStripped kind = iota
	// kindWarning means the input is in a historical form.
	kindWarning
)

// Result is the outcome of [Strip]: exactly one of a stripped payload
// or a warning message. The zero value is Stripped("").
type Result struct {
	kind kind
	text string
}

// Stripped returns a Result carrying the payload that followed "HC1:".
func Stripped(payload string) Result {
	return Result{kind: kindStripped, text: payload}
}

// Warning returns a Result carrying a warning message.
func Warning(message string) Result {
	return Result{kind: kindWarning, text: message}
}

// IsWarning reports whether the Result is a warning.
func (result Result) IsWarning() bool { return result.kind == kindWarning }

// Message returns the warning message and true, or "" and false for a
// stripped payload.
func (result Result) Message() (string, bool) {
	if result.kind != kindWarning {
		return "", false
	}
	return result.text, true
}

// String renders the Result the way the prefix view displays it: the
// payload itself, or "Warning: " followed by the message.
func (result Result) String() string {
	if result.kind == kindWarning {
		return "Warning: " + result.text
	}
	return result.text
}

// Strip removes the "HC1:" marker from raw.
func Strip(raw string) Result {
	rest, found := strings.CutPrefix(raw, Marker)
	if !found {
		return Warning(MessageNoHeader)
	}
	payload, found := strings.CutPrefix(rest, ":")
	if !found {
		return Warning(MessageUnsafeHeader)
	}
	return Stripped(payload)
}

// Payload returns the text that the base45 stage decodes for raw.
// Marker-less input is a historical payload and is returned as-is; a
// marker without a colon loses only the marker.
func Payload(raw string) string {
	rest, found := strings.CutPrefix(raw, Marker)
	if !found {
		return raw
	}
	return strings.TrimPrefix(rest, ":")
}
