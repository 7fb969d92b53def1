// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bureau-foundation/dcc/lib/base45"
	"github.com/bureau-foundation/dcc/lib/envelope"
	"github.com/bureau-foundation/dcc/lib/inflate"
)

// Stage names a pipeline stage.
type Stage string

const (
	StagePrefix     Stage = "prefix"
	StageBase45     Stage = "base45"
	StageInflate    Stage = "inflate"
	StageStructured Stage = "structured"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StagePrefix, StageBase45, StageInflate, StageStructured}

// Code classifies a stage failure.
type Code string

const (
	CodeInvalidCharacter     Code = "invalid_character"
	CodeInvalidLength        Code = "invalid_length"
	CodeValueOverflow        Code = "value_overflow"
	CodeInflateFailed        Code = "inflate_failed"
	CodeStructuredParseError Code = "structured_parse_error"
	CodeTooDeep              Code = "too_deep"
	CodeInternal             Code = "internal"
)

// StageError reports which stage of a view failed. Err wraps the
// stage package's sentinel, so errors.Is(err, base45.ErrInvalidLength)
// and similar checks work on a StageError.
type StageError struct {
	// Stage is the view being computed.
	Stage Stage

	// Err is the underlying failure.
	Err error
}

func (err *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", err.Stage, err.Err)
}

func (err *StageError) Unwrap() error {
	return err.Err
}

// Code returns the failure code of the underlying error.
func (err *StageError) Code() Code {
	return classify(err.Err)
}

func classify(err error) Code {
	switch {
	case errors.Is(err, base45.ErrInvalidCharacter):
		return CodeInvalidCharacter
	case errors.Is(err, base45.ErrInvalidLength):
		return CodeInvalidLength
	case errors.Is(err, base45.ErrValueOverflow):
		return CodeValueOverflow
	case errors.Is(err, inflate.ErrInflateFailed):
		return CodeInflateFailed
	case errors.Is(err, envelope.ErrTooDeep):
		return CodeTooDeep
	case errors.Is(err, envelope.ErrStructuredParse):
		return CodeStructuredParseError
	default:
		return CodeInternal
	}
}

// Diagnostic is the displayable form of a stage failure.
type Diagnostic struct {
	Stage   Stage  `json:"stage"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Diagnose converts err into a Diagnostic. A *StageError anywhere in
// the chain supplies the stage; otherwise fallback is used.
func Diagnose(err error, fallback Stage) Diagnostic {
	diagnostic := Diagnostic{Stage: fallback, Code: classify(err), Message: err.Error()}
	var stageError *StageError
	if errors.As(err, &stageError) {
		diagnostic.Stage = stageError.Stage
		diagnostic.Message = stageError.Err.Error()
	}
	return diagnostic
}

// String renders the Diagnostic as a compact JSON object.
func (diagnostic Diagnostic) String() string {
	encoded, err := json.Marshal(diagnostic)
	if err != nil {
		// Three string fields always marshal.
		return fmt.Sprintf("%s: %s", diagnostic.Code, diagnostic.Message)
	}
	return string(encoded)
}
