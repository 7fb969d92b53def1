// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Nesting bounds accepted by the underlying decoder.
const (
	MinNesting     = 4
	MaxNesting     = 65535
	DefaultNesting = 32
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding. Used to
// build payloads from JSON; decoded certificate trees are re-encoded
// by lib/envelope, which must preserve map order.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// RawMessage is a raw encoded CBOR value.
type RawMessage = cbor.RawMessage

// Decoder reads untrusted CBOR with a bounded nesting depth and
// renders it as diagnostic notation under the same bound. It is
// immutable and safe for concurrent use.
type Decoder struct {
	mode cbor.DecMode
	diag cbor.DiagMode
}

// NewDecoder returns a Decoder that rejects data nested deeper than
// nesting levels of arrays, maps and tags.
func NewDecoder(nesting int) (*Decoder, error) {
	if nesting < MinNesting || nesting > MaxNesting {
		return nil, fmt.Errorf("codec: nesting %d outside [%d, %d]", nesting, MinNesting, MaxNesting)
	}
	mode, err := cbor.DecOptions{
		MaxNestedLevels: nesting,
		// Certificate maps are inspected, not interpreted: duplicate
		// keys are kept by the tree walker in lib/envelope and must
		// not be rejected here.
		DupMapKey: cbor.DupMapKeyQuiet,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("codec: CBOR decoder initialization failed: %w", err)
	}
	diag, err := cbor.DiagOptions{MaxNestedLevels: nesting}.DiagMode()
	if err != nil {
		return nil, fmt.Errorf("codec: CBOR diagnostic mode initialization failed: %w", err)
	}
	return &Decoder{mode: mode, diag: diag}, nil
}

// Wellformed checks that data is exactly one well-formed CBOR data
// item within the nesting bound.
func (decoder *Decoder) Wellformed(data []byte) error {
	return decoder.mode.Wellformed(data)
}

// UnmarshalFirst decodes the first CBOR data item in data into v and
// returns the bytes that follow it.
func (decoder *Decoder) UnmarshalFirst(data []byte, v any) ([]byte, error) {
	return decoder.mode.UnmarshalFirst(data, v)
}

// IsNestingError reports whether err was caused by data nested beyond
// a Decoder's bound.
func IsNestingError(err error) bool {
	var nestingError *cbor.MaxNestedLevelError
	return errors.As(err, &nestingError)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data. Data nested within the decoder's bound
// always renders.
func (decoder *Decoder) Diagnose(data []byte) (string, error) {
	return decoder.diag.Diagnose(data)
}
