// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration shared by dcc packages.
//
// Certificate payloads are untrusted input, so decoding always goes
// through a [Decoder] built with an explicit nesting bound: data
// nested deeper than the bound is rejected before any tree is built,
// and [IsNestingError] lets callers distinguish that case from a
// plain syntax error.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// [Marshal] is used to build payloads, for example from JSON in
// "dcc encode":
//
//	data, err := codec.Marshal(value)
//
// For inspection:
//
//	decoder, err := codec.NewDecoder(codec.DefaultNesting)
//	err = decoder.Wellformed(data)
//	notation, err := decoder.Diagnose(data)
package codec
