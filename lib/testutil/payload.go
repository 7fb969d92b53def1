// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"github.com/klauspost/compress/zlib"

	"github.com/bureau-foundation/dcc/lib/base45"
	"github.com/bureau-foundation/dcc/lib/codec"
	"github.com/bureau-foundation/dcc/lib/inflate"
	"github.com/bureau-foundation/dcc/lib/scheme"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Compress returns data as a zlib stream at the default level.
func Compress(t TB, data []byte) []byte {
	t.Helper()
	compressed, err := inflate.Deflate(data, zlib.DefaultCompression)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	return compressed
}

// EncodeEnvelope returns the base45 text for CBOR bytes, compressing
// them first when compress is true.
func EncodeEnvelope(t TB, cbor []byte, compress bool) string {
	t.Helper()
	if compress {
		cbor = Compress(t, cbor)
	}
	return base45.Encode(cbor)
}

// QR returns a complete "HC1:" payload for CBOR bytes.
func QR(t TB, cbor []byte, compress bool) string {
	t.Helper()
	return scheme.Marker + ":" + EncodeEnvelope(t, cbor, compress)
}

// Nest returns the CBOR encoding of a one-element array holding text
// as a byte string: the shape of an envelope embedded in another.
func Nest(t TB, text string) []byte {
	t.Helper()
	data, err := codec.Marshal([]any{[]byte(text)})
	if err != nil {
		t.Fatalf("nest: %v", err)
	}
	return data
}

// NestLevels wraps innermost CBOR in levels compressed envelopes and
// returns the outermost CBOR bytes (not yet base45-encoded).
func NestLevels(t TB, innermost []byte, levels int) []byte {
	t.Helper()
	current := innermost
	for range levels {
		current = Nest(t, EncodeEnvelope(t, current, true))
	}
	return current
}
