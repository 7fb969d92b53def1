// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope decodes certificate CBOR into a [Value] tree and
// recursively opens envelopes nested inside it.
//
// A [Value] is one of [ByteString], [TextString], [Integer], [Array],
// [Map], [Tagged] or [Other]. Maps are ordered pair lists: order and
// duplicate keys are kept exactly as they appear on the wire, because
// the tree is for inspection and must re-encode to what was read.
//
// [Decoder.Unwrap] walks a tree and treats every byte string as a
// possible nested envelope: its bytes are read as base45 text,
// inflated when they carry a zlib header, and decoded as CBOR, and the
// result replaces the byte string. A byte string that fails any of
// those steps is replaced by its base64 text. The walk counts depth
// explicitly (containers and envelopes both add a level) and stops
// with [ErrTooDeep] once the configured bound is passed; that error is
// never downgraded to a base64 fallback.
//
// [Decoder.Render] turns a tree into one of three views: lowercase hex of its
// CBOR encoding, RFC 8949 diagnostic notation, or a JSON projection.
package envelope
