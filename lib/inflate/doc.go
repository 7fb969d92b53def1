// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inflate detects and decompresses zlib-framed DEFLATE data in
// decoded certificate payloads.
//
// Certificate payloads carry no compression flag. A buffer is treated
// as compressed when, and only when, its first byte is 0x78 (the zlib
// CMF byte for a 32 KiB window). No other header fields are checked:
// historical payloads are either raw CBOR or zlib-compressed CBOR, and
// raw CBOR never begins with 0x78 in practice (it would be a text
// string of 24+ bytes at top level).
//
// Inflation uses github.com/klauspost/compress/zlib and is bounded by a
// caller-supplied output limit.
package inflate
