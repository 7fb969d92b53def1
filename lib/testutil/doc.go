// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for dcc packages.
//
// [EncodeEnvelope] and [QR] build payloads the way an issuer does:
// CBOR bytes, optionally zlib-compressed, base45-encoded, and for QR
// the "HC1:" marker in front. [Nest] wraps an envelope as a byte string
// inside another, which is how tests exercise recursive unwrapping.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
