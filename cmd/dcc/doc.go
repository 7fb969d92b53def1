// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Dcc inspects digital certificate QR payloads. It shows a payload at
// each decoding stage (marker stripping, base45, zlib inflation and
// CBOR decoding with nested envelopes unwrapped), one command per
// stage, all stages at once (inspect), a stream of payloads (watch)
// or interactively (view).
package main
