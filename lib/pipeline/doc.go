// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipeline runs the certificate decoding stages and exposes
// one view per stage.
//
// The four views are independent: each recomputes the earlier stages
// from the raw input, so a failure in one never suppresses another.
//
//   - [Pipeline.PrefixOnly] -- the payload after "HC1:", or a warning
//   - [Pipeline.AfterBase45] -- hex of the base45-decoded bytes
//   - [Pipeline.AfterInflate] -- hex of the inflated bytes; empty when
//     the bytes are not zlib-compressed
//   - [Pipeline.AfterStructuredDecode] -- the recursively unwrapped
//     CBOR tree in the configured view (hex, diag or json)
//
// The string views never fail. A stage error becomes a [Diagnostic],
// a compact JSON object naming the stage, an error code and a message.
// Callers that want Go errors use [Pipeline.Base45],
// [Pipeline.Inflate] and [Pipeline.Structured], which return a
// [*StageError].
//
// The inflate view and the structured view treat uncompressed bytes
// differently: the inflate view is empty, while the structured view
// parses the raw bytes. Both behaviors match historical payloads and
// are kept as they are.
//
// A Pipeline is immutable and safe for concurrent use.
package pipeline
