// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewer is an interactive terminal front end for the decoding
// pipeline.
//
// The screen holds a multi-line input above four panes, one per
// pipeline view. Every edit of the input is a text-changed event: the
// panes are recomputed from the new text through [present.Render].
// Pasting a scanned "HC1:" payload shows the prefix, the base45
// bytes, the inflated bytes and the decoded tree at once.
//
// Keys:
//
//   - tab cycles the structured pane through hex, diag and json
//   - ctrl+l clears the input
//   - esc or ctrl+c quits
//
// The json view is syntax highlighted with Chroma. [Model] is a
// bubbletea model; [Run] starts a full-screen program around it.
package viewer
