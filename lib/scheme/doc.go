// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scheme validates and removes the "HC1:" scheme marker that
// prefixes health-certificate QR payloads.
//
// [Strip] never fails. Its [Result] is either a stripped payload or a
// warning describing one of the two historical forms: a marker without
// the trailing colon, or no marker at all. [Payload] returns the text
// later decoding stages should consume in every case, so that
// historical payloads keep decoding.
//
// This package depends on no other dcc packages.
package scheme
