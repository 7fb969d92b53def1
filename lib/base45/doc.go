// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package base45 implements the base45 text encoding (RFC 9285) used
// by health-certificate QR codes.
//
// Base45 maps every two bytes to three characters from a 45-symbol
// alphabet that fits the QR alphanumeric mode, and a trailing single
// byte to two characters. [Decode] reports malformed text through
// three sentinel errors, wrapped in a [*DecodeError] that records
// where decoding stopped:
//
//   - [ErrInvalidCharacter] -- a character outside the alphabet
//   - [ErrInvalidLength] -- a trailing group of a single character
//   - [ErrValueOverflow] -- a group whose value does not fit its bytes
//
// [Encode] is the reference encoder. The decoder is tested against it
// for round-trip fidelity, and the CLI uses it to build payloads.
package base45
