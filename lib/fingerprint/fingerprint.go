// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint derives a stable identifier for a raw QR payload
// so log records and watch output can be correlated with an input
// without repeating certificate contents.
package fingerprint

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte BLAKE3 keyed digest of a raw payload.
type Fingerprint [32]byte

// domainKey separates payload fingerprints from any other BLAKE3 use
// of the same bytes. ASCII "dcc.payload", zero-padded to 32 bytes.
// Changing it changes every fingerprint.
var domainKey = [32]byte{
	'd', 'c', 'c', '.', 'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// shortLength is the number of hex characters in [Fingerprint.Short].
const shortLength = 12

// Of returns the fingerprint of raw.
func Of(raw string) Fingerprint {
	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(domainKey[:])
	if err != nil {
		panic("fingerprint: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(raw))
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint
}

// String returns the full lowercase hex digest.
func (fingerprint Fingerprint) String() string {
	return hex.EncodeToString(fingerprint[:])
}

// Short returns the first 12 hex characters, enough to tell payloads
// apart in a log stream.
func (fingerprint Fingerprint) Short() string {
	return fingerprint.String()[:shortLength]
}
