// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hexfmt renders byte buffers as lowercase hex for inspection
// and reads hex dumps back.
package hexfmt

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// Encode returns the lowercase hex form of data, two digits per byte.
// Empty or nil data yields "".
func Encode(data []byte) string {
	return hex.EncodeToString(data)
}

// Wrap breaks a hex string into lines of at most width characters,
// never splitting a byte. A width below 2 returns encoded unchanged.
func Wrap(encoded string, width int) string {
	width -= width % 2
	if width < 2 || len(encoded) <= width {
		return encoded
	}
	var builder strings.Builder
	for offset := 0; offset < len(encoded); offset += width {
		if offset > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(encoded[offset:min(offset+width, len(encoded))])
	}
	return builder.String()
}

// Decode strips whitespace from a hex dump and decodes it. Whitespace
// between digit pairs is allowed ("a1 63 6b" or "a1636b").
func Decode(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}
