// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inflate

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibLeadByte is the first byte that marks a buffer as compressed.
const ZlibLeadByte = 0x78

// DefaultLimit is the default maximum inflated size. Real certificate
// payloads are a few hundred bytes; anything near this size is a
// decompression bomb.
const DefaultLimit = 4 << 20

// ErrInflateFailed wraps every decompression failure.
var ErrInflateFailed = errors.New("inflate: failed")

// Detect reports whether buf looks like a zlib stream.
func Detect(buf []byte) bool {
	return len(buf) > 0 && buf[0] == ZlibLeadByte
}

// Maybe inflates buf when [Detect] recognizes it. When buf is not
// compressed it returns (nil, false, nil) without touching buf. When
// it is, it returns the inflated bytes and true, or an error wrapping
// [ErrInflateFailed]. A limit of zero or less means [DefaultLimit].
func Maybe(buf []byte, limit int64) ([]byte, bool, error) {
	if !Detect(buf) {
		return nil, false, nil
	}
	output, err := Inflate(buf, limit)
	return output, true, err
}

// Inflate decompresses a zlib stream unconditionally.
func Inflate(buf []byte, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	reader, err := zlib.NewReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInflateFailed, err)
	}
	defer reader.Close()

	// Read one byte past the limit so an exactly-full buffer is
	// distinguishable from an oversized stream.
	output, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInflateFailed, err)
	}
	if int64(len(output)) > limit {
		return nil, fmt.Errorf("%w: inflated size exceeds %d bytes", ErrInflateFailed, limit)
	}
	return output, nil
}

// Deflate compresses data as a zlib stream at the given level
// (zlib.DefaultCompression, zlib.BestCompression, ...). The output
// always begins with [ZlibLeadByte].
func Deflate(data []byte, level int) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buffer, level)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return buffer.Bytes(), nil
}
