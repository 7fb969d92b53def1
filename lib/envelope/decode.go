// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bureau-foundation/dcc/lib/codec"
	"github.com/bureau-foundation/dcc/lib/inflate"
)

var (
	ErrStructuredParse = errors.New("envelope: structured parse error")
	ErrTooDeep         = errors.New("envelope: nesting too deep")
)

// breakByte terminates an indefinite-length array or map.
const breakByte = 0xff

// Options configures a [Decoder].
type Options struct {
	// MaxDepth bounds both the CBOR nesting of a single buffer and
	// the depth of the unwrapped tree. Zero means
	// codec.DefaultNesting.
	MaxDepth int

	// InflateLimit bounds the inflated size of each nested envelope.
	// Zero means inflate.DefaultLimit.
	InflateLimit int64
}

// Decoder parses CBOR into [Value] trees and opens nested envelopes.
// It holds no mutable state and is safe for concurrent use.
type Decoder struct {
	codec        *codec.Decoder
	maxDepth     int
	inflateLimit int64
}

// NewDecoder returns a Decoder for options.
func NewDecoder(options Options) (*Decoder, error) {
	maxDepth := options.MaxDepth
	if maxDepth == 0 {
		maxDepth = codec.DefaultNesting
	}
	cborDecoder, err := codec.NewDecoder(maxDepth)
	if err != nil {
		return nil, fmt.Errorf("envelope: max depth: %w", err)
	}
	inflateLimit := options.InflateLimit
	if inflateLimit <= 0 {
		inflateLimit = inflate.DefaultLimit
	}
	return &Decoder{codec: cborDecoder, maxDepth: maxDepth, inflateLimit: inflateLimit}, nil
}

// Decode parses buf as exactly one CBOR data item. Malformed input
// wraps [ErrStructuredParse]; input nested beyond the depth bound
// wraps [ErrTooDeep]. buf is not retained.
func (decoder *Decoder) Decode(buf []byte) (Value, error) {
	if err := decoder.codec.Wellformed(buf); err != nil {
		if codec.IsNestingError(err) {
			return nil, fmt.Errorf("%w: %v", ErrTooDeep, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrStructuredParse, err)
	}

	value, rest, err := decoder.parseItem(buf, 0)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrStructuredParse, len(rest))
	}
	return value, nil
}

// parseItem decodes the first data item of data. Containers and tags
// are walked here so that map order and duplicate keys survive;
// strings and simple values are delegated to the CBOR library.
func (decoder *Decoder) parseItem(data []byte, depth int) (Value, []byte, error) {
	if depth > decoder.maxDepth {
		return nil, nil, fmt.Errorf("%w: depth %d exceeds %d", ErrTooDeep, depth, decoder.maxDepth)
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: unexpected end of data", ErrStructuredParse)
	}

	major := data[0] >> 5
	switch major {
	case majorUnsigned, majorNegative:
		argument, size, _, err := readHead(data)
		if err != nil {
			return nil, nil, err
		}
		return Integer{Negative: major == majorNegative, Argument: argument}, data[size:], nil

	case majorBytes:
		var value []byte
		rest, err := decoder.codec.UnmarshalFirst(data, &value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: byte string: %v", ErrStructuredParse, err)
		}
		if value == nil {
			value = []byte{}
		}
		return ByteString(value), rest, nil

	case majorText:
		var value string
		rest, err := decoder.codec.UnmarshalFirst(data, &value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: text string: %v", ErrStructuredParse, err)
		}
		return TextString(value), rest, nil

	case majorArray:
		return decoder.parseArray(data, depth)

	case majorMap:
		return decoder.parseMap(data, depth)

	case majorTag:
		number, size, _, err := readHead(data)
		if err != nil {
			return nil, nil, err
		}
		content, rest, err := decoder.parseItem(data[size:], depth+1)
		if err != nil {
			return nil, nil, err
		}
		return Tagged{Number: number, Content: content}, rest, nil

	default:
		var raw codec.RawMessage
		rest, err := decoder.codec.UnmarshalFirst(data, &raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: simple value: %v", ErrStructuredParse, err)
		}
		return Other(raw), rest, nil
	}
}

func (decoder *Decoder) parseArray(data []byte, depth int) (Value, []byte, error) {
	count, size, indefinite, err := readHead(data)
	if err != nil {
		return nil, nil, err
	}
	rest := data[size:]

	array := make(Array, 0, min(count, uint64(len(rest))))
	for index := uint64(0); indefinite || index < count; index++ {
		if indefinite && len(rest) > 0 && rest[0] == breakByte {
			return array, rest[1:], nil
		}
		var element Value
		element, rest, err = decoder.parseItem(rest, depth+1)
		if err != nil {
			return nil, nil, err
		}
		array = append(array, element)
	}
	return array, rest, nil
}

func (decoder *Decoder) parseMap(data []byte, depth int) (Value, []byte, error) {
	count, size, indefinite, err := readHead(data)
	if err != nil {
		return nil, nil, err
	}
	rest := data[size:]

	pairs := make(Map, 0, min(count, uint64(len(rest)/2)))
	for index := uint64(0); indefinite || index < count; index++ {
		if indefinite && len(rest) > 0 && rest[0] == breakByte {
			return pairs, rest[1:], nil
		}
		var key, value Value
		key, rest, err = decoder.parseItem(rest, depth+1)
		if err != nil {
			return nil, nil, err
		}
		value, rest, err = decoder.parseItem(rest, depth+1)
		if err != nil {
			return nil, nil, err
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs, rest, nil
}

// readHead decodes the initial byte and argument of a data item. For
// an indefinite-length item the argument is zero and indefinite is
// true.
func readHead(data []byte) (argument uint64, size int, indefinite bool, err error) {
	info := data[0] & 0x1f
	switch {
	case info < 24:
		return uint64(info), 1, false, nil
	case info == 31:
		return 0, 1, true, nil
	case info > 27:
		return 0, 0, false, fmt.Errorf("%w: reserved additional information %d", ErrStructuredParse, info)
	}

	width := 1 << (info - 24)
	if len(data) < 1+width {
		return 0, 0, false, fmt.Errorf("%w: truncated argument", ErrStructuredParse)
	}
	switch width {
	case 1:
		argument = uint64(data[1])
	case 2:
		argument = uint64(binary.BigEndian.Uint16(data[1:]))
	case 4:
		argument = uint64(binary.BigEndian.Uint32(data[1:]))
	default:
		argument = binary.BigEndian.Uint64(data[1:])
	}
	return argument, 1 + width, false, nil
}
