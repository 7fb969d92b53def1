// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/bureau-foundation/dcc/lib/base45"
	"github.com/bureau-foundation/dcc/lib/inflate"
)

// Open runs the envelope stages on base45 text: decode, inflate when
// the zlib lead byte is present (the raw bytes otherwise), parse.
// The result is not unwrapped. Errors wrap the sentinel of the stage
// that failed: a base45 sentinel, inflate.ErrInflateFailed,
// ErrStructuredParse or ErrTooDeep.
func (decoder *Decoder) Open(text string) (Value, error) {
	decoded, err := base45.Decode(text)
	if err != nil {
		return nil, err
	}
	buf, err := decoder.Payload(decoded)
	if err != nil {
		return nil, err
	}
	return decoder.Decode(buf)
}

// Payload returns the bytes the structured stage parses for a decoded
// base45 buffer: the inflated stream when decoded is compressed, and
// decoded itself when it is not.
func (decoder *Decoder) Payload(decoded []byte) ([]byte, error) {
	inflated, compressed, err := inflate.Maybe(decoded, decoder.inflateLimit)
	if err != nil {
		return nil, err
	}
	if !compressed {
		return decoded, nil
	}
	return inflated, nil
}

// Unwrap returns a copy of value in which every byte string has been
// replaced by the unwrapped envelope it contains, or by its base64
// text when it is not an envelope. value itself is not modified.
func (decoder *Decoder) Unwrap(value Value) (Value, error) {
	return decoder.unwrap(value, 0)
}

func (decoder *Decoder) unwrap(value Value, depth int) (Value, error) {
	if depth > decoder.maxDepth {
		return nil, fmt.Errorf("%w: depth %d exceeds %d", ErrTooDeep, depth, decoder.maxDepth)
	}

	switch node := value.(type) {
	case ByteString:
		return decoder.unwrapBytes(node, depth)

	case Array:
		result := make(Array, len(node))
		for index, element := range node {
			unwrapped, err := decoder.unwrap(element, depth+1)
			if err != nil {
				return nil, err
			}
			result[index] = unwrapped
		}
		return result, nil

	case Map:
		result := make(Map, len(node))
		for index, pair := range node {
			key, err := decoder.unwrap(pair.Key, depth+1)
			if err != nil {
				return nil, err
			}
			element, err := decoder.unwrap(pair.Value, depth+1)
			if err != nil {
				return nil, err
			}
			result[index] = Pair{Key: key, Value: element}
		}
		return result, nil

	case Tagged:
		content, err := decoder.unwrap(node.Content, depth+1)
		if err != nil {
			return nil, err
		}
		return Tagged{Number: node.Number, Content: content}, nil

	default:
		return value, nil
	}
}

// unwrapBytes treats the bytes of a byte string as the text of a
// nested envelope.
func (decoder *Decoder) unwrapBytes(node ByteString, depth int) (Value, error) {
	inner, err := decoder.Open(string(node))
	if err != nil {
		if errors.Is(err, ErrTooDeep) {
			return nil, err
		}
		return TextString(base64.StdEncoding.EncodeToString(node)), nil
	}
	return decoder.unwrap(inner, depth+1)
}
