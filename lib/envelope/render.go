// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/bureau-foundation/dcc/lib/hexfmt"
)

// View selects how [Decoder.Render] presents a tree.
type View string

const (
	// ViewHex is the lowercase hex of the tree's CBOR encoding.
	ViewHex View = "hex"
	// ViewDiag is RFC 8949 diagnostic notation.
	ViewDiag View = "diag"
	// ViewJSON is a compact JSON projection.
	ViewJSON View = "json"
)

// Views lists every view in display order.
var Views = []View{ViewHex, ViewDiag, ViewJSON}

// ParseView parses a view name.
func ParseView(name string) (View, error) {
	for _, view := range Views {
		if string(view) == name {
			return view, nil
		}
	}
	return "", fmt.Errorf("unknown view %q (want hex, diag or json)", name)
}

// Next returns the view after view in [Views], wrapping around.
func (view View) Next() View {
	for index, candidate := range Views {
		if candidate == view {
			return Views[(index+1)%len(Views)]
		}
	}
	return ViewHex
}

// Render presents value in the given view. Any tree the decoder
// produced renders in every view.
func (decoder *Decoder) Render(value Value, view View) (string, error) {
	switch view {
	case ViewHex, "":
		return hexfmt.Encode(Encode(value)), nil
	case ViewDiag:
		return decoder.codec.Diagnose(Encode(value))
	case ViewJSON:
		var buffer bytes.Buffer
		if err := decoder.writeJSON(&buffer, value); err != nil {
			return "", err
		}
		return buffer.String(), nil
	default:
		return "", fmt.Errorf("unknown view %q", view)
	}
}

// writeJSON writes the JSON projection of value. Maps become objects
// with pairs in tree order (duplicate keys included), byte strings
// become base64 text, tags become {"tag": n, "content": ...} and
// simple values that JSON cannot express become their diagnostic
// notation.
func (decoder *Decoder) writeJSON(buffer *bytes.Buffer, value Value) error {
	switch node := value.(type) {
	case ByteString:
		return writeJSONString(buffer, base64.StdEncoding.EncodeToString(node))

	case TextString:
		return writeJSONString(buffer, string(node))

	case Integer:
		buffer.WriteString(node.String())
		return nil

	case Array:
		buffer.WriteByte('[')
		for index, element := range node {
			if index > 0 {
				buffer.WriteByte(',')
			}
			if err := decoder.writeJSON(buffer, element); err != nil {
				return err
			}
		}
		buffer.WriteByte(']')
		return nil

	case Map:
		buffer.WriteByte('{')
		for index, pair := range node {
			if index > 0 {
				buffer.WriteByte(',')
			}
			key, err := decoder.jsonKey(pair.Key)
			if err != nil {
				return err
			}
			if err := writeJSONString(buffer, key); err != nil {
				return err
			}
			buffer.WriteByte(':')
			if err := decoder.writeJSON(buffer, pair.Value); err != nil {
				return err
			}
		}
		buffer.WriteByte('}')
		return nil

	case Tagged:
		buffer.WriteString(`{"tag":`)
		buffer.WriteString(strconv.FormatUint(node.Number, 10))
		buffer.WriteString(`,"content":`)
		if err := decoder.writeJSON(buffer, node.Content); err != nil {
			return err
		}
		buffer.WriteByte('}')
		return nil

	case Other:
		return decoder.writeJSONSimple(buffer, node)

	default:
		return fmt.Errorf("envelope: unexpected value type %T", value)
	}
}

// jsonKey converts a map key to an object member name: text as-is,
// integers in decimal, anything else in diagnostic notation.
func (decoder *Decoder) jsonKey(key Value) (string, error) {
	switch node := key.(type) {
	case TextString:
		return string(node), nil
	case Integer:
		return node.String(), nil
	default:
		return decoder.codec.Diagnose(Encode(key))
	}
}

func writeJSONString(buffer *bytes.Buffer, text string) error {
	encoded, err := json.Marshal(text)
	if err != nil {
		return err
	}
	buffer.Write(encoded)
	return nil
}

func (decoder *Decoder) writeJSONSimple(buffer *bytes.Buffer, raw Other) error {
	var decoded any
	if _, err := decoder.codec.UnmarshalFirst(raw, &decoded); err != nil {
		return fmt.Errorf("envelope: simple value: %w", err)
	}

	switch typed := decoded.(type) {
	case nil, bool:
		encoded, _ := json.Marshal(typed)
		buffer.Write(encoded)
		return nil
	case float64:
		if !math.IsNaN(typed) && !math.IsInf(typed, 0) {
			buffer.WriteString(strconv.FormatFloat(typed, 'g', -1, 64))
			return nil
		}
	}

	notation, err := decoder.codec.Diagnose(raw)
	if err != nil {
		return err
	}
	return writeJSONString(buffer, notation)
}
