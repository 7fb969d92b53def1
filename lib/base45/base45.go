// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package base45

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet is the base45 symbol table. A symbol's value is its index.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

const base = 45

var (
	ErrInvalidCharacter = errors.New("base45: invalid character")
	ErrInvalidLength    = errors.New("base45: invalid length")
	ErrValueOverflow    = errors.New("base45: group value overflow")
)

// DecodeError describes where and why [Decode] rejected its input.
// Err is one of the package sentinels; errors.Is matches against it.
type DecodeError struct {
	// Err is the sentinel describing the failure.
	Err error

	// Offset is the character index of the offending character or
	// the start of the offending group.
	Offset int

	// Detail is extra context (the character, or the group value).
	Detail string
}

func (err *DecodeError) Error() string {
	if err.Detail == "" {
		return fmt.Sprintf("%v at offset %d", err.Err, err.Offset)
	}
	return fmt.Sprintf("%v at offset %d: %s", err.Err, err.Offset, err.Detail)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// decodeTable maps an ASCII byte to its symbol value, or -1.
var decodeTable = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		table[Alphabet[i]] = int8(i)
	}
	return table
}()

// Decode converts base45 text to bytes. Empty text decodes to an
// empty, non-nil slice.
func Decode(text string) ([]byte, error) {
	if len(text)%3 == 1 {
		return nil, &DecodeError{
			Err:    ErrInvalidLength,
			Offset: len(text) - 1,
			Detail: fmt.Sprintf("%d characters leave a single trailing character", len(text)),
		}
	}

	output := make([]byte, 0, len(text)/3*2+1)
	for offset := 0; offset < len(text); offset += 3 {
		groupLength := min(3, len(text)-offset)

		value := 0
		multiplier := 1
		for i := range groupLength {
			symbol := decodeTable[text[offset+i]]
			if symbol < 0 {
				return nil, &DecodeError{
					Err:    ErrInvalidCharacter,
					Offset: offset + i,
					Detail: fmt.Sprintf("%q", text[offset+i]),
				}
			}
			value += int(symbol) * multiplier
			multiplier *= base
		}

		if groupLength == 3 {
			if value > 0xffff {
				return nil, &DecodeError{
					Err:    ErrValueOverflow,
					Offset: offset,
					Detail: fmt.Sprintf("group %q is %d, above 65535", text[offset:offset+3], value),
				}
			}
			output = append(output, byte(value>>8), byte(value))
			continue
		}

		if value > 0xff {
			return nil, &DecodeError{
				Err:    ErrValueOverflow,
				Offset: offset,
				Detail: fmt.Sprintf("trailing group %q is %d, above 255", text[offset:], value),
			}
		}
		output = append(output, byte(value))
	}
	return output, nil
}

// Encode converts bytes to base45 text.
func Encode(data []byte) string {
	var builder strings.Builder
	builder.Grow(len(data)/2*3 + 2)

	for i := 0; i+1 < len(data); i += 2 {
		value := int(data[i])<<8 | int(data[i+1])
		builder.WriteByte(Alphabet[value%base])
		builder.WriteByte(Alphabet[value/base%base])
		builder.WriteByte(Alphabet[value/(base*base)])
	}
	if len(data)%2 == 1 {
		value := int(data[len(data)-1])
		builder.WriteByte(Alphabet[value%base])
		builder.WriteByte(Alphabet[value/base])
	}
	return builder.String()
}
