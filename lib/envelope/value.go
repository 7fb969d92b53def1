// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"encoding/binary"
	"math/big"
	"strconv"
)

// CBOR major types.
const (
	majorUnsigned byte = 0
	majorNegative byte = 1
	majorBytes    byte = 2
	majorText     byte = 3
	majorArray    byte = 4
	majorMap      byte = 5
	majorTag      byte = 6
	majorSimple   byte = 7
)

// Value is a decoded CBOR data item. The set of implementations is
// closed: ByteString, TextString, Integer, Array, Map, Tagged, Other.
type Value interface {
	// appendCBOR appends the item's encoding to dst.
	appendCBOR(dst []byte) []byte
}

// ByteString is a CBOR byte string (major type 2).
type ByteString []byte

// TextString is a CBOR text string (major type 3).
type TextString string

// Integer is a CBOR integer (major types 0 and 1). The represented
// value is Argument when Negative is false and -1-Argument when it is
// true, which covers the full CBOR range [-2^64, 2^64-1].
type Integer struct {
	Negative bool
	Argument uint64
}

// Array is a CBOR array (major type 4).
type Array []Value

// Pair is one key/value entry of a [Map].
type Pair struct {
	Key   Value
	Value Value
}

// Map is a CBOR map (major type 5) in wire order. Keys need not be
// unique.
type Map []Pair

// Tagged is a CBOR tag (major type 6) and the item it wraps.
type Tagged struct {
	Number  uint64
	Content Value
}

// Other holds the verbatim encoding of a major type 7 item: floats,
// booleans, null, undefined and other simple values.
type Other []byte

// Int returns the Integer for a signed value.
func Int(value int64) Integer {
	if value < 0 {
		return Integer{Negative: true, Argument: uint64(-1 - value)}
	}
	return Integer{Argument: uint64(value)}
}

// Uint returns the Integer for an unsigned value.
func Uint(value uint64) Integer {
	return Integer{Argument: value}
}

// Big returns the integer as a big.Int.
func (integer Integer) Big() *big.Int {
	result := new(big.Int).SetUint64(integer.Argument)
	if integer.Negative {
		result.Add(result, big.NewInt(1))
		result.Neg(result)
	}
	return result
}

// String returns the decimal representation.
func (integer Integer) String() string {
	if !integer.Negative {
		return strconv.FormatUint(integer.Argument, 10)
	}
	return integer.Big().String()
}

func (value ByteString) appendCBOR(dst []byte) []byte {
	dst = appendHead(dst, majorBytes, uint64(len(value)))
	return append(dst, value...)
}

func (value TextString) appendCBOR(dst []byte) []byte {
	dst = appendHead(dst, majorText, uint64(len(value)))
	return append(dst, value...)
}

func (value Integer) appendCBOR(dst []byte) []byte {
	if value.Negative {
		return appendHead(dst, majorNegative, value.Argument)
	}
	return appendHead(dst, majorUnsigned, value.Argument)
}

func (value Array) appendCBOR(dst []byte) []byte {
	dst = appendHead(dst, majorArray, uint64(len(value)))
	for _, element := range value {
		dst = element.appendCBOR(dst)
	}
	return dst
}

func (value Map) appendCBOR(dst []byte) []byte {
	dst = appendHead(dst, majorMap, uint64(len(value)))
	for _, pair := range value {
		dst = pair.Key.appendCBOR(dst)
		dst = pair.Value.appendCBOR(dst)
	}
	return dst
}

func (value Tagged) appendCBOR(dst []byte) []byte {
	dst = appendHead(dst, majorTag, value.Number)
	return value.Content.appendCBOR(dst)
}

func (value Other) appendCBOR(dst []byte) []byte {
	return append(dst, value...)
}

// Encode returns the CBOR encoding of value: definite lengths and the
// shortest argument encoding throughout, map pairs in tree order.
func Encode(value Value) []byte {
	return value.appendCBOR(nil)
}

// appendHead appends an initial byte and argument using the shortest
// form (RFC 8949 §4.2.1).
func appendHead(dst []byte, major byte, argument uint64) []byte {
	initial := major << 5
	switch {
	case argument < 24:
		return append(dst, initial|byte(argument))
	case argument <= 0xff:
		return append(dst, initial|24, byte(argument))
	case argument <= 0xffff:
		return binary.BigEndian.AppendUint16(append(dst, initial|25), uint16(argument))
	case argument <= 0xffffffff:
		return binary.BigEndian.AppendUint32(append(dst, initial|26), uint32(argument))
	default:
		return binary.BigEndian.AppendUint64(append(dst, initial|27), argument)
	}
}
