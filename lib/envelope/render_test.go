// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseView(t *testing.T) {
	for _, view := range Views {
		parsed, err := ParseView(string(view))
		if err != nil || parsed != view {
			t.Errorf("ParseView(%q) = %q, %v", view, parsed, err)
		}
	}
	if _, err := ParseView("yaml"); err == nil {
		t.Error("ParseView(yaml) succeeded")
	}
}

func TestViewNext(t *testing.T) {
	if ViewHex.Next() != ViewDiag || ViewDiag.Next() != ViewJSON || ViewJSON.Next() != ViewHex {
		t.Error("Next does not cycle hex -> diag -> json -> hex")
	}
}

func TestRenderHex(t *testing.T) {
	value := Map{{Key: TextString("a"), Value: Uint(1)}}
	got, err := newDecoder(t, 0).Render(value, ViewHex)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "a1616101" {
		t.Errorf("Render hex = %q, want a1616101", got)
	}
	if empty, _ := newDecoder(t, 0).Render(value, ""); empty != got {
		t.Errorf("empty view = %q, want hex %q", empty, got)
	}
}

func TestRenderDiag(t *testing.T) {
	value := Array{ByteString{0xa1, 0x63}, TextString("x"), Int(-5)}
	got, err := newDecoder(t, 0).Render(value, ViewDiag)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, fragment := range []string{"h'a163'", `"x"`, "-5"} {
		if !strings.Contains(got, fragment) {
			t.Errorf("Render diag = %q, missing %q", got, fragment)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	value := Map{
		{Key: TextString("b"), Value: Uint(1)},
		{Key: TextString("a"), Value: ByteString{0x01, 0x02}},
		{Key: Int(5), Value: Tagged{Number: 1, Content: Int(-1)}},
		{Key: TextString("f"), Value: Other{0xf5}},
		{Key: TextString("n"), Value: Other{0xf6}},
		{Key: TextString("h"), Value: Other{0xf9, 0x3c, 0x00}},
		{Key: TextString("list"), Value: Array{TextString("q\"uote"), Array{}}},
	}
	got, err := newDecoder(t, 0).Render(value, ViewJSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `{"b":1,"a":"AQI=","5":{"tag":1,"content":-1},"f":true,"n":null,"h":1,"list":["q\"uote",[]]}`
	if got != want {
		t.Errorf("Render json =\n  %s\nwant\n  %s", got, want)
	}
	if !json.Valid([]byte(got)) {
		t.Error("Render json is not valid JSON")
	}
}

func TestRenderJSONUnrepresentable(t *testing.T) {
	value := Map{
		{Key: Array{Uint(1)}, Value: Other{0xf9, 0x7e, 0x00}},
		{Key: TextString("big"), Value: Integer{Negative: true, Argument: 1<<64 - 1}},
	}
	got, err := newDecoder(t, 0).Render(value, ViewJSON)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !json.Valid([]byte(got)) {
		t.Fatalf("Render json = %s, not valid JSON", got)
	}
	for _, fragment := range []string{`"[1]":"NaN"`, `"big":-18446744073709551616`} {
		if !strings.Contains(got, fragment) {
			t.Errorf("Render json = %s, missing %s", got, fragment)
		}
	}
}

func TestRenderUnknownView(t *testing.T) {
	if _, err := newDecoder(t, 0).Render(Uint(1), View("xml")); err == nil {
		t.Error("Render with unknown view succeeded")
	}
}

func TestRenderDeepTree(t *testing.T) {
	decoder := newDecoder(t, 64)
	value, err := decoder.Decode(append(bytes.Repeat([]byte{0x81}, 40), 0x01))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	tests := map[View]string{
		ViewHex:  strings.Repeat("81", 40) + "01",
		ViewDiag: strings.Repeat("[", 40) + "1" + strings.Repeat("]", 40),
		ViewJSON: strings.Repeat("[", 40) + "1" + strings.Repeat("]", 40),
	}
	for view, want := range tests {
		got, err := decoder.Render(value, view)
		if err != nil {
			t.Errorf("Render %s: %v", view, err)
			continue
		}
		if got != want {
			t.Errorf("Render %s = %q, want %q", view, got, want)
		}
	}
}
