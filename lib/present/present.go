// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package present writes pipeline views into named output slots.
//
// A front end (the terminal viewer, the watch command) owns a set of
// [Slots], one per view. [Render] computes each view for an input and
// writes it into the slot of the same name. A front end without a
// slot for some view simply does not show it: the view is skipped and
// the remaining slots are still filled.
package present

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bureau-foundation/dcc/lib/pipeline"
)

// Slot names, one per view.
const (
	SlotPrefix     = string(pipeline.StagePrefix)
	SlotBase45     = string(pipeline.StageBase45)
	SlotInflate    = string(pipeline.StageInflate)
	SlotStructured = string(pipeline.StageStructured)
)

// Names lists the slot names in pipeline order.
var Names = []string{SlotPrefix, SlotBase45, SlotInflate, SlotStructured}

// Valid reports whether name is a slot name.
func Valid(name string) bool {
	return slices.Contains(Names, name)
}

// Slot receives the text of one view.
type Slot interface {
	Set(text string)
}

// Slots looks up output slots by name.
type Slots interface {
	Slot(name string) (Slot, bool)
}

// Views is the part of [pipeline.Pipeline] that Render uses.
type Views interface {
	PrefixOnly(raw string) string
	AfterBase45(raw string) string
	AfterInflate(raw string) string
	AfterStructuredDecode(raw string) string
}

// Render computes every view of raw that has a slot and writes it.
// Views without a slot are not computed.
func Render(views Views, raw string, slots Slots) {
	compute := map[string]func(string) string{
		SlotPrefix:     views.PrefixOnly,
		SlotBase45:     views.AfterBase45,
		SlotInflate:    views.AfterInflate,
		SlotStructured: views.AfterStructuredDecode,
	}
	for _, name := range Names {
		slot, ok := slots.Slot(name)
		if !ok {
			continue
		}
		slot.Set(compute[name](raw))
	}
}

// Fill writes the views of an already computed report into slots.
func Fill(report pipeline.Report, slots Slots) {
	for _, name := range Names {
		if slot, ok := slots.Slot(name); ok {
			slot.Set(report.View(pipeline.Stage(name)))
		}
	}
}

// Text is an in-memory slot.
type Text struct {
	value string
}

// Set replaces the slot's text.
func (text *Text) Set(value string) { text.value = value }

// String returns the slot's text.
func (text *Text) String() string { return text.value }

// MapSlots holds in-memory slots by name. Only names present in the
// map are slots.
type MapSlots map[string]*Text

// NewMapSlots returns MapSlots with an empty slot for each name. With
// no names it creates all four.
func NewMapSlots(names ...string) MapSlots {
	if len(names) == 0 {
		names = Names
	}
	slots := make(MapSlots, len(names))
	for _, name := range names {
		slots[name] = &Text{}
	}
	return slots
}

// Slot implements [Slots].
func (slots MapSlots) Slot(name string) (Slot, bool) {
	text, ok := slots[name]
	if !ok {
		return nil, false
	}
	return text, true
}

// Get returns the text of the named slot, or "" when there is none.
func (slots MapSlots) Get(name string) string {
	if text, ok := slots[name]; ok {
		return text.value
	}
	return ""
}

// WriterSlots writes each Set as a labelled line, "name: text", to an
// io.Writer. Continuation lines of multi-line text are indented under
// the label. The first write error is kept and returned by Err; later
// writes are dropped.
type WriterSlots struct {
	writer io.Writer
	names  map[string]bool
	err    error
}

// NewWriterSlots returns WriterSlots for the given names, or for all
// four when names is empty.
func NewWriterSlots(writer io.Writer, names ...string) *WriterSlots {
	if len(names) == 0 {
		names = Names
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return &WriterSlots{writer: writer, names: set}
}

// Slot implements [Slots].
func (slots *WriterSlots) Slot(name string) (Slot, bool) {
	if !slots.names[name] {
		return nil, false
	}
	return writerSlot{slots: slots, name: name}, true
}

// Err returns the first write error.
func (slots *WriterSlots) Err() error {
	return slots.err
}

func (slots *WriterSlots) write(name, text string) {
	if slots.err != nil {
		return
	}
	indent := "\n" + strings.Repeat(" ", len(name)+2)
	text = strings.ReplaceAll(text, "\n", indent)
	if _, err := fmt.Fprintf(slots.writer, "%s: %s\n", name, text); err != nil {
		slots.err = fmt.Errorf("writing %s slot: %w", name, err)
	}
}

type writerSlot struct {
	slots *WriterSlots
	name  string
}

func (slot writerSlot) Set(text string) {
	slot.slots.write(slot.name, text)
}
