// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/dcc/lib/envelope"
	"github.com/bureau-foundation/dcc/lib/pipeline"
	"github.com/bureau-foundation/dcc/lib/present"
	"github.com/bureau-foundation/dcc/lib/scheme"
	"github.com/bureau-foundation/dcc/lib/testutil"
)

func testModel(t *testing.T) Model {
	t.Helper()
	decoder, err := pipeline.New(pipeline.Options{})
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	return NewModel(decoder)
}

func update(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	return updated.(Model), command
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	for _, character := range text {
		model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	}
	return model
}

func TestNewModel(t *testing.T) {
	model := testModel(t)
	if model.Input() != "" {
		t.Errorf("input = %q, want empty", model.Input())
	}
	assertEmptyInputPanes(t, model)
	if model.StructuredView() != envelope.ViewHex {
		t.Errorf("view = %s, want hex", model.StructuredView())
	}
}

func TestModelTypingUpdatesPanes(t *testing.T) {
	model := typeText(t, testModel(t), "6BF")

	if model.Input() != "6BF" {
		t.Fatalf("input = %q, want 6BF", model.Input())
	}
	if got := model.Pane(present.SlotPrefix); got != "Warning: "+scheme.MessageNoHeader {
		t.Errorf("prefix pane = %q", got)
	}
	if got := model.Pane(present.SlotBase45); got != "789c" {
		t.Errorf("base45 pane = %q, want 789c", got)
	}
	if got := model.Pane(present.SlotInflate); !strings.Contains(got, `"code":"inflate_failed"`) {
		t.Errorf("inflate pane = %q, want an inflate diagnostic", got)
	}
}

func TestModelSetInput(t *testing.T) {
	model := testModel(t)
	model.SetInput(testutil.QR(t, []byte{0xa1, 0x61, 0x61, 0x01}, true))

	if got := model.Pane(present.SlotInflate); got != "a1616101" {
		t.Errorf("inflate pane = %q", got)
	}
	if got := model.Pane(present.SlotStructured); got != "a1616101" {
		t.Errorf("structured pane = %q", got)
	}
}

func TestModelCycleView(t *testing.T) {
	model := testModel(t)
	model.SetInput(testutil.QR(t, []byte{0xa1, 0x61, 0x61, 0x01}, true))

	tab := tea.KeyMsg{Type: tea.KeyTab}
	steps := []struct {
		view envelope.View
		pane string
	}{
		{envelope.ViewDiag, `{"a": 1}`},
		{envelope.ViewJSON, `{"a":1}`},
		{envelope.ViewHex, "a1616101"},
	}
	for _, step := range steps {
		model, _ = update(t, model, tab)
		if model.StructuredView() != step.view {
			t.Fatalf("view = %s, want %s", model.StructuredView(), step.view)
		}
		if got := model.Pane(present.SlotStructured); got != step.pane {
			t.Errorf("structured pane in %s = %q, want %q", step.view, got, step.pane)
		}
	}

	// Tab is a viewer key and never reaches the input.
	if strings.Contains(model.Input(), "\t") {
		t.Error("tab was typed into the input")
	}
}

func TestModelClear(t *testing.T) {
	model := typeText(t, testModel(t), "HC1:6BF")
	model, command := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlL})
	if command != nil {
		t.Error("clear returned a command")
	}
	if model.Input() != "" {
		t.Errorf("input after clear = %q", model.Input())
	}
	assertEmptyInputPanes(t, model)
}

// assertEmptyInputPanes checks the panes shown for an empty input: the
// missing-header warning in the prefix pane and nothing elsewhere.
func assertEmptyInputPanes(t *testing.T, model Model) {
	t.Helper()
	if got, want := model.Pane(present.SlotPrefix), "Warning: "+scheme.MessageNoHeader; got != want {
		t.Errorf("prefix pane = %q, want %q", got, want)
	}
	if !model.prefixWarning {
		t.Error("prefix pane is not marked as a warning")
	}
	for _, name := range present.Names[1:] {
		if model.Pane(name) != "" {
			t.Errorf("pane %s = %q, want empty", name, model.Pane(name))
		}
	}
}

func TestModelWarningFollowsInput(t *testing.T) {
	model := testModel(t)
	model.SetInput("HC1:6BF")
	if model.prefixWarning {
		t.Error("marked payload shown as a warning")
	}
	model.SetInput("6BF")
	if !model.prefixWarning {
		t.Error("payload without marker not shown as a warning")
	}
	model.SetInput("   ")
	assertEmptyInputPanes(t, model)
}

func TestModelQuit(t *testing.T) {
	for _, message := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, command := update(t, testModel(t), message)
		if command == nil {
			t.Fatalf("%s should return a command", message)
		}
		if _, isQuit := command().(tea.QuitMsg); !isQuit {
			t.Errorf("%s: expected QuitMsg", message)
		}
	}
}

func TestModelCopiesDoNotSharePanes(t *testing.T) {
	original := testModel(t)
	original.SetInput("HC1:6BF")

	changed := typeText(t, original, "A")
	if original.Pane(present.SlotBase45) != "789c" {
		t.Errorf("original pane changed to %q", original.Pane(present.SlotBase45))
	}
	if changed.Pane(present.SlotBase45) == "789c" {
		t.Error("updated copy kept the old pane")
	}
}

func TestModelView(t *testing.T) {
	model := testModel(t)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 40})
	model.SetInput("HC1:6BF")

	view := model.View()
	for _, want := range []string{"Prefix", "Base45 (hex)", "Inflated (hex)", "Structured", "789c", "tab cycle view", "esc quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
	if !strings.Contains(view, "structured: hex") {
		t.Error("view does not name the structured view")
	}
}

func TestModelPaneSize(t *testing.T) {
	model := testModel(t)
	model.SetInput(testutil.QR(t, []byte{0xa1, 0x61, 0x61, 0x01}, false))

	tests := []struct {
		index int
		want  string
	}{
		{0, ""},
		{1, "4 bytes"},
		{2, ""},
		{3, "4 bytes"},
	}
	for _, test := range tests {
		if got := model.paneSize(test.index); got != test.want {
			t.Errorf("paneSize(%s) = %q, want %q", present.Names[test.index], got, test.want)
		}
	}

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	if got := model.paneSize(3); got != "" {
		t.Errorf("paneSize(structured) in diag view = %q, want empty", got)
	}
}
