// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/dcc/lib/envelope"
	"github.com/bureau-foundation/dcc/lib/pipeline"
	"github.com/bureau-foundation/dcc/lib/present"
)

// Layout constants. The input is a fixed number of lines; the panes
// share what remains.
const (
	inputHeight   = 4
	headerHeight  = 1
	helpHeight    = 1
	paneChrome    = 3 // Top and bottom border plus the title line.
	minPaneHeight = 1
	defaultWidth  = 80
	defaultHeight = 24
)

// panes holds the text of each view, indexed like present.Names. It
// is an array so a copied Model never shares pane text with the
// original.
type panes [4]string

func (set *panes) Slot(name string) (present.Slot, bool) {
	for index, candidate := range present.Names {
		if candidate == name {
			return paneSlot{set: set, index: index}, true
		}
	}
	return nil, false
}

type paneSlot struct {
	set   *panes
	index int
}

func (slot paneSlot) Set(text string) {
	slot.set[slot.index] = text
}

// paneTitles label the panes in present.Names order.
var paneTitles = [4]string{
	"Prefix",
	"Base45 (hex)",
	"Inflated (hex)",
	"Structured",
}

// Model is the bubbletea model of the viewer.
type Model struct {
	pipeline *pipeline.Pipeline
	input    textarea.Model
	panes    panes
	keys     KeyMap
	theme    Theme

	// lastInput is the input text the panes were computed from.
	lastInput string
	// prefixWarning is set when the prefix pane holds a warning.
	prefixWarning bool

	width  int
	height int
}

// NewModel returns a Model that decodes with decoder. The structured
// pane starts in decoder's view.
func NewModel(decoder *pipeline.Pipeline) Model {
	input := textarea.New()
	input.Placeholder = "Paste an HC1: payload"
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.Focus()

	model := Model{
		pipeline: decoder,
		input:    input,
		keys:     DefaultKeyMap,
		theme:    DefaultTheme,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	model.resize()
	model.refresh(true)
	return model
}

// SetInput replaces the input text and recomputes the panes.
func (model *Model) SetInput(text string) {
	model.input.SetValue(text)
	model.refresh(true)
}

// Input returns the current input text.
func (model Model) Input() string {
	return model.input.Value()
}

// Pane returns the text of the named pane (a present slot name).
func (model Model) Pane(name string) string {
	for index, candidate := range present.Names {
		if candidate == name {
			return model.panes[index]
		}
	}
	return ""
}

// StructuredView returns the current view of the structured pane.
func (model Model) StructuredView() envelope.View {
	return model.pipeline.View()
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model. Viewer keys are handled here; all
// other input goes to the textarea, and any change of its text
// recomputes the panes.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.Clear):
			model.input.Reset()
			model.refresh(false)
			return model, nil

		case key.Matches(message, model.keys.CycleView):
			next, err := model.pipeline.WithView(model.pipeline.View().Next())
			if err == nil {
				model.pipeline = next
				model.refresh(true)
			}
			return model, nil
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.resize()
		return model, nil
	}

	var command tea.Cmd
	model.input, command = model.input.Update(message)
	model.refresh(false)
	return model, command
}

// refresh recomputes the panes when the input text changed, or
// unconditionally when force is set. Empty input clears the decoding
// panes and leaves the missing-header warning in the prefix pane.
func (model *Model) refresh(force bool) {
	text := model.input.Value()
	if text == model.lastInput && !force {
		return
	}
	model.lastInput = text

	raw := strings.TrimSpace(text)
	model.prefixWarning = model.pipeline.Prefix(raw).IsWarning()
	if raw == "" {
		model.panes = panes{model.pipeline.PrefixOnly(raw)}
		return
	}
	present.Render(model.pipeline, raw, &model.panes)
}

func (model *Model) resize() {
	model.input.SetWidth(max(model.width-2, 1))
	model.input.SetHeight(inputHeight)
}

// paneHeight returns the number of content lines each pane gets.
func (model Model) paneHeight() int {
	available := model.height - headerHeight - helpHeight - (inputHeight + 2)
	return max(available/len(model.panes)-paneChrome, minPaneHeight)
}

// View implements tea.Model.
func (model Model) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render(fmt.Sprintf("dcc viewer  [structured: %s]", model.pipeline.View()))

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.FocusBorderColor).
		Render(model.input.View())

	sections := []string{header, inputBox}
	for index := range model.panes {
		sections = append(sections, model.renderPane(index))
	}
	sections = append(sections, model.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (model Model) renderPane(index int) string {
	innerWidth := max(model.width-2, 1)
	text := model.panes[index]

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxHeight(model.paneHeight()).
		Foreground(model.theme.NormalText)
	switch {
	case index == 0 && model.prefixWarning:
		contentStyle = contentStyle.Foreground(model.theme.WarningForeground)
	case isDiagnostic(text):
		contentStyle = contentStyle.Foreground(model.theme.ErrorForeground)
	case text == "":
		contentStyle = contentStyle.Foreground(model.theme.FaintText)
		text = "(empty)"
	case present.Names[index] == present.SlotStructured && model.pipeline.View() == envelope.ViewJSON:
		text = highlightJSON(text)
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render(paneTitles[index])
	if size := model.paneSize(index); size != "" {
		size = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(size)
		gap := max(innerWidth-ansi.StringWidth(title)-ansi.StringWidth(size), 1)
		title += strings.Repeat(" ", gap) + size
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(model.theme.BorderColor).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, contentStyle.Render(text)))
}

// paneSize returns the byte count shown in the title of a pane that
// holds hex, or "" for any other content.
func (model Model) paneSize(index int) string {
	text := model.panes[index]
	switch present.Names[index] {
	case present.SlotPrefix:
		return ""
	case present.SlotStructured:
		if model.pipeline.View() != envelope.ViewHex {
			return ""
		}
	}
	if text == "" || isDiagnostic(text) {
		return ""
	}
	return fmt.Sprintf("%d bytes", len(text)/2)
}

func (model Model) renderHelp() string {
	var parts []string
	for _, binding := range model.keys.bindings() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Render(strings.Join(parts, " • "))
}

func isDiagnostic(text string) bool {
	return strings.HasPrefix(text, `{"stage":`)
}

// highlightJSON colors JSON text with Chroma. On failure the text is
// returned unchanged.
func highlightJSON(text string) string {
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, text, "json", "terminal256", "monokai"); err != nil {
		return text
	}
	return buffer.String()
}

// Run shows the viewer full screen until the user quits or ctx is
// cancelled. initial, when not empty, is placed in the input first.
func Run(ctx context.Context, decoder *pipeline.Pipeline, initial string) error {
	model := NewModel(decoder)
	if initial != "" {
		model.SetInput(initial)
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
