package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// Editor wraps bubbles/textarea for entering solution code.
type Editor struct {
	Model textarea.Model
}

// NewEditor creates an unfocused multi-line editor.
func NewEditor(placeholder string, width, height int) Editor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Blur()
	return Editor{Model: ta}
}

// Focus gives the editor keyboard focus.
func (e *Editor) Focus() tea.Cmd {
	return e.Model.Focus()
}

// Blur removes keyboard focus.
func (e *Editor) Blur() {
	e.Model.Blur()
}

// Focused reports whether the editor has keyboard focus.
func (e Editor) Focused() bool {
	return e.Model.Focused()
}

// SetSize resizes the editor.
func (e *Editor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// Update handles messages.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor.
func (e Editor) View() string {
	return e.Model.View()
}

// Value returns the editor contents.
func (e Editor) Value() string {
	return e.Model.Value()
}

// SetValue replaces the editor contents.
func (e *Editor) SetValue(s string) {
	e.Model.SetValue(s)
}

// IsBlank reports whether the editor holds only whitespace.
func (e Editor) IsBlank() bool {
	return strings.TrimSpace(e.Model.Value()) == ""
}
