package components

import (
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"katooh/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with KaTooH styling. When Budget is
// set, a live character counter is rendered next to the field: green
// while the text fits, red once it runs over.
type TextInput struct {
	Model       textinput.Model
	Label       string
	Budget      int
	NumericOnly bool
}

// NewTextInput creates a new styled text input.
func NewTextInput(label, placeholder string) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder

	return TextInput{
		Model: ti,
		Label: label,
	}
}

// NewSecretInput creates a text input that masks what is typed.
// Used for API keys.
func NewSecretInput(label, placeholder string) TextInput {
	t := NewTextInput(label, placeholder)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	return t
}

// WithBudget sets the character budget shown by the live counter.
// Input is not truncated at the budget; the counter just turns red.
func (t TextInput) WithBudget(n int) TextInput {
	t.Budget = n
	return t
}

// Focus gives keyboard focus to the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has keyboard focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Value returns the current text.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the current text.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label, the input, and the counter when a budget is set.
func (t TextInput) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	view := t.Model.View()
	if t.Budget > 0 {
		n := len([]rune(t.Value()))
		counter := fmt.Sprintf(" %d/%d", n, t.Budget)
		if n > t.Budget {
			view += theme.OverLimit.Render(counter)
		} else {
			view += theme.WithinLimit.Render(counter)
		}
	}

	if t.Label == "" {
		return view
	}
	return labelStyle.Render(t.Label) + "\n" + view
}
