package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"katooh/internal/ui/theme"
)

// Choice is a horizontal option picker cycled with left/right.
type Choice struct {
	Label    string
	Options  []string
	Selected int
	focused  bool
}

// NewChoice creates a picker over the given options.
func NewChoice(label string, options []string) Choice {
	return Choice{
		Label:   label,
		Options: options,
	}
}

// Focus gives the picker keyboard focus.
func (c *Choice) Focus() {
	c.focused = true
}

// Blur removes keyboard focus.
func (c *Choice) Blur() {
	c.focused = false
}

// Focused reports whether the picker has keyboard focus.
func (c Choice) Focused() bool {
	return c.focused
}

// Value returns the selected option, "" when there are none.
func (c Choice) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// Select moves the selection to the given option if present.
func (c *Choice) Select(option string) {
	for i, o := range c.Options {
		if o == option {
			c.Selected = i
			return
		}
	}
}

// Update handles left/right cycling while focused.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if !c.focused || len(c.Options) == 0 {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "h":
		c.Selected = (c.Selected - 1 + len(c.Options)) % len(c.Options)
	case "right", "l":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}

	return c, nil
}

// View renders the label and the option row.
func (c Choice) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if c.focused {
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	var row string
	for i, opt := range c.Options {
		if i > 0 {
			row += "  "
		}
		if i == c.Selected {
			row += theme.Selected.Render("◂ " + opt + " ▸")
		} else {
			row += lipgloss.NewStyle().Foreground(theme.TextDim).Render(opt)
		}
	}

	if c.Label == "" {
		return row
	}
	return labelStyle.Render(c.Label) + "\n" + row
}
