package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"katooh/internal/ui/theme"
)

// RatioBar displays a "got N of M" bar, e.g. questions produced versus
// questions requested.
type RatioBar struct {
	Label string
	Have  int
	Want  int
	Width int
}

// NewRatioBar creates a new ratio bar.
func NewRatioBar(label string, have, want, width int) RatioBar {
	return RatioBar{
		Label: label,
		Have:  have,
		Want:  want,
		Width: width,
	}
}

// View renders the bar.
func (p RatioBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	count := fmt.Sprintf(" %d/%d", p.Have, p.Want)

	barWidth := p.Width - lipgloss.Width(result) - len(count)
	if barWidth < 4 {
		barWidth = 4
	}

	ratio := 0.0
	if p.Want > 0 {
		ratio = float64(p.Have) / float64(p.Want)
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(barWidth))

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	countStyle := theme.WithinLimit
	if p.Have < p.Want {
		countStyle = theme.Warning
	}
	result += countStyle.Render(count)

	return result
}
