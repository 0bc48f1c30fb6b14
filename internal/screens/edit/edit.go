package edit

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"katooh/internal/quizgen"
	"katooh/internal/screen"
	"katooh/internal/session"
	"katooh/internal/ui/components"
	"katooh/internal/ui/layout"
	"katooh/internal/ui/theme"
)

// Field indices: 0 is the question, 1..4 the answers.
const fieldMax = 1 + quizgen.AnswersPerQuestion

// EditScreen edits one question in place. Every keystroke writes
// straight into the session, so Esc simply returns — there is no
// separate save step.
type EditScreen struct {
	sess  *session.Session
	index int

	question components.TextInput
	answers  [quizgen.AnswersPerQuestion]components.TextInput
	focus    int
}

var _ screen.Screen = (*EditScreen)(nil)
var _ screen.KeyHintProvider = (*EditScreen)(nil)

// New creates an edit screen for question index of the session's quiz.
func New(sess *session.Session, index int) *EditScreen {
	e := &EditScreen{
		sess:  sess,
		index: index,
	}

	q := sess.Quiz[index]
	e.question = components.NewTextInput("Question", "").WithBudget(quizgen.MaxQuestionLen)
	e.question.SetValue(q.Text)
	for i := range e.answers {
		e.answers[i] = components.NewTextInput(fmt.Sprintf("Answer %d", i+1), "").WithBudget(quizgen.MaxAnswerLen)
		if i < len(q.Answers) {
			e.answers[i].SetValue(q.Answers[i].Text)
		}
	}

	e.applyFocus()
	return e
}

func (e *EditScreen) Title() string {
	return fmt.Sprintf("Edit Question %d", e.index+1)
}

func (e *EditScreen) Init() tea.Cmd {
	return nil
}

func (e *EditScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓/Tab", Description: "Field"},
		{Key: "Ctrl+K", Description: "Mark correct"},
		{Key: "Esc", Description: "Done"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (e *EditScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "down", "tab", "enter":
			e.focus = (e.focus + 1) % fieldMax
			e.applyFocus()
			return e, nil
		case "up", "shift+tab":
			e.focus = (e.focus - 1 + fieldMax) % fieldMax
			e.applyFocus()
			return e, nil
		case "ctrl+k":
			if e.focus > 0 {
				_ = e.sess.SetCorrect(e.index, e.focus-1)
			}
			return e, nil
		}
	}

	var cmd tea.Cmd
	if e.focus == 0 {
		e.question, cmd = e.question.Update(msg)
		_ = e.sess.SetQuestionText(e.index, e.question.Value())
	} else {
		a := e.focus - 1
		e.answers[a], cmd = e.answers[a].Update(msg)
		_ = e.sess.SetAnswerText(e.index, a, e.answers[a].Value())
	}
	return e, cmd
}

func (e *EditScreen) applyFocus() {
	e.question.Blur()
	for i := range e.answers {
		e.answers[i].Blur()
	}
	if e.focus == 0 {
		e.question.Focus()
	} else {
		e.answers[e.focus-1].Focus()
	}
}

func (e *EditScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	q := e.sess.Quiz[e.index]

	var b strings.Builder

	b.WriteString(e.question.View() + "\n\n")

	for i := range e.answers {
		marker := lipgloss.NewStyle().
			Foreground(theme.AnswerColors[i%len(theme.AnswerColors)]).
			Render("■ ")
		line := marker + e.answers[i].View()
		if i < len(q.Answers) && q.Answers[i].IsCorrect {
			line += " " + theme.WithinLimit.Render("✓ correct")
		}
		b.WriteString(line + "\n\n")
	}

	// Edits are never truncated, but the platform rejects over-limit
	// imports, so warn while the user can still reword.
	var warnings []string
	if session.QuestionStatus(q.Text).Over() {
		warnings = append(warnings, fmt.Sprintf("question over the %d-character cap", quizgen.MaxQuestionLen))
	}
	for i, a := range q.Answers {
		if session.AnswerStatus(a.Text).Over() {
			warnings = append(warnings, fmt.Sprintf("answer %d over the %d-character cap", i+1, quizgen.MaxAnswerLen))
		}
	}
	for _, w := range warnings {
		b.WriteString(theme.Warning.Render("⚠ "+w) + "\n")
	}

	card := theme.Card.Width(cw).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}
