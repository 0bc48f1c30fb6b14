package review

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"katooh/internal/export"
	"katooh/internal/llm"
	"katooh/internal/quizgen"
	"katooh/internal/router"
	"katooh/internal/screen"
	"katooh/internal/screens/edit"
	"katooh/internal/session"
	"katooh/internal/ui/components"
	"katooh/internal/ui/layout"
	"katooh/internal/ui/theme"
)

// exportDoneMsg is sent when an export attempt has finished.
type exportDoneMsg struct {
	Path    string
	Skipped []error
	Err     error
}

// ReviewScreen shows the generated quiz for inspection, editing and
// export.
type ReviewScreen struct {
	sess   *session.Session
	cfg    llm.Config
	logger *zap.Logger
	result *quizgen.Result

	selected int
	status   string
	statusOK bool
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a review screen over the session's current quiz. result
// carries the generation metadata shown in the summary line.
func New(sess *session.Session, cfg llm.Config, logger *zap.Logger, result *quizgen.Result) *ReviewScreen {
	return &ReviewScreen{
		sess:   sess,
		cfg:    cfg,
		logger: logger,
		result: result,
	}
}

func (r *ReviewScreen) Title() string {
	return "Review Quiz"
}

func (r *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Edit"},
		{Key: "X", Description: "Export .xlsx"},
		{Key: "J", Description: "Export .json"},
		{Key: "N", Description: "New quiz"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.Err != nil {
			r.status = "Export failed: " + msg.Err.Error()
			r.statusOK = false
			return r, nil
		}
		r.statusOK = true
		r.status = "Saved " + msg.Path
		if n := len(msg.Skipped); n > 0 {
			r.statusOK = false
			r.status += fmt.Sprintf(" — %d question(s) skipped: %s", n, msg.Skipped[0].Error())
		}
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if r.selected > 0 {
				r.selected--
			}
		case "down", "j":
			if r.selected < len(r.sess.Quiz)-1 {
				r.selected++
			}
		case "enter", "e":
			if len(r.sess.Quiz) == 0 {
				return r, nil
			}
			editScreen := edit.New(r.sess, r.selected)
			return r, func() tea.Msg {
				return router.PushScreenMsg{Screen: editScreen}
			}
		case "x", "X":
			return r, r.exportXLSX()
		case "J":
			return r, r.exportJSON()
		case "n", "N":
			return r, func() tea.Msg {
				return router.PopScreenMsg{}
			}
		}
	}

	return r, nil
}

// exportXLSX shuffles and writes the spreadsheet. Questions without
// exactly one correct answer are skipped and reported, never repaired.
func (r *ReviewScreen) exportXLSX() tea.Cmd {
	quiz := r.sess.Quiz
	return func() tea.Msg {
		rows, skipped := export.BuildRows(quiz)
		if len(rows) == 0 {
			return exportDoneMsg{Err: fmt.Errorf("no exportable questions"), Skipped: skipped}
		}

		path := fmt.Sprintf("katooh-quiz-%s.xlsx", time.Now().Format("20060102-150405"))
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		defer f.Close()

		if err := export.WriteXLSX(f, rows); err != nil {
			return exportDoneMsg{Err: err}
		}
		return exportDoneMsg{Path: path, Skipped: skipped}
	}
}

// exportJSON writes the quiz set as editable JSON.
func (r *ReviewScreen) exportJSON() tea.Cmd {
	quiz := r.sess.Quiz
	return func() tea.Msg {
		path := fmt.Sprintf("katooh-quiz-%s.json", time.Now().Format("20060102-150405"))
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{Err: err}
		}
		defer f.Close()

		if err := export.WriteJSON(f, quiz); err != nil {
			return exportDoneMsg{Err: err}
		}
		return exportDoneMsg{Path: path}
	}
}

// correctCount returns how many answers of q claim to be correct.
func correctCount(q quizgen.Question) int {
	n := 0
	for _, a := range q.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

func (r *ReviewScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	quiz := r.sess.Quiz

	var b strings.Builder

	// Summary line.
	summary := fmt.Sprintf("%d question(s) from %s", len(quiz), r.sess.Model)
	if r.result != nil {
		summary += fmt.Sprintf("  ·  %d tokens", r.result.Usage.TotalTokens)
		if r.result.RepairStage != "" && r.result.RepairStage != "direct" {
			summary += "  ·  repaired: " + r.result.RepairStage
		}
		if r.result.Dropped > 0 {
			summary += fmt.Sprintf("  ·  %d dropped", r.result.Dropped)
		}
	}
	b.WriteString(theme.Subtitle.Render(summary) + "\n\n")

	if shortfall := r.sess.Shortfall(); shortfall > 0 {
		bar := components.NewRatioBar("Produced", len(quiz), r.sess.Requested, cw-4)
		b.WriteString(bar.View() + "\n")
		b.WriteString(theme.Warning.Render("⚠ Fewer questions than requested. Edit or generate again.") + "\n\n")
	}

	// Question list, windowed around the selection.
	listHeight := height - lipgloss.Height(b.String()) - 9
	if listHeight < 3 {
		listHeight = 3
	}
	start := 0
	if r.selected >= listHeight {
		start = r.selected - listHeight + 1
	}
	for i := start; i < len(quiz) && i < start+listHeight; i++ {
		q := quiz[i]
		line := fmt.Sprintf("%2d. %s", i+1, truncate(q.Text, cw-12))
		if correctCount(q) != 1 {
			line += " " + theme.Warning.Render("⚠")
		}
		if i == r.selected {
			b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + "\n")
		}
	}

	// Answer detail for the selected question.
	if r.selected < len(quiz) {
		b.WriteString("\n")
		q := quiz[r.selected]
		for i, a := range q.Answers {
			marker := lipgloss.NewStyle().
				Foreground(theme.AnswerColors[i%len(theme.AnswerColors)]).
				Render("■")
			line := "  " + marker + " " + truncate(a.Text, cw-10)
			if a.IsCorrect {
				line += " " + theme.WithinLimit.Render("✓")
			}
			b.WriteString(theme.Body.Render(line) + "\n")
		}
		if n := correctCount(q); n != 1 {
			b.WriteString(theme.Warning.Render(fmt.Sprintf("  ⚠ %d answers marked correct — fix before export", n)) + "\n")
		}
	}

	if r.status != "" {
		b.WriteString("\n")
		if r.statusOK {
			b.WriteString(theme.WithinLimit.Render("✓ " + r.status))
		} else {
			b.WriteString(theme.OverLimit.Render("✗ " + r.status))
		}
	}

	card := theme.Card.Width(cw).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}

func truncate(s string, w int) string {
	if w < 4 {
		w = 4
	}
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	return string(runes[:w-1]) + "…"
}
