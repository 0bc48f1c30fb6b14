package generating

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"katooh/internal/extract"
	"katooh/internal/llm"
	"katooh/internal/quizgen"
	"katooh/internal/router"
	"katooh/internal/screen"
	"katooh/internal/screens/review"
	"katooh/internal/session"
	"katooh/internal/ui/layout"
	"katooh/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"▲", "◆", "●", "■"}

// quizReadyMsg is sent when generation has finished, successfully or not.
type quizReadyMsg struct {
	Result *quizgen.Result
	Err    error
}

// spinnerTickMsg animates the waiting indicator.
type spinnerTickMsg time.Time

// Params is everything the generation pipeline needs for one run.
type Params struct {
	LLM        llm.Config
	Logger     *zap.Logger
	Session    *session.Session
	Topic      string
	SourceFile string
	Objectives string
	Audience   string
	Count      int
}

// GeneratingScreen runs the pipeline asynchronously and shows progress.
type GeneratingScreen struct {
	params  Params
	started time.Time
	frame   int
	errMsg  string
}

var _ screen.Screen = (*GeneratingScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratingScreen)(nil)

// New creates a generating screen for the given request.
func New(params Params) *GeneratingScreen {
	return &GeneratingScreen{
		params:  params,
		started: time.Now(),
	}
}

func (g *GeneratingScreen) Title() string {
	return "Generating"
}

func (g *GeneratingScreen) KeyHints() []layout.KeyHint {
	if g.errMsg != "" {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (g *GeneratingScreen) Init() tea.Cmd {
	return tea.Batch(g.generate(), spinnerTick())
}

func (g *GeneratingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if g.errMsg != "" {
			return g, nil
		}
		g.frame++
		return g, spinnerTick()

	case quizReadyMsg:
		if msg.Err != nil {
			g.errMsg = msg.Err.Error()
			return g, nil
		}
		g.params.Session.Replace(msg.Result)
		reviewScreen := review.New(g.params.Session, g.params.LLM, g.params.Logger, msg.Result)
		return g, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: reviewScreen}
		}
	}

	return g, nil
}

// generate runs extraction and the full generation pipeline off the UI
// loop.
func (g *GeneratingScreen) generate() tea.Cmd {
	p := g.params
	return func() tea.Msg {
		ctx := context.Background()

		topic := p.Topic
		var images []llm.Image
		if p.SourceFile != "" {
			in, err := extract.New(p.Logger).FromFile(p.SourceFile)
			if err != nil {
				return quizReadyMsg{Err: err}
			}
			if in.Empty() {
				return quizReadyMsg{Err: fmt.Errorf("nothing usable extracted from %s", p.SourceFile)}
			}
			if in.Text != "" {
				if topic != "" {
					topic += "\n\n"
				}
				topic += in.Text
			}
			images = in.Images
		}

		provider, err := llm.NewProvider(ctx, p.LLM, p.Logger)
		if err != nil {
			return quizReadyMsg{Err: err}
		}

		gen := quizgen.New(provider, quizgen.DefaultConfig())
		res, err := gen.Generate(ctx, quizgen.Request{
			Topic:      topic,
			Count:      p.Count,
			Objectives: p.Objectives,
			Audience:   p.Audience,
			Images:     images,
		})
		return quizReadyMsg{Result: res, Err: err}
	}
}

func (g *GeneratingScreen) View(width, height int) string {
	if g.errMsg != "" {
		content := theme.OverLimit.Render("✗ Generation failed") + "\n\n" +
			theme.Body.Render(wrap(g.errMsg, layout.ContentWidth(width))) + "\n\n" +
			theme.Hint.Render("Esc to go back and adjust the request.")
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(content)
	}

	spin := lipgloss.NewStyle().
		Foreground(theme.AnswerColors[g.frame%len(spinnerFrames)]).
		Render(spinnerFrames[g.frame%len(spinnerFrames)])

	model := g.params.LLM.Model()
	elapsed := time.Since(g.started).Round(time.Second)
	lines := []string{
		spin + "  " + theme.Body.Render(fmt.Sprintf("Asking %s for %d questions...", model, g.params.Count)),
		"",
		theme.Subtitle.Render(fmt.Sprintf("%d-token context window  ·  %s", quizgen.ContextWindow(model), elapsed)),
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// wrap breaks a long message into lines no wider than w.
func wrap(s string, w int) string {
	if w < 10 {
		w = 10
	}
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for i, word := range words {
		if i > 0 {
			if line+1+len(word) > w {
				b.WriteByte('\n')
				line = 0
			} else {
				b.WriteByte(' ')
				line++
			}
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
