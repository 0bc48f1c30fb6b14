package setup

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"katooh/internal/extract"
	"katooh/internal/llm"
	"katooh/internal/quizgen"
	"katooh/internal/router"
	"katooh/internal/screen"
	"katooh/internal/screens/generating"
	"katooh/internal/session"
	"katooh/internal/ui/components"
	"katooh/internal/ui/layout"
	"katooh/internal/ui/theme"
)

// Field indices, in navigation order.
const (
	fieldProvider = iota
	fieldModel
	fieldAPIKey
	fieldTopic
	fieldSource
	fieldObjectives
	fieldAudience
	fieldCount
	fieldGenerate
	fieldMax
)

var providers = []string{"openai", "anthropic", "gemini", "openrouter"}

// SetupScreen collects everything needed for one generation request.
type SetupScreen struct {
	cfg    llm.Config
	logger *zap.Logger
	sess   *session.Session

	provider   components.Choice
	model      components.TextInput
	apiKey     components.TextInput
	topic      components.TextInput
	source     components.TextInput
	objectives components.TextInput
	audience   components.TextInput
	count      components.TextInput
	generate   components.Button

	focus  int
	errMsg string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen. cfg carries whatever was discovered
// from the environment; its API keys stay out of the form and are shown
// only as "found" markers.
func New(cfg llm.Config, logger *zap.Logger, sess *session.Session) *SetupScreen {
	s := &SetupScreen{
		cfg:    cfg,
		logger: logger,
		sess:   sess,

		provider:   components.NewChoice("Provider", providers),
		model:      components.NewTextInput("Model", llm.DefaultConfig().Model()),
		apiKey:     components.NewSecretInput("API key", "sk-..."),
		topic:      components.NewTextInput("Topic or source text", "e.g. The water cycle, photosynthesis, the French Revolution..."),
		source:     components.NewTextInput("Source file (optional)", "notes.pdf, worksheet.docx, diagram.png..."),
		objectives: components.NewTextInput("Learning objectives (optional)", "what players should take away"),
		audience:   components.NewTextInput("Audience (optional)", "e.g. 7th graders, new hires"),
		count:      components.NewTextInput("Questions (1-12)", strconv.Itoa(quizgen.DefaultCount)),
		generate:   components.NewButton("GENERATE QUIZ", false, nil),

		focus: fieldTopic,
	}
	s.count.NumericOnly = true
	s.provider.Select(cfg.Provider)
	s.applyFocus()
	return s
}

func (s *SetupScreen) Title() string {
	return "New Quiz"
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓/Tab", Description: "Field"},
		{Key: "←→", Description: "Provider"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "down", "tab":
			s.focus = (s.focus + 1) % fieldMax
			s.applyFocus()
			return s, nil
		case "up", "shift+tab":
			s.focus = (s.focus - 1 + fieldMax) % fieldMax
			s.applyFocus()
			return s, nil
		case "enter":
			if s.focus == fieldGenerate {
				return s.submit()
			}
			s.focus = (s.focus + 1) % fieldMax
			s.applyFocus()
			return s, nil
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldProvider:
		s.provider, cmd = s.provider.Update(msg)
	case fieldModel:
		s.model, cmd = s.model.Update(msg)
	case fieldAPIKey:
		s.apiKey, cmd = s.apiKey.Update(msg)
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldSource:
		s.source, cmd = s.source.Update(msg)
	case fieldObjectives:
		s.objectives, cmd = s.objectives.Update(msg)
	case fieldAudience:
		s.audience, cmd = s.audience.Update(msg)
	case fieldCount:
		s.count, cmd = s.count.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) applyFocus() {
	s.provider.Blur()
	s.model.Blur()
	s.apiKey.Blur()
	s.topic.Blur()
	s.source.Blur()
	s.objectives.Blur()
	s.audience.Blur()
	s.count.Blur()
	s.generate.Active = false

	switch s.focus {
	case fieldProvider:
		s.provider.Focus()
	case fieldModel:
		s.model.Focus()
	case fieldAPIKey:
		s.apiKey.Focus()
	case fieldTopic:
		s.topic.Focus()
	case fieldSource:
		s.source.Focus()
	case fieldObjectives:
		s.objectives.Focus()
	case fieldAudience:
		s.audience.Focus()
	case fieldCount:
		s.count.Focus()
	case fieldGenerate:
		s.generate.Active = true
	}
}

// envKey returns the environment-provided API key for the selected
// provider, "" when none was discovered.
func (s *SetupScreen) envKey() string {
	switch s.provider.Value() {
	case "openai":
		return s.cfg.OpenAI.APIKey
	case "anthropic":
		return s.cfg.Anthropic.APIKey
	case "gemini":
		return s.cfg.Gemini.APIKey
	case "openrouter":
		return s.cfg.OpenRouter.APIKey
	}
	return ""
}

// submit validates the form and pushes the generating screen.
func (s *SetupScreen) submit() (screen.Screen, tea.Cmd) {
	topic := strings.TrimSpace(s.topic.Value())
	source := strings.TrimSpace(s.source.Value())

	if topic == "" && source == "" {
		s.errMsg = "Give a topic or a source file."
		return s, nil
	}
	if source != "" {
		if _, err := os.Stat(source); err != nil {
			s.errMsg = fmt.Sprintf("Cannot read %s.", source)
			return s, nil
		}
		if _, ok := extract.KindForFile(source); !ok {
			s.errMsg = "Source must be .txt, .md, .pdf, .docx, or an image."
			return s, nil
		}
	}
	if s.envKey() == "" && strings.TrimSpace(s.apiKey.Value()) == "" {
		s.errMsg = fmt.Sprintf("No API key for %s. Paste one or export the env var.", s.provider.Value())
		return s, nil
	}

	count := quizgen.DefaultCount
	if v := strings.TrimSpace(s.count.Value()); v != "" {
		count, _ = strconv.Atoi(v)
	}

	cfg := s.cfg
	cfg.Provider = s.provider.Value()
	if key := strings.TrimSpace(s.apiKey.Value()); key != "" {
		cfg.SetAPIKey(key)
	}
	if model := strings.TrimSpace(s.model.Value()); model != "" {
		switch cfg.Provider {
		case "openai":
			cfg.OpenAI.Model = model
		case "anthropic":
			cfg.Anthropic.Model = model
		case "gemini":
			cfg.Gemini.Model = model
		case "openrouter":
			cfg.OpenRouter.Model = model
		}
	}

	s.errMsg = ""
	gen := generating.New(generating.Params{
		LLM:        cfg,
		Logger:     s.logger,
		Session:    s.sess,
		Topic:      topic,
		SourceFile: source,
		Objectives: strings.TrimSpace(s.objectives.Value()),
		Audience:   strings.TrimSpace(s.audience.Value()),
		Count:      count,
	})
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: gen}
	}
}

func (s *SetupScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var b strings.Builder

	b.WriteString(s.provider.View() + "\n\n")
	b.WriteString(s.model.View() + "\n\n")

	keyLine := s.apiKey.View()
	if s.envKey() != "" {
		keyLine += "\n" + theme.WithinLimit.Render("✓ found in environment")
	}
	b.WriteString(keyLine + "\n\n")

	b.WriteString(s.topic.View() + "\n\n")
	b.WriteString(s.source.View() + "\n\n")
	b.WriteString(s.objectives.View() + "\n\n")
	b.WriteString(s.audience.View() + "\n\n")
	b.WriteString(s.count.View() + "\n\n")
	b.WriteString(s.generate.View())

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.OverLimit.Render("✗ "+s.errMsg))
	}

	card := theme.Card.Width(cw).Render(b.String())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(card)
}
