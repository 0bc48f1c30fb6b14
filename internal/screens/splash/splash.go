package splash

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"katooh/internal/router"
	"katooh/internal/screen"
	"katooh/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	logoEnd      = 400 * time.Millisecond
	taglineEnd   = 900 * time.Millisecond
	totalDur     = 1800 * time.Millisecond
)

const logoArt = ` ██╗  ██╗ █████╗ ████████╗ ██████╗  ██████╗ ██╗  ██╗
 ██║ ██╔╝██╔══██╗╚══██╔══╝██╔═══██╗██╔═══██╗██║  ██║
 █████╔╝ ███████║   ██║   ██║   ██║██║   ██║███████║
 ██╔═██╗ ██╔══██║   ██║   ██║   ██║██║   ██║██╔══██║
 ██║  ██╗██║  ██║   ██║   ╚██████╔╝╚██████╔╝██║  ██║
 ╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝    ╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

// slot markers cycle under the logo in the four answer colors
var slotMarkers = []string{"▲", "◆", "●", "■"}

type tickMsg time.Time

// SplashScreen shows a short intro animation before transitioning to
// the setup screen.
type SplashScreen struct {
	setupFactory func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*SplashScreen)(nil)

// New creates a SplashScreen that will transition to the screen
// produced by setupFactory.
func New(setupFactory func() screen.Screen) *SplashScreen {
	return &SplashScreen{
		setupFactory: setupFactory,
	}
}

func (s *SplashScreen) Title() string {
	return ""
}

func (s *SplashScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SplashScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		s.elapsed += tickInterval
		s.tickCount++
		if s.elapsed >= totalDur {
			return s, s.transition()
		}
		return s, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		// Any key skips the animation.
		return s, s.transition()
	}

	return s, nil
}

func (s *SplashScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	setupScreen := s.setupFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: setupScreen}
	}
}

func (s *SplashScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Render(logoArt))

	if s.elapsed >= logoEnd {
		var marks []string
		for i, m := range slotMarkers {
			style := lipgloss.NewStyle().Foreground(theme.AnswerColors[i])
			if (s.tickCount+i)%len(slotMarkers) == 0 {
				style = style.Bold(true)
			}
			marks = append(marks, style.Render(m))
		}
		sections = append(sections, "", strings.Join(marks, "   "))
	}

	if s.elapsed >= taglineEnd {
		sections = append(sections, "",
			theme.Subtitle.Render("AI quiz builder for the Kahoot platform"),
			"",
			theme.Hint.Render("press any key"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
