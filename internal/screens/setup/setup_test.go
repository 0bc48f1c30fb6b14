package setup

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"katooh/internal/llm"
	"katooh/internal/router"
	"katooh/internal/screens/generating"
	"katooh/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSetupScreen() *SetupScreen {
	cfg := llm.DefaultConfig()
	cfg.OpenAI.APIKey = "sk-test"
	return New(cfg, zap.NewNop(), session.New())
}

func TestSetupScreen_Title(t *testing.T) {
	s := testSetupScreen()
	if s.Title() != "New Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "New Quiz")
	}
}

func TestSetupScreen_View(t *testing.T) {
	s := testSetupScreen()
	if s.View(100, 40) == "" {
		t.Error("expected non-empty view")
	}
}

func TestSetupScreen_TabCyclesFocus(t *testing.T) {
	s := testSetupScreen()
	start := s.focus

	var cur = s.focus
	for i := 0; i < fieldMax; i++ {
		scr, _ := s.Update(specialKey(tea.KeyTab))
		s = scr.(*SetupScreen)
		next := s.focus
		if next == cur {
			t.Fatalf("focus did not move from %d", cur)
		}
		cur = next
	}
	if s.focus != start {
		t.Errorf("focus = %d after full cycle, want %d", s.focus, start)
	}
}

func TestSetupScreen_RequiresTopicOrFile(t *testing.T) {
	s := testSetupScreen()
	s.focus = fieldGenerate

	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*SetupScreen)
	if cmd != nil {
		t.Error("expected no navigation on invalid form")
	}
	if s.errMsg == "" {
		t.Error("expected validation error for empty topic and file")
	}
}

func TestSetupScreen_RequiresAPIKey(t *testing.T) {
	s := New(llm.DefaultConfig(), zap.NewNop(), session.New())
	s.topic.SetValue("The water cycle")
	s.focus = fieldGenerate

	scr, _ := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*SetupScreen)
	if s.errMsg == "" {
		t.Error("expected validation error when no API key is available")
	}
}

func TestSetupScreen_RejectsUnknownSourceType(t *testing.T) {
	s := testSetupScreen()
	s.topic.SetValue("Rivers")
	s.source.SetValue("setup.go") // exists, wrong extension
	s.focus = fieldGenerate

	scr, _ := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*SetupScreen)
	if s.errMsg == "" {
		t.Error("expected validation error for unsupported source type")
	}
}

func TestSetupScreen_SubmitPushesGenerating(t *testing.T) {
	s := testSetupScreen()
	s.topic.SetValue("The French Revolution")
	s.count.SetValue("7")
	s.focus = fieldGenerate

	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*SetupScreen)
	if s.errMsg != "" {
		t.Fatalf("unexpected validation error: %s", s.errMsg)
	}
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}

	msg := cmd()
	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if _, ok := push.Screen.(*generating.GeneratingScreen); !ok {
		t.Errorf("expected generating screen, got %T", push.Screen)
	}
}

func TestSetupScreen_TypingReachesFocusedField(t *testing.T) {
	s := testSetupScreen()
	// Initial focus is the topic field.
	for _, r := range "volcano" {
		scr, _ := s.Update(keyPress(r))
		s = scr.(*SetupScreen)
	}
	if s.topic.Value() != "volcano" {
		t.Errorf("topic = %q, want %q", s.topic.Value(), "volcano")
	}
}
