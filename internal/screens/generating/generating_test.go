package generating

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"katooh/internal/llm"
	"katooh/internal/quizgen"
	"katooh/internal/router"
	"katooh/internal/screens/review"
	"katooh/internal/session"
)

func testGeneratingScreen() *GeneratingScreen {
	return New(Params{
		LLM:     llm.DefaultConfig(),
		Logger:  zap.NewNop(),
		Session: session.New(),
		Topic:   "Volcanoes",
		Count:   3,
	})
}

func TestGeneratingScreen_Title(t *testing.T) {
	g := testGeneratingScreen()
	if g.Title() != "Generating" {
		t.Errorf("Title = %q, want %q", g.Title(), "Generating")
	}
}

func TestGeneratingScreen_SuccessReplacesWithReview(t *testing.T) {
	g := testGeneratingScreen()
	res := &quizgen.Result{
		Questions: quizgen.QuizSet{
			{
				Text: "Q?",
				Answers: []quizgen.Answer{
					{Text: "A", IsCorrect: true},
					{Text: "B"}, {Text: "C"}, {Text: "D"},
				},
			},
		},
		Requested: 3,
		Model:     "mock",
	}

	_, cmd := g.Update(quizReadyMsg{Result: res})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}

	msg := cmd()
	replace, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if _, ok := replace.Screen.(*review.ReviewScreen); !ok {
		t.Errorf("expected review screen, got %T", replace.Screen)
	}

	// The result is installed into the session before the transition.
	if !g.params.Session.HasQuiz() {
		t.Error("session quiz not installed")
	}
	if g.params.Session.Shortfall() != 2 {
		t.Errorf("shortfall = %d, want 2", g.params.Session.Shortfall())
	}
}

func TestGeneratingScreen_ErrorShownInPlace(t *testing.T) {
	g := testGeneratingScreen()

	scr, cmd := g.Update(quizReadyMsg{Err: errors.New("rate limited")})
	g = scr.(*GeneratingScreen)
	if cmd != nil {
		t.Error("failure should not navigate")
	}
	if g.errMsg == "" {
		t.Error("expected error message to be recorded")
	}

	view := g.View(100, 30)
	if view == "" {
		t.Error("expected non-empty error view")
	}
	if g.params.Session.HasQuiz() {
		t.Error("session must stay empty on failure")
	}
}

func TestGeneratingScreen_SpinnerStopsAfterError(t *testing.T) {
	g := testGeneratingScreen()
	g.errMsg = "boom"

	_, cmd := g.Update(spinnerTickMsg{})
	if cmd != nil {
		t.Error("spinner should stop ticking once an error is shown")
	}
}
