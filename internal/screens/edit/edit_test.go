package edit

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"katooh/internal/quizgen"
	"katooh/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testEditScreen() (*EditScreen, *session.Session) {
	sess := session.New()
	sess.Replace(&quizgen.Result{
		Questions: quizgen.QuizSet{
			{
				Text: "What is the capital of France?",
				Answers: []quizgen.Answer{
					{Text: "Paris", IsCorrect: true},
					{Text: "Lyon"},
					{Text: "Marseille"},
					{Text: "Nice"},
				},
			},
		},
		Requested: 1,
		Model:     "gpt-4o",
	})
	return New(sess, 0), sess
}

func TestEditScreen_Title(t *testing.T) {
	e, _ := testEditScreen()
	if e.Title() != "Edit Question 1" {
		t.Errorf("Title = %q, want %q", e.Title(), "Edit Question 1")
	}
}

func TestEditScreen_TypingUpdatesSession(t *testing.T) {
	e, sess := testEditScreen()

	// Initial focus is the question field.
	scr, _ := e.Update(keyPress('!'))
	e = scr.(*EditScreen)

	if !strings.HasSuffix(sess.Quiz[0].Text, "!") {
		t.Errorf("question text = %q, edit did not reach session", sess.Quiz[0].Text)
	}
}

func TestEditScreen_TabMovesToAnswer(t *testing.T) {
	e, sess := testEditScreen()

	scr, _ := e.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	e = scr.(*EditScreen)
	scr, _ = e.Update(keyPress('x'))
	e = scr.(*EditScreen)

	if !strings.HasSuffix(sess.Quiz[0].Answers[0].Text, "x") {
		t.Errorf("answer 1 = %q, edit did not reach session", sess.Quiz[0].Answers[0].Text)
	}
}

func TestEditScreen_MarkCorrectIsExclusive(t *testing.T) {
	e, sess := testEditScreen()

	// Move to answer 2 and mark it correct.
	scr, _ := e.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	e = scr.(*EditScreen)
	scr, _ = e.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	e = scr.(*EditScreen)
	scr, _ = e.Update(ctrlKey('k'))
	e = scr.(*EditScreen)

	if !sess.Quiz[0].Answers[1].IsCorrect {
		t.Error("expected answer 2 to be marked correct")
	}
	if sess.Quiz[0].Answers[0].IsCorrect {
		t.Error("expected answer 1 to lose its correct flag")
	}
}

func TestEditScreen_MarkCorrectIgnoredOnQuestion(t *testing.T) {
	e, sess := testEditScreen()

	scr, _ := e.Update(ctrlKey('k'))
	_ = scr.(*EditScreen)

	if !sess.Quiz[0].Answers[0].IsCorrect {
		t.Error("correct flag should be untouched while the question is focused")
	}
}

func TestEditScreen_WarnsOverLimit(t *testing.T) {
	e, sess := testEditScreen()
	_ = sess.SetQuestionText(0, strings.Repeat("?", quizgen.MaxQuestionLen+1))

	view := e.View(100, 40)
	if !strings.Contains(view, "character cap") {
		t.Error("expected over-limit warning in view")
	}
}
