package review

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"katooh/internal/llm"
	"katooh/internal/quizgen"
	"katooh/internal/router"
	"katooh/internal/screens/edit"
	"katooh/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func question(text string, correct int) quizgen.Question {
	q := quizgen.Question{Text: text}
	for i := 0; i < quizgen.AnswersPerQuestion; i++ {
		q.Answers = append(q.Answers, quizgen.Answer{
			Text:      "Option " + string(rune('A'+i)),
			IsCorrect: i == correct,
		})
	}
	return q
}

func testReviewScreen(questions ...quizgen.Question) (*ReviewScreen, *session.Session) {
	sess := session.New()
	res := &quizgen.Result{
		Questions: questions,
		Requested: len(questions),
		Model:     "gpt-4o",
	}
	sess.Replace(res)
	return New(sess, llm.DefaultConfig(), zap.NewNop(), res), sess
}

func TestReviewScreen_Title(t *testing.T) {
	r, _ := testReviewScreen(question("Q1?", 0))
	if r.Title() != "Review Quiz" {
		t.Errorf("Title = %q, want %q", r.Title(), "Review Quiz")
	}
}

func TestReviewScreen_Navigation(t *testing.T) {
	r, _ := testReviewScreen(question("Q1?", 0), question("Q2?", 1), question("Q3?", 2))

	scr, _ := r.Update(keyPress('j'))
	r = scr.(*ReviewScreen)
	if r.selected != 1 {
		t.Errorf("selected = %d after down, want 1", r.selected)
	}

	scr, _ = r.Update(keyPress('k'))
	r = scr.(*ReviewScreen)
	if r.selected != 0 {
		t.Errorf("selected = %d after up, want 0", r.selected)
	}

	// Does not move past the ends.
	scr, _ = r.Update(keyPress('k'))
	r = scr.(*ReviewScreen)
	if r.selected != 0 {
		t.Errorf("selected = %d at top, want 0", r.selected)
	}
}

func TestReviewScreen_EnterPushesEdit(t *testing.T) {
	r, _ := testReviewScreen(question("Q1?", 0))

	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*edit.EditScreen); !ok {
		t.Errorf("expected edit screen, got %T", push.Screen)
	}
}

func TestReviewScreen_ExportXLSX(t *testing.T) {
	t.Chdir(t.TempDir())
	r, _ := testReviewScreen(question("Q1?", 0), question("Q2?", 3))

	_, cmd := r.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected an export command")
	}
	msg := cmd().(exportDoneMsg)
	if msg.Err != nil {
		t.Fatalf("export failed: %v", msg.Err)
	}
	if len(msg.Skipped) != 0 {
		t.Errorf("expected no skipped questions, got %d", len(msg.Skipped))
	}
	if _, err := os.Stat(msg.Path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
	if filepath.Ext(msg.Path) != ".xlsx" {
		t.Errorf("path = %q, want .xlsx", msg.Path)
	}
}

func TestReviewScreen_ExportSkipsAmbiguous(t *testing.T) {
	t.Chdir(t.TempDir())
	bad := question("Which?", 0)
	bad.Answers[1].IsCorrect = true
	r, _ := testReviewScreen(question("Q1?", 0), bad)

	_, cmd := r.Update(keyPress('x'))
	msg := cmd().(exportDoneMsg)
	if msg.Err != nil {
		t.Fatalf("export failed: %v", msg.Err)
	}
	if len(msg.Skipped) != 1 {
		t.Fatalf("expected 1 skipped question, got %d", len(msg.Skipped))
	}
}

func TestReviewScreen_ExportJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	r, _ := testReviewScreen(question("Q1?", 0))

	_, cmd := r.Update(keyPress('J'))
	msg := cmd().(exportDoneMsg)
	if msg.Err != nil {
		t.Fatalf("export failed: %v", msg.Err)
	}
	data, err := os.ReadFile(msg.Path)
	if err != nil {
		t.Fatalf("read exported JSON: %v", err)
	}
	if !strings.Contains(string(data), "Q1?") {
		t.Error("exported JSON missing question text")
	}
}

func TestReviewScreen_WarnsOnAmbiguousCorrect(t *testing.T) {
	bad := question("Which?", 0)
	bad.Answers[1].IsCorrect = true
	r, _ := testReviewScreen(bad)

	view := r.View(100, 40)
	if !strings.Contains(view, "2 answers marked correct") {
		t.Error("expected ambiguous-correct warning in view")
	}
}

func TestReviewScreen_ExportStatus(t *testing.T) {
	r, _ := testReviewScreen(question("Q1?", 0))

	scr, _ := r.Update(exportDoneMsg{Path: "out.xlsx"})
	r = scr.(*ReviewScreen)
	if !r.statusOK || !strings.Contains(r.status, "out.xlsx") {
		t.Errorf("status = %q ok=%v, want saved path", r.status, r.statusOK)
	}
}
