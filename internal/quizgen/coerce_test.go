package quizgen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// mustParse is a test helper turning a JSON array literal into []any.
func mustParse(t *testing.T, s string) []any {
	t.Helper()
	var arr []any
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return arr
}

func TestCoerce_TruncatesQuestionAndAnswers(t *testing.T) {
	longQ := strings.Repeat("q", 300)
	longA := strings.Repeat("a", 300)

	parsed := []any{
		map[string]any{
			"question": longQ,
			"answers": []any{
				map[string]any{"text": longA, "is_correct": true},
				map[string]any{"text": "B", "is_correct": false},
				map[string]any{"text": "C", "is_correct": false},
				map[string]any{"text": "D", "is_correct": false},
			},
		},
	}

	set, _, err := Coerce(parsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len([]rune(set[0].Text)); got != MaxQuestionLen {
		t.Errorf("question length = %d, want %d", got, MaxQuestionLen)
	}
	if got := len([]rune(set[0].Answers[0].Text)); got != MaxAnswerLen {
		t.Errorf("answer length = %d, want %d", got, MaxAnswerLen)
	}
	// Already-short strings pass through unchanged.
	if set[0].Answers[1].Text != "B" {
		t.Errorf("short answer changed: %q", set[0].Answers[1].Text)
	}
}

func TestCoerce_TruncationIdempotent(t *testing.T) {
	for _, n := range []int{0, 1, 75, 76, 120, 121, 500} {
		s := strings.Repeat("x", n)
		once := truncate(s, MaxQuestionLen)
		twice := truncate(once, MaxQuestionLen)
		if once != twice {
			t.Errorf("n=%d: truncation not idempotent", n)
		}
		if len([]rune(once)) > MaxQuestionLen {
			t.Errorf("n=%d: length %d exceeds cap", n, len([]rune(once)))
		}
	}
}

func TestCoerce_AnswerCountInvariant(t *testing.T) {
	// 0 through 6 raw answers all coerce to exactly 4.
	for n := 0; n <= 6; n++ {
		answers := make([]any, n)
		for i := range answers {
			answers[i] = map[string]any{"text": "opt", "is_correct": i == 0}
		}
		parsed := []any{
			map[string]any{"question": "Q?", "answers": answers},
		}

		set, _, err := Coerce(parsed)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(set[0].Answers) != AnswersPerQuestion {
			t.Errorf("n=%d: got %d answers, want %d", n, len(set[0].Answers), AnswersPerQuestion)
		}
	}
}

func TestCoerce_PadsWithPlaceholders(t *testing.T) {
	parsed := mustParse(t, `[{"question":"Q?","answers":[{"text":"A","is_correct":true}]}]`)

	set, _, err := Coerce(parsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < AnswersPerQuestion; i++ {
		a := set[0].Answers[i]
		if a.Text != PlaceholderAnswer {
			t.Errorf("answer %d text = %q, want placeholder", i, a.Text)
		}
		if a.IsCorrect {
			t.Errorf("padded answer %d must not be correct", i)
		}
	}
}

func TestCoerce_SkipsInvalidElements(t *testing.T) {
	parsed := mustParse(t, `[
		{"question":"Valid 1","answers":[{"text":"A","is_correct":true},{"text":"B","is_correct":false},{"text":"C","is_correct":false},{"text":"D","is_correct":false}]},
		{"answers":[{"text":"A","is_correct":true}]},
		{"question":42,"answers":[]},
		"just a string",
		{"question":"No answers at all"},
		{"question":"Valid 2","answers":[{"text":"A","is_correct":true},{"text":"B","is_correct":false},{"text":"C","is_correct":false},{"text":"D","is_correct":false}]},
		{"question":"Valid 3","answers":[{"text":"A","is_correct":true},{"text":"B","is_correct":false},{"text":"C","is_correct":false},{"text":"D","is_correct":false}]}
	]`)

	set, dropped, err := Coerce(parsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// requested=5-style shortfall: only 3 structurally valid.
	if len(set) != 3 {
		t.Fatalf("got %d questions, want 3", len(set))
	}
	if dropped != 4 {
		t.Errorf("dropped = %d, want 4", dropped)
	}
	// Original order preserved.
	if set[0].Text != "Valid 1" || set[1].Text != "Valid 2" || set[2].Text != "Valid 3" {
		t.Errorf("order not preserved: %v", []string{set[0].Text, set[1].Text, set[2].Text})
	}
}

func TestCoerce_PreservesCorrectFlags(t *testing.T) {
	// Zero and duplicate correct flags are kept as-is, never repaired.
	parsed := mustParse(t, `[{"question":"Q?","answers":[
		{"text":"A","is_correct":true},
		{"text":"B","is_correct":true},
		{"text":"C","is_correct":false},
		{"text":"D","is_correct":false}]}]`)

	set, _, err := Coerce(parsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	correct := 0
	for _, a := range set[0].Answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct != 2 {
		t.Errorf("correct count = %d, want the 2 given", correct)
	}
}

func TestCoerce_EmptyIsTerminal(t *testing.T) {
	_, _, err := Coerce(mustParse(t, `["nope", 7]`))
	if !errors.Is(err, ErrNoValidQuestions) {
		t.Errorf("expected ErrNoValidQuestions, got %v", err)
	}

	_, _, err = Coerce(nil)
	if !errors.Is(err, ErrNoValidQuestions) {
		t.Errorf("empty input: expected ErrNoValidQuestions, got %v", err)
	}
}

func TestResultShortfall(t *testing.T) {
	r := &Result{Requested: 5, Questions: make(QuizSet, 3)}
	if r.Shortfall() != 2 {
		t.Errorf("shortfall = %d, want 2", r.Shortfall())
	}
	r.Questions = make(QuizSet, 5)
	if r.Shortfall() != 0 {
		t.Errorf("full result shortfall = %d, want 0", r.Shortfall())
	}
}
