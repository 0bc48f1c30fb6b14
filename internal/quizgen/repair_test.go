package quizgen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const wellFormed = `[{"question":"Q1?","answers":[` +
	`{"text":"A","is_correct":true},` +
	`{"text":"B","is_correct":false},` +
	`{"text":"C","is_correct":false},` +
	`{"text":"D","is_correct":false}]}]`

func TestNormalize_Direct(t *testing.T) {
	parsed, stage, err := Normalize(wellFormed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != "direct" {
		t.Errorf("stage = %q, want %q", stage, "direct")
	}
	if len(parsed) != 1 {
		t.Errorf("expected 1 element, got %d", len(parsed))
	}
}

func TestNormalize_FenceStrip(t *testing.T) {
	raw := "```json\n" + wellFormed + "\n```"
	parsed, stage, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != "fence-strip" {
		t.Errorf("stage = %q, want %q", stage, "fence-strip")
	}
	if len(parsed) != 1 {
		t.Errorf("expected 1 element, got %d", len(parsed))
	}
}

func TestNormalize_ControlScrub(t *testing.T) {
	// A literal newline inside a string field is invalid JSON; the scrub
	// stage must escape it rather than lose it.
	raw := `[{"question":"Line one` + "\n" + `line two?","answers":[` +
		`{"text":"A","is_correct":true},` +
		`{"text":"B","is_correct":false},` +
		`{"text":"C","is_correct":false},` +
		`{"text":"D","is_correct":false}]}]`

	parsed, stage, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != "control-scrub" {
		t.Errorf("stage = %q, want %q", stage, "control-scrub")
	}

	obj := parsed[0].(map[string]any)
	q := obj["question"].(string)
	if !strings.Contains(q, "\n") {
		t.Errorf("embedded newline lost: %q", q)
	}
}

func TestNormalize_TrailingComma(t *testing.T) {
	// The worked example from the design: one trailing comma before the
	// closing bracket, otherwise valid.
	raw := strings.TrimSuffix(wellFormed, "]") + ",]"

	parsed, stage, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != "comma-patch" {
		t.Errorf("stage = %q, want %q", stage, "comma-patch")
	}
	if len(parsed) != 1 {
		t.Errorf("expected 1 element, got %d", len(parsed))
	}
}

func TestNormalize_TruncatedMidObject(t *testing.T) {
	// Response cut off at the length limit, mid-object.
	raw := `[{"question":"Q1?","answers":[` +
		`{"text":"A","is_correct":true},` +
		`{"text":"B","is_correct":false},` +
		`{"text":"C","is_correct":false},` +
		`{"text":"D","is_correct":false}]},` +
		`{"question":"Q2?","answers":[{"text":"A","is_correct":true}`

	parsed, stage, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != "bracket-balance" {
		t.Errorf("stage = %q, want %q", stage, "bracket-balance")
	}
	// Both the complete and the completed-by-repair object survive parsing.
	if len(parsed) != 2 {
		t.Errorf("expected 2 elements, got %d", len(parsed))
	}
}

func TestNormalize_FragmentExtraction(t *testing.T) {
	frag := `{"question":"Q1?","answers":[` +
		`{"text":"A","is_correct":true},` +
		`{"text":"B","is_correct":false},` +
		`{"text":"C","is_correct":false},` +
		`{"text":"D","is_correct":false}]}`

	// Scattered garbage between otherwise well-formed fragments, and an
	// unbalanced brace to defeat the earlier stages.
	raw := "Here is your quiz{{{: " + frag + " some commentary " + frag + " bye"

	parsed, stage, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage != "fragment-extract" {
		t.Errorf("stage = %q, want %q", stage, "fragment-extract")
	}
	if len(parsed) != 2 {
		t.Errorf("expected 2 extracted fragments, got %d", len(parsed))
	}
}

func TestNormalize_FragmentExtraction_WrongAnswerCount(t *testing.T) {
	frag := `{"question":"Q1?","answers":[{"text":"A","is_correct":true}]}`
	raw := "prose{{{ " + frag + " prose"

	_, _, err := Normalize(raw)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError for fragments with wrong answer count, got %v", err)
	}
}

func TestNormalize_TerminalFailure(t *testing.T) {
	raw := "I'm sorry, I can't create a quiz about that."

	_, _, err := Normalize(raw)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Raw != raw {
		t.Errorf("ParseError.Raw = %q, want the original text", perr.Raw)
	}
}

func TestNormalize_PreservesContent(t *testing.T) {
	parsed, _, err := Normalize(wellFormed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	round, err := json.Marshal(parsed)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	var want, got []any
	if err := json.Unmarshal([]byte(wellFormed), &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(round, &got); err != nil {
		t.Fatal(err)
	}
	if len(want) != len(got) {
		t.Errorf("content changed through normalization")
	}
}
