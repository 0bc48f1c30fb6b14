package export

import (
	"bytes"
	"strings"
	"testing"

	"katooh/internal/quizgen"
)

func TestJSONRoundTrip(t *testing.T) {
	set := quizgen.QuizSet{validQuestion()}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, set); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Pretty-printed for human editing.
	if !strings.Contains(buf.String(), "\n    ") {
		t.Error("JSON export should be indented")
	}

	got, err := ReadJSON(buf.Bytes())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d questions, want 1", len(got))
	}
	if got[0].Text != set[0].Text {
		t.Errorf("question text = %q, want %q", got[0].Text, set[0].Text)
	}
	if !got[0].Answers[0].IsCorrect {
		t.Error("correct flag lost in round trip")
	}
}

func TestReadJSON_RejectsMalformedDocument(t *testing.T) {
	_, err := ReadJSON([]byte(`[{"question":"Q?","answers":[]}]`))
	if err == nil {
		t.Error("expected schema error for empty answers array")
	}

	_, err = ReadJSON([]byte(`not json`))
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestReadJSON_CoercesEditedLengths(t *testing.T) {
	long := strings.Repeat("x", 200)
	doc := `[{"question":"` + long + `","answers":[
		{"text":"A","is_correct":true},
		{"text":"B","is_correct":false},
		{"text":"C","is_correct":false},
		{"text":"D","is_correct":false}]}]`

	set, err := ReadJSON([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len([]rune(set[0].Text)); got != quizgen.MaxQuestionLen {
		t.Errorf("edited question not truncated: %d chars", got)
	}
}
