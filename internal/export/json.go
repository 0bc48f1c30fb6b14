package export

import (
	"encoding/json"
	"fmt"
	"io"

	"katooh/internal/quizgen"
)

// WriteJSON writes the quiz set as a pretty-printed question array, the
// alternate persisted representation a human can edit and re-import.
func WriteJSON(w io.Writer, set quizgen.QuizSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode quiz JSON: %w", err)
	}
	return nil
}

// ReadJSON parses a quiz JSON document back into a quiz set. The
// document is first checked against the quiz schema — hand-edited files
// deserve precise structural errors — and then coerced, so edits that
// pushed a field over its character cap are truncated the same way
// generated content is.
func ReadJSON(data []byte) (quizgen.QuizSet, error) {
	if err := quizgen.ValidateDocument(data); err != nil {
		return nil, err
	}

	var parsed []any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse quiz JSON: %w", err)
	}

	set, _, err := quizgen.Coerce(parsed)
	if err != nil {
		return nil, err
	}
	return set, nil
}
