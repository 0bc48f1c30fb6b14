// Package export flattens a validated quiz set into the Kahoot import
// layout: one row per question, answers in random order, a 1-based
// pointer at the correct one.
package export

import (
	"fmt"
	"math/rand/v2"

	"katooh/internal/quizgen"
)

// DefaultTimeSeconds is the per-question time limit written to every
// row. A fixed global setting, never computed.
const DefaultTimeSeconds = 20

// Row is the flattened, shuffled representation of one question.
type Row struct {
	Question        string
	Answers         [quizgen.AnswersPerQuestion]string
	TimeSeconds     int
	CorrectPosition int // 1-based index into Answers
}

// AmbiguousCorrectError reports a question whose answers hold zero or
// more than one correct flag at export time. The coercer deliberately
// leaves correct flags untouched, so this is where the ambiguity
// surfaces; guessing the intended answer would corrupt content.
type AmbiguousCorrectError struct {
	// Index is the question's 0-based position in the quiz set.
	Index int

	// Question is the question text, for the diagnostic.
	Question string

	// CorrectCount is the number of answers flagged correct.
	CorrectCount int
}

func (e *AmbiguousCorrectError) Error() string {
	return fmt.Sprintf("question %d (%q): %d answers marked correct, want exactly 1",
		e.Index+1, e.Question, e.CorrectCount)
}

// BuildRow flattens a single question, shuffling its answers into a
// uniformly random permutation. Each call reshuffles, so exporting the
// same question twice yields different correct positions — intended
// anti-memorization behavior, not a defect.
func BuildRow(index int, q quizgen.Question) (Row, error) {
	if len(q.Answers) != quizgen.AnswersPerQuestion {
		return Row{}, fmt.Errorf("question %d (%q): %d answers, want %d (was the set coerced?)",
			index+1, q.Text, len(q.Answers), quizgen.AnswersPerQuestion)
	}

	answers := make([]quizgen.Answer, len(q.Answers))
	copy(answers, q.Answers)
	rand.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})

	row := Row{
		Question:    q.Text,
		TimeSeconds: DefaultTimeSeconds,
	}

	correct := 0
	for i, a := range answers {
		row.Answers[i] = a.Text
		if a.IsCorrect {
			correct++
			row.CorrectPosition = i + 1
		}
	}

	if correct != 1 {
		return Row{}, &AmbiguousCorrectError{
			Index:        index,
			Question:     q.Text,
			CorrectCount: correct,
		}
	}
	return row, nil
}

// BuildRows flattens a whole quiz set. An ambiguous question fails only
// its own row: the rest of the batch still exports, and the failures
// come back aggregated so the caller can report them all at once.
func BuildRows(set quizgen.QuizSet) ([]Row, []error) {
	rows := make([]Row, 0, len(set))
	var failed []error

	for i, q := range set {
		row, err := BuildRow(i, q)
		if err != nil {
			failed = append(failed, err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, failed
}
