package quizgen

import "errors"

// ErrNoValidQuestions is the terminal failure of a generation attempt
// whose response parsed but contained nothing usable.
var ErrNoValidQuestions = errors.New("no valid questions in response")

// Coerce enforces the per-field invariants on a parsed array and
// returns the resulting quiz set plus the number of elements dropped as
// structurally invalid.
//
// Per element, in order: elements missing a string question field or an
// answers collection are dropped silently; question text is hard-cut to
// MaxQuestionLen; answers are cut to the first AnswersPerQuestion
// entries and padded with placeholder incorrect answers up to exactly
// AnswersPerQuestion; answer text is hard-cut to MaxAnswerLen.
//
// is_correct flags are preserved exactly as given. A missing or
// duplicated correct flag is deliberately not repaired here — guessing
// the intended answer would corrupt content silently — and surfaces as
// a per-question error at export time instead.
//
// An empty result is an error; a short one is not (the caller reports
// the shortfall as a warning via Result.Shortfall).
func Coerce(parsed []any) (QuizSet, int, error) {
	var set QuizSet
	dropped := 0

	for _, elem := range parsed {
		obj, ok := elem.(map[string]any)
		if !ok {
			dropped++
			continue
		}

		text, ok := obj["question"].(string)
		if !ok {
			dropped++
			continue
		}

		rawAnswers, ok := obj["answers"].([]any)
		if !ok {
			dropped++
			continue
		}

		q := Question{
			Text:    truncate(text, MaxQuestionLen),
			Answers: coerceAnswers(rawAnswers),
		}
		set = append(set, q)
	}

	if len(set) == 0 {
		return nil, dropped, ErrNoValidQuestions
	}
	return set, dropped, nil
}

// coerceAnswers shapes a raw answers collection into exactly
// AnswersPerQuestion entries.
func coerceAnswers(raw []any) []Answer {
	if len(raw) > AnswersPerQuestion {
		raw = raw[:AnswersPerQuestion]
	}

	answers := make([]Answer, 0, AnswersPerQuestion)
	for _, elem := range raw {
		obj, ok := elem.(map[string]any)
		if !ok {
			answers = append(answers, Answer{Text: PlaceholderAnswer})
			continue
		}
		text, _ := obj["text"].(string)
		correct, _ := obj["is_correct"].(bool)
		answers = append(answers, Answer{
			Text:      truncate(text, MaxAnswerLen),
			IsCorrect: correct,
		})
	}

	for len(answers) < AnswersPerQuestion {
		answers = append(answers, Answer{Text: PlaceholderAnswer})
	}
	return answers
}

// truncate hard-cuts s to at most max characters, no ellipsis.
// Counts runes, not bytes, so multi-byte text is never split mid-rune.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
