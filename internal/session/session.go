// Package session owns the quiz data for one interactive run. A quiz
// set lives exactly as long as the session: created fresh per
// generation, replaced wholesale when a new generation supersedes it,
// gone when the session ends. Nothing is persisted.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"katooh/internal/quizgen"
)

// Session holds the current quiz set and the request metadata it came
// from. A single interactive session owns exactly one Session value; no
// locking is needed because generation calls never overlap.
type Session struct {
	ID        string
	Quiz      quizgen.QuizSet
	Requested int
	Model     string
	CreatedAt time.Time
}

// New creates an empty session.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
}

// Replace installs a fresh generation result, discarding whatever quiz
// the session held before. Replacement is total, never a merge.
func (s *Session) Replace(res *quizgen.Result) {
	s.Quiz = res.Questions
	s.Requested = res.Requested
	s.Model = res.Model
}

// Clear discards the current quiz set.
func (s *Session) Clear() {
	s.Quiz = nil
	s.Requested = 0
	s.Model = ""
}

// HasQuiz reports whether the session holds a quiz to edit or export.
func (s *Session) HasQuiz() bool {
	return len(s.Quiz) > 0
}

// Shortfall returns how many questions short of the original request
// the current set is.
func (s *Session) Shortfall() int {
	if n := s.Requested - len(s.Quiz); n > 0 {
		return n
	}
	return 0
}

// SetQuestionText replaces a question's text.
func (s *Session) SetQuestionText(q int, text string) error {
	if q < 0 || q >= len(s.Quiz) {
		return fmt.Errorf("no question %d", q+1)
	}
	s.Quiz[q].Text = text
	return nil
}

// SetAnswerText replaces one answer's text.
func (s *Session) SetAnswerText(q, a int, text string) error {
	if err := s.checkAnswer(q, a); err != nil {
		return err
	}
	s.Quiz[q].Answers[a].Text = text
	return nil
}

// SetCorrect marks answer a as the question's single correct answer.
// Editing is where a human resolves the ambiguity the pipeline refuses
// to guess at, so this setter is exclusive by construction.
func (s *Session) SetCorrect(q, a int) error {
	if err := s.checkAnswer(q, a); err != nil {
		return err
	}
	for i := range s.Quiz[q].Answers {
		s.Quiz[q].Answers[i].IsCorrect = i == a
	}
	return nil
}

func (s *Session) checkAnswer(q, a int) error {
	if q < 0 || q >= len(s.Quiz) {
		return fmt.Errorf("no question %d", q+1)
	}
	if a < 0 || a >= len(s.Quiz[q].Answers) {
		return fmt.Errorf("question %d has no answer %d", q+1, a+1)
	}
	return nil
}

// FieldStatus is live character-budget feedback for an edit field.
type FieldStatus struct {
	Length int
	Limit  int
}

// Over reports whether the field exceeds its cap (shown red).
func (f FieldStatus) Over() bool { return f.Length > f.Limit }

// Remaining returns the characters left before the cap; negative when
// over.
func (f FieldStatus) Remaining() int { return f.Limit - f.Length }

// QuestionStatus returns the character budget for question text.
func QuestionStatus(text string) FieldStatus {
	return FieldStatus{Length: len([]rune(text)), Limit: quizgen.MaxQuestionLen}
}

// AnswerStatus returns the character budget for answer text.
func AnswerStatus(text string) FieldStatus {
	return FieldStatus{Length: len([]rune(text)), Limit: quizgen.MaxAnswerLen}
}
