package quizgen

import "katooh/internal/llm"

// Answer is one of a question's four answer options.
type Answer struct {
	// Text is the answer option shown to players.
	// At most 75 characters after coercion (the Kahoot limit).
	Text string `json:"text"`

	// IsCorrect marks the correct option. Exactly one answer per
	// question should carry it; the coercer never repairs a missing or
	// duplicated flag, so the export layer is where a violation surfaces.
	IsCorrect bool `json:"is_correct"`
}

// Question is a single quiz question with exactly four answer options.
type Question struct {
	// Text is the question prompt.
	// At most 120 characters after coercion (the Kahoot limit).
	Text string `json:"question"`

	// Answers holds exactly four options after coercion.
	Answers []Answer `json:"answers"`
}

// QuizSet is a validated, ordered collection of questions ready for
// editing and export. It is created fresh per generation request, owned
// by the current session, and replaced wholesale on regeneration.
type QuizSet []Question

// Request holds all input for one generation call. The pipeline reads
// nothing but this struct — no ambient session state.
type Request struct {
	// Topic is the source text or topic to generate questions about.
	// May be free text typed by the user or text extracted from a document.
	Topic string

	// Count is the desired number of questions. Clamped to
	// [1, MaxQuestionsPerCall]; callers wanting more must chunk into
	// multiple calls.
	Count int

	// Objectives describes the learning objectives, free text. Optional.
	Objectives string

	// Audience describes the target audience, free text. Optional.
	Audience string

	// Images are optional attachments forwarded to multimodal models,
	// e.g. a photographed worksheet. Never OCR'd locally.
	Images []llm.Image
}

// Result is the outcome of a successful generation call.
// A shortfall (fewer questions than requested) is a degraded outcome
// carried in the Result, never an error.
type Result struct {
	// Questions is the coerced quiz set, in generation order.
	Questions QuizSet

	// Requested is the clamped question count that was asked for.
	Requested int

	// Dropped counts parsed elements discarded as structurally invalid.
	Dropped int

	// RepairStage names the normalization stage that produced a parse,
	// "direct" when the response was well-formed as-is.
	RepairStage string

	// Usage and Model report what the generation service consumed.
	Usage llm.Usage
	Model string
}

// Shortfall returns how many questions short of the request the result
// is, 0 when the full count was produced.
func (r *Result) Shortfall() int {
	if n := r.Requested - len(r.Questions); n > 0 {
		return n
	}
	return 0
}
