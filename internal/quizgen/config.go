package quizgen

// Kahoot import limits. Questions or answers over these caps are
// rejected by the platform, so coercion hard-cuts to them.
const (
	// MaxQuestionLen is the question character cap.
	MaxQuestionLen = 120

	// MaxAnswerLen is the answer character cap.
	MaxAnswerLen = 75

	// AnswersPerQuestion is the fixed answer count per question.
	AnswersPerQuestion = 4

	// MaxQuestionsPerCall caps a single generation call. Larger requests
	// produce noticeably more truncated and malformed responses, so the
	// prompt never asks for more; callers chunk instead.
	MaxQuestionsPerCall = 12

	// DefaultCount is the question count used when the caller does not
	// pick one.
	DefaultCount = 5
)

// PlaceholderAnswer pads questions that arrived with fewer than four
// answers. A padded question is lower quality but exportable, which
// loses less than dropping it.
const PlaceholderAnswer = "Placeholder answer"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens caps the response length. 0 means use the full budget
	// computed from the model's context window.
	MaxTokens int

	// Sampling parameters passed through to the generation service.
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// DefaultConfig returns the sampling defaults the original tool shipped
// with.
func DefaultConfig() Config {
	return Config{
		Temperature:      0.7,
		TopP:             1.0,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
	}
}
