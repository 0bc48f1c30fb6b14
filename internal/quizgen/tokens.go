package quizgen

import (
	"sort"

	"github.com/pkoukk/tiktoken-go"
)

// tokenSafetyMargin is reserved out of every budget to absorb message
// framing overhead the estimate cannot see.
const tokenSafetyMargin = 100

// defaultContextWindow is the conservative fallback for unknown models.
const defaultContextWindow = 8192

// contextWindows maps model IDs to maximum context sizes in tokens.
var contextWindows = map[string]int{
	// OpenAI
	"gpt-3.5-turbo": 16_385,
	"gpt-4":         8_192,
	"gpt-4-turbo":   128_000,
	"gpt-4.1":       1_047_576,
	"gpt-4.1-mini":  1_047_576,
	"gpt-4.1-nano":  1_047_576,
	"gpt-4o":        128_000,
	"gpt-4o-mini":   128_000,
	"gpt-5":         400_000,
	"gpt-5-mini":    400_000,
	"gpt-5-nano":    400_000,
	"o3-mini":       200_000,
	"o4-mini":       200_000,

	// Anthropic
	"claude-3-5-haiku-20241022":  200_000,
	"claude-3-5-sonnet-20241022": 200_000,
	"claude-3-7-sonnet-20250219": 200_000,
	"claude-haiku-4-5-20251001":  200_000,
	"claude-opus-4-1":            200_000,
	"claude-opus-4-5":            200_000,
	"claude-sonnet-4-20250514":   200_000,
	"claude-sonnet-4-5":          1_000_000,

	// Google (Gemini)
	"gemini-1.5-flash": 1_048_576,
	"gemini-1.5-pro":   2_097_152,
	"gemini-2.0-flash": 1_048_576,
	"gemini-2.0-pro":   2_097_152,
	"gemini-2.5-flash": 1_048_576,
	"gemini-2.5-pro":   1_048_576,
}

// KnownModels returns the model IDs with a known context window,
// sorted.
func KnownModels() []string {
	models := make([]string, 0, len(contextWindows))
	for id := range contextWindows {
		models = append(models, id)
	}
	sort.Strings(models)
	return models
}

// ContextWindow returns the model's maximum context size in tokens,
// falling back to a conservative default for unknown models.
func ContextWindow(modelID string) int {
	if w, ok := contextWindows[modelID]; ok {
		return w
	}
	return defaultContextWindow
}

// CountTokens estimates how many tokens the model will charge for text.
// OpenAI-family models are counted with their actual BPE encoding; for
// everything else the estimate deliberately overcounts (~3 bytes per
// token) so the response budget errs toward smaller, never toward a
// truncated response.
func CountTokens(modelID, text string) int {
	enc, err := tiktoken.EncodingForModel(modelID)
	if err != nil {
		return len(text)/3 + 1
	}
	return len(enc.Encode(text, nil, nil))
}

// AvailableTokens computes how many response tokens may safely be
// requested for a prompt against the model's context window. Pure
// function of its inputs and the static table; never negative.
func AvailableTokens(modelID, prompt string) int {
	budget := ContextWindow(modelID) - CountTokens(modelID, prompt) - tokenSafetyMargin
	if budget < 0 {
		return 0
	}
	return budget
}
