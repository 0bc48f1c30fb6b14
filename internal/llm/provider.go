package llm

import (
	"context"
)

// Provider is the core abstraction for text-generation services.
// Consumers call Generate with a Request and receive the raw model text.
//
// The response body is untrusted free text: providers perform no JSON
// parsing or schema enforcement. Turning the text into structured quiz
// data is the quizgen package's job.
type Provider interface {
	// Generate sends a prompt to the model and returns its raw response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation. For quiz generation this is a single
	// user message carrying the assembled instruction text.
	Messages []Message

	// Images are optional binary attachments forwarded to multimodal
	// models alongside the text. Attached to the last user message.
	Images []Image

	// MaxTokens is the response-length cap, normally the value computed
	// by the token budgeter.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 2.0.
	Temperature float64

	// TopP is the nucleus sampling parameter. 0 means provider default.
	TopP float64

	// FrequencyPenalty and PresencePenalty are passed through to
	// providers that support them and ignored elsewhere.
	FrequencyPenalty float64
	PresencePenalty  float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Image is a binary attachment for multimodal input.
type Image struct {
	// MIME is the media type, e.g. "image/png" or "image/jpeg".
	MIME string

	// Data is the raw image bytes. Providers encode as needed.
	Data []byte
}

// Response holds the model's output.
type Response struct {
	// Text is the raw generated text, exactly as the service returned it.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
