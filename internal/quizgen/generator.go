package quizgen

import (
	"context"
	"fmt"

	"katooh/internal/llm"
)

// Generator produces validated quiz sets from free-form topic input.
type Generator interface {
	// Generate runs the full pipeline for one request: prompt assembly,
	// token budgeting, the generation call, the repair cascade, and
	// coercion. Returns a Result with at least one question, or an error.
	Generate(ctx context.Context, req Request) (*Result, error)
}

// LLMGenerator implements Generator on top of a generation provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate produces a quiz set for the given request.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Topic == "" && len(req.Images) == 0 {
		return nil, fmt.Errorf("source text cannot be empty")
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	userMsg := buildUserMessage(req)

	budget := AvailableTokens(g.provider.ModelID(), systemPrompt+"\n"+userMsg)
	if budget == 0 {
		return nil, fmt.Errorf("source text exhausts the %s context window, shorten it", g.provider.ModelID())
	}
	maxTokens := g.config.MaxTokens
	if maxTokens == 0 || maxTokens > budget {
		maxTokens = budget
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:           systemPrompt,
		Messages:         []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Images:           req.Images,
		MaxTokens:        maxTokens,
		Temperature:      g.config.Temperature,
		TopP:             g.config.TopP,
		FrequencyPenalty: g.config.FrequencyPenalty,
		PresencePenalty:  g.config.PresencePenalty,
	})
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	parsed, stage, err := Normalize(resp.Text)
	if err != nil {
		return nil, err
	}

	set, droppedCount, err := Coerce(parsed)
	if err != nil {
		return nil, err
	}

	return &Result{
		Questions:   set,
		Requested:   clampCount(req.Count),
		Dropped:     droppedCount,
		RepairStage: stage,
		Usage:       resp.Usage,
		Model:       resp.Model,
	}, nil
}
