package problemgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/codecoach/internal/llm"
	"github.com/abhisek/codecoach/internal/prompts"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	prompts  *prompts.Set
	config   Config
}

// New creates a new LLMGenerator with the given provider, prompts and config.
func New(provider llm.Provider, p *prompts.Set, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, prompts: p, config: cfg}
}

// Generate produces the tagged text of a single problem for level.
func (g *LLMGenerator) Generate(ctx context.Context, level Level) (string, error) {
	if !level.Valid() {
		return "", fmt.Errorf("level %d is outside %d-%d", level, MinLevel, MaxLevel)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeProblemGen)

	prompt, err := g.prompts.Generation(int(level))
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	req := llm.Request{
		System:      prompt.System,
		Messages:    llm.UserMessage(prompt.User),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	attempts := max(g.config.MaxAttempts, 1)
	var lastErr error
	for range attempts {
		text, err := g.generateOnce(ctx, req, level)
		if err == nil {
			return text, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return "", err
		}
	}
	return "", lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, req llm.Request, level Level) (string, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(resp.Text, level); verr != nil {
			return "", verr
		}
	}
	return resp.Text, nil
}
