// Package evaluator scores a learner's solution with an LLM and returns tips
// and an improved version.
package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/abhisek/codecoach/internal/llm"
	"github.com/abhisek/codecoach/internal/prompts"
)

// ErrMalformedEvaluation reports a model reply that could not be read as an
// evaluation.
var ErrMalformedEvaluation = errors.New("malformed evaluation")

// Evaluation is the review of one solution, in wire form.
type Evaluation struct {
	Score            int      `json:"score"`
	Tips             []string `json:"tips"`
	SuggestedVersion string   `json:"suggested_version"`
}

// ScoreString renders the score the way it is shown to the learner.
func (e *Evaluation) ScoreString() string {
	return strconv.Itoa(e.Score)
}

// Evaluator reviews solutions.
type Evaluator interface {
	Evaluate(ctx context.Context, problem, solution string) (*Evaluation, error)
}

// Config holds configuration for the LLM evaluator.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.2,
	}
}

// LLMEvaluator implements Evaluator using the LLM provider.
type LLMEvaluator struct {
	provider llm.Provider
	prompts  *prompts.Set
	cfg      Config
}

// New creates an LLM-based evaluator.
func New(provider llm.Provider, p *prompts.Set, cfg Config) *LLMEvaluator {
	return &LLMEvaluator{provider: provider, prompts: p, cfg: cfg}
}

// Evaluate asks the model to review solution against problem. The problem
// may be empty when the learner never generated one.
func (e *LLMEvaluator) Evaluate(ctx context.Context, problem, solution string) (*Evaluation, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeSolutionEval)

	prompt, err := e.prompts.Evaluation(problem, solution)
	if err != nil {
		return nil, fmt.Errorf("build evaluation prompt: %w", err)
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      prompt.System,
		Messages:    llm.UserMessage(prompt.User),
		Schema:      EvaluationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		var truncated *llm.ErrMaxTokensExceeded
		if errors.As(err, &invalid) || errors.As(err, &truncated) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedEvaluation, err)
		}
		return nil, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	return decode(resp.Content)
}

func decode(content json.RawMessage) (*Evaluation, error) {
	var ev Evaluation
	if err := json.Unmarshal(content, &ev); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvaluation, err)
	}
	if ev.Score < 0 || ev.Score > prompts.MaxScore {
		return nil, fmt.Errorf("%w: score %d is outside 0-%d", ErrMalformedEvaluation, ev.Score, prompts.MaxScore)
	}
	if ev.Tips == nil {
		ev.Tips = []string{}
	}
	return &ev, nil
}
