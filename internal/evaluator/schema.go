package evaluator

import (
	"github.com/abhisek/codecoach/internal/llm"
	"github.com/abhisek/codecoach/internal/prompts"
)

// Tip count bounds asked of the model.
const (
	MinTips = 2
	MaxTips = 4
)

// EvaluationSchema is the structured output requested for a solution review.
var EvaluationSchema = &llm.Schema{
	Name:        "solution-evaluation",
	Description: "A scored review of a submitted solution with tips and a corrected version",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"description": "Score for correctness, efficiency and readability",
				"minimum":     0,
				"maximum":     prompts.MaxScore,
			},
			"tips": map[string]any{
				"type":        "array",
				"description": "Specific, constructive tips for improvement",
				"items":       map[string]any{"type": "string"},
				"minItems":    MinTips,
				"maxItems":    MaxTips,
			},
			"suggested_version": map[string]any{
				"type":        "string",
				"description": "The full corrected or improved solution",
			},
		},
		"required":             []any{"score", "tips", "suggested_version"},
		"additionalProperties": false,
	},
}
