package llm

import "strings"

// ModelCost is USD pricing per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns pricing for a model, or nil if the model is unknown.
//
// OpenRouter ids ("anthropic/claude-sonnet-4-5") are matched on the part
// after the vendor slash. Dated or suffixed ids ("gpt-4o-2024-11-20",
// "claude-haiku-4-5-20251001") fall back to the longest known family
// prefix that ends on a dash boundary.
func LookupCost(modelID string) *ModelCost {
	id := normalizeModelID(modelID)
	if id == "" {
		return nil
	}
	if c, ok := modelCosts[id]; ok {
		return &c
	}

	best := ""
	for family := range modelCosts {
		if len(family) <= len(best) {
			continue
		}
		if strings.HasPrefix(id, family+"-") {
			best = family
		}
	}
	if best == "" {
		return nil
	}
	c := modelCosts[best]
	return &c
}

func normalizeModelID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	// OpenRouter variant tags such as ":free" or ":nitro".
	if i := strings.Index(id, ":"); i >= 0 {
		id = id[:i]
	}
	return id
}

// modelCosts lists model families; dated snapshots resolve by prefix.
// Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-haiku":    {0.25, 1.25},
	"claude-3-opus":     {15, 75},
	"claude-3-5-haiku":  {0.8, 4},
	"claude-3-5-sonnet": {3, 15},
	"claude-3-7-sonnet": {3, 15},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-0": {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4":     {15, 75},
	"claude-opus-4-0":   {15, 75},
	"claude-opus-4-1":   {15, 75},
	"claude-opus-4-5":   {5, 25},
	"claude-opus-4-6":   {5, 25},

	// OpenAI
	"gpt-3.5-turbo":      {0.5, 1.5},
	"gpt-4":              {30, 60},
	"gpt-4-turbo":        {10, 30},
	"gpt-4o":             {2.5, 10},
	"gpt-4o-mini":        {0.15, 0.6},
	"gpt-4.1":            {2, 8},
	"gpt-4.1-mini":       {0.4, 1.6},
	"gpt-4.1-nano":       {0.1, 0.4},
	"gpt-5":              {1.25, 10},
	"gpt-5-mini":         {0.25, 2},
	"gpt-5-nano":         {0.05, 0.4},
	"gpt-5-pro":          {15, 120},
	"gpt-5.1":            {1.25, 10},
	"gpt-5.1-codex-mini": {0.25, 2},
	"gpt-5.2":            {1.75, 14},
	"gpt-5.2-pro":        {21, 168},
	"o1":                 {15, 60},
	"o1-mini":            {1.1, 4.4},
	"o3":                 {2, 8},
	"o3-mini":            {1.1, 4.4},
	"o3-pro":             {20, 80},
	"o4-mini":            {1.1, 4.4},

	// Google
	"gemini-1.5-flash":      {0.075, 0.3},
	"gemini-1.5-pro":        {1.25, 5},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-3-flash":        {0.5, 3},
	"gemini-3-pro":          {2, 12},
}
