package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// OpenRouter speaks the OpenAI protocol and takes vendor-prefixed model IDs
// ("google/gemini-2.5-flash"), so the model is never remapped.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	return newOpenAICompatible("OpenRouter", cfg.APIKey, baseURL, cfg.Model), nil
}
