package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-flash"
	BaseURL string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// setFromEnv overwrites *dst with the named variable when it is set.
func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// ConfigFromEnv builds a Config from CODECOACH_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "CODECOACH_LLM_PROVIDER")

	setFromEnv(&cfg.Anthropic.APIKey, "CODECOACH_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "CODECOACH_ANTHROPIC_MODEL")
	setFromEnv(&cfg.Anthropic.BaseURL, "CODECOACH_ANTHROPIC_BASE_URL")

	setFromEnv(&cfg.OpenAI.APIKey, "CODECOACH_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "CODECOACH_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "CODECOACH_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "CODECOACH_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "CODECOACH_GEMINI_MODEL")
	setFromEnv(&cfg.Gemini.BaseURL, "CODECOACH_GEMINI_BASE_URL")

	setFromEnv(&cfg.OpenRouter.APIKey, "CODECOACH_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "CODECOACH_OPENROUTER_MODEL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "CODECOACH_OPENROUTER_BASE_URL")

	if d, err := time.ParseDuration(os.Getenv("CODECOACH_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	return cfg
}

// DiscoverConfig probes the vendors' standard API key variables in priority
// order (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first one found. Model and timeout overrides from ConfigFromEnv still
// apply. Returns (Config{}, false) if no key is found.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig returns the explicit CODECOACH_* configuration when a
// provider is selected, and otherwise falls back to DiscoverConfig.
func ResolveConfig() (Config, error) {
	if os.Getenv("CODECOACH_LLM_PROVIDER") != "" {
		cfg := ConfigFromEnv()
		return cfg, cfg.Validate()
	}
	if cfg, ok := DiscoverConfig(); ok {
		return cfg, nil
	}
	return Config{}, ErrNotConfigured
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "anthropic":
		key, env = c.Anthropic.APIKey, "CODECOACH_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "CODECOACH_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "CODECOACH_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "CODECOACH_OPENROUTER_API_KEY"
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
