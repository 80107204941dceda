package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/codecoach/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → timeout → retry → logging → base. repo may be nil when calls
// should not be recorded.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, logger *slog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, repo, logger)
	retried := WithRetry(logged, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout), nil
}

// NewProviderFromEnv resolves the configuration from the environment and
// builds the decorated provider. It returns ErrNotConfigured when no
// provider can be found.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo, logger *slog.Logger) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, repo, logger)
}
