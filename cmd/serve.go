package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codecoach/internal/api"
	"github.com/abhisek/codecoach/internal/evaluator"
	"github.com/abhisek/codecoach/internal/llm"
	"github.com/abhisek/codecoach/internal/problemgen"
	"github.com/abhisek/codecoach/internal/prompts"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the problem and evaluation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		logger := newServerLogger(cfg)
		ctx := cmd.Context()

		st, err := openStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		set, err := prompts.Load(cfg.PromptsFile)
		if err != nil {
			return fmt.Errorf("load prompts: %w", err)
		}

		// Left nil when no provider is configured; the handlers answer with
		// a configuration error instead.
		var (
			gen  problemgen.Generator
			eval evaluator.Evaluator
		)
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger)
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			logger.Warn("LLM provider not configured, AI endpoints will fail",
				"hint", "set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")
		case err != nil:
			return fmt.Errorf("create LLM provider: %w", err)
		default:
			gen = problemgen.New(provider, set, problemgen.DefaultConfig())
			eval = evaluator.New(provider, set, evaluator.DefaultConfig())
			logger.Info("LLM provider ready", "model", provider.ModelID())
		}

		srv := api.NewServer(cfg.Server, gen, eval, st.EventRepo(), logger)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides CODECOACH_ADDR)")
}
