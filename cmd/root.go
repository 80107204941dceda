package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codecoach/internal/config"
	"github.com/abhisek/codecoach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "codecoach",
	Short: "AI coding coach in your terminal",
	Long: "Code Coach: practice Python problems generated at your level and get " +
		"a score, tips and a suggested version of your solution.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
	RunE: runApp,
}

// Execute runs the root command. Cancelling ctx stops long-running commands.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CODECOACH_DB env var)")
	rootCmd.PersistentFlags().String("server", "", "Base URL of the coach services (overrides CODECOACH_SERVER_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if u, _ := cmd.Flags().GetString("server"); u != "" {
		cfg.Client.BaseURL = u
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStore opens the event database at path, creating its directory.
func openStore(path string) (*store.Store, error) {
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
