package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/codecoach/internal/app"
	"github.com/abhisek/codecoach/internal/client"
	"github.com/abhisek/codecoach/internal/screens/coach"
)

// runApp builds the service client and launches the TUI.
func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, logFile, err := newFileLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx := cmd.Context()
	svc := client.New(cfg.Client.BaseURL, client.WithTimeout(cfg.Client.Timeout))

	healthCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := svc.Health(healthCtx); err != nil {
		logger.Warn("coach service not reachable", "url", svc.BaseURL(), "error", err)
		fmt.Fprintf(os.Stderr, "Coach service not reachable at %s: %v\n", svc.BaseURL(), err)
		fmt.Fprintln(os.Stderr, "Start it with `codecoach serve`. Requests will fail until it is up.")
	}

	logger.Info("starting terminal UI", "server", svc.BaseURL())
	return app.Run(coach.New(ctx, svc, logger))
}
