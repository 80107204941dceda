package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codecoach/internal/client"
	"github.com/abhisek/codecoach/internal/controller"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one problem at a difficulty level and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		if level < controller.MinLevel || level > controller.MaxLevel {
			return fmt.Errorf("level must be between %d and %d, got %d",
				controller.MinLevel, controller.MaxLevel, level)
		}
		raw, _ := cmd.Flags().GetBool("raw")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		svc := client.New(cfg.Client.BaseURL, client.WithTimeout(cfg.Client.Timeout))
		view := controller.NewMemoryView()
		ctrl := controller.New(view, svc, newCLILogger(cfg))
		ctrl.SetLevel(level)
		ctrl.GenerateProblem(cmd.Context())

		if ctrl.ProblemText() == "" {
			return errors.New(view.Text(controller.RegionProblemDescription))
		}

		out := cmd.OutOrStdout()
		if raw {
			fmt.Fprintln(out, ctrl.ProblemText())
			return nil
		}
		printProblem(out, view)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("level", "l", controller.DefaultLevel, "Difficulty level (1-10)")
	generateCmd.Flags().Bool("raw", false, "Print the tagged problem text as returned by the service")
}
