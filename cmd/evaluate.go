package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/codecoach/internal/client"
	"github.com/abhisek/codecoach/internal/controller"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a solution to a problem",
	Long: "Send a problem and a solution to the evaluation service and print the " +
		"score, tips and suggested version. Use - to read the solution from stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		problemPath, _ := cmd.Flags().GetString("problem")
		solutionPath, _ := cmd.Flags().GetString("solution")

		problem, err := readInput(cmd, problemPath)
		if err != nil {
			return fmt.Errorf("read problem: %w", err)
		}
		solution, err := readInput(cmd, solutionPath)
		if err != nil {
			return fmt.Errorf("read solution: %w", err)
		}
		if strings.TrimSpace(solution) == "" {
			return errors.New(controller.EmptySolutionMessage)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		svc := client.New(cfg.Client.BaseURL, client.WithTimeout(cfg.Client.Timeout))
		eval, err := svc.EvaluateSolution(cmd.Context(), problem, solution)
		if err != nil {
			return err
		}
		printEvaluation(cmd.OutOrStdout(), eval)
		return nil
	},
}

// readInput reads a whole file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func init() {
	evaluateCmd.Flags().StringP("problem", "p", "", "File holding the problem text")
	evaluateCmd.Flags().StringP("solution", "s", "", "File holding the solution code (- for stdin)")
	_ = evaluateCmd.MarkFlagRequired("problem")
	_ = evaluateCmd.MarkFlagRequired("solution")
}
