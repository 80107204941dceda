package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/codecoach/internal/client"
	"github.com/abhisek/codecoach/internal/controller"
)

func printProblem(w io.Writer, view *controller.MemoryView) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintln(w, view.Text(controller.RegionProblemTitle))
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, view.Text(controller.RegionProblemDescription))
	if ex := view.Text(controller.RegionProblemExamples); ex != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Examples")
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, ex)
	}
}

func printEvaluation(w io.Writer, e *client.Evaluation) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "Score: %s\n", e.Score)
	if len(e.Tips) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tips")
		fmt.Fprintln(w, sep)
		for _, tip := range e.Tips {
			fmt.Fprintf(w, "  • %s\n", tip)
		}
	}
	if e.SuggestedVersion != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Suggested Version")
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, e.SuggestedVersion)
	}
}
