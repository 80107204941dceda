package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show coaching requests per difficulty level",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.EventRepo().CoachStatsByLevel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query coach stats: %w", err)
		}

		if len(stats) == 0 {
			fmt.Println("No coaching activity recorded yet.")
			return nil
		}

		fmt.Println("Coaching by Level")
		fmt.Println(strings.Repeat("─", 64))
		fmt.Printf("%-7s  %9s  %9s  %6s  %8s  %9s\n",
			"Level", "Problems", "Evaluated", "Failed", "Success", "Avg Score")
		fmt.Println(strings.Repeat("─", 64))

		var totalGen, totalEval, totalFailed int
		for _, st := range stats {
			level := strconv.Itoa(st.Level)
			if st.Level == 0 {
				level = "?"
			}
			avg := "-"
			if st.ScoredCount > 0 {
				avg = fmt.Sprintf("%.1f", st.AvgScore)
			}
			fmt.Printf("%-7s  %9d  %9d  %6d  %8s  %9s\n",
				level, st.Generated, st.Evaluated, st.Failed,
				successRate(st.Generated+st.Evaluated, st.Failed), avg)
			totalGen += st.Generated
			totalEval += st.Evaluated
			totalFailed += st.Failed
		}

		fmt.Println(strings.Repeat("─", 64))
		fmt.Printf("%-7s  %9d  %9d  %6d  %8s\n",
			"TOTAL", totalGen, totalEval, totalFailed, successRate(totalGen+totalEval, totalFailed))
		return nil
	},
}

func successRate(ok, failed int) string {
	total := ok + failed
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(ok)/float64(total))
}
