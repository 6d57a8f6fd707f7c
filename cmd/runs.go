package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pylearn/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the code run history",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent code runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.EventRepo().QueryRuns(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-19s  %-10s  %-3s  %7s  %-2s  %s\n",
			"Run", "Timestamp", "Week", "Day", "Ms", "OK", "First line")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, r := range runs {
			if failed && r.Error == "" {
				continue
			}
			ok := "✓"
			if r.Error != "" {
				ok = "✗"
			}
			week, day := r.Week, fmt.Sprint(r.Day)
			if week == "" {
				week, day = "-", "-"
			}
			fmt.Fprintf(out, "%-8s  %-19s  %-10s  %-3s  %7d  %-2s  %s\n",
				truncate(r.RunID, 8),
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				week, day,
				r.Duration.Milliseconds(),
				ok,
				truncate(firstLine(r.Source), 30),
			)
		}
		return nil
	},
}

func init() {
	runsListCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	runsListCmd.Flags().Bool("failed", false, "Only show failed runs")

	runsCmd.AddCommand(runsListCmd)
}

func firstLine(s string) string {
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}
