package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pylearn/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect AI hint requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
			if !e.Success && e.ErrorMessage != "" {
				fmt.Fprintf(out, "       %s\n", truncate(e.ErrorMessage, 90))
			}
		}
		return nil
	},
}

type modelUsage struct {
	Provider     string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated token usage per model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		byModel := map[string]*modelUsage{}
		for _, e := range events {
			key := e.Provider + "/" + e.Model
			mu, ok := byModel[key]
			if !ok {
				mu = &modelUsage{Provider: e.Provider, Model: e.Model}
				byModel[key] = mu
			}
			mu.Calls++
			if !e.Success {
				mu.Failures++
			}
			mu.InputTokens += e.InputTokens
			mu.OutputTokens += e.OutputTokens
			mu.LatencyMs += e.LatencyMs
		}
		usage := make([]*modelUsage, 0, len(byModel))
		for _, mu := range byModel {
			usage = append(usage, mu)
		}
		sort.Slice(usage, func(i, j int) bool { return usage[i].Calls > usage[j].Calls })

		fmt.Fprintf(out, "%-12s  %-28s  %6s  %6s  %10s  %10s  %8s\n",
			"Provider", "Model", "Calls", "Failed", "Input", "Output", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 92))

		var totalCalls, totalIn, totalOut int
		for _, mu := range usage {
			fmt.Fprintf(out, "%-12s  %-28s  %6d  %6d  %10d  %10d  %8d\n",
				mu.Provider, truncate(mu.Model, 28), mu.Calls, mu.Failures,
				mu.InputTokens, mu.OutputTokens, mu.LatencyMs/int64(mu.Calls))
			totalCalls += mu.Calls
			totalIn += mu.InputTokens
			totalOut += mu.OutputTokens
		}

		fmt.Fprintln(out, strings.Repeat("─", 92))
		fmt.Fprintf(out, "%-12s  %-28s  %6d  %6s  %10d  %10d\n",
			"TOTAL", "", totalCalls, "", totalIn, totalOut)
		return nil
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. hint)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
