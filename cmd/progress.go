package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pylearn/internal/curriculum"
	"github.com/abhisek/pylearn/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or change course progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show completed days per week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		r := s.Progress.Load(cmd.Context())
		printSummary(cmd.OutOrStdout(), r, progress.Summarize(r, s.Curriculum.Weeks()))
		return nil
	},
}

var progressToggleCmd = &cobra.Command{
	Use:   "toggle <week> <day>",
	Short: "Mark a day done, or undo it",
	Long:  "Toggle the completion flag of a day. <week> is a number (3) or a name (\"Week 3\").",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		week, day, err := resolveDay(s.Curriculum, args[0], args[1])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		r := progress.Toggle(s.Progress.Load(ctx), week.Name, day)
		if err := s.Progress.Save(ctx, r); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}

		state := "not done"
		if progress.IsCompleted(r, week.Name, day) {
			state = "done"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s, day %d: %s\n", week.Name, day, state)
		return nil
	},
}

var progressAdvanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Move to the next day once the current one is done",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		r := s.Progress.Load(ctx)
		if !progress.CanProceed(r) {
			return fmt.Errorf("finish %s, day %d first", r.CurrentWeek, r.CurrentDay)
		}
		next, ok := progress.Advance(r, s.Curriculum)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Course complete. Well done!")
			return nil
		}
		if err := s.Progress.Save(ctx, next); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Now on %s, day %d\n", next.CurrentWeek, next.CurrentDay)
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget all progress and start from Week 1",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset all progress?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		if _, err := s.Progress.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	progressResetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressToggleCmd)
	progressCmd.AddCommand(progressAdvanceCmd)
	progressCmd.AddCommand(progressResetCmd)
}

func printSummary(w io.Writer, r progress.Record, sum progress.Summary) {
	for _, ws := range sum.Weeks {
		marker := " "
		if ws.Current {
			marker = "▶"
		}
		fmt.Fprintf(w, "%s %-40s %d/%d  %s %3.0f%%\n",
			marker, ws.Week.Label(), ws.Completed, ws.Week.MaxDay,
			bar(ws.Percent(), 12), ws.Percent())
	}
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "Total: %d/%d days (%.0f%%)\n", sum.Completed, sum.Total, sum.Percent())
	fmt.Fprintf(w, "Current: %s, day %d\n", r.CurrentWeek, r.CurrentDay)
}

func bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// resolveWeek accepts a week number ("3") or a week name ("Week 3").
func resolveWeek(c curriculum.Provider, arg string) (curriculum.WeekInfo, error) {
	weeks := c.Weeks()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(weeks) {
			return curriculum.WeekInfo{}, fmt.Errorf("week %d out of range 1-%d", n, len(weeks))
		}
		return weeks[n-1], nil
	}
	for _, w := range weeks {
		if strings.EqualFold(w.Name, strings.TrimSpace(arg)) {
			return w, nil
		}
	}
	return curriculum.WeekInfo{}, fmt.Errorf("unknown week %q", arg)
}

func resolveDay(c curriculum.Provider, weekArg, dayArg string) (curriculum.WeekInfo, int, error) {
	week, err := resolveWeek(c, weekArg)
	if err != nil {
		return curriculum.WeekInfo{}, 0, err
	}
	day, err := strconv.Atoi(dayArg)
	if err != nil {
		return curriculum.WeekInfo{}, 0, fmt.Errorf("invalid day %q: %w", dayArg, err)
	}
	if day < 1 || day > week.MaxDay {
		return curriculum.WeekInfo{}, 0, fmt.Errorf("%s has days 1-%d", week.Name, week.MaxDay)
	}
	return week, day, nil
}

var errNoAnswer = errors.New("no answer")

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := readLine(in)
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func readLine(in io.Reader) (string, error) {
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errNoAnswer
	}
	return sc.Text(), nil
}
