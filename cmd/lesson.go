package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/pylearn/internal/curriculum"
	"github.com/abhisek/pylearn/internal/progress"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson [week] [day]",
	Short: "Print a day's lesson",
	Long:  "Print a day's lesson. Without arguments the current day is shown; with only <week> the whole week is listed.",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		r := s.Progress.Load(cmd.Context())
		switch len(args) {
		case 0:
			week, ok := s.Curriculum.Week(r.CurrentWeek)
			if !ok {
				week = curriculum.WeekInfo{Name: r.CurrentWeek, MaxDay: s.Curriculum.MaxDay(r.CurrentWeek)}
			}
			printLesson(out, s.Curriculum, r, week, r.CurrentDay)
		case 1:
			week, err := resolveWeek(s.Curriculum, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, week.Label())
			for day := 1; day <= week.MaxDay; day++ {
				fmt.Fprintf(out, "  %s %s\n", dayMarker(r, week.Name, day), s.Curriculum.DayInfo(week.Name, day).Title)
			}
		default:
			week, day, err := resolveDay(s.Curriculum, args[0], args[1])
			if err != nil {
				return err
			}
			printLesson(out, s.Curriculum, r, week, day)
		}
		return nil
	},
}

func dayMarker(r progress.Record, week string, day int) string {
	switch {
	case progress.IsCompleted(r, week, day):
		return "✓"
	case progress.IsCurrent(r, week, day):
		return "▶"
	default:
		return "○"
	}
}

func printLesson(w io.Writer, c curriculum.Provider, r progress.Record, week curriculum.WeekInfo, day int) {
	info := c.DayInfo(week.Name, day)
	fmt.Fprintf(w, "%s · Day %d/%d %s\n", week.Label(), day, week.MaxDay, dayMarker(r, week.Name, day))
	fmt.Fprintln(w, info.Title)
	fmt.Fprintln(w)
	section(w, "Theory", info.Theory)
	section(w, "Practice", info.Practice)
	section(w, "Tasks", info.Tasks)
}

func section(w io.Writer, label, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(w, "%s:\n  %s\n", label, text)
}
