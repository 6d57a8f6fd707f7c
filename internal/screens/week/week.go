// Package week lists the days of one curriculum week.
package week

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pylearn/internal/curriculum"
	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/router"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/screens/day"
	"github.com/abhisek/pylearn/internal/ui/components"
	"github.com/abhisek/pylearn/internal/ui/layout"
	"github.com/abhisek/pylearn/internal/ui/theme"
)

// WeekScreen shows every day of a week with its completion marker.
type WeekScreen struct {
	env      *screen.Env
	week     curriculum.WeekInfo
	selected int // zero-based day index
}

var _ screen.Screen = (*WeekScreen)(nil)
var _ screen.KeyHintProvider = (*WeekScreen)(nil)

// New creates a WeekScreen. The cursor starts on the current day when the
// week is the learner's current week.
func New(env *screen.Env, week curriculum.WeekInfo) *WeekScreen {
	s := &WeekScreen{env: env, week: week}
	r := env.Record()
	if r.CurrentWeek == week.Name && r.CurrentDay >= 1 && r.CurrentDay <= week.MaxDay {
		s.selected = r.CurrentDay - 1
	}
	return s
}

func (s *WeekScreen) Init() tea.Cmd {
	return nil
}

func (s *WeekScreen) Title() string {
	return s.week.Name
}

func (s *WeekScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Space", Description: "Done/undo"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the day under the cursor.
func (s *WeekScreen) Selected() int {
	return s.selected + 1
}

func (s *WeekScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.week.MaxDay-1 {
			s.selected++
		}
	case "space", "x":
		return s, s.env.ToggleDay(s.week.Name, s.Selected())
	case "enter":
		return s, router.Push(day.New(s.env, s.week, s.Selected()))
	}
	return s, nil
}

func (s *WeekScreen) View(width, height int) string {
	r := s.env.Record()

	done := 0
	var rows []string
	for d := 1; d <= s.week.MaxDay; d++ {
		info := s.env.Curriculum.DayInfo(s.week.Name, d)

		marker := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
		switch {
		case progress.IsCompleted(r, s.week.Name, d):
			marker = theme.Done.Render("✓")
			done++
		case progress.IsCurrent(r, s.week.Name, d):
			marker = theme.Current.Render("▶")
		}

		label := theme.Unselected.Render("  " + info.Title)
		if d-1 == s.selected {
			label = theme.Selected.Render("▸ " + info.Title)
		}
		rows = append(rows, fmt.Sprintf("  %s %s", marker, label))
	}

	barWidth := min(width-8, 60)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("  "+s.week.Label()) + "\n\n")
	b.WriteString("  " + components.NewProgressBar(
		fmt.Sprintf("%d/%d", done, s.week.MaxDay), done, s.week.MaxDay, barWidth).View())
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}
