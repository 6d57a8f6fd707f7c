// Package day shows the lesson text of one curriculum day.
package day

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pylearn/internal/curriculum"
	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/router"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/screens/editor"
	"github.com/abhisek/pylearn/internal/ui/layout"
	"github.com/abhisek/pylearn/internal/ui/theme"
)

// Toast texts for the "next day" action.
const (
	MsgFinishFirst = "Mark this day as done first"
	MsgCourseDone  = "That was the last lesson. Well done!"
)

// DayScreen renders theory, practice and tasks for one day.
type DayScreen struct {
	env  *screen.Env
	week curriculum.WeekInfo
	day  int
	info curriculum.DayInfo

	advancing bool
}

var _ screen.Screen = (*DayScreen)(nil)
var _ screen.KeyHintProvider = (*DayScreen)(nil)

// New creates a DayScreen.
func New(env *screen.Env, week curriculum.WeekInfo, day int) *DayScreen {
	return &DayScreen{
		env:  env,
		week: week,
		day:  day,
		info: env.Curriculum.DayInfo(week.Name, day),
	}
}

func (s *DayScreen) Init() tea.Cmd {
	return nil
}

func (s *DayScreen) Title() string {
	return fmt.Sprintf("%s · Day %d", s.week.Name, s.day)
}

func (s *DayScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Space", Description: "Done/undo"},
		{Key: "e", Description: "Editor"},
	}
	if s.isCurrent() {
		hints = append(hints, layout.KeyHint{Key: "n", Description: "Next day"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *DayScreen) isCurrent() bool {
	return progress.IsCurrent(s.env.Record(), s.week.Name, s.day)
}

func (s *DayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProgressMsg:
		if !s.advancing {
			return s, nil
		}
		s.advancing = false
		return s, s.follow(msg.Record)
	case screen.ToastMsg:
		// A failed save still moves the learner on for this session.
		if !s.advancing {
			return s, nil
		}
		s.advancing = false
		return s, s.follow(s.env.Record())
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "space", "x":
		return s, s.env.ToggleDay(s.week.Name, s.day)
	case "e", "enter":
		return s, router.Push(editor.New(s.env, s.week.Name, s.day))
	case "n":
		return s, s.next()
	}
	return s, nil
}

// next advances the learner's position. Once the save lands the screen
// is swapped for the new current day.
func (s *DayScreen) next() tea.Cmd {
	r := s.env.Record()
	if !progress.IsCurrent(r, s.week.Name, s.day) {
		return nil
	}
	if !progress.CanProceed(r) {
		return screen.Toast(MsgFinishFirst)
	}
	nr, ok := progress.Advance(r, s.env.Curriculum)
	if !ok {
		return screen.Toast(MsgCourseDone)
	}
	s.advancing = true
	return s.env.SaveProgress(nr)
}

// follow swaps the screen for r's current day.
func (s *DayScreen) follow(r progress.Record) tea.Cmd {
	if progress.IsCurrent(r, s.week.Name, s.day) {
		return nil
	}
	next := New(s.env, s.env.Week(r.CurrentWeek), r.CurrentDay)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *DayScreen) View(width, height int) string {
	r := s.env.Record()
	textWidth := max(min(width-6, 80), 20)
	wrap := lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text)

	status := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○ not done yet")
	switch {
	case progress.IsCompleted(r, s.week.Name, s.day):
		status = theme.Done.Render("✓ done")
	case progress.IsCurrent(r, s.week.Name, s.day):
		status = theme.Current.Render("▶ today's lesson")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + theme.Title.Render(s.info.Title) + "   " + status + "\n")
	b.WriteString("  " + theme.Subtitle.Render(s.week.Label()) + "\n")

	section := func(label, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		b.WriteString("\n  " + theme.Label.Render(label) + "\n")
		for _, line := range strings.Split(wrap.Render(text), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	section("Theory", s.info.Theory)
	section("Practice", s.info.Practice)
	section("Tasks", s.info.Tasks)
	return b.String()
}
