package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pylearn/internal/router"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/store"
	"github.com/abhisek/pylearn/internal/ui/layout"
	"github.com/abhisek/pylearn/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Runs      []store.RunEventRecord
	Reminders []store.ReminderEventRecord
	Err       error
}

type tab int

const (
	tabRuns tab = iota
	tabReminders
)

// HistoryScreen displays past code runs and reminder activity.
type HistoryScreen struct {
	eventRepo store.EventRepo
	runs      []store.RunEventRecord
	reminders []store.ReminderEventRecord
	tab       tab
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		runs, err := repo.QueryRuns(ctx, store.QueryOpts{Limit: historyLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		reminders, err := repo.QueryReminders(ctx, store.QueryOpts{Limit: historyLimit})
		if err != nil {
			return historyLoadedMsg{Runs: runs}
		}
		return historyLoadedMsg{Runs: runs, Reminders: reminders}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Runs/Reminders"},
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) rows() int {
	if s.tab == tabRuns {
		return len(s.runs)
	}
	return len(s.reminders)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.runs = msg.Runs
			s.reminders = msg.Reminders
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop
		case "tab":
			s.tab = 1 - s.tab
			s.selected = 0
			s.expanded = make(map[int]bool)
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rows()-1 {
				s.selected++
			}
		case "enter":
			if s.tab == tabRuns {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderTabs(width))
	b.WriteString("\n\n")

	if s.rows() == 0 {
		empty := "No runs yet. Open the editor and press Ctrl+R!"
		if s.tab == tabReminders {
			empty = "No reminder activity yet."
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(empty))
		return b.String()
	}

	if s.tab == tabRuns {
		s.renderRuns(&b, width)
	} else {
		s.renderReminders(&b, width)
	}
	return b.String()
}

func (s *HistoryScreen) renderTabs(width int) string {
	runs, reminders := theme.ButtonInactive, theme.ButtonInactive
	if s.tab == tabRuns {
		runs = theme.ButtonActive
	} else {
		reminders = theme.ButtonActive
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		runs.Render("Code runs")+"  "+reminders.Render("Reminders"))
}

func (s *HistoryScreen) renderRuns(b *strings.Builder, width int) {
	for i, run := range s.runs {
		mark := theme.Done.Render("✓")
		if run.Error != "" {
			mark = theme.Failure.Render("✗")
		}

		where := "scratch"
		if run.Week != "" {
			where = fmt.Sprintf("%s · Day %d", run.Week, run.Day)
		}

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %-20s  %s", prefix,
			run.Timestamp.Local().Format("Jan 02 15:04"), where, run.Duration.Round(time.Millisecond))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+" "+mark))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := firstLines(run.Source, 6)
			out := run.Output
			if run.Error != "" && strings.TrimSpace(out) == "" {
				out = run.Error
			}
			detail += "\n" + theme.Label.Render("Output:") + "\n" + firstLines(out, 6)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Pane.Width(min(width-8, 70)).Render(detail)))
			b.WriteString("\n")
		}
	}
}

func (s *HistoryScreen) renderReminders(b *strings.Builder, width int) {
	for i, ev := range s.reminders {
		text := ev.Action
		switch ev.Action {
		case store.ReminderRegistered:
			text = "scheduled for " + ev.TriggerAt.Local().Format("Jan 02 15:04")
		case store.ReminderFired:
			text = "sent: " + ev.Message
		}
		if ev.Error != "" {
			text += " (failed)"
		}

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		if ev.Error != "" {
			style = style.Foreground(theme.Error)
		}
		line := fmt.Sprintf("%s%s  %s", prefix, ev.Timestamp.Local().Format("Jan 02 15:04"), text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
}

func firstLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = append(lines[:n], "...")
	}
	return strings.Join(lines, "\n")
}
