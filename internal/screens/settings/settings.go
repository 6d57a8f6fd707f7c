// Package settings edits the reminder preferences and resets progress.
package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/ui/components"
	"github.com/abhisek/pylearn/internal/ui/layout"
	"github.com/abhisek/pylearn/internal/ui/theme"
)

// Rows of the settings form.
const (
	RowEnabled = iota
	RowHour
	RowMinute
	RowSave
	RowTest
	RowReset
	rowCount
)

// Toast texts.
const (
	MsgSaveFailed = "Could not save settings"
	MsgTestSent   = "Test notification sent"
	MsgReset      = "Progress reset"
)

// SettingsScreen edits NotificationSettings. Changes take effect on Save,
// which persists them and reschedules the daily reminder.
type SettingsScreen struct {
	env      *screen.Env
	settings progress.NotificationSettings
	row      int

	confirming bool
	yes, no    components.Button
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)
var _ screen.InputCapturer = (*SettingsScreen)(nil)

// New loads the stored settings and creates the screen.
func New(env *screen.Env) *SettingsScreen {
	s := &SettingsScreen{
		env:      env,
		settings: env.Progress.LoadNotificationSettings(env.Context()),
	}
	s.yes = components.NewButton("Yes, reset", false, func() tea.Cmd {
		s.confirming = false
		return tea.Batch(s.env.ResetProgress(), screen.Toast(MsgReset))
	})
	s.yes.Key, s.yes.Danger = "y", true
	s.no = components.NewButton("Cancel", true, func() tea.Cmd {
		s.confirming = false
		return nil
	})
	s.no.Key = "n"
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

// CapturingInput keeps Esc inside the screen while the reset dialog is up.
func (s *SettingsScreen) CapturingInput() bool {
	return s.confirming
}

// Settings returns the values currently shown, saved or not.
func (s *SettingsScreen) Settings() progress.NotificationSettings {
	return s.settings
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	if s.confirming {
		return s.updateConfirm(kmsg)
	}

	switch kmsg.String() {
	case "up", "k":
		s.row = (s.row + rowCount - 1) % rowCount
	case "down", "j", "tab":
		s.row = (s.row + 1) % rowCount
	case "left", "h", "-":
		s.adjust(-1)
	case "right", "l", "+":
		s.adjust(1)
	case "space", "enter":
		return s, s.activate()
	}
	return s, nil
}

func (s *SettingsScreen) updateConfirm(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		s.confirming = false
		return s, nil
	case "left", "right", "tab", "h", "l":
		s.yes.Active, s.no.Active = s.no.Active, s.yes.Active
		return s, nil
	}
	var yesCmd, noCmd tea.Cmd
	s.yes, yesCmd = s.yes.Update(kmsg)
	s.no, noCmd = s.no.Update(kmsg)
	return s, tea.Batch(yesCmd, noCmd)
}

func (s *SettingsScreen) adjust(delta int) {
	switch s.row {
	case RowEnabled:
		s.settings.Enabled = !s.settings.Enabled
	case RowHour:
		s.settings.Hour = wrap(s.settings.Hour+delta, 24)
	case RowMinute:
		s.settings.Minute = wrap(s.settings.Minute+delta, 60)
	}
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

func (s *SettingsScreen) activate() tea.Cmd {
	switch s.row {
	case RowEnabled:
		s.settings.Enabled = !s.settings.Enabled
	case RowSave:
		return s.save()
	case RowTest:
		return s.sendTest()
	case RowReset:
		s.confirming = true
		s.yes.Active, s.no.Active = false, true
	}
	return nil
}

// save persists the settings and reschedules the reminder with them.
func (s *SettingsScreen) save() tea.Cmd {
	n := s.settings
	ctx := s.env.Context()
	return func() tea.Msg {
		if err := s.env.Progress.SaveNotificationSettings(ctx, n); err != nil {
			return screen.ErrorToast(err, MsgSaveFailed)
		}
		if err := s.env.Reminder.Schedule(ctx, n); err != nil {
			return screen.ErrorToast(err, MsgSaveFailed)
		}
		if !n.Enabled {
			return screen.ToastMsg{Text: "Reminders turned off"}
		}
		return screen.ToastMsg{Text: "Daily reminder set for " + n.TimeLabel()}
	}
}

func (s *SettingsScreen) sendTest() tea.Cmd {
	ctx := s.env.Context()
	return func() tea.Msg {
		if err := s.env.Reminder.FireTest(ctx); err != nil {
			return screen.ErrorToast(err, "Could not send notification")
		}
		return screen.ToastMsg{Text: MsgTestSent}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	onOff := "Off"
	if s.settings.Enabled {
		onOff = "On"
	}
	status := s.env.Reminder.Status()
	next := "not scheduled"
	if status.Scheduled {
		next = status.Next.Format("Mon Jan 2 15:04")
	}

	rows := []struct{ label, value string }{
		{"Daily reminder", onOff},
		{"Hour", fmt.Sprintf("%02d", s.settings.Hour)},
		{"Minute", fmt.Sprintf("%02d", s.settings.Minute)},
		{"Save", ""},
		{"Send test notification", ""},
		{"Reset progress", ""},
	}

	var b strings.Builder
	b.WriteString("\n  " + theme.Title.Render("Notifications") + "\n")
	b.WriteString("  " + theme.Subtitle.Render("Next reminder: "+next) + "\n\n")
	for i, r := range rows {
		line := "    " + r.label
		style := theme.Unselected
		if i == s.row {
			line = "  ▸ " + r.label
			style = theme.Selected
		}
		if r.value != "" {
			line = fmt.Sprintf("%-28s ◂ %s ▸", line, r.value)
		}
		b.WriteString(style.Render(line) + "\n")
		if i == RowMinute {
			b.WriteString("\n")
		}
	}

	if s.confirming {
		dialog := theme.Card.Render(
			theme.Failure.Render("Reset all progress?") + "\n" +
				theme.Hint.Render("Completed days and your position are cleared.") + "\n\n" +
				lipgloss.JoinHorizontal(lipgloss.Top, s.yes.View(), "  ", s.no.View()))
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, dialog))
	}
	return b.String()
}
