package settings

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/reminder"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/screen/screentest"
)

func key(code rune) tea.KeyPressMsg {
	switch code {
	case tea.KeyEnter, tea.KeySpace, tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight, tea.KeyEscape:
		return tea.KeyPressMsg{Code: code}
	}
	return tea.KeyPressMsg{Code: code, Text: string(code)}
}

func activate(t *testing.T, s *SettingsScreen, row int) tea.Msg {
	t.Helper()
	s.row = row
	_, cmd := s.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	return cmd()
}

func TestLoadsStoredSettings(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	ctx := context.Background()
	want := progress.NotificationSettings{Enabled: false, Hour: 20, Minute: 15}
	require.NoError(t, f.Env.Progress.SaveNotificationSettings(ctx, want))

	assert.Equal(t, want, New(f.Env).Settings())
}

func TestAdjustWraps(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env)

	s.Update(key(tea.KeyDown))
	s.Update(key(tea.KeyLeft))
	assert.Equal(t, 8, s.Settings().Hour)

	s.settings.Hour = 23
	s.Update(key(tea.KeyRight))
	assert.Equal(t, 0, s.Settings().Hour)

	s.Update(key(tea.KeyDown))
	s.Update(key(tea.KeyLeft))
	assert.Equal(t, 59, s.Settings().Minute)
}

func TestSaveSchedulesReminder(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env)
	s.row = RowHour
	s.Update(key(tea.KeyRight))

	msg := activate(t, s, RowSave)
	assert.Equal(t, screen.ToastMsg{Text: "Daily reminder set for 10:00"}, msg)

	regs := f.Alarms.Registrations()
	require.Contains(t, regs, reminder.CallbackID)
	assert.Equal(t, 10, regs[reminder.CallbackID].Trigger.Hour())

	stored := f.Env.Progress.LoadNotificationSettings(context.Background())
	assert.Equal(t, 10, stored.Hour)
	assert.True(t, f.Env.Reminder.Status().Scheduled)
}

func TestSaveDisabledCancels(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env)
	activate(t, s, RowSave)
	require.Len(t, f.Alarms.Registrations(), 1)

	s.row = RowEnabled
	s.Update(key(tea.KeySpace))
	require.False(t, s.Settings().Enabled)

	msg := activate(t, s, RowSave)
	assert.Equal(t, screen.ToastMsg{Text: "Reminders turned off"}, msg)
	assert.Empty(t, f.Alarms.Registrations())
}

func TestSaveFailureShowsShortMessage(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	f.Alarms.Err = errors.New("alarm service down")
	s := New(f.Env)

	msg, ok := activate(t, s, RowSave).(screen.ToastMsg)
	require.True(t, ok)
	assert.True(t, msg.Err)
	assert.Contains(t, msg.Text, "notifications")
}

func TestSendTestNotification(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env)

	assert.Equal(t, screen.ToastMsg{Text: MsgTestSent}, activate(t, s, RowTest))

	n := <-f.Notifier.C()
	assert.Equal(t, reminder.Title, n.Title)
	assert.Contains(t, reminder.TestMessages, n.Body)
	assert.Empty(t, f.Alarms.Registrations(), "a test does not schedule anything")
}

func TestResetNeedsConfirmation(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	f.Env.ToggleDay("Week 1", 1)()
	s := New(f.Env)

	s.row = RowReset
	_, cmd := s.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	require.True(t, s.CapturingInput())
	assert.Contains(t, s.View(100, 30), "Reset all progress?")

	// Enter on the default button cancels.
	_, cmd = s.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, s.CapturingInput())
	assert.True(t, progress.IsCompleted(f.Env.Record(), "Week 1", 1))

	s.Update(key(tea.KeyEnter))
	_, cmd = s.Update(key('y'))
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c != nil {
			c()
		}
	}
	assert.True(t, f.Env.Record().Equal(progress.Default()))
	assert.True(t, f.Env.Progress.Load(context.Background()).Equal(progress.Default()))
}

func TestResetEscCancels(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env)
	s.row = RowReset
	s.Update(key(tea.KeyEnter))
	require.True(t, s.CapturingInput())

	s.Update(key(tea.KeyEscape))
	assert.False(t, s.CapturingInput())
}
