package day

import (
	"os"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/router"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/screen/screentest"
)

func press(s *DayScreen, code rune) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: code, Text: string(code)})
	return cmd
}

func TestViewShowsLesson(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	info := f.Env.Curriculum.DayInfo("Week 1", 1)

	view := New(f.Env, f.Env.Week("Week 1"), 1).View(100, 30)
	assert.Contains(t, view, info.Title)
	assert.Contains(t, view, "Theory")
	assert.Contains(t, view, "today's lesson")
}

func TestNextRequiresCompletion(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env, f.Env.Week("Week 1"), 1)

	cmd := press(s, 'n')
	require.NotNil(t, cmd)
	assert.Equal(t, screen.ToastMsg{Text: MsgFinishFirst}, cmd())
	assert.Equal(t, 1, f.Env.Record().CurrentDay)
}

func TestToggleThenNextReplacesScreen(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env, f.Env.Week("Week 1"), 1)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeySpace})
	require.NotNil(t, cmd)
	s.Update(cmd())
	require.True(t, progress.CanProceed(f.Env.Record()))

	cmd = press(s, 'n')
	require.NotNil(t, cmd)
	msg := cmd()
	pm, ok := msg.(screen.ProgressMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 2, pm.Record.CurrentDay)

	_, cmd = s.Update(pm)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Week 1 · Day 2", replace.Screen.Title())
}

func TestNextFollowsUnsavedAdvance(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	f.Env.SetRecord(progress.Toggle(progress.Default(), "Week 1", 1))
	require.NoError(t, os.Mkdir(f.Env.Progress.Path(), 0o755))

	s := New(f.Env, f.Env.Week("Week 1"), 1)
	msg := press(s, 'n')()
	_, ok := msg.(screen.ToastMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 2, f.Env.Record().CurrentDay)

	_, cmd := s.Update(msg)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Week 1 · Day 2", replace.Screen.Title())
}

func TestNextCrossesWeek(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	r := progress.Default()
	r.CurrentDay = 6
	f.Env.SetRecord(progress.Toggle(r, "Week 1", 6))

	s := New(f.Env, f.Env.Week("Week 1"), 6)
	pm := press(s, 'n')().(screen.ProgressMsg)
	assert.Equal(t, "Week 2", pm.Record.CurrentWeek)
	assert.Equal(t, 1, pm.Record.CurrentDay)
}

func TestNextOnLastDay(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	weeks := f.Env.Curriculum.Weeks()
	last := weeks[len(weeks)-1]

	r := progress.Record{CurrentWeek: last.Name, CurrentDay: last.MaxDay, CompletedDays: map[string]bool{}}
	f.Env.SetRecord(progress.Toggle(r, last.Name, last.MaxDay))

	s := New(f.Env, last, last.MaxDay)
	assert.Equal(t, screen.ToastMsg{Text: MsgCourseDone}, press(s, 'n')())
}

func TestNextIgnoredOffCurrentDay(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env, f.Env.Week("Week 2"), 3)
	assert.Nil(t, press(s, 'n'))
}

func TestProgressMsgWithoutAdvanceIsIgnored(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env, f.Env.Week("Week 1"), 1)
	_, cmd := s.Update(screen.ProgressMsg{Record: progress.Default()})
	assert.Nil(t, cmd)
}

func TestEditorKeyOpensEditor(t *testing.T) {
	f := screentest.New(t, screentest.Options{})
	s := New(f.Env, f.Env.Week("Week 1"), 3)

	push, ok := press(s, 'e')().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Editor · Week 1 · Day 3", push.Screen.Title())
}
