package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pylearn/internal/reminder"
	"github.com/abhisek/pylearn/internal/store"
)

func unsetenv(t *testing.T, key string) {
	t.Helper()
	if v, ok := os.LookupEnv(key); ok {
		t.Setenv(key, v)
		require.NoError(t, os.Unsetenv(key))
	}
}

// setup points every path at temp dirs and disables optional integrations.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PYLEARN_DATA_DIR", dir)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	for _, key := range []string{
		"PYLEARN_DB", "PYLEARN_LOG_FILE", "PYLEARN_CURRICULUM",
		"PYLEARN_TELEGRAM_TOKEN", "PYLEARN_TELEGRAM_CHAT_ID",
		"PYLEARN_LLM_PROVIDER", "PYLEARN_RUNNER_INTERPRETER",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		unsetenv(t, key)
	}
	return dir
}

// resetFlags restores every flag to its default, since the command tree
// is shared between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCtx(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCtx(t, context.Background(), "", args...)
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "pylearn %s", strings.Join(args, " "))
	return out
}

func TestProgressToggleAndShow(t *testing.T) {
	setup(t)

	assert.Equal(t, "Week 1, day 1: done\n", mustRun(t, "progress", "toggle", "1", "1"))
	assert.Equal(t, "Week 2, day 3: done\n", mustRun(t, "progress", "toggle", "week 2", "3"))

	out := mustRun(t, "progress", "show")
	assert.Contains(t, out, "Total: 2/31 days")
	assert.Contains(t, out, "Current: Week 1, day 1")
	assert.Contains(t, out, "▶ Week 1: Python basics")

	assert.Equal(t, "Week 1, day 1: not done\n", mustRun(t, "progress", "toggle", "1", "1"))
	assert.Contains(t, mustRun(t, "progress", "show"), "Total: 1/31 days")
}

func TestProgressToggleValidatesArgs(t *testing.T) {
	setup(t)

	tests := []struct {
		week, day string
		want      string
	}{
		{"9", "1", "week 9 out of range 1-8"},
		{"Week 12", "1", `unknown week "Week 12"`},
		{"8", "2", "Week 8 has days 1-1"},
		{"1", "x", `invalid day "x"`},
	}
	for _, tt := range tests {
		_, err := run(t, "progress", "toggle", tt.week, tt.day)
		require.Error(t, err)
		assert.Contains(t, err.Error(), tt.want)
	}
}

func TestProgressAdvance(t *testing.T) {
	setup(t)

	_, err := run(t, "progress", "advance")
	require.Error(t, err)
	assert.Equal(t, "finish Week 1, day 1 first", err.Error())

	mustRun(t, "progress", "toggle", "1", "1")
	assert.Equal(t, "Now on Week 1, day 2\n", mustRun(t, "progress", "advance"))
	assert.Contains(t, mustRun(t, "progress", "show"), "Current: Week 1, day 2")
}

func TestProgressResetAsksFirst(t *testing.T) {
	setup(t)
	mustRun(t, "progress", "toggle", "1", "1")

	out, err := runCtx(t, context.Background(), "n\n", "progress", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, mustRun(t, "progress", "show"), "Total: 1/31 days")

	out, err = runCtx(t, context.Background(), "yes\n", "progress", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress reset.")
	assert.Contains(t, mustRun(t, "progress", "show"), "Total: 0/31 days")

	mustRun(t, "progress", "toggle", "1", "2")
	assert.Equal(t, "Progress reset.\n", mustRun(t, "progress", "reset", "--yes"))
}

func TestSettingsSetAndShow(t *testing.T) {
	dir := setup(t)

	out := mustRun(t, "settings", "show")
	assert.Contains(t, out, "Reminder:   on")
	assert.Contains(t, out, "Time:       09:00")
	assert.Contains(t, out, filepath.Join(dir, "progress.json"))
	assert.Contains(t, out, "AI hints:   off")

	mustRun(t, "settings", "set", "--hour", "19", "--minute", "30")
	out = mustRun(t, "settings", "show")
	assert.Contains(t, out, "Time:       19:30")
	assert.Contains(t, out, "Reminder:   on")

	mustRun(t, "settings", "set", "--enabled=false")
	out = mustRun(t, "settings", "show")
	assert.Contains(t, out, "Reminder:   off")
	assert.Contains(t, out, "Time:       19:30", "unchanged fields are kept")

	_, err := run(t, "settings", "set", "--hour", "24")
	require.Error(t, err)
	assert.Contains(t, mustRun(t, "settings", "show"), "Time:       19:30")
}

func TestSettingsSurviveProgressReset(t *testing.T) {
	setup(t)
	mustRun(t, "settings", "set", "--hour", "7")
	mustRun(t, "progress", "reset", "--yes")
	assert.Contains(t, mustRun(t, "settings", "show"), "Time:       07:00")
}

func TestRemindScheduleStatusCancel(t *testing.T) {
	setup(t)

	out := mustRun(t, "remind", "schedule", "07:15")
	assert.Contains(t, out, "Daily reminder at 07:15, next ")

	assert.Contains(t, mustRun(t, "remind", "status"), "Daily reminder at 07:15")

	assert.Equal(t, "Reminders turned off\n", mustRun(t, "remind", "cancel"))
	assert.Equal(t, "Reminders are off\n", mustRun(t, "remind", "status"))

	// Re-enabling keeps the stored time.
	assert.Contains(t, mustRun(t, "remind", "schedule"), "Daily reminder at 07:15")

	_, err := run(t, "remind", "schedule", "25:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want HH:MM")
}

func TestRemindStatusRecordsNothing(t *testing.T) {
	setup(t)
	mustRun(t, "remind", "schedule", "08:00")

	s, err := openStore(rootCmd)
	require.NoError(t, err)
	before, err := s.EventRepo().QueryReminders(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	for range 3 {
		assert.Contains(t, mustRun(t, "remind", "status"), "Daily reminder at 08:00")
	}

	s, err = openStore(rootCmd)
	require.NoError(t, err)
	defer s.Close()
	after, err := s.EventRepo().QueryReminders(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestRemindTest(t *testing.T) {
	setup(t)

	out := mustRun(t, "remind", "test")
	assert.Contains(t, out, "🔔 "+reminder.Title)

	body := strings.TrimSpace(strings.SplitN(out, "\n", 2)[1])
	assert.Contains(t, reminder.TestMessages, body)
}

func TestRemindDaemonStopsOnCancel(t *testing.T) {
	setup(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	out, err := runCtx(t, ctx, "", "remind", "daemon", "--refresh", "10ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily reminder at 09:00")

	_, err = run(t, "remind", "daemon", "--refresh", "0s")
	require.Error(t, err)
}

func TestLesson(t *testing.T) {
	setup(t)

	out := mustRun(t, "lesson", "1", "2")
	assert.Contains(t, out, "Week 1: Python basics · Day 2/6")
	assert.Contains(t, out, "Day 2: Input and output")
	assert.Contains(t, out, "Theory:\n  input(), type conversion")

	out = mustRun(t, "lesson")
	assert.Contains(t, out, "Day 1/6 ▶")

	mustRun(t, "progress", "toggle", "1", "1")
	out = mustRun(t, "lesson", "1")
	assert.Contains(t, out, "✓ Day 1: Introduction to Python")
	assert.Contains(t, out, "○ Day 2: Input and output")
}

func TestEmptyHistories(t *testing.T) {
	setup(t)
	assert.Equal(t, "No runs recorded yet.\n", mustRun(t, "runs", "list"))
	assert.Equal(t, "No LLM events found.\n", mustRun(t, "llm", "list"))
	assert.Equal(t, "No LLM usage recorded yet.\n", mustRun(t, "llm", "stats"))
}

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
}

func TestExecRecordsRuns(t *testing.T) {
	requirePython(t)
	dir := setup(t)

	ok := filepath.Join(dir, "ok.py")
	require.NoError(t, os.WriteFile(ok, []byte("print('hello')\n"), 0o644))
	assert.Equal(t, "hello\n", mustRun(t, "exec", ok, "--week", "2", "--day", "3"))

	out, err := runCtx(t, context.Background(), "1/0\n", "exec", "-")
	require.Error(t, err)
	assert.Equal(t, "ZeroDivisionError: division by zero", err.Error())
	assert.Contains(t, out, "Traceback")

	out = mustRun(t, "runs", "list")
	assert.Contains(t, out, "Week 2")
	assert.Contains(t, out, "print('hello')")
	assert.Contains(t, out, "1/0")

	out = mustRun(t, "runs", "list", "--failed")
	assert.Contains(t, out, "1/0")
	assert.NotContains(t, out, "print('hello')")
}

func TestExecMissingFile(t *testing.T) {
	setup(t)
	_, err := run(t, "exec", filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDBFlagOverridesEnv(t *testing.T) {
	dir := setup(t)
	db := filepath.Join(dir, "other", "custom.db")

	out := mustRun(t, "settings", "show", "--db", db)
	assert.Contains(t, out, "Database:   "+db)
	assert.FileExists(t, db)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "pylearn (devel)\n", mustRun(t, "version"))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in           string
		hour, minute int
		wantErr      bool
	}{
		{"09:00", 9, 0, false},
		{"23:59", 23, 59, false},
		{"7:05", 7, 5, false},
		{"24:00", 0, 0, true},
		{"noon", 0, 0, true},
	}
	for _, tt := range tests {
		h, m, err := parseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.hour, h, tt.in)
		assert.Equal(t, tt.minute, m, tt.in)
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "x = 1", firstLine("\n  x = 1\nprint(x)"))
	assert.Equal(t, "", firstLine("  \n"))
	assert.Equal(t, "héllo", truncate("héllo wörld", 5))
}
