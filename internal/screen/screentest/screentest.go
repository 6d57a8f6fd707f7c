// Package screentest builds a fully wired screen.Env backed by temporary
// storage and in-memory fakes.
package screentest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/pylearn/internal/alarm"
	"github.com/abhisek/pylearn/internal/curriculum"
	"github.com/abhisek/pylearn/internal/llm"
	"github.com/abhisek/pylearn/internal/notify"
	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/reminder"
	"github.com/abhisek/pylearn/internal/runner"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/store"
	"github.com/abhisek/pylearn/internal/tutor"
)

// Fixture exposes the fakes behind an Env.
type Fixture struct {
	Env      *screen.Env
	DB       *store.Store
	Alarms   *alarm.Fake
	Notifier *notify.ChannelNotifier
	LLM      *llm.MockProvider
}

// Options tweak a fixture.
type Options struct {
	// Run replaces the interpreter. Nil echoes the source.
	Run runner.Func
	// Hints enables the tutor with these canned responses.
	Hints []llm.MockResponse
}

// New builds a Fixture with a fresh database and progress file.
func New(t testing.TB, opts Options) *Fixture {
	t.Helper()
	dir := t.TempDir()

	db, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	run := opts.Run
	if run == nil {
		run = func(_ context.Context, source string) (string, error) { return source, nil }
	}

	f := &Fixture{
		DB:       db,
		Alarms:   alarm.NewFake(),
		Notifier: notify.NewChannelNotifier(8),
	}

	var provider llm.Provider
	if len(opts.Hints) > 0 {
		f.LLM = llm.NewMockProvider(opts.Hints...)
		provider = f.LLM
	}

	f.Env = &screen.Env{
		Progress:   progress.NewStore(filepath.Join(dir, "progress.json"), db.PrefsRepo(), nil),
		Curriculum: curriculum.Default(),
		Reminder:   reminder.New(f.Alarms, f.Notifier, reminder.WithEventRepo(db.EventRepo())),
		Runner:     runner.NewSession(run, db.EventRepo(), nil),
		Tutor:      tutor.New(provider, nil),
		Events:     db.EventRepo(),
		ScriptsDir: filepath.Join(dir, "scripts"),
		Quote:      func() string { return "Keep going!" },
	}
	f.Env.SetRecord(progress.Default())
	return f
}
