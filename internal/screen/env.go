package screen

import (
	"context"
	"errors"
	"sync"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/curriculum"
	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/reminder"
	"github.com/abhisek/pylearn/internal/runner"
	"github.com/abhisek/pylearn/internal/store"
	"github.com/abhisek/pylearn/internal/tutor"
)

// Env holds the services shared by every screen. Screens read the
// current record through Record; the app keeps it fresh by subscribing
// to the progress store.
type Env struct {
	Progress   *progress.Store
	Curriculum curriculum.Provider
	Reminder   *reminder.Scheduler
	Runner     *runner.Session
	Tutor      *tutor.Service
	Events     store.EventRepo
	ScriptsDir string
	Quote      func() string
	Logger     *zap.Logger

	// Base is the parent context of background commands. Nil means
	// context.Background().
	Base context.Context

	mu     sync.RWMutex
	record progress.Record
	// version counts changes to record; written is the version last
	// persisted (or adopted from the store).
	version uint64
	written uint64

	// saveMu keeps saves in the order their versions were taken.
	saveMu sync.Mutex
}

// Context returns the context background commands run under.
func (e *Env) Context() context.Context {
	if e.Base == nil {
		return context.Background()
	}
	return e.Base
}

// Log returns the env logger or a no-op one.
func (e *Env) Log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Record returns a copy of the last known progress record.
func (e *Env) Record() progress.Record {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.record.CompletedDays == nil {
		return progress.Default()
	}
	return e.record.Clone()
}

// SetRecord replaces the cached record.
func (e *Env) SetRecord(r progress.Record) {
	e.mu.Lock()
	e.record = r.Clone()
	e.version++
	e.mu.Unlock()
}

// SyncRecord adopts a record the store has just persisted. It is ignored
// while a local change is still on its way to disk, since the cache is
// newer than anything the store can report then.
func (e *Env) SyncRecord(r progress.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.written != e.version {
		return
	}
	e.record = r.Clone()
	e.version++
	e.written = e.version
}

// update applies fn to the cached record.
func (e *Env) update(fn func(progress.Record) progress.Record) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cur := e.record
	if cur.CompletedDays == nil {
		cur = progress.Default()
	}
	e.record = fn(cur).Clone()
	e.version++
}

// latest returns the cached record, its version and whether that version
// still needs to be written.
func (e *Env) latest() (progress.Record, uint64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.record.Clone(), e.version, e.version > e.written
}

func (e *Env) markWritten(v uint64) {
	e.mu.Lock()
	if v > e.written {
		e.written = v
	}
	e.mu.Unlock()
}

// ProgressMsg reports a record that was just persisted.
type ProgressMsg struct {
	Record progress.Record
}

// ToastMsg asks the app to show a short status line.
type ToastMsg struct {
	Text string
	Err  bool
}

// Toast returns a command producing an informational toast.
func Toast(text string) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text} }
}

// ErrorToast maps err to the short message a learner sees.
func ErrorToast(err error, fallback string) tea.Msg {
	var re *reminder.Error
	if errors.As(err, &re) {
		return ToastMsg{Text: re.Message(), Err: true}
	}
	return ToastMsg{Text: fallback, Err: true}
}

// SaveProgress makes r the current record right away and persists it in
// the background. The command yields a ProgressMsg with the newest record
// once it is on disk, or a ToastMsg when the write fails; the cached record
// stays in place either way.
func (e *Env) SaveProgress(r progress.Record) tea.Cmd {
	e.update(func(progress.Record) progress.Record { return r })
	return e.flush("Could not save progress")
}

// ToggleDay flips the completion flag of week/day and saves it.
func (e *Env) ToggleDay(week string, day int) tea.Cmd {
	e.update(func(r progress.Record) progress.Record {
		return progress.Toggle(r, week, day)
	})
	return e.flush("Could not save progress")
}

// flush writes the newest cached record. Saves queued behind a newer one
// have nothing left to write and just report the current record.
func (e *Env) flush(failure string) tea.Cmd {
	ctx := e.Context()
	return func() tea.Msg {
		e.saveMu.Lock()
		defer e.saveMu.Unlock()

		r, v, dirty := e.latest()
		if !dirty {
			return ProgressMsg{Record: r}
		}
		res := <-e.Progress.SaveAsync(ctx, r)
		if res.Err != nil {
			e.Log().Warn("progress kept in memory only", zap.Error(res.Err))
			return ErrorToast(res.Err, failure)
		}
		e.markWritten(v)
		return ProgressMsg{Record: res.Record}
	}
}

// ResetProgress restores the default record. Completion history is
// discarded.
func (e *Env) ResetProgress() tea.Cmd {
	e.update(func(progress.Record) progress.Record { return progress.Default() })
	e.Log().Info("progress reset")
	return e.flush("Could not reset progress")
}

// Week looks up a week by name. Unknown weeks get the provider's
// fallback day count.
func (e *Env) Week(name string) curriculum.WeekInfo {
	for _, w := range e.Curriculum.Weeks() {
		if w.Name == name {
			return w
		}
	}
	return curriculum.WeekInfo{Name: name, MaxDay: e.Curriculum.MaxDay(name)}
}
