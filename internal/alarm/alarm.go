// Package alarm is an in-process stand-in for a host alarm service: it
// fires registered callbacks at a wall-clock instant and then once a day.
package alarm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/logging"
	"github.com/abhisek/pylearn/internal/store"
)

// Interval between repeats of a daily registration.
const Interval = 24 * time.Hour

// Callback runs when a registration fires.
type Callback func(ctx context.Context, firedAt time.Time)

// Facility registers and cancels repeating daily callbacks. Registering
// an id that is already registered replaces the earlier registration.
type Facility interface {
	RegisterDaily(ctx context.Context, trigger time.Time, id string, cb Callback) error
	Cancel(ctx context.Context, id string) error
}

// ErrClosed is returned by a Scheduler after Close.
var ErrClosed = errors.New("alarm scheduler closed")

// Timer is the subset of *time.Timer the scheduler uses.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so tests can fire registrations by hand.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the real wall clock.
var SystemClock Clock = systemClock{}

type registration struct {
	next  time.Time
	cb    Callback
	timer Timer
}

// Scheduler is a Facility backed by process timers. Registrations do not
// survive the process.
type Scheduler struct {
	clock  Clock
	events store.EventRepo
	logger *zap.Logger

	// ctx is handed to callbacks; it is cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	regs   map[string]*registration
	closed bool
}

var _ Facility = (*Scheduler)(nil)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithEventRepo records registrations and cancellations.
func WithEventRepo(r store.EventRepo) Option {
	return func(s *Scheduler) { s.events = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// NewScheduler creates an empty Scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock: SystemClock,
		regs:  make(map[string]*registration),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = logging.OrNop(s.logger).Named("alarm")
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// RegisterDaily arms id to fire at trigger and every Interval after.
// A trigger in the past fires immediately and then continues daily. Firings
// missed while the process was asleep are coalesced into one.
func (s *Scheduler) RegisterDaily(ctx context.Context, trigger time.Time, id string, cb Callback) error {
	if id == "" {
		return errors.New("register alarm: empty id")
	}
	if cb == nil {
		return fmt.Errorf("register alarm %q: nil callback", id)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if old, ok := s.regs[id]; ok {
		old.timer.Stop()
	}
	reg := &registration{next: trigger, cb: cb}
	s.regs[id] = reg
	s.arm(id, reg)
	s.mu.Unlock()

	s.logger.Info("alarm registered", zap.String("id", id), zap.Time("trigger", trigger))
	s.record(ctx, store.ReminderEventData{
		Action:     store.ReminderRegistered,
		CallbackID: id,
		TriggerAt:  trigger,
	})
	return nil
}

// Cancel removes id. Cancelling an unknown id is a no-op.
func (s *Scheduler) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	reg, ok := s.regs[id]
	if ok {
		reg.timer.Stop()
		delete(s.regs, id)
	}
	s.mu.Unlock()

	if !ok {
		return nil
	}
	s.logger.Info("alarm cancelled", zap.String("id", id))
	s.record(ctx, store.ReminderEventData{
		Action:     store.ReminderCancelled,
		CallbackID: id,
		TriggerAt:  reg.next,
	})
	return nil
}

// Next reports when id fires next.
func (s *Scheduler) Next(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.regs[id]
	if !ok {
		return time.Time{}, false
	}
	return reg.next, true
}

// Len returns the number of active registrations.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs)
}

// Close stops every timer. Callbacks already running see their context
// cancelled.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for id, reg := range s.regs {
		reg.timer.Stop()
		delete(s.regs, id)
	}
	s.cancel()
	return nil
}

// arm starts the timer for reg.next. Callers hold s.mu.
func (s *Scheduler) arm(id string, reg *registration) {
	d := reg.next.Sub(s.clock.Now())
	if d < 0 {
		d = 0
	}
	reg.timer = s.clock.AfterFunc(d, func() { s.fire(id, reg) })
}

func (s *Scheduler) fire(id string, reg *registration) {
	s.mu.Lock()
	if s.closed || s.regs[id] != reg {
		// Cancelled or replaced after the timer had already started.
		s.mu.Unlock()
		return
	}
	firedAt := reg.next
	// Days missed while the process was suspended collapse into this one
	// firing.
	now := s.clock.Now()
	for !reg.next.After(now) {
		reg.next = reg.next.Add(Interval)
	}
	s.arm(id, reg)
	s.mu.Unlock()

	s.logger.Debug("alarm fired", zap.String("id", id), zap.Time("scheduled", firedAt))
	reg.cb(s.ctx, firedAt)
}

func (s *Scheduler) record(ctx context.Context, data store.ReminderEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendReminder(ctx, data); err != nil {
		s.logger.Warn("record reminder event", zap.String("action", data.Action), zap.Error(err))
	}
}
