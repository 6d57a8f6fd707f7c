// Package reminder keeps at most one daily learning reminder registered
// with the alarm facility and posts a motivational notification when it
// fires.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/alarm"
	"github.com/abhisek/pylearn/internal/logging"
	"github.com/abhisek/pylearn/internal/notify"
	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/store"
)

// CallbackID identifies the single daily registration.
const CallbackID = "daily-reminder"

// Status describes the current registration.
type Status struct {
	Scheduled bool
	Next      time.Time
	Settings  progress.NotificationSettings
}

// Scheduler owns the daily registration. Its methods are safe for
// concurrent use; Schedule and Cancel are serialized.
type Scheduler struct {
	alarms   alarm.Facility
	notifier notify.Notifier
	events   store.EventRepo
	logger   *zap.Logger
	now      func() time.Time
	pick     Picker
	channel  string

	mu        sync.Mutex
	scheduled bool
	settings  progress.NotificationSettings
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithEventRepo records firings.
func WithEventRepo(r store.EventRepo) Option {
	return func(s *Scheduler) { s.events = r }
}

// WithNow replaces the wall clock.
func WithNow(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithPicker replaces the random message choice.
func WithPicker(p Picker) Option {
	return func(s *Scheduler) { s.pick = p }
}

// WithChannel sets the notification channel id.
func WithChannel(id string) Option {
	return func(s *Scheduler) { s.channel = id }
}

// New creates a Scheduler with nothing registered.
func New(alarms alarm.Facility, notifier notify.Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		alarms:   alarms,
		notifier: notifier,
		now:      time.Now,
		pick:     RandomPick,
		channel:  notify.DefaultChannel,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = logging.OrNop(s.logger).Named("reminder")
	return s
}

// Schedule replaces any registration according to settings. With
// reminders disabled it only cancels. On failure no registration is left
// behind that the scheduler knows about.
func (s *Scheduler) Schedule(ctx context.Context, settings progress.NotificationSettings) error {
	if err := settings.Validate(); err != nil {
		return &Error{Op: OpSchedule, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cancelLocked(ctx); err != nil {
		return err
	}
	s.settings = settings
	if !settings.Enabled {
		s.logger.Info("reminders disabled")
		return nil
	}

	trigger := NextTrigger(s.now(), settings.Hour, settings.Minute)
	if err := s.alarms.RegisterDaily(ctx, trigger, CallbackID, s.onAlarm); err != nil {
		s.logger.Error("register daily reminder", zap.Error(err))
		return &Error{Op: OpSchedule, Err: err}
	}
	s.scheduled = true
	s.logger.Info("reminder scheduled", zap.Time("next", trigger))
	return nil
}

// Cancel removes the registration. It is a no-op when nothing is
// registered.
func (s *Scheduler) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(ctx)
}

// The facility is always asked to cancel, since a registration may
// survive from an earlier process.
func (s *Scheduler) cancelLocked(ctx context.Context) error {
	if err := s.alarms.Cancel(ctx, CallbackID); err != nil {
		s.logger.Error("cancel daily reminder", zap.Error(err))
		return &Error{Op: OpCancel, Err: err}
	}
	s.scheduled = false
	return nil
}

// Status reports whether a reminder is registered and when it fires next.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{Scheduled: s.scheduled, Settings: s.settings}
	if s.scheduled {
		st.Next = NextTrigger(s.now(), s.settings.Hour, s.settings.Minute)
	}
	return st
}

// StatusFor reports the status settings would give once scheduled. Nothing
// is registered.
func (s *Scheduler) StatusFor(settings progress.NotificationSettings) Status {
	st := Status{Scheduled: settings.Enabled, Settings: settings}
	if settings.Enabled {
		st.Next = NextTrigger(s.now(), settings.Hour, settings.Minute)
	}
	return st
}

// FireOnce posts one notification picked from DailyMessages.
func (s *Scheduler) FireOnce(ctx context.Context) error {
	return s.fire(ctx, CallbackID, DailyMessages)
}

// FireTest posts one notification picked from TestMessages. It does not
// touch the registration.
func (s *Scheduler) FireTest(ctx context.Context) error {
	return s.fire(ctx, "test", TestMessages)
}

func (s *Scheduler) onAlarm(ctx context.Context, _ time.Time) {
	// Failures are logged and recorded by fire; the alarm keeps repeating.
	_ = s.FireOnce(ctx)
}

func (s *Scheduler) fire(ctx context.Context, id string, pool []string) error {
	body := s.pick(pool)
	err := s.notifier.Notify(ctx, s.channel, Title, body)

	ev := store.ReminderEventData{
		Action:     store.ReminderFired,
		CallbackID: id,
		TriggerAt:  s.now(),
		Message:    body,
	}
	if err != nil {
		ev.Error = err.Error()
		s.logger.Warn("post reminder", zap.String("id", id), zap.Error(err))
	} else {
		s.logger.Info("reminder posted", zap.String("id", id))
	}
	if s.events != nil {
		if rerr := s.events.AppendReminder(ctx, ev); rerr != nil {
			s.logger.Warn("record reminder firing", zap.Error(rerr))
		}
	}

	if err != nil {
		return &Error{Op: OpNotify, Err: err}
	}
	return nil
}

// Op names the operation that failed.
type Op string

// Operations reported in Error.
const (
	OpSchedule Op = "schedule"
	OpCancel   Op = "cancel"
	OpNotify   Op = "notify"
)

// Error wraps an alarm or notification failure.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("reminder %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is a short text suitable for a toast.
func (e *Error) Message() string {
	switch e.Op {
	case OpSchedule:
		return "Could not set up notifications"
	case OpCancel:
		return "Could not turn off notifications"
	default:
		return "Could not send notification"
	}
}
