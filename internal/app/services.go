package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/alarm"
	"github.com/abhisek/pylearn/internal/config"
	"github.com/abhisek/pylearn/internal/curriculum"
	"github.com/abhisek/pylearn/internal/llm"
	"github.com/abhisek/pylearn/internal/logging"
	"github.com/abhisek/pylearn/internal/notify"
	"github.com/abhisek/pylearn/internal/progress"
	"github.com/abhisek/pylearn/internal/reminder"
	"github.com/abhisek/pylearn/internal/runner"
	"github.com/abhisek/pylearn/internal/screen"
	"github.com/abhisek/pylearn/internal/store"
	"github.com/abhisek/pylearn/internal/tutor"
)

// Services is every long-lived component the CLI and the TUI share.
type Services struct {
	Config     config.Config
	Logger     *zap.Logger
	DB         *store.Store
	Progress   *progress.Store
	Curriculum *curriculum.Curriculum
	Alarms     *alarm.Scheduler
	Reminder   *reminder.Scheduler
	Runner     *runner.Session
	Tutor      *tutor.Service
}

// Open wires Services from cfg. local, when non-nil, receives
// notifications on this machine; Telegram delivery is added when
// configured. The LLM provider
// is optional: a misconfiguration is logged and hints stay disabled.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger, local notify.Notifier) (*Services, error) {
	logger = logging.OrNop(logger)

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	events := db.EventRepo()

	var notifier notify.Multi
	if local != nil {
		notifier = append(notifier, local)
	}
	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Warn("telegram notifications unavailable", zap.Error(err))
		} else {
			notifier = append(notifier, tg)
		}
	}

	alarms := alarm.NewScheduler(alarm.WithEventRepo(events), alarm.WithLogger(logger))

	provider, err := llm.New(ctx, cfg.LLM, events, logger)
	if err != nil {
		logger.Warn("AI hints unavailable", zap.Error(err))
		provider = nil
	}

	s := &Services{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Progress:   progress.NewStore(cfg.ProgressPath(), db.PrefsRepo(), logger),
		Curriculum: curriculum.Resolve(cfg.Curriculum, logger),
		Alarms:     alarms,
		Reminder:   reminder.New(alarms, notifier, reminder.WithEventRepo(events), reminder.WithLogger(logger)),
		Runner: runner.NewSession(runner.PythonRunner{
			Interpreter: cfg.Runner.Interpreter,
			Timeout:     cfg.Runner.Timeout,
		}, events, logger),
		Tutor: tutor.New(provider, logger),
	}
	return s, nil
}

// RestoreReminder schedules the daily reminder from the stored settings,
// the way a device re-arms alarms after a reboot.
func (s *Services) RestoreReminder(ctx context.Context) error {
	settings := s.Progress.LoadNotificationSettings(ctx)
	if err := s.Reminder.Schedule(ctx, settings); err != nil {
		return fmt.Errorf("restore reminder: %w", err)
	}
	return nil
}

// Env builds the screen environment and keeps its record in sync with the
// progress store. The returned function stops the sync.
func (s *Services) Env(ctx context.Context) (*screen.Env, func()) {
	env := &screen.Env{
		Progress:   s.Progress,
		Curriculum: s.Curriculum,
		Reminder:   s.Reminder,
		Runner:     s.Runner,
		Tutor:      s.Tutor,
		Events:     s.DB.EventRepo(),
		ScriptsDir: s.Config.ScriptsDir(),
		Quote:      reminder.Quote,
		Logger:     s.Logger,
		Base:       ctx,
	}
	env.SyncRecord(s.Progress.Load(ctx))
	return env, s.Progress.Subscribe(env.SyncRecord)
}

// Close stops pending alarms and closes the database.
func (s *Services) Close() error {
	return errors.Join(s.Alarms.Close(), s.DB.Close())
}
