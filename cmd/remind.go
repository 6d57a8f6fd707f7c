package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/notify"
	"github.com/abhisek/pylearn/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage the daily study reminder",
	Long: `Manage the daily study reminder.

Reminders fire while "pylearn" or "pylearn remind daemon" is running.
Configure PYLEARN_TELEGRAM_TOKEN and PYLEARN_TELEGRAM_CHAT_ID to also
receive them in Telegram.`,
}

var remindScheduleCmd = &cobra.Command{
	Use:   "schedule [HH:MM]",
	Short: "Turn the daily reminder on, optionally at a new time",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		settings := s.Progress.LoadNotificationSettings(ctx)
		settings.Enabled = true
		if len(args) == 1 {
			if settings.Hour, settings.Minute, err = parseClock(args[0]); err != nil {
				return err
			}
		}
		if err := s.Progress.SaveNotificationSettings(ctx, settings); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		if err := s.Reminder.Schedule(ctx, settings); err != nil {
			return reminderError(err)
		}
		printStatus(cmd.OutOrStdout(), s.Reminder.Status())
		return nil
	},
}

var remindCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Turn the daily reminder off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		settings := s.Progress.LoadNotificationSettings(ctx)
		settings.Enabled = false
		if err := s.Progress.SaveNotificationSettings(ctx, settings); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		if err := s.Reminder.Cancel(ctx); err != nil {
			return reminderError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Reminders turned off")
		return nil
	},
}

var remindTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, notify.NewLogNotifier(cmd.OutOrStdout(), nil))
		if err != nil {
			return err
		}
		defer closeFn()

		if err := s.Reminder.FireTest(cmd.Context()); err != nil {
			return reminderError(err)
		}
		return nil
	},
}

var remindStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the reminder settings and the next trigger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		settings := s.Progress.LoadNotificationSettings(cmd.Context())
		printStatus(cmd.OutOrStdout(), s.Reminder.StatusFor(settings))
		return nil
	},
}

var remindDaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Stay in the foreground and deliver reminders",
	Long: `Stay in the foreground and deliver the daily reminder until interrupted.

The stored settings are re-read every --refresh interval, so changes made
from the TUI or "pylearn settings set" take effect without a restart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, notify.NewLogNotifier(cmd.OutOrStdout(), nil))
		if err != nil {
			return err
		}
		defer closeFn()

		refresh, _ := cmd.Flags().GetDuration("refresh")
		if refresh <= 0 {
			return errors.New("--refresh must be positive")
		}

		ctx := cmd.Context()
		current := s.Progress.LoadNotificationSettings(ctx)
		if err := s.Reminder.Schedule(ctx, current); err != nil {
			return reminderError(err)
		}
		printStatus(cmd.OutOrStdout(), s.Reminder.Status())
		s.Logger.Info("reminder daemon started", zap.Duration("refresh", refresh))

		ticker := time.NewTicker(refresh)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.Logger.Info("reminder daemon stopped")
				return nil
			case <-ticker.C:
				next := s.Progress.LoadNotificationSettings(ctx)
				if next == current {
					continue
				}
				if err := s.Reminder.Schedule(ctx, next); err != nil {
					s.Logger.Warn("reschedule reminder", zap.Error(err))
					continue
				}
				current = next
				printStatus(cmd.OutOrStdout(), s.Reminder.Status())
			}
		}
	},
}

func init() {
	remindDaemonCmd.Flags().Duration("refresh", time.Minute, "How often to re-read the reminder settings")

	remindCmd.AddCommand(remindScheduleCmd)
	remindCmd.AddCommand(remindCancelCmd)
	remindCmd.AddCommand(remindTestCmd)
	remindCmd.AddCommand(remindStatusCmd)
	remindCmd.AddCommand(remindDaemonCmd)
}

func printStatus(w io.Writer, st reminder.Status) {
	if !st.Scheduled {
		fmt.Fprintln(w, "Reminders are off")
		return
	}
	fmt.Fprintf(w, "Daily reminder at %s, next %s\n",
		st.Settings.TimeLabel(), st.Next.Format("Mon 2006-01-02 15:04"))
}

// parseClock parses "HH:MM" into an hour and minute.
func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

// reminderError swaps a reminder failure for its short message; the
// details are already in the log.
func reminderError(err error) error {
	var re *reminder.Error
	if errors.As(err, &re) {
		return errors.New(re.Message())
	}
	return err
}
