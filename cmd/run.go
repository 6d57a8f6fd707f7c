package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/app"
	"github.com/abhisek/pylearn/internal/notify"
)

// runApp opens the services, re-arms the daily reminder and launches the
// TUI. Reminders that fire while it runs show up as toasts.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	local := notify.NewChannelNotifier(4)
	s, closeFn, err := openServices(cmd, local)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := s.RestoreReminder(ctx); err != nil {
		s.Logger.Warn("daily reminder not scheduled", zap.Error(err))
	}

	env, unsubscribe := s.Env(ctx)
	defer unsubscribe()

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(ctx, env, app.Options{
		Notifications: local.C(),
		SkipWelcome:   skip,
	})
}
