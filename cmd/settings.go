package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/pylearn/internal/app"
	"github.com/abhisek/pylearn/internal/progress"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change reminder settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		printSettings(cmd.OutOrStdout(), s, s.Progress.LoadNotificationSettings(cmd.Context()))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change reminder settings",
	Example: `  pylearn settings set --hour 19 --minute 30
  pylearn settings set --enabled=false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		settings := s.Progress.LoadNotificationSettings(ctx)
		flags := cmd.Flags()
		if flags.Changed("enabled") {
			settings.Enabled, _ = flags.GetBool("enabled")
		}
		if flags.Changed("hour") {
			settings.Hour, _ = flags.GetInt("hour")
		}
		if flags.Changed("minute") {
			settings.Minute, _ = flags.GetInt("minute")
		}
		if err := s.Progress.SaveNotificationSettings(ctx, settings); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		printSettings(cmd.OutOrStdout(), s, settings)
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().Bool("enabled", true, "Send the daily reminder")
	settingsSetCmd.Flags().Int("hour", 9, "Reminder hour (0-23)")
	settingsSetCmd.Flags().Int("minute", 0, "Reminder minute (0-59)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func printSettings(w io.Writer, s *app.Services, n progress.NotificationSettings) {
	state := "off"
	if n.Enabled {
		state = "on"
	}
	fmt.Fprintf(w, "Reminder:   %s\n", state)
	fmt.Fprintf(w, "Time:       %s\n", n.TimeLabel())
	fmt.Fprintf(w, "Progress:   %s\n", s.Progress.Path())
	fmt.Fprintf(w, "Database:   %s\n", s.Config.DBPath)
	fmt.Fprintf(w, "Scripts:    %s\n", s.Config.ScriptsDir())
	fmt.Fprintf(w, "Log file:   %s\n", s.Config.LogFile)
	hints := "off"
	if s.Tutor.Enabled() {
		hints = "on"
	}
	fmt.Fprintf(w, "AI hints:   %s\n", hints)
	telegram := "off"
	if s.Config.Telegram.Enabled() {
		telegram = "on"
	}
	fmt.Fprintf(w, "Telegram:   %s\n", telegram)
}
