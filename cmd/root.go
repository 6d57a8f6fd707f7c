package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/app"
	"github.com/abhisek/pylearn/internal/config"
	"github.com/abhisek/pylearn/internal/logging"
	"github.com/abhisek/pylearn/internal/notify"
	"github.com/abhisek/pylearn/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pylearn",
	Short: "Eight-week Python course in your terminal",
	Long: "PyLearn walks you through an eight-week Python course: daily lessons, " +
		"a code editor that runs your snippets, progress tracking and a daily reminder.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PYLEARN_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file read before the environment")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Also write logs to stderr")
	rootCmd.Flags().Bool("skip-welcome", false, "Start on the home screen")

	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and applies flag overrides. The
// --db flag wins over PYLEARN_DB, which wins over the XDG default.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*zap.Logger, error) {
	opts := logging.Options{File: cfg.LogFile, Level: cfg.LogLevel}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts.Console = cmd.ErrOrStderr()
	}
	logger, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

// openServices loads the configuration and opens every service. Local
// notifications go to local. Call the returned function when done.
func openServices(cmd *cobra.Command, local notify.Notifier) (*app.Services, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := app.Open(cmd.Context(), cfg, logger, local)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	closeFn := func() {
		if err := s.Close(); err != nil {
			logger.Warn("close services", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return s, closeFn, nil
}

// openStore opens only the database, for commands that read event logs.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
