package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/pylearn/internal/llm"
)

// AppName is used for data, state and log directory names.
const AppName = "pylearn"

// Config is the process-wide configuration, read from PYLEARN_* variables.
type Config struct {
	// DataDir holds progress.json, the sqlite database and saved scripts.
	// Default: $XDG_DATA_HOME/pylearn or ~/.local/share/pylearn.
	DataDir string `env:"PYLEARN_DATA_DIR"`

	// DBPath overrides the sqlite database location.
	DBPath string `env:"PYLEARN_DB"`

	// LogFile overrides the rotating log location.
	// Default: $XDG_STATE_HOME/pylearn/pylearn.log.
	LogFile  string `env:"PYLEARN_LOG_FILE"`
	LogLevel string `env:"PYLEARN_LOG_LEVEL" envDefault:"info"`

	// Curriculum points to an alternate curriculum JSON file.
	Curriculum string `env:"PYLEARN_CURRICULUM"`

	Runner   RunnerConfig   `envPrefix:"PYLEARN_RUNNER_"`
	Telegram TelegramConfig `envPrefix:"PYLEARN_TELEGRAM_"`

	// LLM enables AI hints in the editor. Unset means no hints.
	LLM llm.Config `envPrefix:"PYLEARN_LLM_"`
}

// RunnerConfig configures the code runner.
type RunnerConfig struct {
	Interpreter string `env:"INTERPRETER" envDefault:"python3"`

	// Timeout bounds a single run. Zero means no timeout.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"`
}

// TelegramConfig enables reminder delivery to a Telegram chat.
type TelegramConfig struct {
	Token  string `env:"TOKEN"`
	ChatID int64  `env:"CHAT_ID"`
}

// Enabled reports whether both the bot token and chat are configured.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// Load reads optional dotenv files, then the environment, and fills in
// path defaults. Missing dotenv files are ignored.
func Load(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.LLM.Discover()
	if err := cfg.resolvePaths(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths() error {
	if c.DataDir == "" {
		dir, err := xdgDir("XDG_DATA_HOME", ".local", "share")
		if err != nil {
			return err
		}
		c.DataDir = dir
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, AppName+".db")
	}
	if c.LogFile == "" {
		dir, err := xdgDir("XDG_STATE_HOME", ".local", "state")
		if err != nil {
			return err
		}
		c.LogFile = filepath.Join(dir, AppName+".log")
	}
	return nil
}

// ProgressPath is the location of the progress record.
func (c Config) ProgressPath() string {
	return filepath.Join(c.DataDir, "progress.json")
}

// ScriptsDir is where the editor saves snippets.
func (c Config) ScriptsDir() string {
	return filepath.Join(c.DataDir, "scripts")
}

// xdgDir resolves $<envVar>/pylearn, falling back to ~/<fallback...>/pylearn.
func xdgDir(envVar string, fallback ...string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, AppName), nil
}
