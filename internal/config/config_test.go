package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	data := t.TempDir()
	state := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("XDG_STATE_HOME", state)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(data, "pylearn"), cfg.DataDir)
	assert.Equal(t, filepath.Join(data, "pylearn", "pylearn.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(state, "pylearn", "pylearn.log"), cfg.LogFile)
	assert.Equal(t, filepath.Join(data, "pylearn", "progress.json"), cfg.ProgressPath())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "python3", cfg.Runner.Interpreter)
	assert.Zero(t, cfg.Runner.Timeout)
	assert.False(t, cfg.Telegram.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PYLEARN_DATA_DIR", dir)
	t.Setenv("PYLEARN_DB", "/tmp/custom.db")
	t.Setenv("PYLEARN_RUNNER_TIMEOUT", "5s")
	t.Setenv("PYLEARN_TELEGRAM_TOKEN", "abc")
	t.Setenv("PYLEARN_TELEGRAM_CHAT_ID", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.Runner.Timeout)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PYLEARN_LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("PYLEARN_DATA_DIR", dir)
	t.Cleanup(func() { os.Unsetenv("PYLEARN_LOG_LEVEL") })

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("PYLEARN_DATA_DIR", t.TempDir())
	t.Setenv("PYLEARN_RUNNER_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadLLM(t *testing.T) {
	t.Setenv("PYLEARN_DATA_DIR", t.TempDir())
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.LLM.Enabled())
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)

	t.Setenv("PYLEARN_LLM_PROVIDER", "anthropic")
	t.Setenv("PYLEARN_LLM_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("PYLEARN_LLM_ANTHROPIC_MODEL", "claude-sonnet")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Anthropic.Model)
	assert.NoError(t, cfg.LLM.Validate())
}
