package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the hint provider. Field tags are read
// relative to the PYLEARN_LLM_ prefix. An empty Provider disables hints.
type Config struct {
	Provider string `env:"PROVIDER"`

	Anthropic  KeyModel `envPrefix:"ANTHROPIC_"`
	OpenAI     KeyModel `envPrefix:"OPENAI_"`
	Gemini     KeyModel `envPrefix:"GEMINI_"`
	OpenRouter KeyModel `envPrefix:"OPENROUTER_"`

	Retry RetryConfig `envPrefix:"RETRY_"`

	// Timeout bounds one request including retries.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// KeyModel is the per-provider key, model and optional endpoint.
type KeyModel struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`
	BaseURL string `env:"BASE_URL"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// Default model names per provider.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp",
}

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Discover fills Provider and its key from the vendors' standard
// variables when no provider was configured explicitly. Priority is
// Gemini, OpenAI, Anthropic, OpenRouter.
func (c *Config) Discover() {
	if c.Provider != "" {
		return
	}
	for _, cand := range []struct {
		env, provider string
		km            *KeyModel
	}{
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter},
	} {
		if k := os.Getenv(cand.env); k != "" {
			c.Provider = cand.provider
			if cand.km.APIKey == "" {
				cand.km.APIKey = k
			}
			return
		}
	}
}

// selected returns the settings of the chosen provider with defaults
// applied.
func (c Config) selected() KeyModel {
	var km KeyModel
	switch c.Provider {
	case ProviderAnthropic:
		km = c.Anthropic
	case ProviderOpenAI:
		km = c.OpenAI
	case ProviderGemini:
		km = c.Gemini
	case ProviderOpenRouter:
		km = c.OpenRouter
		if km.BaseURL == "" {
			km.BaseURL = openRouterBaseURL
		}
	}
	if km.Model == "" {
		km.Model = defaultModels[c.Provider]
	}
	return km
}

// Validate checks the selected provider has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.selected().APIKey == "" {
			return fmt.Errorf("PYLEARN_LLM_%s_API_KEY is required for the %s provider",
				envName(c.Provider), c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderGemini:
		return "GEMINI"
	case ProviderOpenRouter:
		return "OPENROUTER"
	default:
		return "ANTHROPIC"
	}
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
