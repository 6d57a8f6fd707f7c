package llm

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/pylearn/internal/store"
)

func TestConfigDiscover(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	var cfg Config
	cfg.Discover()
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-openai" {
		t.Fatalf("unexpected discovery: %+v", cfg)
	}

	explicit := Config{Provider: ProviderMock}
	explicit.Discover()
	if explicit.Provider != ProviderMock {
		t.Fatalf("explicit provider overridden: %q", explicit.Provider)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{}, false},
		{"mock", Config{Provider: ProviderMock}, false},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: KeyModel{APIKey: "k"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"unknown", Config{Provider: "llama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigSelectedDefaults(t *testing.T) {
	km := Config{Provider: ProviderOpenRouter}.selected()
	if km.BaseURL != openRouterBaseURL || km.Model == "" {
		t.Fatalf("unexpected openrouter defaults: %+v", km)
	}
}

func TestNewDisabled(t *testing.T) {
	p, err := New(context.Background(), Config{}, nil, nil)
	if err != nil || p != nil {
		t.Fatalf("expected nil provider, got %v, %v", p, err)
	}
}

func TestNewMock(t *testing.T) {
	p, err := New(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Model() != "mock" {
		t.Fatalf("unexpected model %q", p.Model())
	}
}

func TestLoggingRecordsEvents(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer db.Close()

	mock := NewMockProvider(
		MockResponse{Text: "hint", Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithLogging(mock, ProviderMock, db.EventRepo(), nil)

	hintCtx := WithPurpose(ctx, "hint")
	if _, err := p.Complete(hintCtx, Prompt{User: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Complete(hintCtx, Prompt{User: "b"}); err == nil {
		t.Fatal("expected error")
	}

	events, err := db.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	failed, ok := events[0], events[1]
	if failed.Success || failed.ErrorMessage != "boom" {
		t.Fatalf("unexpected failed event: %+v", failed)
	}
	if !ok.Success || ok.Purpose != "hint" || ok.InputTokens != 10 || ok.OutputTokens != 5 || ok.Provider != ProviderMock {
		t.Fatalf("unexpected success event: %+v", ok)
	}
}

func TestPurposeDefault(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
}
