package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/logging"
	"github.com/abhisek/pylearn/internal/store"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "hint".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}

// LoggingProvider records every request to the event log and the logger.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *zap.Logger
}

// WithLogging wraps p. events may be nil.
func WithLogging(p Provider, providerName string, events store.EventRepo, logger *zap.Logger) *LoggingProvider {
	return &LoggingProvider{
		inner:    p,
		provider: providerName,
		events:   events,
		logger:   logging.OrNop(logger).Named("llm"),
	}
}

func (l *LoggingProvider) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()
	c, err := l.inner.Complete(ctx, p)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.Model(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	if c != nil {
		data.Model = c.Model
		data.InputTokens = c.Usage.InputTokens
		data.OutputTokens = c.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed",
			zap.String("purpose", data.Purpose), zap.Duration("latency", latency), zap.Error(err))
	} else {
		l.logger.Debug("llm request",
			zap.String("purpose", data.Purpose),
			zap.String("model", data.Model),
			zap.Int("tokens", c.Usage.Total()),
			zap.Duration("latency", latency))
	}

	if l.events != nil {
		if lerr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), data); lerr != nil {
			l.logger.Warn("record llm request", zap.Error(lerr))
		}
	}
	return c, err
}

func (l *LoggingProvider) Model() string {
	return l.inner.Model()
}
