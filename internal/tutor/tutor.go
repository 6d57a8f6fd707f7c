// Package tutor asks an LLM for short hints about failed snippets.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/pylearn/internal/curriculum"
	"github.com/abhisek/pylearn/internal/llm"
	"github.com/abhisek/pylearn/internal/logging"
)

// ErrDisabled is returned when no LLM provider is configured.
var ErrDisabled = errors.New("hints are not configured")

const (
	maxSourceChars = 4000
	maxOutputChars = 2000
	hintMaxTokens  = 300
)

const systemPrompt = `You are a patient Python tutor for a beginner following a structured course.
Explain the most likely cause of the problem in plain language, in at most four sentences.
Point at the line or construct involved. Do not rewrite the whole program and do not give the full solution.
Answer in plain text without markdown headings.`

// HintRequest describes the snippet the learner is stuck on.
type HintRequest struct {
	Week   string
	Lesson curriculum.DayInfo
	Source string
	Output string
}

// Service produces hints. A Service with a nil provider is valid and
// reports ErrDisabled.
type Service struct {
	provider llm.Provider
	logger   *zap.Logger
}

// New creates a Service.
func New(p llm.Provider, logger *zap.Logger) *Service {
	return &Service{provider: p, logger: logging.OrNop(logger).Named("tutor")}
}

// Enabled reports whether hints can be requested.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// Hint returns a short explanation of why the snippet misbehaves.
func (s *Service) Hint(ctx context.Context, req HintRequest) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	if strings.TrimSpace(req.Source) == "" {
		return "", errors.New("nothing to explain: the editor is empty")
	}

	c, err := s.provider.Complete(llm.WithPurpose(ctx, "hint"), llm.Prompt{
		System:      systemPrompt,
		User:        buildPrompt(req),
		MaxTokens:   hintMaxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("request hint: %w", err)
	}
	if c.Truncated {
		s.logger.Debug("hint truncated", zap.Int("output_tokens", c.Usage.OutputTokens))
	}
	return c.Text, nil
}

func buildPrompt(req HintRequest) string {
	var b strings.Builder
	if req.Lesson.Title != "" {
		fmt.Fprintf(&b, "Lesson: %s (%s)\n", req.Lesson.Title, req.Week)
	}
	if req.Lesson.Theory != "" {
		fmt.Fprintf(&b, "Topic: %s\n", req.Lesson.Theory)
	}
	if req.Lesson.Tasks != "" {
		fmt.Fprintf(&b, "Task: %s\n", req.Lesson.Tasks)
	}
	fmt.Fprintf(&b, "\nProgram:\n```python\n%s\n```\n", clip(req.Source, maxSourceChars))
	out := strings.TrimSpace(req.Output)
	if out == "" {
		out = "(no output)"
	}
	fmt.Fprintf(&b, "\nOutput:\n```\n%s\n```\n", clipTail(out, maxOutputChars))
	b.WriteString("\nWhat should I look at?")
	return b.String()
}

// clip keeps the head of s.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "\n# ... (truncated)"
}

// clipTail keeps the end of s, where tracebacks put the error.
func clipTail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "... (truncated)\n" + s[len(s)-n:]
}
