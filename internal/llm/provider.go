package llm

import "context"

// Provider produces a plain-text completion for a prompt.
type Provider interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// Model returns the configured model identifier.
	Model() string
}

// Prompt is a single-turn request: an optional system instruction and the
// user's text.
type Prompt struct {
	System string
	User   string

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Completion is the model's answer.
type Completion struct {
	Text  string
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// Truncated is set when generation stopped at MaxTokens.
	Truncated bool
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}
