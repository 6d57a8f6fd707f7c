package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// GeminiProvider implements Provider with the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini provider.
func NewGeminiProvider(ctx context.Context, km KeyModel) (*GeminiProvider, error) {
	if km.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  km.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if km.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: km.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(km.Model, geminiModels)}, nil
}

func (p *GeminiProvider) Complete(ctx context.Context, pr Prompt) (*Completion, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(pr.MaxTokens),
	}
	if pr.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(pr.Temperature))
	}
	if pr.System != "" {
		config.SystemInstruction = genai.NewContentFromText(pr.System, genai.RoleUser)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(pr.User), config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(apiErr.Code, err)
		}
		return nil, &ErrUnavailable{Err: err}
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, &ErrEmptyCompletion{Model: p.model}
	}

	c := &Completion{Text: text, Model: p.model}
	if result.ModelVersion != "" {
		c.Model = result.ModelVersion
	}
	if u := result.UsageMetadata; u != nil {
		c.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
		}
	}
	if len(result.Candidates) > 0 {
		c.Truncated = result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens
	}
	return c, nil
}

func (p *GeminiProvider) Model() string {
	return p.model
}
