// Package genai implements the Summarizer port on the Gemini API.
package genai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/basak2005/Google-workspace-Integration/internal/ports"
)

// GeminiSummarizer generates summaries with a Gemini model.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGeminiSummarizer creates a summarizer bound to one model.
func NewGeminiSummarizer(ctx context.Context, apiKey, model string, logger zerolog.Logger) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSummarizer{client: client, model: model, logger: logger}, nil
}

var _ ports.Summarizer = (*GeminiSummarizer)(nil)

// Summarize sends the prompt to the model and returns its text response.
func (s *GeminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "Unable to generate summary.", nil
	}
	return text, nil
}
