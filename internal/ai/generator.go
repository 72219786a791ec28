// Package ai is the content-generation collaborator: it assembles campaign
// context into prompts and hands them to a text-generation backend. The
// rest of the system only ever sees the resulting string.
package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Generator produces text from a system instruction and a user query.
// Implementations are opaque to callers; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, system, query string) (string, error)
}

// GeminiGenerator calls the Gemini API through google.golang.org/genai.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator dials the Gemini API. Model defaults to
// gemini-2.0-flash when empty.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, system, query string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(query),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.9),
			TopP:              genai.Ptr[float32](0.95),
			TopK:              genai.Ptr[float32](40),
			MaxOutputTokens:   8192,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty model response")
	}
	return text, nil
}
