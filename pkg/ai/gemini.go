package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiGenerator struct {
	client       *genai.Client
	model        string
	systemPrompt string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model, systemPrompt string) (*GeminiGenerator, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt cannot be empty")
	}

	m := g.client.GenerativeModel(g.model)
	m.SystemInstruction = genai.NewUserContent(genai.Text(g.systemPrompt))
	m.SetTemperature(0.7)
	m.SetMaxOutputTokens(4000)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: no content generated")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	if out.Len() == 0 {
		return "", errors.New("gemini: no text in response")
	}

	return out.String(), nil
}

func (g *GeminiGenerator) Provider() string { return "gemini" }

func (g *GeminiGenerator) Model() string { return g.model }

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
