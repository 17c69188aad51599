package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrProviderDisabled = errors.New("no AI provider configured")

// Generator produces text content for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

type Config struct {
	Provider     string
	OpenAIKey    string
	OpenAIModel  string
	GeminiKey    string
	GeminiModel  string
	SystemPrompt string
}

const defaultSystemPrompt = "You are a brand strategist at a creator studio. " +
	"Write clear, practical deliverables for the creator described by the user. " +
	"Respond in Markdown without preamble."

// NewGenerator builds the generator for cfg.Provider ("openai", "gemini" or "none").
func NewGenerator(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using the openai provider")
		}
		return NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel, cfg.SystemPrompt), nil
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using the gemini provider")
		}
		return NewGeminiGenerator(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.SystemPrompt)
	case "", "none":
		return DisabledGenerator{}, nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s. Use 'openai', 'gemini' or 'none'", cfg.Provider)
	}
}

// DisabledGenerator fails every call. Deliverables end up FAILED with a clear reason.
type DisabledGenerator struct{}

func (DisabledGenerator) Generate(context.Context, string) (string, error) {
	return "", ErrProviderDisabled
}

func (DisabledGenerator) Provider() string { return "none" }

func (DisabledGenerator) Model() string { return "" }
