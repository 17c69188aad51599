package ai

import (
	"context"
	"errors"
	"testing"
)

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		cfg      Config
		provider string
		wantErr  bool
	}{
		{name: "none", cfg: Config{Provider: "none"}, provider: "none"},
		{name: "empty means none", cfg: Config{}, provider: "none"},
		{name: "openai", cfg: Config{Provider: "OpenAI", OpenAIKey: "sk-test"}, provider: "openai"},
		{name: "openai without key", cfg: Config{Provider: "openai"}, wantErr: true},
		{name: "gemini without key", cfg: Config{Provider: "gemini"}, wantErr: true},
		{name: "unknown", cfg: Config{Provider: "llama"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(ctx, tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got generator %T", g)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.Provider() != tt.provider {
				t.Fatalf("provider = %q, want %q", g.Provider(), tt.provider)
			}
		})
	}
}

func TestOpenAIGeneratorDefaultsModel(t *testing.T) {
	g := NewOpenAIGenerator("sk-test", "", "sys")
	if g.Model() == "" {
		t.Fatal("expected a default model")
	}
}

func TestDisabledGenerator(t *testing.T) {
	_, err := DisabledGenerator{}.Generate(context.Background(), "hello")
	if !errors.Is(err, ErrProviderDisabled) {
		t.Fatalf("err = %v, want ErrProviderDisabled", err)
	}
}
