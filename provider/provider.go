package provider

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/loopcast/config"
	openai_provider "github.com/mohammad-safakhou/loopcast/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
)

// CompletionProvider is the interface every LLM implementation must satisfy.
// A failed completion is fatal to the calling pipeline step.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(cfg config.LLMConfig) (CompletionProvider, error) {
	switch Client(cfg.Provider) {
	case OpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("llm.api_key not set")
		}
		return openai_provider.NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
