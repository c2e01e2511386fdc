// Package ai provides factory functions for creating answer generators.
package ai

import (
	"fmt"
	"time"

	ollamallm "github.com/custodia-labs/docask/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/docask/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
)

// NewGeneratorFactory returns a factory that builds generators from settings.
// The model passed to the factory overrides settings.Model when non-empty.
func NewGeneratorFactory(settings domain.LLMSettings) driven.GeneratorFactory {
	return func(model string) (driven.AnswerGenerator, error) {
		s := settings
		if model != "" {
			s.Model = model
		}
		return CreateGenerator(s)
	}
}

// CreateGenerator creates the generator for the configured provider.
// A missing OpenAI key is not an error here; the generator reports it when
// asked for an answer.
func CreateGenerator(settings domain.LLMSettings) (driven.AnswerGenerator, error) {
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewGenerator(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewGenerator(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: timeout,
		}), nil

	default:
		return nil, fmt.Errorf("%w: llm provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}
