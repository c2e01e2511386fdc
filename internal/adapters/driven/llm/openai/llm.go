// Package openai provides an answer generator backed by the OpenAI
// chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.AnswerGenerator = (*Generator)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultLLMTimeout = 60 * time.Second
	Temperature       = 0.2
)

// SystemPrompt instructs the model to stay within the retrieved context.
const SystemPrompt = "Answer the question using only the provided context. " +
	"If the answer is not in the context, say you don't know."

// Config holds configuration for the OpenAI generator.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for OpenAI-compatible APIs.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Timeout bounds a single request (default: 60s).
	Timeout time.Duration
}

// Generator produces answers using the OpenAI chat completions API.
type Generator struct {
	client openaisdk.Client
	apiKey string
	model  string
}

// NewGenerator creates a new OpenAI generator.
// An empty API key is accepted here and reported by Generate so that
// retrieval keeps working without credentials.
func NewGenerator(cfg Config) *Generator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	client := openaisdk.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	)

	return &Generator{
		client: client,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

// UserPrompt formats the question and its supporting context.
func UserPrompt(question, docContext string) string {
	return fmt.Sprintf("Question: %s\n\nContext:\n%s", question, docContext)
}

// Generate asks the model to answer question from docContext.
func (g *Generator) Generate(ctx context.Context, question, docContext string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY is not set", domain.ErrMissingCredential)
	}

	res, err := g.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(SystemPrompt),
			openaisdk.UserMessage(UserPrompt(question, docContext)),
		},
		Temperature: openaisdk.Float(Temperature),
	})
	if err != nil {
		var apiErr *openaisdk.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: openai error (status %d): %s",
				domain.ErrRemoteCall, apiErr.StatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("%w: openai: %w", domain.ErrRemoteCall, err)
	}

	if len(res.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", domain.ErrRemoteCall)
	}
	return strings.TrimSpace(res.Choices[0].Message.Content), nil
}

// ModelName returns the name of the chat model being used.
func (g *Generator) ModelName() string {
	return g.model
}
