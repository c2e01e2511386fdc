package driven

import "context"

// AnswerGenerator produces an answer to a question from retrieved context.
// It is a single blocking remote call bounded by ctx.
//
// Implementations include:
//   - OpenAI chat completions
//   - Ollama (local models)
type AnswerGenerator interface {
	// Generate returns the answer text.
	// Returns domain.ErrMissingCredential before any network call when the
	// provider is not configured, and domain.ErrRemoteCall on transport,
	// timeout or non-2xx failures.
	Generate(ctx context.Context, question, docContext string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}

// GeneratorFactory builds an AnswerGenerator for a model override.
// An empty model selects the configured default.
type GeneratorFactory func(model string) (AnswerGenerator, error)
