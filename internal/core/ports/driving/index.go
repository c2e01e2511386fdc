package driving

import (
	"context"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// IndexService builds and persists the index.
type IndexService interface {
	// Build indexes docs and persists the result, replacing any previous index.
	Build(ctx context.Context, docs []domain.Document) (*domain.Index, error)

	// BuildFromSource loads every document under source and indexes it.
	BuildFromSource(ctx context.Context, source string) (*domain.Index, error)

	// Watch rebuilds the whole index each time source changes.
	// It blocks until ctx is cancelled.
	Watch(ctx context.Context, source string, onBuild func(*domain.Index, error)) error
}
