package driven

import (
	"context"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// DocumentLoader reads documents from a source location.
type DocumentLoader interface {
	// Load returns every qualifying document under source, ordered by path.
	// Documents are trimmed and blank ones are skipped.
	Load(ctx context.Context, source string) ([]domain.Document, error)
}
