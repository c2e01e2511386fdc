package driving

import (
	"context"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// SearchService provides ranked retrieval to external actors.
type SearchService interface {
	// Search ranks indexed documents against a free-text query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Info describes the currently stored index.
	Info(ctx context.Context) (*domain.IndexInfo, error)
}

// AskService answers questions over the index.
type AskService interface {
	// Ask retrieves ranked results and, when requested, a generated answer.
	// On a generation failure the ranked results are still returned
	// together with the error.
	Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.AskResult, error)
}
