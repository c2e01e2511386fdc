package driven

import (
	"context"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// IndexStore persists a complete Index and loads it back.
// Save fully replaces any previous index. Load never returns a partial index.
type IndexStore interface {
	// Save persists the index, replacing whatever was stored before.
	Save(ctx context.Context, idx *domain.Index) error

	// Load reads the stored index.
	// Returns domain.ErrIndexNotFound if nothing is stored and
	// domain.ErrIndexCorrupt if the stored artifacts are inconsistent.
	Load(ctx context.Context) (*domain.Index, error)

	// Exists reports whether an index is stored.
	Exists(ctx context.Context) (bool, error)

	// Location describes where the index lives (a directory or database path).
	Location() string

	// Close releases resources.
	Close() error
}
