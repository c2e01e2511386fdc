package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore keeps the most recently saved index in memory.
// Saved and loaded indexes are deep copies so callers cannot alias each other.
type IndexStore struct {
	mu    sync.RWMutex
	index *domain.Index
	saves int
}

// NewIndexStore creates an empty in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// Save replaces the stored index.
func (s *IndexStore) Save(ctx context.Context, idx *domain.Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := idx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = cloneIndex(idx)
	s.saves++
	return nil
}

// Load returns a copy of the stored index.
func (s *IndexStore) Load(ctx context.Context) (*domain.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, domain.ErrIndexNotFound
	}
	return cloneIndex(s.index), nil
}

// Exists reports whether an index has been saved.
func (s *IndexStore) Exists(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index != nil, nil
}

// Saves returns how many times Save succeeded.
func (s *IndexStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Location returns ":memory:".
func (s *IndexStore) Location() string { return ConfigStorePath }

// Close is a no-op.
func (s *IndexStore) Close() error { return nil }

func cloneIndex(idx *domain.Index) *domain.Index {
	vectors := make([]domain.SparseVector, len(idx.Vectors))
	for i, v := range idx.Vectors {
		vectors[i] = domain.SparseVector{
			Dim:     v.Dim,
			Indices: append([]int(nil), v.Indices...),
			Values:  append([]float64(nil), v.Values...),
		}
	}
	return &domain.Index{
		Model: domain.NewTermModel(
			append([]string(nil), idx.Model.Terms...),
			append([]float64(nil), idx.Model.IDF...),
		),
		Vectors:   vectors,
		Metadata:  append([]domain.Document(nil), idx.Metadata...),
		BuildID:   idx.BuildID,
		CreatedAt: idx.CreatedAt,
	}
}
