package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
	"github.com/custodia-labs/docask/internal/core/ports/driving"
	"github.com/custodia-labs/docask/internal/core/tfidf"
	"github.com/custodia-labs/docask/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultResultCacheSize is the number of distinct queries cached per build.
const DefaultResultCacheSize = 256

// resultKey identifies a cached result set.
type resultKey struct {
	buildID string
	query   string
	topK    int
}

// SearchService ranks documents in the stored index.
// The index is loaded on first use and kept until Invalidate is called.
type SearchService struct {
	store driven.IndexStore

	mu    sync.Mutex
	index *domain.Index
	cache *lru.Cache[resultKey, []domain.SearchResult]
}

// NewSearchService creates a new search service.
// A cacheSize below 1 disables result caching.
func NewSearchService(store driven.IndexStore, cacheSize int) (*SearchService, error) {
	s := &SearchService{store: store}
	if cacheSize > 0 {
		cache, err := lru.New[resultKey, []domain.SearchResult](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Search ranks indexed documents against a free-text query.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q, top: %d", query, opts.TopK)

	if opts.TopK < 1 {
		return nil, fmt.Errorf("%w: top must be at least 1, got %d", domain.ErrInvalidInput, opts.TopK)
	}

	idx, err := s.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	key := resultKey{buildID: idx.BuildID, query: query, topK: opts.TopK}
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			logger.Debug("Result cache hit")
			return slices.Clone(cached), nil
		}
	}

	results, err := tfidf.Search(idx, query, opts.TopK)
	if err != nil {
		return nil, err
	}
	logger.Info("Found %d results", len(results))

	if s.cache != nil {
		s.cache.Add(key, slices.Clone(results))
	}
	return results, nil
}

// Info describes the currently stored index.
func (s *SearchService) Info(ctx context.Context) (*domain.IndexInfo, error) {
	idx, err := s.loadIndex(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.IndexInfo{
		BuildID:        idx.BuildID,
		CreatedAt:      idx.CreatedAt,
		Documents:      idx.Len(),
		VocabularySize: idx.Model.Size(),
		Location:       s.store.Location(),
	}, nil
}

// Invalidate drops the loaded index and cached results.
// The next query reloads from the store.
func (s *SearchService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = nil
	if s.cache != nil {
		s.cache.Purge()
	}
}

// Use replaces the loaded index without touching the store.
func (s *SearchService) Use(idx *domain.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = idx
	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *SearchService) loadIndex(ctx context.Context) (*domain.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		return s.index, nil
	}
	if s.store == nil {
		return nil, errors.New("index store not configured")
	}

	logger.Debug("Loading index from %s", s.store.Location())
	idx, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	logger.Debug("Loaded %d documents, %d terms", idx.Len(), idx.Model.Size())

	s.index = idx
	return idx, nil
}
