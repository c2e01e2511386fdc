package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
	"github.com/custodia-labs/docask/internal/core/ports/driving"
	"github.com/custodia-labs/docask/internal/core/tfidf"
	"github.com/custodia-labs/docask/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService builds the index and persists it through an IndexStore.
type IndexService struct {
	store   driven.IndexStore
	loader  driven.DocumentLoader
	watcher driven.SourceWatcher
	onBuild []func(*domain.Index)
	now     func() time.Time
}

// NewIndexService creates a new index service.
// The loader and watcher parameters are optional (can be nil).
func NewIndexService(
	store driven.IndexStore,
	loader driven.DocumentLoader,
	watcher driven.SourceWatcher,
) *IndexService {
	return &IndexService{
		store:   store,
		loader:  loader,
		watcher: watcher,
		now:     time.Now,
	}
}

// OnBuild registers a callback run after every successful build.
func (s *IndexService) OnBuild(fn func(*domain.Index)) {
	s.onBuild = append(s.onBuild, fn)
}

// Build indexes docs and persists the result, replacing any previous index.
func (s *IndexService) Build(ctx context.Context, docs []domain.Document) (*domain.Index, error) {
	logger.Section("Index Build")
	logger.Debug("Input documents: %d", len(docs))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := tfidf.Build(docs)
	if err != nil {
		return nil, err
	}
	idx.BuildID = uuid.NewString()
	idx.CreatedAt = s.now().UTC()

	logger.Info("Fitted %d terms over %d documents", idx.Model.Size(), idx.Len())
	logger.Debug("Build ID: %s", idx.BuildID)

	if err := s.store.Save(ctx, idx); err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}
	logger.Debug("Saved index to %s", s.store.Location())

	for _, fn := range s.onBuild {
		fn(idx)
	}
	return idx, nil
}

// BuildFromSource loads every document under source and indexes it.
func (s *IndexService) BuildFromSource(ctx context.Context, source string) (*domain.Index, error) {
	if s.loader == nil {
		return nil, errors.New("document loader not configured")
	}

	logger.Debug("Loading documents from %s", source)
	docs, err := s.loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrEmptyCorpus, source)
	}

	return s.Build(ctx, docs)
}

// Watch rebuilds the whole index each time source changes.
// Build failures are reported through onBuild and do not stop watching.
func (s *IndexService) Watch(
	ctx context.Context, source string, onBuild func(*domain.Index, error),
) error {
	if s.watcher == nil {
		return errors.New("source watcher not configured")
	}

	return s.watcher.Watch(ctx, source, func() {
		logger.Info("Change detected in %s, rebuilding", source)
		idx, err := s.BuildFromSource(ctx, source)
		if err != nil {
			logger.Warn("Rebuild failed: %v", err)
		}
		if onBuild != nil {
			onBuild(idx, err)
		}
	})
}
