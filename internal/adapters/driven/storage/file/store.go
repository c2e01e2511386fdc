package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio/maybe"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
	"github.com/custodia-labs/docask/internal/logger"
)

// Artifact file names.
const (
	ModelFile    = "model.json"
	MatrixFile   = "matrix.bin"
	MetadataFile = "metadata.json"
	lockFile     = ".lock"
)

// modelFormatVersion is the model.json schema version.
const modelFormatVersion = 1

// lockRetryDelay is how often a blocked lock attempt retries.
const lockRetryDelay = 50 * time.Millisecond

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Store persists the index as files in a directory.
type Store struct {
	dir string
}

// modelJSON is the on-disk form of the term model.
type modelJSON struct {
	Version   int       `json:"version"`
	BuildID   string    `json:"build_id"`
	CreatedAt time.Time `json:"created_at"`
	Terms     []string  `json:"terms"`
	IDF       []float64 `json:"idf"`
}

// NewStore creates a file store rooted at dir.
// The directory is created on first Save.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("index directory is required")
	}
	return &Store{dir: dir}, nil
}

// Location returns the index directory.
func (s *Store) Location() string {
	return s.dir
}

// Close is a no-op; locks are released after every operation.
func (s *Store) Close() error {
	return nil
}

// Save writes all three artifacts, replacing any previous index.
func (s *Store) Save(ctx context.Context, idx *domain.Index) error {
	if err := idx.Validate(); err != nil {
		return err
	}

	model, err := json.Marshal(modelJSON{
		Version:   modelFormatVersion,
		BuildID:   idx.BuildID,
		CreatedAt: idx.CreatedAt,
		Terms:     nonNil(idx.Model.Terms),
		IDF:       nonNil(idx.Model.IDF),
	})
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	matrix, err := EncodeMatrix(idx.Vectors, idx.Model.Size())
	if err != nil {
		return fmt.Errorf("encoding matrix: %w", err)
	}
	metadata, err := json.MarshalIndent(nonNil(idx.Metadata), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	lock := flock.New(filepath.Join(s.dir, lockFile))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("locking index: %w", err)
	}
	if !locked {
		return fmt.Errorf("locking index: %s is busy", s.dir)
	}
	defer lock.Unlock()

	// Metadata and matrix first: model.json marks a complete index.
	artifacts := []struct {
		name string
		data []byte
	}{
		{MetadataFile, metadata},
		{MatrixFile, matrix},
		{ModelFile, model},
	}
	for _, a := range artifacts {
		if err := maybe.WriteFile(filepath.Join(s.dir, a.name), a.data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", a.name, err)
		}
	}
	return nil
}

// Exists reports whether every artifact is present.
func (s *Store) Exists(_ context.Context) (bool, error) {
	for _, name := range []string{ModelFile, MatrixFile, MetadataFile} {
		_, err := os.Stat(filepath.Join(s.dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// Load reads and cross-checks the three artifacts.
func (s *Store) Load(ctx context.Context) (*domain.Index, error) {
	ok, err := s.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking index: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, s.dir)
	}

	unlock, err := s.readLock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	raw := make(map[string][]byte, 3)
	for _, name := range []string{ModelFile, MatrixFile, MetadataFile} {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s missing", domain.ErrIndexNotFound, name)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrIndexCorrupt, name, err)
		}
		raw[name] = data
	}

	return decodeIndex(raw[ModelFile], raw[MatrixFile], raw[MetadataFile])
}

// readLock takes the shared lock when a writer has created the lock file.
// Without one, or on a read-only directory, the artifacts are read unlocked.
func (s *Store) readLock(ctx context.Context) (func(), error) {
	path := filepath.Join(s.dir, lockFile)
	if _, err := os.Stat(path); err != nil {
		return func() {}, nil
	}

	lock := flock.New(path)
	locked, err := lock.TryRLockContext(ctx, lockRetryDelay)
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EROFS) {
		logger.Debug("Reading index without lock: %v", err)
		return func() {}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("locking index: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("locking index: %s is busy", s.dir)
	}
	return func() { _ = lock.Unlock() }, nil
}

func decodeIndex(modelData, matrixData, metadataData []byte) (*domain.Index, error) {
	var model modelJSON
	if err := json.Unmarshal(modelData, &model); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIndexCorrupt, ModelFile, err)
	}
	if model.Version != modelFormatVersion {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", domain.ErrIndexCorrupt, ModelFile, model.Version)
	}

	vectors, cols, err := DecodeMatrix(matrixData)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIndexCorrupt, MatrixFile, err)
	}
	if cols != len(model.Terms) {
		return nil, fmt.Errorf("%w: matrix has %d columns but vocabulary has %d terms",
			domain.ErrIndexCorrupt, cols, len(model.Terms))
	}

	var metadata []domain.Document
	if err := json.Unmarshal(metadataData, &metadata); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIndexCorrupt, MetadataFile, err)
	}
	if len(metadata) != len(vectors) {
		return nil, fmt.Errorf("%w: matrix has %d rows but metadata has %d entries",
			domain.ErrIndexCorrupt, len(vectors), len(metadata))
	}

	idx := &domain.Index{
		Model:     domain.NewTermModel(model.Terms, model.IDF),
		Vectors:   vectors,
		Metadata:  metadata,
		BuildID:   model.BuildID,
		CreatedAt: model.CreatedAt,
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
