package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docask/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
)

// DatabaseName is the file name of the index database.
const DatabaseName = "index.db"

// Metadata keys.
const (
	metaBuildID   = "build_id"
	metaCreatedAt = "created_at"
	metaRows      = "rows"
	metaCols      = "cols"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Store persists the index in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the index database in dir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("index directory is required")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, DatabaseName)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Location returns the database file path.
func (s *Store) Location() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_index.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Save ====================

// Save replaces the stored index in a single transaction.
func (s *Store) Save(ctx context.Context, idx *domain.Index) (err error) {
	if err := idx.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"index_meta", "terms", "documents", "vectors"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	meta := map[string]string{
		metaBuildID:   idx.BuildID,
		metaCreatedAt: idx.CreatedAt.UTC().Format(time.RFC3339Nano),
		metaRows:      strconv.Itoa(len(idx.Vectors)),
		metaCols:      strconv.Itoa(idx.Model.Size()),
	}
	for k, v := range meta {
		if _, err = tx.ExecContext(ctx, "INSERT INTO index_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("inserting meta %s: %w", k, err)
		}
	}

	if err = insertRows(ctx, tx, "INSERT INTO terms (col, term, idf) VALUES (?, ?, ?)",
		len(idx.Model.Terms), func(i int) []any {
			return []any{i, idx.Model.Terms[i], idx.Model.IDF[i]}
		}); err != nil {
		return fmt.Errorf("inserting terms: %w", err)
	}

	if err = insertRows(ctx, tx, "INSERT INTO documents (ord, path, content) VALUES (?, ?, ?)",
		len(idx.Metadata), func(i int) []any {
			return []any{i, idx.Metadata[i].Path, idx.Metadata[i].Content}
		}); err != nil {
		return fmt.Errorf("inserting documents: %w", err)
	}

	if err = insertRows(ctx, tx, "INSERT INTO vectors (ord, nnz, indices, vals) VALUES (?, ?, ?, ?)",
		len(idx.Vectors), func(i int) []any {
			v := idx.Vectors[i]
			return []any{i, v.NNZ(), intsToBytes(v.Indices), float64SliceToBytes(v.Values)}
		}); err != nil {
		return fmt.Errorf("inserting vectors: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, query string, n int, args func(int) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return nil
}

// ==================== Load ====================

// Exists reports whether an index has been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM index_meta").Scan(&n); err != nil {
		return false, fmt.Errorf("counting index metadata: %w", err)
	}
	return n > 0, nil
}

// Load reads the stored index from a single read-only snapshot.
func (s *Store) Load(ctx context.Context) (*domain.Index, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	meta, err := loadMeta(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		return nil, fmt.Errorf("%w: %s has no index", domain.ErrIndexNotFound, s.path)
	}

	idx, err := loadIndex(ctx, tx, meta)
	if err != nil {
		if errors.Is(err, domain.ErrIndexCorrupt) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexCorrupt, err)
	}
	return idx, nil
}

func loadMeta(ctx context.Context, tx *sql.Tx) (map[string]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT key, value FROM index_meta")
	if err != nil {
		return nil, fmt.Errorf("querying index metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning index metadata: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

func loadIndex(ctx context.Context, tx *sql.Tx, meta map[string]string) (*domain.Index, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, meta[metaCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	nRows, err := strconv.Atoi(meta[metaRows])
	if err != nil {
		return nil, fmt.Errorf("parsing rows: %w", err)
	}
	nCols, err := strconv.Atoi(meta[metaCols])
	if err != nil {
		return nil, fmt.Errorf("parsing cols: %w", err)
	}

	terms, idf, err := loadTerms(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(terms) != nCols {
		return nil, fmt.Errorf("%w: %d terms stored, %d expected", domain.ErrIndexCorrupt, len(terms), nCols)
	}

	docs, err := loadDocuments(ctx, tx)
	if err != nil {
		return nil, err
	}
	vectors, err := loadVectors(ctx, tx, nCols)
	if err != nil {
		return nil, err
	}
	if len(docs) != nRows || len(vectors) != nRows {
		return nil, fmt.Errorf("%w: %d documents and %d vectors stored, %d expected",
			domain.ErrIndexCorrupt, len(docs), len(vectors), nRows)
	}

	idx := &domain.Index{
		Model:     domain.NewTermModel(terms, idf),
		Vectors:   vectors,
		Metadata:  docs,
		BuildID:   meta[metaBuildID],
		CreatedAt: createdAt,
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

func loadTerms(ctx context.Context, tx *sql.Tx) ([]string, []float64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT col, term, idf FROM terms ORDER BY col")
	if err != nil {
		return nil, nil, fmt.Errorf("querying terms: %w", err)
	}
	defer rows.Close()

	var terms []string
	var idf []float64
	for rows.Next() {
		var col int
		var term string
		var w float64
		if err := rows.Scan(&col, &term, &w); err != nil {
			return nil, nil, fmt.Errorf("scanning term: %w", err)
		}
		if col != len(terms) {
			return nil, nil, fmt.Errorf("%w: term column %d out of sequence", domain.ErrIndexCorrupt, col)
		}
		terms = append(terms, term)
		idf = append(idf, w)
	}
	return terms, idf, rows.Err()
}

func loadDocuments(ctx context.Context, tx *sql.Tx) ([]domain.Document, error) {
	rows, err := tx.QueryContext(ctx, "SELECT ord, path, content FROM documents ORDER BY ord")
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var ord int
		var doc domain.Document
		if err := rows.Scan(&ord, &doc.Path, &doc.Content); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if ord != len(docs) {
			return nil, fmt.Errorf("%w: document row %d out of sequence", domain.ErrIndexCorrupt, ord)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func loadVectors(ctx context.Context, tx *sql.Tx, dim int) ([]domain.SparseVector, error) {
	rows, err := tx.QueryContext(ctx, "SELECT ord, nnz, indices, vals FROM vectors ORDER BY ord")
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var vectors []domain.SparseVector
	for rows.Next() {
		var ord, nnz int
		var rawIdx, rawVals []byte
		if err := rows.Scan(&ord, &nnz, &rawIdx, &rawVals); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}
		if ord != len(vectors) {
			return nil, fmt.Errorf("%w: vector row %d out of sequence", domain.ErrIndexCorrupt, ord)
		}
		if len(rawIdx) != nnz*4 || len(rawVals) != nnz*8 {
			return nil, fmt.Errorf("%w: vector row %d has malformed blobs", domain.ErrIndexCorrupt, ord)
		}
		vectors = append(vectors, domain.SparseVector{
			Dim:     dim,
			Indices: bytesToInts(rawIdx),
			Values:  bytesToFloat64Slice(rawVals),
		})
	}
	return vectors, rows.Err()
}

// ==================== Encoding ====================

func intsToBytes(ints []int) []byte {
	if len(ints) == 0 {
		return nil
	}
	buf := make([]byte, len(ints)*4)
	for i, n := range ints {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(n))
	}
	return buf
}

func bytesToInts(data []byte) []int {
	if len(data) == 0 {
		return nil
	}
	ints := make([]int, len(data)/4)
	for i := range ints {
		ints[i] = int(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return ints
}

func float64SliceToBytes(floats []float64) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*8)
	for i, f := range floats {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

func bytesToFloat64Slice(data []byte) []float64 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float64, len(data)/8)
	for i := range floats {
		floats[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return floats
}
