// Package filesystem loads documents from a directory tree.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
	"github.com/custodia-labs/docask/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// TextExtensions are the plain-text extensions loaded by default.
var TextExtensions = []string{".txt", ".md", ".markdown"}

// PDFExtension selects PDF text extraction.
const PDFExtension = ".pdf"

// Loader reads supported files under a source directory.
type Loader struct {
	extensions  map[string]bool
	concurrency int
}

// Option configures a Loader.
type Option func(*Loader)

// WithPDF also loads .pdf files through text extraction.
func WithPDF() Option {
	return func(l *Loader) {
		l.extensions[PDFExtension] = true
	}
}

// WithConcurrency bounds the number of files read at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// NewLoader creates a loader for TextExtensions.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		extensions:  make(map[string]bool),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, ext := range TextExtensions {
		l.extensions[ext] = true
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Supports reports whether a path has a loaded extension (case-insensitive).
func (l *Loader) Supports(path string) bool {
	return l.extensions[strings.ToLower(filepath.Ext(path))]
}

// Load walks source recursively and returns one document per supported,
// non-blank file, ordered by path. Invalid UTF-8 is dropped and content is
// trimmed. Paths are absolute.
func (l *Loader) Load(ctx context.Context, source string) ([]domain.Document, error) {
	root, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", source, err)
	}

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: source folder %s", domain.ErrNotFound, root)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, root)
	}

	paths, err := l.collect(root)
	if err != nil {
		return nil, err
	}
	logger.Debug("Found %d candidate files under %s", len(paths), root)

	contents := make([]string, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := l.read(path)
			if err != nil {
				return err
			}
			contents[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(paths))
	for i, path := range paths {
		doc, ok := domain.NewDocument(path, contents[i])
		if !ok {
			logger.Debug("Skipping empty file %s", path)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// collect returns every supported regular file under root, sorted.
func (l *Loader) collect(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || !l.Supports(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	slices.SortFunc(paths, comparePaths)
	return paths, nil
}

// comparePaths orders paths component by component, so "a/x.txt" sorts
// before "a-b/x.txt".
func comparePaths(a, b string) int {
	return slices.Compare(
		strings.Split(filepath.ToSlash(a), "/"),
		strings.Split(filepath.ToSlash(b), "/"),
	)
}

// read returns the text of one file with invalid UTF-8 removed.
// Unreadable PDFs are skipped with a warning.
func (l *Loader) read(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), PDFExtension) {
		text, err := readPDF(path)
		if err != nil {
			logger.Warn("Skipping unreadable PDF %s: %v", path, err)
			return "", nil
		}
		return strings.ToValidUTF8(text, ""), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// readPDF extracts plain text. The parser panics on some malformed files,
// so panics are turned into errors.
func readPDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
