package domain

import (
	"fmt"
	"math"
	"time"
)

// TermModel is the fitted term-weighting model.
// Terms are listed by column index; IDF holds one weight per column.
// A TermModel is immutable once fitted.
type TermModel struct {
	Terms []string
	IDF   []float64

	columns map[string]int
}

// NewTermModel builds a TermModel from column-ordered terms and weights.
func NewTermModel(terms []string, idf []float64) TermModel {
	m := TermModel{Terms: terms, IDF: idf}
	m.columns = make(map[string]int, len(terms))
	for i, t := range terms {
		m.columns[t] = i
	}
	return m
}

// Size returns the vocabulary size.
func (m TermModel) Size() int {
	return len(m.Terms)
}

// Column returns the column index of a term.
func (m TermModel) Column(term string) (int, bool) {
	if m.columns == nil {
		for i, t := range m.Terms {
			if t == term {
				return i, true
			}
		}
		return 0, false
	}
	col, ok := m.columns[term]
	return col, ok
}

// SparseVector is one compressed sparse row.
// Indices are strictly ascending and Values are non-negative.
type SparseVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NNZ returns the number of stored entries.
func (v SparseVector) NNZ() int {
	return len(v.Indices)
}

// Norm returns the Euclidean norm.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product with another vector of the same dimension.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Validate checks the CSR invariants against the expected dimension.
func (v SparseVector) Validate(dim int) error {
	if v.Dim != dim {
		return fmt.Errorf("vector dim %d, want %d", v.Dim, dim)
	}
	if len(v.Indices) != len(v.Values) {
		return fmt.Errorf("vector has %d indices but %d values", len(v.Indices), len(v.Values))
	}
	prev := -1
	for k, idx := range v.Indices {
		if idx <= prev || idx >= dim {
			return fmt.Errorf("vector index %d out of order or range", idx)
		}
		if v.Values[k] < 0 || math.IsNaN(v.Values[k]) {
			return fmt.Errorf("vector value at column %d is invalid", idx)
		}
		prev = idx
	}
	return nil
}

// Index is the persisted artifact set produced by one indexing run.
// Vectors and Metadata are ordinal-aligned.
type Index struct {
	Model    TermModel
	Vectors  []SparseVector
	Metadata []Document

	// BuildID identifies the indexing run.
	BuildID string

	// CreatedAt is when the indexing run finished.
	CreatedAt time.Time
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.Metadata)
}

// Validate checks the structural invariants of the index.
// Any violation is reported as ErrIndexCorrupt.
func (idx *Index) Validate() error {
	if len(idx.Model.Terms) != len(idx.Model.IDF) {
		return fmt.Errorf("%w: %d terms but %d idf weights",
			ErrIndexCorrupt, len(idx.Model.Terms), len(idx.Model.IDF))
	}
	for i, w := range idx.Model.IDF {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: invalid idf weight for term %q", ErrIndexCorrupt, idx.Model.Terms[i])
		}
	}
	if len(idx.Vectors) != len(idx.Metadata) {
		return fmt.Errorf("%w: %d vectors but %d documents",
			ErrIndexCorrupt, len(idx.Vectors), len(idx.Metadata))
	}
	dim := idx.Model.Size()
	for i, v := range idx.Vectors {
		if err := v.Validate(dim); err != nil {
			return fmt.Errorf("%w: row %d: %v", ErrIndexCorrupt, i, err)
		}
	}
	return nil
}

// IndexInfo summarises a persisted index.
type IndexInfo struct {
	BuildID        string    `json:"build_id"`
	CreatedAt      time.Time `json:"created_at"`
	Documents      int       `json:"documents"`
	VocabularySize int       `json:"vocabulary_size"`
	Location       string    `json:"location"`
}
