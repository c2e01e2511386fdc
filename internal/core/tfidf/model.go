package tfidf

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// Build fits a TermModel over docs and returns one weighted vector per
// document, ordinal-aligned with the input. Documents whose content is blank
// are dropped before fitting. BuildID and CreatedAt are left for the caller.
func Build(docs []domain.Document) (*domain.Index, error) {
	kept := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if doc, ok := domain.NewDocument(d.Path, d.Content); ok {
			kept = append(kept, doc)
		}
	}
	if len(kept) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	counts := make([]map[string]int, len(kept))
	for i, d := range kept {
		counts[i] = termCounts(Tokenize(d.Content))
	}

	model := Fit(counts)

	vectors := make([]domain.SparseVector, len(kept))
	for i, c := range counts {
		vectors[i] = weigh(model, c)
	}

	idx := &domain.Index{
		Model:    model,
		Vectors:  vectors,
		Metadata: kept,
	}
	if err := idx.Validate(); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	return idx, nil
}

// Fit builds the vocabulary and IDF weights from per-document term counts.
// Columns are assigned in ascending lexical order of the terms.
// idf(t) = ln((1 + N) / (1 + df(t))) + 1.
func Fit(counts []map[string]int) domain.TermModel {
	df := make(map[string]int)
	for _, c := range counts {
		for term := range c {
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(counts))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return domain.NewTermModel(terms, idf)
}

// Transform weighs text with a fitted model.
// Unknown terms are dropped; the vocabulary is never extended.
func Transform(model domain.TermModel, text string) domain.SparseVector {
	return weigh(model, termCounts(Tokenize(text)))
}

// weigh multiplies raw counts by IDF and L2-normalises the result.
// A zero vector stays zero.
func weigh(model domain.TermModel, counts map[string]int) domain.SparseVector {
	vec := domain.SparseVector{Dim: model.Size()}
	for term := range counts {
		col, ok := model.Column(term)
		if !ok {
			continue
		}
		vec.Indices = append(vec.Indices, col)
	}
	if len(vec.Indices) == 0 {
		return vec
	}
	sort.Ints(vec.Indices)

	vec.Values = make([]float64, len(vec.Indices))
	for k, col := range vec.Indices {
		vec.Values[k] = float64(counts[model.Terms[col]]) * model.IDF[col]
	}

	if norm := vec.Norm(); norm > 0 {
		for k := range vec.Values {
			vec.Values[k] /= norm
		}
	}
	return vec
}
