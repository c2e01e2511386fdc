package tfidf

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// Cosine returns the cosine similarity of two vectors.
// It is 0 when either vector is zero.
func Cosine(a, b domain.SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// Search ranks every document in idx against query.
// Results are sorted by descending score with ties kept in index order,
// truncated to topK, then stripped of non-positive scores.
func Search(idx *domain.Index, query string, topK int) ([]domain.SearchResult, error) {
	if topK < 1 {
		return nil, fmt.Errorf("%w: top k must be at least 1, got %d", domain.ErrInvalidInput, topK)
	}
	if idx == nil || idx.Len() == 0 {
		return []domain.SearchResult{}, nil
	}

	q := Transform(idx.Model, query)

	type scored struct {
		row   int
		score float64
	}
	ranked := make([]scored, len(idx.Vectors))
	for i, v := range idx.Vectors {
		ranked[i] = scored{row: i, score: Cosine(q, v)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	results := make([]domain.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		if r.score <= 0 {
			continue
		}
		doc := idx.Metadata[r.row]
		results = append(results, domain.SearchResult{
			Score:   clamp(r.score),
			Path:    doc.Path,
			Content: doc.Content,
		})
	}
	return results, nil
}

// clamp keeps rounding noise inside [0, 1].
func clamp(s float64) float64 {
	if s > 1 {
		return 1
	}
	return s
}
