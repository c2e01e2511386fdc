package tfidf

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docask/internal/core/domain"
)

func corpus() []domain.Document {
	return []domain.Document{
		{Path: "a.txt", Content: "the cat sat on the mat"},
		{Path: "b.txt", Content: "the dog ran in the park"},
		{Path: "c.txt", Content: "cat and dog are friends, cat naps"},
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	tests := []struct {
		name string
		docs []domain.Document
	}{
		{"nil", nil},
		{"blank only", []domain.Document{{Path: "a", Content: "  \n"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.docs)
			assert.True(t, errors.Is(err, domain.ErrEmptyCorpus))
		})
	}
}

func TestBuild_DropsBlankDocuments(t *testing.T) {
	idx, err := Build([]domain.Document{
		{Path: "a", Content: "alpha"},
		{Path: "b", Content: "   "},
		{Path: "c", Content: " beta "},
	})
	require.NoError(t, err)
	require.Equal(t, 2, idx.Len())
	assert.Equal(t, "a", idx.Metadata[0].Path)
	assert.Equal(t, "c", idx.Metadata[1].Path)
	assert.Equal(t, "beta", idx.Metadata[1].Content)
}

func TestBuild_VocabularySortedAndIDF(t *testing.T) {
	idx, err := Build(corpus())
	require.NoError(t, err)

	assert.True(t, sort.StringsAreSorted(idx.Model.Terms))
	assert.Len(t, idx.Vectors, 3)

	// cat appears in 2 of 3 documents, mat in 1.
	catCol, ok := idx.Model.Column("cat")
	require.True(t, ok)
	matCol, ok := idx.Model.Column("mat")
	require.True(t, ok)
	assert.InDelta(t, math.Log(4.0/3.0)+1, idx.Model.IDF[catCol], 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, idx.Model.IDF[matCol], 1e-12)
	assert.Greater(t, idx.Model.IDF[matCol], idx.Model.IDF[catCol])

	_, ok = idx.Model.Column("the")
	assert.False(t, ok)
}

func TestBuild_VectorsNormalised(t *testing.T) {
	idx, err := Build(corpus())
	require.NoError(t, err)

	for i, v := range idx.Vectors {
		assert.Equal(t, idx.Model.Size(), v.Dim)
		assert.InDelta(t, 1.0, v.Norm(), 1e-9, "row %d", i)
		for _, x := range v.Values {
			assert.GreaterOrEqual(t, x, 0.0)
		}
	}
}

func TestBuild_ZeroVectorForStopWordDocument(t *testing.T) {
	idx, err := Build([]domain.Document{
		{Path: "a", Content: "alpha beta"},
		{Path: "b", Content: "the and of"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Vectors[1].NNZ())
	assert.Equal(t, 0.0, idx.Vectors[1].Norm())
}

func TestBuild_Deterministic(t *testing.T) {
	a, err := Build(corpus())
	require.NoError(t, err)
	b, err := Build(corpus())
	require.NoError(t, err)

	assert.Equal(t, a.Model.Terms, b.Model.Terms)
	assert.Equal(t, a.Model.IDF, b.Model.IDF)
	assert.Equal(t, a.Vectors, b.Vectors)
}

func TestBuild_TermFrequencyWeighting(t *testing.T) {
	idx, err := Build([]domain.Document{{Path: "a", Content: "cat cat dog"}})
	require.NoError(t, err)

	// Single document: every idf is 1, so weights are 2/sqrt(5) and 1/sqrt(5).
	v := idx.Vectors[0]
	require.Equal(t, []int{0, 1}, v.Indices)
	assert.InDelta(t, 2/math.Sqrt(5), v.Values[0], 1e-12)
	assert.InDelta(t, 1/math.Sqrt(5), v.Values[1], 1e-12)
}

func TestTransform_DropsUnknownTerms(t *testing.T) {
	idx, err := Build(corpus())
	require.NoError(t, err)

	v := Transform(idx.Model, "cat unicorn")
	assert.Equal(t, idx.Model.Size(), v.Dim)
	assert.Equal(t, 1, v.NNZ())
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)

	empty := Transform(idx.Model, "unicorn")
	assert.Equal(t, 0, empty.NNZ())
}

func TestTransform_WeighsRepeatedTerms(t *testing.T) {
	idx, err := Build([]domain.Document{{Path: "a", Content: "cat dog"}})
	require.NoError(t, err)

	v := Transform(idx.Model, "dog cat cat unicorn")
	require.Equal(t, []int{0, 1}, v.Indices)
	assert.InDelta(t, 2/math.Sqrt(5), v.Values[0], 1e-12)
	assert.InDelta(t, 1/math.Sqrt(5), v.Values[1], 1e-12)
}
