package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docask/internal/core/domain"
)

func TestAskService_EmptyQuestion(t *testing.T) {
	search, _ := newIndexedSearch(t, 0)
	service := NewAskService(search, nil)

	_, err := service.Ask(context.Background(), "  ", domain.AskOptions{SearchOptions: domain.SearchOptions{TopK: 3}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.ErrorContains(t, err, "please provide a question")
}

func TestAskService_ResultsOnly(t *testing.T) {
	search, _ := newIndexedSearch(t, 0)
	gen := &mockGenerator{answer: "unused"}
	service := NewAskService(search, factoryFor(gen, nil))

	res, err := service.Ask(context.Background(), "cat", domain.AskOptions{SearchOptions: domain.SearchOptions{TopK: 3}})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Results)
	assert.Empty(t, res.Answer)
	assert.Equal(t, 0, gen.calls)
}

func TestAskService_Answer(t *testing.T) {
	search, _ := newIndexedSearch(t, 0)
	gen := &mockGenerator{answer: "  The cat sat on the mat.\n", model: "gpt-4o-mini"}
	var requested string
	service := NewAskService(search, factoryFor(gen, &requested))

	res, err := service.Ask(context.Background(), "where did the cat sit?", domain.AskOptions{
		SearchOptions: domain.SearchOptions{TopK: 1},
		Answer:        true,
		Model:         "gpt-4o",
	})
	require.NoError(t, err)

	assert.Equal(t, "The cat sat on the mat.", res.Answer)
	assert.Equal(t, "gpt-4o", requested)
	assert.Equal(t, "where did the cat sit?", gen.question)
	assert.Equal(t, "Source: cats.txt\nthe cat sat on the mat", gen.context)
	assert.Equal(t, gen.context, res.Context)
}

func TestAskService_NoResultsSkipsGeneration(t *testing.T) {
	search, _ := newIndexedSearch(t, 0)
	gen := &mockGenerator{answer: "x"}
	service := NewAskService(search, factoryFor(gen, nil))

	res, err := service.Ask(context.Background(), "quantum", domain.AskOptions{
		SearchOptions: domain.SearchOptions{TopK: 3},
		Answer:        true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Equal(t, 0, gen.calls)
}

func TestAskService_GenerationFailureKeepsResults(t *testing.T) {
	search, _ := newIndexedSearch(t, 0)
	gen := &mockGenerator{err: fmt.Errorf("openai: %w: status 503", domain.ErrRemoteCall)}
	service := NewAskService(search, factoryFor(gen, nil))

	res, err := service.Ask(context.Background(), "cat", domain.AskOptions{
		SearchOptions: domain.SearchOptions{TopK: 3},
		Answer:        true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteCall))
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Results)
	assert.Empty(t, res.Answer)
}

func TestAskService_NoGenerator(t *testing.T) {
	search, _ := newIndexedSearch(t, 0)
	service := NewAskService(search, nil)

	res, err := service.Ask(context.Background(), "cat", domain.AskOptions{
		SearchOptions: domain.SearchOptions{TopK: 3},
		Answer:        true,
	})
	assert.True(t, errors.Is(err, domain.ErrMissingCredential))
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Results)
}

func TestBuildContext(t *testing.T) {
	tests := []struct {
		name    string
		results []domain.SearchResult
		want    string
	}{
		{"empty", nil, ""},
		{"single", []domain.SearchResult{{Path: "a.txt", Content: "alpha"}}, "Source: a.txt\nalpha"},
		{
			"ranking order",
			[]domain.SearchResult{
				{Path: "b.txt", Content: "beta", Score: 0.9},
				{Path: "a.txt", Content: "alpha", Score: 0.4},
			},
			"Source: b.txt\nbeta\n\nSource: a.txt\nalpha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildContext(tt.results))
		})
	}
}
