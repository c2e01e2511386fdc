package mcp

import (
	"context"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	info    *domain.IndexInfo
	err     error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) Info(_ context.Context) (*domain.IndexInfo, error) {
	return m.info, m.err
}

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	result *domain.AskResult
	err    error

	lastQuestion string
	lastOpts     domain.AskOptions
}

func (m *mockAskService) Ask(
	_ context.Context,
	question string,
	opts domain.AskOptions,
) (*domain.AskResult, error) {
	m.lastQuestion = question
	m.lastOpts = opts
	return m.result, m.err
}
