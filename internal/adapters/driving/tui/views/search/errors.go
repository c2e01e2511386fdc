package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoAskService indicates that answer generation is not wired.
	ErrNoAskService = errors.New("answer generation is not available")
)
