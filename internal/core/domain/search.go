package domain

// DefaultTopK is the number of results returned when none is requested.
const DefaultTopK = 3

// SearchOptions configures a search query.
type SearchOptions struct {
	// TopK is the maximum number of results. Must be at least 1.
	TopK int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Score is the cosine similarity in [0, 1].
	Score float64 `json:"score"`

	// Path identifies the matched document.
	Path string `json:"path"`

	// Content is the matched document's full text.
	Content string `json:"content"`
}

// AskOptions configures a question.
type AskOptions struct {
	SearchOptions

	// Answer requests a generated answer over the ranked results.
	Answer bool

	// Model overrides the configured generation model.
	Model string
}

// AskResult is the outcome of a question.
type AskResult struct {
	// Results are the ranked matches, computed before any generation.
	Results []SearchResult `json:"results"`

	// Context is the text handed to the generator.
	Context string `json:"context,omitempty"`

	// Answer is the generated answer, empty when not requested.
	Answer string `json:"answer,omitempty"`
}
