package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"free-text query to rank documents against"`
	Top   int    `json:"top,omitempty" jsonschema:"maximum number of results to return (default 3)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []ResultOutput `json:"results"`
	Count   int            `json:"count"`
}

// ResultOutput represents a single ranked document.
type ResultOutput struct {
	Path    string  `json:"path"`
	Score   float64 `json:"score"`
	Content string  `json:"content,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the indexed documents"`
	Top      int    `json:"top,omitempty" jsonschema:"number of documents used as context (default 3)"`
	Model    string `json:"model,omitempty" jsonschema:"model override for answer generation"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Results []ResultOutput `json:"results"`
	Answer  string         `json:"answer,omitempty"`
	// Error carries a generation failure; results are still returned.
	Error string `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Rank indexed local documents by TF-IDF similarity to a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the best matching indexed documents as context",
	}, s.handleAsk)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{TopK: s.topK(input.Top)}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, SearchOutput{
		Results: toResultOutputs(results),
		Count:   len(results),
	}, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Ask == nil {
		return nil, AskOutput{}, ErrMissingAskService
	}

	opts := domain.AskOptions{
		SearchOptions: domain.SearchOptions{TopK: s.topK(input.Top)},
		Answer:        true,
		Model:         input.Model,
	}
	res, err := s.ports.Ask.Ask(ctx, input.Question, opts)
	if res == nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Results: toResultOutputs(res.Results),
		Answer:  res.Answer,
	}
	if err != nil {
		output.Error = err.Error()
	}
	return nil, output, nil
}

func toResultOutputs(results []domain.SearchResult) []ResultOutput {
	out := make([]ResultOutput, len(results))
	for i, r := range results {
		out[i] = ResultOutput{
			Path:    r.Path,
			Score:   r.Score,
			Content: r.Content,
		}
	}
	return out
}
