package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
	"github.com/custodia-labs/docask/internal/core/ports/driving"
	"github.com/custodia-labs/docask/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// ErrEmptyQuestion is returned when the question is blank.
var ErrEmptyQuestion = fmt.Errorf("%w: please provide a question", domain.ErrInvalidInput)

// AskService retrieves context for a question and optionally generates an answer.
type AskService struct {
	search     driving.SearchService
	generators driven.GeneratorFactory
}

// NewAskService creates a new ask service.
// The generators parameter is optional (can be nil); without it answers
// fail with domain.ErrMissingCredential.
func NewAskService(search driving.SearchService, generators driven.GeneratorFactory) *AskService {
	return &AskService{
		search:     search,
		generators: generators,
	}
}

// Ask ranks documents for the question and, when opts.Answer is set and at
// least one document matched, generates an answer from them. If generation
// fails the ranked results are still returned alongside the error.
func (s *AskService) Ask(
	ctx context.Context, question string, opts domain.AskOptions,
) (*domain.AskResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if s.search == nil {
		return nil, errors.New("search service not configured")
	}

	results, err := s.search.Search(ctx, question, opts.SearchOptions)
	if err != nil {
		return nil, err
	}

	res := &domain.AskResult{Results: results}
	if !opts.Answer || len(results) == 0 {
		return res, nil
	}

	logger.Section("Answer Generation")
	res.Context = BuildContext(results)

	if s.generators == nil {
		return res, fmt.Errorf("%w: no answer generator configured", domain.ErrMissingCredential)
	}
	gen, err := s.generators(opts.Model)
	if err != nil {
		return res, err
	}
	logger.Debug("Model: %s, context: %d bytes", gen.ModelName(), len(res.Context))

	answer, err := gen.Generate(ctx, question, res.Context)
	if err != nil {
		logger.Warn("Generation failed: %v", err)
		return res, err
	}
	res.Answer = strings.TrimSpace(answer)
	return res, nil
}
