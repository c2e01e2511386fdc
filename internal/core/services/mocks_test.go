package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
)

// mockGenerator implements driven.AnswerGenerator for testing.
type mockGenerator struct {
	answer string
	err    error
	model  string

	mu       sync.Mutex
	calls    int
	question string
	context  string
}

func (m *mockGenerator) Generate(_ context.Context, question, docContext string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.question = question
	m.context = docContext
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockGenerator) ModelName() string {
	return m.model
}

// factoryFor returns a GeneratorFactory that records the requested model.
func factoryFor(gen *mockGenerator, requested *string) driven.GeneratorFactory {
	return func(model string) (driven.AnswerGenerator, error) {
		if requested != nil {
			*requested = model
		}
		return gen, nil
	}
}

// mockLoader implements driven.DocumentLoader for testing.
type mockLoader struct {
	docs   []domain.Document
	err    error
	source string
}

func (m *mockLoader) Load(_ context.Context, source string) ([]domain.Document, error) {
	m.source = source
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

// mockWatcher implements driven.SourceWatcher, firing onChange a fixed
// number of times before returning.
type mockWatcher struct {
	fires int
}

func (m *mockWatcher) Watch(_ context.Context, _ string, onChange func()) error {
	for i := 0; i < m.fires; i++ {
		onChange()
	}
	return nil
}

// countingStore wraps an IndexStore and counts Load calls.
type countingStore struct {
	driven.IndexStore
	mu    sync.Mutex
	loads int
}

func (c *countingStore) Load(ctx context.Context) (*domain.Index, error) {
	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
	return c.IndexStore.Load(ctx)
}

func sampleDocs() []domain.Document {
	return []domain.Document{
		{Path: "cats.txt", Content: "the cat sat on the mat"},
		{Path: "dogs.txt", Content: "the dog ran in the park"},
		{Path: "pets.txt", Content: "cats and dogs are popular pets"},
	}
}
