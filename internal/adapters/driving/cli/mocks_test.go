package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docask/internal/core/domain"
)

// mockIndexService implements driving.IndexService for testing.
type mockIndexService struct {
	docs       int
	err        error
	lastSource string
	watchErr   error
	rebuilds   []error
}

func (m *mockIndexService) Build(_ context.Context, docs []domain.Document) (*domain.Index, error) {
	return &domain.Index{Metadata: docs}, m.err
}

func (m *mockIndexService) BuildFromSource(_ context.Context, source string) (*domain.Index, error) {
	m.lastSource = source
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Index{Metadata: make([]domain.Document, m.docs)}, nil
}

func (m *mockIndexService) Watch(
	_ context.Context, _ string, onBuild func(*domain.Index, error),
) error {
	for _, err := range m.rebuilds {
		if err != nil {
			onBuild(nil, err)
			continue
		}
		onBuild(&domain.Index{Metadata: make([]domain.Document, m.docs+1)}, nil)
	}
	return m.watchErr
}

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	info     *domain.IndexInfo
	lastOpts domain.SearchOptions
	query    string
}

func (m *mockSearchService) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.query = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if opts.TopK < len(m.results) {
		return m.results[:opts.TopK], nil
	}
	return m.results, nil
}

func (m *mockSearchService) Info(_ context.Context) (*domain.IndexInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.info, nil
}

// mockAskService implements driving.AskService for testing.
type mockAskService struct {
	search   *mockSearchService
	answer   string
	genErr   error
	question string
	lastOpts domain.AskOptions
}

func (m *mockAskService) Ask(
	ctx context.Context, question string, opts domain.AskOptions,
) (*domain.AskResult, error) {
	m.question = question
	m.lastOpts = opts
	results, err := m.search.Search(ctx, question, opts.SearchOptions)
	if err != nil {
		return nil, err
	}
	res := &domain.AskResult{Results: results}
	if !opts.Answer || len(results) == 0 {
		return res, nil
	}
	if m.genErr != nil {
		return res, m.genErr
	}
	res.Answer = m.answer
	return res, nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.AppSettings
	values   map[string]string
}

func newMockSettingsService() *mockSettingsService {
	settings := domain.DefaultAppSettings()
	settings.Index.Dir = "/tmp/docask-test/index"
	return &mockSettingsService{settings: settings, values: make(map[string]string)}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	switch key {
	case "search.top":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: search.top must be a positive integer", domain.ErrInvalidInput)
		}
		m.settings.Search.TopK = n
	case "llm.provider":
		m.settings.LLM.Provider = domain.AIProvider(value)
	case "llm.model":
		m.settings.LLM.Model = value
	case "llm.api_key":
		m.settings.LLM.APIKey = value
	case "llm.base_url":
		m.settings.LLM.BaseURL = value
	case "index.source":
		m.settings.Index.Source = value
	default:
		return fmt.Errorf("%w: unknown setting: %s", domain.ErrInvalidInput, key)
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"index.source", "search.top", "llm.provider", "llm.model", "llm.base_url", "llm.api_key"}
}

func (m *mockSettingsService) Validate() error {
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// testMocks holds the services installed by setupTestServices.
type testMocks struct {
	index    *mockIndexService
	search   *mockSearchService
	ask      *mockAskService
	settings *mockSettingsService
}

// setupTestServices installs mock services and resets command flags.
// The returned function restores the previous state.
func setupTestServices() (*testMocks, func()) {
	search := &mockSearchService{
		results: []domain.SearchResult{
			{Path: "data/cats.txt", Score: 0.6123, Content: "Cats sleep most of the day."},
			{Path: "data/dogs.txt", Score: 0.2, Content: "Dogs like long walks."},
			{Path: "data/fish.txt", Score: 0.1, Content: "Fish swim."},
			{Path: "data/birds.txt", Score: 0.05, Content: "Birds fly."},
		},
		info: &domain.IndexInfo{BuildID: "b-1", Documents: 4, VocabularySize: 12, Location: "/tmp/docask-test/index"},
	}
	mocks := &testMocks{
		index:    &mockIndexService{docs: 4},
		search:   search,
		ask:      &mockAskService{search: search, answer: "Cats mostly sleep."},
		settings: newMockSettingsService(),
	}

	prevIndex, prevSearch, prevAsk, prevSettings := indexService, searchService, askService, settingsService
	prevTerminal := stdinIsTerminal
	SetServices(Services{
		Index:    mocks.index,
		Search:   mocks.search,
		Ask:      mocks.ask,
		Settings: mocks.settings,
	})
	stdinIsTerminal = func() bool { return false }
	resetFlags()

	return mocks, func() {
		indexService, searchService, askService, settingsService = prevIndex, prevSearch, prevAsk, prevSettings
		stdinIsTerminal = prevTerminal
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

// resetFlags clears flag values that persist between Execute calls.
func resetFlags() {
	indexSource, indexWatch = "", false
	searchTop, searchJSON = 0, false
	askTop, askAnswer, askModel = 0, false, ""
	infoJSON = false
	tuiModel = ""
	versionShort = false
	for _, cmd := range []*cobra.Command{searchCmd, askCmd} {
		if f := cmd.Flags().Lookup("top"); f != nil {
			f.Changed = false
		}
	}
}
