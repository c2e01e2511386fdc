package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/custodia-labs/docask/internal/core/domain"
	"github.com/custodia-labs/docask/internal/core/ports/driven"
	"github.com/custodia-labs/docask/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyIndexDir       = "index.dir"
	keyIndexSource    = "index.source"
	keyIndexStore     = "index.store"
	keySearchTop      = "search.top"
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMTimeoutSecs = "llm.timeout_seconds"
)

// Environment overrides.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvOpenAIModel  = "OPENAI_MODEL"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithEnv replaces the environment lookup. Useful for testing.
func WithEnv(getenv func(string) string) SettingsOption {
	return func(s *SettingsService) {
		s.getenv = getenv
	}
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings.
// Stored values override defaults; OPENAI_API_KEY and OPENAI_MODEL override
// stored values for the OpenAI provider.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.AppSettings{
		Index: domain.IndexSettings{
			Dir:    s.getString(keyIndexDir, defaults.Index.Dir),
			Source: s.getString(keyIndexSource, defaults.Index.Source),
			Store:  s.getStore(defaults.Index.Store),
		},
		Search: domain.SearchSettings{
			TopK: s.getPositiveInt(keySearchTop, defaults.Search.TopK),
		},
		LLM: domain.LLMSettings{
			Provider:       s.getProvider(defaults.LLM.Provider),
			BaseURL:        s.configStore.GetString(keyLLMBaseURL), // Empty means provider default
			APIKey:         s.configStore.GetString(keyLLMAPIKey),
			TimeoutSeconds: s.getPositiveInt(keyLLMTimeoutSecs, defaults.LLM.TimeoutSeconds),
		},
	}

	providerDefault := domain.DefaultLLMModels()[settings.LLM.Provider]
	settings.LLM.Model = s.getString(keyLLMModel, providerDefault)

	if settings.LLM.Provider == domain.AIProviderOpenAI {
		if key := s.getenv(EnvOpenAIAPIKey); key != "" {
			settings.LLM.APIKey = key
		}
		if model := s.getenv(EnvOpenAIModel); model != "" {
			settings.LLM.Model = model
		}
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyIndexDir, settings.Index.Dir},
		{keyIndexSource, settings.Index.Source},
		{keyIndexStore, settings.Index.Store.String()},
		{keySearchTop, settings.Search.TopK},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMTimeoutSecs, settings.LLM.TimeoutSeconds},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	}

	return nil
}

// Set updates a single setting by key, validating the value.
func (s *SettingsService) Set(key, value string) error {
	var stored any = value

	switch key {
	case keyIndexDir, keyIndexSource, keyLLMModel, keyLLMBaseURL, keyLLMAPIKey:
	case keyIndexStore:
		if !domain.StoreBackend(value).IsValid() {
			return fmt.Errorf("%w: invalid index store: %s", domain.ErrInvalidInput, value)
		}
	case keyLLMProvider:
		if !domain.AIProvider(value).IsValid() {
			return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, value)
		}
	case keySearchTop, keyLLMTimeoutSecs:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	default:
		return fmt.Errorf("%w: unknown setting: %s", domain.ErrInvalidInput, key)
	}

	return s.configStore.Set(key, stored)
}

// Keys lists every supported setting key.
func (s *SettingsService) Keys() []string {
	return []string{
		keyIndexDir,
		keyIndexSource,
		keyIndexStore,
		keySearchTop,
		keyLLMProvider,
		keyLLMModel,
		keyLLMBaseURL,
		keyLLMAPIKey,
		keyLLMTimeoutSecs,
	}
}

// Validate checks that the current settings are usable.
// A missing API key is not an error here: it only matters when an answer
// is requested.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Index.Store.IsValid() {
		return fmt.Errorf("invalid index store: %s", settings.Index.Store)
	}
	if settings.Index.Dir == "" {
		return fmt.Errorf("index directory is not set")
	}
	if !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", settings.LLM.Provider)
	}
	return nil
}

// GetDefaults returns default settings.
// The index directory defaults to an "index" folder next to the config file.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	defaults.Index.Dir = filepath.Join(filepath.Dir(s.configStore.Path()), "index")
	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val < 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStore(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := s.configStore.GetString(keyIndexStore)
	if val == "" {
		return defaultVal
	}
	backend := domain.StoreBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(keyLLMProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
