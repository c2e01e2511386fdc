package domain

const unknownDescription = "Unknown"

// StoreBackend identifies where the index artifacts are persisted.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendFile writes model.json, matrix.bin and metadata.json.
	StoreBackendFile StoreBackend = "file"

	// StoreBackendSQLite writes the same artifacts as tables in index.db.
	StoreBackendSQLite StoreBackend = "sqlite"
)

// IsValid returns true if the store backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendFile, StoreBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendFile:
		return "Files (JSON model, binary matrix)"
	case StoreBackendSQLite:
		return "SQLite database"
	default:
		return unknownDescription
	}
}

// AIProvider identifies a text-generation service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// IndexSettings holds index location and build configuration.
type IndexSettings struct {
	// Dir is the directory holding the index artifacts.
	Dir string

	// Source is the default document folder.
	Source string

	// Store selects the persistence backend.
	Store StoreBackend
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// TopK is the default number of results.
	TopK int
}

// LLMSettings holds answer generation provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint. Empty means the provider default.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// TimeoutSeconds bounds a single generation request.
	TimeoutSeconds int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Index holds index location settings.
	Index IndexSettings

	// Search holds search behaviour settings.
	Search SearchSettings

	// LLM holds answer generation settings.
	LLM LLMSettings
}

// Default setting values.
const (
	DefaultIndexSource    = "./data"
	DefaultLLMTimeoutSecs = 60
)

// DefaultAppSettings returns settings with sensible defaults.
// Index.Dir is resolved by the settings service since it depends on the
// config directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Index: IndexSettings{
			Source: DefaultIndexSource,
			Store:  StoreBackendFile,
		},
		Search: SearchSettings{
			TopK: DefaultTopK,
		},
		LLM: LLMSettings{
			Provider:       AIProviderOpenAI,
			Model:          DefaultLLMModels()[AIProviderOpenAI],
			TimeoutSeconds: DefaultLLMTimeoutSecs,
		},
	}
}

// AllLLMProviders returns providers that support answer generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderOllama,
	}
}

// AllStoreBackends returns every index store backend.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{
		StoreBackendFile,
		StoreBackendSQLite,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "llama3.2",
		AIProviderOpenAI: "gpt-4o-mini",
	}
}
