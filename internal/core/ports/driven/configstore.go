package driven

// ConfigStore provides access to persisted settings addressed by
// dot-notation keys such as "llm.model".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer value. Numeric strings are converted.
	// Returns 0 if key doesn't exist or isn't numeric.
	GetInt(key string) int

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load re-reads configuration from storage.
	Load() error

	// Path returns the configuration file path. The default index
	// directory is derived from it.
	Path() string
}
