package models

// ProviderConfig configures one summarization backend. The API key is never
// serialized with the project config; the CLI resolves it at load time and
// injects it here.
type ProviderConfig struct {
	Name        ProviderName `mapstructure:"name" toml:"name"`
	Model       string       `mapstructure:"model" toml:"model"`
	APIKey      string       `mapstructure:"-" toml:"-"`
	BaseURL     string       `mapstructure:"base_url" toml:"base_url,omitempty"`
	MaxTokens   int          `mapstructure:"max_tokens" toml:"max_tokens"`
	Temperature float32      `mapstructure:"temperature" toml:"temperature"`
}

// Config is the root project configuration stored at .amygdala/config.toml.
type Config struct {
	SchemaVersion      int            `mapstructure:"schema_version" toml:"schema_version"`
	ProjectRoot        string         `mapstructure:"project_root" toml:"project_root"`
	DefaultGranularity Granularity    `mapstructure:"default_granularity" toml:"default_granularity"`
	Provider           ProviderConfig `mapstructure:"provider" toml:"provider"`
	Profiles           []string       `mapstructure:"profiles" toml:"profiles"`
	AutoCapture        bool           `mapstructure:"auto_capture" toml:"auto_capture"`
	ExcludePatterns    []string       `mapstructure:"exclude_patterns" toml:"exclude_patterns"`
	MaxFileSizeBytes   int64          `mapstructure:"max_file_size_bytes" toml:"max_file_size_bytes"`
}
