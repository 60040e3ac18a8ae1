// Package config loads and persists per-project settings from
// .amygdala/config.toml. Provider credentials are never written to disk;
// they are resolved from the environment at load time.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/sinanata/amygdala/constants"
	"github.com/sinanata/amygdala/models"
)

// ErrNotFound is returned when the project has no config file yet.
var ErrNotFound = errors.New("config file not found")

// apiKeyEnvVars maps each provider to the environment variable holding its
// credential. Ollama runs locally and needs none.
var apiKeyEnvVars = map[models.ProviderName]string{
	models.ProviderAnthropic: "ANTHROPIC_API_KEY",
	models.ProviderOpenAI:    "OPENAI_API_KEY",
	models.ProviderGemini:    "GEMINI_API_KEY",
}

// Default returns the configuration a fresh project starts with.
func Default(projectRoot string) *models.Config {
	return &models.Config{
		SchemaVersion:      constants.SchemaVersion,
		ProjectRoot:        projectRoot,
		DefaultGranularity: models.GranularityMedium,
		Provider: models.ProviderConfig{
			Name:  models.ProviderAnthropic,
			Model: constants.DefaultModel,
		},
		ExcludePatterns:  append([]string(nil), constants.DefaultExcludePatterns...),
		MaxFileSizeBytes: constants.MaxFileSizeBytes,
	}
}

// Load reads the project's config.toml, layering environment overrides on
// top. Missing file yields ErrNotFound.
func Load(projectRoot string) (*models.Config, error) {
	configPath := constants.ConfigPath(projectRoot)
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, configPath)
		}
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v, projectRoot)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &models.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ProjectRoot = projectRoot
	cfg.Provider.APIKey = ResolveAPIKey(cfg.Provider.Name)
	return cfg, nil
}

// LoadOrDefault returns the persisted configuration, or the defaults when the
// project has none yet.
func LoadOrDefault(projectRoot string) (*models.Config, error) {
	cfg, err := Load(projectRoot)
	if errors.Is(err, ErrNotFound) {
		cfg = Default(projectRoot)
		cfg.Provider.APIKey = ResolveAPIKey(cfg.Provider.Name)
		return cfg, nil
	}
	return cfg, err
}

// Save writes the configuration to .amygdala/config.toml, creating the
// directory if needed. The provider API key is deliberately excluded.
func Save(projectRoot string, cfg *models.Config) error {
	if err := os.MkdirAll(constants.AmygdalaDir(projectRoot), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("schema_version", cfg.SchemaVersion)
	v.Set("default_granularity", string(cfg.DefaultGranularity))
	v.Set("provider.name", string(cfg.Provider.Name))
	v.Set("provider.model", cfg.Provider.Model)
	if cfg.Provider.BaseURL != "" {
		v.Set("provider.base_url", cfg.Provider.BaseURL)
	}
	if cfg.Provider.MaxTokens > 0 {
		v.Set("provider.max_tokens", cfg.Provider.MaxTokens)
	}
	if cfg.Provider.Temperature > 0 {
		v.Set("provider.temperature", cfg.Provider.Temperature)
	}
	if len(cfg.Profiles) > 0 {
		v.Set("profiles", cfg.Profiles)
	}
	v.Set("auto_capture", cfg.AutoCapture)
	v.Set("exclude_patterns", cfg.ExcludePatterns)
	v.Set("max_file_size_bytes", cfg.MaxFileSizeBytes)

	if err := v.WriteConfigAs(constants.ConfigPath(projectRoot)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ResolveAPIKey looks up the provider's credential in the environment.
func ResolveAPIKey(name models.ProviderName) string {
	envVar, ok := apiKeyEnvVars[name]
	if !ok {
		return ""
	}
	return os.Getenv(envVar)
}

// setDefaults seeds every key so a sparse config file still unmarshals into
// a complete struct.
func setDefaults(v *viper.Viper, projectRoot string) {
	defaults := Default(projectRoot)
	v.SetDefault("schema_version", defaults.SchemaVersion)
	v.SetDefault("default_granularity", string(defaults.DefaultGranularity))
	v.SetDefault("provider.name", string(defaults.Provider.Name))
	v.SetDefault("provider.model", defaults.Provider.Model)
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.max_tokens", 0)
	v.SetDefault("provider.temperature", 0)
	v.SetDefault("profiles", []string{})
	v.SetDefault("auto_capture", false)
	v.SetDefault("exclude_patterns", defaults.ExcludePatterns)
	v.SetDefault("max_file_size_bytes", defaults.MaxFileSizeBytes)
}

// bindEnv wires the overridable keys to AMYGDALA_* environment variables.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("provider.name", "AMYGDALA_PROVIDER")
	_ = v.BindEnv("provider.model", "AMYGDALA_MODEL")
	_ = v.BindEnv("provider.base_url", "AMYGDALA_BASE_URL")
	_ = v.BindEnv("default_granularity", "AMYGDALA_GRANULARITY")
}
