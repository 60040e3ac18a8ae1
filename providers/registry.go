// Package providers selects a summarization backend through a compiled-in
// registry. There is no runtime plugin discovery: every backend is named
// here, and unknown names fail fast.
package providers

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sinanata/amygdala/models"
	"github.com/sinanata/amygdala/providers/anthropic"
	"github.com/sinanata/amygdala/providers/contracts"
	"github.com/sinanata/amygdala/providers/gemini"
	"github.com/sinanata/amygdala/providers/ollama"
	"github.com/sinanata/amygdala/providers/openai"
)

// ErrUnknownProvider is returned for names absent from the registry.
var ErrUnknownProvider = errors.New("unknown provider")

var registry = map[models.ProviderName]func(models.ProviderConfig) contracts.Summarizer{
	models.ProviderAnthropic: func(cfg models.ProviderConfig) contracts.Summarizer {
		return anthropic.New(anthropic.Config{
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	},
	models.ProviderOpenAI: func(cfg models.ProviderConfig) contracts.Summarizer {
		return openai.New(openai.Config{
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	},
	models.ProviderOllama: func(cfg models.ProviderConfig) contracts.Summarizer {
		return ollama.New(ollama.Config{
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	},
	models.ProviderGemini: func(cfg models.ProviderConfig) contracts.Summarizer {
		return gemini.New(gemini.Config{
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	},
}

// New constructs the summarizer named by the provider configuration.
func New(cfg models.ProviderConfig) (contracts.Summarizer, error) {
	construct, ok := registry[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownProvider, cfg.Name, List())
	}
	return construct(cfg), nil
}

// List returns the sorted names of all registered backends.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
