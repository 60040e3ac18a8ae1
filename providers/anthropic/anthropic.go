// Package anthropic implements the Summarizer contract against the Anthropic
// Messages API using a plain HTTP client.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sinanata/amygdala/providers/contracts"
)

const (
	defaultBaseURL   = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	requestTimeout   = 120 * time.Second
)

// Config holds the resolved settings for the Anthropic backend. The API key
// is injected by the caller; the provider never reads process state.
type Config struct {
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float32
}

// Provider talks to the Anthropic Messages API.
type Provider struct {
	config Config
	client *http.Client
}

// New creates an Anthropic provider from resolved configuration.
func New(config Config) *Provider {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 4096
	}
	return &Provider{
		config: config,
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (p *Provider) Name() string { return "anthropic" }

func (p *Provider) Model() string { return p.config.Model }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature"`
	System      string    `json:"system"`
	Messages    []message `json:"messages"`
}

type response struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Generate sends one messages request and returns the first content block.
func (p *Provider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("%w: anthropic api key not configured", contracts.ErrAuthRequired)
	}

	body, err := json.Marshal(request{
		Model:       p.config.Model,
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
		System:      systemPrompt,
		Messages:    []message{{Role: "user", Content: userPrompt}},
	})
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("x-api-key", p.config.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contracts.ErrSummarization, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: anthropic returned status %d: %s",
			contracts.ErrSummarization, resp.StatusCode, string(detail))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: error decoding response: %v", contracts.ErrSummarization, err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("%w: anthropic returned no content", contracts.ErrSummarization)
	}
	return parsed.Content[0].Text, nil
}
