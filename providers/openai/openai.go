// Package openai implements the Summarizer contract against the OpenAI chat
// completions API using a plain HTTP client.
package openai

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
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	requestTimeout = 120 * time.Second
)

// Config holds the resolved settings for the OpenAI backend.
type Config struct {
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float32
}

// Provider talks to the OpenAI chat completions API.
type Provider struct {
	config Config
	client *http.Client
}

// New creates an OpenAI provider from resolved configuration.
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

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Model() string { return p.config.Model }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float32   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type response struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Generate sends one chat completion request and returns the first choice.
func (p *Provider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("%w: openai api key not configured", contracts.ErrAuthRequired)
	}

	body, err := json.Marshal(request{
		Model:       p.config.Model,
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contracts.ErrSummarization, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: openai returned status %d: %s",
			contracts.ErrSummarization, resp.StatusCode, string(detail))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: error decoding response: %v", contracts.ErrSummarization, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", contracts.ErrSummarization)
	}
	return parsed.Choices[0].Message.Content, nil
}
