// Package ollama implements the Summarizer contract against a local Ollama
// server. No credential is required.
package ollama

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
	defaultBaseURL = "http://localhost:11434/api/chat"

	// Local models can be slow; give them more room than remote backends.
	requestTimeout = 300 * time.Second
)

// Config holds the resolved settings for the Ollama backend.
type Config struct {
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float32
}

// Provider talks to the Ollama chat API.
type Provider struct {
	config Config
	client *http.Client
}

// New creates an Ollama provider from resolved configuration.
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

func (p *Provider) Name() string { return "ollama" }

func (p *Provider) Model() string { return p.config.Model }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type options struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type request struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  options   `json:"options"`
}

type response struct {
	Message message `json:"message"`
}

// Generate sends one non-streaming chat request and returns the reply text.
func (p *Provider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(request{
		Model: p.config.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: false,
		Options: options{
			Temperature: p.config.Temperature,
			NumPredict:  p.config.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contracts.ErrSummarization, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: ollama returned status %d: %s",
			contracts.ErrSummarization, resp.StatusCode, string(detail))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: error decoding response: %v", contracts.ErrSummarization, err)
	}
	return parsed.Message.Content, nil
}
