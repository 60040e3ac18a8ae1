// Package gemini implements the Summarizer contract against the Google
// Gemini generateContent API using a plain HTTP client.
package gemini

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
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	requestTimeout = 120 * time.Second
)

// Config holds the resolved settings for the Gemini backend.
type Config struct {
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float32
}

// Provider talks to the Gemini generateContent API.
type Provider struct {
	config Config
	client *http.Client
}

// New creates a Gemini provider from resolved configuration.
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

func (p *Provider) Name() string { return "gemini" }

func (p *Provider) Model() string { return p.config.Model }

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type request struct {
	SystemInstruction content          `json:"system_instruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type response struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one generateContent request and returns the first candidate.
func (p *Provider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("%w: gemini api key not configured", contracts.ErrAuthRequired)
	}

	body, err := json.Marshal(request{
		SystemInstruction: content{Parts: []part{{Text: systemPrompt}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: userPrompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     p.config.Temperature,
			MaxOutputTokens: p.config.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", p.config.BaseURL, p.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contracts.ErrSummarization, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: gemini returned status %d: %s",
			contracts.ErrSummarization, resp.StatusCode, string(detail))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: error decoding response: %v", contracts.ErrSummarization, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", contracts.ErrSummarization)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
