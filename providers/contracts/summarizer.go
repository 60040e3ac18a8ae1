// Package contracts defines the summarization capability the capture
// pipeline depends on, and the error taxonomy shared by all backends.
package contracts

import (
	"context"
	"errors"
)

var (
	// ErrAuthRequired is returned when the credential for the chosen
	// backend is missing from the resolved configuration.
	ErrAuthRequired = errors.New("provider credential missing")

	// ErrSummarization is returned when a summarization request fails or
	// the backend answers with an error status. Requests are never retried.
	ErrSummarization = errors.New("summarization failed")
)

// Summarizer generates natural-language summaries from a system/user prompt
// pair. Implementations are synchronous from the caller's perspective and
// honor context cancellation.
type Summarizer interface {
	Name() string
	Model() string
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
