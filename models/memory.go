package models

import "time"

// Summary is one generated summary of a source file.
type Summary struct {
	Content     string      `json:"content"`
	Granularity Granularity `json:"granularity"`
	GeneratedAt time.Time   `json:"generated_at"`
	Provider    string      `json:"provider"`
	Model       string      `json:"model"`
	TokenCount  int         `json:"token_count,omitempty"`
}

// MemoryDoc is the in-memory form of a persisted memory document.
// The model carries a summary list, but the store only ever persists the
// latest element; each capture replaces history rather than appending.
type MemoryDoc struct {
	RelativePath string
	Language     string
	Summaries    []Summary
}

// LatestSummary returns the summary with the most recent GeneratedAt,
// or nil if the document has none.
func (m *MemoryDoc) LatestSummary() *Summary {
	if len(m.Summaries) == 0 {
		return nil
	}
	latest := &m.Summaries[0]
	for i := range m.Summaries[1:] {
		s := &m.Summaries[i+1]
		if s.GeneratedAt.After(latest.GeneratedAt) {
			latest = s
		}
	}
	return latest
}
