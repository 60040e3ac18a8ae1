package models

// Granularity selects the level of summary detail.
type Granularity string

const (
	GranularitySimple Granularity = "simple"
	GranularityMedium Granularity = "medium"
	GranularityHigh   Granularity = "high"
)

// Valid reports whether g is a known granularity level.
func (g Granularity) Valid() bool {
	switch g {
	case GranularitySimple, GranularityMedium, GranularityHigh:
		return true
	}
	return false
}

// FileStatus is the tracked state of a file in the index.
type FileStatus string

const (
	StatusClean    FileStatus = "clean"
	StatusDirty    FileStatus = "dirty"
	StatusNew      FileStatus = "new"
	StatusDeleted  FileStatus = "deleted"
	StatusExcluded FileStatus = "excluded"
)

// ProviderName identifies a summarization backend.
type ProviderName string

const (
	ProviderAnthropic ProviderName = "anthropic"
	ProviderOpenAI    ProviderName = "openai"
	ProviderOllama    ProviderName = "ollama"
	ProviderGemini    ProviderName = "gemini"
)
