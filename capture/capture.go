// Package capture implements the per-file capture pipeline: validate, read,
// summarize, persist the memory document, and build the updated index entry.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sinanata/amygdala/constants"
	"github.com/sinanata/amygdala/hasher"
	"github.com/sinanata/amygdala/memory"
	"github.com/sinanata/amygdala/models"
	"github.com/sinanata/amygdala/prompts"
	"github.com/sinanata/amygdala/providers/contracts"
	"github.com/sinanata/amygdala/tokens"
)

var (
	// ErrFileNotFound is returned when the capture target does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedFile is returned when the target's extension is outside
	// the effective allowed set.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrFileTooLarge is returned when the target exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// Options carries the resolved inputs for capturing one file. Extensions and
// LanguageMap are the effective sets after profile resolution; nil falls back
// to the base tables.
type Options struct {
	ProjectRoot  string
	RelativePath string
	Summarizer   contracts.Summarizer
	Granularity  models.Granularity
	MaxFileSize  int64
	Extensions   map[string]struct{}
	LanguageMap  map[string]string
}

// FileError records one failed file in a batch.
type FileError struct {
	Path string
	Err  error
}

// Report is the outcome of a capture batch: which files were captured and
// which failed, with the per-file error preserved so callers can tell
// validation failures from provider failures.
type Report struct {
	Captured []string
	Failed   []FileError
}

// CaptureFile runs the full pipeline for one file. Validation happens before
// any read or network call; the summarizer call is the only suspension point
// and honors ctx. The resulting memory document holds exactly one summary,
// replacing any prior history.
func CaptureFile(ctx context.Context, opts Options) (*models.IndexEntry, *models.MemoryDoc, error) {
	absPath := filepath.Join(opts.ProjectRoot, opts.RelativePath)
	info, err := validate(absPath, opts.RelativePath, opts.MaxFileSize, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", opts.RelativePath, err)
	}
	content := strings.ToValidUTF8(string(raw), "�")
	language := DetectLanguage(opts.RelativePath, opts.LanguageMap)

	contentHash, err := hasher.HashFile(absPath)
	if err != nil {
		return nil, nil, err
	}

	systemPrompt, _ := prompts.Get(opts.Granularity)
	userPrompt := prompts.FormatUserPrompt(opts.Granularity, opts.RelativePath, language, content)

	summaryText, err := opts.Summarizer.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	doc := &models.MemoryDoc{
		RelativePath: opts.RelativePath,
		Language:     language,
		Summaries: []models.Summary{{
			Content:     summaryText,
			Granularity: opts.Granularity,
			GeneratedAt: now,
			Provider:    opts.Summarizer.Name(),
			Model:       opts.Summarizer.Model(),
			TokenCount:  tokens.Estimate(summaryText),
		}},
	}
	if _, err := memory.Write(opts.ProjectRoot, doc); err != nil {
		return nil, nil, err
	}

	entry := &models.IndexEntry{
		RelativePath:  opts.RelativePath,
		ContentHash:   contentHash,
		Status:        models.StatusClean,
		Granularity:   opts.Granularity,
		MemoryPath:    memory.SourceToMemoryPath(opts.RelativePath),
		CapturedAt:    &now,
		FileSizeBytes: info.Size(),
		Language:      language,
	}
	return entry, doc, nil
}

// StoreSummary persists an externally produced summary without calling a
// summarizer. Only file existence is validated; extension and size checks are
// intentionally skipped for this trusted fast path.
func StoreSummary(projectRoot, relativePath, summaryText string, granularity models.Granularity, languageMap map[string]string) (*models.IndexEntry, *models.MemoryDoc, error) {
	absPath := filepath.Join(projectRoot, relativePath)
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, relativePath)
		}
		return nil, nil, fmt.Errorf("failed to stat %s: %w", relativePath, err)
	}

	language := DetectLanguage(relativePath, languageMap)
	contentHash, err := hasher.HashFile(absPath)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	doc := &models.MemoryDoc{
		RelativePath: relativePath,
		Language:     language,
		Summaries: []models.Summary{{
			Content:     summaryText,
			Granularity: granularity,
			GeneratedAt: now,
			Provider:    "external",
			Model:       "pregenerated",
			TokenCount:  tokens.Estimate(summaryText),
		}},
	}
	if _, err := memory.Write(projectRoot, doc); err != nil {
		return nil, nil, err
	}

	entry := &models.IndexEntry{
		RelativePath:  relativePath,
		ContentHash:   contentHash,
		Status:        models.StatusClean,
		Granularity:   granularity,
		MemoryPath:    memory.SourceToMemoryPath(relativePath),
		CapturedAt:    &now,
		FileSizeBytes: info.Size(),
		Language:      language,
	}
	return entry, doc, nil
}

// validate checks existence, extension, and size, in that order.
func validate(absPath, relativePath string, maxSize int64, extensions map[string]struct{}) (os.FileInfo, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, relativePath)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", relativePath, err)
	}

	if extensions == nil {
		extensions = constants.SupportedExtensions
	}
	ext := strings.ToLower(filepath.Ext(relativePath))
	if ext != "" {
		if _, ok := extensions[ext]; !ok {
			return nil, fmt.Errorf("%w %q: %s", ErrUnsupportedFile, ext, relativePath)
		}
	}

	if maxSize <= 0 {
		maxSize = constants.MaxFileSizeBytes
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w (%d bytes > %d): %s", ErrFileTooLarge, info.Size(), maxSize, relativePath)
	}
	return info, nil
}

// DetectLanguage maps a file's extension to a language identifier. A nil map
// falls back to the base table; unknown extensions yield the empty string.
func DetectLanguage(relativePath string, languageMap map[string]string) string {
	if languageMap == nil {
		languageMap = constants.BaseLanguageMap
	}
	return languageMap[strings.ToLower(filepath.Ext(relativePath))]
}
