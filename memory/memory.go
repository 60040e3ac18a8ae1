// Package memory reads and writes memory documents: one Markdown file per
// tracked source file, a YAML header between "---" fences followed by the
// summary body. Documents live under .amygdala/memory/ at the source file's
// relative path plus a ".md" suffix.
package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sinanata/amygdala/constants"
	"github.com/sinanata/amygdala/models"
)

// ErrNotFound is returned when a memory document does not exist on disk.
var ErrNotFound = errors.New("memory document not found")

const delimiter = "---"

// header is the YAML block at the top of every memory document.
type header struct {
	RelativePath string       `yaml:"relative_path"`
	Language     *string      `yaml:"language"`
	Summary      *summaryMeta `yaml:"summary,omitempty"`
}

type summaryMeta struct {
	Granularity string    `yaml:"granularity"`
	GeneratedAt time.Time `yaml:"generated_at"`
	Provider    string    `yaml:"provider"`
	Model       string    `yaml:"model"`
	TokenCount  int       `yaml:"token_count,omitempty"`
}

// PathFor returns the absolute memory document path for a source file.
func PathFor(projectRoot, relativePath string) string {
	return filepath.Join(constants.MemoryDir(projectRoot), relativePath+constants.MemoryFileSuffix)
}

// SourceToMemoryPath converts a source relative path to its memory document
// relative path, e.g. "src/main.py" -> "src/main.py.md".
func SourceToMemoryPath(relativePath string) string {
	return relativePath + constants.MemoryFileSuffix
}

// MemoryToSourcePath strips the document suffix, e.g. "src/main.py.md" ->
// "src/main.py".
func MemoryToSourcePath(memoryRelative string) string {
	return strings.TrimSuffix(memoryRelative, constants.MemoryFileSuffix)
}

// Write persists a memory document, creating parent directories as needed.
// Only the latest summary is written; prior history is replaced. The write is
// atomic via a temporary file and rename. Returns the document path.
func Write(projectRoot string, doc *models.MemoryDoc) (string, error) {
	path := PathFor(projectRoot, doc.RelativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create memory directory: %w", err)
	}

	hdr := header{RelativePath: doc.RelativePath}
	if doc.Language != "" {
		lang := doc.Language
		hdr.Language = &lang
	}
	body := ""
	if latest := doc.LatestSummary(); latest != nil {
		hdr.Summary = &summaryMeta{
			Granularity: string(latest.Granularity),
			GeneratedAt: latest.GeneratedAt,
			Provider:    latest.Provider,
			Model:       latest.Model,
			TokenCount:  latest.TokenCount,
		}
		body = latest.Content
	}

	yamlBytes, err := yaml.Marshal(&hdr)
	if err != nil {
		return "", fmt.Errorf("failed to serialize memory header: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(delimiter + "\n")
	sb.Write(yamlBytes)
	sb.WriteString(delimiter + "\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write memory document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to rename memory document: %w", err)
	}
	return path, nil
}

// Read loads the memory document for a source file. A document whose header
// carries no summary block parses to zero summaries regardless of body text.
func Read(projectRoot, relativePath string) (*models.MemoryDoc, error) {
	path := PathFor(projectRoot, relativePath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read memory document: %w", err)
	}

	hdr, body := parseDocument(string(data))

	doc := &models.MemoryDoc{
		RelativePath: relativePath,
		Language:     "",
	}
	if hdr.RelativePath != "" {
		doc.RelativePath = hdr.RelativePath
	}
	if hdr.Language != nil {
		doc.Language = *hdr.Language
	}
	if body != "" && hdr.Summary != nil {
		doc.Summaries = []models.Summary{{
			Content:     body,
			Granularity: models.Granularity(hdr.Summary.Granularity),
			GeneratedAt: hdr.Summary.GeneratedAt,
			Provider:    hdr.Summary.Provider,
			Model:       hdr.Summary.Model,
			TokenCount:  hdr.Summary.TokenCount,
		}}
	}
	return doc, nil
}

// Delete removes a memory document. Deleting an absent document is not an
// error; the return reports whether it existed.
func Delete(projectRoot, relativePath string) (bool, error) {
	path := PathFor(projectRoot, relativePath)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete memory document: %w", err)
	}
	return true, nil
}

// List enumerates the memory tree and returns the source relative paths that
// have memory documents, sorted.
func List(projectRoot string) ([]string, error) {
	memDir := constants.MemoryDir(projectRoot)
	if _, err := os.Stat(memDir); os.IsNotExist(err) {
		return nil, nil
	}

	var result []string
	err := filepath.WalkDir(memDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), constants.MemoryFileSuffix) {
			return nil
		}
		rel, err := filepath.Rel(memDir, path)
		if err != nil {
			return err
		}
		result = append(result, MemoryToSourcePath(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list memory documents: %w", err)
	}
	sort.Strings(result)
	return result, nil
}

// parseDocument splits a raw document into header and body. Text without a
// leading fence is all body; an unclosed fence is treated as malformed and
// also returned entirely as body.
func parseDocument(text string) (header, string) {
	var hdr header
	if !strings.HasPrefix(text, delimiter) {
		return hdr, strings.TrimSpace(text)
	}

	rest := text[len(delimiter):]
	idx := strings.Index(rest, "\n"+delimiter)
	if idx == -1 {
		return hdr, strings.TrimSpace(text)
	}

	yamlBlock := rest[:idx]
	body := rest[idx+len("\n"+delimiter):]

	if err := yaml.Unmarshal([]byte(yamlBlock), &hdr); err != nil {
		hdr = header{}
	}
	return hdr, strings.TrimSpace(body)
}
