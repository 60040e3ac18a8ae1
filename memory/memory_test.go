package memory

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinanata/amygdala/models"
)

func sampleDoc() *models.MemoryDoc {
	return &models.MemoryDoc{
		RelativePath: "src/main.py",
		Language:     "python",
		Summaries: []models.Summary{{
			Content:     "Entry point that wires the CLI together.",
			Granularity: models.GranularityMedium,
			GeneratedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
			Provider:    "anthropic",
			Model:       "claude-haiku-4-5-20251001",
			TokenCount:  9,
		}},
	}
}

func TestWriteAndRead_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	path, err := Write(tempDir, sampleDoc())
	require.NoError(t, err)
	assert.FileExists(t, path)

	doc, err := Read(tempDir, "src/main.py")
	require.NoError(t, err)
	assert.Equal(t, "src/main.py", doc.RelativePath)
	assert.Equal(t, "python", doc.Language)
	require.Len(t, doc.Summaries, 1)

	latest := doc.LatestSummary()
	require.NotNil(t, latest)
	assert.Equal(t, "Entry point that wires the CLI together.", latest.Content)
	assert.Equal(t, models.GranularityMedium, latest.Granularity)
	assert.Equal(t, "anthropic", latest.Provider)
	assert.Equal(t, 9, latest.TokenCount)
}

func TestWrite_ReplacesPriorSummary(t *testing.T) {
	tempDir := t.TempDir()

	doc := sampleDoc()
	_, err := Write(tempDir, doc)
	require.NoError(t, err)

	doc.Summaries = append(doc.Summaries, models.Summary{
		Content:     "Updated summary.",
		Granularity: models.GranularityHigh,
		GeneratedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		Provider:    "anthropic",
		Model:       "claude-haiku-4-5-20251001",
	})
	_, err = Write(tempDir, doc)
	require.NoError(t, err)

	reread, err := Read(tempDir, "src/main.py")
	require.NoError(t, err)
	require.Len(t, reread.Summaries, 1)
	assert.Equal(t, "Updated summary.", reread.Summaries[0].Content)
	assert.Equal(t, models.GranularityHigh, reread.Summaries[0].Granularity)
}

func TestWrite_NoSummaryWritesEmptyBody(t *testing.T) {
	tempDir := t.TempDir()

	_, err := Write(tempDir, &models.MemoryDoc{RelativePath: "util.go", Language: "go"})
	require.NoError(t, err)

	doc, err := Read(tempDir, "util.go")
	require.NoError(t, err)
	assert.Empty(t, doc.Summaries)
	assert.Equal(t, "go", doc.Language)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(t.TempDir(), "ghost.py")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRead_TextWithoutLeadingFenceIsAllBody(t *testing.T) {
	tempDir := t.TempDir()
	path := PathFor(tempDir, "raw.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("just some text\nno header here"), 0o644))

	doc, err := Read(tempDir, "raw.txt")
	require.NoError(t, err)
	// No header means no summary metadata, so the body is unrepresented.
	assert.Empty(t, doc.Summaries)
	assert.Equal(t, "raw.txt", doc.RelativePath)
}

func TestRead_UnclosedFenceTreatedAsBody(t *testing.T) {
	tempDir := t.TempDir()
	path := PathFor(tempDir, "broken.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("---\nrelative_path: broken.py\nno closing fence"), 0o644))

	doc, err := Read(tempDir, "broken.py")
	require.NoError(t, err)
	assert.Empty(t, doc.Summaries)
	assert.Equal(t, "broken.py", doc.RelativePath)
}

func TestRead_HeaderWithoutSummaryBlockYieldsZeroSummaries(t *testing.T) {
	tempDir := t.TempDir()
	path := PathFor(tempDir, "meta.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := "---\nrelative_path: meta.py\nlanguage: python\n---\n\nbody text with no summary metadata\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := Read(tempDir, "meta.py")
	require.NoError(t, err)
	assert.Empty(t, doc.Summaries)
	assert.Equal(t, "python", doc.Language)
}

func TestDelete_Idempotent(t *testing.T) {
	tempDir := t.TempDir()
	_, err := Write(tempDir, sampleDoc())
	require.NoError(t, err)

	existed, err := Delete(tempDir, "src/main.py")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = Delete(tempDir, "src/main.py")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestList_SortedSourcePaths(t *testing.T) {
	tempDir := t.TempDir()
	for _, rel := range []string{"src/z.py", "src/a.py", "README.md"} {
		doc := sampleDoc()
		doc.RelativePath = rel
		_, err := Write(tempDir, doc)
		require.NoError(t, err)
	}

	paths, err := List(tempDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "src/a.py", "src/z.py"}, paths)
}

func TestPathConversion(t *testing.T) {
	assert.Equal(t, "src/main.py.md", SourceToMemoryPath("src/main.py"))
	assert.Equal(t, "src/main.py", MemoryToSourcePath("src/main.py.md"))
}
