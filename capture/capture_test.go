package capture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinanata/amygdala/hasher"
	"github.com/sinanata/amygdala/memory"
	"github.com/sinanata/amygdala/models"
)

// stubSummarizer returns a fixed summary, or a fixed error.
type stubSummarizer struct {
	text string
	err  error
}

func (s *stubSummarizer) Name() string  { return "stub" }
func (s *stubSummarizer) Model() string { return "stub-model" }
func (s *stubSummarizer) Generate(_ context.Context, _, _ string) (string, error) {
	return s.text, s.err
}

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCaptureFile_Success(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app.py", "x=1")

	entry, doc, err := CaptureFile(context.Background(), Options{
		ProjectRoot:  root,
		RelativePath: "src/app.py",
		Summarizer:   &stubSummarizer{text: "S"},
		Granularity:  models.GranularityMedium,
	})
	require.NoError(t, err)

	assert.Equal(t, "src/app.py", entry.RelativePath)
	assert.Equal(t, hasher.HashContent("x=1"), entry.ContentHash)
	assert.Equal(t, models.StatusClean, entry.Status)
	assert.Equal(t, models.GranularityMedium, entry.Granularity)
	assert.Equal(t, "src/app.py.md", entry.MemoryPath)
	assert.Equal(t, "python", entry.Language)
	assert.Equal(t, int64(3), entry.FileSizeBytes)
	require.NotNil(t, entry.CapturedAt)

	require.Len(t, doc.Summaries, 1)
	assert.Equal(t, "S", doc.Summaries[0].Content)
	assert.Equal(t, "stub", doc.Summaries[0].Provider)
	assert.Equal(t, "stub-model", doc.Summaries[0].Model)

	// The memory document landed on disk.
	persisted, err := memory.Read(root, "src/app.py")
	require.NoError(t, err)
	assert.Equal(t, "S", persisted.LatestSummary().Content)
}

func TestCaptureFile_ValidationOrder(t *testing.T) {
	root := t.TempDir()

	_, _, err := CaptureFile(context.Background(), Options{
		ProjectRoot:  root,
		RelativePath: "ghost.py",
		Summarizer:   &stubSummarizer{text: "S"},
		Granularity:  models.GranularityMedium,
	})
	assert.ErrorIs(t, err, ErrFileNotFound)

	writeSource(t, root, "binary.exe", "MZ")
	_, _, err = CaptureFile(context.Background(), Options{
		ProjectRoot:  root,
		RelativePath: "binary.exe",
		Summarizer:   &stubSummarizer{text: "S"},
		Granularity:  models.GranularityMedium,
	})
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	writeSource(t, root, "huge.py", "x=1")
	_, _, err = CaptureFile(context.Background(), Options{
		ProjectRoot:  root,
		RelativePath: "huge.py",
		Summarizer:   &stubSummarizer{text: "S"},
		Granularity:  models.GranularityMedium,
		MaxFileSize:  2,
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestCaptureFile_NoExtensionSkipsExtensionCheck(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "Makefile", "all:\n\ttrue\n")

	entry, _, err := CaptureFile(context.Background(), Options{
		ProjectRoot:  root,
		RelativePath: "Makefile",
		Summarizer:   &stubSummarizer{text: "S"},
		Granularity:  models.GranularitySimple,
	})
	require.NoError(t, err)
	assert.Empty(t, entry.Language)
}

func TestCaptureFile_SummarizerFailureWritesNothing(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app.py", "x=1")

	boom := errors.New("provider unavailable")
	_, _, err := CaptureFile(context.Background(), Options{
		ProjectRoot:  root,
		RelativePath: "src/app.py",
		Summarizer:   &stubSummarizer{err: boom},
		Granularity:  models.GranularityMedium,
	})
	assert.ErrorIs(t, err, boom)

	_, err = memory.Read(root, "src/app.py")
	assert.ErrorIs(t, err, memory.ErrNotFound)
}

func TestStoreSummary_SkipsExtensionAndSizeChecks(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "binary.exe", "MZ")

	entry, doc, err := StoreSummary(root, "binary.exe", "Pregenerated note.", models.GranularityHigh, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusClean, entry.Status)
	assert.Equal(t, hasher.HashContent("MZ"), entry.ContentHash)
	assert.Equal(t, "external", doc.Summaries[0].Provider)
	assert.Equal(t, "pregenerated", doc.Summaries[0].Model)

	persisted, err := memory.Read(root, "binary.exe")
	require.NoError(t, err)
	assert.Equal(t, "Pregenerated note.", persisted.LatestSummary().Content)
}

func TestStoreSummary_MissingFile(t *testing.T) {
	_, _, err := StoreSummary(t.TempDir(), "ghost.py", "text", models.GranularityMedium, nil)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "python", DetectLanguage("src/app.py", nil))
	assert.Equal(t, "go", DetectLanguage("main.go", nil))
	assert.Empty(t, DetectLanguage("LICENSE", nil))
	assert.Equal(t, "cython", DetectLanguage("fast.pyx", map[string]string{".pyx": "cython"}))
}
