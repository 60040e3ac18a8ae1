package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinanata/amygdala/capture"
	"github.com/sinanata/amygdala/config"
	"github.com/sinanata/amygdala/constants"
	"github.com/sinanata/amygdala/gitops"
	"github.com/sinanata/amygdala/hasher"
	"github.com/sinanata/amygdala/index"
	"github.com/sinanata/amygdala/memory"
	"github.com/sinanata/amygdala/models"
)

// stubVC fakes git: a fixed branch and tracked file list.
type stubVC struct {
	tracked []string
}

func (s stubVC) IsRepo(string) bool                    { return true }
func (s stubVC) TrackedFiles(string) ([]string, error) { return s.tracked, nil }
func (s stubVC) CurrentBranch(string) (string, error)  { return "main", nil }

// noRepoVC reports no git work tree.
type noRepoVC struct{ stubVC }

func (noRepoVC) IsRepo(string) bool { return false }

type stubSummarizer struct {
	text string
	err  error
}

func (s *stubSummarizer) Name() string  { return "stub" }
func (s *stubSummarizer) Model() string { return "stub-model" }
func (s *stubSummarizer) Generate(_ context.Context, _, _ string) (string, error) {
	return s.text, s.err
}

func newTestEngine(t *testing.T, tracked []string) *Engine {
	t.Helper()
	root := t.TempDir()
	eng := New(root, config.Default(root), WithVersionControl(stubVC{tracked: tracked}))
	require.NoError(t, eng.Init())
	return eng
}

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestInit_CreatesLayout(t *testing.T) {
	eng := newTestEngine(t, nil)
	root := eng.Root()

	assert.DirExists(t, constants.AmygdalaDir(root))
	assert.DirExists(t, constants.MemoryDir(root))
	assert.FileExists(t, constants.ConfigPath(root))
	assert.FileExists(t, constants.IndexPath(root))
	assert.True(t, eng.Initialized())

	idx, err := index.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "main", idx.Branch)
	assert.Empty(t, idx.Entries)
}

func TestCapture_ConcreteScenario(t *testing.T) {
	eng := newTestEngine(t, nil)
	root := eng.Root()
	writeSource(t, root, "a.py", "x=1")
	writeSource(t, root, "b.py", "y=2")

	report, err := eng.Capture(context.Background(), []string{"a.py", "b.py"}, models.GranularityMedium, &stubSummarizer{text: "S"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.py", "b.py"}, report.Captured)
	assert.Empty(t, report.Failed)

	idx, err := index.Load(root)
	require.NoError(t, err)
	require.Len(t, idx.Entries, 2)
	assert.Equal(t, hasher.HashContent("x=1"), index.Get(idx, "a.py").ContentHash)
	assert.Equal(t, hasher.HashContent("y=2"), index.Get(idx, "b.py").ContentHash)
	assert.Equal(t, models.StatusClean, index.Get(idx, "a.py").Status)
	assert.Equal(t, models.StatusClean, index.Get(idx, "b.py").Status)
	assert.NotNil(t, idx.LastCaptureAt)

	for _, rel := range []string{"a.py", "b.py"} {
		doc, readErr := memory.Read(root, rel)
		require.NoError(t, readErr)
		assert.Equal(t, "S", doc.LatestSummary().Content)
	}
}

func TestCapture_BatchPartialFailure(t *testing.T) {
	eng := newTestEngine(t, nil)
	root := eng.Root()
	writeSource(t, root, "good.py", "x=1")
	writeSource(t, root, "bad.exe", "MZ")

	report, err := eng.Capture(context.Background(), []string{"good.py", "bad.exe"}, models.GranularityMedium, &stubSummarizer{text: "S"})
	require.NoError(t, err)

	assert.Equal(t, []string{"good.py"}, report.Captured)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "bad.exe", report.Failed[0].Path)
	assert.ErrorIs(t, report.Failed[0].Err, capture.ErrUnsupportedFile)

	idx, err := index.Load(root)
	require.NoError(t, err)
	assert.Nil(t, index.Get(idx, "bad.exe"))
	_, err = memory.Read(root, "bad.exe")
	assert.ErrorIs(t, err, memory.ErrNotFound)
}

func TestCapture_SkipsMissingDirectoriesAndExcluded(t *testing.T) {
	eng := newTestEngine(t, nil)
	root := eng.Root()
	writeSource(t, root, "src/app.py", "x=1")
	writeSource(t, root, "node_modules/lib/index.js", "module.exports = 1")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "emptydir"), 0o755))

	report, err := eng.Capture(context.Background(),
		[]string{"src/app.py", "ghost.py", "emptydir", "node_modules/lib/index.js"},
		models.GranularityMedium, &stubSummarizer{text: "S"})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/app.py"}, report.Captured)
	assert.Empty(t, report.Failed)
}

func TestCapture_EmptyPathsFallBackToTrackedFiles(t *testing.T) {
	eng := newTestEngine(t, []string{"tracked.py"})
	writeSource(t, eng.Root(), "tracked.py", "x=1")

	report, err := eng.Capture(context.Background(), nil, models.GranularityMedium, &stubSummarizer{text: "S"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tracked.py"}, report.Captured)
}

func TestStoreSummary_UpdatesIndex(t *testing.T) {
	eng := newTestEngine(t, nil)
	root := eng.Root()
	writeSource(t, root, "notes.py", "x=1")

	entry, err := eng.StoreSummary("notes.py", "Handwritten summary.", models.GranularityHigh)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClean, entry.Status)

	idx, err := index.Load(root)
	require.NoError(t, err)
	require.NotNil(t, index.Get(idx, "notes.py"))
	assert.NotNil(t, idx.LastCaptureAt)
}

func TestStatusAndScan_EndToEnd(t *testing.T) {
	eng := newTestEngine(t, nil)
	root := eng.Root()
	writeSource(t, root, "a.py", "x=1")
	writeSource(t, root, "b.py", "y=2")

	_, err := eng.Capture(context.Background(), []string{"a.py", "b.py"}, models.GranularityMedium, &stubSummarizer{text: "S"})
	require.NoError(t, err)

	status, err := eng.Status()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalFiles)
	assert.Equal(t, 2, status.CleanFiles)
	assert.Zero(t, status.DirtyFiles)

	// Mutate one file and rescan.
	writeSource(t, root, "a.py", "x=999")
	changes, err := eng.Scan()
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "a.py", changes[0].RelativePath)

	status, err = eng.Status()
	require.NoError(t, err)
	assert.Equal(t, 1, status.DirtyFiles)
	assert.Equal(t, 1, status.CleanFiles)

	dirty, err := eng.DirtyFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, dirty)
}

func TestScan_RequiresGitRepo(t *testing.T) {
	eng := newTestEngine(t, nil)
	eng.vc = noRepoVC{}

	_, err := eng.Scan()
	assert.ErrorIs(t, err, gitops.ErrNotARepo)
}

func TestClean_RemovesEverything(t *testing.T) {
	eng := newTestEngine(t, nil)
	root := eng.Root()
	writeSource(t, root, "a.py", "x=1")
	_, err := eng.Capture(context.Background(), []string{"a.py"}, models.GranularityMedium, &stubSummarizer{text: "S"})
	require.NoError(t, err)

	require.NoError(t, eng.Clean())
	assert.False(t, eng.Initialized())
	assert.NoDirExists(t, constants.AmygdalaDir(root))

	// Source files stay untouched.
	assert.FileExists(t, filepath.Join(root, "a.py"))

	assert.ErrorIs(t, eng.Clean(), ErrNotInitialized)
}
