package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinanata/amygdala/constants"
	"github.com/sinanata/amygdala/models"
)

func TestLoad_MissingFileReturnsFreshIndex(t *testing.T) {
	tempDir := t.TempDir()

	idx, err := Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, constants.SchemaVersion, idx.SchemaVersion)
	assert.Empty(t, idx.Entries)
	assert.Zero(t, idx.TotalFiles)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	idx := models.NewIndexFile(tempDir)
	Upsert(idx, &models.IndexEntry{
		RelativePath: "src/main.py",
		ContentHash:  "abc123",
		Status:       models.StatusClean,
		Granularity:  models.GranularityMedium,
		MemoryPath:   "src/main.py.md",
	})
	require.NoError(t, Save(tempDir, idx))

	loaded, err := Load(tempDir)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	entry := Get(loaded, "src/main.py")
	require.NotNil(t, entry)
	assert.Equal(t, "abc123", entry.ContentHash)
	assert.Equal(t, models.StatusClean, entry.Status)
	assert.Equal(t, 1, loaded.TotalFiles)
}

func TestLoad_CorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	indexPath := constants.IndexPath(tempDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(indexPath), 0o755))
	require.NoError(t, os.WriteFile(indexPath, []byte("{not json"), 0o644))

	_, err := Load(tempDir)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestSave_RejectsConcurrentModification(t *testing.T) {
	tempDir := t.TempDir()

	idx := models.NewIndexFile(tempDir)
	require.NoError(t, Save(tempDir, idx))

	// Two invocations load the same on-disk state.
	first, err := Load(tempDir)
	require.NoError(t, err)
	second, err := Load(tempDir)
	require.NoError(t, err)

	Upsert(first, &models.IndexEntry{RelativePath: "a.py", Status: models.StatusClean})
	require.NoError(t, Save(tempDir, first))

	Upsert(second, &models.IndexEntry{RelativePath: "b.py", Status: models.StatusClean})
	err = Save(tempDir, second)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpsertAndRemove_RecomputeCounts(t *testing.T) {
	idx := models.NewIndexFile("/tmp/project")

	Upsert(idx, &models.IndexEntry{RelativePath: "a.py", Status: models.StatusClean})
	Upsert(idx, &models.IndexEntry{RelativePath: "b.py", Status: models.StatusDirty})
	assert.Equal(t, 2, idx.TotalFiles)
	assert.Equal(t, 1, idx.DirtyFiles)

	// Replacing an entry must not duplicate it.
	Upsert(idx, &models.IndexEntry{RelativePath: "a.py", Status: models.StatusDirty})
	assert.Equal(t, 2, idx.TotalFiles)
	assert.Equal(t, 2, idx.DirtyFiles)

	assert.True(t, Remove(idx, "a.py"))
	assert.False(t, Remove(idx, "a.py"))
	assert.Equal(t, 1, idx.TotalFiles)
	assert.Equal(t, 1, idx.DirtyFiles)
}
