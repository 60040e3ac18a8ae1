package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGranularity_Valid(t *testing.T) {
	assert.True(t, GranularitySimple.Valid())
	assert.True(t, GranularityMedium.Valid())
	assert.True(t, GranularityHigh.Valid())
	assert.False(t, Granularity("extreme").Valid())
	assert.False(t, Granularity("").Valid())
}

func TestMemoryDoc_LatestSummary(t *testing.T) {
	empty := &MemoryDoc{RelativePath: "a.py"}
	assert.Nil(t, empty.LatestSummary())

	older := Summary{Content: "old", GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := Summary{Content: "new", GeneratedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}

	doc := &MemoryDoc{RelativePath: "a.py", Summaries: []Summary{newer, older}}
	assert.Equal(t, "new", doc.LatestSummary().Content)
}

func TestIndexFile_UpdateCounts(t *testing.T) {
	idx := NewIndexFile("/tmp/p")
	idx.Entries["a.py"] = &IndexEntry{RelativePath: "a.py", Status: StatusDirty}
	idx.Entries["b.py"] = &IndexEntry{RelativePath: "b.py", Status: StatusClean}
	idx.Entries["c.py"] = &IndexEntry{RelativePath: "c.py", Status: StatusDirty}

	idx.UpdateCounts()
	assert.Equal(t, 3, idx.TotalFiles)
	assert.Equal(t, 2, idx.DirtyFiles)
}
