package models

import "time"

// IndexEntry is a tracked file entry in the index, keyed by its relative path.
type IndexEntry struct {
	RelativePath  string      `json:"relative_path"`
	ContentHash   string      `json:"content_hash"`
	Status        FileStatus  `json:"status"`
	Granularity   Granularity `json:"granularity"`
	MemoryPath    string      `json:"memory_path"`
	CapturedAt    *time.Time  `json:"captured_at,omitempty"`
	FileSizeBytes int64       `json:"file_size_bytes"`
	Language      string      `json:"language,omitempty"`
}

// IndexFile is the root index document persisted at .amygdala/index.json.
// TotalFiles and DirtyFiles are derived counts; UpdateCounts must be called
// after every entry mutation before the index is persisted.
type IndexFile struct {
	SchemaVersion int                    `json:"schema_version"`
	ProjectRoot   string                 `json:"project_root"`
	Branch        string                 `json:"branch"`
	LastScanAt    *time.Time             `json:"last_scan_at,omitempty"`
	LastCaptureAt *time.Time             `json:"last_capture_at,omitempty"`
	TotalFiles    int                    `json:"total_files"`
	DirtyFiles    int                    `json:"dirty_files"`
	Entries       map[string]*IndexEntry `json:"entries"`

	// Generation is the on-disk stamp observed at load time, used for the
	// optimistic concurrency check on save. Never serialized.
	Generation uint64 `json:"-"`
}

// NewIndexFile returns an empty index for a project root.
func NewIndexFile(projectRoot string) *IndexFile {
	return &IndexFile{
		SchemaVersion: 1,
		ProjectRoot:   projectRoot,
		Entries:       make(map[string]*IndexEntry),
	}
}

// UpdateCounts recomputes TotalFiles and DirtyFiles from the entry map.
func (idx *IndexFile) UpdateCounts() {
	idx.TotalFiles = len(idx.Entries)
	dirty := 0
	for _, e := range idx.Entries {
		if e.Status == StatusDirty {
			dirty++
		}
	}
	idx.DirtyFiles = dirty
}

// TouchScan stamps LastScanAt with the current time.
func (idx *IndexFile) TouchScan() {
	now := time.Now().UTC()
	idx.LastScanAt = &now
}

// TouchCapture stamps LastCaptureAt with the current time.
func (idx *IndexFile) TouchCapture() {
	now := time.Now().UTC()
	idx.LastCaptureAt = &now
}
