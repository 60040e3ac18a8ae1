// Package index persists the tracked-file index at .amygdala/index.json and
// provides CRUD over its entries. The index is a whole-document read-modify-
// write store: Load observes an on-disk generation stamp and Save rejects the
// write if the stamp changed in between.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"github.com/sinanata/amygdala/constants"
	"github.com/sinanata/amygdala/models"
)

var (
	// ErrCorrupted is returned when a persisted index exists but cannot be
	// parsed. It is never auto-repaired; callers must surface it.
	ErrCorrupted = errors.New("index corrupted")

	// ErrConflict is returned by Save when the on-disk index changed since
	// it was loaded.
	ErrConflict = errors.New("index modified since load")
)

// Load reads the index for a project root. A missing index file is not an
// error: a fresh empty index is returned.
func Load(projectRoot string) (*models.IndexFile, error) {
	path := constants.IndexPath(projectRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewIndexFile(projectRoot), nil
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var idx models.IndexFile
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]*models.IndexEntry)
	}
	idx.Generation = xxh3.Hash(data)
	return &idx, nil
}

// Save serializes the full index with stable indentation, creating the parent
// directory if needed. The write is refused with ErrConflict when another
// writer has replaced the on-disk index since this one was loaded.
func Save(projectRoot string, idx *models.IndexFile) error {
	path := constants.IndexPath(projectRoot)

	current, err := diskGeneration(path)
	if err != nil {
		return err
	}
	if current != idx.Generation {
		return fmt.Errorf("%w: %s", ErrConflict, path)
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize index: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	idx.Generation = xxh3.Hash(data)
	return nil
}

// Upsert inserts or replaces an entry by relative path and recomputes the
// derived counts.
func Upsert(idx *models.IndexFile, entry *models.IndexEntry) {
	idx.Entries[entry.RelativePath] = entry
	idx.UpdateCounts()
}

// Remove deletes an entry by relative path, recomputing counts. It reports
// whether the entry existed.
func Remove(idx *models.IndexFile, relativePath string) bool {
	if _, ok := idx.Entries[relativePath]; !ok {
		return false
	}
	delete(idx.Entries, relativePath)
	idx.UpdateCounts()
	return true
}

// Get returns the entry for a relative path, or nil.
func Get(idx *models.IndexFile, relativePath string) *models.IndexEntry {
	return idx.Entries[relativePath]
}

// diskGeneration hashes the current on-disk index bytes; a missing file is
// generation zero.
func diskGeneration(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read index: %w", err)
	}
	return xxh3.Hash(data), nil
}
