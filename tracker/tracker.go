// Package tracker keeps the index in step with the working tree: full scans
// reconcile every tracked entry against the filesystem, and MarkDirty handles
// single-file change notifications.
package tracker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sinanata/amygdala/hasher"
	"github.com/sinanata/amygdala/index"
	"github.com/sinanata/amygdala/models"
)

// Change records one file reported stale during a scan.
type Change struct {
	RelativePath string
	From         models.FileStatus
	To           models.FileStatus
}

// Scan walks every entry in the index and reconciles its status against the
// file on disk. Missing files become deleted, files whose hash differs become
// dirty, and previously dirty files whose hash matches again revert to clean
// without being reported. Files never captured have no entry and are
// invisible here. The updated index is persisted before returning.
func Scan(projectRoot string) ([]Change, error) {
	idx, err := index.Load(projectRoot)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for rel, entry := range idx.Entries {
		absPath := filepath.Join(projectRoot, rel)
		if _, statErr := os.Stat(absPath); statErr != nil {
			if os.IsNotExist(statErr) {
				if entry.Status != models.StatusDeleted {
					changes = append(changes, Change{RelativePath: rel, From: entry.Status, To: models.StatusDeleted})
					entry.Status = models.StatusDeleted
				}
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", rel, statErr)
		}

		currentHash, hashErr := hasher.HashFile(absPath)
		if hashErr != nil {
			return nil, hashErr
		}

		switch {
		case currentHash != entry.ContentHash:
			changes = append(changes, Change{RelativePath: rel, From: entry.Status, To: models.StatusDirty})
			entry.Status = models.StatusDirty
		case entry.Status == models.StatusDirty:
			// Content matches the captured hash again, e.g. after a revert.
			entry.Status = models.StatusClean
		}
	}

	idx.UpdateCounts()
	idx.TouchScan()
	if err := index.Save(projectRoot, idx); err != nil {
		return nil, err
	}
	return changes, nil
}

// MarkDirty forces a tracked file's status to dirty, skipping any hash
// comparison. It is the entry point for external change signals such as
// editor save hooks. Returns false when the path has no index entry.
func MarkDirty(projectRoot, relativePath string) (bool, error) {
	idx, err := index.Load(projectRoot)
	if err != nil {
		return false, err
	}
	entry, ok := idx.Entries[relativePath]
	if !ok {
		return false, nil
	}

	entry.Status = models.StatusDirty
	idx.UpdateCounts()
	if err := index.Save(projectRoot, idx); err != nil {
		return false, err
	}
	return true, nil
}

// DirtyFiles returns the relative paths of all entries currently marked
// dirty, in no particular order.
func DirtyFiles(projectRoot string) ([]string, error) {
	idx, err := index.Load(projectRoot)
	if err != nil {
		return nil, err
	}
	var dirty []string
	for rel, entry := range idx.Entries {
		if entry.Status == models.StatusDirty {
			dirty = append(dirty, rel)
		}
	}
	return dirty, nil
}
