// Package engine composes the index store, dirty tracker, capture pipeline,
// and memory store behind the operations the CLI triggers. The engine holds
// no long-lived state: every operation loads, mutates, and saves.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sinanata/amygdala/capture"
	"github.com/sinanata/amygdala/config"
	"github.com/sinanata/amygdala/constants"
	"github.com/sinanata/amygdala/gitops"
	"github.com/sinanata/amygdala/index"
	"github.com/sinanata/amygdala/logging"
	"github.com/sinanata/amygdala/models"
	"github.com/sinanata/amygdala/profiles"
	"github.com/sinanata/amygdala/providers/contracts"
	"github.com/sinanata/amygdala/tracker"
)

// ErrNotInitialized is returned when an operation needs a project that has
// not been set up yet.
var ErrNotInitialized = errors.New("project not initialized, run init first")

// VersionControl is the narrow view of git the engine depends on.
type VersionControl interface {
	IsRepo(root string) bool
	TrackedFiles(root string) ([]string, error)
	CurrentBranch(root string) (string, error)
}

// gitVersionControl backs VersionControl with git subprocess calls.
type gitVersionControl struct{}

func (gitVersionControl) IsRepo(root string) bool                    { return gitops.IsRepo(root) }
func (gitVersionControl) TrackedFiles(root string) ([]string, error) { return gitops.TrackedFiles(root) }
func (gitVersionControl) CurrentBranch(root string) (string, error)  { return gitops.CurrentBranch(root) }

// Engine drives all project-level operations for one root.
type Engine struct {
	root string
	cfg  *models.Config
	vc   VersionControl
	log  *logging.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithVersionControl swaps the git implementation, mainly for tests.
func WithVersionControl(vc VersionControl) Option {
	return func(e *Engine) { e.vc = vc }
}

// WithLogger attaches a session logger.
func WithLogger(log *logging.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New builds an Engine for the given root and configuration.
func New(root string, cfg *models.Config, opts ...Option) *Engine {
	e := &Engine{root: root, cfg: cfg, vc: gitVersionControl{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the project root this engine operates on.
func (e *Engine) Root() string { return e.root }

// Config returns the resolved configuration.
func (e *Engine) Config() *models.Config { return e.cfg }

// Init creates the .amygdala layout, persists the configuration, and writes
// an empty index stamped with the current branch.
func (e *Engine) Init() error {
	for _, dir := range []string{
		constants.AmygdalaDir(e.root),
		constants.MemoryDir(e.root),
		constants.LogsDir(e.root),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if err := config.Save(e.root, e.cfg); err != nil {
		return err
	}

	idx := models.NewIndexFile(e.root)
	if e.vc.IsRepo(e.root) {
		if branch, err := e.vc.CurrentBranch(e.root); err == nil {
			idx.Branch = branch
		}
	}
	if err := index.Save(e.root, idx); err != nil {
		return err
	}
	e.infof("initialized project at %s", e.root)
	return nil
}

// Initialized reports whether the .amygdala layout exists for this root.
func (e *Engine) Initialized() bool {
	info, err := os.Stat(constants.AmygdalaDir(e.root))
	return err == nil && info.IsDir()
}

// Status summarizes the index by file status.
type Status struct {
	Branch        string               `json:"branch,omitempty"`
	TotalFiles    int                  `json:"total_files"`
	CleanFiles    int                  `json:"clean_files"`
	DirtyFiles    int                  `json:"dirty_files"`
	NewFiles      int                  `json:"new_files"`
	DeletedFiles  int                  `json:"deleted_files"`
	ExcludedFiles int                  `json:"excluded_files"`
	LastScanAt    string               `json:"last_scan_at,omitempty"`
	LastCaptureAt string               `json:"last_capture_at,omitempty"`
	Entries       []*models.IndexEntry `json:"entries,omitempty"`
}

// Status loads the index and aggregates per-status counts. Entries are
// returned sorted by path.
func (e *Engine) Status() (*Status, error) {
	idx, err := index.Load(e.root)
	if err != nil {
		return nil, err
	}

	st := &Status{Branch: idx.Branch, TotalFiles: idx.TotalFiles}
	for _, entry := range idx.Entries {
		switch entry.Status {
		case models.StatusClean:
			st.CleanFiles++
		case models.StatusDirty:
			st.DirtyFiles++
		case models.StatusNew:
			st.NewFiles++
		case models.StatusDeleted:
			st.DeletedFiles++
		case models.StatusExcluded:
			st.ExcludedFiles++
		}
		st.Entries = append(st.Entries, entry)
	}
	sort.Slice(st.Entries, func(i, j int) bool {
		return st.Entries[i].RelativePath < st.Entries[j].RelativePath
	})
	if idx.LastScanAt != nil {
		st.LastScanAt = idx.LastScanAt.Format(time.RFC3339)
	}
	if idx.LastCaptureAt != nil {
		st.LastCaptureAt = idx.LastCaptureAt.Format(time.RFC3339)
	}
	return st, nil
}

// Capture runs the capture pipeline over the given paths. A nil or empty
// slice captures every git-tracked file. Non-existent and directory paths
// are skipped silently, excluded paths likewise. Each remaining file is
// captured independently: a failure is recorded in the report and the batch
// continues. The index is persisted once after the batch.
func (e *Engine) Capture(ctx context.Context, paths []string, granularity models.Granularity, summarizer contracts.Summarizer) (*capture.Report, error) {
	idx, err := index.Load(e.root)
	if err != nil {
		return nil, err
	}

	extensions, err := profiles.ResolveExtensions(e.cfg.Profiles)
	if err != nil {
		return nil, err
	}
	languageMap, err := profiles.ResolveLanguageMap(e.cfg.Profiles)
	if err != nil {
		return nil, err
	}
	excludePatterns, err := profiles.ResolveExcludePatterns(e.cfg.ExcludePatterns, e.cfg.Profiles)
	if err != nil {
		return nil, err
	}
	excluder, err := profiles.CompileExcludes(excludePatterns)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths, err = e.vc.TrackedFiles(e.root)
		if err != nil {
			return nil, err
		}
	}

	report := &capture.Report{}
	seen := make(map[string]struct{}, len(paths))
	for _, rel := range paths {
		rel = filepath.ToSlash(filepath.Clean(rel))
		if _, dup := seen[rel]; dup {
			continue
		}
		seen[rel] = struct{}{}
		info, statErr := os.Stat(filepath.Join(e.root, rel))
		if statErr != nil || info.IsDir() {
			continue
		}
		if excluder.Match(rel) {
			continue
		}

		entry, _, capErr := capture.CaptureFile(ctx, capture.Options{
			ProjectRoot:  e.root,
			RelativePath: rel,
			Summarizer:   summarizer,
			Granularity:  granularity,
			MaxFileSize:  e.cfg.MaxFileSizeBytes,
			Extensions:   extensions,
			LanguageMap:  languageMap,
		})
		if capErr != nil {
			e.warnf("capture failed for %s: %v", rel, capErr)
			report.Failed = append(report.Failed, capture.FileError{Path: rel, Err: capErr})
			continue
		}
		index.Upsert(idx, entry)
		report.Captured = append(report.Captured, rel)
		e.infof("captured %s (%s)", rel, granularity)
	}

	idx.TouchCapture()
	if err := index.Save(e.root, idx); err != nil {
		return nil, err
	}
	return report, nil
}

// StoreSummary persists an externally produced summary for one file and
// upserts its index entry.
func (e *Engine) StoreSummary(relativePath, summaryText string, granularity models.Granularity) (*models.IndexEntry, error) {
	idx, err := index.Load(e.root)
	if err != nil {
		return nil, err
	}
	languageMap, err := profiles.ResolveLanguageMap(e.cfg.Profiles)
	if err != nil {
		return nil, err
	}

	entry, _, err := capture.StoreSummary(e.root, relativePath, summaryText, granularity, languageMap)
	if err != nil {
		return nil, err
	}
	index.Upsert(idx, entry)
	idx.TouchCapture()
	if err := index.Save(e.root, idx); err != nil {
		return nil, err
	}
	return entry, nil
}

// Scan reconciles the index against the working tree. It requires a git
// work tree and returns gitops.ErrNotARepo otherwise.
func (e *Engine) Scan() ([]tracker.Change, error) {
	if !e.vc.IsRepo(e.root) {
		return nil, fmt.Errorf("%w: %s", gitops.ErrNotARepo, e.root)
	}
	changes, err := tracker.Scan(e.root)
	if err != nil {
		return nil, err
	}
	e.infof("scan reported %d stale files", len(changes))
	return changes, nil
}

// MarkDirty forces one tracked file to dirty.
func (e *Engine) MarkDirty(relativePath string) (bool, error) {
	return tracker.MarkDirty(e.root, relativePath)
}

// DirtyFiles lists the paths currently marked dirty.
func (e *Engine) DirtyFiles() ([]string, error) {
	return tracker.DirtyFiles(e.root)
}

// Clean removes the entire .amygdala directory, discarding the index, all
// memory documents, and logs.
func (e *Engine) Clean() error {
	if !e.Initialized() {
		return ErrNotInitialized
	}
	if err := os.RemoveAll(constants.AmygdalaDir(e.root)); err != nil {
		return fmt.Errorf("failed to remove project data: %w", err)
	}
	return nil
}

func (e *Engine) infof(format string, args ...any) {
	if e.log != nil {
		e.log.Infof(format, args...)
	}
}

func (e *Engine) warnf(format string, args ...any) {
	if e.log != nil {
		e.log.Warnf(format, args...)
	}
}
