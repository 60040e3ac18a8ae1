package gitops

import (
	"strconv"
	"strings"
)

// DiffHunk is a single hunk from a unified diff. Lines retain their leading
// +, -, or space marker.
type DiffHunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []string
}

// FileDiff is the parsed diff for a single file.
type FileDiff struct {
	Path      string
	OldPath   string
	IsNew     bool
	IsDeleted bool
	IsRenamed bool
	Hunks     []*DiffHunk
}

// AddedLines counts lines with a + marker across all hunks.
func (f *FileDiff) AddedLines() int {
	n := 0
	for _, h := range f.Hunks {
		for _, line := range h.Lines {
			if strings.HasPrefix(line, "+") {
				n++
			}
		}
	}
	return n
}

// RemovedLines counts lines with a - marker across all hunks.
func (f *FileDiff) RemovedLines() int {
	n := 0
	for _, h := range f.Hunks {
		for _, line := range h.Lines {
			if strings.HasPrefix(line, "-") {
				n++
			}
		}
	}
	return n
}

// ParseDiff scans raw git diff output into per-file hunks. The scan is a
// forward-only state machine over two variables, the current file and the
// current hunk; unrecognized lines are ignored and malformed hunk headers are
// dropped without error.
func ParseDiff(raw string) []*FileDiff {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var fileDiffs []*FileDiff
	var currentFile *FileDiff
	var currentHunk *DiffHunk

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			path := ""
			if _, after, ok := strings.Cut(line, " b/"); ok {
				path = after
			}
			currentFile = &FileDiff{Path: path}
			currentHunk = nil
			fileDiffs = append(fileDiffs, currentFile)

		case strings.HasPrefix(line, "new file"):
			if currentFile != nil {
				currentFile.IsNew = true
			}

		case strings.HasPrefix(line, "deleted file"):
			if currentFile != nil {
				currentFile.IsDeleted = true
			}

		case strings.HasPrefix(line, "rename from "):
			if currentFile != nil {
				currentFile.IsRenamed = true
				currentFile.OldPath = strings.TrimPrefix(line, "rename from ")
			}

		case strings.HasPrefix(line, "@@"):
			if currentFile != nil {
				if hunk := parseHunkHeader(line); hunk != nil {
					currentHunk = hunk
					currentFile.Hunks = append(currentFile.Hunks, currentHunk)
				}
			}

		case currentHunk != nil && (strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, " ")):
			currentHunk.Lines = append(currentHunk.Lines, line)
		}
	}

	return fileDiffs
}

// parseHunkHeader parses "@@ -a[,b] +c[,d] @@ ..." into a DiffHunk, or nil
// when the header is malformed.
func parseHunkHeader(line string) *DiffHunk {
	parts := strings.Split(line, "@@")
	if len(parts) < 2 {
		return nil
	}
	fields := strings.Fields(strings.TrimSpace(parts[1]))
	if len(fields) < 2 {
		return nil
	}

	oldStart, oldCount, ok := parseRange(strings.TrimPrefix(fields[0], "-"))
	if !ok {
		return nil
	}
	newStart, newCount, ok := parseRange(strings.TrimPrefix(fields[1], "+"))
	if !ok {
		return nil
	}

	return &DiffHunk{
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
	}
}

// parseRange parses "1,3" or "1" into (start, count); a missing count
// defaults to 1.
func parseRange(s string) (int, int, bool) {
	startStr, countStr, hasCount := strings.Cut(s, ",")
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return 0, 0, false
	}
	count := 1
	if hasCount {
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return 0, 0, false
		}
	}
	return start, count, true
}
