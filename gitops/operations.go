// Package gitops wraps the git subprocess calls the engine depends on and
// parses unified diff output into structured hunks.
package gitops

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrNotARepo is returned when a path is not inside a git work tree.
	ErrNotARepo = errors.New("not a git repository")

	// ErrGit wraps failures of the git subprocess itself.
	ErrGit = errors.New("git command failed")
)

// run executes a git command in dir and returns stdout.
func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: git is not installed or not on PATH", ErrGit)
		}
		return "", fmt.Errorf("%w: git %s: %s", ErrGit, strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return string(out), nil
}

// IsRepo reports whether path is inside a git work tree.
func IsRepo(path string) bool {
	_, err := run(path, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// EnsureRepo returns ErrNotARepo if path is not inside a git work tree.
func EnsureRepo(path string) error {
	if !IsRepo(path) {
		return fmt.Errorf("%w: %s", ErrNotARepo, path)
	}
	return nil
}

// RepoRoot returns the top-level directory of the repository containing path.
func RepoRoot(path string) (string, error) {
	if err := EnsureRepo(path); err != nil {
		return "", err
	}
	out, err := run(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch(path string) (string, error) {
	if err := EnsureRepo(path); err != nil {
		return "", err
	}
	out, err := run(path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// TrackedFiles returns the paths git tracks, relative to the repo root.
func TrackedFiles(path string) ([]string, error) {
	if err := EnsureRepo(path); err != nil {
		return nil, err
	}
	out, err := run(path, "ls-files")
	if err != nil {
		return nil, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// DiffNames returns the paths of changed files, optionally of the staged set.
func DiffNames(path string, staged bool) ([]string, error) {
	if err := EnsureRepo(path); err != nil {
		return nil, err
	}
	args := []string{"diff", "--name-only"}
	if staged {
		args = append(args, "--cached")
	}
	out, err := run(path, args...)
	if err != nil {
		return nil, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Diff returns raw unified diff output, optionally staged, optionally limited
// to one file.
func Diff(path string, staged bool, filePath string) (string, error) {
	if err := EnsureRepo(path); err != nil {
		return "", err
	}
	args := []string{"diff"}
	if staged {
		args = append(args, "--cached")
	}
	if filePath != "" {
		args = append(args, "--", filePath)
	}
	return run(path, args...)
}

// FileStatuses returns a map of file path to short status code from
// git status --porcelain. Renames map the new name to the code.
func FileStatuses(path string) (map[string]string, error) {
	if err := EnsureRepo(path); err != nil {
		return nil, err
	}
	out, err := run(path, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	out = strings.TrimRight(out, "\n")
	result := make(map[string]string)
	if out == "" {
		return result, nil
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		// Positions 0-1 are the XY status; the line must not be trimmed first.
		code := strings.TrimSpace(line[:2])
		name := line[3:]
		if idx := strings.Index(name, " -> "); idx != -1 {
			name = name[idx+len(" -> "):]
		}
		result[name] = code
	}
	return result, nil
}
