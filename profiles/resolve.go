package profiles

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/sinanata/amygdala/constants"
)

// ResolveExtensions computes the effective allowed-extension set: the base
// supported extensions plus every extension from the named profiles.
func ResolveExtensions(profileNames []string) (map[string]struct{}, error) {
	result := make(map[string]struct{}, len(constants.SupportedExtensions))
	for ext := range constants.SupportedExtensions {
		result[ext] = struct{}{}
	}
	for _, name := range profileNames {
		p, err := Get(name)
		if err != nil {
			return nil, err
		}
		for _, ext := range p.Extensions {
			result[ext] = struct{}{}
		}
	}
	return result, nil
}

// ResolveLanguageMap computes the effective extension-to-language map: the
// base map with profile overrides applied in order.
func ResolveLanguageMap(profileNames []string) (map[string]string, error) {
	result := make(map[string]string, len(constants.BaseLanguageMap))
	for ext, lang := range constants.BaseLanguageMap {
		result[ext] = lang
	}
	for _, name := range profileNames {
		p, err := Get(name)
		if err != nil {
			return nil, err
		}
		for ext, lang := range p.LanguageMap {
			result[ext] = lang
		}
	}
	return result, nil
}

// ResolveExcludePatterns merges the base patterns with every profile's
// patterns, deduplicated, preserving first-seen order.
func ResolveExcludePatterns(base []string, profileNames []string) ([]string, error) {
	seen := make(map[string]struct{})
	var result []string
	add := func(pattern string) {
		if _, ok := seen[pattern]; !ok {
			seen[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	for _, pattern := range base {
		add(pattern)
	}
	for _, name := range profileNames {
		p, err := Get(name)
		if err != nil {
			return nil, err
		}
		for _, pattern := range p.ExcludePatterns {
			add(pattern)
		}
	}
	return result, nil
}

// Excluder matches relative paths against compiled exclude patterns.
type Excluder struct {
	globs []glob.Glob
	dirs  []string
}

// CompileExcludes compiles exclude patterns into an Excluder. Patterns ending
// in "/" match any path under that directory; other patterns are globs
// matched against the path and each of its segments.
func CompileExcludes(patterns []string) (*Excluder, error) {
	e := &Excluder{}
	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, "/") {
			e.dirs = append(e.dirs, strings.TrimSuffix(pattern, "/"))
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		e.globs = append(e.globs, g)
	}
	return e, nil
}

// Match reports whether a slash-separated relative path is excluded.
func (e *Excluder) Match(relativePath string) bool {
	segments := strings.Split(relativePath, "/")
	for _, dir := range e.dirs {
		for _, seg := range segments {
			if seg == dir {
				return true
			}
		}
	}
	for _, g := range e.globs {
		if g.Match(relativePath) {
			return true
		}
		for _, seg := range segments {
			if g.Match(seg) {
				return true
			}
		}
	}
	return false
}
