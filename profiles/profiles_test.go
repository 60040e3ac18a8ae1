package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownAndUnknown(t *testing.T) {
	p, err := Get("unity")
	require.NoError(t, err)
	assert.Equal(t, "unity", p.Name)
	assert.Contains(t, p.Extensions, ".shader")

	_, err = Get("cobol")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_Sorted(t *testing.T) {
	names := List()
	assert.Equal(t, []string{"nextjs", "node", "python", "react", "unity", "unreal"}, names)
}

func TestResolveExtensions_MergesProfiles(t *testing.T) {
	base, err := ResolveExtensions(nil)
	require.NoError(t, err)
	assert.Contains(t, base, ".py")
	assert.NotContains(t, base, ".shader")

	withUnity, err := ResolveExtensions([]string{"unity"})
	require.NoError(t, err)
	assert.Contains(t, withUnity, ".py")
	assert.Contains(t, withUnity, ".shader")

	_, err = ResolveExtensions([]string{"nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveLanguageMap_ProfileOverrides(t *testing.T) {
	langs, err := ResolveLanguageMap([]string{"python"})
	require.NoError(t, err)
	assert.Equal(t, "python", langs[".py"])
	assert.Equal(t, "cython", langs[".pyx"])
}

func TestResolveExcludePatterns_DedupKeepsFirstSeenOrder(t *testing.T) {
	patterns, err := ResolveExcludePatterns([]string{"node_modules/", "*.log"}, []string{"react"})
	require.NoError(t, err)

	// react also carries node_modules/, which must not repeat.
	count := 0
	for _, p := range patterns {
		if p == "node_modules/" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "node_modules/", patterns[0])
	assert.Contains(t, patterns, "storybook-static/")
}

func TestExcluder_DirectoryAndGlobPatterns(t *testing.T) {
	excluder, err := CompileExcludes([]string{"node_modules/", "*.min.js", ".env"})
	require.NoError(t, err)

	assert.True(t, excluder.Match("node_modules/react/index.js"))
	assert.True(t, excluder.Match("packages/app/node_modules/lodash/lodash.js"))
	assert.True(t, excluder.Match("dist/bundle.min.js"))
	assert.True(t, excluder.Match(".env"))
	assert.True(t, excluder.Match("config/.env"))

	assert.False(t, excluder.Match("src/main.py"))
	assert.False(t, excluder.Match("src/modules.py"))
}

func TestCompileExcludes_InvalidPattern(t *testing.T) {
	_, err := CompileExcludes([]string{"[unclosed"})
	assert.Error(t, err)
}
