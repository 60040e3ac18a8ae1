// Package profiles defines named bundles of extra file extensions, language
// mappings, and exclude patterns for specific ecosystems, and resolves the
// effective configuration from the base tables plus the enabled profiles.
package profiles

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when an unknown profile name is requested.
var ErrNotFound = errors.New("unknown profile")

// Profile is a named bundle of extensions, language mappings, and exclude
// patterns layered on top of the base configuration.
type Profile struct {
	Name            string
	Description     string
	Extensions      []string
	LanguageMap     map[string]string
	ExcludePatterns []string
}

var builtins = map[string]Profile{
	"unity": {
		Name:        "unity",
		Description: "Unity game engine (C#, ShaderLab, YAML scenes)",
		Extensions: []string{
			".shader", ".hlsl", ".cginc", ".compute",
			".unity", ".prefab", ".asset", ".mat", ".meta",
			".asmdef", ".asmref", ".controller", ".anim",
			".shadergraph", ".uxml", ".uss",
		},
		LanguageMap: map[string]string{
			".shader": "shaderlab", ".unity": "yaml", ".prefab": "yaml",
			".asset": "yaml", ".mat": "yaml", ".meta": "yaml",
			".hlsl": "hlsl", ".cginc": "hlsl", ".compute": "hlsl",
			".asmdef": "json", ".asmref": "json", ".uxml": "xml", ".uss": "css",
		},
		ExcludePatterns: []string{"Library/", "Temp/", "Obj/", "UserSettings/", "Logs/"},
	},
	"unreal": {
		Name:        "unreal",
		Description: "Unreal Engine (C++, HLSL, .uproject)",
		Extensions:  []string{".inl", ".uproject", ".uplugin", ".usf", ".ush", ".uasset", ".umap"},
		LanguageMap: map[string]string{
			".uproject": "json", ".uplugin": "json",
			".usf": "hlsl", ".ush": "hlsl", ".inl": "cpp",
		},
		ExcludePatterns: []string{"Binaries/", "DerivedDataCache/", "Intermediate/", "Saved/"},
	},
	"python": {
		Name:        "python",
		Description: "Python ecosystem (stubs, Cython, Jupyter)",
		Extensions:  []string{".pyi", ".pyx", ".pxd", ".ipynb", ".in", ".conf"},
		LanguageMap: map[string]string{
			".pyi": "python", ".pyx": "cython", ".pxd": "cython", ".ipynb": "jupyter",
		},
		ExcludePatterns: []string{
			"__pycache__/", ".venv/", ".tox/",
			".mypy_cache/", ".pytest_cache/", ".ruff_cache/",
		},
	},
	"node": {
		Name:        "node",
		Description: "Node.js ecosystem (ESM/CJS, TypeScript variants)",
		Extensions:  []string{".mjs", ".cjs", ".mts", ".cts", ".npmrc"},
		LanguageMap: map[string]string{
			".mjs": "javascript", ".cjs": "javascript",
			".mts": "typescript", ".cts": "typescript", ".npmrc": "ini",
		},
		ExcludePatterns: []string{"node_modules/", ".next/", ".nuxt/", ".cache/", ".turbo/"},
	},
	"react": {
		Name:        "react",
		Description: "React ecosystem (SCSS, Sass, Less, SVG, MDX)",
		Extensions:  []string{".scss", ".sass", ".less", ".svg", ".mdx"},
		LanguageMap: map[string]string{
			".scss": "scss", ".sass": "sass", ".less": "less",
			".svg": "xml", ".mdx": "mdx",
		},
		ExcludePatterns: []string{"node_modules/", "storybook-static/", "coverage/"},
	},
	"nextjs": {
		Name:            "nextjs",
		Description:     "Next.js framework (MDX, SCSS, SVG)",
		Extensions:      []string{".mdx", ".scss", ".svg"},
		LanguageMap:     map[string]string{".mdx": "mdx", ".scss": "scss", ".svg": "xml"},
		ExcludePatterns: []string{".next/", ".vercel/", "out/", "node_modules/"},
	},
}

// Get returns a built-in profile by name.
func Get(name string) (Profile, error) {
	p, ok := builtins[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (available: %v)", ErrNotFound, name, List())
	}
	return p, nil
}

// List returns the sorted names of all built-in profiles.
func List() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
