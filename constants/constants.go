package constants

import "path/filepath"

const (
	AmygdalaDirName = ".amygdala"
	ConfigFileName  = "config.toml"
	IndexFileName   = "index.json"
	MemoryDirName   = "memory"
	LogsDirName     = "logs"

	SchemaVersion = 1

	DefaultGranularity = "medium"
	DefaultProvider    = "anthropic"
	DefaultModel       = "claude-haiku-4-5-20251001"
	DefaultMaxTokens   = 4096
	DefaultTemperature = 0.0

	// MaxFileSizeBytes is the default per-file capture limit (1 MB).
	MaxFileSizeBytes = 1_000_000

	// MemoryFileSuffix is appended to a source path to derive its memory document path.
	MemoryFileSuffix = ".md"
)

// SupportedExtensions is the base set of file extensions eligible for capture.
// Profiles extend this set; see the profiles package.
var SupportedExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {}, ".java": {}, ".kt": {}, ".go": {},
	".rs": {}, ".c": {}, ".cpp": {}, ".h": {}, ".hpp": {}, ".cs": {}, ".rb": {}, ".php": {},
	".swift": {}, ".m": {}, ".scala": {}, ".sh": {}, ".bash": {}, ".zsh": {},
	".yaml": {}, ".yml": {}, ".toml": {}, ".json": {}, ".xml": {}, ".html": {}, ".css": {},
	".sql": {}, ".md": {}, ".txt": {}, ".cfg": {}, ".ini": {}, ".env": {},
	".dockerfile": {}, ".tf": {}, ".hcl": {},
}

// BaseLanguageMap maps file extensions to language identifiers used in
// prompts and memory document headers. Profiles may override entries.
var BaseLanguageMap = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".jsx":   "javascript",
	".tsx":   "typescript",
	".java":  "java",
	".kt":    "kotlin",
	".go":    "go",
	".rs":    "rust",
	".c":     "c",
	".cpp":   "cpp",
	".h":     "c",
	".hpp":   "cpp",
	".cs":    "csharp",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".scala": "scala",
	".sh":    "shell",
	".bash":  "shell",
	".zsh":   "shell",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".json":  "json",
	".xml":   "xml",
	".html":  "html",
	".css":   "css",
	".sql":   "sql",
	".md":    "markdown",
}

// DefaultExcludePatterns are glob patterns excluded from capture by default.
var DefaultExcludePatterns = []string{
	"*.pyc", "__pycache__", ".git", "node_modules", ".venv",
	"venv", "dist", "build", "*.egg-info",
}

// AmygdalaDir returns the .amygdala directory for a project root.
func AmygdalaDir(projectRoot string) string {
	return filepath.Join(projectRoot, AmygdalaDirName)
}

// ConfigPath returns the config file path for a project root.
func ConfigPath(projectRoot string) string {
	return filepath.Join(AmygdalaDir(projectRoot), ConfigFileName)
}

// IndexPath returns the index file path for a project root.
func IndexPath(projectRoot string) string {
	return filepath.Join(AmygdalaDir(projectRoot), IndexFileName)
}

// MemoryDir returns the memory directory path for a project root.
func MemoryDir(projectRoot string) string {
	return filepath.Join(AmygdalaDir(projectRoot), MemoryDirName)
}

// LogsDir returns the log directory path for a project root.
func LogsDir(projectRoot string) string {
	return filepath.Join(AmygdalaDir(projectRoot), LogsDirName)
}
