// Package config supplies the built-in selection rules and loads configuration overrides.
package config

import (
	"github.com/osokin/gather/internal/types"
	"github.com/osokin/gather/internal/utils"
)

// defaultIgnoreNames lists directory and file name patterns that are never
// traversed or included. Entries containing glob metacharacters are matched
// with filepath.Match against a whole path component.
var defaultIgnoreNames = []string{
	// Version control and build artifacts
	".git", ".svn", ".hg", "__pycache__", "node_modules", "venv", "env", ".venv",
	"dist", "build", ".next", ".nuxt", "target", "bin", "obj",

	// IDE and editors
	".vscode", ".idea", "xcuserdata", ".vs", "*.swp", "*.swo", ".DS_Store",

	// Secrets and credentials
	".env", ".envrc", ".secrets", ".aws", ".ssh", "id_rsa", "id_ed25519",
	"*.key", "*.pem", "*.p12", "*.pfx", "*.jks", "*.keystore",
	"credentials.json", "secrets.json", "config.json", ".netrc",
	"api_keys.txt", "passwords.txt", ".password", "auth.json",

	// Certificates
	"*.crt", "*.cer", "*.ca-bundle", "*.p7b", "*.p7c", "*.der",

	// Database files
	"*.db", "*.sqlite", "*.sqlite3", "*.mdb",

	// Logs and temporary files
	"*.log", "logs", "tmp", "temp", ".tmp", "*.pid", "*.lock",
}

// defaultExtensions lists file extensions eligible for collection.
// Matching is case-sensitive.
var defaultExtensions = []string{
	// Scripts and code
	".py", ".r", ".js", ".ts", ".jsx", ".tsx", ".sh", ".bash", ".zsh", ".fish",
	// Web
	".html", ".css", ".scss", ".sass", ".less", ".vue", ".svelte",
	// Mobile and desktop
	".swift", ".kt", ".java", ".dart", ".cs", ".cpp", ".c", ".h", ".hpp",
	// Configuration and data
	".json", ".yaml", ".yml", ".toml", ".xml", ".ini", ".cfg", ".conf",
	// Database and query
	".sql", ".graphql", ".gql",
	// Documentation and markup
	".md", ".rst", ".tex",
	// Build and project
	".dockerfile", ".makefile", ".cmake", ".gradle", ".pbxproj", ".entitlements",
	// Other languages
	".go", ".rs", ".rb", ".php", ".lua", ".scala", ".clj", ".hs",
}

// defaultSpecialNames lists exact filenames eligible regardless of extension.
var defaultSpecialNames = []string{"pyproject.toml"}

// DefaultSelectionRules returns a fresh copy of the built-in allow and deny sets.
func DefaultSelectionRules() types.SelectionRules {
	return types.SelectionRules{
		IgnoreNames:  append([]string{}, defaultIgnoreNames...),
		Extensions:   append([]string{}, defaultExtensions...),
		SpecialNames: append([]string{}, defaultSpecialNames...),
	}
}

// EffectiveSelectionRules combines the built-in sets with configuration
// additions and command-line exclusion patterns. Additions never remove a
// built-in entry; duplicates are dropped while preserving order.
func EffectiveSelectionRules(configuration ApplicationConfiguration, exclusionPatterns []string) types.SelectionRules {
	rules := DefaultSelectionRules()
	rules.IgnoreNames = utils.DeduplicatePatterns(append(rules.IgnoreNames, configuration.Rules.Ignore...))
	rules.IgnoreNames = utils.DeduplicatePatterns(append(rules.IgnoreNames, exclusionPatterns...))
	rules.Extensions = utils.DeduplicatePatterns(append(rules.Extensions, configuration.Rules.Extensions...))
	rules.SpecialNames = utils.DeduplicatePatterns(append(rules.SpecialNames, configuration.Rules.Special...))
	return rules
}
