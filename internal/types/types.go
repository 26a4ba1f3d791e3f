// Package types defines every cross‑package data structure used by the gather CLI.
package types

// SelectionRules carries the allow and deny sets applied during traversal.
// A value is constructed once per run and passed explicitly into the
// selector, collector, and tree renderer; no process-global state exists.
type SelectionRules struct {
	// IgnoreNames holds directory and file name patterns that are never
	// traversed or included. Entries match a whole path component; entries
	// containing glob metacharacters are evaluated with filepath.Match.
	IgnoreNames []string
	// Extensions holds file extensions, including the leading dot, that make
	// a file eligible for collection.
	Extensions []string
	// SpecialNames holds exact filenames eligible regardless of extension.
	SpecialNames []string
}

// FileCollection maps a slash-normalized relative path to the file's text
// content. Keys are unique; ordering is applied only at rendering time.
type FileCollection map[string]string

// Warning records a non-fatal diagnostic raised while collecting files or
// rendering the tree. Warnings never alter the generated document.
type Warning struct {
	Path    string
	Message string
}
