// Package selection decides which paths are eligible for collection.
package selection

import (
	"path/filepath"
	"strings"

	"github.com/osokin/gather/internal/types"
)

const pathSegmentSeparator = "/"

// Selector applies the allow and deny sets to candidate paths. A Selector is
// constructed from an explicit rules value so test suites can inject custom
// sets without touching shared state.
type Selector struct {
	rules        types.SelectionRules
	extensions   map[string]struct{}
	specialNames map[string]struct{}
}

// NewSelector constructs a Selector for the provided rules.
func NewSelector(rules types.SelectionRules) *Selector {
	extensionSet := make(map[string]struct{}, len(rules.Extensions))
	for _, extension := range rules.Extensions {
		extensionSet[extension] = struct{}{}
	}
	specialNameSet := make(map[string]struct{}, len(rules.SpecialNames))
	for _, specialName := range rules.SpecialNames {
		specialNameSet[specialName] = struct{}{}
	}
	return &Selector{
		rules:        rules,
		extensions:   extensionSet,
		specialNames: specialNameSet,
	}
}

// IsIgnoredName reports whether a single path component matches an entry of
// the ignore set. Every entry is evaluated with filepath.Match against the
// whole component, so entries without glob metacharacters degrade to exact
// name equality and substring matches never occur.
func (selector *Selector) IsIgnoredName(componentName string) bool {
	for _, patternValue := range selector.rules.IgnoreNames {
		isMatched, matchError := filepath.Match(patternValue, componentName)
		if matchError == nil && isMatched {
			return true
		}
	}
	return false
}

// IsEligibleFile reports whether the slash-normalized relative path names a
// file that should be collected: its extension belongs to the extension set
// or its filename belongs to the special-name set, and no path component
// matches the ignore set. Extension matching is case-sensitive.
func (selector *Selector) IsEligibleFile(relativePath string) bool {
	normalizedPath := filepath.ToSlash(relativePath)
	fileName := normalizedPath
	if separatorIndex := strings.LastIndex(normalizedPath, pathSegmentSeparator); separatorIndex >= 0 {
		fileName = normalizedPath[separatorIndex+1:]
	}

	_, isSpecialName := selector.specialNames[fileName]
	_, isAllowedExtension := selector.extensions[filepath.Ext(fileName)]
	if !isSpecialName && !isAllowedExtension {
		return false
	}

	for _, pathComponent := range strings.Split(normalizedPath, pathSegmentSeparator) {
		if selector.IsIgnoredName(pathComponent) {
			return false
		}
	}
	return true
}
