// Package tree renders a directory subtree as connector-prefixed ASCII lines.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/osokin/gather/internal/selection"
	"github.com/osokin/gather/internal/types"
)

const (
	branchConnector   = "├── "
	terminalConnector = "└── "
	continuationInfix = "│   "
	blankInfix        = "    "

	// warningListFormat reports a directory whose children could not be listed.
	warningListFormat = "cannot list: %v"
)

// Renderer produces the ASCII structure listing for a directory subtree.
type Renderer struct {
	selector *selection.Selector
}

// NewRenderer constructs a Renderer using the provided selector.
func NewRenderer(selector *selection.Selector) *Renderer {
	return &Renderer{selector: selector}
}

// workItem is one pending entry of the traversal stack.
type workItem struct {
	path        string
	name        string
	prefix      string
	isLast      bool
	isDirectory bool
}

// RenderLines renders the subtree rooted at startPath. Directories sort before
// files and names order case-insensitively within each group; the last sibling
// at each level uses the terminal connector and pads its descendants' prefixes
// with blanks. A directory whose listing fails renders with no children and
// contributes a warning. Traversal uses an explicit stack, so arbitrarily deep
// trees never exhaust the call stack.
func (renderer *Renderer) RenderLines(startPath string) ([]string, []types.Warning) {
	absoluteStartPath, absolutePathError := filepath.Abs(startPath)
	if absolutePathError != nil {
		absoluteStartPath = filepath.Clean(startPath)
	}
	rootName := filepath.Base(absoluteStartPath)
	if renderer.selector.IsIgnoredName(rootName) {
		return nil, nil
	}

	rootInfo, rootStatError := os.Stat(absoluteStartPath)
	rootIsDirectory := rootStatError == nil && rootInfo.IsDir()

	var lines []string
	var warnings []types.Warning

	stack := []workItem{{
		path:        absoluteStartPath,
		name:        rootName,
		prefix:      "",
		isLast:      true,
		isDirectory: rootIsDirectory,
	}}

	for len(stack) > 0 {
		currentItem := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		connector := branchConnector
		childInfix := continuationInfix
		if currentItem.isLast {
			connector = terminalConnector
			childInfix = blankInfix
		}
		lines = append(lines, currentItem.prefix+connector+currentItem.name)

		if !currentItem.isDirectory {
			continue
		}

		childEntries, listError := renderer.listChildren(currentItem.path)
		if listError != nil {
			warnings = append(warnings, types.Warning{
				Path:    currentItem.path,
				Message: fmt.Sprintf(warningListFormat, listError),
			})
			continue
		}

		childPrefix := currentItem.prefix + childInfix
		for childIndex := len(childEntries) - 1; childIndex >= 0; childIndex-- {
			childEntry := childEntries[childIndex]
			stack = append(stack, workItem{
				path:        filepath.Join(currentItem.path, childEntry.Name()),
				name:        childEntry.Name(),
				prefix:      childPrefix,
				isLast:      childIndex == len(childEntries)-1,
				isDirectory: childEntry.IsDir(),
			})
		}
	}

	return lines, warnings
}

// listChildren returns the directory's entries that survive the ignore set,
// ordered directories-first then case-insensitive by name.
func (renderer *Renderer) listChildren(directoryPath string) ([]os.DirEntry, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return nil, readDirectoryError
	}

	filteredEntries := make([]os.DirEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if renderer.selector.IsIgnoredName(directoryEntry.Name()) {
			continue
		}
		filteredEntries = append(filteredEntries, directoryEntry)
	}

	sort.SliceStable(filteredEntries, func(firstIndex, secondIndex int) bool {
		firstEntry := filteredEntries[firstIndex]
		secondEntry := filteredEntries[secondIndex]
		if firstEntry.IsDir() != secondEntry.IsDir() {
			return firstEntry.IsDir()
		}
		return strings.ToLower(firstEntry.Name()) < strings.ToLower(secondEntry.Name())
	})

	return filteredEntries, nil
}
