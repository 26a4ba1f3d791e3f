// Package collector walks a root directory and reads every eligible file.
package collector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/osokin/gather/internal/selection"
	"github.com/osokin/gather/internal/types"
	"github.com/osokin/gather/internal/utils"
)

const (
	// readErrorPlaceholderFormat is stored as file content when a read fails.
	readErrorPlaceholderFormat = "Error reading %s"
	// warningAccessFormat reports a path that could not be visited.
	warningAccessFormat = "cannot access: %v"
	// warningReadFormat reports a file that could not be read.
	warningReadFormat = "cannot read: %v"
)

// Collector gathers the contents of every eligible file under a root
// directory in a single sequential pass.
type Collector struct {
	selector *selection.Selector
}

// NewCollector constructs a Collector using the provided selector.
func NewCollector(selector *selection.Selector) *Collector {
	return &Collector{selector: selector}
}

// Collect returns the mapping from slash-normalized relative path to file
// content for every eligible file reachable from rootDirectoryPath. Ignored
// directories are pruned before descent, so excluded trees such as dependency
// caches are never traversed. A file whose read fails is still present in
// the collection with a placeholder naming the failure; the walk continues.
func (fileCollector *Collector) Collect(rootDirectoryPath string) (types.FileCollection, []types.Warning, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, nil, fmt.Errorf("getting absolute path for %s: %w", rootDirectoryPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	collection := types.FileCollection{}
	var warnings []types.Warning

	walkError := filepath.WalkDir(cleanedRootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		relativePath := utils.RelativePathOrSelf(walkedPath, cleanedRootPath)
		if accessError != nil {
			warnings = append(warnings, types.Warning{
				Path:    relativePath,
				Message: fmt.Sprintf(warningAccessFormat, accessError),
			})
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if relativePath == "." {
			return nil
		}

		if directoryEntry.IsDir() {
			if fileCollector.selector.IsIgnoredName(directoryEntry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !fileCollector.selector.IsEligibleFile(relativePath) {
			return nil
		}

		fileBytes, fileReadError := os.ReadFile(walkedPath)
		if fileReadError != nil {
			collection[relativePath] = fmt.Sprintf(readErrorPlaceholderFormat, relativePath)
			warnings = append(warnings, types.Warning{
				Path:    relativePath,
				Message: fmt.Sprintf(warningReadFormat, fileReadError),
			})
			return nil
		}
		collection[relativePath] = string(fileBytes)
		return nil
	})
	if walkError != nil {
		return nil, nil, walkError
	}

	return collection, warnings, nil
}

// ReadErrorPlaceholder returns the content stored for a file whose read failed.
func ReadErrorPlaceholder(relativePath string) string {
	return fmt.Sprintf(readErrorPlaceholderFormat, relativePath)
}
