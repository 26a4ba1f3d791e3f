package tree_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osokin/gather/internal/config"
	"github.com/osokin/gather/internal/selection"
	"github.com/osokin/gather/internal/tree"
)

// writeTestFile creates a file with the specified content, failing the test on error.
func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write %s: %v", filePath, writeError)
	}
}

// makeTestDirectory creates a directory, failing the test on error.
func makeTestDirectory(testingHandle *testing.T, directoryPath string) {
	testingHandle.Helper()
	if makeDirError := os.MkdirAll(directoryPath, 0o755); makeDirError != nil {
		testingHandle.Fatalf("failed to create %s: %v", directoryPath, makeDirError)
	}
}

// newDefaultRenderer constructs a renderer with the built-in selection rules.
func newDefaultRenderer() *tree.Renderer {
	return tree.NewRenderer(selection.NewSelector(config.DefaultSelectionRules()))
}

// TestRenderLinesDirectoriesBeforeFiles verifies the directories-first ordering rule.
func TestRenderLinesDirectoriesBeforeFiles(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "b.txt"), "")
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "z"))

	renderedLines, renderWarnings := newDefaultRenderer().RenderLines(rootDirectory)
	if len(renderWarnings) != 0 {
		testingHandle.Fatalf("expected no warnings, got %v", renderWarnings)
	}
	expectedLines := []string{
		"└── " + filepath.Base(rootDirectory),
		"    ├── z",
		"    └── b.txt",
	}
	if strings.Join(renderedLines, "\n") != strings.Join(expectedLines, "\n") {
		testingHandle.Fatalf("unexpected rendering:\n%s\nwant:\n%s", strings.Join(renderedLines, "\n"), strings.Join(expectedLines, "\n"))
	}
}

// TestRenderLinesSingleChildUsesTerminalConnector verifies that an only child renders with the terminal connector.
func TestRenderLinesSingleChildUsesTerminalConnector(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "only.md"), "")

	renderedLines, _ := newDefaultRenderer().RenderLines(rootDirectory)
	if len(renderedLines) != 2 {
		testingHandle.Fatalf("expected two lines, got %v", renderedLines)
	}
	if renderedLines[1] != "    └── only.md" {
		testingHandle.Fatalf("expected terminal connector for the only child, got %q", renderedLines[1])
	}
}

// TestRenderLinesNestedPrefixes verifies continuation and blank prefixes across levels.
func TestRenderLinesNestedPrefixes(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "alpha"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "alpha", "inner.go"), "")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "last.go"), "")

	renderedLines, _ := newDefaultRenderer().RenderLines(rootDirectory)
	expectedLines := []string{
		"└── " + filepath.Base(rootDirectory),
		"    ├── alpha",
		"    │   └── inner.go",
		"    └── last.go",
	}
	if strings.Join(renderedLines, "\n") != strings.Join(expectedLines, "\n") {
		testingHandle.Fatalf("unexpected rendering:\n%s\nwant:\n%s", strings.Join(renderedLines, "\n"), strings.Join(expectedLines, "\n"))
	}
}

// TestRenderLinesCaseInsensitiveOrdering verifies case-insensitive name ordering within a group.
func TestRenderLinesCaseInsensitiveOrdering(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "Beta.go"), "")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "alpha.go"), "")

	renderedLines, _ := newDefaultRenderer().RenderLines(rootDirectory)
	expectedLines := []string{
		"└── " + filepath.Base(rootDirectory),
		"    ├── alpha.go",
		"    └── Beta.go",
	}
	if strings.Join(renderedLines, "\n") != strings.Join(expectedLines, "\n") {
		testingHandle.Fatalf("unexpected rendering:\n%s\nwant:\n%s", strings.Join(renderedLines, "\n"), strings.Join(expectedLines, "\n"))
	}
}

// TestRenderLinesPrunesIgnoredEntries verifies that ignored names never appear in the tree.
func TestRenderLinesPrunesIgnoredEntries(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	makeTestDirectory(testingHandle, filepath.Join(rootDirectory, "node_modules"))
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "server.log"), "")
	writeTestFile(testingHandle, filepath.Join(rootDirectory, "main.go"), "")

	renderedLines, _ := newDefaultRenderer().RenderLines(rootDirectory)
	joinedOutput := strings.Join(renderedLines, "\n")
	if strings.Contains(joinedOutput, "node_modules") {
		testingHandle.Fatalf("rendering contains a pruned directory:\n%s", joinedOutput)
	}
	if strings.Contains(joinedOutput, "server.log") {
		testingHandle.Fatalf("rendering contains an ignored file:\n%s", joinedOutput)
	}
	if !strings.Contains(joinedOutput, "main.go") {
		testingHandle.Fatalf("rendering lost main.go:\n%s", joinedOutput)
	}
}

// TestRenderLinesDeepTree verifies that deeply nested trees render without recursion limits.
func TestRenderLinesDeepTree(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	currentDirectory := rootDirectory
	const nestingDepth = 512
	for levelIndex := 0; levelIndex < nestingDepth; levelIndex++ {
		currentDirectory = filepath.Join(currentDirectory, "d")
	}
	makeTestDirectory(testingHandle, currentDirectory)

	renderedLines, renderWarnings := newDefaultRenderer().RenderLines(rootDirectory)
	if len(renderWarnings) != 0 {
		testingHandle.Fatalf("expected no warnings, got %v", renderWarnings)
	}
	if len(renderedLines) != nestingDepth+1 {
		testingHandle.Fatalf("expected %d lines, got %d", nestingDepth+1, len(renderedLines))
	}
	lastLine := renderedLines[len(renderedLines)-1]
	if !strings.HasSuffix(lastLine, "└── d") {
		testingHandle.Fatalf("unexpected final line: %q", lastLine)
	}
}

// TestRenderLinesIgnoredRootRendersNothing verifies that a denied root yields no output.
func TestRenderLinesIgnoredRootRendersNothing(testingHandle *testing.T) {
	parentDirectory := testingHandle.TempDir()
	ignoredRootPath := filepath.Join(parentDirectory, "node_modules")
	makeTestDirectory(testingHandle, ignoredRootPath)

	renderedLines, _ := newDefaultRenderer().RenderLines(ignoredRootPath)
	if len(renderedLines) != 0 {
		testingHandle.Fatalf("expected no lines for an ignored root, got %v", renderedLines)
	}
}

// TestRenderLinesListingFailureYieldsEmptySubtree verifies the silent-subtree rule with a recorded warning.
func TestRenderLinesListingFailureYieldsEmptySubtree(testingHandle *testing.T) {
	if os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced for root")
	}

	rootDirectory := testingHandle.TempDir()
	lockedDirectoryPath := filepath.Join(rootDirectory, "locked")
	makeTestDirectory(testingHandle, lockedDirectoryPath)
	writeTestFile(testingHandle, filepath.Join(lockedDirectoryPath, "hidden.go"), "")
	if chmodError := os.Chmod(lockedDirectoryPath, 0o000); chmodError != nil {
		testingHandle.Fatalf("failed to chmod %s: %v", lockedDirectoryPath, chmodError)
	}
	testingHandle.Cleanup(func() { _ = os.Chmod(lockedDirectoryPath, 0o755) })

	renderedLines, renderWarnings := newDefaultRenderer().RenderLines(rootDirectory)
	joinedOutput := strings.Join(renderedLines, "\n")
	if !strings.Contains(joinedOutput, "locked") {
		testingHandle.Fatalf("expected the unreadable directory itself to render:\n%s", joinedOutput)
	}
	if strings.Contains(joinedOutput, "hidden.go") {
		testingHandle.Fatalf("expected no children for the unreadable directory:\n%s", joinedOutput)
	}
	if len(renderWarnings) == 0 {
		testingHandle.Fatalf("expected a warning for the unreadable directory")
	}
}
