// Package document assembles the final gathered-code text artifact.
package document

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	// bannerWidth is the width of every rule line in the document.
	bannerWidth = 80
	// sectionBannerGlyph delimits the project header and the FILES section.
	sectionBannerGlyph = "="
	// fileBannerGlyph delimits each per-file section.
	fileBannerGlyph = "#"
	// filesSectionTitle names the concatenated-content section.
	filesSectionTitle = "FILES"
	// projectHeaderFormat names the project in the document header.
	projectHeaderFormat = "PROJECT: %s"
	// filePathHeaderFormat names the file inside its banner.
	filePathHeaderFormat = "%s %s"
	// outputFileMode is the permission set of the written artifact.
	outputFileMode = 0o644
)

// Build assembles the complete document: a project banner, the rendered tree,
// a FILES banner, then every collected file in sorted path order under a
// per-file banner. The whole document is held in memory and returned as one
// string; nothing is streamed.
func Build(projectName string, treeLines []string, files map[string]string) string {
	sectionBanner := strings.Repeat(sectionBannerGlyph, bannerWidth)
	fileBanner := strings.Repeat(fileBannerGlyph, bannerWidth)

	documentLines := []string{
		sectionBanner,
		fmt.Sprintf(projectHeaderFormat, projectName),
		sectionBanner,
		"",
	}
	documentLines = append(documentLines, treeLines...)
	documentLines = append(documentLines,
		"",
		sectionBanner,
		filesSectionTitle,
		sectionBanner,
		"",
	)

	sortedPaths := make([]string, 0, len(files))
	for relativePath := range files {
		sortedPaths = append(sortedPaths, relativePath)
	}
	sort.Strings(sortedPaths)

	for _, relativePath := range sortedPaths {
		documentLines = append(documentLines,
			"",
			fileBanner,
			fmt.Sprintf(filePathHeaderFormat, fileBannerGlyph, relativePath),
			fileBanner,
			"",
			files[relativePath],
		)
	}

	return strings.Join(documentLines, "\n")
}

// Write stores the assembled document at outputPath in a single write,
// overwriting any previous artifact without prompting. A write failure is the
// one fatal error of the pipeline and is returned to the invoker.
func Write(outputPath string, documentText string) error {
	if writeError := os.WriteFile(outputPath, []byte(documentText), outputFileMode); writeError != nil {
		return fmt.Errorf("writing output file %s: %w", outputPath, writeError)
	}
	return nil
}
