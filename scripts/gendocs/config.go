package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	intconfig "github.com/leapstack-labs/gofluff/internal/config"
)

// generateConfigDocs writes the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")
	return nil
}

// generateConfigurationDoc documents the file lookup order, the rule
// options with their valid values and the full default configuration.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "sqlfluff configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("Configuration is read from these files in every directory between the project root and the file being processed. Later files and deeper directories win:")
	files := make([]string, len(intconfig.FileNames))
	for i, name := range intconfig.FileNames {
		files[i] = InlineCode(name)
	}
	w.BulletList(files)
	w.Paragraph("Values from " + InlineCode("--config") + " files, the environment, command-line flags and inline " +
		InlineCode("-- sqlfluff:key:value") + " comments are applied on top, in that order.")

	w.Header(2, "Rule Options")
	w.Paragraph("Options shared between rules. Each can be set in " + InlineCode("[sqlfluff:rules]") +
		" for every rule or in " + InlineCode("[sqlfluff:rules:<code>]") + " for one.")

	names := make([]string, 0, len(intconfig.ConfigInfo))
	for name := range intconfig.ConfigInfo {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows [][]string
	for _, name := range names {
		info := intconfig.ConfigInfo[name]
		rows = append(rows, []string{InlineCode(name), validValues(info), cleanDescription(info.Definition)})
	}
	w.Table([]string{"Option", "Values", "Description"}, rows)

	w.Header(2, "Defaults")
	w.CodeBlock("ini", intconfig.DefaultConfigText())

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

func validValues(info intconfig.OptionInfo) string {
	switch {
	case info.ValidatesType == "int":
		return "integer"
	case info.ValidatesType == "bool":
		return InlineCode("True") + ", " + InlineCode("False")
	case len(info.ValidOptions) > 0:
		vals := make([]string, len(info.ValidOptions))
		for i, v := range info.ValidOptions {
			vals[i] = InlineCode(intconfig.FormatValue(v))
		}
		return strings.Join(vals, ", ")
	default:
		return "text"
	}
}
