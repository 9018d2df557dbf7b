package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	intconfig "github.com/leapstack-labs/gofluff/internal/config"
	"github.com/leapstack-labs/gofluff/pkg/lint"
	_ "github.com/leapstack-labs/gofluff/pkg/lint/rules"
)

// categoryDescriptions provides human-readable descriptions for rule categories.
var categoryDescriptions = map[string]string{
	"aliasing":       "Rules about alias usage and naming conventions.",
	"ambiguous":      "Rules about SQL constructs whose meaning depends on the reader or the engine.",
	"capitalisation": "Rules about the case of keywords, identifiers, functions and literals.",
	"convention":     "Rules about SQL coding conventions and style consistency.",
	"jinja":          "Rules about the formatting of template tags.",
	"layout":         "Rules about whitespace, indentation, line length and line breaks.",
	"references":     "Rules about column and table references in queries.",
	"structure":      "Rules about SQL query structure and organization.",
}

// generateRulesDocs writes an index page and one page per rule category.
func generateRulesDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	grouped := groupRulesByCategory(lint.All())
	categories := make([]string, 0, len(grouped))
	for c := range grouped {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	if err := generateRulesIndex(outDir, categories, grouped); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	defaults := intconfig.Defaults()
	for _, cat := range categories {
		if err := generateCategoryPage(outDir, cat, grouped[cat], defaults); err != nil {
			return err
		}
		log.Printf("  Generated %s.md", cat)
	}
	return nil
}

// generateRulesIndex generates the rules overview page.
func generateRulesIndex(outDir string, categories []string, grouped map[string][]lint.RuleInfo) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Lint rule catalogue")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("gofluff knows **%d rules**. Rules marked core are enabled by the %s group.", lint.Count(), InlineCode("core")))

	w.Header(2, "Selecting Rules")
	w.Paragraph("The rules and exclude_rules settings take codes, names, groups or glob patterns. Exclusions win:")
	w.CodeBlock("ini", `[sqlfluff]
rules = core,L034
exclude_rules = L016,layout.*`)
	w.Paragraph("A single line can be silenced with a noqa comment:")
	w.CodeBlock("sql", `SELECT a.Col FROM tbl a  -- noqa: L010,L014
-- noqa: disable=L016
-- noqa: enable=all`)

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode(lint.SeverityError.String()), "Critical issue that should be fixed"},
			{InlineCode(lint.SeverityWarning.String()), "Potential issue that should be reviewed"},
			{InlineCode(lint.SeverityInfo.String()), "Informational feedback"},
			{InlineCode(lint.SeverityHint.String()), "Suggestion for improvement"},
		},
	)
	w.Paragraph("Override a default with " + InlineCode("severity") + " in the rule's section.")

	w.Header(2, "Categories")
	var rows [][]string
	for _, cat := range categories {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/rules/%s)", capitalizeFirst(cat), cat),
			fmt.Sprint(len(grouped[cat])),
			categoryDescriptions[cat],
		})
	}
	w.Table([]string{"Category", "Rules", "Description"}, rows)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateCategoryPage documents every rule in one category.
func generateCategoryPage(outDir, category string, rules []lint.RuleInfo, defaults *intconfig.FluffConfig) error {
	w := NewMarkdownWriter()

	title := capitalizeFirst(category) + " Rules"
	w.Frontmatter(title, categoryDescriptions[category])
	w.GeneratedMarker()

	w.Header(1, title)
	if desc, ok := categoryDescriptions[category]; ok {
		w.Paragraph(desc)
	}
	for _, rule := range rules {
		writeRuleDoc(w, rule, defaults)
	}

	return os.WriteFile(filepath.Join(outDir, category+".md"), w.Bytes(), 0600)
}

// groupRulesByCategory organizes rules by category, sorted by code.
func groupRulesByCategory(rules []lint.RuleInfo) map[string][]lint.RuleInfo {
	grouped := make(map[string][]lint.RuleInfo)
	for _, r := range rules {
		grouped[r.Category()] = append(grouped[r.Category()], r)
	}
	for cat := range grouped {
		sort.Slice(grouped[cat], func(i, j int) bool {
			return grouped[cat][i].Code < grouped[cat][j].Code
		})
	}
	return grouped
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.RuleInfo, defaults *intconfig.FluffConfig) {
	w.Line(fmt.Sprintf("## %s - %s {#%s}", rule.Code, rule.Name, rule.Code))
	w.Newline()

	core := ""
	if rule.InGroup(lint.GroupCore) {
		core = " | " + Bold("Core")
	}
	w.Line(fmt.Sprintf("**Severity:** %s%s", InlineCode(rule.Severity.String()), core))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description))

	if rule.BadExample != "" {
		w.Header(3, "Anti-pattern")
		w.CodeBlock("sql", rule.BadExample)
	}
	if rule.GoodExample != "" {
		w.Header(3, "Best practice")
		w.CodeBlock("sql", rule.GoodExample)
	}

	opts := lint.OptionsFor(defaults, rule.Code)
	if keys := opts.Keys(); len(keys) > 0 {
		w.Header(3, "Configuration")
		var rows [][]string
		for _, k := range keys {
			desc := ""
			if info, ok := intconfig.ConfigInfo[k]; ok {
				desc = cleanDescription(info.Definition)
			}
			rows = append(rows, []string{InlineCode(k), InlineCode(intconfig.FormatValue(opts[k])), desc})
		}
		w.Table([]string{"Option", "Default", "Description"}, rows)
	}

	w.Line("---")
	w.Newline()
}
