package lint

import "strings"

// DocsBaseURL is the rule reference that DocURL links into. Trailing
// slashes are ignored.
var DocsBaseURL = "https://docs.sqlfluff.com/en/stable/rules.html"

// BuildDocURL returns the reference anchor for a rule code.
func BuildDocURL(code string) string {
	return strings.TrimRight(DocsBaseURL, "/") + "#sqlfluff.rules.Rule_" + strings.ToUpper(code)
}
