// Package main compares the reserved keywords of the built-in dialects with
// the vendor documentation and reports words the dialects do not know.
//
// Usage:
//
//	go run ./scripts/auditkeywords -dialect=snowflake
//	go run ./scripts/auditkeywords -dialect=databricks -file=reserved.html
//	go run ./scripts/auditkeywords -dialect=all -strict
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/leapstack-labs/gofluff/pkg/dialect"
	_ "github.com/leapstack-labs/gofluff/pkg/dialects/builtin"
)

// source describes where a dialect's reserved words are documented.
type source struct {
	url   string
	parse func(body []byte) ([]string, error)
}

var sources = map[string]source{
	"snowflake": {
		url:   "https://docs.snowflake.com/en/sql-reference/reserved-keywords",
		parse: parseKeywordTable,
	},
	"databricks": {
		url:   "https://docs.databricks.com/aws/en/sql/language-manual/sql-ref-reserved-words",
		parse: parseKeywordSections,
	},
}

var (
	dialectFlag = flag.String("dialect", "all", "dialect to audit: snowflake, databricks, all")
	fileFlag    = flag.String("file", "", "read the documentation page from a saved file instead of fetching it")
	strictFlag  = flag.Bool("strict", false, "exit non-zero when differences are found")
)

func main() {
	flag.Parse()

	names := []string{*dialectFlag}
	if *dialectFlag == "all" {
		if *fileFlag != "" {
			log.Fatal("-file needs a single -dialect")
		}
		names = names[:0]
		for name := range sources {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	differences := 0
	for _, name := range names {
		report, err := audit(context.Background(), name, *fileFlag)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		report.print(os.Stdout)
		differences += len(report.Unknown) + len(report.Unreserved)
	}
	if *strictFlag && differences > 0 {
		os.Exit(1)
	}
}

// Report lists the documented reserved words a dialect handles differently.
type Report struct {
	Dialect string
	// Documented is the number of reserved words in the documentation.
	Documented int
	// Unknown words are neither reserved nor unreserved in the dialect.
	Unknown []string
	// Unreserved words are keywords the dialect does not reserve.
	Unreserved []string
}

func (r Report) print(w io.Writer) {
	fmt.Fprintf(w, "%s: %d documented reserved words\n", r.Dialect, r.Documented)
	if len(r.Unknown) == 0 && len(r.Unreserved) == 0 {
		fmt.Fprintln(w, "  up to date")
		return
	}
	if len(r.Unknown) > 0 {
		fmt.Fprintf(w, "  unknown (%d): %s\n", len(r.Unknown), strings.Join(r.Unknown, ", "))
	}
	if len(r.Unreserved) > 0 {
		fmt.Fprintf(w, "  not reserved (%d): %s\n", len(r.Unreserved), strings.Join(r.Unreserved, ", "))
	}
}

func audit(ctx context.Context, name, file string) (Report, error) {
	src, ok := sources[name]
	if !ok {
		return Report{}, fmt.Errorf("no documentation source for dialect %q", name)
	}
	d, ok := dialect.Get(name)
	if !ok {
		return Report{}, fmt.Errorf("dialect %q is not registered", name)
	}

	var body []byte
	var err error
	if file != "" {
		body, err = os.ReadFile(file)
	} else {
		log.Printf("Fetching %s", src.url)
		body, err = fetchURL(ctx, src.url)
	}
	if err != nil {
		return Report{}, err
	}

	documented, err := src.parse(body)
	if err != nil {
		return Report{}, fmt.Errorf("failed to parse keywords page: %w", err)
	}
	return compare(d, documented), nil
}

// compare reports the documented words d does not reserve.
func compare(d *dialect.Dialect, documented []string) Report {
	r := Report{Dialect: d.Name, Documented: len(documented)}
	for _, word := range documented {
		switch {
		case d.IsReserved(word):
		case d.IsKeyword(word):
			r.Unreserved = append(r.Unreserved, word)
		default:
			r.Unknown = append(r.Unknown, word)
		}
	}
	return r
}

func fetchURL(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; gofluff/1.0; +https://github.com/leapstack-labs/gofluff)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// keywordPattern matches a single upper-case SQL keyword.
var keywordPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// parseKeywordTable reads the first cell of every table row. Single
// letters are the alphabet headings of the table.
func parseKeywordTable(body []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "tr" {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "td" {
				kw := strings.ToUpper(strings.TrimSpace(extractText(c)))
				if len(kw) > 1 && keywordPattern.MatchString(kw) {
					set[kw] = true
				}
				return
			}
		}
	})
	return sortedSet(set), nil
}

// parseKeywordSections reads list items, and comma separated paragraphs,
// under headings mentioning reserved words.
func parseKeywordSections(body []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	inSection := false
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "h2", "h3":
			inSection = strings.Contains(strings.ToLower(extractText(n)), "reserved words")
		case "li", "p":
			if !inSection {
				return
			}
			for _, part := range strings.Split(extractText(n), ",") {
				kw := strings.TrimSpace(part)
				if len(kw) > 1 && keywordPattern.MatchString(kw) {
					set[kw] = true
				}
			}
		}
	})
	return sortedSet(set), nil
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func extractText(n *html.Node) string {
	var buf bytes.Buffer
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	})
	return buf.String()
}

func sortedSet(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
