package paths

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	pathpkg "path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
)

type ignoreRule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// ignorer holds the rules of every ignore file seen during a walk, keyed
// by the directory that holds the file.
type ignorer struct {
	root  string
	rules map[string][]ignoreRule
}

func newIgnorer(root string) *ignorer {
	return &ignorer{root: filepath.Clean(root), rules: make(map[string][]ignoreRule)}
}

// load reads dir's ignore file, if any.
func (ig *ignorer) load(dir string) error {
	data, err := os.ReadFile(filepath.Join(dir, IgnoreFile)) //nolint:gosec // G304: dir comes from the walk
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Join(dir, IgnoreFile), err)
	}
	if rules := parseIgnore(data); len(rules) > 0 {
		ig.rules[filepath.Clean(dir)] = rules
	}
	return nil
}

// parseIgnore reads gitignore-style lines. A pattern without an inner
// slash matches at any depth; one with a slash is anchored to the
// directory of the ignore file.
func parseIgnore(data []byte) []ignoreRule {
	var rules []ignoreRule
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var r ignoreRule
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimRight(line, "/")
		}
		if line == "" {
			continue
		}
		r.anchored = strings.Contains(line, "/")
		r.pattern = strings.TrimPrefix(line, "/")
		rules = append(rules, r)
	}
	return rules
}

// ignored reports whether path is excluded. Rules from deeper ignore files
// are applied after shallower ones; the last matching rule decides.
func (ig *ignorer) ignored(path string, isDir bool) bool {
	path = filepath.Clean(path)
	var chain []string
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		chain = append(chain, dir)
		if dir == ig.root || dir == filepath.Dir(dir) {
			break
		}
	}

	excluded := false
	for i := len(chain) - 1; i >= 0; i-- {
		dir := chain[i]
		rules := ig.rules[dir]
		if len(rules) == 0 {
			continue
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		for _, r := range rules {
			if r.dirOnly && !isDir {
				continue
			}
			name := rel
			if !r.anchored {
				name = pathpkg.Base(rel)
			}
			if ok, err := doublestar.Match(r.pattern, name); err == nil && ok {
				excluded = !r.negate
			}
		}
	}
	return excluded
}
