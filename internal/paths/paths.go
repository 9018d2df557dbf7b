// Package paths finds the SQL files a run should consider and decodes them.
package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// IgnoreFile is the per-directory exclusion file.
const IgnoreFile = ".sqlfluffignore"

// Expand returns the files under root whose names end with one of exts,
// skipping anything excluded by an IgnoreFile in root or a directory below
// it. Extensions match case-insensitively and may span several dots, as in
// ".sql.j2". A root that names a file is returned as is. Output is sorted.
func Expand(root string, exts []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{filepath.Clean(root)}, nil
	}

	lower := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			lower = append(lower, ext)
		}
	}

	ig := newIgnorer(root)
	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && ig.ignored(path, true) {
				return filepath.SkipDir
			}
			return ig.load(path)
		}
		if !hasExt(d.Name(), lower) || ig.ignored(path, false) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}

func hasExt(name string, exts []string) bool {
	name = strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}

// ExpandAll expands each root with the extensions extsFor returns for it
// and merges the results, dropping duplicates, so overlapping roots such as
// "." and "./a.sql" yield each file once. Failing roots are reported
// together after the others are expanded.
func ExpandAll(roots []string, extsFor func(root string) ([]string, error)) ([]string, error) {
	var all []string
	var errs []error
	for _, root := range roots {
		exts, err := extsFor(root)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files, err := Expand(root, exts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, files...)
	}
	slices.Sort(all)
	return slices.Compact(all), errors.Join(errs...)
}

// Exts returns an extsFor function that gives every root the same list.
func Exts(exts []string) func(string) ([]string, error) {
	return func(string) ([]string, error) { return exts, nil }
}
