// Package templater turns templated SQL files into plain SQL while keeping a
// mapping from the rendered text back to the source.
package templater

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/gofluff/internal/config"
)

// Templater renders one file.
type Templater interface {
	// Name is the value of the `templater` config key that selects it.
	Name() string
	// Description is a one-line summary for listings.
	Description() string
	Process(ctx context.Context, in, fname string, cfg *config.FluffConfig) (*TemplatedFile, error)
}

// SliceKind classifies a region of a templated file.
type SliceKind string

// SliceKind values.
const (
	SliceLiteral   SliceKind = "literal"
	SliceTemplated SliceKind = "templated"
	SliceComment   SliceKind = "comment"
	SliceBlock     SliceKind = "block"
	SliceEscaped   SliceKind = "escaped"
)

// Slice maps source bytes [SourceStart, SourceEnd) onto templated bytes
// [TemplatedStart, TemplatedEnd).
type Slice struct {
	Kind           SliceKind `json:"kind" yaml:"kind"`
	SourceStart    int       `json:"source_start" yaml:"source_start"`
	SourceEnd      int       `json:"source_end" yaml:"source_end"`
	TemplatedStart int       `json:"templated_start" yaml:"templated_start"`
	TemplatedEnd   int       `json:"templated_end" yaml:"templated_end"`
}

// TemplatedFile is the result of rendering a file.
type TemplatedFile struct {
	FileName  string  `json:"file" yaml:"file"`
	Source    string  `json:"-" yaml:"-"`
	Templated string  `json:"templated" yaml:"templated"`
	Slices    []Slice `json:"slices,omitempty" yaml:"slices,omitempty"`
}

// literalFile is the identity rendering of src.
func literalFile(src, fname string) *TemplatedFile {
	f := &TemplatedFile{FileName: fname, Source: src, Templated: src}
	if src != "" {
		f.Slices = []Slice{{Kind: SliceLiteral, SourceEnd: len(src), TemplatedEnd: len(src)}}
	}
	return f
}

// SourceOffset maps an offset in the templated text back to the source.
// Offsets inside templated regions map to the start of the tag that
// produced them.
func (f *TemplatedFile) SourceOffset(templated int) int {
	for _, s := range f.Slices {
		if templated < s.TemplatedStart || templated >= s.TemplatedEnd {
			continue
		}
		if s.Kind == SliceLiteral {
			return s.SourceStart + templated - s.TemplatedStart
		}
		return s.SourceStart
	}
	return len(f.Source)
}

// IsTemplated reports whether the templated offset came from an expression
// rather than literal source text.
func (f *TemplatedFile) IsTemplated(templated int) bool {
	for _, s := range f.Slices {
		if templated >= s.TemplatedStart && templated < s.TemplatedEnd {
			return s.Kind != SliceLiteral && s.Kind != SliceEscaped
		}
	}
	return false
}

// RenderError reports a templating failure at a source position. Line is
// zero when the failure has no position, such as bad configuration.
type RenderError struct {
	File   string
	Line   int
	Column int
	Msg    string
	Cause  error
}

func (e *RenderError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func (e *RenderError) Unwrap() error { return e.Cause }

// lineCol returns the 1-based line and rune column of a byte offset.
func lineCol(src string, offset int) (int, int) {
	offset = min(offset, len(src))
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return line, len([]rune(before[lineStart:])) + 1
}

// Render selects the templater named by cfg and processes in with it,
// then applies unwrap_wrapped_queries.
func Render(ctx context.Context, in, fname string, cfg *config.FluffConfig) (*TemplatedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := ForConfig(cfg)
	if err != nil {
		return nil, err
	}
	f, err := t.Process(ctx, in, fname, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.GetBool("unwrap_wrapped_queries", "templater") {
		unwrap(f)
	}
	return f, nil
}

// unwrap strips one pair of parentheses enclosing the whole query.
func unwrap(f *TemplatedFile) {
	text := f.Templated
	open := strings.IndexFunc(text, notSpace)
	closeIdx := strings.LastIndexFunc(text, notSpace)
	if open < 0 || text[open] != '(' || text[closeIdx] != ')' || matchingParen(text, open) != closeIdx {
		return
	}

	inner := text[open+1 : closeIdx]
	shift := open + 1
	kept := make([]Slice, 0, len(f.Slices))
	for _, s := range f.Slices {
		s.TemplatedStart = clamp(s.TemplatedStart-shift, 0, len(inner))
		s.TemplatedEnd = clamp(s.TemplatedEnd-shift, 0, len(inner))
		if s.Kind == SliceLiteral && s.TemplatedStart == s.TemplatedEnd && s.SourceEnd > s.SourceStart {
			continue
		}
		kept = append(kept, s)
	}
	f.Templated = inner
	f.Slices = kept
}

func notSpace(r rune) bool {
	return r != ' ' && r != '\t' && r != '\n' && r != '\r'
}

// matchingParen returns the index of the parenthesis closing text[open],
// skipping quoted strings, or -1.
func matchingParen(text string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
