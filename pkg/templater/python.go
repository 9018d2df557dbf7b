package templater

import (
	"context"
	"strings"

	"github.com/leapstack-labs/gofluff/internal/config"
)

// Python substitutes `{name}` placeholders from templater:python:context.
// `{{` and `}}` produce literal braces.
type Python struct{}

// Name implements Templater.
func (Python) Name() string { return "python" }

// Description implements Templater.
func (Python) Description() string { return "python format-string placeholders filled from the configured context" }

// Process implements Templater.
func (Python) Process(ctx context.Context, in, fname string, cfg *config.FluffConfig) (*TemplatedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	settings, err := cfg.Templater()
	if err != nil {
		return nil, err
	}
	values := settings.Python.Context

	f := &TemplatedFile{FileName: fname, Source: in}
	var b strings.Builder
	litStart := 0 // source start of the pending literal run
	litOut := 0   // templated start of the pending literal run

	flush := func(end int) {
		if b.Len() > litOut || end > litStart {
			f.Slices = append(f.Slices, Slice{
				Kind:           SliceLiteral,
				SourceStart:    litStart,
				SourceEnd:      end,
				TemplatedStart: litOut,
				TemplatedEnd:   b.Len(),
			})
		}
	}
	fail := func(offset int, msg string) error {
		line, col := lineCol(in, offset)
		return &RenderError{File: fname, Line: line, Column: col, Msg: msg}
	}

	for i := 0; i < len(in); i++ {
		c := in[i]
		switch {
		case (c == '{' || c == '}') && i+1 < len(in) && in[i+1] == c:
			flush(i)
			f.Slices = append(f.Slices, Slice{
				Kind:           SliceEscaped,
				SourceStart:    i,
				SourceEnd:      i + 2,
				TemplatedStart: b.Len(),
				TemplatedEnd:   b.Len() + 1,
			})
			b.WriteByte(c)
			i++
			litStart, litOut = i+1, b.Len()
		case c == '}':
			return nil, fail(i, "single '}' encountered in format string")
		case c == '{':
			end := strings.IndexByte(in[i:], '}')
			if end < 0 {
				return nil, fail(i, "unmatched '{' in format string")
			}
			name := strings.TrimSpace(in[i+1 : i+end])
			if name == "" || strings.ContainsAny(name, "{ \t\n") {
				return nil, fail(i, "invalid placeholder {"+name+"}")
			}
			val, ok := values[name]
			if !ok {
				// cfg keys are case-folded when parsed.
				val, ok = values[strings.ToLower(name)]
			}
			if !ok {
				return nil, fail(i, "undefined placeholder {"+name+"}")
			}

			flush(i)
			start := b.Len()
			b.WriteString(config.FormatValue(val))
			f.Slices = append(f.Slices, Slice{
				Kind:           SliceTemplated,
				SourceStart:    i,
				SourceEnd:      i + end + 1,
				TemplatedStart: start,
				TemplatedEnd:   b.Len(),
			})
			i += end
			litStart, litOut = i+1, b.Len()
		default:
			b.WriteByte(c)
		}
	}
	flush(len(in))

	f.Templated = b.String()
	return f, nil
}
