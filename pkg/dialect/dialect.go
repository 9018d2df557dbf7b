// Package dialect provides SQL dialect definitions: keyword sets and the
// named grammars the statement splitter matches against.
//
// Concrete dialects are registered from pkg/dialects/*/ packages. A dialect
// usually starts as a copy of another one (postgres extends ansi) and
// adds or replaces keywords and grammars.
package dialect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/gofluff/pkg/grammar"
)

// Dialect is a named SQL variant.
type Dialect struct {
	Name        string
	Description string
	// Inherits names the dialect this one was copied from, if any.
	Inherits string
	// HashComments enables "#" line comments in the lexer.
	HashComments bool

	reserved   map[string]struct{}
	unreserved map[string]struct{}
	library    map[string]grammar.Matcher
}

var _ grammar.Library = (*Dialect)(nil)

// Ref resolves a named grammar.
func (d *Dialect) Ref(name string) (grammar.Matcher, bool) {
	m, ok := d.library[name]
	return m, ok
}

// IsKeyword reports whether word is a reserved or unreserved keyword.
func (d *Dialect) IsKeyword(word string) bool {
	w := strings.ToUpper(word)
	_, r := d.reserved[w]
	_, u := d.unreserved[w]
	return r || u
}

// IsReserved reports whether word is a reserved keyword.
func (d *Dialect) IsReserved(word string) bool {
	_, ok := d.reserved[strings.ToUpper(word)]
	return ok
}

// ReservedKeywords returns the reserved keywords, sorted.
func (d *Dialect) ReservedKeywords() []string {
	return sortedKeys(d.reserved)
}

// UnreservedKeywords returns the unreserved keywords, sorted.
func (d *Dialect) UnreservedKeywords() []string {
	return sortedKeys(d.unreserved)
}

// Grammars returns the names of the grammars in the library, sorted.
func (d *Dialect) Grammars() []string {
	return sortedKeys(d.library)
}

// Copy starts a new dialect called name from d's keywords and grammars.
func (d *Dialect) Copy(name string) *Builder {
	b := NewDialect(name)
	b.dialect.Inherits = d.Name
	b.dialect.Description = d.Description
	b.dialect.HashComments = d.HashComments
	for k := range d.reserved {
		b.dialect.reserved[k] = struct{}{}
	}
	for k := range d.unreserved {
		b.dialect.unreserved[k] = struct{}{}
	}
	for k, v := range d.library {
		b.dialect.library[k] = v
	}
	return b
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name:       name,
			reserved:   make(map[string]struct{}),
			unreserved: make(map[string]struct{}),
			library:    make(map[string]grammar.Matcher),
		},
	}
}

// Describe sets a one-line description.
func (b *Builder) Describe(desc string) *Builder {
	b.dialect.Description = desc
	return b
}

// WithHashComments makes the lexer treat "#" as a line comment.
func (b *Builder) WithHashComments() *Builder {
	b.dialect.HashComments = true
	return b
}

// Reserved adds reserved keywords. A word cannot be both reserved and
// unreserved; adding it here removes it from the unreserved set.
func (b *Builder) Reserved(words ...string) *Builder {
	for _, w := range words {
		w = strings.ToUpper(w)
		delete(b.dialect.unreserved, w)
		b.dialect.reserved[w] = struct{}{}
	}
	return b
}

// Unreserved adds unreserved keywords, removing them from the reserved set.
func (b *Builder) Unreserved(words ...string) *Builder {
	for _, w := range words {
		w = strings.ToUpper(w)
		delete(b.dialect.reserved, w)
		b.dialect.unreserved[w] = struct{}{}
	}
	return b
}

// Grammar adds or replaces a named grammar.
func (b *Builder) Grammar(name string, m grammar.Matcher) *Builder {
	b.dialect.library[name] = m
	return b
}

// ExtendGrammar appends options to an inherited AnyNumberOf/OneOf grammar.
// It panics if name is missing or is not such a grammar; dialects are
// built at init time, where that is a programming error.
func (b *Builder) ExtendGrammar(name string, insert ...grammar.Matcher) *Builder {
	existing, ok := b.dialect.library[name].(*grammar.AnyOf)
	if !ok {
		panic(fmt.Sprintf("dialect %s: grammar %q is not an AnyOf grammar", b.dialect.Name, name))
	}
	b.dialect.library[name] = existing.Copy(insert...)
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
