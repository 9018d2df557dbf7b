package template

import (
	"fmt"
	"slices"

	"go.starlark.net/starlark"
)

// Macro is a {% macro %} definition exposed to expressions as a Starlark
// callable. Calling it renders its body and returns the text.
type Macro struct {
	name     string
	params   []string
	defaults []starlark.Value // nil entries are required parameters
	body     []Node
	scope    *scope
	renderer *Renderer
}

var _ starlark.Callable = (*Macro)(nil)

func (m *Macro) String() string        { return "<macro " + m.name + ">" }
func (m *Macro) Type() string          { return "macro" }
func (m *Macro) Freeze()               {}
func (m *Macro) Truth() starlark.Bool  { return starlark.True }
func (m *Macro) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: macro") }
func (m *Macro) Name() string          { return m.name }

// Params returns the parameter names in declaration order.
func (m *Macro) Params() []string { return slices.Clone(m.params) }

// CallInternal binds arguments and renders the body. Keyword arguments that
// match no parameter are collected in the `kwargs` dict.
func (m *Macro) CallInternal(thread *starlark.Thread, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if thread.CallStackDepth() > maxCallDepth {
		return nil, fmt.Errorf("%s: maximum macro call depth exceeded", m.name)
	}
	if len(args) > len(m.params) {
		return nil, fmt.Errorf("%s: got %d positional arguments, want at most %d", m.name, len(args), len(m.params))
	}

	sc := newScope(m.scope)
	for i, arg := range args {
		sc.vars[m.params[i]] = arg
	}

	extra := starlark.NewDict(0)
	for _, kv := range kwargs {
		key := string(kv[0].(starlark.String))
		if !slices.Contains(m.params, key) {
			if err := extra.SetKey(kv[0], kv[1]); err != nil {
				return nil, err
			}
			continue
		}
		if _, dup := sc.vars[key]; dup {
			return nil, fmt.Errorf("%s: got multiple values for parameter %q", m.name, key)
		}
		sc.vars[key] = kv[1]
	}

	for i, name := range m.params {
		if _, ok := sc.vars[name]; ok {
			continue
		}
		if m.defaults[i] == nil {
			return nil, fmt.Errorf("%s: missing argument for parameter %q", m.name, name)
		}
		sc.vars[name] = m.defaults[i]
	}
	sc.vars["kwargs"] = extra

	out := &output{}
	if err := m.renderer.exec(thread, m.body, sc, out); err != nil {
		return nil, err
	}
	return starlark.String(out.b.String()), nil
}
