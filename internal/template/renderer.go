package template

import (
	"errors"
	"strings"

	starctx "github.com/leapstack-labs/gofluff/internal/starlark"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// maxCallDepth bounds the Starlark call stack so self-recursive macros fail
// with an error instead of exhausting the Go stack.
const maxCallDepth = 256

// SliceKind classifies a region of the rendered output.
type SliceKind string

// SliceKind values.
const (
	SliceLiteral   SliceKind = "literal"   // source text copied verbatim
	SliceTemplated SliceKind = "templated" // output of an expression
	SliceComment   SliceKind = "comment"   // {# #}, renders nothing
	SliceBlock     SliceKind = "block"     // statement tags, render nothing
)

// Slice maps a source span to the output it produced.
type Slice struct {
	Kind      SliceKind
	Source    Span
	Templated Span
}

// Result is a rendered template with its source mapping.
type Result struct {
	Output string
	Slices []Slice
}

// Renderer executes parsed templates against an execution context.
type Renderer struct {
	ctx  *starctx.ExecutionContext
	file string
}

// NewRenderer creates a renderer. file names the template in errors.
func NewRenderer(ctx *starctx.ExecutionContext, file string) *Renderer {
	return &Renderer{ctx: ctx, file: file}
}

// RenderString parses and renders input in one step.
func RenderString(input, file string, ctx *starctx.ExecutionContext) (string, error) {
	tmpl, err := Parse(input, file)
	if err != nil {
		return "", err
	}
	res, err := NewRenderer(ctx, file).Render(tmpl)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Render executes the template and records how output maps to source.
func (r *Renderer) Render(tmpl *Template) (*Result, error) {
	thread := r.ctx.Thread(r.file)
	defer r.ctx.Release(thread)

	out := &output{track: true}
	if err := r.exec(thread, tmpl.Nodes, newScope(nil), out); err != nil {
		return nil, err
	}
	return &Result{Output: out.b.String(), Slices: out.slices}, nil
}

// Define executes the template for its side effects and returns the
// top-level names it assigned, such as macros.
func (r *Renderer) Define(tmpl *Template) (starlark.StringDict, error) {
	thread := r.ctx.Thread(r.file)
	defer r.ctx.Release(thread)

	sc := newScope(nil)
	if err := r.exec(thread, tmpl.Nodes, sc, &output{}); err != nil {
		return nil, err
	}
	return sc.vars, nil
}

func (r *Renderer) exec(thread *starlark.Thread, nodes []Node, sc *scope, out *output) error {
	for _, n := range nodes {
		var err error
		switch node := n.(type) {
		case *TextNode:
			out.add(SliceLiteral, node.Text, node.Span)

		case *CommentNode:
			out.add(SliceComment, "", node.Span)

		case *ExprNode:
			var v starlark.Value
			if v, err = r.eval(thread, node.Expr, node.Pos(), sc); err == nil {
				out.add(SliceTemplated, starctx.ToText(v), node.Span)
			}

		case *SetNode:
			var v starlark.Value
			if v, err = r.eval(thread, node.Expr, node.Pos(), sc); err == nil {
				sc.vars[node.Name] = v
				out.add(SliceBlock, "", node.Span)
			}

		case *IfBlock:
			err = r.execIf(thread, node, sc, out)

		case *ForBlock:
			err = r.execFor(thread, node, sc, out)

		case *MacroBlock:
			err = r.defineMacro(thread, node, sc, out)

		default:
			err = NewRenderErrorf(n.Pos(), "unsupported node %T", n)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) execIf(thread *starlark.Thread, node *IfBlock, sc *scope, out *output) error {
	out.add(SliceBlock, "", node.Open)

	ok, err := r.truth(thread, node.Condition, node.Pos(), sc)
	if err != nil {
		return err
	}

	switch {
	case ok:
		err = r.exec(thread, node.Body, sc, out)
	default:
		taken := false
		for _, branch := range node.ElseIfs {
			out.add(SliceBlock, "", branch.Tag)
			if taken, err = r.truth(thread, branch.Condition, branch.pos, sc); err != nil {
				return err
			}
			if taken {
				err = r.exec(thread, branch.Body, sc, out)
				break
			}
		}
		if !taken && node.Else != nil {
			out.add(SliceBlock, "", node.ElseTag)
			err = r.exec(thread, node.Else, sc, out)
		}
	}
	if err != nil {
		return err
	}

	out.add(SliceBlock, "", node.Close)
	return nil
}

func (r *Renderer) execFor(thread *starlark.Thread, node *ForBlock, sc *scope, out *output) error {
	iterable, err := r.eval(thread, node.IterExpr, node.Pos(), sc)
	if err != nil {
		return err
	}
	items, err := collect(iterable)
	if err != nil {
		return WrapRenderError(node.Pos(), "for loop", err)
	}

	out.add(SliceBlock, "", node.Open)
	for i, item := range items {
		inner := newScope(sc)
		if err := bindLoopVars(inner, node.VarNames, item); err != nil {
			return WrapRenderError(node.Pos(), "for loop", err)
		}
		inner.vars["loop"] = loopInfo(i, len(items))

		if err := r.exec(thread, node.Body, inner, out); err != nil {
			return err
		}
	}
	out.add(SliceBlock, "", node.Close)
	return nil
}

// defineMacro binds the macro in the current scope. Defaults are evaluated
// once, here.
func (r *Renderer) defineMacro(thread *starlark.Thread, node *MacroBlock, sc *scope, out *output) error {
	m := &Macro{
		name:     node.Name,
		params:   make([]string, len(node.Params)),
		defaults: make([]starlark.Value, len(node.Params)),
		body:     node.Body,
		scope:    sc,
		renderer: r,
	}
	for i, p := range node.Params {
		m.params[i] = p.Name
		if p.Default == "" {
			continue
		}
		v, err := r.eval(thread, p.Default, node.Pos(), sc)
		if err != nil {
			return err
		}
		m.defaults[i] = v
	}

	sc.vars[node.Name] = m
	out.add(SliceBlock, "", Span{Start: node.Open.Start, End: node.Close.End})
	return nil
}

func (r *Renderer) eval(thread *starlark.Thread, expr string, pos Position, sc *scope) (starlark.Value, error) {
	v, err := r.ctx.Eval(thread, expr, r.file, pos.Line, sc.locals())
	if err != nil {
		// Errors raised inside a macro body carry the more precise position.
		var inner *RenderError
		if errors.As(err, &inner) {
			return nil, inner
		}
		return nil, WrapRenderError(pos, "evaluating expression", err)
	}
	return v, nil
}

func (r *Renderer) truth(thread *starlark.Thread, expr string, pos Position, sc *scope) (bool, error) {
	v, err := r.eval(thread, expr, pos, sc)
	if err != nil {
		return false, err
	}
	return bool(v.Truth()), nil
}

func collect(v starlark.Value) ([]starlark.Value, error) {
	iter := starlark.Iterate(v)
	if iter == nil {
		return nil, errors.New(v.Type() + " is not iterable")
	}
	defer iter.Done()

	var items []starlark.Value
	var x starlark.Value
	for iter.Next(&x) {
		items = append(items, x)
	}
	return items, nil
}

func bindLoopVars(sc *scope, names []string, item starlark.Value) error {
	if len(names) == 1 {
		sc.vars[names[0]] = item
		return nil
	}
	parts, err := collect(item)
	if err != nil {
		return err
	}
	if len(parts) != len(names) {
		return errors.New("cannot unpack " + item.Type() + " into " + strings.Join(names, ", "))
	}
	for i, name := range names {
		sc.vars[name] = parts[i]
	}
	return nil
}

func loopInfo(i, n int) starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String("loop"), starlark.StringDict{
		"index":    starlark.MakeInt(i + 1),
		"index0":   starlark.MakeInt(i),
		"revindex": starlark.MakeInt(n - i),
		"first":    starlark.Bool(i == 0),
		"last":     starlark.Bool(i == n-1),
		"length":   starlark.MakeInt(n),
	})
}

// scope is a chain of variable frames. Loops and macro calls push a frame;
// if blocks assign into the enclosing one.
type scope struct {
	vars   starlark.StringDict
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: starlark.StringDict{}, parent: parent}
}

// locals flattens the chain; inner frames shadow outer ones.
func (s *scope) locals() starlark.StringDict {
	if s.parent == nil {
		return s.vars
	}
	merged := s.parent.locals()
	if len(s.vars) == 0 {
		return merged
	}
	out := make(starlark.StringDict, len(merged)+len(s.vars))
	for k, v := range merged {
		out[k] = v
	}
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

type output struct {
	b      strings.Builder
	track  bool
	slices []Slice
}

func (o *output) add(kind SliceKind, text string, src Span) {
	start := o.b.Len()
	o.b.WriteString(text)
	if o.track {
		o.slices = append(o.slices, Slice{Kind: kind, Source: src, Templated: Span{Start: start, End: o.b.Len()}})
	}
}
