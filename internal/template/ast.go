// Package template implements the jinja subset used to render templated SQL:
// {{ expr }} output, {% stmt %} control flow and {# comments #}, with
// expressions evaluated by Starlark.
package template

// Position tracks source location for error reporting.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int // byte offset into the source
}

// Span is a half-open byte range [Start, End) of the template source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of source bytes covered.
func (s Span) Len() int { return s.End - s.Start }

// Node is the interface for all template AST nodes.
type Node interface {
	Pos() Position
	node() // marker method to restrict implementation
}

// nodeBase provides common Position handling for all nodes.
type nodeBase struct {
	pos Position
}

func (n *nodeBase) Pos() Position { return n.pos }
func (n *nodeBase) node()         {}

// TextNode represents literal SQL text. Text has whitespace control applied;
// Span still covers the untrimmed source.
type TextNode struct {
	nodeBase
	Text string
	Span Span
}

// ExprNode represents a {{ expr }} expression.
type ExprNode struct {
	nodeBase
	Expr string
	Span Span
}

// CommentNode represents a {# comment #}. It renders nothing.
type CommentNode struct {
	nodeBase
	Text string
	Span Span
}

// SetNode represents {% set name = expr %}.
type SetNode struct {
	nodeBase
	Name string
	Expr string
	Span Span
}

// StmtKind identifies the type of control flow statement.
type StmtKind int

// StmtKind constants for statement types.
const (
	StmtUnknown  StmtKind = iota // Unknown/invalid statement
	StmtFor                      // {% for x in items %}
	StmtEndFor                   // {% endfor %}
	StmtIf                       // {% if cond %}
	StmtElif                     // {% elif cond %}
	StmtElse                     // {% else %}
	StmtEndIf                    // {% endif %}
	StmtMacro                    // {% macro name(args) %}
	StmtEndMacro                 // {% endmacro %}
	StmtSet                      // {% set x = expr %}
)

var stmtNames = map[StmtKind]string{
	StmtFor:      "for",
	StmtEndFor:   "endfor",
	StmtIf:       "if",
	StmtElif:     "elif",
	StmtElse:     "else",
	StmtEndIf:    "endif",
	StmtMacro:    "macro",
	StmtEndMacro: "endmacro",
	StmtSet:      "set",
}

func (k StmtKind) String() string {
	if name, ok := stmtNames[k]; ok {
		return name
	}
	return "unknown"
}

func stmtKindOf(keyword string) StmtKind {
	for kind, name := range stmtNames {
		if name == keyword {
			return kind
		}
	}
	return StmtUnknown
}

// StmtNode is a parsed {% stmt %} tag before blocks are assembled.
type StmtNode struct {
	nodeBase
	Kind     StmtKind
	Expr     string   // condition, iterator or assigned expression
	VarNames []string // loop variables (for) or assigned name (set)
	Name     string   // macro name
	Params   []Param  // macro parameters
	Span     Span
}

// Param is a macro parameter. Default is the Starlark source of the default
// value, empty when the parameter is required.
type Param struct {
	Name    string
	Default string
}

// ForBlock represents a complete for loop with its body.
type ForBlock struct {
	nodeBase
	VarNames []string // Loop variables; more than one unpacks each item
	IterExpr string
	Body     []Node
	Open     Span
	Close    Span
}

// IfBlock represents a complete if/elif/else conditional.
type IfBlock struct {
	nodeBase
	Condition string
	Body      []Node
	ElseIfs   []Branch
	Else      []Node // nil when there is no else branch
	ElseTag   Span
	Open      Span
	Close     Span
}

// Branch represents an elif branch.
type Branch struct {
	Condition string
	Body      []Node
	Tag       Span
	pos       Position
}

// MacroBlock represents {% macro name(params) %}...{% endmacro %}.
type MacroBlock struct {
	nodeBase
	Name   string
	Params []Param
	Body   []Node
	Open   Span
	Close  Span
}

// Template represents a complete parsed template.
type Template struct {
	Nodes  []Node
	File   string
	Source string
}
