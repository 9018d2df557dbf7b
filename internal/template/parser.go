package template

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	forPattern   = regexp.MustCompile(`(?s)^(.+?)\s+in\s+(.+)$`)
	setPattern   = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+)$`)
	macroPattern = regexp.MustCompile(`(?s)^([A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)$`)
)

const whitespace = " \t\r\n"

// Parser assembles tokens into a tree of nodes.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse lexes and parses a template.
func Parse(input, file string) (*Template, error) {
	tokens, err := NewLexer(input, file).Tokenize()
	if err != nil {
		return nil, err
	}
	applyWhitespaceControl(tokens)

	p := &Parser{tokens: tokens}
	nodes, term, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	if term != nil {
		return nil, NewUnmatchedBlockError(term.Pos(), term.Kind)
	}
	return &Template{Nodes: nodes, File: file, Source: input}, nil
}

// applyWhitespaceControl trims the text next to `{%-` and `-%}` style tags.
func applyWhitespaceControl(tokens []Token) {
	for i, tok := range tokens {
		if tok.TrimLeft && i > 0 && tokens[i-1].Type == TokenText {
			tokens[i-1].Value = strings.TrimRight(tokens[i-1].Value, whitespace)
		}
		if tok.TrimRight && i+1 < len(tokens) && tokens[i+1].Type == TokenText {
			tokens[i+1].Value = strings.TrimLeft(tokens[i+1].Value, whitespace)
		}
	}
}

// parseNodes collects nodes until EOF or a statement whose kind is in stop.
// The stopping statement is returned so callers can tell how a block ended.
func (p *Parser) parseNodes(stop ...StmtKind) ([]Node, *StmtNode, error) {
	var nodes []Node

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch tok.Type {
		case TokenEOF:
			return nodes, nil, nil

		case TokenText:
			nodes = append(nodes, &TextNode{nodeBase: nodeBase{pos: tok.Pos}, Text: tok.Value, Span: tok.Span})

		case TokenComment:
			nodes = append(nodes, &CommentNode{nodeBase: nodeBase{pos: tok.Pos}, Text: tok.Value, Span: tok.Span})

		case TokenExpr:
			if tok.Value == "" {
				return nil, nil, NewParseError(tok.Pos, "empty expression")
			}
			nodes = append(nodes, &ExprNode{nodeBase: nodeBase{pos: tok.Pos}, Expr: tok.Value, Span: tok.Span})

		case TokenStmt:
			stmt, err := parseStmt(tok)
			if err != nil {
				return nil, nil, err
			}
			if slices.Contains(stop, stmt.Kind) {
				return nodes, stmt, nil
			}

			node, err := p.parseBlock(stmt)
			if err != nil {
				return nil, nil, err
			}
			nodes = append(nodes, node)
		}
	}

	return nodes, nil, nil
}

// parseBlock turns an opening statement into a node, consuming its body.
func (p *Parser) parseBlock(stmt *StmtNode) (Node, error) {
	switch stmt.Kind {
	case StmtSet:
		return &SetNode{nodeBase: stmt.nodeBase, Name: stmt.VarNames[0], Expr: stmt.Expr, Span: stmt.Span}, nil

	case StmtFor:
		body, end, err := p.parseNodes(StmtEndFor)
		if err != nil {
			return nil, err
		}
		if end == nil {
			return nil, NewUnmatchedBlockError(stmt.Pos(), StmtFor)
		}
		return &ForBlock{
			nodeBase: stmt.nodeBase,
			VarNames: stmt.VarNames,
			IterExpr: stmt.Expr,
			Body:     body,
			Open:     stmt.Span,
			Close:    end.Span,
		}, nil

	case StmtMacro:
		body, end, err := p.parseNodes(StmtEndMacro)
		if err != nil {
			return nil, err
		}
		if end == nil {
			return nil, NewUnmatchedBlockError(stmt.Pos(), StmtMacro)
		}
		return &MacroBlock{
			nodeBase: stmt.nodeBase,
			Name:     stmt.Name,
			Params:   stmt.Params,
			Body:     body,
			Open:     stmt.Span,
			Close:    end.Span,
		}, nil

	case StmtIf:
		return p.parseIf(stmt)

	default:
		return nil, NewUnmatchedBlockError(stmt.Pos(), stmt.Kind)
	}
}

func (p *Parser) parseIf(stmt *StmtNode) (Node, error) {
	block := &IfBlock{nodeBase: stmt.nodeBase, Condition: stmt.Expr, Open: stmt.Span}

	body, term, err := p.parseNodes(StmtElif, StmtElse, StmtEndIf)
	if err != nil {
		return nil, err
	}
	block.Body = body

	for {
		if term == nil {
			return nil, NewUnmatchedBlockError(stmt.Pos(), StmtIf)
		}

		switch term.Kind {
		case StmtElif:
			branch := Branch{Condition: term.Expr, Tag: term.Span, pos: term.Pos()}
			branch.Body, term, err = p.parseNodes(StmtElif, StmtElse, StmtEndIf)
			if err != nil {
				return nil, err
			}
			block.ElseIfs = append(block.ElseIfs, branch)

		case StmtElse:
			block.ElseTag = term.Span
			block.Else, term, err = p.parseNodes(StmtEndIf)
			if err != nil {
				return nil, err
			}
			if block.Else == nil {
				block.Else = []Node{}
			}

		case StmtEndIf:
			block.Close = term.Span
			return block, nil
		}
	}
}

// parseStmt classifies the content of a {% %} tag.
func parseStmt(tok Token) (*StmtNode, error) {
	keyword, rest := tok.Value, ""
	if i := strings.IndexAny(tok.Value, whitespace); i >= 0 {
		keyword, rest = tok.Value[:i], strings.TrimSpace(tok.Value[i:])
	}

	stmt := &StmtNode{nodeBase: nodeBase{pos: tok.Pos}, Kind: stmtKindOf(keyword), Span: tok.Span}

	switch stmt.Kind {
	case StmtFor:
		m := forPattern.FindStringSubmatch(rest)
		if m == nil {
			return nil, NewParseErrorf(tok.Pos, "invalid for statement %q: expected 'for x in items'", tok.Value)
		}
		for name := range strings.SplitSeq(m[1], ",") {
			name = strings.TrimSpace(name)
			if !identPattern.MatchString(name) {
				return nil, NewParseErrorf(tok.Pos, "invalid loop variable %q", name)
			}
			stmt.VarNames = append(stmt.VarNames, name)
		}
		stmt.Expr = strings.TrimSpace(m[2])

	case StmtIf, StmtElif:
		if rest == "" {
			return nil, NewParseErrorf(tok.Pos, "'%s' requires a condition", stmt.Kind)
		}
		stmt.Expr = rest

	case StmtElse, StmtEndFor, StmtEndIf, StmtEndMacro:
		if rest != "" {
			return nil, NewParseErrorf(tok.Pos, "unexpected content after '%s': %q", stmt.Kind, rest)
		}

	case StmtSet:
		m := setPattern.FindStringSubmatch(rest)
		if m == nil {
			return nil, NewParseErrorf(tok.Pos, "invalid set statement %q: expected 'set name = expr'", tok.Value)
		}
		stmt.VarNames = []string{m[1]}
		stmt.Expr = strings.TrimSpace(m[2])

	case StmtMacro:
		m := macroPattern.FindStringSubmatch(rest)
		if m == nil {
			return nil, NewParseErrorf(tok.Pos, "invalid macro statement %q: expected 'macro name(args)'", tok.Value)
		}
		stmt.Name = m[1]
		params, err := parseParams(m[2])
		if err != nil {
			return nil, NewParseErrorf(tok.Pos, "macro %s: %v", stmt.Name, err)
		}
		stmt.Params = params

	default:
		return nil, NewParseErrorf(tok.Pos, "unsupported statement %q", keyword)
	}

	return stmt, nil
}

// parseParams parses "a, b=1, c='x'" into macro parameters.
func parseParams(src string) ([]Param, error) {
	var params []Param
	seenDefault := false
	for _, part := range splitTopLevel(src) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, def, hasDefault := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !identPattern.MatchString(name) {
			return nil, fmt.Errorf("invalid parameter name %q", name)
		}
		if hasDefault {
			def = strings.TrimSpace(def)
			if def == "" {
				return nil, fmt.Errorf("parameter %q has an empty default", name)
			}
			seenDefault = true
		} else if seenDefault {
			return nil, fmt.Errorf("required parameter %q follows a parameter with a default", name)
		}
		for _, existing := range params {
			if existing.Name == name {
				return nil, fmt.Errorf("duplicate parameter %q", name)
			}
		}
		params = append(params, Param{Name: name, Default: def})
	}
	return params, nil
}

// splitTopLevel splits on commas outside brackets and string literals.
func splitTopLevel(src string) []string {
	var parts []string
	depth, start := 0, 0
	var inQuote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inQuote != 0:
			if c == '\\' {
				i++
			} else if c == inQuote {
				inQuote = 0
			}
		case c == '\'' || c == '"':
			inQuote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, src[start:i])
			start = i + 1
		}
	}
	return append(parts, src[start:])
}
