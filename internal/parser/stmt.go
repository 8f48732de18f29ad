package parser

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"sjavac/internal/ast"
	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/source"
	"sjavac/internal/token"
	"sjavac/internal/types"
)

// parseLine dispatches one physical line. Returns false after reporting
// an error.
func (p *Parser) parseLine(line token.Line) bool {
	switch line.Kind {
	case token.LineBlank, token.LineComment:
		return true
	case token.LineClose:
		return p.closeBlock(line)
	case token.LineInvalid:
		return p.fail(diag.SynUnrecognizedSyntax, p.trimmed(line), "Unrecognized syntax: %s", strings.TrimSpace(line.Text))
	}

	if p.atGlobal() {
		switch line.Kind {
		case token.LineCall, token.LineIfWhile, token.LineReturn:
			return p.fail(diag.SynStatementNotAllowedHere, p.trimmed(line),
				"Cannot perform line: '%s' in global scope", strings.TrimSpace(line.Text))
		}
	} else if line.Kind == token.LineMethodDecl {
		return p.fail(diag.SynNestedMethodDeclaration, p.trimmed(line),
			"Cannot declare method: '%s' in nested scope", strings.TrimSpace(line.Text))
	}

	switch line.Kind {
	case token.LineVarDecl:
		return p.parseVarDecl(line)
	case token.LineAssign:
		return p.parseAssign(line)
	case token.LineMethodDecl:
		return p.parseMethodDecl(line)
	case token.LineCall:
		return p.parseCall(line)
	case token.LineIfWhile:
		return p.parseIfWhile(line)
	case token.LineReturn:
		p.scopes.Append(p.current(), &ast.Return{Loc: p.trimmed(line)})
		return true
	}
	return p.fail(diag.SynUnrecognizedSyntax, p.trimmed(line), "Unrecognized syntax: %s", strings.TrimSpace(line.Text))
}

// closeBlock handles a "}" line. A method body must close right after a
// return line; a comment in between counts as the preceding statement.
func (p *Parser) closeBlock(line token.Line) bool {
	if p.atGlobal() {
		return p.fail(diag.SynUnbalancedBlock, p.trimmed(line), "Extra '}' in global scope")
	}
	top := p.current()
	sc := p.scopes.Get(top)
	if sc.Kind == ast.ScopeMethod {
		if p.prev != token.LineReturn {
			return p.fail(diag.SynMissingReturn, p.trimmed(line),
				"Missing return statement in one of the methods.")
		}
	}
	p.scopes.Extend(top, line.Span)
	p.pop()
	return true
}

func (p *Parser) parseVarDecl(line token.Line) bool {
	shape, ok := lexer.SplitDecl(line.Text)
	if !ok {
		return p.fail(diag.SynUnrecognizedSyntax, p.trimmed(line), "Unrecognized syntax: %s", strings.TrimSpace(line.Text))
	}
	typ, ok := p.parseType(line, shape.Type)
	if !ok {
		return false
	}
	decl := &ast.VarDecl{
		Final:    shape.Final,
		Type:     typ,
		TypeSpan: p.sub(line, shape.Type),
		Entries:  make([]ast.DeclEntry, 0, len(shape.Entries)),
		Loc:      p.trimmed(line),
	}
	for _, e := range shape.Entries {
		if !p.checkName(line, e.Name, "variable") {
			return false
		}
		entry := ast.DeclEntry{
			Name:     e.Name.Text,
			NameSpan: p.sub(line, e.Name),
			HasValue: e.HasValue,
		}
		if e.HasValue {
			entry.Value = p.value(line, e.Value)
		}
		decl.Entries = append(decl.Entries, entry)
	}
	p.scopes.Append(p.current(), decl)
	return true
}

func (p *Parser) parseAssign(line token.Line) bool {
	e, ok := lexer.SplitAssign(line.Text)
	if !ok {
		return p.fail(diag.SynUnrecognizedSyntax, p.trimmed(line), "Unrecognized syntax: %s", strings.TrimSpace(line.Text))
	}
	if !p.checkName(line, e.Name, "variable") {
		return false
	}
	p.scopes.Append(p.current(), &ast.Assign{
		Name:     e.Name.Text,
		NameSpan: p.sub(line, e.Name),
		Value:    p.value(line, e.Value),
		Loc:      p.trimmed(line),
	})
	return true
}

func (p *Parser) parseCall(line token.Line) bool {
	shape, ok := lexer.SplitCall(line.Text)
	if !ok {
		return p.fail(diag.SynUnrecognizedSyntax, p.trimmed(line), "Unrecognized syntax: %s", strings.TrimSpace(line.Text))
	}
	if !p.checkName(line, shape.Name, "method") {
		return false
	}
	args := make([]ast.Value, 0, len(shape.Args))
	for _, a := range shape.Args {
		args = append(args, p.value(line, a))
	}
	p.scopes.Append(p.current(), &ast.Call{
		Name:     shape.Name.Text,
		NameSpan: p.sub(line, shape.Name),
		Args:     args,
		Loc:      p.trimmed(line),
	})
	return true
}

func (p *Parser) parseIfWhile(line token.Line) bool {
	shape, ok := lexer.SplitCondition(line.Text)
	if !ok {
		return p.fail(diag.SynUnrecognizedSyntax, p.trimmed(line), "Unrecognized syntax: %s", strings.TrimSpace(line.Text))
	}
	terms := make([]ast.Value, 0, len(shape.Terms))
	for _, t := range shape.Terms {
		terms = append(terms, p.value(line, t))
	}

	parent := p.current()
	owner := p.scopes.Get(parent).Owner
	body := p.scopes.New(ast.ScopeBlock, parent, owner, p.trimmed(line))
	p.scopes.Append(parent, &ast.IfWhile{
		Keyword: shape.Keyword.Text,
		Terms:   terms,
		Body:    body,
		Loc:     p.trimmed(line),
	})
	p.push(body)
	return true
}

// parseType maps a type name to types.Kind.
func (p *Parser) parseType(line token.Line, part lexer.Part) (types.Kind, bool) {
	k, err := types.Parse(part.Text)
	if err != nil {
		return types.Unset, p.fail(diag.SynUnknownType, p.sub(line, part), "Unknown type: %s", part.Text)
	}
	return k, true
}

// checkName rejects reserved words used as names.
func (p *Parser) checkName(line token.Line, name lexer.Part, what string) bool {
	if token.IsKeyword(name.Text) {
		return p.fail(diag.SynReservedName, p.sub(line, name),
			"'%s' is a reserved word and cannot be used as a %s name", name.Text, what)
	}
	return true
}

func (p *Parser) value(line token.Line, part lexer.Part) ast.Value {
	return ast.Value{Text: part.Text, Span: p.sub(line, part)}
}

// sub converts a line-relative part into a file span.
func (p *Parser) sub(line token.Line, part lexer.Part) source.Span {
	from, err := safecast.Conv[uint32](part.Off)
	if err != nil {
		panic(fmt.Errorf("part offset overflow: %w", err))
	}
	to, err := safecast.Conv[uint32](part.End())
	if err != nil {
		panic(fmt.Errorf("part end overflow: %w", err))
	}
	return line.Span.Sub(from, to)
}

// trimmed is the span of the line without surrounding whitespace.
func (p *Parser) trimmed(line token.Line) source.Span {
	lead := len(line.Text) - len(strings.TrimLeft(line.Text, " \t\r\f\v"))
	body := strings.TrimSpace(line.Text)
	return p.sub(line, lexer.Part{Text: body, Off: lead})
}

// fail reports a structural error and returns false.
func (p *Parser) fail(code diag.Code, sp source.Span, format string, args ...any) bool {
	diag.ReportError(p.rep, code, sp, fmt.Sprintf(format, args...)).Emit()
	return false
}
