package parser

import (
	"sjavac/internal/ast"
	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/symbols"
	"sjavac/internal/token"
)

// parseMethodDecl registers a method and opens its body scope.
// Only called at global scope.
func (p *Parser) parseMethodDecl(line token.Line) bool {
	shape, ok := lexer.SplitMethodDecl(line.Text)
	if !ok {
		return p.fail(diag.SynUnrecognizedSyntax, p.trimmed(line), "Unrecognized syntax: %s", line.Text)
	}
	if !p.checkName(line, shape.Name, "method") {
		return false
	}

	params := make([]symbols.Variable, 0, len(shape.Params))
	seen := make(map[string]lexer.Part, len(shape.Params))
	for _, prm := range shape.Params {
		if !p.checkName(line, prm.Name, "parameter") {
			return false
		}
		if first, dup := seen[prm.Name.Text]; dup {
			diag.ReportError(p.rep, diag.SynDuplicateParameterName, p.sub(line, prm.Name),
				"Cannot have two parameters with the same name in method declaration with argument '"+prm.Name.Text+"'").
				WithNote(p.sub(line, first), "first declared here").
				Emit()
			return false
		}
		seen[prm.Name.Text] = prm.Name
		typ, ok := p.parseType(line, prm.Type)
		if !ok {
			return false
		}
		params = append(params, symbols.Param(prm.Name.Text, typ, prm.Final, p.sub(line, prm.Name)))
	}

	if prev, exists := p.reg.Lookup(shape.Name.Text); exists {
		diag.ReportError(p.rep, diag.SynDuplicateMethodName, p.sub(line, shape.Name),
			"Duplicate named methods: '"+shape.Name.Text+"' and '"+prev.Name+"'").
			WithNote(prev.NameSpan, "previous declaration here").
			Emit()
		return false
	}

	body := p.scopes.New(ast.ScopeMethod, p.global, shape.Name.Text, p.trimmed(line))
	p.reg.Declare(symbols.Method{
		Name:     shape.Name.Text,
		NameSpan: p.sub(line, shape.Name),
		Params:   params,
		Body:     body,
		Span:     p.trimmed(line),
	})
	p.push(body)
	return true
}
