package symbols

import (
	"errors"
	"fmt"

	"sjavac/internal/ast"
	"sjavac/internal/source"
)

// Program is the result of parsing one file: the scope tree rooted at
// Global plus the frozen method table.
type Program struct {
	File    source.FileID
	Scopes  *ast.Scopes
	Global  ast.ScopeID
	Methods *MethodTable
}

// GlobalScope returns the root scope.
func (p *Program) GlobalScope() *ast.Scope {
	return p.Scopes.Get(p.Global)
}

// Validate checks the structural invariants of the tree: a single root,
// method bodies hanging off the root, if/while bodies hanging off the scope
// that holds them. It is meant for tests and debug builds.
func (p *Program) Validate() error {
	if p == nil || p.Scopes == nil {
		return errors.New("program: nil")
	}
	root := p.Scopes.Get(p.Global)
	if root == nil || root.Kind != ast.ScopeGlobal || root.Parent.IsValid() {
		return fmt.Errorf("program: scope %d is not a root global scope", p.Global)
	}
	var errs []error
	check := func(scope ast.ScopeID, st ast.Stmt) bool {
		iw, ok := st.(*ast.IfWhile)
		if !ok {
			return true
		}
		body := p.Scopes.Get(iw.Body)
		if body == nil || body.Kind != ast.ScopeBlock || body.Parent != scope {
			errs = append(errs, fmt.Errorf("program: if/while body %d is not a block under scope %d", iw.Body, scope))
			return false
		}
		return true
	}
	p.Scopes.Inspect(p.Global, check)
	for _, m := range p.Methods.All() {
		body := p.Scopes.Get(m.Body)
		if body == nil || body.Kind != ast.ScopeMethod || body.Parent != p.Global || body.Owner != m.Name {
			errs = append(errs, fmt.Errorf("program: method %s has invalid body scope %d", m.Name, m.Body))
			continue
		}
		p.Scopes.Inspect(m.Body, check)
	}
	return errors.Join(errs...)
}
