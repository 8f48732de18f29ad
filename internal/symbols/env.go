package symbols

import (
	"sjavac/internal/ast"
)

// Env holds the variable bindings built up while validating a Program.
// The scope tree itself is never written to, so one Program can be
// validated any number of times with fresh Envs.
type Env struct {
	scopes *ast.Scopes
	frames map[ast.ScopeID]map[string]Variable
}

func NewEnv(scopes *ast.Scopes) *Env {
	return &Env{
		scopes: scopes,
		frames: make(map[ast.ScopeID]map[string]Variable),
	}
}

func (e *Env) frame(scope ast.ScopeID) map[string]Variable {
	f, ok := e.frames[scope]
	if !ok {
		f = make(map[string]Variable)
		e.frames[scope] = f
	}
	return f
}

// Declare binds v in scope, replacing any previous binding of that name.
func (e *Env) Declare(scope ast.ScopeID, v Variable) {
	e.frame(scope)[v.Name] = v
}

// Rebind records v in scope after an assignment. When v lives in an outer
// scope the copy shadows it for the rest of scope and, like a declaration,
// occupies the name there.
func (e *Env) Rebind(scope ast.ScopeID, v Variable) {
	e.frame(scope)[v.Name] = v
}

// LookupLocal finds name in scope only, whether declared or assigned there.
func (e *Env) LookupLocal(scope ast.ScopeID, name string) (Variable, bool) {
	v, ok := e.frames[scope][name]
	return v, ok
}

// Lookup walks from scope outward through its parents and returns the first
// binding of name together with the scope that holds it.
func (e *Env) Lookup(scope ast.ScopeID, name string) (Variable, ast.ScopeID, bool) {
	for _, id := range e.scopes.Chain(scope) {
		if v, ok := e.frames[id][name]; ok {
			return v, id, true
		}
	}
	return Variable{}, ast.NoScopeID, false
}
