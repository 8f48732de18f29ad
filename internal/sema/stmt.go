package sema

import (
	"sjavac/internal/ast"
	"sjavac/internal/diag"
	"sjavac/internal/symbols"
	"sjavac/internal/types"
)

func (tc *typeChecker) checkVarDecl(scope ast.ScopeID, s *ast.VarDecl) bool {
	for _, e := range s.Entries {
		value := types.Unset
		if e.HasValue {
			t, ok := tc.typeOf(scope, e.Value, declaredType)
			if !ok {
				return false
			}
			if !types.Compatible(s.Type, t) {
				return tc.fail(diag.SemaIncompatibleDeclaration, e.Value.Span,
					"Incompatible variable types in declaration: %s with %s", s.Type, t)
			}
			value = t
		}
		if prev, ok := tc.env.LookupLocal(scope, e.Name); ok {
			diag.ReportError(tc.rep, diag.SemaDuplicateDeclaration, e.NameSpan,
				"Variable "+e.Name+" already declared in this scope").
				WithNote(prev.Span, "previous declaration here").
				Emit()
			return false
		}
		if s.Final && !e.HasValue {
			return tc.fail(diag.SemaFinalNotInitialized, e.NameSpan, "Final variable %s not initialized", e.Name)
		}
		tc.env.Declare(scope, symbols.Variable{
			Name:  e.Name,
			Type:  s.Type,
			Final: s.Final,
			Value: value,
			Span:  e.NameSpan,
		})
	}
	return true
}

// checkAssign records the new value in the current scope only; the outer
// binding keeps its state once the scope closes. The name then counts as
// taken in the current scope.
func (tc *typeChecker) checkAssign(scope ast.ScopeID, s *ast.Assign) bool {
	b, _, ok := tc.env.Lookup(scope, s.Name)
	if !ok {
		return tc.fail(diag.SemaUndeclaredVariable, s.NameSpan, "Variable %s not declared in scope", s.Name)
	}
	if b.Final {
		return tc.fail(diag.SemaFinalReassignment, s.NameSpan, "Final variable %s cannot be reassigned", s.Name)
	}
	t, ok := tc.typeOf(scope, s.Value, declaredType)
	if !ok {
		return false
	}
	if !types.Compatible(b.Type, t) {
		return tc.fail(diag.SemaIncompatibleAssignment, s.Value.Span,
			"incompatible variable types: %s and %s", b.Type, t)
	}
	tc.env.Rebind(scope, b.WithValue(t))
	return true
}

func (tc *typeChecker) checkCall(scope ast.ScopeID, s *ast.Call) bool {
	m, ok := tc.methods.Lookup(s.Name)
	if !ok {
		return tc.fail(diag.SemaMethodNotFound, s.NameSpan, "Method %s not found", s.Name)
	}
	if len(s.Args) != m.Arity() {
		diag.ReportError(tc.rep, diag.SemaArgumentCountMismatch, s.Loc,
			argCountMessage(m.Name, m.Arity(), len(s.Args))).
			WithNote(m.NameSpan, "method declared here").
			Emit()
		return false
	}
	for i, arg := range s.Args {
		t, ok := tc.typeOf(scope, arg, currentType)
		if !ok {
			return false
		}
		prm := m.Params[i]
		if !types.Compatible(prm.Type, t) {
			diag.ReportError(tc.rep, diag.SemaArgumentTypeMismatch, arg.Span,
				"argument '"+arg.Text+"' is not compatible with '"+prm.Type.String()+"'").
				WithNote(prm.Span, "parameter declared here").
				Emit()
			return false
		}
	}
	return true
}

func (tc *typeChecker) checkIfWhile(scope ast.ScopeID, s *ast.IfWhile) bool {
	for _, term := range s.Terms {
		t, ok := tc.typeOf(scope, term, currentType)
		if !ok {
			return false
		}
		if !types.IsCondition(t) {
			return tc.fail(diag.SemaInvalidConditionType, term.Span,
				"argument '%s' is not a valid condition type", term.Text)
		}
	}
	return tc.checkScope(s.Body)
}
