package sema

import (
	"fmt"

	"sjavac/internal/ast"
	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/token"
	"sjavac/internal/types"
)

// identTyping selects which type an identifier value contributes.
type identTyping uint8

const (
	declaredType identTyping = iota // declarations, assignments
	currentType                     // call arguments, if/while condition terms
)

// typeOf returns the type of a raw value. Identifiers must resolve to an
// initialised variable.
func (tc *typeChecker) typeOf(scope ast.ScopeID, v ast.Value, mode identTyping) (types.Kind, bool) {
	kind := lexer.ClassifyValue(v.Text)
	if kind != token.ValueIdent {
		t := types.OfLiteral(kind)
		if !t.IsSet() {
			return types.Unset, tc.fail(diag.SemaUnknownOrUninitializedVariable, v.Span, "Invalid value %s", v.Text)
		}
		return t, true
	}

	b, _, ok := tc.env.Lookup(scope, v.Text)
	if !ok || !b.Initialized() {
		return types.Unset, tc.fail(diag.SemaUnknownOrUninitializedVariable, v.Span,
			"Unknown or uninitialized variable %s", v.Text)
	}
	if mode == currentType {
		return b.Value, true
	}
	return b.Type, true
}

func argCountMessage(name string, want, got int) string {
	return fmt.Sprintf("Method %s expected %d args, but got %d", name, want, got)
}
