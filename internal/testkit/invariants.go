package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sjavac/internal/ast"
	"sjavac/internal/source"
	"sjavac/internal/symbols"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) the global scope spans the whole file
// 2) every other scope span is non-empty and nested in its parent's span
// 3) statement spans are non-empty, lie in their scope and appear in source order
// 4) method name spans lie inside the declaration line
func CheckSpanInvariants(prog *symbols.Program, sf *source.File) error {
	if prog == nil || prog.Scopes == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	global := prog.GlobalScope()
	if global == nil {
		return fmt.Errorf("global scope not found")
	}

	// 1) global span sanity
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if global.Span.File != sf.ID {
		return fmt.Errorf("global span points to different file id: got=%d want=%d", global.Span.File, sf.ID)
	}
	if global.Span.Start != 0 || global.Span.End != lenContent {
		return fmt.Errorf("global span %v does not cover file content [0,%d)", global.Span, lenContent)
	}

	// 2) nested scopes
	scopes := prog.Scopes.Arena.Slice()
	for i := range scopes {
		sc := &scopes[i]
		if !sc.Parent.IsValid() {
			continue
		}
		if sc.Span.Empty() {
			return fmt.Errorf("scope %d has empty span", i+1)
		}
		parent := prog.Scopes.Get(sc.Parent)
		if parent == nil {
			return fmt.Errorf("scope %d has dangling parent %d", i+1, sc.Parent)
		}
		if !parent.Span.Contains(sc.Span) {
			return fmt.Errorf("scope %d span %v is outside parent span %v", i+1, sc.Span, parent.Span)
		}
	}

	// 3) statements
	var stmtErr error
	check := func(scope ast.ScopeID, st ast.Stmt) bool {
		if stmtErr != nil {
			return false
		}
		sp := st.Span()
		if sp.Empty() {
			stmtErr = fmt.Errorf("empty %s span in scope %d", st.Kind(), scope)
			return false
		}
		if sc := prog.Scopes.Get(scope); !sc.Span.Contains(sp) {
			stmtErr = fmt.Errorf("%s span %v is outside scope span %v", st.Kind(), sp, sc.Span)
			return false
		}
		return true
	}
	for i := range scopes {
		prev := uint32(0)
		for j, st := range scopes[i].Stmts {
			if j > 0 && st.Span().Start <= prev {
				return fmt.Errorf("scope %d: statement %d starts at %d, not after %d", i+1, j, st.Span().Start, prev)
			}
			prev = st.Span().Start
		}
	}
	prog.Scopes.Inspect(prog.Global, check)
	for _, m := range prog.Methods.All() {
		prog.Scopes.Inspect(m.Body, check)

		// 4) method name inside declaration
		if !m.Span.Contains(m.NameSpan) {
			return fmt.Errorf("method %s name span %v is outside declaration %v", m.Name, m.NameSpan, m.Span)
		}
	}
	return stmtErr
}
