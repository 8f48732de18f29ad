package ast

import (
	"testing"

	"sjavac/internal/source"
)

func TestArenaIndicesAreOneBased(t *testing.T) {
	a := NewArena[string](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must return nil")
	}
	id := a.Allocate("x")
	if id != 1 || *a.Get(id) != "x" || a.Len() != 1 {
		t.Fatalf("Allocate = %d, Get = %v", id, a.Get(id))
	}
}

func TestScopeChainAndInspect(t *testing.T) {
	scopes := NewScopes(4)
	global := scopes.New(ScopeGlobal, NoScopeID, "", source.Span{})
	method := scopes.New(ScopeMethod, global, "m", source.Span{Start: 10, End: 11})
	block := scopes.New(ScopeBlock, method, "m", source.Span{Start: 20, End: 21})

	scopes.Append(global, &VarDecl{Loc: source.Span{Start: 0, End: 5}})
	scopes.Append(method, &IfWhile{Keyword: "if", Body: block})
	scopes.Append(block, &Call{Name: "m"})
	scopes.Append(method, &Return{})

	chain := scopes.Chain(block)
	if len(chain) != 3 || chain[0] != block || chain[2] != global {
		t.Fatalf("Chain = %v", chain)
	}

	var kinds []StmtKind
	scopes.Inspect(method, func(_ ScopeID, st Stmt) bool {
		kinds = append(kinds, st.Kind())
		return true
	})
	want := []StmtKind{StmtIfWhile, StmtCall, StmtReturn}
	if len(kinds) != len(want) {
		t.Fatalf("Inspect visited %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d = %v, want %v", i, kinds[i], want[i])
		}
	}

	kinds = kinds[:0]
	scopes.Inspect(method, func(_ ScopeID, st Stmt) bool {
		kinds = append(kinds, st.Kind())
		return false
	})
	if len(kinds) != 2 {
		t.Errorf("pruned Inspect visited %v", kinds)
	}

	scopes.Extend(method, source.Span{Start: 30, End: 31})
	if sp := scopes.Get(method).Span; sp.Start != 10 || sp.End != 31 {
		t.Errorf("Extend = %v", sp)
	}
}
