package ast

import (
	"sjavac/internal/source"
)

type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeMethod
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeMethod:
		return "method"
	case ScopeBlock:
		return "block"
	}
	return "unknown"
}

// Scope is a lexical container. Parent is an index into the same arena,
// never an owning reference; the global scope has NoScopeID.
type Scope struct {
	Kind   ScopeKind
	Parent ScopeID
	Owner  string // enclosing method name; empty for the global scope
	Span   source.Span
	Stmts  []Stmt
}

// Scopes is the arena that owns every scope of one parsed file.
type Scopes struct {
	Arena *Arena[Scope]
}

func NewScopes(capHint uint) *Scopes {
	return &Scopes{
		Arena: NewArena[Scope](capHint),
	}
}

func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner string, span source.Span) ScopeID {
	return ScopeID(s.Arena.Allocate(Scope{
		Kind:   kind,
		Parent: parent,
		Owner:  owner,
		Span:   span,
	}))
}

func (s *Scopes) Get(id ScopeID) *Scope {
	return s.Arena.Get(uint32(id))
}

// Append adds stmt at the end of scope id.
func (s *Scopes) Append(id ScopeID, stmt Stmt) {
	if sc := s.Get(id); sc != nil {
		sc.Stmts = append(sc.Stmts, stmt)
	}
}

// Extend widens the recorded span of scope id to cover sp.
func (s *Scopes) Extend(id ScopeID, sp source.Span) {
	if sc := s.Get(id); sc != nil {
		sc.Span = sc.Span.Cover(sp)
	}
}

// Chain returns id followed by its ancestors up to the root.
func (s *Scopes) Chain(id ScopeID) []ScopeID {
	var out []ScopeID
	for id.IsValid() {
		out = append(out, id)
		sc := s.Get(id)
		if sc == nil {
			break
		}
		id = sc.Parent
	}
	return out
}

// Inspect walks the statements of scope id depth first, descending into
// if/while bodies right after their header. Returning false from fn skips
// the children of that statement.
func (s *Scopes) Inspect(id ScopeID, fn func(scope ScopeID, stmt Stmt) bool) {
	sc := s.Get(id)
	if sc == nil {
		return
	}
	for _, st := range sc.Stmts {
		if !fn(id, st) {
			continue
		}
		if iw, ok := st.(*IfWhile); ok {
			s.Inspect(iw.Body, fn)
		}
	}
}
