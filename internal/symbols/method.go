package symbols

import (
	"slices"

	"sjavac/internal/ast"
	"sjavac/internal/source"
)

// Method is a void method with positional parameters and a body scope.
type Method struct {
	Name     string
	NameSpan source.Span
	Params   []Variable
	Body     ast.ScopeID
	Span     source.Span // declaration line
}

// Arity returns the number of parameters.
func (m *Method) Arity() int { return len(m.Params) }

// Registry collects methods while a file is parsed. Once parsing is done it
// is frozen into a MethodTable and must not be used again.
type Registry struct {
	order  []*Method
	byName map[string]*Method
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Method)}
}

// Declare registers m. If a method with the same name already exists it is
// returned and nothing is registered.
func (r *Registry) Declare(m Method) (*Method, bool) {
	if r.frozen {
		panic("symbols: Declare on frozen registry")
	}
	if prev, ok := r.byName[m.Name]; ok {
		return prev, false
	}
	stored := &m
	r.order = append(r.order, stored)
	r.byName[m.Name] = stored
	return stored, true
}

// Lookup finds a method registered so far.
func (r *Registry) Lookup(name string) (*Method, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Freeze hands the methods over to a read-only MethodTable.
func (r *Registry) Freeze() *MethodTable {
	r.frozen = true
	t := &MethodTable{
		order:  make([]Method, len(r.order)),
		byName: make(map[string]int, len(r.order)),
	}
	for i, m := range r.order {
		t.order[i] = *m
		t.order[i].Params = slices.Clone(m.Params)
		t.byName[m.Name] = i
	}
	return t
}

// MethodTable is the read-only method registry used during validation.
// Lookups return copies so callers cannot mutate the table.
type MethodTable struct {
	order  []Method
	byName map[string]int
}

// Lookup returns the method named name.
func (t *MethodTable) Lookup(name string) (Method, bool) {
	if t == nil {
		return Method{}, false
	}
	i, ok := t.byName[name]
	if !ok {
		return Method{}, false
	}
	m := t.order[i]
	m.Params = slices.Clone(m.Params)
	return m, true
}

// Len returns the number of methods.
func (t *MethodTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// All returns the methods in declaration order.
func (t *MethodTable) All() []Method {
	if t == nil {
		return nil
	}
	out := make([]Method, len(t.order))
	for i, m := range t.order {
		out[i] = m
		out[i].Params = slices.Clone(m.Params)
	}
	return out
}
