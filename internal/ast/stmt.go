package ast

import (
	"sjavac/internal/source"
	"sjavac/internal/types"
)

type StmtKind uint8

const (
	StmtVarDecl StmtKind = iota
	StmtAssign
	StmtCall
	StmtIfWhile
	StmtReturn
)

func (k StmtKind) String() string {
	switch k {
	case StmtVarDecl:
		return "VarDecl"
	case StmtAssign:
		return "Assign"
	case StmtCall:
		return "Call"
	case StmtIfWhile:
		return "IfWhile"
	case StmtReturn:
		return "Return"
	}
	return "Unknown"
}

// Stmt is one of *VarDecl, *Assign, *Call, *IfWhile, *Return.
// The set is closed: only this package can add variants.
type Stmt interface {
	Kind() StmtKind
	Span() source.Span
	stmtNode()
}

// Value is raw value text (literal or identifier) as written in the source.
// Its type is determined during validation, not while parsing.
type Value struct {
	Text string
	Span source.Span
}

// DeclEntry is one "name [= value]" item of a declaration.
type DeclEntry struct {
	Name     string
	NameSpan source.Span
	Value    Value
	HasValue bool
}

// VarDecl declares one or more variables of the same type.
type VarDecl struct {
	Final    bool
	Type     types.Kind
	TypeSpan source.Span
	Entries  []DeclEntry
	Loc      source.Span
}

// Assign stores a value into an existing variable.
type Assign struct {
	Name     string
	NameSpan source.Span
	Value    Value
	Loc      source.Span
}

// Call invokes a method with raw positional arguments.
type Call struct {
	Name     string
	NameSpan source.Span
	Args     []Value
	Loc      source.Span
}

// IfWhile is an if or while block; Terms are the condition operands with
// && and || dropped.
type IfWhile struct {
	Keyword string
	Terms   []Value
	Body    ScopeID
	Loc     source.Span
}

// Return ends a method body.
type Return struct {
	Loc source.Span
}

func (*VarDecl) Kind() StmtKind { return StmtVarDecl }
func (*Assign) Kind() StmtKind  { return StmtAssign }
func (*Call) Kind() StmtKind    { return StmtCall }
func (*IfWhile) Kind() StmtKind { return StmtIfWhile }
func (*Return) Kind() StmtKind  { return StmtReturn }

func (s *VarDecl) Span() source.Span { return s.Loc }
func (s *Assign) Span() source.Span  { return s.Loc }
func (s *Call) Span() source.Span    { return s.Loc }
func (s *IfWhile) Span() source.Span { return s.Loc }
func (s *Return) Span() source.Span  { return s.Loc }

func (*VarDecl) stmtNode() {}
func (*Assign) stmtNode()  {}
func (*Call) stmtNode()    {}
func (*IfWhile) stmtNode() {}
func (*Return) stmtNode()  {}
