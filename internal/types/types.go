// Package types models the five primitive s-Java types and the
// compatibility lattice between them.
package types

import (
	"errors"
	"fmt"

	"sjavac/internal/token"
)

// Kind is a primitive type. The zero value Unset doubles as "no value
// assigned yet" in variable bindings.
type Kind uint8

const (
	Unset Kind = iota
	Int
	Double
	Boolean
	Char
	String
)

// ErrUnknownType is returned by Parse for names outside the five primitives.
var ErrUnknownType = errors.New("unknown type")

var names = [...]string{
	Unset:   "<unset>",
	Int:     "int",
	Double:  "double",
	Boolean: "boolean",
	Char:    "char",
	String:  "String",
}

// All lists every concrete kind in declaration order.
func All() []Kind {
	return []Kind{Int, Double, Boolean, Char, String}
}

func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsSet reports whether k names a concrete type.
func (k Kind) IsSet() bool { return k != Unset && int(k) < len(names) }

// Parse maps a source type name to its Kind. Names are case-sensitive.
func Parse(name string) (Kind, error) {
	switch name {
	case "int":
		return Int, nil
	case "double":
		return Double, nil
	case "boolean":
		return Boolean, nil
	case "char":
		return Char, nil
	case "String":
		return String, nil
	}
	return Unset, fmt.Errorf("%w %q", ErrUnknownType, name)
}

// OfLiteral returns the fixed type of a literal value shape, or Unset for
// identifiers and invalid shapes.
func OfLiteral(v token.ValueKind) Kind {
	switch v {
	case token.ValueInt:
		return Int
	case token.ValueDouble:
		return Double
	case token.ValueBoolean:
		return Boolean
	case token.ValueChar:
		return Char
	case token.ValueString:
		return String
	default:
		return Unset
	}
}

// Compatible reports whether a value of type actual may be stored where
// expected is declared:
//
//	identical types         always
//	int    -> double        widening
//	int, double -> boolean  truthiness
//
// Every other pair is incompatible. Unset is compatible with nothing.
func Compatible(expected, actual Kind) bool {
	if !expected.IsSet() || !actual.IsSet() {
		return false
	}
	if expected == actual {
		return true
	}
	switch expected {
	case Double:
		return actual == Int
	case Boolean:
		return actual == Int || actual == Double
	}
	return false
}

// IsCondition reports whether k may appear as an if/while condition term.
func IsCondition(k Kind) bool {
	return k == Int || k == Double || k == Boolean
}
