package symbols

import (
	"sjavac/internal/source"
	"sjavac/internal/types"
)

// Variable is a named, typed storage slot. Value is the type of what the
// variable currently holds; types.Unset until it is initialised.
type Variable struct {
	Name  string
	Type  types.Kind
	Final bool
	Value types.Kind
	Span  source.Span // where it was declared
}

// Initialized reports whether the variable holds a value.
func (v Variable) Initialized() bool { return v.Value.IsSet() }

// WithValue returns a copy of v that holds a value of type value.
func (v Variable) WithValue(value types.Kind) Variable {
	v.Value = value
	return v
}

// Param builds a method parameter: parameters always count as initialised
// with their declared type.
func Param(name string, typ types.Kind, final bool, span source.Span) Variable {
	return Variable{Name: name, Type: typ, Final: final, Value: typ, Span: span}
}
