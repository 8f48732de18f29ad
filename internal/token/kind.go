package token

// LineKind is the statement shape of one source line.
type LineKind uint8

const (
	// LineInvalid matches no statement shape.
	LineInvalid LineKind = iota
	// LineEOF is returned by the lexer after the last line.
	LineEOF
	// LineBlank is empty or whitespace only.
	LineBlank
	// LineComment starts with // in the first column.
	LineComment
	// LineClose is a lone block terminator '}'.
	LineClose
	// LineVarDecl declares one or more variables.
	LineVarDecl
	// LineAssign assigns a value to an existing variable.
	LineAssign
	// LineMethodDecl opens a void method body.
	LineMethodDecl
	// LineCall invokes a method.
	LineCall
	// LineIfWhile opens an if or while block.
	LineIfWhile
	// LineReturn is 'return;'.
	LineReturn
)

var lineKindNames = [...]string{
	LineInvalid:    "invalid",
	LineEOF:        "eof",
	LineBlank:      "blank",
	LineComment:    "comment",
	LineClose:      "close",
	LineVarDecl:    "var-decl",
	LineAssign:     "assign",
	LineMethodDecl: "method-decl",
	LineCall:       "call",
	LineIfWhile:    "if-while",
	LineReturn:     "return",
}

func (k LineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return "unknown"
}

// IsStatement reports whether lines of this kind become statements.
// Comments, blank lines and terminators do not.
func (k LineKind) IsStatement() bool {
	switch k {
	case LineVarDecl, LineAssign, LineMethodDecl, LineCall, LineIfWhile, LineReturn:
		return true
	default:
		return false
	}
}

// OpensBlock reports whether the line pushes a new scope.
func (k LineKind) OpensBlock() bool {
	return k == LineMethodDecl || k == LineIfWhile
}

// ValueKind is the shape of a value text: a literal or a name.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueBoolean
	ValueInt
	ValueDouble
	ValueString
	ValueChar
	ValueIdent
)

var valueKindNames = [...]string{
	ValueInvalid: "invalid",
	ValueBoolean: "boolean",
	ValueInt:     "int",
	ValueDouble:  "double",
	ValueString:  "string",
	ValueChar:    "char",
	ValueIdent:   "identifier",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "unknown"
}

// IsLiteral reports whether the value has a fixed type without lookup.
func (k ValueKind) IsLiteral() bool {
	switch k {
	case ValueBoolean, ValueInt, ValueDouble, ValueString, ValueChar:
		return true
	default:
		return false
	}
}
