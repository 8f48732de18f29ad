package lexer

import (
	"strings"

	"sjavac/internal/token"
)

// ClassifyLine returns the statement shape of a raw source line.
// The line must not contain its trailing '\n'. Comments are only recognised
// when "//" starts in the first column.
func ClassifyLine(line string) token.LineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return token.LineBlank
	case commentLine.MatchString(line):
		return token.LineComment
	case trimmed == "}":
		return token.LineClose
	case returnLine.MatchString(line):
		return token.LineReturn
	case varDeclLine.MatchString(line):
		return token.LineVarDecl
	case assignLine.MatchString(line):
		return token.LineAssign
	case methodDeclLine.MatchString(line):
		return token.LineMethodDecl
	case callLine.MatchString(line):
		return token.LineCall
	case ifWhileLine.MatchString(line):
		return token.LineIfWhile
	}
	return token.LineInvalid
}

// ClassifyValue returns the shape of a single value text.
// Boolean literals are checked before identifiers.
func ClassifyValue(text string) token.ValueKind {
	switch {
	case boolValue.MatchString(text):
		return token.ValueBoolean
	case intValue.MatchString(text):
		return token.ValueInt
	case doubleValue.MatchString(text):
		return token.ValueDouble
	case stringValue.MatchString(text):
		return token.ValueString
	case charValue.MatchString(text):
		return token.ValueChar
	case identValue.MatchString(text):
		return token.ValueIdent
	}
	return token.ValueInvalid
}

// IsIdent reports whether text is a well-formed variable name.
func IsIdent(text string) bool {
	return identValue.MatchString(text)
}
