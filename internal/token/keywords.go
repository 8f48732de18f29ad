package token

var keywords = map[string]struct{}{
	"int":     {},
	"double":  {},
	"boolean": {},
	"char":    {},
	"String":  {},
	"void":    {},
	"final":   {},
	"if":      {},
	"while":   {},
	"true":    {},
	"false":   {},
	"return":  {},
}

// IsKeyword reports whether name is reserved and cannot name a variable,
// parameter or method. Keywords are case-sensitive.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}
