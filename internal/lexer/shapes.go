package lexer

import (
	"strings"
)

// Entry is one "name [= value]" item of a declaration or an assignment.
type Entry struct {
	Name     Part
	Value    Part
	HasValue bool
}

// DeclShape is a taken-apart variable declaration line.
type DeclShape struct {
	Final   bool
	Type    Part
	Entries []Entry
}

// Param is one "[final] type name" method parameter.
type Param struct {
	Final bool
	Type  Part
	Name  Part
}

// MethodShape is a taken-apart method declaration line.
type MethodShape struct {
	Name   Part
	Params []Param
}

// CallShape is a taken-apart method call line. Args stay raw.
type CallShape struct {
	Name Part
	Args []Part
}

// CondShape is a taken-apart if/while line.
type CondShape struct {
	Keyword Part
	Terms   []Part
}

func group(line string, loc []int, n int) (Part, bool) {
	lo, hi := loc[2*n], loc[2*n+1]
	if lo < 0 {
		return Part{}, false
	}
	return Part{Text: line[lo:hi], Off: lo}, true
}

func splitEntry(p Part) Entry {
	name, value, ok := SplitFirst(p.Text, p.Off, '=')
	return Entry{Name: name, Value: value, HasValue: ok}
}

// SplitDecl takes apart a line classified as token.LineVarDecl.
func SplitDecl(line string) (DeclShape, bool) {
	loc := varDeclParts.FindStringSubmatchIndex(line)
	if loc == nil {
		return DeclShape{}, false
	}
	_, final := group(line, loc, 1)
	typ, _ := group(line, loc, 2)
	body, _ := group(line, loc, 3)

	items := SplitTopLevel(body.Text, body.Off, ",")
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, splitEntry(it))
	}
	return DeclShape{Final: final, Type: typ, Entries: entries}, true
}

// SplitAssign takes apart a line classified as token.LineAssign.
func SplitAssign(line string) (Entry, bool) {
	loc := assignParts.FindStringSubmatchIndex(line)
	if loc == nil {
		return Entry{}, false
	}
	body, _ := group(line, loc, 1)
	e := splitEntry(body)
	return e, e.HasValue
}

// SplitMethodDecl takes apart a line classified as token.LineMethodDecl.
func SplitMethodDecl(line string) (MethodShape, bool) {
	loc := methodDeclParts.FindStringSubmatchIndex(line)
	if loc == nil {
		return MethodShape{}, false
	}
	name, _ := group(line, loc, 1)
	list, _ := group(line, loc, 2)

	items := SplitTopLevel(list.Text, list.Off, ",")
	params := make([]Param, 0, len(items))
	for _, it := range items {
		m := paramParts.FindStringSubmatchIndex(it.Text)
		if m == nil {
			return MethodShape{}, false
		}
		_, final := group(it.Text, m, 1)
		typ, _ := group(it.Text, m, 2)
		pname, _ := group(it.Text, m, 3)
		typ.Off += it.Off
		pname.Off += it.Off
		params = append(params, Param{Final: final, Type: typ, Name: pname})
	}
	return MethodShape{Name: name, Params: params}, true
}

// SplitCall takes apart a line classified as token.LineCall. Arguments are
// taken between the first '(' and the last ')'.
func SplitCall(line string) (CallShape, bool) {
	loc := callParts.FindStringSubmatchIndex(line)
	if loc == nil {
		return CallShape{}, false
	}
	name, _ := group(line, loc, 1)
	list, _ := group(line, loc, 2)
	return CallShape{Name: name, Args: SplitTopLevel(list.Text, list.Off, ",")}, true
}

// SplitCondition takes apart a line classified as token.LineIfWhile.
// Terms are split on && and || with no precedence.
func SplitCondition(line string) (CondShape, bool) {
	loc := ifWhileParts.FindStringSubmatchIndex(line)
	if loc == nil {
		return CondShape{}, false
	}
	kw, _ := group(line, loc, 1)
	list, _ := group(line, loc, 2)
	terms := SplitTopLevel(list.Text, list.Off, "&&", "||")
	if len(terms) == 0 || strings.TrimSpace(list.Text) == "" {
		return CondShape{}, false
	}
	return CondShape{Keyword: kw, Terms: terms}, true
}
