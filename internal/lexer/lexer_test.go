package lexer_test

import (
	"testing"

	"sjavac/internal/lexer"
	"sjavac/internal/source"
	"sjavac/internal/token"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want token.LineKind
	}{
		{"", token.LineBlank},
		{"   \t", token.LineBlank},
		{"// comment", token.LineComment},
		{"//", token.LineComment},
		{"  // indented comment", token.LineInvalid},
		{"}", token.LineClose},
		{"   }  ", token.LineClose},
		{"} }", token.LineInvalid},

		{"int a;", token.LineVarDecl},
		{"final int x = 5;", token.LineVarDecl},
		{"  double d = .5, e, f = -3.;", token.LineVarDecl},
		{"String s = \"a, b; c\";", token.LineVarDecl},
		{"char c = ',' ;", token.LineVarDecl},
		{"char q = ''', r = 'x';", token.LineVarDecl},
		{"boolean b = true, _x = y;", token.LineVarDecl},
		{"int a", token.LineInvalid},
		{"int a = ;", token.LineInvalid},
		{"float f;", token.LineInvalid},
		{"final a = 5;", token.LineInvalid},
		{"int 1a;", token.LineInvalid},
		{"int a = 5 + 3;", token.LineInvalid},

		{"a = 5;", token.LineAssign},
		{"  _b=\"x\" ;", token.LineAssign},
		{"a = b = 5;", token.LineInvalid},

		{"void foo() {", token.LineMethodDecl},
		{"void foo (final int a, String b){", token.LineMethodDecl},
		{"void _foo() {", token.LineInvalid},
		{"void foo(int) {", token.LineInvalid},
		{"int foo() {", token.LineInvalid},
		{"void foo()", token.LineInvalid},

		{"foo();", token.LineCall},
		{"foo(1, \"s\", 'c', x, 2.5, true);", token.LineCall},
		{"foo(1,);", token.LineInvalid},

		{"if (x) {", token.LineIfWhile},
		{"while(a && 5 || true){", token.LineIfWhile},
		{"if (\"a\") {", token.LineIfWhile},
		{"if () {", token.LineInvalid},
		{"if (a & b) {", token.LineInvalid},
		{"else {", token.LineInvalid},

		{"return;", token.LineReturn},
		{"  return ;  ", token.LineReturn},
		{"return 5;", token.LineInvalid},
	}
	for _, tt := range tests {
		if got := lexer.ClassifyLine(tt.line); got != tt.want {
			t.Errorf("ClassifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestClassifyValue(t *testing.T) {
	tests := []struct {
		text string
		want token.ValueKind
	}{
		{"true", token.ValueBoolean},
		{"false", token.ValueBoolean},
		{"42", token.ValueInt},
		{"-7", token.ValueInt},
		{"+0", token.ValueInt},
		{"3.14", token.ValueDouble},
		{"5.", token.ValueDouble},
		{".5", token.ValueDouble},
		{"-.5", token.ValueDouble},
		{"\"hi there\"", token.ValueString},
		{"\"\"", token.ValueString},
		{"'c'", token.ValueChar},
		{"''", token.ValueInvalid},
		{"'''", token.ValueChar},
		{"'ab'", token.ValueInvalid},
		{"x", token.ValueIdent},
		{"_under", token.ValueIdent},
		{"trueish", token.ValueIdent},
		{"9lives", token.ValueInvalid},
		{".", token.ValueInvalid},
		{"", token.ValueInvalid},
	}
	for _, tt := range tests {
		if got := lexer.ClassifyValue(tt.text); got != tt.want {
			t.Errorf("ClassifyValue(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestLexerLines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.sjava", []byte("int a;\n\nvoid m() {\nreturn;\n}"))
	lx := lexer.New(fs.Get(id))

	want := []token.LineKind{token.LineVarDecl, token.LineBlank, token.LineMethodDecl, token.LineReturn, token.LineClose}
	lines := lx.All()
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, l := range lines {
		if l.Kind != want[i] {
			t.Errorf("line %d kind = %v, want %v", i+1, l.Kind, want[i])
		}
		if l.Num != uint32(i+1) {
			t.Errorf("line %d numbered %d", i+1, l.Num)
		}
		if got := fs.Get(id).Text(l.Span); got != l.Text {
			t.Errorf("span text %q != line text %q", got, l.Text)
		}
	}
	eof := lx.Next()
	if eof.Kind != token.LineEOF || eof.Span.Start != 28 {
		t.Errorf("eof = %+v", eof)
	}
}
