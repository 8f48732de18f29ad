package lexer

import (
	"testing"
)

func texts(parts []Part) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, p.Text)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSplitTopLevelRespectsQuotes(t *testing.T) {
	tests := []struct {
		in   string
		seps []string
		want []string
	}{
		{"a, b ,c", []string{","}, []string{"a", "b", "c"}},
		{`"x,y", ',', z`, []string{","}, []string{`"x,y"`, `','`, "z"}},
		{`a && "p||q" || b`, []string{"&&", "||"}, []string{"a", `"p||q"`, "b"}},
		{`"it's", 'x'`, []string{","}, []string{`"it's"`, `'x'`}},
		{`''', d`, []string{","}, []string{`'''`, "d"}},
		{`'é', ','`, []string{","}, []string{`'é'`, `','`}},
		{"   ", []string{","}, nil},
	}
	for _, tt := range tests {
		got := texts(SplitTopLevel(tt.in, 0, tt.seps...))
		if !equalStrings(got, tt.want) {
			t.Errorf("SplitTopLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitTopLevelOffsets(t *testing.T) {
	line := "foo( a ,  bb);"
	parts := SplitTopLevel(line[4:12], 4, ",")
	if len(parts) != 2 {
		t.Fatalf("parts = %v", parts)
	}
	for _, p := range parts {
		if line[p.Off:p.End()] != p.Text {
			t.Errorf("offset mismatch: %q at %d", p.Text, p.Off)
		}
	}
}

func TestSplitFirst(t *testing.T) {
	l, r, ok := SplitFirst(`s = "a=b"`, 10, '=')
	if !ok || l.Text != "s" || r.Text != `"a=b"` {
		t.Fatalf("got %q %q %v", l.Text, r.Text, ok)
	}
	if l.Off != 10 || r.Off != 14 {
		t.Errorf("offsets %d %d", l.Off, r.Off)
	}
	if _, _, ok := SplitFirst(`"a=b"`, 0, '='); ok {
		t.Error("quoted '=' must not split")
	}
}

func TestSplitDecl(t *testing.T) {
	line := `  final String a = "x, y", b=c;`
	d, ok := SplitDecl(line)
	if !ok {
		t.Fatal("SplitDecl failed")
	}
	if !d.Final || d.Type.Text != "String" {
		t.Errorf("final=%v type=%q", d.Final, d.Type.Text)
	}
	if len(d.Entries) != 2 {
		t.Fatalf("entries = %+v", d.Entries)
	}
	e0, e1 := d.Entries[0], d.Entries[1]
	if e0.Name.Text != "a" || !e0.HasValue || e0.Value.Text != `"x, y"` {
		t.Errorf("entry 0 = %+v", e0)
	}
	if e1.Name.Text != "b" || e1.Value.Text != "c" {
		t.Errorf("entry 1 = %+v", e1)
	}
	for _, p := range []Part{d.Type, e0.Name, e0.Value, e1.Name, e1.Value} {
		if line[p.Off:p.End()] != p.Text {
			t.Errorf("offset mismatch for %q", p.Text)
		}
	}

	d, _ = SplitDecl("int a;")
	if d.Final || len(d.Entries) != 1 || d.Entries[0].HasValue {
		t.Errorf("plain decl = %+v", d)
	}
}

func TestSplitAssign(t *testing.T) {
	e, ok := SplitAssign("  x = 'c' ;")
	if !ok || e.Name.Text != "x" || e.Value.Text != "'c'" {
		t.Fatalf("SplitAssign = %+v, %v", e, ok)
	}
}

func TestSplitMethodDecl(t *testing.T) {
	line := "void foo(final int a, String  b ) {"
	m, ok := SplitMethodDecl(line)
	if !ok || m.Name.Text != "foo" || len(m.Params) != 2 {
		t.Fatalf("SplitMethodDecl = %+v, %v", m, ok)
	}
	p0, p1 := m.Params[0], m.Params[1]
	if !p0.Final || p0.Type.Text != "int" || p0.Name.Text != "a" {
		t.Errorf("param 0 = %+v", p0)
	}
	if p1.Final || p1.Type.Text != "String" || p1.Name.Text != "b" {
		t.Errorf("param 1 = %+v", p1)
	}
	if line[p1.Name.Off:p1.Name.End()] != "b" {
		t.Errorf("param name offset %d", p1.Name.Off)
	}

	m, ok = SplitMethodDecl("void run() {")
	if !ok || len(m.Params) != 0 {
		t.Errorf("no-param method = %+v", m)
	}
}

func TestSplitCallAndCondition(t *testing.T) {
	c, ok := SplitCall(`print("a(b)", 3);`)
	if !ok || c.Name.Text != "print" || !equalStrings(texts(c.Args), []string{`"a(b)"`, "3"}) {
		t.Fatalf("SplitCall = %+v", c)
	}
	c, _ = SplitCall("go( );")
	if len(c.Args) != 0 {
		t.Errorf("empty call args = %v", c.Args)
	}

	cond, ok := SplitCondition("while (a || 5.0&&true) {")
	if !ok || cond.Keyword.Text != "while" {
		t.Fatalf("SplitCondition = %+v", cond)
	}
	if !equalStrings(texts(cond.Terms), []string{"a", "5.0", "true"}) {
		t.Errorf("terms = %q", texts(cond.Terms))
	}
}
