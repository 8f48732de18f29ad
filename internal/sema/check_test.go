package sema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sjavac/internal/diag"
	"sjavac/internal/parser"
	"sjavac/internal/source"
	"sjavac/internal/symbols"
	"sjavac/internal/trace"
)

func mustParse(t *testing.T, src string) *symbols.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, src)
	}
	return prog
}

// method wraps body lines into a method declaration ending in return.
func method(name string, body ...string) string {
	var sb strings.Builder
	sb.WriteString("void " + name + "() {\n")
	for _, l := range body {
		sb.WriteString("    " + l + "\n")
	}
	sb.WriteString("    return;\n}\n")
	return sb.String()
}

func wantCode(t *testing.T, err error, code diag.Code) {
	t.Helper()
	if code == diag.UnknownCode {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected %s, got none", code.ID())
	}
	if !errors.Is(err, &diag.Error{Diag: diag.Diagnostic{Code: code}}) {
		t.Fatalf("got %v, want %s", err, code.ID())
	}
	if !diag.IsSemantic(err) {
		t.Errorf("%v is not a semantic error", err)
	}
}

func TestValidateStatements(t *testing.T) {
	const ok = diag.UnknownCode
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		// declarations
		{"decl literals", "int a = 1;\ndouble d = 2;\nboolean b = 1.5;\nchar c = 'x';\nString s = \"s\";\n", ok},
		{"decl from initialised", "int a = 1;\nint b = a;\n", ok},
		{"decl in one line", "int a = 1, b = a;\n", ok},
		{"decl from uninitialised", "int a;\nint b = a;\n", diag.SemaUnknownOrUninitializedVariable},
		{"decl from unknown", "int b = a;\n", diag.SemaUnknownOrUninitializedVariable},
		{"decl incompatible", "int a = 1.5;\n", diag.SemaIncompatibleDeclaration},
		{"decl quote char", "char c = ''';\nchar d = c;\n", ok},
		{"decl string from char", "String s = 'c';\n", diag.SemaIncompatibleDeclaration},
		{"decl by declared type", "double d = 1;\nint i = d;\n", diag.SemaIncompatibleDeclaration},
		{"decl duplicate", "int x = 1;\nint x = 2;\n", diag.SemaDuplicateDeclaration},
		{"decl duplicate same line", "int x, x;\n", diag.SemaDuplicateDeclaration},
		{"decl duplicate other type", "int x;\nString x;\n", diag.SemaDuplicateDeclaration},
		{"final without value", "final int x;\n", diag.SemaFinalNotInitialized},
		{"final with value", "final int x = 5;\n", ok},

		// assignments
		{"assign ok", "int a;\na = 5;\na = 6;\n", ok},
		{"assign widening", "double d;\nd = 5;\n", ok},
		{"assign undeclared", "a = 5;\n", diag.SemaUndeclaredVariable},
		{"assign final", "final int x = 5;\nx = 6;\n", diag.SemaFinalReassignment},
		{"assign incompatible", "int a;\na = \"s\";\n", diag.SemaIncompatibleAssignment},
		{"assign from uninitialised", "int a;\nint b;\nb = a;\n", diag.SemaUnknownOrUninitializedVariable},
		{"assign then use", "int a;\na = 3;\nint b = a;\n", ok},

		// calls
		{"call ok", "void foo(int x) {\n    return;\n}\n" + method("m", "foo(3);"), ok},
		{"call declared later", method("m", "foo(3);") + "void foo(int x) {\n    return;\n}\n", ok},
		{"call widening", "void foo(double x) {\n    return;\n}\n" + method("m", "foo(3);"), ok},
		{"call not found", method("m", "foo(1);"), diag.SemaMethodNotFound},
		{"call type mismatch", "void foo(int x) {\n    return;\n}\n" + method("m", `foo("s");`), diag.SemaArgumentTypeMismatch},
		{"call uses current type", "void foo(int a) {\n    return;\n}\n" + method("m", "double d = 5;", "foo(d);"), ok},
		{"call boolean holding int", "void foo(int a) {\n    return;\n}\n" + method("m", "boolean b = 5;", "foo(b);"), ok},
		{"call string var", "void foo(int a) {\n    return;\n}\n" + method("m", `String s = "a";`, "foo(s);"), diag.SemaArgumentTypeMismatch},
		{"call too few", "void foo(int x) {\n    return;\n}\n" + method("m", "foo();"), diag.SemaArgumentCountMismatch},
		{"call too many", "void foo(int x) {\n    return;\n}\n" + method("m", "foo(1,2);"), diag.SemaArgumentCountMismatch},
		{"call with param", "void foo(int x) {\n    foo(x);\n    return;\n}\n", ok},
		{"call with uninitialised", "void foo(int x) {\n    return;\n}\n" + method("m", "int a;", "foo(a);"), diag.SemaUnknownOrUninitializedVariable},
		{"recursion", method("m", "m();"), ok},

		// conditions
		{"if int", method("m", "if (5) {", "}"), ok},
		{"if bool", method("m", "if (true) {", "}"), ok},
		{"while double", method("m", "while (-.5) {", "}"), ok},
		{"if string", method("m", `if ("a") {`, "}"), diag.SemaInvalidConditionType},
		{"if char", method("m", `if ('a') {`, "}"), diag.SemaInvalidConditionType},
		{"if uninitialised", method("m", "int x;", "if (x) {", "}"), diag.SemaUnknownOrUninitializedVariable},
		{"if unknown", method("m", "if (x) {", "}"), diag.SemaUnknownOrUninitializedVariable},
		{"if mixed terms", method("m", "int x = 1;", "boolean b = true;", "if (x && b || 2.5) {", "}"), ok},
		{"if string var", method("m", `String s = "a";`, "if (s) {", "}"), diag.SemaInvalidConditionType},
		{"condition uses current type", method("m", "boolean b = 1;", "if (b) {", "}"), ok},
		{"body is validated", method("m", "if (true) {", "y = 1;", "}"), diag.SemaUndeclaredVariable},

		// scoping
		{"param visible", "void m(int a) {\n    int b = a;\n    return;\n}\n", ok},
		{"param duplicate decl", "void m(int a) {\n    int a = 1;\n    return;\n}\n", diag.SemaDuplicateDeclaration},
		{"final param", "void m(final int a) {\n    a = 1;\n    return;\n}\n", diag.SemaFinalReassignment},
		{"shadow global", "int a = 1;\n" + method("m", "String a = \"s\";"), ok},
		{"shadow in block", method("m", "int a = 1;", "if (a) {", "double a = 2.5;", "}"), ok},
		{"global visible in method", "int g = 1;\n" + method("m", "g = 2;", "int x = g;"), ok},
		{"global declared after method", method("m", "int x = g;") + "int g = 1;\n", ok},
		{"block local not visible after", method("m", "if (true) {", "int a = 1;", "}", "a = 2;"), diag.SemaUndeclaredVariable},
		{"method locals isolated", method("a", "int x = 1;") + method("b", "x = 2;"), diag.SemaUndeclaredVariable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wantCode(t, Validate(mustParse(t, tc.src)), tc.code)
		})
	}
}

// Assigning an outer variable inside a block only initialises it within
// that block.
func TestAssignmentInBlockDoesNotLeak(t *testing.T) {
	inside := method("m",
		"int a;",
		"if (true) {",
		"a = 5;",
		"int b = a;",
		"}",
	)
	wantCode(t, Validate(mustParse(t, inside)), diag.UnknownCode)

	after := method("m",
		"int a;",
		"if (true) {",
		"a = 5;",
		"}",
		"int b = a;",
	)
	wantCode(t, Validate(mustParse(t, after)), diag.SemaUnknownOrUninitializedVariable)

	// the assignment occupies the name in the block, so declaring it
	// afterwards is a duplicate
	redeclare := "int g;\n" + method("m", "g = 1;", "int g = 2;")
	wantCode(t, Validate(mustParse(t, redeclare)), diag.SemaDuplicateDeclaration)

	// a nested block is a new scope and may still declare the name
	nested := "int g;\n" + method("m", "g = 1;", "if (true) {", "int g = 2;", "}")
	wantCode(t, Validate(mustParse(t, nested)), diag.UnknownCode)

	// a global assigned inside a method stays uninitialised for other methods
	global := "int g;\n" + method("a", "g = 1;") + method("b", "int x = g;")
	wantCode(t, Validate(mustParse(t, global)), diag.SemaUnknownOrUninitializedVariable)
}

func TestEndToEnd(t *testing.T) {
	valid := "final int x = 5;\nvoid m() {\n    return;\n}\n"
	wantCode(t, Validate(mustParse(t, valid)), diag.UnknownCode)

	if _, err := parser.Parse("final int x = 5;\nvoid m() {\n}\n"); !errors.Is(err, &diag.Error{Diag: diag.Diagnostic{Code: diag.SynMissingReturn}}) {
		t.Errorf("missing return: got %v", err)
	}

	noValue := "final int x;\nvoid m() {\n    return;\n}\n"
	wantCode(t, Validate(mustParse(t, noValue)), diag.SemaFinalNotInitialized)
}

func TestValidateIsRepeatable(t *testing.T) {
	prog := mustParse(t, "int a;\n"+method("m", "a = 1;", "int b = a;"))
	for i := range 3 {
		if err := Validate(prog); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if err := prog.Validate(); err != nil {
		t.Fatalf("tree changed: %v", err)
	}
}

func TestCheckReportsFirstErrorOnly(t *testing.T) {
	src := "int a = \"s\";\nb = 1;\n" + method("m", "foo();")
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sjava", []byte(src))
	pr := parser.ParseFile(context.Background(), fs, id, parser.Options{})
	if pr.Err != nil {
		t.Fatal(pr.Err)
	}

	bag := diag.NewBag(8)
	res := Check(context.Background(), pr.Program, Options{Reporter: diag.BagReporter{Bag: bag}})
	wantCode(t, res.Err, diag.SemaIncompatibleDeclaration)
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", bag.Len())
	}
	if res.Stmts != 1 || res.Methods != 0 {
		t.Errorf("visited stmts=%d methods=%d", res.Stmts, res.Methods)
	}
	d := bag.Items()[0]
	if got := fs.Get(id).Text(d.Primary); got != `"s"` {
		t.Errorf("primary span text = %q", got)
	}
}

func TestCheckNotes(t *testing.T) {
	src := "void foo(int x) {\n    return;\n}\n" + method("m", "foo(1, 2);")
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sjava", []byte(src))
	pr := parser.ParseFile(context.Background(), fs, id, parser.Options{})
	bag := diag.NewBag(8)
	Check(context.Background(), pr.Program, Options{Reporter: diag.BagReporter{Bag: bag}})
	d, ok := bag.FirstError()
	if !ok || d.Code != diag.SemaArgumentCountMismatch {
		t.Fatalf("got %+v", d)
	}
	if d.Message != "Method foo expected 1 args, but got 2" {
		t.Errorf("message = %q", d.Message)
	}
	if len(d.Notes) != 1 || fs.Get(id).Text(d.Notes[0].Span) != "foo" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestCheckTracesMethods(t *testing.T) {
	tr := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), tr)
	prog := mustParse(t, method("a")+method("b"))
	if res := Check(ctx, prog, Options{}); res.Err != nil || res.Methods != 2 {
		t.Fatalf("result = %+v", res)
	}
	var names []string
	for _, ev := range tr.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names = append(names, ev.Name)
		}
	}
	if got := strings.Join(names, ","); got != "sema,method:a,method:b" {
		t.Errorf("spans = %s", got)
	}
}

func TestCheckNilProgram(t *testing.T) {
	if Validate(nil) == nil {
		t.Fatal("nil program must fail")
	}
}
