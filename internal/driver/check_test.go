package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"sjavac/internal/diag"
	"sjavac/internal/project"
)

func TestGoldenFiles(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "golden", "*.sjava"))
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) == 0 {
		t.Fatal("no golden inputs")
	}
	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".sjava")
		t.Run(name, func(t *testing.T) {
			want, err := os.ReadFile(strings.TrimSuffix(input, ".sjava") + ".golden")
			if err != nil {
				t.Fatal(err)
			}
			res, err := CheckFile(context.Background(), input, Options{})
			if err != nil {
				t.Fatalf("CheckFile: %v", err)
			}
			got := diag.FormatGoldenDiagnostics(res.Bag.Items(), res.FileSet, false)
			if strings.TrimSpace(got) != strings.TrimSpace(string(want)) {
				t.Errorf("diagnostics mismatch\n got: %s\nwant: %s", got, want)
			}
			if wantOK := strings.TrimSpace(string(want)) == ""; res.OK() != wantOK {
				t.Errorf("OK() = %v, want %v", res.OK(), wantOK)
			}
		})
	}
}

func TestCheckSourceErrorKinds(t *testing.T) {
	ctx := context.Background()

	res, err := CheckSource(ctx, "a.sjava", "int a = 1;\n", Options{})
	if err != nil || !res.OK() || res.ExitCode() != 0 || res.Program == nil {
		t.Fatalf("valid source: res=%+v err=%v", res, err)
	}

	res, err = CheckSource(ctx, "b.sjava", "int a = 1\n", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !diag.IsSyntax(res.Err) || res.ExitCode() != 1 || res.Program != nil {
		t.Errorf("syntax error: %v (exit %d)", res.Err, res.ExitCode())
	}

	res, err = CheckSource(ctx, "c.sjava", "int a = true;\n", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(res.Err, &diag.Error{Diag: diag.Diagnostic{Code: diag.SemaIncompatibleDeclaration}}) {
		t.Errorf("semantic error: %v", res.Err)
	}
	if res.Program == nil {
		t.Error("program should survive a semantic error")
	}
	if res.Bag.Len() != 1 {
		t.Errorf("bag has %d diagnostics, want only the first error", res.Bag.Len())
	}
}

func TestCheckFileIOErrors(t *testing.T) {
	_, err := CheckFile(context.Background(), "main.java", Options{})
	var ioe *IOError
	if !errors.As(err, &ioe) || ioe.Code != diag.IOBadSuffix || !errors.Is(err, ErrBadSuffix) {
		t.Fatalf("bad suffix: %v", err)
	}

	_, err = CheckFile(context.Background(), filepath.Join(t.TempDir(), "missing.sjava"), Options{})
	if !errors.As(err, &ioe) || ioe.Code != diag.IOLoadFileError || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: %v", err)
	}
	if d := ioe.Diagnostic(); d.Code != diag.IOLoadFileError || d.Severity != diag.SevError {
		t.Errorf("Diagnostic() = %+v", d)
	}

	if _, err := CheckSource(context.Background(), "x.txt", "", Options{Suffix: ".sj"}); !errors.Is(err, ErrBadSuffix) {
		t.Errorf("custom suffix not enforced: %v", err)
	}
}

func TestCheckTimings(t *testing.T) {
	res, err := CheckSource(context.Background(), "t.sjava", "int a;\n", Options{Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Timing == nil || len(res.Timing.Phases) != 2 {
		t.Fatalf("Timing = %+v", res.Timing)
	}
	items := res.Bag.Items()
	last := items[len(items)-1]
	if last.Code != diag.ObsTimings || len(last.Notes) != 1 || !strings.Contains(last.Notes[0].Msg, `"name":"parse"`) {
		t.Errorf("timing diagnostic = %+v", last)
	}
	if !res.OK() {
		t.Error("timing info must not fail the check")
	}
}

func TestCheckEmitsEvents(t *testing.T) {
	var got []Status
	sink := SinkFunc(func(e Event) { got = append(got, e.Status) })
	if _, err := CheckSource(context.Background(), "e.sjava", "int a = x;\n", Options{Sink: sink}); err != nil {
		t.Fatal(err)
	}
	want := []Status{StatusParsing, StatusValidating, StatusError}
	if !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.sjava":         "int b = 1;\n",
		"a.sjava":         "void f() {\n}\n",
		"sub/c.sjava":     "char c = 'x';\n",
		"build/gen.sjava": "garbage\n",
		"notes.txt":       "ignored\n",
	})
	manifest := project.Default()
	manifest.Root = dir
	manifest.Check.Exclude = []string{"build"}

	var mu sync.Mutex
	final := map[string]Status{}
	sink := SinkFunc(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		final[filepath.Base(e.File)] = e.Status
	})

	res, err := CheckDir(context.Background(), dir, Options{Jobs: 2, Manifest: &manifest, Sink: sink})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range res.Files {
		names = append(names, filepath.Base(f.Path))
	}
	if !slices.Equal(names, []string{"a.sjava", "b.sjava", "c.sjava"}) {
		t.Fatalf("files = %v", names)
	}
	if res.Failed() != 1 || res.Files[0].OK() || !diag.IsSyntax(res.Files[0].Err) {
		t.Errorf("failed = %d, a.sjava err = %v", res.Failed(), res.Files[0].Err)
	}
	if res.ExitCode() != 1 {
		t.Errorf("ExitCode = %d", res.ExitCode())
	}
	if final["a.sjava"] != StatusError || final["b.sjava"] != StatusOK || final["c.sjava"] != StatusOK {
		t.Errorf("final statuses = %v", final)
	}
	if _, ok := final["gen.sjava"]; ok {
		t.Error("excluded file was checked")
	}
}

func TestCheckDirUnreadableFile(t *testing.T) {
	res, err := CheckFiles(context.Background(), ".", []string{filepath.Join(t.TempDir(), "gone.sjava")}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 1 || res.ExitCode() != 2 || res.Files[0].ExitCode() != 2 {
		t.Fatalf("ExitCode = %d", res.ExitCode())
	}
	if d, ok := res.Files[0].Bag.FirstError(); !ok || d.Code != diag.IOLoadFileError {
		t.Errorf("first error = %+v", d)
	}
}

func TestCheckDirEmpty(t *testing.T) {
	res, err := CheckDir(context.Background(), t.TempDir(), Options{})
	if err != nil || len(res.Files) != 0 || res.ExitCode() != 0 {
		t.Errorf("empty dir: %+v, %v", res, err)
	}
}
