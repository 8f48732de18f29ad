package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sjavac/internal/project"
)

const validSource = `int count = 0;

void bump(int step) {
    count = step;
    return;
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRootCommandExitCodes(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sjava", validSource)
	syntax := writeFile(t, dir, "syntax.sjava", "int a = 1\n")
	semantic := writeFile(t, dir, "semantic.sjava", "int a = true;\n")
	wrongSuffix := writeFile(t, dir, "good.java", validSource)

	tests := []struct {
		name     string
		args     []string
		want     int
		inStderr string
	}{
		{"valid", []string{good}, 0, ""},
		{"syntax", []string{syntax}, 1, "SYN"},
		{"semantic", []string{semantic}, 1, "SEM"},
		{"missing", []string{filepath.Join(dir, "nope.sjava")}, 2, "IO4001"},
		{"suffix", []string{wrongSuffix}, 2, "IO4002"},
		{"check subcommand", []string{"check", syntax}, 1, "SYN"},
		{"too many args", []string{good, syntax}, 2, "error:"},
		{"bad color", []string{"--color", "purple", good}, 2, "--color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			if code != tt.want {
				t.Fatalf("exit = %d, want %d\nstderr:\n%s", code, tt.want, stderr)
			}
			if tt.inStderr != "" && !strings.Contains(stderr, tt.inStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.inStderr, stderr)
			}
			if tt.want == 0 && stderr != "" {
				t.Errorf("unexpected stderr:\n%s", stderr)
			}
		})
	}
}

func TestPrintCode(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sjava", validSource)
	bad := writeFile(t, dir, "bad.sjava", "void f() {\n}\n")

	for path, want := range map[string]string{good: "0\n", bad: "1\n", filepath.Join(dir, "x.txt"): "2\n"} {
		_, stdout, _ := run(t, "check", "--print-code", path)
		if stdout != want {
			t.Errorf("%s: stdout = %q, want %q", filepath.Base(path), stdout, want)
		}
	}
}

func TestShortFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "global_call.sjava", "void foo() {\n    return;\n}\nfoo();\n")

	code, _, stderr := run(t, "check", "--format", "short", "--path-mode", "basename", path)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	want := "error SYN2005 global_call.sjava:4:1 Cannot perform line: 'foo();' in global scope\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}

	_, _, stderr = run(t, "check", "--format", "short", filepath.Join(dir, "a.txt"))
	if !strings.HasPrefix(stderr, "error IO4002 ") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestJSONFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "uninit.sjava", "int a;\nint b = a;\n")

	code, stdout, _ := run(t, "--format", "json", path)
	if code != 1 {
		t.Fatalf("exit = %d", code)
	}
	var out struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code     string `json:"code"`
			Location struct {
				StartLine uint32 `json:"start_line"`
			} `json:"location"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("bad json: %v\n%s", err, stdout)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "SEM3002" || out.Diagnostics[0].Location.StartLine != 2 {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sjava", validSource)
	writeFile(t, dir, "sub/b.sjava", "int x = 1;\nx = 2.5;\n")
	writeFile(t, dir, "notes.txt", "ignored")

	code, stdout, stderr := run(t, "check", "--ui", "off", "--jobs", "2", "--format", "json", dir)
	if code != 1 {
		t.Fatalf("exit = %d\n%s", code, stderr)
	}
	var reports []struct {
		Path  string `json:"path"`
		OK    bool   `json:"ok"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal([]byte(stdout), &reports); err != nil {
		t.Fatalf("bad json: %v\n%s", err, stdout)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %+v", reports)
	}
	if !reports[0].OK || reports[1].OK || reports[1].Count != 1 {
		t.Errorf("reports = %+v", reports)
	}

	_, _, stderr = run(t, "check", "--ui", "off", dir)
	if !strings.Contains(stderr, "checked 2 files: 1 failed") {
		t.Errorf("summary missing:\n%s", stderr)
	}
	_, _, stderr = run(t, "--quiet", "check", "--ui", "off", dir)
	if strings.Contains(stderr, "checked 2 files") {
		t.Errorf("quiet run printed summary:\n%s", stderr)
	}
}

func TestManifestExcludeAndSuffix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, project.ManifestName, `[package]
name = "demo"

[check]
suffix = ".sj"
exclude = ["gen"]
`)
	writeFile(t, dir, "main.sj", validSource)
	writeFile(t, dir, "gen/broken.sj", "int\n")
	writeFile(t, dir, "other.sjava", "int\n")

	if code, _, stderr := run(t, "check", "--ui", "off", dir); code != 0 {
		t.Fatalf("exit = %d\n%s", code, stderr)
	}
	if code, _, _ := run(t, filepath.Join(dir, "other.sjava")); code != 2 {
		t.Errorf("manifest suffix not applied: exit = %d", code)
	}
}

func TestTimingsFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "good.sjava", validSource)

	code, _, stderr := run(t, "check", "--timings", "--format", "short", path)
	if code != 0 {
		t.Fatalf("exit = %d\n%s", code, stderr)
	}
	if !strings.Contains(stderr, "OBS6001") {
		t.Errorf("timing diagnostic missing:\n%s", stderr)
	}
}

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "c.sjava", "// note\nint a = 1;\n")

	code, stdout, _ := run(t, "classify", "--format", "json", path)
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	var lines []struct {
		Line uint32 `json:"line"`
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal([]byte(stdout), &lines); err != nil {
		t.Fatalf("bad json: %v\n%s", err, stdout)
	}
	if len(lines) != 2 || lines[0].Line != 1 || lines[1].Line != 2 {
		t.Errorf("lines = %+v", lines)
	}

	if code, _, _ := run(t, "classify", "--format", "xml", path); code != 2 {
		t.Errorf("bad format exit = %d", code)
	}
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "p.sjava", validSource)

	code, stdout, _ := run(t, "parse", path)
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	for _, want := range []string{"VarDecl int count = 0", "Method bump(int step)", "Assign count = step", "Return"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("tree missing %q:\n%s", want, stdout)
		}
	}

	// a semantic error still prints the tree
	bad := writeFile(t, dir, "bad.sjava", "int a = true;\n")
	code, stdout, stderr := run(t, "parse", bad)
	if code != 1 || !strings.Contains(stdout, "VarDecl") || !strings.Contains(stderr, "SEM") {
		t.Errorf("exit=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := run(t, "version", "--format", "json", "--full")
	if code != 0 {
		t.Fatalf("exit = %d", code)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "sjavac" || payload.Version == "" || payload.GitCommit != "unknown" {
		t.Errorf("payload = %+v", payload)
	}

	_, stdout, _ = run(t, "version")
	if !strings.HasPrefix(stdout, "sjavac ") {
		t.Errorf("stdout = %q", stdout)
	}
	if code, _, _ := run(t, "version", "--format", "yaml"); code != 2 {
		t.Errorf("bad format exit = %d", code)
	}
}

func TestInitCreatesCheckableProject(t *testing.T) {
	target := filepath.Join(t.TempDir(), "demo")

	code, stdout, stderr := run(t, "init", target)
	if code != 0 {
		t.Fatalf("exit = %d\n%s", code, stderr)
	}
	if !strings.Contains(stdout, project.ManifestName) || !strings.Contains(stdout, sampleFileName) {
		t.Errorf("stdout = %q", stdout)
	}
	if code, _, stderr := run(t, "check", "--ui", "off", target); code != 0 {
		t.Errorf("sample project does not check: %d\n%s", code, stderr)
	}
	if code, _, _ := run(t, "init", target); code != 2 {
		t.Errorf("second init exit = %d", code)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit modes ignored")
	}
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "good.sjava", validSource)
	tracePath := filepath.Join(dir, "trace.ndjson")

	if code, _, stderr := run(t, "--trace", tracePath, "--trace-level", "detail", path); code != 0 {
		t.Fatalf("exit = %d\n%s", code, stderr)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"check"`) {
		t.Errorf("trace has no check span:\n%s", data)
	}
}

func TestRingTraceDumpsFailedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sjava", validSource)
	bad := writeFile(t, dir, "bad.sjava", "void m() {\n    return;\n// done\n}\n")
	tracePath := filepath.Join(dir, "ring.ndjson")

	args := []string{"--trace", tracePath, "--trace-mode", "ring", "--trace-level", "error"}
	if code, _, stderr := run(t, append(args, good)...); code != 0 {
		t.Fatalf("exit = %d\n%s", code, stderr)
	}
	if _, err := os.Stat(tracePath); !os.IsNotExist(err) {
		t.Fatalf("passing run must not dump the ring: %v", err)
	}

	if code, _, _ := run(t, append(args, bad)...); code != 1 {
		t.Fatalf("exit = %d", code)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	// the dump replays the failed file down to the line that broke it
	for _, want := range []string{`bad.sjava"`, `"scope":"line"`, `"line":4`, `"detail":"failed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %s:\n%s", want, out)
		}
	}
}
