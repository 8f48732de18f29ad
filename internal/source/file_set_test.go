package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.sjava", []byte("int a;"), 0)
	id2 := fs.Add("test.sjava", []byte("int b;"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("expected sequential ids 0,1, got %d,%d", id1, id2)
	}

	latest, ok := fs.GetLatest("test.sjava")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "int a;" {
		t.Errorf("first version content = %q", got)
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.sjava", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, expected)
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], val)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if file.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", file.LineCount())
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		raw   []byte
		want  string
		flags FileFlags
	}{
		{"plain", []byte("int a;\n"), "int a;\n", 0},
		{"crlf", []byte("a\r\nb\r\n"), "a\nb\n", FileNormalizedCRLF},
		{"lone cr kept", []byte("a\rb"), "a\rb", 0},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'x', '\n'}, "x\n", FileHadBOM},
		{"utf16le bom", []byte{0xFF, 0xFE, 'x', 0, '\n', 0}, "x\n", FileHadBOM | FileDecodedUTF16},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'x', 0, '\n'}, "x\n", FileHadBOM | FileDecodedUTF16},
		{"nfc", []byte("String s = \"e\u0301\";"), "String s = \"\u00e9\";", FileNormalizedNFC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags, err := Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
			if flags != tt.flags {
				t.Errorf("flags = %b, want %b", flags, tt.flags)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.sjava", []byte("int a;\n  a = 5;\n"))

	start, end := fs.Resolve(Span{File: id, Start: 9, End: 10})
	if start != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 2, Col: 4}) {
		t.Errorf("end = %+v", end)
	}

	// '\n' belongs to the line it terminates
	nl, _ := fs.Resolve(Span{File: id, Start: 6, End: 6})
	if nl != (LineCol{Line: 1, Col: 7}) {
		t.Errorf("newline position = %+v", nl)
	}
}

func TestLineSpanAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("l.sjava", []byte("first\n\nthird"))
	f := fs.Get(id)

	cases := map[uint32]string{0: "", 1: "first", 2: "", 3: "third", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
	sp := f.LineSpan(3)
	if f.Text(sp) != "third" {
		t.Errorf("Text(LineSpan(3)) = %q", f.Text(sp))
	}
	if f.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", f.LineCount())
	}
}

func TestSpanSubAndCover(t *testing.T) {
	sp := Span{File: 1, Start: 10, End: 20}
	if got := sp.Sub(2, 5); got != (Span{File: 1, Start: 12, End: 15}) {
		t.Errorf("Sub = %v", got)
	}
	if got := sp.Sub(8, 50); got != (Span{File: 1, Start: 18, End: 20}) {
		t.Errorf("clamped Sub = %v", got)
	}
	other := Span{File: 1, Start: 5, End: 12}
	if got := sp.Cover(other); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover = %v", got)
	}
	if !sp.Contains(Span{File: 1, Start: 10, End: 20}) || sp.Contains(other) {
		t.Error("Contains mismatch")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.sjava")
	if err := os.WriteFile(path, []byte{0xEF, 0xBB, 0xBF, 'a', '\r', '\n'}, 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&(FileHadBOM|FileNormalizedCRLF) != FileHadBOM|FileNormalizedCRLF {
		t.Errorf("flags = %b", f.Flags)
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.sjava")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	inside := filepath.Join(base, "pkg", "a.sjava")
	outside := filepath.Join(tmp, "other", "b.sjava")

	got, err := RelativePath(inside, base)
	if err != nil || got != "pkg/a.sjava" {
		t.Errorf("inside: %q, %v", got, err)
	}
	got, err = RelativePath(outside, base)
	if err != nil || got != normalizePath(outside) {
		t.Errorf("outside: %q, %v", got, err)
	}
}
