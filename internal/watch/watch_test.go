package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsChangedSources(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, Options{Suffix: ".sjava", Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	got := make(chan []string, 4)
	go func() {
		_ = w.Run(ctx, func(_ context.Context, changed []string) { got <- changed })
	}()

	go func() {
		_ = os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0o644)
		_ = os.WriteFile(filepath.Join(dir, "main.sjava"), []byte("int a;\n"), 0o644)
	}()

	select {
	case changed := <-got:
		if len(changed) != 1 || filepath.Base(changed[0]) != "main.sjava" {
			t.Errorf("changed = %v", changed)
		}
	case <-ctx.Done():
		t.Fatal("timeout waiting for change")
	}
}

func TestWatcherSingleFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "one.sjava")
	if err := os.WriteFile(target, []byte("int a;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(target, Options{Suffix: ".sjava", Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer w.Close()

	if w.relevant(filepath.Join(dir, "other.sjava")) {
		t.Error("sibling file should be ignored")
	}
	if !w.relevant(target) {
		t.Error("target should be relevant")
	}
}

func TestWatcherExclude(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, Options{Suffix: ".sjava", Exclude: func(p string) bool { return filepath.Base(filepath.Dir(p)) == "build" }})
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer w.Close()
	if w.relevant(filepath.Join(dir, "build", "x.sjava")) {
		t.Error("excluded path reported as relevant")
	}
	if w.opts.Debounce != DefaultDebounce {
		t.Errorf("Debounce = %v", w.opts.Debounce)
	}
}

func TestNewMissingTarget(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope"), Options{}); err == nil {
		t.Error("expected error")
	}
}
