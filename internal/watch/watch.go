// Package watch re-runs a check when source files change on disk.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"sjavac/internal/trace"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 150 * time.Millisecond

// Options control which changes trigger a re-check.
type Options struct {
	Suffix   string
	Debounce time.Duration
	// Exclude skips paths (and whole directories) it returns true for.
	Exclude func(path string) bool
}

// Watcher watches a file, or a directory tree, for source changes.
type Watcher struct {
	w      *fsnotify.Watcher
	opts   Options
	single string // set when the target is a single file
}

// New starts watching target. For a directory every subdirectory is added
// as well; directories created later are picked up while Run is active.
func New(target string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{w: fw, opts: opts}
	if !info.IsDir() {
		w.single = filepath.Clean(target)
		err = fw.Add(filepath.Dir(w.single))
	} else {
		err = w.addTree(target)
	}
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.opts.Exclude != nil && w.opts.Exclude(path) {
			return filepath.SkipDir
		}
		return w.w.Add(path)
	})
}

// relevant reports whether a change to path should trigger a check.
func (w *Watcher) relevant(path string) bool {
	if w.single != "" {
		return filepath.Clean(path) == w.single
	}
	if !strings.HasSuffix(path, w.opts.Suffix) {
		return false
	}
	return w.opts.Exclude == nil || !w.opts.Exclude(path)
}

// Run blocks until ctx is done, calling onChange with the sorted set of
// paths that changed during each debounce window.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string)) error {
	tracer := trace.FromContext(ctx)
	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) && w.single == "" {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						trace.Point(tracer, trace.ScopeDriver, "watch_add_failed", err.Error(), 0)
					}
					continue
				}
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.opts.Debounce)

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				trace.Point(tracer, trace.ScopeDriver, "watch_overflow", err.Error(), 0)
				continue
			}
			return err

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			trace.Point(tracer, trace.ScopeDriver, "watch_change", strings.Join(changed, ","), 0)
			onChange(ctx, changed)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error { return w.w.Close() }
