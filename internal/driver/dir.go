package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"sjavac/internal/diag"
	"sjavac/internal/source"
	"sjavac/internal/trace"
)

// DirResult collects the per-file results of CheckDir in path order.
type DirResult struct {
	Dir   string
	Files []*CheckResult
}

// Failed returns the number of files that did not pass.
func (r *DirResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if !f.OK() {
			n++
		}
	}
	return n
}

// ExitCode is the worst file result: 2 if any file failed to load, 1 if any
// file has a language error, 0 otherwise.
func (r *DirResult) ExitCode() int {
	code := 0
	for _, f := range r.Files {
		code = max(code, f.ExitCode())
	}
	return code
}

// ListFiles returns the sorted files under dir that carry the configured
// suffix and are not excluded by the manifest.
func ListFiles(dir string, opts Options) ([]string, error) {
	suffix := opts.suffix()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if opts.Manifest != nil && path != dir {
			if rel, relErr := filepath.Rel(opts.Manifest.Root, path); relErr == nil && opts.Manifest.Excluded(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if !d.IsDir() && strings.HasSuffix(path, suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every matching file under dir. Files are independent
// programs, so they are checked concurrently, each with its own FileSet.
// A file that cannot be read becomes an IO4001 diagnostic in its result;
// only a failure to walk dir is returned as an error.
func CheckDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	files, err := ListFiles(dir, opts)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, dir, files, opts)
}

// CheckFiles checks an explicit list of files concurrently.
func CheckFiles(ctx context.Context, dir string, files []string, opts Options) (*DirResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "check_dir")
	defer span.End("")
	span.WithExtra("files", fmt.Sprint(len(files)))

	out := &DirResult{Dir: dir, Files: make([]*CheckResult, len(files))}
	if len(files) == 0 {
		return out, nil
	}
	for _, path := range files {
		emit(opts.Sink, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := CheckFile(trace.WithJob(gctx, i+1), path, opts)
			if err != nil {
				res = ioFailure(path, err, opts)
			}
			if !res.OK() {
				failed.Add(1)
			}
			out.Files[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	span.WithExtra("failed", fmt.Sprint(failed.Load()))
	return out, nil
}

// ioFailure turns a load error into a result carrying one IO diagnostic.
func ioFailure(path string, err error, opts Options) *CheckResult {
	res := &CheckResult{
		Path:    path,
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}
	d := diag.NewError(diag.IOLoadFileError, source.Span{}, err.Error())
	var ioe *IOError
	if errors.As(err, &ioe) {
		d = ioe.Diagnostic()
	}
	res.Bag.Add(d)
	res.Err = &diag.Error{Diag: d}
	emit(opts.Sink, Event{File: path, Status: StatusError, Err: err})
	return res
}
