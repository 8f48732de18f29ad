package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"sjavac/internal/diag"
	"sjavac/internal/observ"
	"sjavac/internal/parser"
	"sjavac/internal/project"
	"sjavac/internal/sema"
	"sjavac/internal/source"
	"sjavac/internal/symbols"
	"sjavac/internal/trace"
	"sjavac/internal/version"
)

// DefaultMaxDiagnostics is used when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

// ErrBadSuffix is wrapped by IOError when the file name lacks the expected suffix.
var ErrBadSuffix = errors.New("bad source file suffix")

// IOError reports that a file could not be checked at all. The CLI maps it
// to exit status 2, unlike language errors which land in the Bag.
type IOError struct {
	Code diag.Code
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Diagnostic renders the failure for the diagnostic printers.
func (e *IOError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, source.Span{}, e.Error())
}

// Options configure a check run.
type Options struct {
	Suffix         string // required file suffix, project.DefaultSuffix when empty
	MaxDiagnostics int
	Jobs           int  // CheckDir worker limit, GOMAXPROCS when <= 0
	Timings        bool // append an OBS6001 timing diagnostic per file
	Cache          *DiskCache
	Sink           Sink
	// Manifest supplies [check].exclude for CheckDir. May be nil.
	Manifest *project.Manifest
}

func (o Options) suffix() string {
	if o.Suffix == "" {
		return project.DefaultSuffix
	}
	return o.Suffix
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// CheckResult is the outcome of checking one file.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	// Program is nil when parsing failed or the result came from the cache.
	Program *symbols.Program
	Bag     *diag.Bag
	// Err is the first structural or semantic error as *diag.Error.
	Err    error
	Lines  uint32
	Cached bool
	Timing *observ.Report
}

// OK reports whether the file passed both passes.
func (r *CheckResult) OK() bool { return r != nil && r.Err == nil }

// ExitCode maps the result onto the CLI contract: 0 ok, 1 language error,
// 2 unreadable file.
func (r *CheckResult) ExitCode() int {
	if r.OK() {
		return 0
	}
	return max(diag.CodeOf(r.Err).Phase().ExitCode(), 1)
}

// CheckFile loads path and runs the structural and semantic passes.
// Failing to load the file, or a wrong suffix, is returned as *IOError.
func CheckFile(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	if !strings.HasSuffix(path, opts.suffix()) {
		return nil, &IOError{
			Code: diag.IOBadSuffix,
			Path: path,
			Err:  fmt.Errorf("%w: expected %q", ErrBadSuffix, opts.suffix()),
		}
	}
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	id, err := fs.Load(path)
	if err != nil {
		return nil, &IOError{Code: diag.IOLoadFileError, Path: path, Err: err}
	}
	return checkLoaded(ctx, fs, id, opts), nil
}

// CheckSource checks in-memory text. name is only used in messages, but it
// must still carry the configured suffix.
func CheckSource(ctx context.Context, name, src string, opts Options) (*CheckResult, error) {
	if !strings.HasSuffix(name, opts.suffix()) {
		return nil, &IOError{
			Code: diag.IOBadSuffix,
			Path: name,
			Err:  fmt.Errorf("%w: expected %q", ErrBadSuffix, opts.suffix()),
		}
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	return checkLoaded(ctx, fs, id, opts), nil
}

func checkLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *CheckResult {
	file := fs.Get(id)
	started := time.Now()
	res := &CheckResult{
		Path:    file.Path,
		FileSet: fs,
		FileID:  id,
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}

	ctx, span := trace.StartFile(ctx, "check", file.Path)
	defer func() {
		outcome := trace.OutcomeOK
		if res.Err != nil {
			outcome = trace.OutcomeFailed
		}
		span.End(outcome)
	}()

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	rep := &diag.FirstErrorReporter{Next: diag.BagReporter{Bag: res.Bag}}
	key := project.CacheKey(project.Digest(file.Hash), version.Version)

	if opts.Cache != nil {
		var (
			payload DiskPayload
			hit     bool
			err     error
		)
		timer.Measure("cache", func() string {
			hit, err = opts.Cache.Get(key, &payload)
			return fmt.Sprintf("hit=%t", hit)
		})
		if err == nil && hit && payload.Version == version.Version {
			payload.replay(id, rep)
			res.Lines = payload.Lines
			res.Err = rep.Err()
			res.Cached = true
			span.WithExtra("cached", "true")
			return finish(res, opts, timer, started)
		}
	}

	emit(opts.Sink, Event{File: file.Path, Status: StatusParsing})
	var pres parser.Result
	timer.Measure("parse", func() string {
		pres = parser.ParseFile(ctx, fs, id, parser.Options{Reporter: rep})
		return fmt.Sprintf("lines=%d", pres.Lines)
	})
	res.Lines = pres.Lines
	res.Err = pres.Err

	if res.Err == nil {
		emit(opts.Sink, Event{File: file.Path, Status: StatusValidating})
		var sres sema.Result
		timer.Measure("sema", func() string {
			sres = sema.Check(ctx, pres.Program, sema.Options{Reporter: rep})
			return fmt.Sprintf("stmts=%d", sres.Stmts)
		})
		res.Program = pres.Program
		res.Err = sres.Err
	}

	if opts.Cache != nil {
		// ошибка записи в кэш не ломает проверку
		if err := opts.Cache.Put(key, payloadFromBag(file.Path, res.Lines, version.Version, res.Bag)); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache_put_failed", err.Error(), span.ID())
		}
	}
	return finish(res, opts, timer, started)
}

func finish(res *CheckResult, opts Options, timer *observ.Timer, started time.Time) *CheckResult {
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "file",
			Path:    res.Path,
			Cached:  res.Cached,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	status := StatusOK
	if res.Err != nil {
		status = StatusError
	}
	emit(opts.Sink, Event{
		File:    res.Path,
		Status:  status,
		Cached:  res.Cached,
		Err:     res.Err,
		Elapsed: time.Since(started),
	})
	return res
}
