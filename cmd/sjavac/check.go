package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sjavac/internal/diag"
	"sjavac/internal/diagfmt"
	"sjavac/internal/driver"
	"sjavac/internal/project"
	"sjavac/internal/source"
	"sjavac/internal/trace"
	"sjavac/internal/watch"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.sjava|dir>",
		Short: "Check s-Java files for structural and semantic errors",
		Long: `Check a single s-Java file, or every matching file under a directory.
Exit status is 0 when all files are legal, 1 on a syntax or semantic error
and 2 when a file cannot be read or has the wrong suffix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
	addCheckFlags(cmd)
	return cmd
}

// addCheckFlags registers the check flags on cmd. The root command gets
// them too, so `sjavac --format json file.sjava` works.
func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	cmd.Flags().String("path-mode", "auto", "path display mode (auto|absolute|relative|basename)")
	cmd.Flags().Bool("with-notes", true, "include diagnostic notes")
	cmd.Flags().Int("jobs", 0, "max parallel files for directories (0=auto)")
	cmd.Flags().Bool("timings", false, "report per-file phase timings")
	cmd.Flags().Bool("watch", false, "re-check when sources change")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().Bool("disk-cache", false, "reuse results of unchanged files")
	cmd.Flags().Bool("print-code", false, "print the exit status on stdout")
}

// checkFlags is the resolved check configuration: flags over the manifest.
type checkFlags struct {
	format    string
	pathMode  diagfmt.PathMode
	withNotes bool
	uiMode    uiMode
	watch     bool
	printCode bool
	quiet     bool
	color     bool
	opts      driver.Options
	manifest  project.Manifest
}

func readCheckFlags(cmd *cobra.Command, target string) (*checkFlags, error) {
	fl := cmd.Flags()
	cf := &checkFlags{}
	var err error

	if cf.format, err = fl.GetString("format"); err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	cf.format = strings.ToLower(cf.format)
	switch cf.format {
	case "pretty", "short", "json":
	default:
		return nil, fmt.Errorf("unsupported format %q (must be pretty, short or json)", cf.format)
	}
	pathModeStr, err := fl.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if cf.pathMode, err = diagfmt.ParsePathMode(pathModeStr); err != nil {
		return nil, err
	}
	if cf.withNotes, err = fl.GetBool("with-notes"); err != nil {
		return nil, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	uiStr, err := fl.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if cf.uiMode, err = readUIMode(uiStr); err != nil {
		return nil, err
	}
	if cf.watch, err = fl.GetBool("watch"); err != nil {
		return nil, fmt.Errorf("failed to get watch flag: %w", err)
	}
	if cf.printCode, err = fl.GetBool("print-code"); err != nil {
		return nil, fmt.Errorf("failed to get print-code flag: %w", err)
	}
	if cf.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if cf.color, err = resolveColor(cmd); err != nil {
		return nil, err
	}

	cf.manifest, err = project.Discover(target)
	if err != nil {
		return nil, err
	}
	if err = cf.manifest.CheckVersion(); err != nil {
		return nil, err
	}
	check := cf.manifest.Check
	cf.opts = driver.Options{
		Suffix:         check.Suffix,
		MaxDiagnostics: check.MaxDiagnostics,
		Jobs:           check.Jobs,
		Manifest:       &cf.manifest,
	}

	// Флаги перекрывают манифест, только если заданы явно
	if f := cmd.Root().PersistentFlags().Lookup("max-diagnostics"); f != nil && f.Changed {
		if cf.opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if fl.Changed("jobs") {
		if cf.opts.Jobs, err = fl.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if cf.opts.Timings, err = fl.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	useCache := check.DiskCache
	if fl.Changed("disk-cache") {
		if useCache, err = fl.GetBool("disk-cache"); err != nil {
			return nil, fmt.Errorf("failed to get disk-cache flag: %w", err)
		}
	}
	if useCache {
		cache, cerr := driver.OpenDiskCache("sjavac")
		if cerr != nil {
			// Кэш необязателен: без него просто медленнее
			trace.Point(trace.FromContext(cmd.Context()), trace.ScopeDriver, "disk_cache_unavailable", cerr.Error(), 0)
		} else {
			cf.opts.Cache = cache
		}
	}
	return cf, nil
}

// runCheck checks target and prints the diagnostics. A non-zero outcome is
// returned as *exitError.
func runCheck(cmd *cobra.Command, target string) error {
	cf, err := readCheckFlags(cmd, target)
	if err != nil {
		return err
	}
	code := checkOnce(cmd.Context(), cmd, target, cf)
	if cf.watch {
		return watchAndCheck(cmd, target, cf)
	}
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// checkOnce runs a single check of target and returns its exit status.
func checkOnce(ctx context.Context, cmd *cobra.Command, target string, cf *checkFlags) int {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	info, statErr := os.Stat(target)
	var results []*driver.CheckResult
	code := 0
	switch {
	case statErr == nil && info.IsDir():
		dr, err := checkDir(ctx, target, cf)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			code = 2
			break
		}
		results, code = dr.Files, dr.ExitCode()
	default:
		res, err := driver.CheckFile(ctx, target, cf.opts)
		if err != nil {
			var ioe *driver.IOError
			if !errors.As(err, &ioe) {
				fmt.Fprintf(stderr, "error: %v\n", err)
				code = 2
				break
			}
			bag := diag.NewBag(1)
			bag.Add(ioe.Diagnostic())
			res = &driver.CheckResult{Path: target, FileSet: source.NewFileSet(), Bag: bag, Err: err}
			code = 2
		} else {
			code = res.ExitCode()
		}
		results = []*driver.CheckResult{res}
	}

	if err := printResults(stdout, stderr, results, cf); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		code = max(code, 2)
	}
	if cf.printCode {
		fmt.Fprintln(stdout, code)
	}
	return code
}

func checkDir(ctx context.Context, dir string, cf *checkFlags) (*driver.DirResult, error) {
	if !shouldUseTUI(cf.uiMode) || cf.quiet {
		return driver.CheckDir(ctx, dir, cf.opts)
	}
	files, err := driver.ListFiles(dir, cf.opts)
	if err != nil {
		return nil, err
	}
	return runCheckDirWithUI(ctx, fmt.Sprintf("check %s", dir), dir, files, cf.opts)
}

func printResults(stdout, stderr io.Writer, results []*driver.CheckResult, cf *checkFlags) error {
	switch cf.format {
	case "json":
		return printJSON(stdout, results, cf)
	case "short":
		for _, res := range results {
			if res == nil || res.Bag == nil {
				continue
			}
			printShort(stderr, res, cf)
		}
	default:
		opts := diagfmt.PrettyOpts{
			Color:     cf.color,
			Context:   1,
			PathMode:  cf.pathMode,
			ShowNotes: cf.withNotes,
		}
		first := true
		for _, res := range results {
			if res == nil || res.Bag == nil || res.Bag.Len() == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(stderr)
			}
			first = false
			res.Bag.Sort()
			diagfmt.Pretty(stderr, res.Bag, res.FileSet, opts)
		}
	}
	if !cf.quiet && cf.format != "json" {
		printSummary(stderr, results)
	}
	return nil
}

// printShort writes one line per diagnostic. Diagnostics without a source
// position (I/O failures) are printed without a location.
func printShort(w io.Writer, res *driver.CheckResult, cf *checkFlags) {
	var located []diag.Diagnostic
	for _, d := range res.Bag.Items() {
		if res.FileSet.Get(d.Primary.File) == nil {
			fmt.Fprintf(w, "error %s %s\n", d.Code.ID(), d.Message)
			continue
		}
		located = append(located, d)
	}
	if out := diag.FormatShortDiagnostics(located, res.FileSet, cf.withNotes, pathModeName(cf.pathMode)); out != "" {
		fmt.Fprintln(w, out)
	}
}

// fileReport is one entry of the JSON output for multi-file runs.
type fileReport struct {
	Path   string `json:"path"`
	OK     bool   `json:"ok"`
	Cached bool   `json:"cached,omitempty"`
	diagfmt.DiagnosticsOutput
}

func printJSON(w io.Writer, results []*driver.CheckResult, cf *checkFlags) error {
	opts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         cf.pathMode,
		IncludeNotes:     cf.withNotes,
	}
	if len(results) == 1 {
		return diagfmt.JSON(w, results[0].Bag, results[0].FileSet, opts)
	}
	reports := make([]fileReport, 0, len(results))
	for _, res := range results {
		reports = append(reports, fileReport{
			Path:              res.Path,
			OK:                res.OK(),
			Cached:            res.Cached,
			DiagnosticsOutput: diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, opts),
		})
	}
	return writeJSON(w, reports)
}

func printSummary(w io.Writer, results []*driver.CheckResult) {
	if len(results) < 2 {
		return
	}
	failed, cached := 0, 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
		if res.Cached {
			cached++
		}
	}
	fmt.Fprintf(w, "checked %d files: %d failed", len(results), failed)
	if cached > 0 {
		fmt.Fprintf(w, ", %d cached", cached)
	}
	fmt.Fprintln(w)
}

func pathModeName(m diagfmt.PathMode) string {
	switch m {
	case diagfmt.PathModeAbsolute:
		return "absolute"
	case diagfmt.PathModeRelative:
		return "relative"
	case diagfmt.PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// watchAndCheck re-runs the check whenever a matching source changes, until
// the command context is cancelled.
func watchAndCheck(cmd *cobra.Command, target string, cf *checkFlags) error {
	root := cf.manifest.Root
	w, err := watch.New(target, watch.Options{
		Suffix: cf.opts.Suffix,
		Exclude: func(path string) bool {
			if root == "" {
				return false
			}
			rel, err := filepath.Rel(root, path)
			return err == nil && cf.manifest.Excluded(rel)
		},
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if !cf.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl+c to stop)\n", target)
	}
	err = w.Run(cmd.Context(), func(ctx context.Context, changed []string) {
		if !cf.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "\n-- %d file(s) changed, re-checking\n", len(changed))
		}
		checkOnce(ctx, cmd, target, cf)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
