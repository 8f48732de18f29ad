package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sjavac/internal/version"
)

// exitError carries a process exit status through cobra. Diagnostics have
// already been printed when it is returned.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// app owns one command tree and the cleanups registered while it runs.
// PersistentPostRun is skipped when RunE fails, so cleanups run from execute.
type app struct {
	root     *cobra.Command
	cleanups []func()
}

func newApp() *app {
	a := &app{}
	root := &cobra.Command{
		Use:   "sjavac [flags] <file.sjava|dir>",
		Short: "Static checker for s-Java source files",
		Long: `sjavac verifies that s-Java source files are structurally and semantically
valid. It exits with 0 when the code is legal, 1 on a syntax or semantic
error and 2 on I/O problems.`,
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			stopTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			a.cleanups = append(a.cleanups, stopTrace)
			stopProf, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			a.cleanups = append(a.cleanups, stopProf)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			// `sjavac file.sjava` behaves like `sjavac check file.sjava`
			return runCheck(cmd, args[0])
		},
	}

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file")
	root.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	root.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	root.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	root.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
	addCheckFlags(root)

	root.AddCommand(newCheckCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())

	a.root = root
	return a
}

func (a *app) cleanup() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

// execute runs the CLI and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp()
	a.root.SetArgs(args)
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)

	err := a.root.ExecuteContext(ctx)
	a.cleanup()

	var ee *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
