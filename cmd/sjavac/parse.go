package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sjavac/internal/diagfmt"
	"sjavac/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.sjava",
		Short: "Print the scope tree of an s-Java file",
		Long: `Parse builds the scope tree of a file and prints it. Semantic errors are
reported on stderr but do not hide the tree.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	res, err := driver.CheckFile(cmd.Context(), args[0], driver.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   1,
			ShowNotes: true,
		})
	}
	if res.Program == nil {
		return &exitError{code: res.ExitCode()}
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatProgramJSON(out, res.Program, res.FileSet)
	} else {
		err = diagfmt.FormatProgramPretty(out, res.Program, res.FileSet)
	}
	if err != nil {
		return err
	}
	if code := res.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}
