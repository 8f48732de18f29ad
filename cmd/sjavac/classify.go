package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sjavac/internal/diagfmt"
	"sjavac/internal/lexer"
	"sjavac/internal/source"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [flags] file.sjava",
		Short: "Print the kind of every line of an s-Java file",
		Long:  `Classify runs the line classifier alone and prints what each physical line was recognised as`,
		Args:  cobra.ExactArgs(1),
		RunE:  runClassify,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Int("width", 0, "truncate line text to this many columns (0=no limit)")
	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	lines := lexer.New(fs.Get(id)).All()

	switch format {
	case "pretty":
		return diagfmt.FormatLinesPretty(cmd.OutOrStdout(), lines, width)
	case "json":
		return diagfmt.FormatLinesJSON(cmd.OutOrStdout(), lines)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
