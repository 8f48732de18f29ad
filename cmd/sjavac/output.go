package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// resolveColor reads --color and decides whether diagnostics on stderr are
// colored. It also updates fatih/color's global switch for other output.
func resolveColor(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var enabled bool
	switch strings.ToLower(mode) {
	case "on", "always":
		enabled = true
	case "off", "never":
		enabled = false
	case "", "auto":
		_, noColor := os.LookupEnv("NO_COLOR")
		enabled = !noColor && isTerminal(cmd.ErrOrStderr())
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	color.NoColor = !enabled
	return enabled, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
