package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"sjavac/internal/source"
	"sjavac/internal/token"
)

type LineOutput struct {
	Num  uint32      `json:"line"`
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

// FormatLinesPretty выводит классифицированные строки в человекочитаемом формате.
// width ограничивает показ текста строки, 0 - без ограничения.
func FormatLinesPretty(w io.Writer, lines []token.Line, width int) error {
	kindW := 0
	for _, l := range lines {
		kindW = max(kindW, len(l.Kind.String()))
	}
	for _, l := range lines {
		text := expandTabs(l.Text)
		if width > 0 {
			text = runewidth.Truncate(text, width, "…")
		}
		if _, err := fmt.Fprintf(w, "%4d: %-*s  %s\n", l.Num, kindW, l.Kind.String(), text); err != nil {
			return err
		}
	}
	return nil
}

// FormatLinesJSON выводит строки в JSON формате
func FormatLinesJSON(w io.Writer, lines []token.Line) error {
	output := make([]LineOutput, 0, len(lines))
	for _, l := range lines {
		output = append(output, LineOutput{
			Num:  l.Num,
			Kind: l.Kind.String(),
			Text: l.Text,
			Span: l.Span,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
