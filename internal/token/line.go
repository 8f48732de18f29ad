package token

import (
	"sjavac/internal/source"
)

// Line is one classified physical source line.
type Line struct {
	Kind LineKind
	Num  uint32 // 1-based line number
	Span source.Span
	Text string
}

// IsBlank reports whether the line carries nothing to parse.
func (l Line) IsBlank() bool { return l.Kind == LineBlank }
