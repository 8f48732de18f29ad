package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"sjavac/internal/source"
	"sjavac/internal/token"
)

// Lexer splits a file into physical lines and classifies each of them.
type Lexer struct {
	file  *source.File
	line  uint32 // номер следующей строки (1-based)
	total uint32
}

func New(file *source.File) *Lexer {
	total, err := safecast.Conv[uint32](file.LineCount())
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return &Lexer{file: file, line: 1, total: total}
}

// Next returns the next classified line. After the last line it always
// returns a LineEOF line with an empty span at the end of the file.
func (lx *Lexer) Next() token.Line {
	if lx.line > lx.total {
		end, err := safecast.Conv[uint32](len(lx.file.Content))
		if err != nil {
			panic(fmt.Errorf("len file content overflow: %w", err))
		}
		return token.Line{
			Kind: token.LineEOF,
			Num:  lx.total + 1,
			Span: source.Span{File: lx.file.ID, Start: end, End: end},
		}
	}
	num := lx.line
	lx.line++
	sp := lx.file.LineSpan(num)
	text := lx.file.Text(sp)
	return token.Line{
		Kind: ClassifyLine(text),
		Num:  num,
		Span: sp,
		Text: text,
	}
}

// All drains the lexer, returning every line up to but excluding EOF.
func (lx *Lexer) All() []token.Line {
	out := make([]token.Line, 0, lx.total)
	for {
		l := lx.Next()
		if l.Kind == token.LineEOF {
			return out
		}
		out = append(out, l)
	}
}
