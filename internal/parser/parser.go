package parser

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"sjavac/internal/ast"
	"sjavac/internal/diag"
	"sjavac/internal/lexer"
	"sjavac/internal/source"
	"sjavac/internal/symbols"
	"sjavac/internal/token"
	"sjavac/internal/trace"
)

type Options struct {
	// Reporter receives the structural error, if any. May be nil.
	Reporter diag.Reporter
}

type Result struct {
	Program *symbols.Program // nil when Err is set
	Lines   uint32           // lines consumed, including the failing one
	Err     error            // first structural error as *diag.Error
}

// Parser хранит состояние парсера на один файл.
type Parser struct {
	file   *source.File
	lx     *lexer.Lexer
	scopes *ast.Scopes
	reg    *symbols.Registry
	global ast.ScopeID
	stack  []ast.ScopeID // открытые скоупы; stack[0] - глобальный
	rep    *diag.FirstErrorReporter
	lines  uint32
	prev   token.LineKind // последняя непустая строка, комментарии считаются
	span   *trace.Span
}

// ParseFile разбирает один файл.
// Parsing stops at the first structural error.
func ParseFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) Result {
	file := fs.Get(id)
	if file == nil {
		return Result{Err: fmt.Errorf("parser: unknown file id %d", id)}
	}

	_, span := trace.Start(ctx, trace.ScopePass, "parse")
	defer span.End("")

	p := newParser(file, opts.Reporter)
	p.span = span
	prog, ok := p.parse()
	span.WithExtra("lines", fmt.Sprint(p.lines))
	if !ok {
		return Result{Lines: p.lines, Err: p.rep.Err()}
	}
	return Result{Program: prog, Lines: p.lines}
}

// Parse parses src as an anonymous file.
func Parse(src string) (*symbols.Program, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>.sjava", []byte(src))
	res := ParseFile(context.Background(), fs, id, Options{})
	return res.Program, res.Err
}

func newParser(file *source.File, rep diag.Reporter) *Parser {
	scopes := ast.NewScopes(8)
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	global := scopes.New(ast.ScopeGlobal, ast.NoScopeID, "", source.Span{File: file.ID, End: end})
	return &Parser{
		file:   file,
		lx:     lexer.New(file),
		scopes: scopes,
		reg:    symbols.NewRegistry(),
		global: global,
		stack:  []ast.ScopeID{global},
		rep:    &diag.FirstErrorReporter{Next: rep},
	}
}

// parse - основной цикл, одна строка за итерацию, пока не EOF.
func (p *Parser) parse() (*symbols.Program, bool) {
	for {
		line := p.lx.Next()
		if line.Kind == token.LineEOF {
			if !p.finish(line) {
				return nil, false
			}
			break
		}
		p.lines = line.Num
		if p.span.Lines() {
			p.span.Mark(line.Num, line.Kind.String(), fmt.Sprintf("depth=%d", len(p.stack)-1))
		}
		if !p.parseLine(line) {
			return nil, false
		}
		if line.Kind != token.LineBlank {
			p.prev = line.Kind
		}
	}
	return &symbols.Program{
		File:    p.file.ID,
		Scopes:  p.scopes,
		Global:  p.global,
		Methods: p.reg.Freeze(),
	}, true
}

func (p *Parser) current() ast.ScopeID {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) atGlobal() bool {
	return len(p.stack) == 1
}

func (p *Parser) push(id ast.ScopeID) {
	p.stack = append(p.stack, id)
}

func (p *Parser) pop() ast.ScopeID {
	top := p.current()
	p.stack = p.stack[:len(p.stack)-1]
	return top
}

// finish checks that every block was closed by end of input.
func (p *Parser) finish(eof token.Line) bool {
	if p.atGlobal() {
		return true
	}
	open := p.scopes.Get(p.current())
	b := diag.ReportError(p.rep, diag.SynUnclosedBlock, eof.Span, "Unclosed block at end of file")
	if open != nil {
		// an open scope still spans only its header line
		b.WithNote(open.Span, "block opened here")
	}
	b.Emit()
	return false
}
