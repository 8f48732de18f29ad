package sema

import (
	"context"
	"errors"
	"fmt"

	"sjavac/internal/ast"
	"sjavac/internal/diag"
	"sjavac/internal/source"
	"sjavac/internal/symbols"
	"sjavac/internal/trace"
)

// Options configure a semantic pass over a program.
type Options struct {
	Reporter diag.Reporter
}

// Result stores the outcome of a semantic pass.
type Result struct {
	Stmts   int   // statements visited, including the failing one
	Methods int   // method bodies entered
	Err     error // first semantic error as *diag.Error
}

// Check validates prog and stops at the first error. The program is not
// modified, so it may be checked any number of times.
func Check(ctx context.Context, prog *symbols.Program, opts Options) Result {
	var res Result
	if prog == nil || prog.Scopes == nil {
		res.Err = errors.New("sema: nil program")
		return res
	}

	_, span := trace.Start(ctx, trace.ScopePass, "sema")
	defer span.End("")

	tc := typeChecker{
		prog:    prog,
		env:     symbols.NewEnv(prog.Scopes),
		rep:     &diag.FirstErrorReporter{Next: opts.Reporter},
		result:  &res,
		span:    span,
		methods: prog.Methods,
	}
	tc.run()
	res.Err = tc.rep.Err()
	span.WithExtra("stmts", fmt.Sprint(res.Stmts))
	return res
}

// Validate is Check without tracing or reporting.
func Validate(prog *symbols.Program) error {
	return Check(context.Background(), prog, Options{}).Err
}

type typeChecker struct {
	prog    *symbols.Program
	env     *symbols.Env
	rep     *diag.FirstErrorReporter
	result  *Result
	span    *trace.Span
	methods *symbols.MethodTable
}

// run checks global statements first, then every method body in
// declaration order.
func (tc *typeChecker) run() {
	if !tc.checkScope(tc.prog.Global) {
		return
	}
	for _, m := range tc.methods.All() {
		tc.result.Methods++
		span := tc.span.Child(trace.ScopeMethod, "method:"+m.Name)
		for _, prm := range m.Params {
			tc.env.Declare(m.Body, prm)
		}
		ok := tc.checkScope(m.Body)
		span.End("")
		if !ok {
			return
		}
	}
}

func (tc *typeChecker) checkScope(id ast.ScopeID) bool {
	sc := tc.prog.Scopes.Get(id)
	if sc == nil {
		return true
	}
	for _, st := range sc.Stmts {
		if !tc.checkStmt(id, st) {
			return false
		}
	}
	return true
}

func (tc *typeChecker) checkStmt(scope ast.ScopeID, st ast.Stmt) bool {
	tc.result.Stmts++
	switch s := st.(type) {
	case *ast.VarDecl:
		return tc.checkVarDecl(scope, s)
	case *ast.Assign:
		return tc.checkAssign(scope, s)
	case *ast.Call:
		return tc.checkCall(scope, s)
	case *ast.IfWhile:
		return tc.checkIfWhile(scope, s)
	case *ast.Return:
		return true
	default:
		panic(fmt.Sprintf("sema: unexpected statement %T", st))
	}
}

func (tc *typeChecker) fail(code diag.Code, sp source.Span, format string, args ...any) bool {
	diag.ReportError(tc.rep, code, sp, fmt.Sprintf(format, args...)).Emit()
	return false
}
