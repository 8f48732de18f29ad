package diagfmt

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"sjavac/internal/ast"
	"sjavac/internal/source"
	"sjavac/internal/symbols"
)

type treeNode struct {
	Type     string            `json:"type"`
	Label    string            `json:"label,omitempty"`
	Span     source.Span       `json:"span"`
	Pos      string            `json:"pos,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Children []*treeNode       `json:"children,omitempty"`
}

// FormatProgramPretty печатает дерево скоупов программы.
// Методы выводятся вперемешку с глобальными операторами в порядке исходника.
func FormatProgramPretty(w io.Writer, prog *symbols.Program, fs *source.FileSet) error {
	root, err := buildProgramTree(prog, fs)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", root.Label, root.Pos); err != nil {
		return err
	}
	return writeChildren(w, root.Children, "")
}

// FormatProgramJSON выводит то же дерево в JSON.
func FormatProgramJSON(w io.Writer, prog *symbols.Program, fs *source.FileSet) error {
	root, err := buildProgramTree(prog, fs)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func writeChildren(w io.Writer, children []*treeNode, prefix string) error {
	for i, ch := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, ch.Label, ch.Pos); err != nil {
			return err
		}
		if err := writeChildren(w, ch.Children, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

func buildProgramTree(prog *symbols.Program, fs *source.FileSet) (*treeNode, error) {
	if prog == nil || prog.Scopes == nil {
		return nil, fmt.Errorf("program not found")
	}
	global := prog.GlobalScope()
	if global == nil {
		return nil, fmt.Errorf("global scope not found")
	}

	header := "Program"
	if fs != nil {
		if f := fs.Get(prog.File); f != nil {
			header = f.FormatPath("auto", fs.BaseDir())
		}
	}
	root := &treeNode{Type: "Program", Label: header, Span: global.Span, Pos: formatSpan(global.Span, fs)}

	for _, st := range global.Stmts {
		root.Children = append(root.Children, stmtNode(prog, st, fs))
	}
	for _, m := range prog.Methods.All() {
		root.Children = append(root.Children, methodNode(prog, m, fs))
	}
	slices.SortStableFunc(root.Children, func(a, b *treeNode) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})
	return root, nil
}

func methodNode(prog *symbols.Program, m symbols.Method, fs *source.FileSet) *treeNode {
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.Type.String() + " " + p.Name
		if p.Final {
			params[i] = "final " + params[i]
		}
	}
	span := m.Span
	if body := prog.Scopes.Get(m.Body); body != nil {
		span = body.Span
	}
	node := &treeNode{
		Type:  "Method",
		Label: fmt.Sprintf("Method %s(%s)", m.Name, strings.Join(params, ", ")),
		Span:  span,
		Pos:   formatSpan(span, fs),
		Fields: map[string]string{
			"name":  m.Name,
			"arity": fmt.Sprint(m.Arity()),
		},
	}
	node.Children = scopeChildren(prog, m.Body, fs)
	return node
}

func scopeChildren(prog *symbols.Program, id ast.ScopeID, fs *source.FileSet) []*treeNode {
	sc := prog.Scopes.Get(id)
	if sc == nil {
		return nil
	}
	out := make([]*treeNode, 0, len(sc.Stmts))
	for _, st := range sc.Stmts {
		out = append(out, stmtNode(prog, st, fs))
	}
	return out
}

func stmtNode(prog *symbols.Program, st ast.Stmt, fs *source.FileSet) *treeNode {
	node := &treeNode{Type: st.Kind().String(), Span: st.Span(), Pos: formatSpan(st.Span(), fs)}
	switch s := st.(type) {
	case *ast.VarDecl:
		entries := make([]string, len(s.Entries))
		for i, e := range s.Entries {
			entries[i] = e.Name
			if e.HasValue {
				entries[i] += " = " + e.Value.Text
			}
		}
		node.Label = fmt.Sprintf("VarDecl %s %s", s.Type, strings.Join(entries, ", "))
		if s.Final {
			node.Label = "VarDecl final " + strings.TrimPrefix(node.Label, "VarDecl ")
		}
		node.Fields = map[string]string{"type": s.Type.String(), "final": fmt.Sprint(s.Final)}
	case *ast.Assign:
		node.Label = fmt.Sprintf("Assign %s = %s", s.Name, s.Value.Text)
		node.Fields = map[string]string{"name": s.Name, "value": s.Value.Text}
	case *ast.Call:
		args := make([]string, len(s.Args))
		for i, a := range s.Args {
			args[i] = a.Text
		}
		node.Label = fmt.Sprintf("Call %s(%s)", s.Name, strings.Join(args, ", "))
		node.Fields = map[string]string{"name": s.Name, "args": fmt.Sprint(len(s.Args))}
	case *ast.IfWhile:
		terms := make([]string, len(s.Terms))
		for i, t := range s.Terms {
			terms[i] = t.Text
		}
		node.Label = fmt.Sprintf("%s [%s]", strings.ToUpper(s.Keyword[:1])+s.Keyword[1:], strings.Join(terms, ", "))
		node.Fields = map[string]string{"keyword": s.Keyword}
		node.Children = scopeChildren(prog, s.Body, fs)
	case *ast.Return:
		node.Label = "Return"
	}
	return node
}
