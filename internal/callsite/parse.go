package callsite

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

// ParseError reports source that is neither a Go file, a statement list nor
// a declaration list.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return "parse call-site source: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parsed is a parsed source block.
type Parsed struct {
	Fset  *token.FileSet
	Nodes []ast.Node
	// Lines is the dedented source, used for diagnostics.
	Lines []string

	lineOffset int
}

// Line returns the 1-based line of pos within the original block.
func (p *Parsed) Line(pos token.Pos) int {
	if p == nil || p.Fset == nil || !pos.IsValid() {
		return -1
	}
	return p.Fset.Position(pos).Line - p.lineOffset
}

const (
	stmtHeader = "package p\nfunc _() {\n"
	declHeader = "package p\n"
)

// Parse dedents src and parses it as a Go file when it starts with a
// package clause, otherwise as a statement list, otherwise as a declaration
// list. The top-level statements or declarations seed the returned nodes.
func Parse(src string) (*Parsed, error) {
	src = Dedent(src)
	lines := strings.Split(src, "\n")

	if strings.HasPrefix(strings.TrimSpace(src), "package ") {
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, "", src, parser.SkipObjectResolution)
		if err != nil {
			return nil, &ParseError{Source: src, Err: err}
		}
		return &Parsed{Fset: fset, Nodes: declNodes(file), Lines: lines}, nil
	}

	fset := token.NewFileSet()
	file, stmtErr := parser.ParseFile(fset, "", stmtHeader+src+"\n}\n", parser.SkipObjectResolution)
	if stmtErr == nil {
		body := file.Decls[0].(*ast.FuncDecl).Body
		nodes := make([]ast.Node, 0, len(body.List))
		for _, stmt := range body.List {
			nodes = append(nodes, stmt)
		}
		return &Parsed{Fset: fset, Nodes: nodes, Lines: lines, lineOffset: 2}, nil
	}

	fset = token.NewFileSet()
	file, err := parser.ParseFile(fset, "", declHeader+src, parser.SkipObjectResolution)
	if err != nil {
		return nil, &ParseError{Source: src, Err: stmtErr}
	}
	return &Parsed{Fset: fset, Nodes: declNodes(file), Lines: lines, lineOffset: 1}, nil
}

func declNodes(file *ast.File) []ast.Node {
	nodes := make([]ast.Node, 0, len(file.Decls))
	for _, decl := range file.Decls {
		nodes = append(nodes, decl)
	}
	return nodes
}

// Dedent removes the longest whitespace prefix shared by every non-blank
// line. Whitespace-only lines become empty.
func Dedent(src string) string {
	lines := strings.Split(src, "\n")
	prefix := ""
	found := false
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix, found = indent, true
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}
	if prefix == "" {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
