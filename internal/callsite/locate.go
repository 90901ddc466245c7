package callsite

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"pkt.systems/termlog/internal/logging"
)

// SourceReader loads the contents of a source file.
type SourceReader interface {
	ReadSource(file string) ([]byte, error)
}

// SourceFunc adapts a function to SourceReader.
type SourceFunc func(file string) ([]byte, error)

func (f SourceFunc) ReadSource(file string) ([]byte, error) { return f(file) }

// Locator finds the frame of the code that called into the library.
type Locator struct {
	Boundary Boundary
	// Sources defaults to os.ReadFile.
	Sources SourceReader
	Log     logging.Logger
	// NumArgs is the number of arguments the library entry point received.
	// It tells apart several same-named calls on one line; negative means
	// unknown.
	NumArgs int
}

// Locate walks stack innermost to outermost and returns the external frame
// of the first internal->external transition, with the source of the call
// it made into the library. Without a transition it returns the first
// external frame whose source can be recovered. Frames are copied; nothing
// from the stack is retained.
func (l Locator) Locate(stack Stack) (Frame, bool) {
	if stack == nil {
		return Frame{}, false
	}
	frames := stack.Frames()
	var external []int
	prevInternal := false
	callee := ""
	for i, f := range frames {
		if l.Boundary.Contains(f.File) {
			prevInternal = true
			callee = f.ShortName()
			continue
		}
		if prevInternal {
			return l.withSource(f, callee), true
		}
		external = append(external, i)
	}
	for _, i := range external {
		if f := l.withSource(frames[i], ""); f.Source != "" {
			return f, true
		}
	}
	return Frame{}, false
}

func (l Locator) withSource(f Frame, callee string) Frame {
	if f.Source != "" || f.File == "" || f.Line <= 0 {
		return f
	}
	var (
		data []byte
		err  error
	)
	if l.Sources != nil {
		data, err = l.Sources.ReadSource(f.File)
	} else {
		data, err = os.ReadFile(f.File)
	}
	if err != nil {
		l.Log.Debugf("no source for %s:%d: %v", f.File, f.Line, err)
		return f
	}
	call := FindCall(data, f.Line, callee, l.NumArgs)
	if call.Ambiguous {
		l.Log.Debugf("%s:%d: several %s calls match, fields omitted", f.File, f.Line, callee)
	}
	f.Source = call.Source
	f.Declared = call.Declared
	return f
}

// Call is a call expression found on a source line.
type Call struct {
	// Source is the text of the call, or of the line when no call was
	// found. It is empty when the call could not be told apart from
	// another one.
	Source string
	// Declared lists the names declared by the function containing the
	// call: receiver, parameters, results and local variables.
	Declared []string
	// Ambiguous reports that several calls named callee matched.
	Ambiguous bool
}

// CallSource returns the text of the call expression made on line; see
// FindCall.
func CallSource(data []byte, line int, callee string) string {
	return FindCall(data, line, callee, -1).Source
}

// FindCall returns the call expression made on line. Among the calls whose
// line range covers line, the one named callee wins. When several do, only
// those taking nargs arguments are kept, and if that still leaves more than
// one the result is marked Ambiguous and carries no source. Without a named
// call the innermost call of any name is used. When the file does not parse
// or no call covers line, the line itself is returned.
func FindCall(data []byte, line int, callee string, nargs int) Call {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", data, parser.SkipObjectResolution)
	if err != nil {
		return Call{Source: lineText(data, line)}
	}
	var (
		best  *ast.CallExpr
		named []*ast.CallExpr
	)
	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		if fset.Position(n.Pos()).Line > line || fset.Position(n.End()).Line < line {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if best == nil || span(call) < span(best) {
			best = call
		}
		if callee != "" && calleeName(call.Fun) == callee {
			named = append(named, call)
		}
		return true
	})

	pick := best
	switch {
	case len(named) == 1:
		pick = named[0]
	case len(named) > 1:
		var matching []*ast.CallExpr
		if nargs >= 0 {
			for _, call := range named {
				if len(call.Args) == nargs && !call.Ellipsis.IsValid() {
					matching = append(matching, call)
				}
			}
		}
		if len(matching) != 1 {
			return Call{Ambiguous: true}
		}
		pick = matching[0]
	}
	if pick == nil {
		return Call{Source: lineText(data, line)}
	}
	start := fset.Position(pick.Pos()).Offset
	end := fset.Position(pick.End()).Offset
	if start < 0 || end > len(data) || start >= end {
		return Call{Source: lineText(data, line)}
	}
	return Call{
		Source:   string(data[start:end]),
		Declared: declaredNames(enclosingFunc(file, pick)),
	}
}

// enclosingFunc returns the outermost function declaration or literal
// containing n, or nil for package-level code.
func enclosingFunc(file *ast.File, n ast.Node) ast.Node {
	var fn ast.Node
	ast.Inspect(file, func(c ast.Node) bool {
		if fn != nil || c == nil || c.Pos() > n.Pos() || c.End() < n.End() {
			return false
		}
		switch c.(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			fn = c
			return false
		}
		return true
	})
	return fn
}

// declaredNames lists, in source order, the names fn and the literals
// nested in it declare.
func declaredNames(fn ast.Node) []string {
	if fn == nil {
		return nil
	}
	var names []string
	seen := make(map[string]bool)
	add := func(ids ...*ast.Ident) {
		for _, id := range ids {
			if id == nil || id.Name == "_" || seen[id.Name] {
				continue
			}
			seen[id.Name] = true
			names = append(names, id.Name)
		}
	}
	addFields := func(fl *ast.FieldList) {
		if fl == nil {
			return
		}
		for _, f := range fl.List {
			add(f.Names...)
		}
	}
	addTargets := func(xs ...ast.Expr) {
		for _, x := range xs {
			if id, ok := x.(*ast.Ident); ok {
				add(id)
			}
		}
	}
	ast.Inspect(fn, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncDecl:
			addFields(n.Recv)
		case *ast.FuncType:
			addFields(n.Params)
			addFields(n.Results)
		case *ast.AssignStmt:
			if n.Tok == token.DEFINE {
				addTargets(n.Lhs...)
			}
		case *ast.RangeStmt:
			if n.Tok == token.DEFINE {
				addTargets(n.Key, n.Value)
			}
		case *ast.ValueSpec:
			add(n.Names...)
		}
		return true
	})
	return names
}

func span(n ast.Node) token.Pos {
	return n.End() - n.Pos()
}

func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr:
		return calleeName(f.X)
	case *ast.IndexListExpr:
		return calleeName(f.X)
	case *ast.ParenExpr:
		return calleeName(f.X)
	}
	return ""
}

func lineText(data []byte, line int) string {
	if line <= 0 {
		return ""
	}
	lines := bytes.Split(data, []byte("\n"))
	if line > len(lines) {
		return ""
	}
	return string(bytes.TrimSpace(lines[line-1]))
}
