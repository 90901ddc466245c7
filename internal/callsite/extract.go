package callsite

import (
	"go/ast"
	"strings"

	"pkt.systems/termlog/internal/logging"
)

// DefaultMaxNodes bounds the number of nodes a single extraction dequeues.
const DefaultMaxNodes = 4096

// Extractor walks parsed source breadth-first and collects field names.
// The zero value uses DefaultMaxNodes and a silent diagnostic channel.
type Extractor struct {
	MaxNodes int
	Log      logging.Logger
}

// Extract parses src and returns every discovered name mapped to
// Unresolved. A source that does not parse yields an empty map and a
// *ParseError.
func (e Extractor) Extract(src string) (*FieldMap, error) {
	parsed, err := Parse(src)
	if err != nil {
		return NewFieldMap(), err
	}
	return e.Walk(parsed), nil
}

// Walk runs the breadth-first traversal over already parsed source.
func (e Extractor) Walk(parsed *Parsed) *FieldMap {
	fields := NewFieldMap()
	if parsed == nil {
		return fields
	}
	limit := e.MaxNodes
	if limit <= 0 {
		limit = DefaultMaxNodes
	}
	w := walker{parsed: parsed, fields: fields, log: e.Log}
	w.queue = append(make([]ast.Node, 0, len(parsed.Nodes)*4), parsed.Nodes...)
	for count := 0; len(w.queue) > 0; count++ {
		if count >= limit {
			e.Log.Debugf("field extraction stopped after %d nodes, %d left in queue", count, len(w.queue))
			break
		}
		node := w.queue[0]
		w.queue[0] = nil
		w.queue = w.queue[1:]
		w.visit(node)
	}
	return fields
}

type walker struct {
	parsed *Parsed
	fields *FieldMap
	queue  []ast.Node
	log    logging.Logger
}

func (w *walker) visit(node ast.Node) {
	switch n := node.(type) {
	case *ast.Ident:
		w.record(n)
	case *ast.BasicLit:

	// expressions
	case *ast.CallExpr:
		// The callee is a name, not a value, unless it is an inline literal.
		if lit, ok := n.Fun.(*ast.FuncLit); ok {
			w.exprs(lit)
		}
		w.exprs(n.Args...)
	case *ast.ParenExpr:
		w.exprs(n.X)
	case *ast.UnaryExpr:
		w.exprs(n.X)
	case *ast.StarExpr:
		w.exprs(n.X)
	case *ast.BinaryExpr:
		w.exprs(n.X, n.Y)
	case *ast.SelectorExpr:
		w.exprs(n.X)
	case *ast.IndexExpr:
		w.exprs(n.X, n.Index)
	case *ast.IndexListExpr:
		w.exprs(n.X)
		w.exprs(n.Indices...)
	case *ast.SliceExpr:
		w.exprs(n.X, n.Low, n.High, n.Max)
	case *ast.TypeAssertExpr:
		w.exprs(n.X)
	case *ast.CompositeLit:
		_, isMap := n.Type.(*ast.MapType)
		for _, elt := range n.Elts {
			// Outside a map literal a bare identifier key names a struct
			// field, not a value.
			if kv, ok := elt.(*ast.KeyValueExpr); ok && !isMap {
				if _, ok := kv.Key.(*ast.Ident); ok {
					w.exprs(kv.Value)
					continue
				}
			}
			w.exprs(elt)
		}
	case *ast.KeyValueExpr:
		w.exprs(n.Key, n.Value)
	case *ast.FuncLit:
		w.params(n.Type)
		w.block(n.Body)

	// statements
	case *ast.ExprStmt:
		w.exprs(n.X)
	case *ast.AssignStmt:
		w.targets(n.Lhs...)
		w.exprs(n.Rhs...)
	case *ast.IncDecStmt:
		w.exprs(n.X)
	case *ast.SendStmt:
		w.exprs(n.Chan, n.Value)
	case *ast.GoStmt:
		w.exprs(n.Call)
	case *ast.DeferStmt:
		w.exprs(n.Call)
	case *ast.ReturnStmt:
		w.exprs(n.Results...)
	case *ast.BlockStmt:
		w.block(n)
	case *ast.IfStmt:
		w.stmts(n.Init)
		w.exprs(n.Cond)
		w.block(n.Body)
		w.stmts(n.Else)
	case *ast.ForStmt:
		w.stmts(n.Init)
		w.exprs(n.Cond)
		w.stmts(n.Post)
		w.block(n.Body)
	case *ast.RangeStmt:
		w.targets(n.Key, n.Value)
		w.exprs(n.X)
		w.block(n.Body)
	case *ast.SwitchStmt:
		w.stmts(n.Init)
		w.exprs(n.Tag)
		w.block(n.Body)
	case *ast.TypeSwitchStmt:
		w.stmts(n.Init, n.Assign)
		// Case lists of a type switch hold types; only the bodies matter.
		if n.Body != nil {
			for _, s := range n.Body.List {
				if clause, ok := s.(*ast.CaseClause); ok {
					w.stmts(clause.Body...)
				}
			}
		}
	case *ast.SelectStmt:
		w.block(n.Body)
	case *ast.CaseClause:
		w.exprs(n.List...)
		w.stmts(n.Body...)
	case *ast.CommClause:
		w.stmts(n.Comm)
		w.stmts(n.Body...)
	case *ast.LabeledStmt:
		w.stmts(n.Stmt)
	case *ast.DeclStmt:
		if n.Decl != nil {
			w.queue = append(w.queue, n.Decl)
		}
	case *ast.BranchStmt, *ast.EmptyStmt:

	// declarations
	case *ast.GenDecl:
		for _, spec := range n.Specs {
			w.queue = append(w.queue, spec)
		}
	case *ast.ImportSpec:
		if n.Name != nil && n.Name.Name != "." {
			w.record(n.Name)
		}
	case *ast.ValueSpec:
		for _, name := range n.Names {
			w.record(name)
		}
		w.exprs(n.Values...)
	case *ast.TypeSpec:
	case *ast.FuncDecl:
		if n.Recv != nil {
			w.fieldNames(n.Recv)
		}
		w.params(n.Type)
		w.block(n.Body)

	// types carry no runtime value
	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType,
		*ast.InterfaceType, *ast.StructType, *ast.Ellipsis:

	default:
		w.unhandled(node)
	}
}

// record adds an identifier unless it is blank or a predeclared constant.
func (w *walker) record(id *ast.Ident) {
	if id == nil {
		return
	}
	switch id.Name {
	case "_", "true", "false", "nil", "iota":
		return
	}
	if !w.fields.Has(id.Name) {
		w.fields.Set(id.Name, Unresolved)
	}
}

// targets records identifier targets directly and queues any other target
// (index, selector, dereference) so the names inside it are still found.
func (w *walker) targets(xs ...ast.Expr) {
	for _, x := range xs {
		if id, ok := x.(*ast.Ident); ok {
			w.record(id)
			continue
		}
		w.exprs(x)
	}
}

func (w *walker) params(ft *ast.FuncType) {
	if ft == nil {
		return
	}
	w.fieldNames(ft.Params)
}

func (w *walker) fieldNames(fl *ast.FieldList) {
	if fl == nil {
		return
	}
	for _, field := range fl.List {
		for _, name := range field.Names {
			w.record(name)
		}
	}
}

func (w *walker) exprs(xs ...ast.Expr) {
	for _, x := range xs {
		if x != nil {
			w.queue = append(w.queue, x)
		}
	}
}

func (w *walker) stmts(ss ...ast.Stmt) {
	for _, s := range ss {
		if s != nil {
			w.queue = append(w.queue, s)
		}
	}
}

func (w *walker) block(b *ast.BlockStmt) {
	if b == nil {
		return
	}
	w.stmts(b.List...)
}

func (w *walker) unhandled(node ast.Node) {
	if !w.log.Debug || node == nil {
		return
	}
	line := w.parsed.Line(node.Pos())
	var sb strings.Builder
	for i, text := range w.parsed.Lines {
		if i+1 == line {
			sb.WriteString("--> ")
		} else {
			sb.WriteString("    ")
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	w.log.Debugf("skipping unhandled syntax node %T at line %d in\n\n%s", node, line, sb.String())
}
