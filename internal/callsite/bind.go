package callsite

import (
	"go/ast"
	"go/parser"
	"slices"
)

// Unwrapper returns the raw value wrapped by a styling call, if v is one.
type Unwrapper func(v any) (any, bool)

// BindArguments derives local bindings from a call expression and the
// values that were passed to it. Each argument that is a bare identifier is
// bound to the value at its position. Single-argument calls are peeled off
// while unwrap recognises the value, so Red(message) binds message to the
// raw value inside the painted result. Spread calls (f(xs...)) bind nothing.
func BindArguments(callSource string, args []any, unwrap Unwrapper) Scope {
	if callSource == "" || len(args) == 0 {
		return nil
	}
	expr, err := parser.ParseExpr(callSource)
	if err != nil {
		return nil
	}
	for {
		p, ok := expr.(*ast.ParenExpr)
		if !ok {
			break
		}
		expr = p.X
	}
	call, ok := expr.(*ast.CallExpr)
	if !ok || call.Ellipsis.IsValid() {
		return nil
	}
	scope := Scope{}
	for i, arg := range call.Args {
		if i >= len(args) {
			break
		}
		bindArgument(scope, arg, args[i], unwrap)
	}
	if len(scope) == 0 {
		return nil
	}
	return scope
}

func bindArgument(scope Scope, expr ast.Expr, value any, unwrap Unwrapper) {
	for {
		switch e := expr.(type) {
		case *ast.ParenExpr:
			expr = e.X
		case *ast.Ident:
			switch e.Name {
			case "_", "true", "false", "nil", "iota":
				return
			}
			scope[e.Name] = value
			return
		case *ast.CallExpr:
			if unwrap == nil || len(e.Args) != 1 {
				return
			}
			raw, ok := unwrap(value)
			if !ok {
				return
			}
			expr, value = e.Args[0], raw
		default:
			return
		}
	}
}

// Resolve looks every name of fields up in frame.Locals, then
// frame.Globals. A name in frame.Declared is local to the caller and is
// never taken from Globals. Names bound by neither scope are dropped. The
// values are those held by the scopes at the time of the call.
func Resolve(fields *FieldMap, frame Frame) *FieldMap {
	out := NewFieldMap()
	fields.Range(func(name string, _ any) bool {
		if v, ok := frame.Locals.Lookup(name); ok {
			out.Set(name, v)
		} else if slices.Contains(frame.Declared, name) {
			return true
		} else if v, ok := frame.Globals.Lookup(name); ok {
			out.Set(name, v)
		}
		return true
	})
	return out
}
