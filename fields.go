package termlog

import (
	"maps"
	"os"
	"path/filepath"
	"runtime"

	"pkt.systems/termlog/internal/callsite"
	"pkt.systems/termlog/internal/logging"
)

type (
	// FieldMap is an insertion-ordered set of field names and values.
	FieldMap = callsite.FieldMap
	// Frame is a snapshot of one call-stack entry.
	Frame = callsite.Frame
	// Frames is a fixed Stack.
	Frames = callsite.Frames
	// Scope binds names to values.
	Scope = callsite.Scope
	// Stack returns call-stack frames, innermost first.
	Stack = callsite.Stack
	// SourceReader loads caller source files.
	SourceReader = callsite.SourceReader
	// SourceFunc adapts a function to SourceReader.
	SourceFunc = callsite.SourceFunc
	// ParseError reports source the field extractor could not parse.
	ParseError = callsite.ParseError
)

// Unresolved is the value of an extracted field before resolution.
var Unresolved = callsite.Unresolved

// NewFieldMap returns an empty FieldMap.
func NewFieldMap() *FieldMap { return callsite.NewFieldMap() }

// libraryBoundary marks this module's source tree, minus its commands, as
// internal to the call-frame walk.
var libraryBoundary = func() callsite.Boundary {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return callsite.Boundary{}
	}
	return callsite.Boundary{Dir: filepath.Dir(file), Exclude: []string{"cmd"}}
}()

// ExtractFields returns the names a Go source snippet refers to, each mapped
// to Unresolved, in breadth-first order. The snippet may be a file, a
// statement list or a declaration list.
func ExtractFields(src string) (*FieldMap, error) {
	cfg := CurrentConfig()
	return cfg.extractor().Extract(src)
}

// ResolveFields binds every name of fields from frame.Locals, then
// frame.Globals. Names in frame.Declared skip Globals, and names neither
// scope binds are dropped.
func ResolveFields(fields *FieldMap, frame Frame) *FieldMap {
	return callsite.Resolve(fields, frame)
}

// LocateCallerFrame returns the frame of the code that called into termlog,
// with the source of that call. Globals are taken from the current
// configuration.
func LocateCallerFrame() (Frame, bool) {
	cfg := CurrentConfig()
	frame, ok := cfg.locate(0)
	if ok {
		frame.Globals = mergeScopes(cfg.Globals, frame.Globals)
	}
	return frame, ok
}

func (c Config) diag() logging.Logger {
	return logging.Logger{Debug: c.Debug, Out: os.Stderr}
}

func (c Config) extractor() callsite.Extractor {
	return callsite.Extractor{MaxNodes: c.MaxNodes, Log: c.diag()}
}

// locate finds the caller of a library entry point that received nargs
// arguments.
func (c Config) locate(nargs int) (Frame, bool) {
	stack := c.Stack
	if stack == nil {
		stack = callsite.RuntimeStack{}
	}
	loc := callsite.Locator{Boundary: libraryBoundary, Sources: c.Sources, Log: c.diag(), NumArgs: nargs}
	return loc.Locate(stack)
}

// callerFields resolves the fields of the call that passed args into the
// library. Arguments bind the names they were written as. Other variables
// of the calling function cannot be read and are dropped; the remaining
// names come from the frame's own scopes and the configured globals.
func (c Config) callerFields(args []any) *FieldMap {
	log := c.diag()
	frame, ok := c.locate(len(args))
	if !ok {
		log.Debugf("no caller frame with source found")
		return callsite.NewFieldMap()
	}
	names, err := c.extractor().Extract(frame.Source)
	if err != nil {
		log.Debugf("%s:%d: %v", frame.File, frame.Line, err)
		return names
	}
	if names.Len() == 0 {
		return names
	}
	bound := callsite.BindArguments(frame.Source, args, unwrapPainted)
	frame.Locals = mergeScopes(bound, frame.Locals)
	frame.Globals = mergeScopes(c.Globals, frame.Globals)
	return callsite.Resolve(names, frame)
}

// mergeScopes returns base overlaid with top. Neither input is modified.
func mergeScopes(base, top Scope) Scope {
	if len(top) == 0 {
		return base
	}
	if len(base) == 0 {
		return top
	}
	out := maps.Clone(base)
	maps.Copy(out, top)
	return out
}
