package callsite

import (
	"path/filepath"
	"runtime"
	"strings"
)

// Scope binds names to values.
type Scope map[string]any

func (s Scope) Lookup(name string) (any, bool) {
	v, ok := s[name]
	return v, ok
}

// Frame is a snapshot of one call-stack entry. Source holds the text of the
// call made from this frame when it is known.
type Frame struct {
	Function string
	File     string
	Line     int
	Source   string
	Locals   Scope
	Globals  Scope
	// Declared names the variables of the calling function. They shadow
	// Globals even when Locals holds no value for them.
	Declared []string
}

// ShortName returns the bare function or method name, e.g. "Format" for
// "pkt.systems/termlog.(*Logger).Format".
func (f Frame) ShortName() string {
	name := f.Function
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Stack returns call-stack frames, innermost first.
type Stack interface {
	Frames() []Frame
}

// Frames is a fixed stack, mostly useful in tests.
type Frames []Frame

func (fs Frames) Frames() []Frame { return fs }

const defaultStackDepth = 64

// RuntimeStack reads the goroutine's live stack. Skip drops additional
// innermost frames; Depth caps the walk (64 when <= 0).
type RuntimeStack struct {
	Skip  int
	Depth int
}

func (s RuntimeStack) Frames() []Frame {
	depth := s.Depth
	if depth <= 0 {
		depth = defaultStackDepth
	}
	pc := make([]uintptr, depth)
	// skip runtime.Callers and this method
	n := runtime.Callers(2+s.Skip, pc)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pc[:n])
	out := make([]Frame, 0, n)
	for {
		rf, more := frames.Next()
		out = append(out, Frame{Function: rf.Function, File: rf.File, Line: rf.Line})
		if !more {
			break
		}
	}
	return out
}

// Boundary classifies source files as belonging to the library (internal)
// or to its callers. Files under Dir are internal, except _test.go files and
// files below one of the Exclude subdirectories.
type Boundary struct {
	Dir     string
	Exclude []string
}

func (b Boundary) Contains(file string) bool {
	if b.Dir == "" || file == "" {
		return false
	}
	dir := strings.TrimSuffix(filepath.ToSlash(b.Dir), "/")
	file = filepath.ToSlash(file)
	if !strings.HasPrefix(file, dir+"/") {
		return false
	}
	if strings.HasSuffix(file, "_test.go") {
		return false
	}
	rel := file[len(dir)+1:]
	for _, ex := range b.Exclude {
		ex = strings.Trim(filepath.ToSlash(ex), "/")
		if ex == "" {
			continue
		}
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return false
		}
	}
	return true
}
