// Package callsite derives field names from the source of a call site and
// resolves them against the bindings visible to the caller.
//
// The pieces compose as follows:
//
//	loc := callsite.Locator{Boundary: callsite.Boundary{Dir: libDir}}
//	frame, ok := loc.Locate(callsite.RuntimeStack{})
//	if !ok {
//		return callsite.NewFieldMap()
//	}
//	names, err := callsite.Extractor{}.Extract(frame.Source)
//	if err != nil {
//		return callsite.NewFieldMap()
//	}
//	frame.Locals = callsite.BindArguments(frame.Source, args, unwrap)
//	return callsite.Resolve(names, frame)
//
// Extraction is syntactic: every identifier that appears in a value position
// or as a binding (assignment target, parameter, range variable, import
// alias) is reported once, in breadth-first order. Callee names are never
// reported. Resolution drops names that neither scope binds.
package callsite
