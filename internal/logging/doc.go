// Package logging is the diagnostic channel used by termlog while it inspects
// call sites.
//
// Diagnostics never reach the formatted output. They are written to Out
// (stderr when nil) and only when the matching flag is set:
//
//   - Verbose: info and warning messages
//   - Debug: everything, including skipped syntax nodes and truncated walks
//
// The zero value is silent, which is what Format and Echo use unless the
// caller enables WithDebug or WithVerbose.
package logging
