// Package errors provides structured, actionable error messages for uikit.
//
// Every failure the installer can report carries a stable code (e.g. "E150")
// that maps to a short message, a longer explanation and a documentation
// link. Filesystem and transform errors also carry the operation and the
// path they failed on, so a fatal error is enough on its own to diagnose the
// run.
//
// # Error Categories
//
//   - config: components.json is missing, malformed or incomplete
//   - registry: a registry item could not be fetched or decoded
//   - filesystem: a directory or file could not be written
//   - transform: a source file could not be rewritten
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("E150").
//	    WithOp("write").
//	    WithPath("components/ui/button.tsx").
//	    Wrap(ioErr)
//
//	errors.PrintError(err)
//	// ERROR E150: File write failed
//	//
//	//   write components/ui/button.tsx
//	//
//	//   The file could not be written to disk.
//	//
//	//   Caused by: permission denied
package errors
