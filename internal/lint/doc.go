// Package lint is the commit message evaluation engine.
//
// [Parse] splits a message into header, body, and footer entries. The footer
// block is found by scanning backward from the last line so that wrapped
// footer values and body bullets such as "- Note: keep API stable" are
// classified correctly.
//
// [Lint] runs the validators over the raw message, rewrites it with the
// ordered cleanup rules and optional autofix, then validates the rewritten
// text again. Both passes are returned in one [Outcome]. Violations block a
// message; warnings never do.
//
// Rules are compiled up front with a [Compiler] (or the CompileHeader,
// CompileExclude, and CompileCleanup helpers). A compiled [Options] value is
// read-only during linting and may be shared across goroutines.
package lint
