// Package query transforms a dataset snapshot per query directives.
//
// The engine operates on a Frame: a flat working copy of the canonical
// dataset where the row-index axes (Year, Month, State) have been demoted
// to label columns. Directives execute in the literal order the caller
// supplied them; selection and grouping each consume the frame produced by
// the previous step, so chained directives compose sequentially rather
// than by priority.
//
// Pipeline per invocation:
//
//	Loaded -> Selected? -> Grouped* -> (Keys-terminal | handoff to reshape)
//
// The keys directive is terminal: it produces line-oriented output
// immediately and bypasses reshaping and rendering.
package query
