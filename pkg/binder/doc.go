// Package binder decodes HTTP request input into Go structs.
//
// JSON reads a size-limited application/json body in strict mode. Query
// binds URL query parameters through `query` struct tags and supports
// string-based named types, integers, floats, booleans, pointers for
// optional values and slices (repeated or comma separated).
//
// All failures wrap one of the package sentinel errors, so handlers can map
// them to 400 or 415 responses with errors.Is.
package binder
