// Package buffer provides the editing text buffer with tracked selection
// and composing spans.
//
// The buffer is the single mutable source of truth for the editing state.
// Every text mutation flows through the canonical Replace primitive, which
// validates offsets up front (fail fast, no clamping) and transforms the
// tracked spans with standard marked-region semantics:
//
//   - spans starting at or after the edit point shift by the length delta
//   - spans fully before the edit are untouched
//   - offsets inside the replaced region collapse to the end of the new text
//
// Basic usage:
//
//	buf := buffer.New(buffer.WithText("hello"))
//	res, err := buf.Replace(5, 5, " world", 0, 6)
//	// buf.Text() == "hello world"
//
// Spans use half-open [Start, End) offsets; the unset span is {-1, -1},
// matching the wire convention that unset bounds serialize as -1.
//
// Buffer is deliberately not thread-safe: the editing model is
// single-threaded and synchronous, driven by the host input connection.
package buffer
