// Package delta classifies raw buffer replace operations into semantic
// text editing deltas.
//
// IMEs issue low-level replaces ("remove [start,end), insert these bytes")
// without declaring what the user did. The host rendering framework wants
// the opposite: a minimal, typed description of the edit. Classify bridges
// the two, deriving exactly one of four kinds per replace:
//
//   - Equality: the replace was a no-op
//   - Deletion: text was removed (backspace, composing text shortened)
//   - Insertion: text was added (typing, appending to a composing word)
//   - Replacement: a span was substituted (autocorrect corrections)
//
// A Delta is an immutable value. It records the changed text, the affected
// range in old-text coordinates, and the resulting selection and composing
// spans, and serializes to the host JSON payload via MarshalPayload.
//
// The classifier makes no positional assumptions about IME intent: kinds
// are derived from length and content comparison alone, so the same rules
// hold for hardware keyboards, autocorrect, and predictive input.
package delta
