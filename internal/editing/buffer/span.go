package buffer

import "fmt"

// Span represents a tracked offset range in the buffer.
// Start is inclusive, End is exclusive: [Start, End).
// The zero-length span at an offset marks a caret position.
// An unset span has both offsets at -1.
type Span struct {
	Start int // Inclusive start offset, or -1 when unset
	End   int // Exclusive end offset, or -1 when unset
}

// NewSpan creates a span from start and end offsets.
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Unset returns the unset span {-1, -1}.
func Unset() Span {
	return Span{Start: -1, End: -1}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if !s.IsSet() {
		return "unset"
	}
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// IsSet returns true if the span holds real offsets.
func (s Span) IsSet() bool {
	return s.Start >= 0 && s.End >= 0
}

// Len returns the length of the span. Unset spans have length 0.
func (s Span) Len() int {
	if !s.IsSet() {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty returns true if the span is unset or has zero length.
func (s Span) IsEmpty() bool {
	return !s.IsSet() || s.Start == s.End
}

// InBounds returns true if the span is unset or lies within a text of
// the given length with Start <= End.
func (s Span) InBounds(textLen int) bool {
	if !s.IsSet() {
		return true
	}
	return s.Start <= s.End && s.End <= textLen
}

// Contains returns true if the given offset is within the span.
func (s Span) Contains(offset int) bool {
	return s.IsSet() && offset >= s.Start && offset < s.End
}

// transformOffset updates an offset after replacing [start, end) with
// newLen bytes of text.
//
// Transformation rules:
//   - If the edit is entirely before the offset: adjust by the edit's delta
//   - If the edit starts at or after the offset: offset unchanged
//   - If the edit spans the offset: move the offset to the end of the new text
func transformOffset(offset, start, end, newLen int) int {
	if end <= offset {
		return offset - (end - start) + newLen
	}
	if start >= offset {
		return offset
	}
	return start + newLen
}

// Transform updates the span after replacing [start, end) with newLen
// bytes of text. Unset spans stay unset. Both ends are transformed
// independently and normalized so Start <= End.
func (s Span) Transform(start, end, newLen int) Span {
	if !s.IsSet() {
		return s
	}
	ns := transformOffset(s.Start, start, end, newLen)
	ne := transformOffset(s.End, start, end, newLen)
	if ns > ne {
		ns, ne = ne, ns
	}
	return Span{Start: ns, End: ne}
}
