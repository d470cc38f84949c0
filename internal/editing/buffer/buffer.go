package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid text range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrSubrangeInvalid indicates an invalid sub-range of the inserted text.
	ErrSubrangeInvalid = errors.New("invalid insertion subrange")
)

// Buffer owns the editing text together with its selection and composing
// spans. It is the single mutable source of truth for the editing state;
// every text mutation goes through Replace so the spans stay consistent
// with the content.
//
// Buffer is not safe for concurrent use. The editing model is
// single-threaded: all mutations happen on the thread that owns the host
// input connection.
type Buffer struct {
	content   []byte
	selection Span
	composing Span

	// toString cache, invalidated only on real content change.
	cache      string
	cacheValid bool
}

// New creates an empty buffer with unset selection and composing spans.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		selection: Unset(),
		composing: Unset(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Text returns the full buffer content as a string.
// The result is cached until the content actually changes.
func (b *Buffer) Text() string {
	if !b.cacheValid {
		b.cache = string(b.content)
		b.cacheValid = true
	}
	return b.cache
}

// Len returns the byte length of the buffer content.
func (b *Buffer) Len() int {
	return len(b.content)
}

// TextRange returns the content in [start, end). Offsets outside the
// buffer are clamped; reads never fail.
func (b *Buffer) TextRange(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.content) {
		end = len(b.content)
	}
	if start >= end {
		return ""
	}
	return string(b.content[start:end])
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= len(b.content) {
		return 0, false
	}
	return b.content[offset], true
}

// Selection returns the current selection span.
func (b *Buffer) Selection() Span {
	return b.selection
}

// Composing returns the current composing span.
func (b *Buffer) Composing() Span {
	return b.composing
}

// SetSelection sets the selection span. A negative start clears the
// selection. Out-of-range offsets fail fast.
func (b *Buffer) SetSelection(start, end int) error {
	if start < 0 {
		b.selection = Unset()
		return nil
	}
	if end < start {
		return ErrRangeInvalid
	}
	if end > len(b.content) {
		return ErrOffsetOutOfRange
	}
	b.selection = Span{Start: start, End: end}
	return nil
}

// SetComposing sets the composing span. An invalid or empty range
// (start < 0 or start >= end) clears the composing region, matching how
// input connections remove composing spans. Out-of-range offsets fail fast.
func (b *Buffer) SetComposing(start, end int) error {
	if start < 0 || start >= end {
		b.composing = Unset()
		return nil
	}
	if end > len(b.content) {
		return ErrOffsetOutOfRange
	}
	b.composing = Span{Start: start, End: end}
	return nil
}

// ClearComposing removes the composing span.
func (b *Buffer) ClearComposing() {
	b.composing = Unset()
}

// ReplaceResult describes an applied replace operation.
type ReplaceResult struct {
	// OldText is the text that was removed.
	OldText string

	// NewSpan is the span of the inserted text in the new content.
	NewSpan Span

	// Delta is the change in content length.
	Delta int

	// TextChanged reports whether the content actually changed.
	// Replacing a slice with identical bytes leaves it false.
	TextChanged bool

	// OldSelection and OldComposing are the spans before the mutation.
	OldSelection Span
	OldComposing Span

	// Selection and Composing are the spans after the mutation.
	Selection Span
	Composing Span
}

// Replace removes content[start:end] and inserts text[textStart:textEnd]
// at start. This is the canonical mutation primitive: selection and
// composing spans are transformed in place (offsets at or after the edit
// point shift by the length delta, offsets before it are untouched,
// offsets inside the replaced region collapse to the end of the new text).
//
// All offsets are validated before any mutation; Replace fails fast
// rather than clamping.
func (b *Buffer) Replace(start, end int, text string, textStart, textEnd int) (ReplaceResult, error) {
	if start < 0 || end > len(b.content) {
		return ReplaceResult{}, ErrOffsetOutOfRange
	}
	if start > end {
		return ReplaceResult{}, ErrRangeInvalid
	}
	if textStart < 0 || textStart > textEnd || textEnd > len(text) {
		return ReplaceResult{}, ErrSubrangeInvalid
	}

	inserted := text[textStart:textEnd]
	removed := string(b.content[start:end])

	textChanged := len(inserted) != len(removed)
	for i := 0; i < len(removed) && !textChanged; i++ {
		textChanged = removed[i] != inserted[i]
	}

	result := ReplaceResult{
		OldText:      removed,
		NewSpan:      Span{Start: start, End: start + len(inserted)},
		Delta:        len(inserted) - len(removed),
		TextChanged:  textChanged,
		OldSelection: b.selection,
		OldComposing: b.composing,
	}

	b.selection = b.selection.Transform(start, end, len(inserted))
	b.composing = b.composing.Transform(start, end, len(inserted))

	if textChanged {
		next := make([]byte, 0, len(b.content)+result.Delta)
		next = append(next, b.content[:start]...)
		next = append(next, inserted...)
		next = append(next, b.content[end:]...)
		b.content = next
		b.cacheValid = false
	}

	result.Selection = b.selection
	result.Composing = b.composing
	return result, nil
}
