package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithText sets the initial buffer content.
func WithText(text string) Option {
	return func(b *Buffer) {
		b.content = []byte(text)
		b.cacheValid = false
	}
}

// WithSelection sets the initial selection span.
// Offsets are taken as given; combine with WithText so they are in bounds.
func WithSelection(start, end int) Option {
	return func(b *Buffer) {
		if start < 0 {
			b.selection = Unset()
			return
		}
		b.selection = Span{Start: start, End: end}
	}
}

// WithComposing sets the initial composing span.
func WithComposing(start, end int) Option {
	return func(b *Buffer) {
		if start < 0 || start >= end {
			b.composing = Unset()
			return
		}
		b.composing = Span{Start: start, End: end}
	}
}
