package delta

import (
	"errors"
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/editstate/internal/editing/buffer"
)

// ErrUnknownKind indicates an unrecognized delta kind name.
var ErrUnknownKind = errors.New("unknown delta kind")

// Kind categorizes the semantic type of an edit.
type Kind uint8

const (
	// Equality indicates a no-op replace (the removed and inserted
	// slices are identical).
	Equality Kind = iota

	// Deletion indicates text was removed.
	Deletion

	// Insertion indicates text was added.
	Insertion

	// Replacement indicates a span of text was substituted.
	Replacement
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case Equality:
		return "EQUALITY"
	case Deletion:
		return "DELETION"
	case Insertion:
		return "INSERTION"
	case Replacement:
		return "REPLACEMENT"
	default:
		return "UNKNOWN"
	}
}

// KindFromString parses a wire name back into a Kind.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "EQUALITY":
		return Equality, nil
	case "DELETION":
		return Deletion, nil
	case "INSERTION":
		return Insertion, nil
	case "REPLACEMENT":
		return Replacement, nil
	default:
		return Equality, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Delta is the immutable result of classifying one replace operation.
// It captures the minimal description of the edit the host needs: the
// kind, the changed text, and the affected range in old-text coordinates.
type Delta struct {
	// Kind is the semantic type of the edit.
	Kind Kind

	// OldText is the full text before the edit.
	OldText string

	// Text is the changed text: the inserted suffix for insertions, the
	// removed suffix for deletions, the full inserted slice for
	// replacements, and empty for equality.
	Text string

	// Start and End delimit the affected range in old-text coordinates.
	// Deletions and insertions report a collapsed point (Start == End);
	// equality reports -1 for both.
	Start int
	End   int

	// Selection is the selection span after the edit.
	Selection buffer.Span

	// Composing is the composing span after the edit.
	Composing buffer.Span
}

// IsNoOp returns true if the delta describes no change.
func (d Delta) IsNoOp() bool {
	return d.Kind == Equality
}

// Apply re-applies the edit described by the delta to oldText and returns
// the resulting text. For every kind, Apply(d.OldText) reproduces the
// buffer content after the originating replace.
func (d Delta) Apply(oldText string) string {
	switch d.Kind {
	case Deletion:
		cut := d.End - len(d.Text)
		return oldText[:cut] + oldText[d.End:]
	case Insertion:
		return oldText[:d.End] + d.Text + oldText[d.End:]
	case Replacement:
		return oldText[:d.Start] + d.Text + oldText[d.End:]
	default:
		return oldText
	}
}

// String returns a human-readable representation of the delta.
func (d Delta) String() string {
	switch d.Kind {
	case Deletion:
		return fmt.Sprintf("Deletion %q at %d", truncate(d.Text, 20), d.End)
	case Insertion:
		return fmt.Sprintf("Insertion %q at %d", truncate(d.Text, 20), d.End)
	case Replacement:
		return fmt.Sprintf("Replacement [%d:%d) with %q", d.Start, d.End, truncate(d.Text, 20))
	default:
		return "Equality"
	}
}

// truncate shortens s to at most max grapheme clusters, never splitting
// a cluster, so multi-byte and combining sequences stay intact.
func truncate(s string, max int) string {
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}

	g := uniseg.NewGraphemes(s)
	count := 0
	end := 0
	for g.Next() && count < max-3 {
		_, end = g.Positions()
		count++
	}
	return s[:end] + "..."
}
