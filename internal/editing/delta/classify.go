package delta

import (
	"strings"

	"github.com/dshills/editstate/internal/editing/buffer"
)

// Classify derives the semantic delta for a single replace operation:
// remove oldText[start:end], insert text[textStart:textEnd] at start.
//
// IMEs report edits as raw buffer replaces without declaring intent, so
// the kind is inferred purely from the before/after spans. The decision
// procedure runs in order:
//
//  1. Identical removed and inserted slices classify as Equality.
//  2. An empty insertion, or a shorter insertion whose content survives
//     verbatim as the prefix of the removed slice (a pure suffix trim),
//     classifies as Deletion. This covers both backspacing and an IME
//     re-sending the shortened composing text.
//  3. An empty removed range, or a longer insertion that keeps the
//     removed slice verbatim as its prefix (purely additive), classifies
//     as Insertion. This covers appending while finishing a word.
//  4. Everything else classifies as Replacement: same-length content
//     changes and any edit where the overlap differs, which is how
//     autocorrect mid-word corrections present.
//
// Classification never fails. Arguments that do not describe a valid
// replace degrade to Equality, since they carry no usable signal.
func Classify(oldText string, start, end int, text string, textStart, textEnd int) Delta {
	if start < 0 || start > end || end > len(oldText) ||
		textStart < 0 || textStart > textEnd || textEnd > len(text) {
		return equality(oldText)
	}

	removed := oldText[start:end]
	inserted := text[textStart:textEnd]

	if removed == inserted {
		return equality(oldText)
	}

	if isSuffixTrim(removed, inserted) {
		return Delta{
			Kind:      Deletion,
			OldText:   oldText,
			Text:      oldText[start+len(inserted) : end],
			Start:     end,
			End:       end,
			Selection: buffer.Unset(),
			Composing: buffer.Unset(),
		}
	}

	if isAdditive(removed, inserted) {
		return Delta{
			Kind:      Insertion,
			OldText:   oldText,
			Text:      inserted[len(removed):],
			Start:     end,
			End:       end,
			Selection: buffer.Unset(),
			Composing: buffer.Unset(),
		}
	}

	return Delta{
		Kind:      Replacement,
		OldText:   oldText,
		Text:      inserted,
		Start:     start,
		End:       end,
		Selection: buffer.Unset(),
		Composing: buffer.Unset(),
	}
}

// isSuffixTrim reports whether the edit only drops a suffix of the
// removed slice: the inserted text is strictly shorter and matches the
// surviving prefix verbatim.
func isSuffixTrim(removed, inserted string) bool {
	return len(inserted) < len(removed) && strings.HasPrefix(removed, inserted)
}

// isAdditive reports whether the edit only appends to the removed slice:
// the inserted text is strictly longer and keeps the removed content
// verbatim as its prefix.
func isAdditive(removed, inserted string) bool {
	return len(inserted) > len(removed) && strings.HasPrefix(inserted, removed)
}

func equality(oldText string) Delta {
	return Delta{
		Kind:      Equality,
		OldText:   oldText,
		Start:     -1,
		End:       -1,
		Selection: buffer.Unset(),
		Composing: buffer.Unset(),
	}
}
