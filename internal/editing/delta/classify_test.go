package delta

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name               string
		oldText            string
		start, end         int
		text               string
		textStart, textEnd int
		wantKind           Kind
		wantText           string
		wantStart, wantEnd int
	}{
		{
			name:    "replace slice with itself",
			oldText: "hello", start: 1, end: 4,
			text: "ell", textStart: 0, textEnd: 3,
			wantKind: Equality, wantText: "", wantStart: -1, wantEnd: -1,
		},
		{
			name:    "empty to empty",
			oldText: "", start: 0, end: 0,
			text: "", textStart: 0, textEnd: 0,
			wantKind: Equality, wantText: "", wantStart: -1, wantEnd: -1,
		},
		{
			name:    "pure backspace",
			oldText: "hello", start: 4, end: 5,
			text: "", textStart: 0, textEnd: 0,
			wantKind: Deletion, wantText: "o", wantStart: 5, wantEnd: 5,
		},
		{
			name:    "composing text trimmed",
			oldText: "hello", start: 0, end: 5,
			text: "he", textStart: 0, textEnd: 2,
			wantKind: Deletion, wantText: "llo", wantStart: 5, wantEnd: 5,
		},
		{
			name:    "delete whole buffer",
			oldText: "abc", start: 0, end: 3,
			text: "", textStart: 0, textEnd: 0,
			wantKind: Deletion, wantText: "abc", wantStart: 3, wantEnd: 3,
		},
		{
			name:    "typing at a point",
			oldText: "ab", start: 2, end: 2,
			text: "c", textStart: 0, textEnd: 1,
			wantKind: Insertion, wantText: "c", wantStart: 2, wantEnd: 2,
		},
		{
			name:    "composing text extended",
			oldText: "hel", start: 0, end: 3,
			text: "hello", textStart: 0, textEnd: 5,
			wantKind: Insertion, wantText: "lo", wantStart: 3, wantEnd: 3,
		},
		{
			name:    "insert mid buffer",
			oldText: "ab", start: 1, end: 1,
			text: "xyz", textStart: 0, textEnd: 3,
			wantKind: Insertion, wantText: "xyz", wantStart: 1, wantEnd: 1,
		},
		{
			name:    "same length substitution",
			oldText: "cat", start: 0, end: 3,
			text: "bat", textStart: 0, textEnd: 3,
			wantKind: Replacement, wantText: "bat", wantStart: 0, wantEnd: 3,
		},
		{
			name:    "autocorrect longer word",
			oldText: "teh fox", start: 0, end: 3,
			text: "theme", textStart: 0, textEnd: 5,
			wantKind: Replacement, wantText: "theme", wantStart: 0, wantEnd: 3,
		},
		{
			name:    "shorter but prefix differs",
			oldText: "abcde", start: 0, end: 5,
			text: "xy", textStart: 0, textEnd: 2,
			wantKind: Replacement, wantText: "xy", wantStart: 0, wantEnd: 5,
		},
		{
			name:    "whole buffer replaced",
			oldText: "hello", start: 0, end: 5,
			text: "goodbye", textStart: 0, textEnd: 7,
			wantKind: Replacement, wantText: "goodbye", wantStart: 0, wantEnd: 5,
		},
		{
			name:    "subrange of larger source",
			oldText: "abc", start: 3, end: 3,
			text: "__de__", textStart: 2, textEnd: 4,
			wantKind: Insertion, wantText: "de", wantStart: 3, wantEnd: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Classify(tc.oldText, tc.start, tc.end, tc.text, tc.textStart, tc.textEnd)

			if d.Kind != tc.wantKind {
				t.Fatalf("expected kind %v, got %v", tc.wantKind, d.Kind)
			}
			if d.Text != tc.wantText {
				t.Errorf("expected text %q, got %q", tc.wantText, d.Text)
			}
			if d.Start != tc.wantStart || d.End != tc.wantEnd {
				t.Errorf("expected range [%d:%d), got [%d:%d)", tc.wantStart, tc.wantEnd, d.Start, d.End)
			}
			if d.OldText != tc.oldText {
				t.Errorf("expected OldText %q, got %q", tc.oldText, d.OldText)
			}
		})
	}
}

func TestClassifyDegenerateInput(t *testing.T) {
	cases := []struct {
		name               string
		oldText            string
		start, end         int
		text               string
		textStart, textEnd int
	}{
		{"negative start", "abc", -1, 2, "x", 0, 1},
		{"end past old text", "abc", 0, 4, "x", 0, 1},
		{"inverted range", "abc", 2, 1, "x", 0, 1},
		{"inverted subrange", "abc", 0, 1, "xy", 2, 1},
		{"subrange past text", "abc", 0, 1, "x", 0, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Classify(tc.oldText, tc.start, tc.end, tc.text, tc.textStart, tc.textEnd)
			if d.Kind != Equality {
				t.Errorf("degenerate input must degrade to Equality, got %v", d.Kind)
			}
			if !d.IsNoOp() {
				t.Error("degenerate delta should be a no-op")
			}
		})
	}
}

// TestClassifyRoundTrip verifies that applying the described edit to the
// old text reproduces the post-replace content, for all four kinds.
func TestClassifyRoundTrip(t *testing.T) {
	cases := []struct {
		name               string
		oldText            string
		start, end         int
		text               string
		textStart, textEnd int
	}{
		{"equality", "hello", 1, 4, "ell", 0, 3},
		{"deletion backspace", "hello", 4, 5, "", 0, 0},
		{"deletion suffix trim", "hello world", 0, 11, "hello", 0, 5},
		{"insertion append", "hel", 0, 3, "hello", 0, 5},
		{"insertion at point", "ab", 1, 1, "cde", 0, 3},
		{"replacement same length", "cat", 0, 3, "bat", 0, 3},
		{"replacement longer", "teh", 0, 3, "theme", 0, 5},
		{"replacement shorter", "abcde", 1, 4, "x", 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := tc.oldText[:tc.start] + tc.text[tc.textStart:tc.textEnd] + tc.oldText[tc.end:]

			d := Classify(tc.oldText, tc.start, tc.end, tc.text, tc.textStart, tc.textEnd)
			got := d.Apply(tc.oldText)

			if got != want {
				t.Errorf("round trip mismatch for %v: expected %q, got %q", d.Kind, want, got)
			}
		})
	}
}
