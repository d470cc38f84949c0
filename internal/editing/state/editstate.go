package state

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrEditStateInvalid indicates a malformed full-state update document.
var ErrEditStateInvalid = errors.New("invalid editing state document")

// EditState is a full editing state sent by the owning framework.
// Unset selection and composing bounds are -1.
type EditState struct {
	Text           string
	SelectionStart int
	SelectionEnd   int
	ComposingStart int
	ComposingEnd   int
}

// HasSelection returns true if the state carries a selection.
func (es EditState) HasSelection() bool {
	return es.SelectionStart >= 0 && es.SelectionEnd >= 0
}

// HasComposing returns true if the state carries a composing region.
func (es EditState) HasComposing() bool {
	return es.ComposingStart >= 0 && es.ComposingStart < es.ComposingEnd
}

// ParseEditState decodes a framework full-state update. The text key is
// required; absent selection or composing bounds default to -1 (unset).
func ParseEditState(data []byte) (EditState, error) {
	if !gjson.ValidBytes(data) {
		return EditState{}, ErrEditStateInvalid
	}

	doc := gjson.ParseBytes(data)
	text := doc.Get("text")
	if !text.Exists() {
		return EditState{}, fmt.Errorf("%w: missing text", ErrEditStateInvalid)
	}

	return EditState{
		Text:           text.String(),
		SelectionStart: intOr(doc, "selectionStart", -1),
		SelectionEnd:   intOr(doc, "selectionEnd", -1),
		ComposingStart: intOr(doc, "composingStart", -1),
		ComposingEnd:   intOr(doc, "composingEnd", -1),
	}, nil
}

func intOr(doc gjson.Result, key string, fallback int) int {
	v := doc.Get(key)
	if !v.Exists() {
		return fallback
	}
	return int(v.Int())
}
