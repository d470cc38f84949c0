package delta

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/editstate/internal/editing/buffer"
)

// Errors returned by payload operations.
var (
	// ErrPayloadInvalid indicates the payload is not valid JSON.
	ErrPayloadInvalid = errors.New("invalid delta payload")

	// ErrPayloadMissingKey indicates a required payload key is absent.
	ErrPayloadMissingKey = errors.New("delta payload missing key")
)

// payloadKeys are the required keys of the serialized delta, in the
// order they are written. Exact names matter for host compatibility.
var payloadKeys = []string{
	"oldText",
	"deltaText",
	"delta",
	"deltaStart",
	"deltaEnd",
	"selectionBase",
	"selectionExtent",
	"composingBase",
	"composingExtent",
}

// MarshalPayload serializes the delta to the host wire format. Unset
// selection and composing bounds serialize as -1. Encoding failures are
// returned to the caller rather than producing a partial payload.
func (d Delta) MarshalPayload() ([]byte, error) {
	values := []any{
		d.OldText,
		d.Text,
		d.Kind.String(),
		d.Start,
		d.End,
		spanBase(d.Selection),
		spanExtent(d.Selection),
		spanBase(d.Composing),
		spanExtent(d.Composing),
	}

	out := "{}"
	for i, key := range payloadKeys {
		var err error
		out, err = sjson.Set(out, key, values[i])
		if err != nil {
			return nil, fmt.Errorf("encoding delta payload key %s: %w", key, err)
		}
	}
	return []byte(out), nil
}

// ParsePayload decodes a host wire payload back into a Delta. Every key
// must be present; a missing key or malformed document is an error.
func ParsePayload(data []byte) (Delta, error) {
	if !gjson.ValidBytes(data) {
		return Delta{}, ErrPayloadInvalid
	}

	doc := gjson.ParseBytes(data)
	for _, key := range payloadKeys {
		if !doc.Get(key).Exists() {
			return Delta{}, fmt.Errorf("%w: %s", ErrPayloadMissingKey, key)
		}
	}

	kind, err := KindFromString(doc.Get("delta").String())
	if err != nil {
		return Delta{}, err
	}

	return Delta{
		Kind:    kind,
		OldText: doc.Get("oldText").String(),
		Text:    doc.Get("deltaText").String(),
		Start:   int(doc.Get("deltaStart").Int()),
		End:     int(doc.Get("deltaEnd").Int()),
		Selection: parseSpan(
			int(doc.Get("selectionBase").Int()),
			int(doc.Get("selectionExtent").Int()),
		),
		Composing: parseSpan(
			int(doc.Get("composingBase").Int()),
			int(doc.Get("composingExtent").Int()),
		),
	}, nil
}

// spanBase returns the serializable start bound of a span, -1 when unset.
func spanBase(s buffer.Span) int {
	if !s.IsSet() {
		return -1
	}
	return s.Start
}

// spanExtent returns the serializable end bound of a span, -1 when unset.
func spanExtent(s buffer.Span) int {
	if !s.IsSet() {
		return -1
	}
	return s.End
}

func parseSpan(base, extent int) buffer.Span {
	if base < 0 || extent < 0 {
		return buffer.Unset()
	}
	return buffer.NewSpan(base, extent)
}
