package ime

import (
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/editstate/internal/editing/buffer"
	"github.com/dshills/editstate/internal/editing/state"
	"github.com/dshills/editstate/internal/logging"
)

// Adapter consumes composition events and keeps the editing state's
// composing region in sync with the in-progress composition text.
//
// Composition updates replace the current composing text in place. The
// composing text is NFC-normalized before it reaches the buffer, so the
// composing span length always matches the stored bytes.
type Adapter struct {
	st  *state.State
	log logging.Sink

	text   string
	start  int
	active bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the sink that receives usage error reports.
func WithLogger(sink logging.Sink) Option {
	return func(a *Adapter) {
		if sink != nil {
			a.log = sink
		}
	}
}

// New creates an Adapter driving the given editing state.
func New(st *state.State, opts ...Option) *Adapter {
	a := &Adapter{
		st:  st,
		log: logging.Nop{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Active reports whether a composition is in progress.
func (a *Adapter) Active() bool {
	return a.active
}

// Text returns the current composing text, or "" when inactive.
func (a *Adapter) Text() string {
	if !a.active {
		return ""
	}
	return a.text
}

// CompositionStart begins a composition at the selection extent. Starting
// while a composition is already active is a reported usage error; the
// current composition is ended first.
func (a *Adapter) CompositionStart() {
	if a.active {
		a.log.Errorf("composition started while one is active")
		a.CompositionEnd()
	}

	a.start = a.anchor()
	a.text = ""
	a.active = true
}

// CompositionUpdate replaces the composing text with text. The update is
// a no-op when no composition is active (a reported usage error). Returns
// the classification error from the underlying replace, which only occurs
// if the tracked composition offsets no longer fit the buffer.
func (a *Adapter) CompositionUpdate(text string) error {
	if !a.active {
		a.log.Errorf("composition update without an active composition")
		return nil
	}

	text = norm.NFC.String(text)

	a.st.BeginBatchEdit()
	defer a.st.EndBatchEdit()

	if _, err := a.st.ApplyReplace(a.start, a.start+len(a.text), text, 0, len(text)); err != nil {
		return err
	}
	a.text = text

	end := a.start + len(a.text)
	if err := a.st.SetSelection(end, end); err != nil {
		return err
	}
	if len(a.text) == 0 {
		return a.st.SetComposingRegion(-1, -1)
	}
	return a.st.SetComposingRegion(a.start, end)
}

// CompositionEnd commits the composing text: the text stays in the
// buffer and the composing region clears. Ending without an active
// composition is a reported usage error and a no-op.
func (a *Adapter) CompositionEnd() {
	if !a.active {
		a.log.Errorf("composition ended without an active composition")
		return
	}

	a.active = false
	a.text = ""
	if err := a.st.SetComposingRegion(-1, -1); err != nil {
		a.log.Errorf("clearing composing region: %v", err)
	}
}

// ComposingSpan returns the span the current composing text occupies
// given the selection base offset: [base-len, base) when a composition
// is active and fits before the base, unset otherwise.
func (a *Adapter) ComposingSpan(selectionBase int) buffer.Span {
	if !a.active || len(a.text) == 0 || len(a.text) > selectionBase {
		return buffer.Unset()
	}
	return buffer.NewSpan(selectionBase-len(a.text), selectionBase)
}

// anchor returns the offset new composing text is inserted at: the
// selection extent when set, else the end of the buffer.
func (a *Adapter) anchor() int {
	if sel := a.st.Selection(); sel.IsSet() {
		return sel.End
	}
	return a.st.Len()
}
