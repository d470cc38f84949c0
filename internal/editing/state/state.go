package state

import (
	"github.com/dshills/editstate/internal/editing/buffer"
	"github.com/dshills/editstate/internal/editing/delta"
	"github.com/dshills/editstate/internal/logging"
)

// snapshot captures the observable editing state at a point in time.
type snapshot struct {
	text      string
	selection buffer.Span
	composing buffer.Span
}

// State holds the current editing state (text, selection range, composing
// range) and notifies its watchers when it changes. While batch edits are
// ongoing, change notifications are deferred until the outermost batch
// edit ends. Watchers added during a batch edit are always notified when
// all batch edits end, even if nothing actually changed.
//
// Adding or removing watchers, or changing the editing state, from inside
// a DidChangeEditingState callback is a usage error: it is reported to the
// logging sink and the resulting notification order is unspecified.
//
// Span-only changes (SetSelection, SetComposingRegion) do not notify on
// their own; wrap them in a batch edit to get a change notification.
type State struct {
	buf *buffer.Buffer
	log logging.Sink

	watchers []Watcher
	pending  []Watcher

	batchDepth  int
	notifyDepth int
	baseline    snapshot

	lastDelta delta.Delta
	hasDelta  bool
}

// Option is a functional option for configuring a State.
type Option func(*State)

// WithLogger sets the sink that receives usage error reports.
func WithLogger(sink logging.Sink) Option {
	return func(s *State) {
		if sink != nil {
			s.log = sink
		}
	}
}

// WithText sets the initial text.
func WithText(text string) Option {
	return func(s *State) {
		s.buf = buffer.New(buffer.WithText(text))
	}
}

// New creates an editing state with empty text and unset spans.
func New(opts ...Option) *State {
	s := &State{
		buf: buffer.New(),
		log: logging.Nop{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Text returns the current text.
func (s *State) Text() string {
	return s.buf.Text()
}

// Len returns the byte length of the current text.
func (s *State) Len() int {
	return s.buf.Len()
}

// Selection returns the current selection span.
func (s *State) Selection() buffer.Span {
	return s.buf.Selection()
}

// Composing returns the current composing span.
func (s *State) Composing() buffer.Span {
	return s.buf.Composing()
}

// LastDelta returns the most recently classified delta and whether one
// exists. The delta is ready for MarshalPayload.
func (s *State) LastDelta() (delta.Delta, bool) {
	return s.lastDelta, s.hasDelta
}

// BeginBatchEdit starts a new batch edit during which change
// notifications are put on hold until all batch edits end. Batch edits
// nest.
func (s *State) BeginBatchEdit() {
	s.batchDepth++
	if s.notifyDepth > 0 {
		s.log.Errorf("editing state must not be changed in a watcher callback")
	}
	if s.batchDepth == 1 && len(s.watchers) > 0 {
		s.baseline = s.snapshot()
	}
}

// EndBatchEdit ends the current batch edit and flushes pending change
// notifications if it is the outermost one. Calling EndBatchEdit without
// a matching BeginBatchEdit is a reported usage error and a no-op.
func (s *State) EndBatchEdit() {
	if s.batchDepth == 0 {
		s.log.Errorf("EndBatchEdit called without a matching BeginBatchEdit")
		return
	}

	if s.batchDepth == 1 {
		// Watchers added mid-batch get one forced notification even if
		// nothing changed, so new subscribers always observe a state.
		for _, w := range s.pending {
			s.notifyWatcher(w, true, true, true)
		}

		if len(s.watchers) > 0 {
			cur := s.snapshot()
			s.notifyIfNeeded(
				cur.text != s.baseline.text,
				cur.selection != s.baseline.selection,
				cur.composing != s.baseline.composing,
			)
		}
	}

	s.watchers = append(s.watchers, s.pending...)
	s.pending = s.pending[:0]
	s.batchDepth--
}

// InBatchEdit returns true while at least one batch edit is active.
func (s *State) InBatchEdit() bool {
	return s.batchDepth > 0
}

// ApplyReplace removes text[start:end], inserts text[textStart:textEnd]
// at start, and returns the classified delta. The delta's resulting
// selection and composing spans reflect the post-mutation state.
//
// Outside a batch edit, watchers are notified immediately when the text,
// selection, or composing region changed. Offset validation fails fast:
// on error nothing is mutated and no delta is recorded.
func (s *State) ApplyReplace(start, end int, text string, textStart, textEnd int) (delta.Delta, error) {
	if s.notifyDepth > 0 {
		s.log.Errorf("editing state must not be changed in a watcher callback")
	}

	oldText := s.buf.Text()
	d := delta.Classify(oldText, start, end, text, textStart, textEnd)

	res, err := s.buf.Replace(start, end, text, textStart, textEnd)
	if err != nil {
		return delta.Delta{}, err
	}

	d.Selection = res.Selection
	d.Composing = res.Composing
	s.lastDelta = d
	s.hasDelta = true

	if s.batchDepth == 0 {
		s.notifyIfNeeded(
			res.TextChanged,
			res.Selection != res.OldSelection,
			res.Composing != res.OldComposing,
		)
	}
	return d, nil
}

// InsertAt inserts text at the given offset.
func (s *State) InsertAt(offset int, text string) (delta.Delta, error) {
	return s.ApplyReplace(offset, offset, text, 0, len(text))
}

// Append appends text at the end of the buffer.
func (s *State) Append(text string) (delta.Delta, error) {
	n := s.buf.Len()
	return s.ApplyReplace(n, n, text, 0, len(text))
}

// Delete removes text in [start, end).
func (s *State) Delete(start, end int) (delta.Delta, error) {
	return s.ApplyReplace(start, end, "", 0, 0)
}

// SetSelection updates the selection span. A negative start clears it.
// This is a span-only change: no delta is classified and no notification
// fires outside a batch edit.
func (s *State) SetSelection(start, end int) error {
	if s.notifyDepth > 0 {
		s.log.Errorf("editing state must not be changed in a watcher callback")
	}
	return s.buf.SetSelection(start, end)
}

// SetComposingRegion updates the composing span. An invalid or empty
// range (start < 0 or start >= end) clears it. Like SetSelection, this
// never classifies a delta or notifies on its own.
func (s *State) SetComposingRegion(start, end int) error {
	if s.notifyDepth > 0 {
		s.log.Errorf("editing state must not be changed in a watcher callback")
	}
	return s.buf.SetComposing(start, end)
}

// SetEditingState replaces the whole editing state with newState inside a
// single batch edit, so watchers see at most one notification. This is
// the entry point for externally-driven full-state overwrites from the
// owning framework.
func (s *State) SetEditingState(newState EditState) error {
	s.BeginBatchEdit()
	defer s.EndBatchEdit()

	if _, err := s.ApplyReplace(0, s.buf.Len(), newState.Text, 0, len(newState.Text)); err != nil {
		return err
	}

	if newState.HasSelection() {
		if err := s.buf.SetSelection(newState.SelectionStart, newState.SelectionEnd); err != nil {
			return err
		}
	} else {
		if err := s.buf.SetSelection(-1, -1); err != nil {
			return err
		}
	}

	return s.buf.SetComposing(newState.ComposingStart, newState.ComposingEnd)
}

// snapshot captures the current observable state.
func (s *State) snapshot() snapshot {
	return snapshot{
		text:      s.buf.Text(),
		selection: s.buf.Selection(),
		composing: s.buf.Composing(),
	}
}
