// Package state provides the listenable editing state: the single
// mutable owner of the text, selection span, and composing span an IME
// edits, together with batched change notification and per-edit delta
// classification.
//
// Every text mutation routes through ApplyReplace, which snapshots the
// pre-mutation state, classifies the edit into a semantic delta, applies
// the mutation (shifting tracked spans), and notifies watchers with three
// independent change flags. Multiple mutations can be coalesced into a
// single notification with BeginBatchEdit/EndBatchEdit, which nest:
//
//	st := state.New(state.WithText("hello"))
//	st.AddWatcher(state.WatcherFunc(func(text, sel, comp bool) {
//	    // invalidate rendering
//	}))
//
//	st.BeginBatchEdit()
//	st.Append(" world")
//	st.SetSelection(11, 11)
//	st.EndBatchEdit() // exactly one notification
//
//	d, _ := st.LastDelta()
//	payload, err := d.MarshalPayload()
//
// The model is single-threaded and synchronous: all calls happen on the
// thread that owns the host input connection. Batch depth defers
// notification delivery, not mutation; it is a counter, not a lock.
package state
