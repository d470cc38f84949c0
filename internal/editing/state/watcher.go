package state

// Watcher is notified when the editing state changes. The three flags are
// independent: any combination can be true in a single notification.
//
// Changing the editing state or the watcher registration from inside
// DidChangeEditingState is a usage error; it is reported, not prevented.
type Watcher interface {
	DidChangeEditingState(textChanged, selectionChanged, composingChanged bool)
}

// WatcherFunc adapts a function to the Watcher interface. Func values
// are not comparable, so a WatcherFunc cannot be removed with
// RemoveWatcher; use a pointer type for watchers that unregister.
type WatcherFunc func(textChanged, selectionChanged, composingChanged bool)

// DidChangeEditingState implements Watcher.
func (f WatcherFunc) DidChangeEditingState(textChanged, selectionChanged, composingChanged bool) {
	f(textChanged, selectionChanged, composingChanged)
}

// AddWatcher registers a watcher. A watcher added during a batch edit is
// held pending and receives one forced notification when the outermost
// batch edit ends. Duplicate registrations are not detected.
func (s *State) AddWatcher(w Watcher) {
	if s.notifyDepth > 0 {
		s.log.Errorf("watcher added from inside a watcher callback")
	}

	if s.batchDepth > 0 {
		s.log.Warnf("watcher added while a batch edit is in progress")
		s.pending = append(s.pending, w)
		return
	}
	s.watchers = append(s.watchers, w)
}

// RemoveWatcher unregisters a watcher from both the active and the
// pending lists.
func (s *State) RemoveWatcher(w Watcher) {
	if s.notifyDepth > 0 {
		s.log.Errorf("watcher removed from inside a watcher callback")
	}

	s.watchers = removeWatcher(s.watchers, w)
	if s.batchDepth > 0 {
		s.pending = removeWatcher(s.pending, w)
	}
}

// WatcherCount returns the number of registered watchers, including any
// pending ones.
func (s *State) WatcherCount() int {
	return len(s.watchers) + len(s.pending)
}

// notifyIfNeeded notifies all watchers when at least one flag is set.
// The watcher list is snapshotted before iterating so registrations made
// during the pass (a reported usage error) cannot corrupt it.
func (s *State) notifyIfNeeded(textChanged, selectionChanged, composingChanged bool) {
	if !textChanged && !selectionChanged && !composingChanged {
		return
	}

	active := make([]Watcher, len(s.watchers))
	copy(active, s.watchers)
	for _, w := range active {
		s.notifyWatcher(w, textChanged, selectionChanged, composingChanged)
	}
}

// notifyWatcher delivers one notification, tracking the notify depth so
// reentrant mutations can be detected and reported.
func (s *State) notifyWatcher(w Watcher, textChanged, selectionChanged, composingChanged bool) {
	s.notifyDepth++
	w.DidChangeEditingState(textChanged, selectionChanged, composingChanged)
	s.notifyDepth--
}

func removeWatcher(list []Watcher, w Watcher) []Watcher {
	for i, cur := range list {
		if cur == w {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
