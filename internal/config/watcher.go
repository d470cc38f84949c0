package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher watches a single config file and delivers a reloaded Config on
// each write, debounced so editor save sequences (write, chmod, rename)
// produce one reload.
type Watcher struct {
	path     string
	debounce time.Duration

	fsw     *fsnotify.Watcher
	configs chan Config
	errs    chan error

	closeOnce sync.Once
	closeCh   chan struct{}
	done      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a change triggers a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching the config file at path. The parent
// directory is watched so the file may not exist yet, or be replaced by
// rename, without losing the watch.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		debounce: defaultDebounce,
		fsw:      fsw,
		configs:  make(chan Config, 1),
		errs:     make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.done.Add(1)
	go w.loop()

	return w, nil
}

// Configs returns the channel of reloaded configurations.
func (w *Watcher) Configs() <-chan Config {
	return w.configs
}

// Errors returns the channel of watch and reload errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		w.done.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.done.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.sendError(err)
		return
	}

	// Keep only the latest config if the consumer is slow.
	select {
	case w.configs <- cfg:
	default:
		select {
		case <-w.configs:
		default:
		}
		select {
		case w.configs <- cfg:
		default:
		}
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
