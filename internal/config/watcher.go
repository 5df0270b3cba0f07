package config

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Close on an already-closed Watcher.
var ErrWatcherClosed = errors.New("config: watcher is closed")

// Handler is called with the freshly reloaded Settings each time the
// watched file changes. A Load error is passed with a zero Settings.
type Handler func(Settings, error)

// Watcher reloads Settings from a single file whenever fsnotify reports a
// write or create event for that exact path, ignoring events for other
// files in the same directory.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	path    string
	handler Handler
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup

	totalReloads int64
}

// NewWatcher creates a Watcher for path, calling handler on every reload.
// The file does not need to exist yet: its containing directory is
// watched, so creating the file later triggers a reload.
func NewWatcher(path string, handler Handler) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		path:    absPath,
		handler: handler,
		closeCh: make(chan struct{}),
	}

	dir := filepath.Dir(absPath)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Reloads returns the number of times handler has been invoked with a
// successful reload.
func (w *Watcher) Reloads() int64 {
	return atomic.LoadInt64(&w.totalReloads)
}

// Close stops watching and releases the underlying fsnotify handle.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if !evt.Op.Has(fsnotify.Write) && !evt.Op.Has(fsnotify.Create) {
				continue
			}
			w.reload()

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) reload() {
	settings, err := Load(w.path)
	if err == nil {
		atomic.AddInt64(&w.totalReloads, 1)
	}
	w.handler(settings, err)
}
