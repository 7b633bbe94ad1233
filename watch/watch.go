// Package watch provides a debounced file watcher for re-running work when
// watched files change on disk.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/emit/errors"
	"github.com/teranos/emit/logger"
)

// OnChange is called with the path of a file that changed.
type OnChange func(path string)

// Watcher debounces fsnotify events for a fixed set of files and delivers
// one callback per settled change.
type Watcher struct {
	watcher        *fsnotify.Watcher
	onChange       OnChange
	debouncePeriod time.Duration

	mu       sync.Mutex
	pending  map[string]*time.Timer
	ownWrite map[string]bool

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a watcher over the given files. Callbacks are delivered after
// Start, from the watcher's goroutine.
func New(paths []string, onChange OnChange) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", p)
		}
	}

	return &Watcher{
		watcher:        fsw,
		onChange:       onChange,
		debouncePeriod: 500 * time.Millisecond, // Debounce rapid file changes
		pending:        make(map[string]*time.Timer),
		ownWrite:       make(map[string]bool),
		done:           make(chan struct{}),
	}, nil
}

// MarkOwnWrite suppresses the next event for path, preventing callback loops
// when the callback itself rewrites the watched file.
func (w *Watcher) MarkOwnWrite(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ownWrite[filepath.Clean(path)] = true
}

// checkOwnWrite checks and clears the own-write flag for path
func (w *Watcher) checkOwnWrite(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ownWrite[path] {
		delete(w.ownWrite, path)
		return true
	}
	return false
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// watchLoop monitors file system events
func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			if w.checkOwnWrite(path) {
				continue
			}
			w.schedule(path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Logger.Warnw("File watcher error", "error", err)
		}
	}
}

// schedule debounces rapid successive writes to the same file
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debouncePeriod, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.onChange(path)
	})
}

// Close stops event delivery and releases the fsnotify handle.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
