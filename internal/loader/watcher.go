package loader

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ReloadHandler is called with the source file path when a watched
// layout file changes.
type ReloadHandler func(path string)

// Watcher monitors layout files for changes and triggers reloads,
// debouncing bursts of write events from editors.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	handler ReloadHandler
	delay   time.Duration
	pending map[string]*time.Timer
	log     zerolog.Logger
	closed  bool
	done    chan struct{}
}

// NewWatcher creates a watcher delivering change notifications to the
// handler after the given debounce delay.
func NewWatcher(handler ReloadHandler, delay time.Duration, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher: fsw,
		handler: handler,
		delay:   delay,
		pending: make(map[string]*time.Timer),
		log:     log,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch adds a layout file to the watch set. Watching the containing
// directory catches editors that replace files on save.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return w.watcher.Add(filepath.Dir(abs))
}

// Close stops the watcher and cancels pending notifications.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, timer := range w.pending {
		timer.Stop()
	}
	w.mu.Unlock()
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != Extension {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("layout watch error")
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a changed file.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		w.log.Info().Str("path", path).Msg("layout changed")
		w.handler(path)
	})
}
