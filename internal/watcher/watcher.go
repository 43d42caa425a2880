// Package watcher observes photo-catalog files with fsnotify and triggers a
// coalesced reindex when any of them change.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches catalog directories and invokes onChange after catalog
// files settle. Changes arriving in a burst collapse into one callback.
type Watcher struct {
	dirs       []string
	extensions []string
	onChange   func()
	debounce   time.Duration
	logger     *zap.Logger

	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	pending  *time.Timer
	done     chan struct{}
	started  bool
	stopOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithDebounce overrides the settle window before onChange fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// NewWatcher creates a watcher over dirs. extensions filter which files
// count as catalog changes (empty = all). onChange runs after the settle
// window on the watcher goroutine.
func NewWatcher(dirs []string, extensions []string, onChange func(), opts ...Option) *Watcher {
	w := &Watcher{
		dirs:       dirs,
		extensions: extensions,
		onChange:   onChange,
		debounce:   defaultDebounce,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	return w
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.watcher = watcher
	w.started = true
	w.logger.Debug("watcher starting",
		zap.Strings("dirs", w.dirs), zap.Strings("extensions", w.extensions))
	for _, dir := range w.dirs {
		if err := w.addDirLocked(dir); err != nil {
			_ = w.watcher.Close()
			w.watcher = nil
			w.started = false
			w.mu.Unlock()
			return err
		}
	}
	w.mu.Unlock()
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	switch ev.Op {
	case fsnotify.Create, fsnotify.Write, fsnotify.Remove, fsnotify.Rename:
	default:
		return
	}
	if !matchExtension(ev.Name, w.extensions) {
		return
	}
	w.logger.Debug("catalog change",
		zap.String("op", ev.Op.String()), zap.String("path", ev.Name))
	w.scheduleChange()
}

// scheduleChange resets the settle timer so bursts of catalog writes trigger
// one callback.
func (w *Watcher) scheduleChange() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.pending = nil
		onChange := w.onChange
		w.mu.Unlock()
		if onChange != nil {
			onChange()
		}
	})
}

func (w *Watcher) addDirLocked(dir string) error {
	dir = filepath.Clean(dir)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		} else {
			return err
		}
	}
	return w.watcher.Add(dir)
}

func matchExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range extensions {
		if strings.TrimPrefix(strings.ToLower(e), ".") == ext {
			return true
		}
	}
	return false
}

// Directories returns a copy of the watched directories.
func (w *Watcher) Directories() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.dirs...)
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
