// Package watcher reports changes to the directory being browsed.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"fls/internal/log"
)

// DefaultDelay coalesces bursts of filesystem events into one notification.
const DefaultDelay = 150 * time.Millisecond

// Watcher follows a single directory at a time. Bursts of events are
// debounced; Events delivers the directory path once things settle.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan string
	done      chan struct{}
	delay     time.Duration

	mu  sync.Mutex
	dir string

	closeOnce sync.Once
}

// New starts the event loop. A delay <= 0 uses DefaultDelay.
func New(delay time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	w := &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan string, 1),
		done:      make(chan struct{}),
		delay:     delay,
	}
	go w.loop()
	return w, nil
}

// Watch switches the watched directory to dir.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		// the old directory may already be gone
		_ = w.fsWatcher.Remove(w.dir)
	}
	w.dir = ""
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	log.WithFields(log.F("directory", dir)).Debug("watching directory")
	return nil
}

// Events delivers the watched directory after it changed.
func (w *Watcher) Events() <-chan string {
	return w.events
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}
	pending := ""
	for {
		select {
		case <-w.done:
			timer.Stop()
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			dir := w.current()
			if dir == "" || (ev.Name != dir && filepath.Dir(ev.Name) != dir) {
				continue
			}
			// writes and chmods leave the listing as it is
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			pending = dir
			timer.Reset(w.delay)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watcher error: %v", err)
		case <-timer.C:
			if pending == "" || pending != w.current() {
				pending = ""
				continue
			}
			select {
			case w.events <- pending:
			default:
				// a notification for this directory is already queued
			}
			pending = ""
		}
	}
}
