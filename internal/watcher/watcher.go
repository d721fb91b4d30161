// Package watcher re-internalizes local asset directories when their
// contents change, with debouncing so editor save bursts collapse into one
// pass.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/conneroisu/basset/internal/logging"
)

// ChangeEvent represents a file change event
type ChangeEvent struct {
	Path    string
	ModTime time.Time
}

// ChangeHandler handles a debounced batch of file change events
type ChangeHandler func(events []ChangeEvent) error

// FileWatcher watches asset directories with debouncing
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	delay    time.Duration
	handlers []ChangeHandler
	logger   logging.Logger

	mutex   sync.Mutex
	pending []ChangeEvent
	timer   *time.Timer
}

// NewFileWatcher creates a new file watcher with the given debounce delay.
func NewFileWatcher(delay time.Duration, logger logging.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.NopLogger{}
	}

	return &FileWatcher{
		watcher: w,
		delay:   delay,
		logger:  logger.WithComponent("watcher"),
	}, nil
}

// AddHandler registers a handler for debounced change batches.
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// AddRecursive watches path and every directory below it.
func (fw *FileWatcher) AddRecursive(path string) error {
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fw.watcher.Add(p)
		}

		return nil
	})
}

// Start processes events until the context is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return fw.watcher.Close()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			// New directories join the watch so nested creates are seen.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					fw.watcher.Add(event.Name)
				}
			}
			fw.enqueue(ChangeEvent{Path: event.Name, ModTime: time.Now()})
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn(ctx, err, "watch error")
		}
	}
}

// enqueue buffers an event and (re)arms the debounce timer.
func (fw *FileWatcher) enqueue(event ChangeEvent) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	fw.pending = append(fw.pending, event)

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.delay, fw.flush)
}

func (fw *FileWatcher) flush() {
	fw.mutex.Lock()
	batch := fw.pending
	fw.pending = nil
	handlers := make([]ChangeHandler, len(fw.handlers))
	copy(handlers, fw.handlers)
	fw.mutex.Unlock()

	if len(batch) == 0 {
		return
	}

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			fw.logger.Warn(context.Background(), err, "change handler failed")
		}
	}
}
