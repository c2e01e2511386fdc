// Package watcher reports changes in a source folder using fsnotify.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docask/internal/core/ports/driven"
	"github.com/custodia-labs/docask/internal/logger"
)

// DefaultDebounce is how long events must settle before onChange fires.
const DefaultDebounce = 500 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.SourceWatcher = (*Watcher)(nil)

// Watcher watches a directory tree and coalesces bursts of events.
type Watcher struct {
	debounce time.Duration
	filter   func(path string) bool
}

// NewWatcher creates a watcher. A nil filter accepts every file; directory
// events are always considered.
func NewWatcher(debounce time.Duration, filter func(path string) bool) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce, filter: filter}
}

// Watch blocks until ctx is cancelled, calling onChange once per settled
// burst of relevant events. New subdirectories are watched as they appear.
func (w *Watcher) Watch(ctx context.Context, source string, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, source); err != nil {
		return err
	}
	logger.Info("Watching %s for changes", source)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				// A new directory may hold files; watch it too.
				if err := addTree(fw, event.Name); err != nil {
					logger.Debug("Not watching %s: %v", event.Name, err)
				}
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Event: %s", event)
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			onChange()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.filter == nil {
		return true
	}
	// Removed or renamed directories carry no extension; count them.
	if filepath.Ext(event.Name) == "" && !event.Has(fsnotify.Write) {
		return true
	}
	return w.filter(event.Name)
}

// addTree watches root and every directory below it.
// A root that is a plain file is ignored.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
