// Package watch triggers engine reloads when source inputs change on
// disk.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of file events before firing.
const DefaultDebounce = 2 * time.Second

// Watcher observes the curated sources file and dataset directory and
// invokes OnChange after changes settle.
type Watcher struct {
	// Paths are files or directories to observe. Directories are
	// watched recursively as they exist at start time.
	Paths []string
	// Debounce is the settle window after the last event.
	Debounce time.Duration
	// OnChange runs on the watcher goroutine after the debounce window.
	OnChange func()
	Logger   *slog.Logger
}

// Run watches until the context is canceled. Paths that do not exist
// yet are skipped with a debug log; they are picked up on next start.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	for _, p := range w.Paths {
		if err := addRecursive(fsw, p); err != nil {
			logger.Debug("skipping watch path", slog.String("path", p), slog.String("error", err.Error()))
		}
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New subdirectories join the watch set.
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addRecursive(fsw, ev.Name)
				}
			}
			logger.Debug("input changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(debounce)
			pending = true

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.String("error", err.Error()))

		case <-timer.C:
			pending = false
			if w.OnChange != nil {
				w.OnChange()
			}
		}
	}
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fsw.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
}
