// Package watcher reports batches of changed source files under a directory
// tree, debouncing bursts of filesystem events.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the tree must be quiet before a batch is emitted.
const DefaultDebounce = 300 * time.Millisecond

// Filter decides which paths the watcher cares about.
type Filter struct {
	// Accept reports whether a file should be part of a batch.
	Accept func(path string) bool
	// SkipDir reports whether a directory (by base name) is left unwatched.
	SkipDir func(name string) bool
}

// Handler receives one debounced batch of changed files, sorted.
type Handler func(ctx context.Context, paths []string)

// Watcher watches a directory tree recursively.
type Watcher struct {
	fsw    *fsnotify.Watcher
	delay  time.Duration
	filter Filter
	logger *slog.Logger
	root   string
}

// New creates a watcher on root and registers every non-skipped directory.
func New(root string, delay time.Duration, filter Filter, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if filter.Accept == nil {
		filter.Accept = func(string) bool { return true }
	}
	if filter.SkipDir == nil {
		filter.SkipDir = func(string) bool { return false }
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watching %s: not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{fsw: fsw, delay: delay, filter: filter, logger: logger, root: filepath.Clean(root)}
	if _, err := w.addTree(w.root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run delivers batches to h until ctx is done. The handler runs on the
// watch goroutine, so events arriving meanwhile join the next batch.
func (w *Watcher) Run(ctx context.Context, h Handler) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.collect(ev, pending) {
				timer.Reset(w.delay)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			clear(pending)
			slices.Sort(batch)
			w.logger.Debug("change batch", "files", len(batch))
			h(ctx, batch)
		}
	}
}

// collect records the files an event touches and reports whether anything
// was added.
func (w *Watcher) collect(ev fsnotify.Event, pending map[string]struct{}) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	info, err := os.Stat(ev.Name)
	if err != nil {
		// Removed again before we looked.
		return false
	}
	if info.IsDir() {
		if !ev.Has(fsnotify.Create) || w.filter.SkipDir(info.Name()) {
			return false
		}
		files, err := w.addTree(ev.Name)
		if err != nil {
			w.logger.Warn("watching new directory", "path", ev.Name, "error", err)
		}
		for _, f := range files {
			pending[f] = struct{}{}
		}
		return len(files) > 0
	}
	if !info.Mode().IsRegular() || !w.filter.Accept(ev.Name) {
		return false
	}
	pending[ev.Name] = struct{}{}
	return true
}

// addTree watches dir and its subdirectories, returning accepted files
// already present so files created alongside a new directory are not lost.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if path != w.root && w.filter.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
			return nil
		}
		if d.Type().IsRegular() && w.filter.Accept(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
