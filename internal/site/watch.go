package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce is how long Watch waits for the filesystem to settle.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc handles one debounced batch of changed paths.
type ChangeFunc func(ctx context.Context, changed []string) error

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watch watches dir recursively and calls fn with each debounced batch of
// changes until ctx is done. Errors from fn are logged and watching continues.
func Watch(ctx context.Context, dir string, fn ChangeFunc, opts ...WatchOption) error {
	o := watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	watcher, err := setupFileWatcher(dir)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	slog.Info("Watching for changes", logfields.Path(dir), slog.Duration("debounce", o.debounce))

	pending := make(map[string]struct{})
	timer := time.NewTimer(o.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !handleFileEvent(watcher, ev) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(o.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		case <-timer.C:
			batch := drain(pending)
			slog.Info("Change detected", logfields.Pages(len(batch)))
			if err := fn(ctx, batch); err != nil {
				slog.Warn("change handler failed", logfields.Error(err))
			}
		}
	}
}

func drain(pending map[string]struct{}) []string {
	batch := make([]string, 0, len(pending))
	for p := range pending {
		batch = append(batch, p)
		delete(pending, p)
	}
	sort.Strings(batch)
	return batch
}

func setupFileWatcher(dir string) (*fsnotify.Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot watch directory").
			WithContext("dir", dir).Build()
	}
	if !info.IsDir() {
		return nil, errors.ValidationError("watch target is not a directory").
			WithContext("dir", dir).Build()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create filesystem watcher").Build()
	}
	if err := addDirsRecursive(watcher, dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return watcher, nil
}

// handleFileEvent reports whether ev should count as a change. New
// directories are added to the watch set.
func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event) bool {
	if shouldIgnoreEvent(ev.Name) || ev.Op == fsnotify.Chmod {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	return true
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", slog.String("dir", path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for hidden, editor temp and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db" || base == "4913"
}
