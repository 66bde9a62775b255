// Package watch re-runs an action when bucket documents below a directory
// change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gorewood/flowdoc/internal/logging"
	"github.com/gorewood/flowdoc/internal/source"
)

// DefaultDebounce is how long the tree must stay quiet before the action runs.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a directory tree. Subdirectories created after New are
// picked up as they appear.
type Watcher struct {
	root     string
	exclude  []string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before the action runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch events and action failures.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithExclude skips the given directories and everything below them,
// typically the export output directory.
func WithExclude(dirs ...string) Option {
	return func(w *Watcher) {
		for _, dir := range dirs {
			if abs, err := filepath.Abs(dir); err == nil {
				w.exclude = append(w.exclude, abs)
			}
		}
	}
}

// New starts watching root and every non-hidden, non-excluded directory
// below it.
func New(root string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving watch root %s: %w", root, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		root:     abs,
		debounce: DefaultDebounce,
		logger:   logging.NewNop(),
		fsw:      fsw,
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.addTree(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is done, calling action after each burst of relevant
// changes. Action errors are logged and do not stop the watch. Run closes
// the watcher before returning.
func (w *Watcher) Run(ctx context.Context, action func(context.Context) error) error {
	defer func() { _ = w.fsw.Close() }()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("change detected", logging.KeyPath, event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				// Errors here mean the entry vanished or is not a directory.
				_ = w.addTree(event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			if err := action(ctx); err != nil {
				w.logger.Error("rerun failed", "error", err)
			}
		}
	}
}

// relevant reports whether event can change the loaded documents.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if w.excluded(event.Name) || hidden(w.root, event.Name) {
		return false
	}
	if event.Op == fsnotify.Chmod {
		return false
	}
	// A removed or renamed directory takes its documents with it.
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return true
	}
	if event.Has(fsnotify.Create) && filepath.Ext(event.Name) == "" {
		return true
	}
	return source.IsDocument(event.Name)
}

// addTree watches dir and its subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != w.root && (hidden(w.root, path) || w.excluded(path)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) excluded(path string) bool {
	for _, dir := range w.exclude {
		if dir == w.root {
			continue
		}
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// hidden reports whether any element of path below root starts with a dot.
func hidden(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}
