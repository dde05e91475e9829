// Package watch triggers rebuilds when apibook's inputs change.
//
// A [Watcher] observes individual files (the reflection JSON, README, config)
// and whole directory trees (examples). Bursts of events are debounced into a
// single callback carrying every changed path, and callbacks run on the
// watcher's own goroutine one at a time, so rebuilds never overlap.
package watch

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/apibook/pkg/errors"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc is called with the sorted set of paths changed since the last call.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher watches files and directory trees.
type Watcher struct {
	// Debounce is the quiet period that ends a burst of events.
	Debounce time.Duration

	logger  *log.Logger
	fsw     *fsnotify.Watcher
	files   map[string]bool
	trees   []string
	watched map[string]bool
}

// New watches files and, recursively, trees. Files and trees that do not
// exist yet are fine: their parent directory is watched so that creating them
// triggers a change. A nil logger discards output.
func New(files, trees []string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}

	w := &Watcher{
		Debounce: DefaultDebounce,
		logger:   logger,
		fsw:      fsw,
		files:    make(map[string]bool),
		watched:  make(map[string]bool),
	}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", f)
		}
		w.files[abs] = true
		if err := w.add(existingAncestor(abs)); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	for _, t := range trees {
		abs, err := filepath.Abs(t)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", t)
		}
		w.trees = append(w.trees, abs)
		if _, err := os.Stat(abs); os.IsNotExist(err) {
			if err := w.add(existingAncestor(abs)); err != nil {
				fsw.Close()
				return nil, err
			}
			continue
		}
		if err := w.addTree(abs); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run delivers debounced changes to onChange until ctx is done, then closes
// the watcher and returns ctx.Err().
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.fsw.Close()

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && (w.inTree(event.Name) || w.aboveTree(event.Name)) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("watch new directory", "dir", event.Name, "err", err)
					}
				}
			}
			if event.Op == fsnotify.Chmod || !w.Relevant(event.Name) {
				continue
			}

			w.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			onChange(ctx, changed)
		}
	}
}

// Close stops watching without running.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Relevant reports whether a change to name should trigger a rebuild.
func (w *Watcher) Relevant(name string) bool {
	name = filepath.Clean(name)
	if isBackupFile(name) {
		return false
	}
	if w.files[name] {
		return true
	}
	return w.inTree(name)
}

func (w *Watcher) inTree(name string) bool {
	for _, t := range w.trees {
		if name == t || strings.HasPrefix(name, t+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// aboveTree reports whether name is a directory on the way to a watched tree
// that did not exist yet.
func (w *Watcher) aboveTree(name string) bool {
	for _, t := range w.trees {
		if strings.HasPrefix(t, filepath.Clean(name)+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// existingAncestor returns the closest parent of p that exists.
func existingAncestor(p string) string {
	dir := filepath.Dir(p)
	for {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

func (w *Watcher) add(dir string) error {
	if w.watched[dir] {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", dir)
	}
	w.watched[dir] = true
	return nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.add(p)
		}
		return nil
	})
}

// isBackupFile matches editor swap and backup files.
func isBackupFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasSuffix(base, ".tmp") ||
		strings.HasPrefix(base, ".#")
}
