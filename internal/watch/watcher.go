// Package watch re-runs a pipeline when its inputs change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/typesbuilder/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Trigger is called once per debounced burst with the changed paths, sorted.
// An error is logged and watching continues.
type Trigger func(ctx context.Context, changed []string) error

// Targets lists what to watch. Files match exactly; any change below a
// directory in Dirs matches.
type Targets struct {
	Files []string
	Dirs  []string
}

// Watcher delivers debounced change notifications for Targets.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]bool
	dirs     []string
	debounce time.Duration
	trigger  Trigger
	logger   *slog.Logger
}

// New creates a watcher and registers its watches. Missing directories are
// skipped; at least one watch must succeed.
func New(targets Targets, debounce time.Duration, trigger Trigger, logger *slog.Logger) (*Watcher, error) {
	if trigger == nil {
		return nil, errors.New("watch trigger is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		fs:       fw,
		files:    map[string]bool{},
		debounce: debounce,
		trigger:  trigger,
		logger:   logger,
	}

	// Watch parent directories rather than files so atomic saves
	// (write temp, rename over) keep being observed.
	watchDirs := map[string]bool{}
	for _, f := range targets.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		w.files[abs] = true
		watchDirs[filepath.Dir(abs)] = true
	}
	for _, d := range targets.Dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			continue
		}
		w.dirs = append(w.dirs, abs)
		watchDirs[abs] = true
	}

	added := 0
	for _, dir := range sortedKeys(watchDirs) {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logger.Debug("Skipping missing watch directory", logfields.Path(dir))
			continue
		}
		if err := fw.Add(dir); err != nil {
			logger.Warn("Failed to watch directory", logfields.Path(dir), logfields.Error(err))
			continue
		}
		added++
	}
	if added == 0 {
		_ = fw.Close()
		return nil, errors.New("nothing to watch: none of the target directories exist")
	}
	return w, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fs.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = map[string]bool{}
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))

		case <-fire:
			fire = nil
			changed := sortedKeys(pending)
			pending = map[string]bool{}
			if err := w.trigger(ctx, changed); err != nil {
				w.logger.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	for _, dir := range w.dirs {
		if name == dir || strings.HasPrefix(name, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
