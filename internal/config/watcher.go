package config

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceInterval is how long the watcher waits for events to settle.
const DebounceInterval = 250 * time.Millisecond

// Watcher reloads the configuration of a path when any config file in its
// directory chain, the project .env or an extra config file changes.
type Watcher struct {
	// Overrides are applied on every reload.
	Overrides map[string]any

	loader   *Loader
	path     string
	logger   *slog.Logger
	debounce time.Duration
}

// NewWatcher creates a Watcher for path.
func NewWatcher(loader *Loader, path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{loader: loader, path: path, logger: logger, debounce: DebounceInterval}
}

// Run watches until ctx is cancelled, calling onChange with each reloaded
// config. Reload errors are logged and the previous config stays active.
func (w *Watcher) Run(ctx context.Context, onChange func(*FluffConfig)) error {
	targets, err := w.loader.watchTargets(w.path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range targets.dirs() {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
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

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !targets.matches(event.Name) {
				continue
			}
			w.logger.Debug("config file changed", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.loader.ClearCache()
			cfg, err := w.loader.LoadForPath(ctx, w.path, w.Overrides)
			if err != nil {
				w.logger.Warn("config reload failed", "path", w.path, "error", err)
				continue
			}
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// watchTargets maps each watched directory to the file names in it that
// feed the config.
type watchTargets map[string]map[string]bool

func (l *Loader) watchTargets(path string) (watchTargets, error) {
	dirs, err := l.ConfigDirs(path)
	if err != nil {
		return nil, err
	}
	targets := watchTargets{}
	for _, dir := range dirs {
		targets.add(dir, FileNames...)
	}
	targets.add(l.projectRoot(dirs), ".env")
	for _, extra := range l.extraFiles {
		abs, err := filepath.Abs(extra)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", extra, err)
		}
		targets.add(filepath.Dir(abs), filepath.Base(abs))
	}
	return targets, nil
}

func (t watchTargets) add(dir string, names ...string) {
	dir = filepath.Clean(dir)
	if t[dir] == nil {
		t[dir] = make(map[string]bool, len(names))
	}
	for _, name := range names {
		t[dir][name] = true
	}
}

func (t watchTargets) dirs() []string {
	return slices.Sorted(maps.Keys(t))
}

func (t watchTargets) matches(path string) bool {
	return t[filepath.Dir(path)][filepath.Base(path)]
}
