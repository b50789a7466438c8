// Package watch re-runs an action whenever one of a set of input files
// changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/endorses/seqscan/internal/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

// Config configures a Watcher.
type Config struct {
	// Debounce collapses bursts of events into one callback.
	// Default: 200ms
	Debounce time.Duration

	// PollInterval is the fallback polling interval when fsnotify is unavailable.
	// Default: 1 second
	PollInterval time.Duration
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() Config {
	return Config{
		Debounce:     200 * time.Millisecond,
		PollInterval: 1 * time.Second,
	}
}

// OnChange is invoked after the watched inputs settle. Errors are logged and
// do not stop the watcher.
type OnChange func(ctx context.Context) error

// Watcher watches input files and invokes a callback on change.
type Watcher struct {
	config   Config
	paths    []string
	targets  map[string]bool
	onChange OnChange

	ready     chan struct{}
	readyOnce sync.Once
	runs      atomic.Uint64
}

// New creates a watcher over paths.
func New(paths []string, onChange OnChange, config Config) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultConfig().Debounce
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultConfig().PollInterval
	}

	w := &Watcher{
		config:   config,
		targets:  make(map[string]bool, len(paths)),
		onChange: onChange,
		ready:    make(chan struct{}),
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		if !w.targets[abs] {
			w.targets[abs] = true
			w.paths = append(w.paths, abs)
		}
	}
	return w, nil
}

// Ready is closed once the watcher is observing its inputs.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Runs returns how many times the callback has been invoked.
func (w *Watcher) Runs() uint64 {
	return w.runs.Load()
}

func (w *Watcher) markReady() {
	w.readyOnce.Do(func() { close(w.ready) })
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("fsnotify unavailable, falling back to polling",
			"error", err)
		return w.poll(ctx)
	}
	defer func() {
		if cerr := fsWatcher.Close(); cerr != nil {
			logger.Error("failed to close fsnotify watcher", "error", cerr)
		}
	}()

	// Watch parent directories so replace-by-rename saves are seen.
	dirs := make(map[string]bool)
	for _, p := range w.paths {
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fsWatcher.Add(dir); err != nil {
			logger.Warn("failed to watch directory, falling back to polling",
				"dir", dir,
				"error", err)
			return w.poll(ctx)
		}
	}

	logger.Info("Watching inputs",
		"paths", w.paths,
		"mode", "fsnotify",
		"debounce", w.config.Debounce)
	w.markReady()

	timer := time.NewTimer(w.config.Debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			eventPath, _ := filepath.Abs(event.Name)
			if !w.targets[eventPath] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Input changed", "path", eventPath, "op", event.Op.String())
			timer.Reset(w.config.Debounce)
			pending = timer.C
		case <-pending:
			pending = nil
			w.fire(ctx)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("fsnotify error", "error", err)
		}
	}
}

type fileState struct {
	modTime time.Time
	size    int64
	exists  bool
}

func stat(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to stat input", "path", path, "error", err)
		}
		return fileState{}
	}
	return fileState{modTime: info.ModTime(), size: info.Size(), exists: true}
}

// poll watches using periodic stat calls.
func (w *Watcher) poll(ctx context.Context) error {
	last := make(map[string]fileState, len(w.paths))
	for _, p := range w.paths {
		last[p] = stat(p)
	}

	logger.Info("Watching inputs",
		"paths", w.paths,
		"mode", "polling",
		"interval", w.config.PollInterval)
	w.markReady()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			changed := false
			for _, p := range w.paths {
				cur := stat(p)
				if cur != last[p] {
					last[p] = cur
					changed = changed || cur.exists
				}
			}
			if changed {
				w.fire(ctx)
			}
		}
	}
}

func (w *Watcher) fire(ctx context.Context) {
	w.runs.Add(1)
	if err := w.onChange(ctx); err != nil {
		logger.Warn("Re-run after input change failed", "error", err)
	}
}
