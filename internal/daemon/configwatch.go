package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher calls OnChange after the config file is written, created,
// renamed or removed. Bursts of events (editors often write a temp file and
// rename it) collapse into one call.
type ConfigWatcher struct {
	path     string
	delay    time.Duration
	logger   *slog.Logger
	onChange func()

	fw *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewConfigWatcher creates a watcher for path. Nothing is watched until Start.
func NewConfigWatcher(path string, logger *slog.Logger, onChange func()) *ConfigWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigWatcher{
		path:     filepath.Clean(path),
		delay:    250 * time.Millisecond,
		logger:   logger.With("component", "config-watcher"),
		onChange: onChange,
	}
}

// Start begins watching the directory holding the config file. The directory
// must exist.
func (w *ConfigWatcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	// The directory is watched, not the file, so replacing the file keeps
	// the watch alive.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.fw = fw
	return nil
}

// Run delivers events until ctx is cancelled. Start must have succeeded.
func (w *ConfigWatcher) Run(ctx context.Context) {
	defer w.fw.Close()
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			w.logger.Debug("config file changed", "op", ev.Op.String(), "file", ev.Name)
			w.schedule()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", "error", err)
		}
	}
}

func (w *ConfigWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer == nil {
		w.timer = time.AfterFunc(w.delay, w.onChange)
		return
	}
	w.timer.Reset(w.delay)
}

func (w *ConfigWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
