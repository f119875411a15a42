package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/winplace/internal/platform"
)

// DisplayLister returns the current display layout.
type DisplayLister interface {
	Displays() ([]platform.Display, error)
}

// WatcherConfig holds configuration for the display watcher.
type WatcherConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
	// OnChange is called with the new layout whenever it differs from the
	// previous poll. It is not called for the first observation.
	OnChange func(displays []platform.Display)
}

// DisplayWatcher periodically polls the display layout and reports changes
// such as a monitor being plugged in or a panel resizing the work area.
type DisplayWatcher struct {
	interval time.Duration
	lister   DisplayLister
	logger   *slog.Logger
	onChange func([]platform.Display)

	mu   sync.Mutex
	last string
	seen bool
}

// NewDisplayWatcher creates a watcher over lister.
func NewDisplayWatcher(cfg WatcherConfig, lister DisplayLister) *DisplayWatcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DisplayWatcher{
		interval: interval,
		lister:   lister,
		logger:   logger.With("component", "display-watcher"),
		onChange: cfg.OnChange,
	}
}

// Run starts the polling loop. Blocks until context is cancelled.
func (w *DisplayWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Debug("watcher started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// CheckNow polls once and reports whether the layout changed.
func (w *DisplayWatcher) CheckNow() bool {
	return w.check()
}

func (w *DisplayWatcher) check() (changed bool) {
	// A broken X connection must not take the daemon down.
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("watcher panic recovered", "error", err)
			changed = false
		}
	}()

	displays, err := w.lister.Displays()
	if err != nil {
		w.logger.Warn("failed to list displays", "error", err)
		return false
	}
	sig := layoutSignature(displays)

	w.mu.Lock()
	first := !w.seen
	changed = w.seen && sig != w.last
	w.last = sig
	w.seen = true
	w.mu.Unlock()

	if first {
		w.logger.Info("display layout", "displays", len(displays), "layout", sig)
		return false
	}
	if !changed {
		return false
	}

	w.logger.Info("display layout changed", "displays", len(displays), "layout", sig)
	if w.onChange != nil {
		w.onChange(displays)
	}
	return true
}

// layoutSignature renders displays in a stable order so two polls can be
// compared as strings.
func layoutSignature(displays []platform.Display) string {
	sorted := make([]platform.Display, len(displays))
	copy(sorted, displays)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	parts := make([]string, len(sorted))
	for i, d := range sorted {
		parts[i] = fmt.Sprintf("%d:%s@%dx%d+%d+%d[%dx%d+%d+%d]",
			d.ID, d.Name,
			d.Bounds.Width, d.Bounds.Height, d.Bounds.X, d.Bounds.Y,
			d.Usable.Width, d.Usable.Height, d.Usable.X, d.Usable.Y)
	}
	return strings.Join(parts, " ")
}
