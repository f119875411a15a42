// Package mover moves the active window to a placement through a
// platform.Backend. It owns the host-specific workaround for windows that
// land on the wrong monitor after a move.
package mover

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/1broseidon/winplace/internal/placement"
	"github.com/1broseidon/winplace/internal/platform"
)

// ErrNothingToUndo is returned by Undo when no move has been recorded.
var ErrNothingToUndo = errors.New("nothing to undo")

// Options configures a Mover.
type Options struct {
	// CorrectMigration enables the monitor-migration workaround.
	CorrectMigration bool
	Logger           *slog.Logger
}

// Result describes a completed move.
type Result struct {
	Window    platform.WindowID
	Placement placement.Placement
	Display   int
	Before    platform.Rect
	After     platform.Rect
	// Corrected is set when the window migrated to another display and was
	// sent back.
	Corrected bool
}

type undoEntry struct {
	window platform.WindowID
	frame  platform.Rect
}

// Mover places windows. It is safe for concurrent use; moves are serialized.
type Mover struct {
	backend platform.Backend
	logger  *slog.Logger

	mu               sync.Mutex
	correctMigration bool
	last             *undoEntry
	moves            int
	lastPlacement    *placement.Placement
}

// New creates a Mover over backend.
func New(backend platform.Backend, opts Options) *Mover {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Mover{
		backend:          backend,
		logger:           logger.With("component", "move-window"),
		correctMigration: opts.CorrectMigration,
	}
}

// SetCorrectMigration toggles the monitor-migration workaround (config reload).
func (m *Mover) SetCorrectMigration(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.correctMigration = enabled
}

// Move places the active window at p on the display it currently occupies.
//
// Some window managers occasionally hand a window to a neighbouring monitor
// when it is pushed against a vertical edge. When that happens the move is
// applied once more relative to the monitor the window landed on and the
// window is then sent back to the intended monitor. This runs once and the
// result is not re-checked.
func (m *Mover) Move(p placement.Placement) (Result, error) {
	if !p.Valid() {
		return Result{}, fmt.Errorf("%w: %d", placement.ErrUnknownPlacement, int(p))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("beginning window move", "placement", p.String())

	win, err := m.backend.ActiveWindow()
	if err != nil {
		return Result{}, fmt.Errorf("failed to get active window: %w", err)
	}

	intended, err := m.backend.WindowDisplay(win)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get display of window 0x%x: %w", uint32(win), err)
	}

	before, after, err := m.place(win, p, intended)
	if err != nil {
		return Result{}, err
	}

	// The window has moved; it stays undoable even if the correction fails.
	m.last = &undoEntry{window: win, frame: before}
	m.moves++
	m.lastPlacement = &p

	res := Result{
		Window:    win,
		Placement: p,
		Display:   intended,
		Before:    before,
		After:     after,
	}

	if m.correctMigration {
		landed, err := m.backend.WindowDisplay(win)
		if err != nil {
			return Result{}, fmt.Errorf("failed to get display of window 0x%x after move: %w", uint32(win), err)
		}
		if landed != intended {
			m.logger.Warn("window migrated to another display, correcting",
				"window", fmt.Sprintf("0x%x", uint32(win)),
				"intended", intended,
				"landed", landed,
			)
			if _, _, err := m.place(win, p, landed); err != nil {
				return Result{}, fmt.Errorf("migration correction failed: %w", err)
			}
			if err := m.backend.SendToDisplay(win, intended); err != nil {
				return Result{}, fmt.Errorf("failed to send window back to display %d: %w", intended, err)
			}
			if frame, err := m.backend.WindowFrame(win); err == nil {
				res.After = frame
			}
			res.Corrected = true
		}
	}

	m.logger.Info("window moved",
		"window", fmt.Sprintf("0x%x", uint32(win)),
		"placement", p.String(),
		"x", res.After.X,
		"y", res.After.Y,
		"corrected", res.Corrected,
	)
	return res, nil
}

// place aligns win to p inside the usable area of displayID and commits it.
func (m *Mover) place(win platform.WindowID, p placement.Placement, displayID int) (before, after platform.Rect, err error) {
	frame, err := m.backend.WindowFrame(win)
	if err != nil {
		return before, after, fmt.Errorf("failed to get frame of window 0x%x: %w", uint32(win), err)
	}

	area, err := m.backend.UsableArea(displayID)
	if err != nil {
		return before, after, fmt.Errorf("failed to get usable area of display %d: %w", displayID, err)
	}

	m.logger.Debug("resolving placement",
		"frame", frame,
		"area", area,
		"area_center_x", toPlacementRect(area).CenterX(),
		"area_center_y", toPlacementRect(area).CenterY(),
	)

	target := fromPlacementRect(placement.Frame(p, toPlacementRect(frame), toPlacementRect(area)))

	m.logger.Debug("applying frame", "x", target.X, "y", target.Y)

	if err := m.backend.MoveResize(win, target); err != nil {
		return before, after, fmt.Errorf("failed to move window 0x%x: %w", uint32(win), err)
	}
	return frame, target, nil
}

// Undo restores the frame the last moved window had before its move.
func (m *Mover) Undo() (platform.Rect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.last == nil {
		return platform.Rect{}, ErrNothingToUndo
	}

	entry := *m.last
	if err := m.backend.MoveResize(entry.window, entry.frame); err != nil {
		return platform.Rect{}, fmt.Errorf("failed to restore window 0x%x: %w", uint32(entry.window), err)
	}
	m.last = nil

	m.logger.Info("move undone",
		"window", fmt.Sprintf("0x%x", uint32(entry.window)),
		"x", entry.frame.X,
		"y", entry.frame.Y,
	)
	return entry.frame, nil
}

// Stats reports the number of committed moves and the most recent placement.
func (m *Mover) Stats() (moves int, last string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastPlacement != nil {
		last = m.lastPlacement.String()
	}
	return m.moves, last
}

func toPlacementRect(r platform.Rect) placement.Rect {
	return placement.Rect{
		X:      float64(r.X),
		Y:      float64(r.Y),
		Width:  float64(r.Width),
		Height: float64(r.Height),
	}
}

func fromPlacementRect(r placement.Rect) platform.Rect {
	return platform.Rect{
		X:      int(r.X),
		Y:      int(r.Y),
		Width:  int(r.Width),
		Height: int(r.Height),
	}
}
