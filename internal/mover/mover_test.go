package mover

import (
	"errors"
	"fmt"
	"testing"

	"github.com/1broseidon/winplace/internal/placement"
	"github.com/1broseidon/winplace/internal/platform"
)

// fakeBackend is an in-memory window system with two side-by-side displays.
type fakeBackend struct {
	displays  []platform.Display
	frames    map[platform.WindowID]platform.Rect
	active    platform.WindowID
	activeErr error

	// migrateDX shifts the next MoveResize horizontally, imitating a window
	// manager that hands the window to a neighbouring monitor.
	migrateDX int
	sendErr   error

	moveCalls []platform.Rect
	sendCalls []int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		displays: []platform.Display{
			{
				ID:     0,
				Name:   "DP-1",
				Bounds: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
				Usable: platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
			},
			{
				ID:     1,
				Name:   "DP-2",
				Bounds: platform.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080},
				Usable: platform.Rect{X: 1920, Y: 30, Width: 1920, Height: 1050},
			},
		},
		frames: map[platform.WindowID]platform.Rect{
			0x400001: {X: 100, Y: 100, Width: 400, Height: 300},
		},
		active: 0x400001,
	}
}

func (f *fakeBackend) Displays() ([]platform.Display, error) { return f.displays, nil }

func (f *fakeBackend) ActiveWindow() (platform.WindowID, error) {
	if f.activeErr != nil {
		return 0, f.activeErr
	}
	return f.active, nil
}

func (f *fakeBackend) WindowFrame(id platform.WindowID) (platform.Rect, error) {
	r, ok := f.frames[id]
	if !ok {
		return platform.Rect{}, fmt.Errorf("no window 0x%x", uint32(id))
	}
	return r, nil
}

func (f *fakeBackend) WindowDisplay(id platform.WindowID) (int, error) {
	r, err := f.WindowFrame(id)
	if err != nil {
		return 0, err
	}
	d, ok := platform.DisplayAt(f.displays, r.X+r.Width/2, r.Y+r.Height/2)
	if !ok {
		return f.displays[0].ID, nil
	}
	return d.ID, nil
}

func (f *fakeBackend) UsableArea(displayID int) (platform.Rect, error) {
	d, ok := platform.DisplayByID(f.displays, displayID)
	if !ok {
		return platform.Rect{}, fmt.Errorf("no display %d", displayID)
	}
	return d.Usable, nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, frame platform.Rect) error {
	f.moveCalls = append(f.moveCalls, frame)
	if f.migrateDX != 0 {
		frame.X += f.migrateDX
		f.migrateDX = 0
	}
	f.frames[id] = frame
	return nil
}

func (f *fakeBackend) SendToDisplay(id platform.WindowID, displayID int) error {
	f.sendCalls = append(f.sendCalls, displayID)
	if f.sendErr != nil {
		return f.sendErr
	}
	frame := f.frames[id]
	from, _ := f.WindowDisplay(id)
	fromArea, _ := f.UsableArea(from)
	toArea, err := f.UsableArea(displayID)
	if err != nil {
		return err
	}
	f.frames[id] = platform.Relocate(frame, fromArea, toArea)
	return nil
}

func TestMove_CentersOnCurrentDisplay(t *testing.T) {
	fb := newFakeBackend()
	m := New(fb, Options{CorrectMigration: true})

	res, err := m.Move(placement.Center)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}

	want := platform.Rect{X: 760, Y: 390, Width: 400, Height: 300}
	if got := fb.frames[0x400001]; got != want {
		t.Fatalf("frame = %+v, want %+v", got, want)
	}
	if res.Before != (platform.Rect{X: 100, Y: 100, Width: 400, Height: 300}) {
		t.Fatalf("Before = %+v", res.Before)
	}
	if res.After != want || res.Display != 0 || res.Corrected {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(fb.sendCalls) != 0 {
		t.Fatalf("expected no SendToDisplay, got %v", fb.sendCalls)
	}
}

func TestMove_UsesUsableAreaOfWindowDisplay(t *testing.T) {
	fb := newFakeBackend()
	fb.frames[0x400001] = platform.Rect{X: 2500, Y: 500, Width: 800, Height: 600}
	m := New(fb, Options{})

	if _, err := m.Move(placement.TopRight); err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := platform.Rect{X: 1920 + 1920 - 800, Y: 30, Width: 800, Height: 600}
	if got := fb.frames[0x400001]; got != want {
		t.Fatalf("frame = %+v, want %+v", got, want)
	}
}

func TestMove_CorrectsMonitorMigration(t *testing.T) {
	fb := newFakeBackend()
	fb.migrateDX = 1920 // first commit lands on the right-hand display
	m := New(fb, Options{CorrectMigration: true})

	res, err := m.Move(placement.BottomCenter)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !res.Corrected {
		t.Fatalf("expected Corrected result")
	}
	if len(fb.moveCalls) != 2 {
		t.Fatalf("expected 2 MoveResize calls (initial + re-apply), got %d", len(fb.moveCalls))
	}
	// Re-applied relative to display 1, which has a 30px top panel.
	if got := fb.moveCalls[1]; got != (platform.Rect{X: 1920 + 760, Y: 780, Width: 400, Height: 300}) {
		t.Fatalf("re-applied frame = %+v", got)
	}
	if len(fb.sendCalls) != 1 || fb.sendCalls[0] != 0 {
		t.Fatalf("expected one SendToDisplay(0), got %v", fb.sendCalls)
	}

	got := fb.frames[0x400001]
	if d, _ := fb.WindowDisplay(0x400001); d != 0 {
		t.Fatalf("window ended on display %d, want 0 (frame %+v)", d, got)
	}
	if got.Width != 400 || got.Height != 300 {
		t.Fatalf("size changed: %+v", got)
	}
	if res.After != got {
		t.Fatalf("After = %+v, want final frame %+v", res.After, got)
	}
}

func TestMove_MigrationLeftAloneWhenCorrectionDisabled(t *testing.T) {
	fb := newFakeBackend()
	fb.migrateDX = 1920
	m := New(fb, Options{CorrectMigration: false})

	res, err := m.Move(placement.TopLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.Corrected || len(fb.sendCalls) != 0 || len(fb.moveCalls) != 1 {
		t.Fatalf("expected no correction, got res=%+v sends=%v moves=%d", res, fb.sendCalls, len(fb.moveCalls))
	}
	if d, _ := fb.WindowDisplay(0x400001); d != 1 {
		t.Fatalf("expected window to stay on display 1, got %d", d)
	}
}

func TestMove_FailedCorrectionStaysUndoable(t *testing.T) {
	fb := newFakeBackend()
	fb.migrateDX = 1920
	fb.sendErr = errors.New("send failed")
	m := New(fb, Options{CorrectMigration: true})

	if _, err := m.Move(placement.BottomCenter); err == nil {
		t.Fatalf("expected error from failed SendToDisplay")
	}
	if moves, last := m.Stats(); moves != 1 || last != "bottom-center" {
		t.Fatalf("Stats = %d, %q; the window did move", moves, last)
	}

	restored, err := m.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	want := platform.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	if restored != want || fb.frames[0x400001] != want {
		t.Fatalf("restored = %+v, frame = %+v, want %+v", restored, fb.frames[0x400001], want)
	}
}

func TestMove_ActiveWindowError(t *testing.T) {
	fb := newFakeBackend()
	fb.activeErr = errors.New("no active window")
	m := New(fb, Options{})

	if _, err := m.Move(placement.Center); err == nil {
		t.Fatalf("expected error")
	}
	if moves, _ := m.Stats(); moves != 0 {
		t.Fatalf("failed move should not be counted, got %d", moves)
	}
}

func TestMove_InvalidPlacement(t *testing.T) {
	m := New(newFakeBackend(), Options{})
	_, err := m.Move(placement.Placement(99))
	if !errors.Is(err, placement.ErrUnknownPlacement) {
		t.Fatalf("err = %v, want ErrUnknownPlacement", err)
	}
}

func TestUndo_RestoresPreviousFrame(t *testing.T) {
	fb := newFakeBackend()
	m := New(fb, Options{})

	if _, err := m.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("Undo before move err = %v, want ErrNothingToUndo", err)
	}

	if _, err := m.Move(placement.BottomRight); err != nil {
		t.Fatalf("Move: %v", err)
	}
	restored, err := m.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	want := platform.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	if restored != want || fb.frames[0x400001] != want {
		t.Fatalf("restored = %+v, frame = %+v, want %+v", restored, fb.frames[0x400001], want)
	}
	if _, err := m.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("second Undo err = %v, want ErrNothingToUndo", err)
	}
}

func TestStats(t *testing.T) {
	m := New(newFakeBackend(), Options{})
	for _, p := range []placement.Placement{placement.Center, placement.CenterLeft} {
		if _, err := m.Move(p); err != nil {
			t.Fatalf("Move(%s): %v", p, err)
		}
	}
	moves, last := m.Stats()
	if moves != 2 || last != "center-left" {
		t.Fatalf("Stats = %d, %q", moves, last)
	}
}
