package daemon

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/1broseidon/winplace/internal/platform"
)

type fakeLister struct {
	displays []platform.Display
	err      error
}

func (f *fakeLister) Displays() ([]platform.Display, error) {
	return f.displays, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func display(id int, x, width int) platform.Display {
	r := platform.Rect{X: x, Y: 0, Width: width, Height: 1080}
	return platform.Display{ID: id, Name: "DP", Bounds: r, Usable: r}
}

func TestDisplayWatcher_ReportsChangesAfterFirstPoll(t *testing.T) {
	lister := &fakeLister{displays: []platform.Display{display(0, 0, 1920)}}
	var got [][]platform.Display
	w := NewDisplayWatcher(WatcherConfig{
		Logger:   quietLogger(),
		OnChange: func(d []platform.Display) { got = append(got, d) },
	}, lister)

	if w.CheckNow() {
		t.Fatalf("first poll should not count as a change")
	}
	if w.CheckNow() {
		t.Fatalf("unchanged layout reported as change")
	}

	lister.displays = []platform.Display{display(0, 0, 1920), display(1, 1920, 1920)}
	if !w.CheckNow() {
		t.Fatalf("expected change after adding a display")
	}
	if len(got) != 1 || len(got[0]) != 2 {
		t.Fatalf("OnChange calls = %v", got)
	}
}

func TestDisplayWatcher_ListErrorIsNotAChange(t *testing.T) {
	lister := &fakeLister{displays: []platform.Display{display(0, 0, 1920)}}
	w := NewDisplayWatcher(WatcherConfig{Logger: quietLogger()}, lister)
	w.CheckNow()

	lister.err = errors.New("connection closed")
	if w.CheckNow() {
		t.Fatalf("error poll should not report a change")
	}

	lister.err = nil
	if w.CheckNow() {
		t.Fatalf("layout is unchanged after recovering from the error")
	}
}

func TestLayoutSignature_IgnoresOrder(t *testing.T) {
	a := layoutSignature([]platform.Display{display(0, 0, 1920), display(1, 1920, 2560)})
	b := layoutSignature([]platform.Display{display(1, 1920, 2560), display(0, 0, 1920)})
	if a != b {
		t.Fatalf("signatures differ: %q vs %q", a, b)
	}

	usable := display(0, 0, 1920)
	usable.Usable.Y = 30
	if layoutSignature([]platform.Display{usable}) == layoutSignature([]platform.Display{display(0, 0, 1920)}) {
		t.Fatalf("usable area change should alter signature")
	}
}
