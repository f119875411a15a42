package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
		{ID: 1, X: 1920, Y: 0, Width: 1920, Height: 1080},
	}
	if m, ok := MonitorAt(monitors, 1920, 10); !ok || m.ID != 1 {
		t.Fatalf("MonitorAt(1920,10) = %+v, %v", m, ok)
	}
	if _, ok := MonitorAt(monitors, 10, 2000); ok {
		t.Fatalf("expected no monitor below the screens")
	}
}

func TestUpdateStrutsForMonitor_BottomPanelOnlyOnFirstMonitor(t *testing.T) {
	left := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Monitor{X: 1920, Y: 0, Width: 1920, Height: 1080}

	// 40px bottom panel spanning only the left monitor.
	sp := &ewmh.WmStrutPartial{Bottom: 40, BottomStartX: 0, BottomEndX: 1919}

	var accLeft, accRight dockStruts
	updateStrutsForMonitor(left, 3840, 1080, sp, &accLeft)
	updateStrutsForMonitor(right, 3840, 1080, sp, &accRight)

	if accLeft.bottom != 40 {
		t.Fatalf("left bottom strut = %d, want 40", accLeft.bottom)
	}
	if accRight != (dockStruts{}) {
		t.Fatalf("right monitor should be unaffected, got %+v", accRight)
	}
}

func TestUpdateStrutsForMonitor_FullSpanTopStrut(t *testing.T) {
	mon := Monitor{X: 1920, Y: 0, Width: 1920, Height: 1080}
	sp := fullSpanStrut(&ewmh.WmStrut{Top: 28}, 3840, 1080)

	var acc dockStruts
	updateStrutsForMonitor(mon, 3840, 1080, sp, &acc)
	if acc.top != 28 {
		t.Fatalf("top strut = %d, want 28", acc.top)
	}
}

func TestIntersectionSize(t *testing.T) {
	got := intersectionSize(0, 0, 100, 100, 50, 50, 200, 200)
	if got.w != 50 || got.h != 50 {
		t.Fatalf("intersection = %+v, want 50x50", got)
	}
	if got := intersectionSize(0, 0, 10, 10, 10, 0, 20, 10); got != (intersection{}) {
		t.Fatalf("touching rects should not intersect, got %+v", got)
	}
}
