package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xinerama"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// GetMonitors retrieves all active monitors using XRandR, falling back to
// Xinerama heads when RandR is unavailable or reports nothing.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	monitors, randrErr := c.randrMonitors()
	if randrErr == nil && len(monitors) > 0 {
		return monitors, nil
	}

	heads, err := xinerama.PhysicalHeads(c.XUtil)
	if err != nil || len(heads) == 0 {
		if randrErr != nil {
			return nil, randrErr
		}
		return nil, fmt.Errorf("no monitors found")
	}

	monitors = make([]Monitor, 0, len(heads))
	for i, head := range heads {
		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   fmt.Sprintf("Head%d", i),
			X:      head.X(),
			Y:      head.Y(),
			Width:  head.Width(),
			Height: head.Height(),
		})
	}
	return monitors, nil
}

func (c *Connection) randrMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// MonitorAt returns the monitor containing (x, y).
func MonitorAt(monitors []Monitor, x, y int) (Monitor, bool) {
	for _, mon := range monitors {
		if mon.contains(x, y) {
			return mon, true
		}
	}
	return Monitor{}, false
}

// UsableArea returns the monitor geometry minus panels and docks. Dock
// struts are preferred; when no dock reserves space on this monitor the
// intersection with _NET_WORKAREA is used instead.
func (c *Connection) UsableArea(mon Monitor) Monitor {
	usable := mon
	if applyDockStruts(c, &usable) {
		return usable
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return usable
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]

	isect := intersectionSize(
		usable.X, usable.Y, usable.X+usable.Width, usable.Y+usable.Height,
		int(wa.X), int(wa.Y), int(wa.X)+int(wa.Width), int(wa.Y)+int(wa.Height),
	)
	if isect.w > 0 && isect.h > 0 {
		usable.X = max(usable.X, int(wa.X))
		usable.Y = max(usable.Y, int(wa.Y))
		usable.Width = isect.w
		usable.Height = isect.h
	}
	return usable
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

func applyDockStruts(c *Connection, monitor *Monitor) bool {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return false
	}
	rootWidth := int(rootGeom.Width)
	rootHeight := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return false
	}

	var struts dockStruts
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}

		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			updateStrutsForMonitor(*monitor, rootWidth, rootHeight, sp, &struts)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			updateStrutsForMonitor(*monitor, rootWidth, rootHeight, fullSpanStrut(s, rootWidth, rootHeight), &struts)
		}
	}

	if struts == (dockStruts{}) {
		return false
	}

	monitor.X += struts.left
	monitor.Y += struts.top
	monitor.Width = max(monitor.Width-(struts.left+struts.right), 1)
	monitor.Height = max(monitor.Height-(struts.top+struts.bottom), 1)

	return true
}

func fullSpanStrut(s *ewmh.WmStrut, rootWidth, rootHeight int) *ewmh.WmStrutPartial {
	return &ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftStartY:   0,
		LeftEndY:     uint(rootHeight - 1),
		RightStartY:  0,
		RightEndY:    uint(rootHeight - 1),
		TopStartX:    0,
		TopEndX:      uint(rootWidth - 1),
		BottomStartX: 0,
		BottomEndX:   uint(rootWidth - 1),
	}
}

// updateStrutsForMonitor accumulates the part of each strut that overlaps the
// monitor. Struts are anchored to the root window edges.
func updateStrutsForMonitor(monitor Monitor, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	monX1 := monitor.X
	monY1 := monitor.Y
	monX2 := monitor.X + monitor.Width
	monY2 := monitor.Y + monitor.Height

	if sp.Top > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2,
			int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top))
		if isect.w > 0 && isect.h > 0 {
			acc.top = max(acc.top, isect.h)
		}
	}

	if sp.Bottom > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2,
			int(sp.BottomStartX), rootHeight-int(sp.Bottom), int(sp.BottomEndX)+1, rootHeight)
		if isect.w > 0 && isect.h > 0 {
			acc.bottom = max(acc.bottom, isect.h)
		}
	}

	if sp.Left > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2,
			0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1)
		if isect.w > 0 && isect.h > 0 {
			acc.left = max(acc.left, isect.w)
		}
	}

	if sp.Right > 0 {
		isect := intersectionSize(monX1, monY1, monX2, monY2,
			rootWidth-int(sp.Right), int(sp.RightStartY), rootWidth, int(sp.RightEndY)+1)
		if isect.w > 0 && isect.h > 0 {
			acc.right = max(acc.right, isect.w)
		}
	}
}

type intersection struct {
	w int
	h int
}

func intersectionSize(ax1, ay1, ax2, ay2, bx1, by1, bx2, by2 int) intersection {
	x1 := max(ax1, bx1)
	y1 := max(ay1, by1)
	x2 := min(ax2, bx2)
	y2 := min(ay2, by2)

	if x2 <= x1 || y2 <= y1 {
		return intersection{}
	}
	return intersection{w: x2 - x1, h: y2 - y1}
}
