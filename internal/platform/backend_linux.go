//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/1broseidon/winplace/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection. An empty display
// uses $DISPLAY.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnectionDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Displays returns all active displays with their usable areas.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:     m.ID,
			Name:   m.Name,
			Bounds: rectFromMonitor(m),
			Usable: rectFromMonitor(conn.UsableArea(m)),
		})
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// ActiveWindow returns the currently focused application window.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	if !conn.IsNormalWindow(wid) {
		return 0, fmt.Errorf("active window 0x%x is not an application window", wid)
	}
	return WindowID(wid), nil
}

// WindowFrame returns the outer frame of a window.
func (b *LinuxBackend) WindowFrame(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}

	geom, err := conn.FrameGeometry(xproto.Window(windowID))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: geom.X, Y: geom.Y, Width: geom.Width, Height: geom.Height}, nil
}

// WindowDisplay returns the display holding the window's frame center. A
// window whose center is off every monitor is assigned the first one.
func (b *LinuxBackend) WindowDisplay(windowID WindowID) (int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	frame, err := b.WindowFrame(windowID)
	if err != nil {
		return 0, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return 0, err
	}
	if len(monitors) == 0 {
		return 0, fmt.Errorf("no monitors found")
	}

	if mon, ok := x11.MonitorAt(monitors, frame.X+frame.Width/2, frame.Y+frame.Height/2); ok {
		return mon.ID, nil
	}
	return monitors[0].ID, nil
}

// UsableArea returns the usable area of a display.
func (b *LinuxBackend) UsableArea(displayID int) (Rect, error) {
	d, err := b.display(displayID)
	if err != nil {
		return Rect{}, err
	}
	return d.Usable, nil
}

// MoveResize moves and resizes a window's outer frame.
func (b *LinuxBackend) MoveResize(windowID WindowID, frame Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return conn.MoveResizeFrame(
		xproto.Window(windowID),
		frame.X,
		frame.Y,
		frame.Width,
		frame.Height,
	)
}

// SendToDisplay moves a window onto another display at the same offset
// relative to the usable area it currently occupies.
func (b *LinuxBackend) SendToDisplay(windowID WindowID, displayID int) error {
	displays, err := b.Displays()
	if err != nil {
		return err
	}
	target, ok := DisplayByID(displays, displayID)
	if !ok {
		return fmt.Errorf("display with id %d not found", displayID)
	}

	frame, err := b.WindowFrame(windowID)
	if err != nil {
		return err
	}

	current, ok := DisplayAt(displays, frame.X+frame.Width/2, frame.Y+frame.Height/2)
	if !ok {
		current = displays[0]
	}
	if current.ID == target.ID {
		return nil
	}

	return b.MoveResize(windowID, Relocate(frame, current.Usable, target.Usable))
}

func (b *LinuxBackend) display(displayID int) (Display, error) {
	displays, err := b.Displays()
	if err != nil {
		return Display{}, err
	}
	d, ok := DisplayByID(displays, displayID)
	if !ok {
		return Display{}, fmt.Errorf("display with id %d not found", displayID)
	}
	return d, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func rectFromMonitor(m x11.Monitor) Rect {
	return Rect{
		X:      m.X,
		Y:      m.Y,
		Width:  m.Width,
		Height: m.Height,
	}
}
