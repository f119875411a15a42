package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Geometry is a window rectangle in root coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// GetActiveWindow returns the window named by _NET_ACTIVE_WINDOW.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	win, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to read _NET_ACTIVE_WINDOW: %w", err)
	}
	if win == 0 {
		return 0, fmt.Errorf("no active window")
	}
	return win, nil
}

// ClientGeometry returns the client area of a window (no decorations) in
// root coordinates.
func (c *Connection) ClientGeometry(windowID xproto.Window) (Geometry, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to get geometry of window 0x%x: %w", windowID, err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("failed to translate coordinates of window 0x%x: %w", windowID, err)
	}

	return Geometry{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// FrameGeometry returns the outer frame of a window, decorations included.
// Reparenting window managers are handled by walking to the frame window;
// otherwise the client area is grown by _NET_FRAME_EXTENTS.
func (c *Connection) FrameGeometry(windowID xproto.Window) (Geometry, error) {
	if decor, err := xwindow.New(c.XUtil, windowID).DecorGeometry(); err == nil {
		return Geometry{
			X:      decor.X(),
			Y:      decor.Y(),
			Width:  decor.Width(),
			Height: decor.Height(),
		}, nil
	}

	client, err := c.ClientGeometry(windowID)
	if err != nil {
		return Geometry{}, err
	}
	left, right, top, bottom, _ := c.GetFrameExtents(windowID)
	return Geometry{
		X:      client.X - left,
		Y:      client.Y - top,
		Width:  client.Width + left + right,
		Height: client.Height + top + bottom,
	}, nil
}

// MoveResizeFrame moves a window so its outer frame matches the given
// geometry. The window is unmaximized first, since window managers ignore
// move requests for maximized windows.
func (c *Connection) MoveResizeFrame(windowID xproto.Window, x, y, width, height int) error {
	// Some windows don't support state changes; the move still applies.
	_ = c.unmaximizeWindow(windowID)

	win := xwindow.New(c.XUtil, windowID)

	// WMMoveResize sends _NET_MOVERESIZE_WINDOW and accounts for decorations.
	if err := win.WMMoveResize(x, y, width, height); err != nil {
		// Fallback to direct window manipulation on the client area.
		left, right, top, bottom, _ := c.GetFrameExtents(windowID)
		win.MoveResize(x+left, y+top, width-left-right, height-top-bottom)
	}

	// Flush the request to the server. The window manager applies
	// _NET_MOVERESIZE_WINDOW on its own schedule, so a geometry read right
	// after this may still see the old position.
	c.XUtil.Sync()
	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetFrameExtents returns the window decoration sizes (if available)
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int, err error) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		// No frame extents available, return zeros
		return 0, 0, 0, 0, nil
	}

	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom), nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_UTILITY":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP", "_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH", "_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}
