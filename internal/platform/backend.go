package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates (pixels).
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Backend abstracts the window-system operations needed to place windows.
type Backend interface {
	Displays() ([]Display, error)
	ActiveWindow() (WindowID, error)
	// WindowFrame returns the outer frame of a window, decorations included.
	WindowFrame(windowID WindowID) (Rect, error)
	// WindowDisplay returns the ID of the display containing the frame's center.
	WindowDisplay(windowID WindowID) (int, error)
	// UsableArea returns the display area minus panels and docks.
	UsableArea(displayID int) (Rect, error)
	// MoveResize commits a new outer frame for the window.
	MoveResize(windowID WindowID, frame Rect) error
	// SendToDisplay relocates a window to another display, keeping its offset
	// relative to the usable area.
	SendToDisplay(windowID WindowID, displayID int) error
}

// DisplayByID returns the display with the given ID.
func DisplayByID(displays []Display, id int) (Display, bool) {
	for _, d := range displays {
		if d.ID == id {
			return d, true
		}
	}
	return Display{}, false
}

// DisplayAt returns the display whose bounds contain (x, y).
func DisplayAt(displays []Display, x, y int) (Display, bool) {
	for _, d := range displays {
		if d.Bounds.Contains(x, y) {
			return d, true
		}
	}
	return Display{}, false
}

// Relocate translates frame from one usable area to another, keeping its
// offset from the area's top-left corner. Size is unchanged.
func Relocate(frame, from, to Rect) Rect {
	return Rect{
		X:      to.X + (frame.X - from.X),
		Y:      to.Y + (frame.Y - from.Y),
		Width:  frame.Width,
		Height: frame.Height,
	}
}
