package placement

import (
	"fmt"
	"math"
)

// Rect is a snapshot of a rectangular region in screen coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Point is a window origin.
type Point struct {
	X float64
	Y float64
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.Width }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Resolve computes the origin that aligns window to p inside area.
// Only the window's size is used. Results are not clamped to the area, so a
// window larger than the area gets a negative offset.
func Resolve(p Placement, window, area Rect) Point {
	var x, y float64

	switch p {
	case Center:
		x = area.CenterX() - window.Width/2
		y = area.CenterY() - window.Height/2
	case TopLeft:
		x = area.Left()
		y = area.Top()
	case TopCenter:
		x = area.CenterX() - window.Width/2
		y = area.Top()
	case TopRight:
		x = area.Right() - window.Width
		y = area.Top()
	case CenterRight:
		x = area.Right() - window.Width
		y = area.CenterY() - window.Height/2
	case BottomRight:
		x = area.Right() - window.Width
		y = area.Bottom() - window.Height
	case BottomCenter:
		x = area.CenterX() - window.Width/2
		y = area.Bottom() - window.Height
	case BottomLeft:
		x = area.Left()
		y = area.Bottom() - window.Height
	case CenterLeft:
		x = area.Left()
		y = area.CenterY() - window.Height/2
	default:
		panic(fmt.Sprintf("placement: resolve called with invalid placement %d", int(p)))
	}

	return Point{X: x, Y: y}
}

// Frame returns the pixel-addressed frame geometry for window at p: the
// resolved origin rounded to the nearest integer, size unchanged.
func Frame(p Placement, window, area Rect) Rect {
	origin := Resolve(p, window, area)
	return Rect{
		X:      roundHalfUp(origin.X),
		Y:      roundHalfUp(origin.Y),
		Width:  window.Width,
		Height: window.Height,
	}
}

// roundHalfUp rounds .5 toward positive infinity (math.Round rounds away from zero).
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
