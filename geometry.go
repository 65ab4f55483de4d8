package tui

import "math"

// Rect is a rectangle in cell units. Layout uses float64 so that estimated
// offsets along the scrolling axis can carry fractional averages.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// invalidViewport marks a viewport that has not been reported yet. It is
// distinct from a legitimately empty rectangle.
var invalidViewport = Rect{
	X:      math.Inf(1),
	Y:      math.Inf(1),
	Width:  math.Inf(1),
	Height: math.Inf(1),
}

// Valid reports whether the rectangle is a real, known rectangle.
func (r Rect) Valid() bool {
	return !math.IsInf(r.X, 1) && !math.IsInf(r.Y, 1)
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the x coordinate just past the rectangle.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate just past the rectangle.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Translate returns the rectangle moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Direction specifies the layout direction.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// uv splits a width/height pair into the scrolling axis (u) and the cross
// axis (v).
func (d Direction) uv(width, height float64) (u, v float64) {
	if d == Horizontal {
		return width, height
	}
	return height, width
}

// wh is the inverse of uv.
func (d Direction) wh(u, v float64) (width, height float64) {
	if d == Horizontal {
		return u, v
	}
	return v, u
}

// span projects a rectangle onto the scrolling axis.
func (d Direction) span(r Rect) (start, end float64) {
	if d == Horizontal {
		return r.X, r.Right()
	}
	return r.Y, r.Bottom()
}

// rect builds a rectangle from scrolling axis and cross axis coordinates.
func (d Direction) rect(u, v, sizeU, sizeV float64) Rect {
	if d == Horizontal {
		return Rect{X: u, Y: v, Width: sizeU, Height: sizeV}
	}
	return Rect{X: v, Y: u, Width: sizeV, Height: sizeU}
}

// cells rounds a layout coordinate to a terminal cell.
func cells(f float64) int {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return int(math.Floor(f + 0.5))
}
