package sketchpad

import "github.com/chewxy/math32"

// Shape is a drawable primitive in drawing space.
//
// The set of shapes is closed: Rectangle, Circle and BackgroundGrid are the
// only implementations, and consumers switch over them exhaustively.
type Shape interface {
	isShape()
}

// Rectangle is an axis-aligned rectangle given by two opposite corners.
//
// The corners are stored as given; a rectangle drawn right-to-left or
// top-to-bottom has X0 > X1 or Y0 > Y1 until Normalized is applied.
type Rectangle struct {
	X0, Y0, X1, Y1 float32
	Fill           RGBA
	Border         RGBA
}

// Circle is a filled disc with a thin ring in the border color.
type Circle struct {
	X, Y, Radius float32
	Fill         RGBA
	Border       RGBA
}

// BackgroundGrid covers the whole surface with pixel-spaced grid lines.
type BackgroundGrid struct {
	Color RGBA
}

func (Rectangle) isShape()      {}
func (Circle) isShape()         {}
func (BackgroundGrid) isShape() {}

// RectFromPoints builds a rectangle spanning two drag points.
func RectFromPoints(a, b Point, fill, border RGBA) Rectangle {
	return Rectangle{X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y, Fill: fill, Border: border}
}

// Normalized returns a copy with X0 <= X1 and Y0 <= Y1.
func (r Rectangle) Normalized() Rectangle {
	r.X0, r.X1 = math32.Min(r.X0, r.X1), math32.Max(r.X0, r.X1)
	r.Y0, r.Y1 = math32.Min(r.Y0, r.Y1), math32.Max(r.Y0, r.Y1)
	return r
}

// Width returns the absolute horizontal extent.
func (r Rectangle) Width() float32 {
	return math32.Abs(r.X1 - r.X0)
}

// Height returns the absolute vertical extent.
func (r Rectangle) Height() float32 {
	return math32.Abs(r.Y1 - r.Y0)
}

// Empty reports whether the rectangle has zero area.
func (r Rectangle) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Bounds returns the circle's bounding square as a rectangle.
func (c Circle) Bounds() Rectangle {
	return Rectangle{
		X0: c.X - c.Radius, Y0: c.Y - c.Radius,
		X1: c.X + c.Radius, Y1: c.Y + c.Radius,
		Fill: c.Fill, Border: c.Border,
	}
}
