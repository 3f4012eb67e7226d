package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Rect is an axis-aligned rectangle in world units with a top-left origin and
// y growing downwards.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectFromCenter builds a rect of the given size centered on c.
func RectFromCenter(c cp.Vector, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.CenterX(), Y: r.CenterY()}
}

func (r *Rect) SetLeft(v float64)   { r.X = v }
func (r *Rect) SetRight(v float64)  { r.X = v - r.Width }
func (r *Rect) SetTop(v float64)    { r.Y = v }
func (r *Rect) SetBottom(v float64) { r.Y = v - r.Height }

func (r *Rect) SetCenter(c cp.Vector) {
	r.X = c.X - r.Width/2
	r.Y = c.Y - r.Height/2
}

// Move translates the rect in place.
func (r *Rect) Move(d cp.Vector) {
	r.X += d.X
	r.Y += d.Y
}

// Inflate returns a copy grown by dw, dh around the same center. Negative
// values shrink it.
func (r Rect) Inflate(dw, dh float64) Rect {
	return Rect{
		X:      r.X - dw/2,
		Y:      r.Y - dh/2,
		Width:  r.Width + dw,
		Height: r.Height + dh,
	}
}

// Intersects reports a strict overlap; rects that only share an edge do not
// intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Union is the smallest rect containing both.
func (r Rect) Union(other Rect) Rect {
	left := math.Min(r.Left(), other.Left())
	top := math.Min(r.Top(), other.Top())
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
