// Package geom holds the 2D primitives shared by generation and simulation:
// vectors, axis-aligned rectangles, circles, overlap tests and the
// minimum-translation push-out used by every collision response.
package geom

import "math"

// Vec2 is a point or displacement in room pixels.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }
func (v Vec2) DistSq(o Vec2) float64 { return (v.X-o.X)*(v.X-o.X) + (v.Y-o.Y)*(v.Y-o.Y) }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Normalize returns the unit vector of v, or the zero vector when v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Finite reports whether both components are finite numbers.
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H/2} }

// HalfExtents returns half the width and half the height.
func (r Rect) HalfExtents() (float64, float64) { return r.W / 2, r.H / 2 }

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Intersects reports whether r and o overlap with positive area.
func (r Rect) Intersects(o Rect) bool { return RectRect(r, o) }

// Inset shrinks the rectangle by pad on every side. The result never has a
// negative size; an over-inset rectangle collapses onto its center.
func (r Rect) Inset(pad float64) Rect {
	out := Rect{r.X + pad, r.Y + pad, r.W - 2*pad, r.H - 2*pad}
	if out.W < 0 {
		out.X, out.W = r.X+r.W/2, 0
	}
	if out.H < 0 {
		out.Y, out.H = r.Y+r.H/2, 0
	}
	return out
}

// Expand grows the rectangle by pad on every side.
func (r Rect) Expand(pad float64) Rect {
	return Rect{r.X - pad, r.Y - pad, r.W + 2*pad, r.H + 2*pad}
}

// Clamp returns p moved inside r.
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{Clamp(p.X, r.X, r.MaxX()), Clamp(p.Y, r.Y, r.MaxY())}
}

// Circle is a disc used for every movable entity.
type Circle struct {
	C Vec2
	R float64
}

// Bounds returns the circle's bounding box.
func (c Circle) Bounds() Rect {
	return Rect{c.C.X - c.R, c.C.Y - c.R, 2 * c.R, 2 * c.R}
}

// Clamp limits value to the range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
