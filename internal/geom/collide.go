package geom

// separationSlop is added to every push-out so that floating point rounding
// cannot leave a resolved circle touching the rectangle it was pushed from.
const separationSlop = 1e-6

// Axis names the axis a push-out was applied on.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// CircleRect reports whether a circle intersects an axis-aligned rectangle
// (closest point clamp plus distance check). Touching counts as separated.
func CircleRect(c Circle, r Rect) bool {
	closestX := Clamp(c.C.X, r.X, r.MaxX())
	closestY := Clamp(c.C.Y, r.Y, r.MaxY())
	dx := c.C.X - closestX
	dy := c.C.Y - closestY
	return dx*dx+dy*dy < c.R*c.R
}

// RectRect reports whether two rectangles overlap with positive area.
func RectRect(a, b Rect) bool {
	return a.X < b.MaxX() && a.MaxX() > b.X &&
		a.Y < b.MaxY() && a.MaxY() > b.Y
}

// CirclesOverlap reports whether two circles intersect.
func CirclesOverlap(a, b Circle) bool {
	rr := a.R + b.R
	return a.C.DistSq(b.C) < rr*rr
}

// Push is the outcome of a minimum-translation resolution.
type Push struct {
	Delta Vec2 // displacement to apply to the circle
	Axis  Axis // axis the displacement runs along
	Sign  float64
}

// Penetration computes the minimum-translation push that separates circle c
// from rectangle r. It only reports a push when CircleRect confirms an
// overlap. The overlap of the circle's bounding box with the rectangle is
// measured on each axis and the circle is pushed along the axis with the
// smaller overlap, away from the rectangle center. A center exactly on the
// rectangle's center line is pushed toward the positive axis.
func Penetration(c Circle, r Rect) (Push, bool) {
	if !CircleRect(c, r) {
		return Push{}, false
	}
	center := r.Center()

	var overlapX, signX float64
	if c.C.X < center.X {
		overlapX = c.C.X + c.R - r.X
		signX = -1
	} else {
		overlapX = r.MaxX() - (c.C.X - c.R)
		signX = 1
	}
	var overlapY, signY float64
	if c.C.Y < center.Y {
		overlapY = c.C.Y + c.R - r.Y
		signY = -1
	} else {
		overlapY = r.MaxY() - (c.C.Y - c.R)
		signY = 1
	}

	if overlapX <= overlapY {
		d := overlapX + separationSlop
		return Push{Delta: Vec2{X: signX * d}, Axis: AxisX, Sign: signX}, true
	}
	d := overlapY + separationSlop
	return Push{Delta: Vec2{Y: signY * d}, Axis: AxisY, Sign: signY}, true
}

// Response selects what happens to the velocity component on the push axis.
type Response uint8

const (
	// ResponseStop zeroes the component (player against walls).
	ResponseStop Response = iota
	// ResponseBounce reflects the component (enemies against walls).
	ResponseBounce
)

// Resolve pushes pos out of r when the circle of the given radius overlaps it
// and adjusts vel according to resp. It returns true when a push happened.
// A second call without intervening movement is always a no-op.
func Resolve(pos, vel *Vec2, radius float64, r Rect, resp Response) bool {
	push, ok := Penetration(Circle{C: *pos, R: radius}, r)
	if !ok {
		return false
	}
	*pos = pos.Add(push.Delta)
	if vel == nil {
		return true
	}
	switch push.Axis {
	case AxisX:
		// Only touch the component that drives the entity into the rectangle.
		if vel.X*push.Sign < 0 {
			if resp == ResponseBounce {
				vel.X = -vel.X
			} else {
				vel.X = 0
			}
		}
	case AxisY:
		if vel.Y*push.Sign < 0 {
			if resp == ResponseBounce {
				vel.Y = -vel.Y
			} else {
				vel.Y = 0
			}
		}
	}
	return true
}
