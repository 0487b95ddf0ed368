package generate

import (
	"math"
	"math/rand"

	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
)

// Validator places point entities (enemies, items, patrol waypoints) so that
// they clear every obstacle by a margin. It always terminates: when the
// attempt budget runs out it returns a fallback point near the bounds center.
type Validator struct {
	Rand        *rand.Rand
	MaxAttempts int
	WallPadding float64 // bounds are shrunk by this much before sampling
	Jitter      float64 // max offset of the fallback from the bounds center
}

// Placement is the result of a placement request.
type Placement struct {
	Point    geom.Vec2
	Fallback bool // true when the attempt budget ran out
}

// Keepout is a circular zone a placed point must stay out of.
type Keepout struct {
	Center geom.Vec2
	Dist   float64
}

// Clear reports whether p clears every obstacle by clearance plus the
// obstacle's half-extent on at least one axis, i.e. p lies outside each
// obstacle rectangle grown by clearance.
func Clear(p geom.Vec2, clearance float64, obstacles []gamemap.Obstacle) bool {
	for _, o := range obstacles {
		if !clearOf(p, clearance, o) {
			return false
		}
	}
	return true
}

func clearOf(p geom.Vec2, clearance float64, o gamemap.Obstacle) bool {
	c := o.Center()
	// Bounding radius shortcut: beyond the circle circumscribing the grown
	// rectangle nothing can hit.
	far := (clearance + o.Radius) * math.Sqrt2
	if p.DistSq(c) > far*far {
		return true
	}
	hw, hh := o.HalfExtents()
	return math.Abs(p.X-c.X) >= clearance+hw || math.Abs(p.Y-c.Y) >= clearance+hh
}

// Place returns preferred when it is acceptable, otherwise a rejection-sampled
// point inside bounds, otherwise the fallback.
func (v *Validator) Place(preferred geom.Vec2, clearance float64, obstacles []gamemap.Obstacle, bounds geom.Rect) Placement {
	return v.PlaceAvoiding(preferred, clearance, obstacles, bounds, nil)
}

// PlaceApart is Place with an additional minimum spacing from others.
func (v *Validator) PlaceApart(preferred geom.Vec2, clearance float64, obstacles []gamemap.Obstacle, bounds geom.Rect, others []geom.Vec2, spacing float64) Placement {
	keep := make([]Keepout, len(others))
	for i, o := range others {
		keep[i] = Keepout{Center: o, Dist: spacing}
	}
	return v.PlaceAvoiding(preferred, clearance, obstacles, bounds, keep)
}

// PlaceAvoiding is Place with arbitrary keepout zones.
func (v *Validator) PlaceAvoiding(preferred geom.Vec2, clearance float64, obstacles []gamemap.Obstacle, bounds geom.Rect, keep []Keepout) Placement {
	area := bounds.Inset(v.WallPadding)
	if v.accept(preferred, clearance, obstacles, area, keep) {
		return Placement{Point: preferred}
	}
	for range v.attempts() {
		p := v.sample(area)
		if v.accept(p, clearance, obstacles, area, keep) {
			return Placement{Point: p}
		}
	}
	return Placement{Point: v.fallback(bounds), Fallback: true}
}

// Repair moves p only when it no longer clears the obstacles or has left the
// bounds. It returns the (possibly unchanged) point and whether it moved.
// Repairing an already valid point is a no-op.
func (v *Validator) Repair(p geom.Vec2, clearance float64, obstacles []gamemap.Obstacle, bounds geom.Rect) (Placement, bool) {
	if v.accept(p, clearance, obstacles, bounds.Inset(v.WallPadding), nil) {
		return Placement{Point: p}, false
	}
	return v.Place(p, clearance, obstacles, bounds), true
}

func (v *Validator) accept(p geom.Vec2, clearance float64, obstacles []gamemap.Obstacle, area geom.Rect, keep []Keepout) bool {
	if !p.Finite() || !area.Contains(p) {
		return false
	}
	for _, k := range keep {
		if p.DistSq(k.Center) < k.Dist*k.Dist {
			return false
		}
	}
	return Clear(p, clearance, obstacles)
}

func (v *Validator) attempts() int {
	if v.MaxAttempts <= 0 {
		return 30
	}
	return v.MaxAttempts
}

func (v *Validator) sample(area geom.Rect) geom.Vec2 {
	return geom.V(area.X+v.Rand.Float64()*area.W, area.Y+v.Rand.Float64()*area.H)
}

// fallback is the bounds center nudged by up to Jitter on each axis.
func (v *Validator) fallback(bounds geom.Rect) geom.Vec2 {
	c := bounds.Center()
	if v.Jitter <= 0 || v.Rand == nil {
		return c
	}
	return geom.V(
		c.X+(v.Rand.Float64()*2-1)*v.Jitter,
		c.Y+(v.Rand.Float64()*2-1)*v.Jitter,
	)
}
