package gamemap

import "roomcrawl/internal/geom"

// Obstacle is a solid rectangle inside a room. Radius is the bounding
// radius max(w,h)/2 used as a broad-phase shortcut.
type Obstacle struct {
	geom.Rect `yaml:",inline"`
	Radius    float64 `yaml:"radius"`
}

// NewObstacle builds an obstacle and derives its bounding radius.
func NewObstacle(r geom.Rect) Obstacle {
	return Obstacle{Rect: r, Radius: max(r.W, r.H) / 2}
}
