package component

import (
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
)

// Door is one exit of a room. Only Locked changes after construction.
type Door struct {
	Rect   geom.Rect
	Dir    gamemap.Direction
	Locked bool
	// Target is the neighbor room id when the dungeon graph has an edge on
	// this side; HasTarget is false for dead ends and ad-hoc rooms.
	Target    int
	HasTarget bool
}
