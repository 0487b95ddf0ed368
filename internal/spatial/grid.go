// Package spatial is the broad phase: a uniform grid of buckets rebuilt from
// scratch every tick.
package spatial

import (
	"math"

	"roomcrawl/internal/ecs"
	"roomcrawl/internal/geom"
)

// DefaultCellSize is the bucket edge length in room pixels.
const DefaultCellSize = 64.0

// Kind tags what a Ref points at.
type Kind uint8

const (
	KindEnemy Kind = iota
	KindEnemyShot
	KindPlayerShot
)

// Ref is a reference to an entity held in one of the room's stores.
type Ref struct {
	Kind Kind
	ID   ecs.EntityID
}

type cellKey struct{ x, y int }

// Grid buckets entity references by cell. It holds no positions; callers
// look entities up in their stores.
type Grid struct {
	cell    float64
	buckets map[cellKey][]Ref
	count   int
}

// NewGrid creates a grid with the given cell size; non-positive sizes fall
// back to DefaultCellSize.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 || math.IsNaN(cellSize) {
		cellSize = DefaultCellSize
	}
	return &Grid{cell: cellSize, buckets: make(map[cellKey][]Ref)}
}

// CellSize returns the bucket edge length.
func (g *Grid) CellSize() float64 { return g.cell }

// Len returns the number of references inserted since the last Clear.
func (g *Grid) Len() int { return g.count }

// Clear empties every bucket, keeping the allocated slices for reuse.
func (g *Grid) Clear() {
	for k, b := range g.buckets {
		g.buckets[k] = b[:0]
	}
	g.count = 0
}

// CellOf returns the cell coordinates of p.
func (g *Grid) CellOf(p geom.Vec2) (int, int) {
	return int(math.Floor(p.X / g.cell)), int(math.Floor(p.Y / g.cell))
}

// Insert files ref under the cell containing p. Non-finite positions are
// ignored.
func (g *Grid) Insert(p geom.Vec2, ref Ref) {
	if !p.Finite() {
		return
	}
	x, y := g.CellOf(p)
	k := cellKey{x, y}
	g.buckets[k] = append(g.buckets[k], ref)
	g.count++
}

// Near calls fn for every reference in the cell of p and its 8 neighbors
// until fn returns false.
func (g *Grid) Near(p geom.Vec2, fn func(Ref) bool) {
	if !p.Finite() {
		return
	}
	cx, cy := g.CellOf(p)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for _, r := range g.buckets[cellKey{cx + dx, cy + dy}] {
				if !fn(r) {
					return
				}
			}
		}
	}
}

// NearKind is Near filtered to one kind.
func (g *Grid) NearKind(p geom.Vec2, kind Kind, fn func(ecs.EntityID) bool) {
	g.Near(p, func(r Ref) bool {
		if r.Kind != kind {
			return true
		}
		return fn(r.ID)
	})
}
