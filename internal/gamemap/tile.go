package gamemap

import (
	"math"

	"roomcrawl/internal/geom"
)

// TileKind identifies what a raster cell shows.
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileObstacle
	TileDoorOpen
	TileDoorLocked
)

// Raster is a coarse cell grid of a room, used by terminal front ends that
// cannot draw rectangles directly.
type Raster struct {
	Cols, Rows int
	CellW      float64
	CellH      float64
	Tiles      [][]TileKind
}

// NewRaster samples the room at cols x rows cells. A cell takes the kind of
// whatever covers its center; doors win over walls, walls over obstacles.
func NewRaster(s *Shell, obstacles []Obstacle, locked map[Direction]bool, cols, rows int) *Raster {
	cols, rows = max(cols, 1), max(rows, 1)
	r := &Raster{
		Cols:  cols,
		Rows:  rows,
		CellW: s.Width / float64(cols),
		CellH: s.Height / float64(rows),
	}
	r.Tiles = make([][]TileKind, rows)
	for y := range r.Tiles {
		r.Tiles[y] = make([]TileKind, cols)
		for x := range r.Tiles[y] {
			c := r.CellRect(x, y)
			r.Tiles[y][x] = classify(c, s, obstacles, locked)
		}
	}
	return r
}

// InBounds reports whether (x, y) is a valid cell.
func (r *Raster) InBounds(x, y int) bool {
	return x >= 0 && x < r.Cols && y >= 0 && y < r.Rows
}

// At returns the kind of cell (x, y); out of range reads as wall.
func (r *Raster) At(x, y int) TileKind {
	if !r.InBounds(x, y) {
		return TileWall
	}
	return r.Tiles[y][x]
}

// CellRect returns the room rectangle covered by cell (x, y).
func (r *Raster) CellRect(x, y int) geom.Rect {
	return geom.R(float64(x)*r.CellW, float64(y)*r.CellH, r.CellW, r.CellH)
}

// CellOf maps a room point to its cell.
func (r *Raster) CellOf(p geom.Vec2) (int, int) {
	return int(math.Floor(p.X / r.CellW)), int(math.Floor(p.Y / r.CellH))
}

func classify(cell geom.Rect, s *Shell, obstacles []Obstacle, locked map[Direction]bool) TileKind {
	p := cell.Center()
	for d, door := range s.Doors {
		if door.Contains(p) {
			if locked[d] {
				return TileDoorLocked
			}
			return TileDoorOpen
		}
	}
	for _, w := range s.Walls {
		if w.Contains(p) {
			return TileWall
		}
	}
	for _, o := range obstacles {
		if o.Contains(p) || o.Intersects(cell.Inset(cell.W/4)) {
			return TileObstacle
		}
	}
	return TileFloor
}
