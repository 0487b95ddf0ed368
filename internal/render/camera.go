package render

import (
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
)

// Camera translates between room coordinates and screen cells. Each raster
// cell is 2 terminal columns wide because emoji occupy 2 columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera for a view of the given size.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// GridSize returns the raster size that fits the view, capped at the
// preferred size.
func (c *Camera) GridSize(prefCols, prefRows int) (int, int) {
	return max(min(prefCols, c.ViewWidth/2), 1), max(min(prefRows, c.ViewHeight), 1)
}

// Fit centers a raster of cols x rows cells in the view.
func (c *Camera) Fit(cols, rows int) {
	c.OffsetX = max((c.ViewWidth-cols*2)/2, 0)
	c.OffsetY = max((c.ViewHeight-rows)/2, 0)
}

// CellToScreen converts raster cell (x, y) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) CellToScreen(x, y int) (sx, sy int, visible bool) {
	sx = c.OffsetX + x*2
	sy = c.OffsetY + y
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// WorldToScreen converts a room point to screen coordinates through the
// raster.
func (c *Camera) WorldToScreen(r *gamemap.Raster, p geom.Vec2) (sx, sy int, visible bool) {
	if !p.Finite() {
		return 0, 0, false
	}
	x, y := r.CellOf(p)
	if !r.InBounds(x, y) {
		return 0, 0, false
	}
	return c.CellToScreen(x, y)
}
