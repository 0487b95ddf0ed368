package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"roomcrawl/assets"
	"roomcrawl/internal/component"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/room"
)

// hudRows is the height reserved for the HUD at the bottom of the screen.
const hudRows = 5

// Preferred raster size of a room; shrunk to fit small terminals.
const (
	prefCols = 40
	prefRows = 20
)

// Frame is everything drawn for one tick.
type Frame struct {
	Room    *room.Runtime
	Player  *component.Player
	Shots   *ecs.Store[component.Projectile] // player shots
	Floor   int
	Flashes []Flash
}

type rasterKey struct {
	room       *room.Runtime
	locked     [4]bool
	cols, rows int
}

// Renderer draws the active room onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	raster *gamemap.Raster
	key    rasterKey
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize adapts the view to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera = NewCamera(w, max(h-hudRows, 1))
	r.key = rasterKey{}
}

// Raster returns the raster of the last drawn room.
func (r *Renderer) Raster() *gamemap.Raster { return r.raster }

// DrawFrame renders the room, its entities and the flash markers. The HUD
// is drawn separately by DrawHUD.
func (r *Renderer) DrawFrame(f Frame) {
	r.screen.Clear()
	r.ensureRaster(f.Room)
	r.drawRoom(Theme(f.Floor))
	r.drawEntities(f)
	for _, fl := range f.Flashes {
		r.putWorld(fl.Pos, fl.Glyph, styleFlash)
	}
}

func (r *Renderer) ensureRaster(rt *room.Runtime) {
	cols, rows := r.camera.GridSize(prefCols, prefRows)
	key := rasterKey{room: rt, cols: cols, rows: rows}
	locked := make(map[gamemap.Direction]bool, len(rt.Doors))
	for _, d := range rt.Doors {
		if d.Locked {
			locked[d.Dir] = true
			key.locked[d.Dir] = true
		}
	}
	if r.raster != nil && key == r.key {
		return
	}
	r.key = key
	r.raster = gamemap.NewRaster(rt.Shell, rt.Obstacles(), locked, cols, rows)
	r.camera.Fit(cols, rows)
}

// drawRoom renders the wall frame, doors and obstacles.
func (r *Renderer) drawRoom(theme FloorTiles) {
	for y := 0; y < r.raster.Rows; y++ {
		for x := 0; x < r.raster.Cols; x++ {
			var glyph string
			switch r.raster.At(x, y) {
			case gamemap.TileWall:
				glyph = theme.Wall
			case gamemap.TileObstacle:
				glyph = theme.Obstacle
			case gamemap.TileDoorOpen:
				glyph = assets.GlyphDoorOpen
			case gamemap.TileDoorLocked:
				glyph = assets.GlyphDoorLocked
			default:
				glyph = theme.Floor
			}
			if glyph == "" {
				continue
			}
			if sx, sy, ok := r.camera.CellToScreen(x, y); ok {
				r.putGlyph(sx, sy, glyph, styleBase)
			}
		}
	}
}

// drawEntities renders items, corpses, enemies, shots and the player, in
// that order so later layers win.
func (r *Renderer) drawEntities(f Frame) {
	rt := f.Room
	rt.Items.Each(func(_ ecs.EntityID, it *component.Item) bool {
		if !it.Collected {
			r.putWorld(it.Pos, assets.ItemGlyph(it.Effect), styleBase)
		}
		return true
	})
	rt.Enemies.Each(func(_ ecs.EntityID, e *component.Enemy) bool {
		glyph := assets.Stats(e.Kind).Glyph
		if !e.Alive() {
			glyph = assets.GlyphCorpse
		}
		r.putWorld(e.Pos, glyph, styleBase)
		return true
	})
	drawShots := func(store *ecs.Store[component.Projectile], glyph string, style tcell.Style) {
		if store == nil {
			return
		}
		store.Each(func(_ ecs.EntityID, s *component.Projectile) bool {
			if s.Active {
				r.putWorld(s.Pos, glyph, style)
			}
			return true
		})
	}
	drawShots(rt.Shots, assets.GlyphShotEnemy, styleEShot)
	drawShots(f.Shots, assets.GlyphShotPlayer, styleShot)

	if p := f.Player; p != nil && !p.Dead() {
		r.putWorld(p.Pos, assets.GlyphPlayer, styleBase)
	}
}

func (r *Renderer) putWorld(p geom.Vec2, glyph string, style tcell.Style) {
	if sx, sy, ok := r.camera.WorldToScreen(r.raster, p); ok {
		r.putGlyph(sx, sy, glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) < 2 {
		// Fill the second column so narrow glyphs do not leave stale cells.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
