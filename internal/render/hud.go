package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUD is the status shown below the room.
type HUD struct {
	HP, MaxHP int
	Floor     int
	FloorName string
	Room      int // graph id, negative for ad-hoc rooms
	RoomState string
	Enemies   int
	DashReady bool
	Shielded  bool
	Empowered int
	Messages  []string
}

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(h HUD) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	// Separator line.
	r.drawHLine(hudY, tcell.ColorGray)

	hp := fmt.Sprintf("HP %d/%d", h.HP, h.MaxHP)
	hpStyle := styleGood
	if h.HP*3 <= h.MaxHP {
		hpStyle = styleBad
	}
	col := r.drawText(0, hudY+1, hp, hpStyle)

	room := fmt.Sprintf("room %d", h.Room)
	if h.Room < 0 {
		room = "uncharted room"
	}
	status := fmt.Sprintf("  Floor %d %s  %s [%s]  foes %d", h.Floor, h.FloorName, room, h.RoomState, h.Enemies)
	col = r.drawText(col, hudY+1, status, styleText)

	if h.DashReady {
		col = r.drawText(col, hudY+1, "  DASH", styleGold)
	} else {
		col = r.drawText(col, hudY+1, "  dash", styleDim)
	}
	if h.Shielded {
		col = r.drawText(col, hudY+1, "  SHIELD", styleGood)
	}
	if h.Empowered > 0 {
		r.drawText(col, hudY+1, fmt.Sprintf("  power x%d", h.Empowered), styleGold)
	}

	// Message log (last 3 messages).
	start := max(len(h.Messages)-3, 0)
	for i, msg := range h.Messages[start:] {
		r.drawText(0, hudY+2+i, msg, styleMsg)
	}
}

// Show flushes the screen.
func (r *Renderer) Show() { r.screen.Show() }

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x and returns the column after it.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
	return col
}
