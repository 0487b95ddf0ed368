package render

import "github.com/gdamore/tcell/v2"

// FloorTiles holds the emoji glyphs used to draw one floor's terrain.
// Emoji are rendered by the terminal with their own colors, so each floor
// gets distinct glyphs instead of tinted ones.
type FloorTiles struct {
	Wall     string
	Floor    string
	Obstacle string
}

// TileThemes maps floor number to its tile set. Floors past the end reuse
// the last theme.
var TileThemes = []FloorTiles{
	// Unused slot so floors index from 1.
	{Wall: "🧱", Floor: "", Obstacle: "🪨"},
	// Crystalline Labs: ice and frost
	{Wall: "🧊", Floor: "", Obstacle: "💎"},
	// Bioluminescent Warrens: fungal growth, living walls
	{Wall: "🍄", Floor: "", Obstacle: "🌿"},
	// Resonance Engine: brass gears
	{Wall: "⚙️", Floor: "", Obstacle: "🔩"},
	// Fractured Observatory: stone and crystal lenses
	{Wall: "🪨", Floor: "", Obstacle: "💠"},
	// Apex Nexus: skulls and void energy
	{Wall: "💀", Floor: "", Obstacle: "🔴"},
}

// Theme returns the tile set for floor.
func Theme(floor int) FloorTiles {
	if floor <= 0 {
		return TileThemes[0]
	}
	if floor >= len(TileThemes) {
		return TileThemes[len(TileThemes)-1]
	}
	return TileThemes[floor]
}

var (
	styleBase  = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleText  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMsg   = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	styleGood  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBad   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleGold  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleShot  = styleBase.Foreground(tcell.ColorAqua)
	styleEShot = styleBase.Foreground(tcell.ColorOrangeRed)
	styleFlash = styleBase.Foreground(tcell.ColorWhite).Bold(true)
)
