package assets

import (
	"roomcrawl/internal/component"
	"roomcrawl/internal/generate"
)

// Emoji constants used as entity glyphs.
const (
	GlyphPlayer     = "🧙"
	GlyphNormal     = "👾"
	GlyphFast       = "🦇"
	GlyphStrong     = "🗿"
	GlyphChaser     = "🐺"
	GlyphPatrol     = "🤖"
	GlyphFlank      = "🦂"
	GlyphGold       = "👑"
	GlyphAmbush     = "🕷"
	GlyphCorpse     = "💀"
	GlyphDoorOpen   = "🚪"
	GlyphDoorLocked = "🔒"
	GlyphShotPlayer = "•"
	GlyphShotEnemy  = "∗"
)

// EnemyStats are the per-kind tunables copied onto an enemy at spawn.
type EnemyStats struct {
	Name       string
	Glyph      string
	Move       component.Movement
	Speed      float64 // units per second
	Aggression float64 // chase multiplier
	HP         int
	Damage     int
	Radius     float64
	Ranged     bool
	DropsItem  bool
}

// Enemies is the enemy catalogue.
var Enemies = map[component.EnemyKind]EnemyStats{
	component.KindNormal: {Name: "Drone", Glyph: GlyphNormal, Move: component.MoveChase, Speed: 80, Aggression: 1.0, HP: 3, Damage: 1, Radius: 14},
	component.KindFast:   {Name: "Flitter", Glyph: GlyphFast, Move: component.MoveChase, Speed: 105, Aggression: 1.3, HP: 2, Damage: 1, Radius: 12},
	component.KindStrong: {Name: "Monolith", Glyph: GlyphStrong, Move: component.MoveChase, Speed: 65, Aggression: 0.8, HP: 8, Damage: 2, Radius: 20},
	component.KindChaser: {Name: "Hound", Glyph: GlyphChaser, Move: component.MoveChase, Speed: 90, Aggression: 1.2, HP: 3, Damage: 1, Radius: 14},
	component.KindPatrol: {Name: "Sentry", Glyph: GlyphPatrol, Move: component.MovePatrol, Speed: 70, Aggression: 1.0, HP: 4, Damage: 1, Radius: 14, Ranged: true},
	component.KindFlank:  {Name: "Stalker", Glyph: GlyphFlank, Move: component.MoveFlank, Speed: 95, Aggression: 1.0, HP: 3, Damage: 1, Radius: 14},
	component.KindGold:   {Name: "Gilded", Glyph: GlyphGold, Move: component.MoveChase, Speed: 70, Aggression: 1.0, HP: 10, Damage: 2, Radius: 16, DropsItem: true},
	component.KindAmbush: {Name: "Lurker", Glyph: GlyphAmbush, Move: component.MoveAmbush, Speed: 85, Aggression: 1.0, HP: 4, Damage: 1, Radius: 14},
}

// Stats returns the catalogue entry for kind, falling back to the normal
// enemy for unknown kinds.
func Stats(kind component.EnemyKind) EnemyStats {
	if s, ok := Enemies[kind]; ok {
		return s
	}
	return Enemies[component.KindNormal]
}

// EnemyTable is the spawn table: threat cost, unlock difficulty and pick
// weight per kind. Gold enemies are rare.
var EnemyTable = []generate.EnemyEntry{
	{Kind: component.KindNormal, ThreatCost: 2, MinDifficulty: 1, Weight: 4},
	{Kind: component.KindFast, ThreatCost: 3, MinDifficulty: 1, Weight: 3},
	{Kind: component.KindPatrol, ThreatCost: 3, MinDifficulty: 2, Weight: 2},
	{Kind: component.KindChaser, ThreatCost: 3, MinDifficulty: 2, Weight: 3},
	{Kind: component.KindFlank, ThreatCost: 4, MinDifficulty: 3, Weight: 2},
	{Kind: component.KindStrong, ThreatCost: 5, MinDifficulty: 3, Weight: 2},
	{Kind: component.KindAmbush, ThreatCost: 4, MinDifficulty: 4, Weight: 1},
	{Kind: component.KindGold, ThreatCost: 6, MinDifficulty: 3, Weight: 1},
}

// BossElite is spawned once in every boss room on top of the budget.
var BossElite = generate.EnemyEntry{Kind: component.KindStrong}

// TemplateWeights are the default layout weights (uniform).
var TemplateWeights = map[generate.TemplateKind]float64{
	generate.TemplateCorners:    1,
	generate.TemplateCross:      1,
	generate.TemplatePillars:    1,
	generate.TemplateAsymmetric: 1,
	generate.TemplateMaze:       1,
	generate.TemplateEmpty:      1,
}

// FloorNames maps floor number (1-indexed) to its name.
var FloorNames = []string{
	"",
	"Crystalline Labs",
	"Bioluminescent Warrens",
	"Resonance Engine",
	"Fractured Observatory",
	"Apex Nexus",
}

// FloorName returns the display name of a floor.
func FloorName(floor int) string {
	if floor > 0 && floor < len(FloorNames) {
		return FloorNames[floor]
	}
	return "The Deep"
}
