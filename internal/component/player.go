package component

import (
	"time"

	"github.com/zyedidia/generic/mapset"

	"roomcrawl/internal/ecs"
	"roomcrawl/internal/geom"
)

// Dash is the player's burst-move state.
type Dash struct {
	Active    bool
	Dir       geom.Vec2
	Remaining time.Duration
	Cooldown  time.Duration
	// Hits holds the enemies already damaged by the current dash.
	Hits mapset.Set[ecs.EntityID]
}

// Player is the single player body. It survives room transitions.
type Player struct {
	Pos, Vel  geom.Vec2
	Radius    float64
	Speed     float64 // units per second
	HP, MaxHP int
	Facing    geom.Vec2

	Dash         Dash
	Invuln       time.Duration
	Knockback    time.Duration
	FireCooldown time.Duration
	Shield       time.Duration
	Empowered    int // shots left that deal bonus damage

	LockedNotice time.Duration // debounce for the locked-door notification
}

// Circle returns the player's collision disc.
func (p *Player) Circle() geom.Circle { return geom.Circle{C: p.Pos, R: p.Radius} }

// Dead reports whether the player has run out of health.
func (p *Player) Dead() bool { return p.HP <= 0 }

// Invulnerable reports whether contact damage is currently ignored.
func (p *Player) Invulnerable() bool { return p.Invuln > 0 || p.Dash.Active }
