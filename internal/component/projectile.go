package component

import (
	"time"

	"roomcrawl/internal/ecs"
	"roomcrawl/internal/geom"
)

// Owner tags which side fired a projectile.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// Projectile is a moving shot.
type Projectile struct {
	Owner   Owner
	Shooter ecs.EntityID // enemy id for enemy shots, NilEntity for the player
	Pos     geom.Vec2
	Prev    geom.Vec2
	Dir     geom.Vec2 // unit vector
	Speed   float64
	Radius  float64
	Damage  int
	TTL     time.Duration
	Active  bool
}

// Circle returns the projectile's collision disc.
func (p *Projectile) Circle() geom.Circle { return geom.Circle{C: p.Pos, R: p.Radius} }
