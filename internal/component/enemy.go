package component

import (
	"time"

	"roomcrawl/internal/geom"
)

// EnemyKind names an enemy archetype. Per-kind tunables live in
// assets.Enemies and are copied onto the Enemy at spawn.
type EnemyKind uint8

const (
	KindNormal EnemyKind = iota
	KindFast
	KindStrong
	KindChaser
	KindPatrol
	KindFlank
	KindGold
	KindAmbush
	numEnemyKinds
)

var kindNames = [numEnemyKinds]string{
	"normal", "fast", "strong", "chaser", "patrol", "flank", "gold", "ambush",
}

func (k EnemyKind) String() string {
	if k < numEnemyKinds {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is a known kind.
func (k EnemyKind) Valid() bool { return k < numEnemyKinds }

// ParseEnemyKind maps a kind name back to its EnemyKind.
func ParseEnemyKind(s string) (EnemyKind, bool) {
	for i, n := range kindNames {
		if n == s {
			return EnemyKind(i), true
		}
	}
	return 0, false
}

// MarshalText lets kinds appear by name in YAML dumps.
func (k EnemyKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText accepts a kind name. Unknown names decode to an invalid kind
// so that the runtime can skip the spec instead of failing the whole load.
func (k *EnemyKind) UnmarshalText(b []byte) error {
	v, ok := ParseEnemyKind(string(b))
	if !ok {
		*k = numEnemyKinds
		return nil
	}
	*k = v
	return nil
}

// Movement selects the steering behavior an enemy runs each tick.
type Movement uint8

const (
	// MoveChase steers straight at the player.
	MoveChase Movement = iota
	// MovePatrol cycles waypoints, optionally firing.
	MovePatrol
	// MoveFlank chases a point beside the player.
	MoveFlank
	// MoveAmbush lurks, then charges.
	MoveAmbush
)

// AmbushPhase is the sub-state of an ambusher.
type AmbushPhase uint8

const (
	AmbushWaiting AmbushPhase = iota
	AmbushCharging
)

// Behavior is the mutable steering state of one enemy.
type Behavior struct {
	Waypoints    []geom.Vec2
	PatrolIndex  int
	Wait         time.Duration // dwell remaining at the current waypoint
	FlankSide    float64       // +1 or -1 once chosen, 0 before
	FireCooldown time.Duration
	Ambush       AmbushPhase
	AmbushTimer  time.Duration // failsafe while waiting, charge left while charging
}

// Enemy is a live hostile body in the active room.
type Enemy struct {
	Kind       EnemyKind
	Move       Movement
	Pos, Vel   geom.Vec2
	Radius     float64
	Speed      float64 // base speed, units per second
	Aggression float64
	HP, MaxHP  int
	Damage     int
	Ranged     bool
	DropsItem  bool

	Behavior  Behavior
	Knockback time.Duration

	Active bool
	Dying  time.Duration // counts down after death while the corpse is shown
}

// Circle returns the enemy's collision disc.
func (e *Enemy) Circle() geom.Circle { return geom.Circle{C: e.Pos, R: e.Radius} }

// Alive reports whether the enemy still counts toward the room's clear
// condition.
func (e *Enemy) Alive() bool { return e.Active && e.HP > 0 }
