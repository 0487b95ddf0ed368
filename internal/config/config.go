// Package config holds the gameplay tuning. Every constant that shapes
// generation or simulation lives here so it can be overridden from a YAML
// file without rebuilding.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Room is the size of every generated room.
type Room struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Dungeon shapes the floor graph.
type Dungeon struct {
	Rooms           int                `yaml:"rooms"`
	RoomsPerFloor   int                `yaml:"rooms_per_floor"`
	MaxFloors       int                `yaml:"max_floors"`
	Boss            bool               `yaml:"boss"`
	MaxDifficulty   int                `yaml:"max_difficulty"`
	TemplateWeights map[string]float64 `yaml:"template_weights,omitempty"`
}

// Spawn controls the content generator.
type Spawn struct {
	BaseBudget     int     `yaml:"base_budget"`
	BudgetPerLevel int     `yaml:"budget_per_level"`
	MaxEnemies     int     `yaml:"max_enemies"`
	MaxAttempts    int     `yaml:"max_attempts"`
	WallPadding    float64 `yaml:"wall_padding"`
	Jitter         float64 `yaml:"fallback_jitter"`
	EnemyClearance float64 `yaml:"enemy_clearance"`
	EnemySpacing   float64 `yaml:"enemy_spacing"`
	DoorKeepAway   float64 `yaml:"door_keep_away"`
	ItemClearance  float64 `yaml:"item_clearance"`
	ItemSpacing    float64 `yaml:"item_spacing"`
	PatrolPoints   int     `yaml:"patrol_points"`
	FallbackCount  int     `yaml:"fallback_enemies"`
	AmbushEnabled  bool    `yaml:"ambush_enabled"`
}

// Player holds the player body tunables.
type Player struct {
	Speed          float64       `yaml:"speed"`
	MaxSpeed       float64       `yaml:"max_speed"`
	Radius         float64       `yaml:"radius"`
	HP             int           `yaml:"hp"`
	DashMultiplier float64       `yaml:"dash_multiplier"`
	DashDuration   time.Duration `yaml:"dash_duration"`
	DashCooldown   time.Duration `yaml:"dash_cooldown"`
	DashDamage     int           `yaml:"dash_damage"`
	DashGrace      time.Duration `yaml:"dash_grace"`
	HitInvuln      time.Duration `yaml:"hit_invulnerability"`
	HitStun        time.Duration `yaml:"hit_stun"`
	Knockback      float64       `yaml:"knockback"`
	FireInterval   time.Duration `yaml:"fire_interval"`
	ShotSpeed      float64       `yaml:"shot_speed"`
	ShotTTL        time.Duration `yaml:"shot_ttl"`
	ShotDamage     int           `yaml:"shot_damage"`
	ShotRadius     float64       `yaml:"shot_radius"`
	ShieldDuration time.Duration `yaml:"shield_duration"`
	SpeedBoost     float64       `yaml:"speed_boost"`
	AmmoBoost      int           `yaml:"ammo_boost"`
}

// Enemy holds behavior tunables shared by all kinds.
type Enemy struct {
	FireRange        float64       `yaml:"fire_range"`
	FireInterval     time.Duration `yaml:"fire_interval"`
	ShotSpeed        float64       `yaml:"shot_speed"`
	ShotTTL          time.Duration `yaml:"shot_ttl"`
	ShotDamage       int           `yaml:"shot_damage"`
	ShotRadius       float64       `yaml:"shot_radius"`
	Knockback        time.Duration `yaml:"knockback"`
	KnockbackSpeed   float64       `yaml:"knockback_speed"`
	Dying            time.Duration `yaml:"dying"`
	PatrolArrive     float64       `yaml:"patrol_arrive"`
	PatrolDwellMin   time.Duration `yaml:"patrol_dwell_min"`
	PatrolDwellMax   time.Duration `yaml:"patrol_dwell_max"`
	FlankOffset      float64       `yaml:"flank_offset"`
	AmbushRange      float64       `yaml:"ambush_range"`
	AmbushFailsafe   time.Duration `yaml:"ambush_failsafe"`
	AmbushCharge     time.Duration `yaml:"ambush_charge"`
	AmbushAggression float64       `yaml:"ambush_aggression"`
	AmbushLurkSpeed  float64       `yaml:"ambush_lurk_speed"`
	Separation       float64       `yaml:"separation"`
	EliteHPScale     int           `yaml:"elite_hp_scale"`
}

// Runtime holds room runtime and orchestrator tunables.
type Runtime struct {
	CellSize           float64       `yaml:"cell_size"`
	SubstepLength      float64       `yaml:"substep_length"`
	LockedNotice       time.Duration `yaml:"locked_notice"`
	TransitionCooldown time.Duration `yaml:"transition_cooldown"`
	DoorWeights        []float64     `yaml:"door_weights"`
	FloorAdvanceDelay  time.Duration `yaml:"floor_advance_delay"`
}

// Tuning is the full set of gameplay constants.
type Tuning struct {
	Room    Room    `yaml:"room"`
	Dungeon Dungeon `yaml:"dungeon"`
	Spawn   Spawn   `yaml:"spawn"`
	Player  Player  `yaml:"player"`
	Enemy   Enemy   `yaml:"enemy"`
	Runtime Runtime `yaml:"runtime"`
}

// Default returns the stock tuning.
func Default() *Tuning {
	return &Tuning{
		Room: Room{Width: 800, Height: 600},
		Dungeon: Dungeon{
			Rooms:         7,
			RoomsPerFloor: 2,
			MaxFloors:     5,
			Boss:          true,
			MaxDifficulty: 10,
		},
		Spawn: Spawn{
			BaseBudget:     3,
			BudgetPerLevel: 2,
			MaxEnemies:     10,
			MaxAttempts:    30,
			WallPadding:    30,
			Jitter:         20,
			EnemyClearance: 30,
			EnemySpacing:   70,
			DoorKeepAway:   150,
			ItemClearance:  40,
			ItemSpacing:    60,
			PatrolPoints:   3,
			FallbackCount:  2,
		},
		Player: Player{
			Speed:          200,
			MaxSpeed:       320,
			Radius:         14,
			HP:             6,
			DashMultiplier: 4.5,
			DashDuration:   150 * time.Millisecond,
			DashCooldown:   800 * time.Millisecond,
			DashDamage:     2,
			DashGrace:      200 * time.Millisecond,
			HitInvuln:      800 * time.Millisecond,
			HitStun:        120 * time.Millisecond,
			Knockback:      24,
			FireInterval:   280 * time.Millisecond,
			ShotSpeed:      420,
			ShotTTL:        1500 * time.Millisecond,
			ShotDamage:     1,
			ShotRadius:     4,
			ShieldDuration: 8 * time.Second,
			SpeedBoost:     0.12,
			AmmoBoost:      8,
		},
		Enemy: Enemy{
			FireRange:        350,
			FireInterval:     2 * time.Second,
			ShotSpeed:        200,
			ShotTTL:          3 * time.Second,
			ShotDamage:       1,
			ShotRadius:       5,
			Knockback:        150 * time.Millisecond,
			KnockbackSpeed:   260,
			Dying:            400 * time.Millisecond,
			PatrolArrive:     12,
			PatrolDwellMin:   500 * time.Millisecond,
			PatrolDwellMax:   1500 * time.Millisecond,
			FlankOffset:      120,
			AmbushRange:      150,
			AmbushFailsafe:   3 * time.Second,
			AmbushCharge:     1200 * time.Millisecond,
			AmbushAggression: 2.0,
			AmbushLurkSpeed:  0.4,
			Separation:       0.5,
			EliteHPScale:     3,
		},
		Runtime: Runtime{
			CellSize:           64,
			SubstepLength:      10,
			LockedNotice:       500 * time.Millisecond,
			TransitionCooldown: time.Second,
			DoorWeights:        []float64{50, 35, 15},
			FloorAdvanceDelay:  1500 * time.Millisecond,
		},
	}
}

// Load overlays the YAML file at path on the defaults. An empty path
// returns the defaults.
func Load(path string) (*Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	t.Validate()
	return t, nil
}

// Marshal renders the tuning as YAML.
func (t *Tuning) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encode tuning: %w", err)
	}
	return data, nil
}

// Validate replaces out-of-range values with their defaults so that a bad
// file degrades the game instead of breaking it.
func (t *Tuning) Validate() {
	d := Default()
	if t.Room.Width < 200 || t.Room.Height < 200 {
		t.Room = d.Room
	}
	if t.Dungeon.Rooms < 1 {
		t.Dungeon.Rooms = d.Dungeon.Rooms
	}
	if t.Dungeon.RoomsPerFloor < 0 {
		t.Dungeon.RoomsPerFloor = 0
	}
	if t.Dungeon.MaxFloors < 1 {
		t.Dungeon.MaxFloors = d.Dungeon.MaxFloors
	}
	if t.Dungeon.MaxDifficulty < 1 {
		t.Dungeon.MaxDifficulty = d.Dungeon.MaxDifficulty
	}
	sum := 0.0
	for _, w := range t.Runtime.DoorWeights {
		if w > 0 {
			sum += w
		}
	}
	if len(t.Runtime.DoorWeights) == 0 || sum <= 0 {
		t.Runtime.DoorWeights = d.Runtime.DoorWeights
	}
	if t.Runtime.CellSize <= 0 {
		t.Runtime.CellSize = d.Runtime.CellSize
	}
	if t.Runtime.SubstepLength <= 0 {
		t.Runtime.SubstepLength = d.Runtime.SubstepLength
	}
	if t.Player.Radius <= 0 {
		t.Player.Radius = d.Player.Radius
	}
	if t.Player.HP < 1 {
		t.Player.HP = d.Player.HP
	}
	if t.Player.MaxSpeed < t.Player.Speed {
		t.Player.MaxSpeed = t.Player.Speed
	}
	if t.Spawn.MaxAttempts < 1 {
		t.Spawn.MaxAttempts = d.Spawn.MaxAttempts
	}
	if t.Enemy.PatrolDwellMax < t.Enemy.PatrolDwellMin {
		t.Enemy.PatrolDwellMax = t.Enemy.PatrolDwellMin
	}
	if t.Spawn.FallbackCount < 1 {
		t.Spawn.FallbackCount = 1
	}
}
