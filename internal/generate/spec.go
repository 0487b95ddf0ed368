package generate

import (
	"math/rand"

	"roomcrawl/internal/component"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
)

// RoomKind distinguishes the special rooms of a dungeon.
type RoomKind uint8

const (
	RoomCombat RoomKind = iota
	RoomStart
	RoomBoss
)

func (k RoomKind) String() string {
	switch k {
	case RoomStart:
		return "start"
	case RoomBoss:
		return "boss"
	default:
		return "combat"
	}
}

func (k RoomKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// EnemySpec describes one enemy to materialize when a room is entered.
type EnemySpec struct {
	Kind      component.EnemyKind `yaml:"kind"`
	Pos       geom.Vec2           `yaml:"pos"`
	Waypoints []geom.Vec2         `yaml:"waypoints,omitempty"`
	Elite     bool                `yaml:"elite,omitempty"`
}

// ItemSpec describes one pickup lying in a room.
type ItemSpec struct {
	Effect component.ItemEffect `yaml:"effect"`
	Pos    geom.Vec2            `yaml:"pos"`
}

// RoomSpec is the immutable description of one room.
type RoomSpec struct {
	ID         int                 `yaml:"id"`
	Kind       RoomKind            `yaml:"kind"`
	Template   TemplateKind        `yaml:"template"`
	Width      float64             `yaml:"width"`
	Height     float64             `yaml:"height"`
	Doors      []gamemap.Direction `yaml:"doors"`
	Obstacles  []gamemap.Obstacle  `yaml:"obstacles"`
	Enemies    []EnemySpec         `yaml:"enemies"`
	Items      []ItemSpec          `yaml:"items"`
	Difficulty int                 `yaml:"difficulty"`
	Depth      int                 `yaml:"depth"`
	GridX      int                 `yaml:"grid_x"`
	GridY      int                 `yaml:"grid_y"`
}

// Shell builds the wall frame described by the spec.
func (s *RoomSpec) Shell() *gamemap.Shell {
	return gamemap.NewShell(s.Width, s.Height, s.Doors)
}

// EnemyEntry is one row of the spawn table.
type EnemyEntry struct {
	Kind          component.EnemyKind
	ThreatCost    int
	MinDifficulty int
	Weight        int // relative pick weight among affordable entries; 0 means 1
}

// Config drives procedural generation for one floor.
type Config struct {
	Width, Height float64
	Floor         int
	Rooms         int  // rooms including the start room, excluding the boss
	Boss          bool // attach a boss room last
	MaxDifficulty int

	TemplateWeights map[TemplateKind]float64

	BaseBudget     int
	BudgetPerLevel int
	MaxEnemies     int
	EnemyTable     []EnemyEntry
	Elite          *EnemyEntry // spawned once in the boss room, outside the budget
	ItemEffects    []component.ItemEffect

	EnemyClearance float64
	EnemySpacing   float64
	DoorKeepAway   float64
	ItemClearance  float64
	ItemSpacing    float64
	PatrolPoints   int

	Placement Validator
	Rand      *rand.Rand
}

// validator returns the placement validator bound to the config's RNG.
func (cfg *Config) validator() *Validator {
	v := cfg.Placement
	v.Rand = cfg.Rand
	return &v
}
