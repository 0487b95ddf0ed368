package game

import (
	"math"
	"math/rand"

	"roomcrawl/assets"
	"roomcrawl/internal/component"
	"roomcrawl/internal/config"
	"roomcrawl/internal/generate"
)

// LevelConfig builds a generate.Config for the given floor number. Deeper
// floors get more rooms and a higher enemy cap.
func LevelConfig(floor int, t *config.Tuning, rng *rand.Rand) *generate.Config {
	maxFloors := max(t.Dungeon.MaxFloors, 1)
	frac := 0.0
	if maxFloors > 1 {
		frac = float64(floor-1) / float64(maxFloors-1)
	}
	rooms := t.Dungeon.Rooms
	elite := assets.BossElite

	return &generate.Config{
		Width:           t.Room.Width,
		Height:          t.Room.Height,
		Floor:           floor,
		Rooms:           lerpi(rooms, rooms+t.Dungeon.RoomsPerFloor*(maxFloors-1), frac),
		Boss:            t.Dungeon.Boss,
		MaxDifficulty:   t.Dungeon.MaxDifficulty,
		TemplateWeights: templateWeights(t.Dungeon.TemplateWeights),
		BaseBudget:      t.Spawn.BaseBudget,
		BudgetPerLevel:  t.Spawn.BudgetPerLevel,
		MaxEnemies:      lerpi(max(t.Spawn.MaxEnemies/2, 1), t.Spawn.MaxEnemies, frac),
		EnemyTable:      assets.EnemyTable,
		Elite:           &elite,
		ItemEffects:     component.ItemEffects(),
		EnemyClearance:  t.Spawn.EnemyClearance,
		EnemySpacing:    t.Spawn.EnemySpacing,
		DoorKeepAway:    t.Spawn.DoorKeepAway,
		ItemClearance:   t.Spawn.ItemClearance,
		ItemSpacing:     t.Spawn.ItemSpacing,
		PatrolPoints:    t.Spawn.PatrolPoints,
		Placement: generate.Validator{
			MaxAttempts: t.Spawn.MaxAttempts,
			WallPadding: t.Spawn.WallPadding,
			Jitter:      t.Spawn.Jitter,
		},
		Rand: rng,
	}
}

// templateWeights resolves the configured layout weights, falling back to
// the stock weights when none are set. Unknown names are ignored.
func templateWeights(named map[string]float64) map[generate.TemplateKind]float64 {
	if len(named) == 0 {
		return assets.TemplateWeights
	}
	out := make(map[generate.TemplateKind]float64, len(named))
	for name, w := range named {
		var k generate.TemplateKind
		if err := k.UnmarshalText([]byte(name)); err != nil {
			continue
		}
		out[k] = w
	}
	return out
}

func lerpi(a, b int, t float64) int {
	return int(math.Round(float64(a) + t*float64(b-a)))
}
