package game

import (
	"math/rand"
	"testing"

	"roomcrawl/assets"
	"roomcrawl/internal/config"
	"roomcrawl/internal/generate"
)

func TestLevelConfigScalesWithFloor(t *testing.T) {
	tuning := config.Default()
	rng := rand.New(rand.NewSource(1))
	first := LevelConfig(1, tuning, rng)
	last := LevelConfig(tuning.Dungeon.MaxFloors, tuning, rng)

	if first.Rooms != tuning.Dungeon.Rooms {
		t.Errorf("floor 1 rooms = %d; want %d", first.Rooms, tuning.Dungeon.Rooms)
	}
	wantLast := tuning.Dungeon.Rooms + tuning.Dungeon.RoomsPerFloor*(tuning.Dungeon.MaxFloors-1)
	if last.Rooms != wantLast {
		t.Errorf("last floor rooms = %d; want %d", last.Rooms, wantLast)
	}
	if first.MaxEnemies >= last.MaxEnemies {
		t.Errorf("enemy cap should grow: %d -> %d", first.MaxEnemies, last.MaxEnemies)
	}
	if last.MaxEnemies != tuning.Spawn.MaxEnemies {
		t.Errorf("last floor cap = %d; want %d", last.MaxEnemies, tuning.Spawn.MaxEnemies)
	}
	if first.Elite == nil || first.Elite.Kind != assets.BossElite.Kind {
		t.Error("boss elite not configured")
	}
	if first.Floor != 1 || last.Floor != tuning.Dungeon.MaxFloors {
		t.Errorf("floors = %d, %d", first.Floor, last.Floor)
	}
}

func TestLevelConfigSingleFloor(t *testing.T) {
	tuning := config.Default()
	tuning.Dungeon.MaxFloors = 1
	cfg := LevelConfig(1, tuning, rand.New(rand.NewSource(1)))
	if cfg.Rooms != tuning.Dungeon.Rooms {
		t.Errorf("rooms = %d; want %d", cfg.Rooms, tuning.Dungeon.Rooms)
	}
}

func TestTemplateWeights(t *testing.T) {
	if got := templateWeights(nil); len(got) != len(assets.TemplateWeights) {
		t.Errorf("default weights = %v", got)
	}
	got := templateWeights(map[string]float64{"cross": 2, "bogus": 5, "maze": 0})
	if len(got) != 2 {
		t.Fatalf("weights = %v; want cross and maze only", got)
	}
	if got[generate.TemplateCross] != 2 {
		t.Errorf("cross weight = %v; want 2", got[generate.TemplateCross])
	}
}

func TestLerpi(t *testing.T) {
	cases := []struct {
		a, b int
		t    float64
		want int
	}{
		{2, 10, 0, 2},
		{2, 10, 1, 10},
		{2, 10, 0.5, 6},
		{5, 5, 0.3, 5},
	}
	for _, tc := range cases {
		if got := lerpi(tc.a, tc.b, tc.t); got != tc.want {
			t.Errorf("lerpi(%d, %d, %v) = %d; want %d", tc.a, tc.b, tc.t, got, tc.want)
		}
	}
}
