package generate

import (
	"math"

	"roomcrawl/internal/component"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
)

// Layout is the part of a room that content is placed into.
type Layout struct {
	Kind       RoomKind
	Shell      *gamemap.Shell
	Obstacles  []gamemap.Obstacle
	Difficulty int
}

// Content is the result of Populate.
type Content struct {
	Enemies []EnemySpec
	Items   []ItemSpec
}

// Populate places enemies and items into a laid-out room.
//
// Enemies are bought from a threat budget that grows with difficulty: the
// cheapest unlocked kind is placed first so that any room with a usable
// budget has at least one enemy, then the remainder is spent on random
// affordable kinds. A room whose budget buys nothing comes back with zero
// enemies; the room runtime deals with that case.
func Populate(cfg *Config, layout Layout) Content {
	var result Content
	if layout.Kind == RoomStart {
		return result
	}
	v := cfg.validator()
	bounds := layout.Shell.Interior()

	var keep []Keepout
	for _, d := range gamemap.Directions {
		if _, ok := layout.Shell.Doors[d]; ok {
			keep = append(keep, Keepout{Center: layout.Shell.EntryPoint(d, 0), Dist: cfg.DoorKeepAway})
		}
	}
	placeEnemy := func(kind component.EnemyKind, elite bool) {
		pref := randomIn(bounds, cfg)
		pl := v.PlaceAvoiding(pref, cfg.EnemyClearance, layout.Obstacles, bounds, keep)
		spec := EnemySpec{Kind: kind, Pos: pl.Point, Elite: elite}
		if kind == component.KindPatrol && cfg.PatrolPoints > 0 {
			spec.Waypoints = PatrolRoute(v, pl.Point, cfg.PatrolPoints, cfg.EnemyClearance, layout.Obstacles, bounds)
		}
		result.Enemies = append(result.Enemies, spec)
		keep = append(keep, Keepout{Center: pl.Point, Dist: cfg.EnemySpacing})
	}

	if layout.Kind == RoomBoss && cfg.Elite != nil {
		placeEnemy(cfg.Elite.Kind, true)
	}

	table := unlockedEnemies(cfg.EnemyTable, layout.Difficulty)
	budget := cfg.BaseBudget + cfg.BudgetPerLevel*layout.Difficulty
	if layout.Kind == RoomBoss {
		budget += budget / 2
	}
	maxEnemies := cfg.MaxEnemies
	if maxEnemies <= 0 {
		maxEnemies = math.MaxInt
	}

	// Phase 1: one cheapest enemy, guaranteeing a fight when affordable.
	if aff := affordableEnemies(table, budget); len(aff) > 0 {
		entry := cheapestEntry(aff)
		placeEnemy(entry.Kind, false)
		budget -= entry.ThreatCost
	}

	// Phase 2: spend what is left on random affordable kinds.
	for budget > 0 && len(result.Enemies) < maxEnemies {
		aff := affordableEnemies(table, budget)
		if len(aff) == 0 {
			break
		}
		entry := weightedEntry(aff, cfg)
		placeEnemy(entry.Kind, false)
		budget -= max(entry.ThreatCost, 1)
	}

	// Items avoid obstacles with a larger margin and avoid each other.
	if len(cfg.ItemEffects) > 0 {
		count := 1 + int(math.Floor(cfg.Rand.Float64()*float64(min(2, max(layout.Difficulty, 0)))))
		var placed []geom.Vec2
		for range count {
			effect := cfg.ItemEffects[cfg.Rand.Intn(len(cfg.ItemEffects))]
			pl := v.PlaceApart(randomIn(bounds, cfg), cfg.ItemClearance, layout.Obstacles, bounds, placed, cfg.ItemSpacing)
			placed = append(placed, pl.Point)
			result.Items = append(result.Items, ItemSpec{Effect: effect, Pos: pl.Point})
		}
	}
	return result
}

// PatrolRoute returns n waypoints starting at origin; the rest are sampled
// so that they clear the obstacles. Fallback points are kept, a route may
// pass through the room center.
func PatrolRoute(v *Validator, origin geom.Vec2, n int, clearance float64, obstacles []gamemap.Obstacle, bounds geom.Rect) []geom.Vec2 {
	if n <= 0 {
		return nil
	}
	route := make([]geom.Vec2, 0, n)
	route = append(route, origin)
	for len(route) < n {
		pl := v.Place(v.sample(bounds), clearance, obstacles, bounds)
		route = append(route, pl.Point)
	}
	return route
}

func unlockedEnemies(table []EnemyEntry, difficulty int) []EnemyEntry {
	var out []EnemyEntry
	for _, e := range table {
		if e.Kind.Valid() && e.MinDifficulty <= difficulty {
			out = append(out, e)
		}
	}
	return out
}

func affordableEnemies(table []EnemyEntry, budget int) []EnemyEntry {
	var out []EnemyEntry
	for _, e := range table {
		if e.ThreatCost <= budget {
			out = append(out, e)
		}
	}
	return out
}

// cheapestEntry returns the entry with the lowest ThreatCost from a non-empty slice.
func cheapestEntry(entries []EnemyEntry) EnemyEntry {
	best := entries[0]
	for _, e := range entries[1:] {
		if e.ThreatCost < best.ThreatCost {
			best = e
		}
	}
	return best
}

func weightedEntry(entries []EnemyEntry, cfg *Config) EnemyEntry {
	total := 0
	for _, e := range entries {
		total += max(e.Weight, 1)
	}
	r := cfg.Rand.Intn(total)
	for _, e := range entries {
		w := max(e.Weight, 1)
		if r < w {
			return e
		}
		r -= w
	}
	return entries[len(entries)-1]
}

func randomIn(area geom.Rect, cfg *Config) geom.Vec2 {
	return geom.V(area.X+cfg.Rand.Float64()*area.W, area.Y+cfg.Rand.Float64()*area.H)
}
