package room

import (
	"roomcrawl/assets"
	"roomcrawl/internal/component"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/generate"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/system"
)

// eliteRadiusScale enlarges elite enemies.
const eliteRadiusScale = 1.5

// NewEnemy builds a live enemy of the given kind at pos from the catalogue.
func NewEnemy(kind component.EnemyKind, pos geom.Vec2, elite bool, r *Runtime) component.Enemy {
	stats := assets.Stats(kind)
	t := r.tuning
	e := component.Enemy{
		Kind:       kind,
		Move:       stats.Move,
		Pos:        pos,
		Radius:     stats.Radius,
		Speed:      stats.Speed,
		Aggression: stats.Aggression,
		HP:         stats.HP,
		MaxHP:      stats.HP,
		Damage:     stats.Damage,
		Ranged:     stats.Ranged,
		DropsItem:  stats.DropsItem,
		Active:     true,
	}
	if elite {
		scale := max(t.Enemy.EliteHPScale, 1)
		e.HP *= scale
		e.MaxHP = e.HP
		e.Radius *= eliteRadiusScale
	}
	e.Behavior.FireCooldown = t.Enemy.FireInterval
	e.Behavior.AmbushTimer = t.Enemy.AmbushFailsafe
	return e
}

// spawnEnemies materializes the enemy specs and returns how many made it.
func (r *Runtime) spawnEnemies(specs []generate.EnemySpec) int {
	n := 0
	for i, s := range specs {
		if !s.Pos.Finite() || !s.Kind.Valid() {
			r.log.Warn("skipping malformed enemy spec", "index", i, "kind", s.Kind.String(), "x", s.Pos.X, "y", s.Pos.Y)
			continue
		}
		kind := s.Kind
		if kind == component.KindAmbush && !r.tuning.Spawn.AmbushEnabled {
			kind = component.KindNormal
		}
		pl, _ := r.scene.Validator.Repair(s.Pos, r.tuning.Spawn.EnemyClearance, r.Spec.Obstacles, r.Shell.Interior())
		e := NewEnemy(kind, pl.Point, s.Elite, r)
		if e.Move == component.MovePatrol || e.Move == component.MoveAmbush {
			e.Behavior.Waypoints = validWaypoints(s.Waypoints)
		}
		r.Enemies.Add(e)
		n++
	}
	return n
}

// spawnFallback places a small group of normal enemies away from the door
// the player came through.
func (r *Runtime) spawnFallback() {
	t := r.tuning.Spawn
	in := r.Shell.Interior()
	var keep []generate.Keepout
	if r.entry.Valid() {
		keep = append(keep, generate.Keepout{Center: r.Shell.EntryPoint(r.entry, 0), Dist: t.DoorKeepAway})
	}
	for range max(t.FallbackCount, 1) {
		pref := geom.V(in.X+r.rng.Float64()*in.W, in.Y+r.rng.Float64()*in.H)
		pl := r.scene.Validator.PlaceAvoiding(pref, t.EnemyClearance, r.Spec.Obstacles, in, keep)
		r.Enemies.Add(NewEnemy(component.KindNormal, pl.Point, false, r))
		keep = append(keep, generate.Keepout{Center: pl.Point, Dist: t.EnemySpacing})
	}
}

func (r *Runtime) spawnItems(specs []generate.ItemSpec) {
	for i, s := range specs {
		if !s.Pos.Finite() {
			r.log.Warn("skipping malformed item spec", "index", i, "effect", s.Effect.String())
			continue
		}
		pl, _ := r.scene.Validator.Repair(s.Pos, r.tuning.Spawn.ItemClearance, r.Spec.Obstacles, r.Shell.Interior())
		id := r.Items.Add(component.Item{Pos: pl.Point, Radius: system.ItemRadius, Effect: s.Effect})
		if pl.Fallback {
			r.pinned.Put(id)
		}
	}
}

// repairItems moves items that no longer clear the obstacles. Items that
// already landed on the fallback point are left alone so they do not jitter
// around the room center every tick.
func (r *Runtime) repairItems() {
	clearance := r.tuning.Spawn.ItemClearance
	r.Items.Each(func(id ecs.EntityID, it *component.Item) bool {
		if it.Collected || r.pinned.Has(id) {
			return true
		}
		pl, moved := r.scene.Validator.Repair(it.Pos, clearance, r.Spec.Obstacles, r.Shell.Interior())
		if moved {
			it.Pos = pl.Point
			if pl.Fallback {
				r.pinned.Put(id)
			}
		}
		return true
	})
}

func validWaypoints(in []geom.Vec2) []geom.Vec2 {
	var out []geom.Vec2
	for _, p := range in {
		if p.Finite() {
			out = append(out, p)
		}
	}
	return out
}

// Obstacles lists the room's obstacles.
func (r *Runtime) Obstacles() []gamemap.Obstacle { return r.Spec.Obstacles }
