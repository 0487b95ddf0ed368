// Package system holds the per-tick simulation passes: enemy steering,
// movement with collision response, contact damage, projectiles and
// pickups. Every pass works on a Scene handed in by the room runtime.
package system

import (
	"log/slog"
	"math/rand"

	"roomcrawl/internal/component"
	"roomcrawl/internal/config"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/generate"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/spatial"
)

// Scene is a read/write handle on one room's state, valid for one tick.
type Scene struct {
	Shell       *gamemap.Shell
	Obstacles   []gamemap.Obstacle
	Doors       []component.Door
	Enemies     *ecs.Store[component.Enemy]
	EnemyShots  *ecs.Store[component.Projectile]
	PlayerShots *ecs.Store[component.Projectile]
	Items       *ecs.Store[component.Item]
	Grid        *spatial.Grid
	Validator   *generate.Validator
	Tuning      *config.Tuning
	Sink        Sink
	Rand        *rand.Rand
	Log         *slog.Logger
}

// Interior is the walkable area of the room.
func (sc *Scene) Interior() geom.Rect { return sc.Shell.Interior() }

func (sc *Scene) emit(e Event) { Emit(sc.Sink, e) }

// Solid is a static rectangle bodies collide with.
type Solid struct {
	Rect geom.Rect
	Door *component.Door // set when the solid is a locked door
}

// EachSolid calls fn for every wall, obstacle and locked door until fn
// returns false. Unlocked doors are open gaps and are skipped.
func (sc *Scene) EachSolid(fn func(Solid) bool) {
	for _, w := range sc.Shell.Walls {
		if !fn(Solid{Rect: w}) {
			return
		}
	}
	for _, o := range sc.Obstacles {
		if !fn(Solid{Rect: o.Rect}) {
			return
		}
	}
	for i := range sc.Doors {
		d := &sc.Doors[i]
		if !d.Locked {
			continue
		}
		if !fn(Solid{Rect: d.Rect, Door: d}) {
			return
		}
	}
}

// RebuildGrid clears the broad phase and inserts every active enemy and
// projectile.
func (sc *Scene) RebuildGrid() {
	sc.Grid.Clear()
	sc.Enemies.Each(func(id ecs.EntityID, e *component.Enemy) bool {
		if e.Alive() {
			sc.Grid.Insert(e.Pos, spatial.Ref{Kind: spatial.KindEnemy, ID: id})
		}
		return true
	})
	insertShots := func(store *ecs.Store[component.Projectile], kind spatial.Kind) {
		if store == nil {
			return
		}
		store.Each(func(id ecs.EntityID, p *component.Projectile) bool {
			if p.Active {
				sc.Grid.Insert(p.Pos, spatial.Ref{Kind: kind, ID: id})
			}
			return true
		})
	}
	insertShots(sc.EnemyShots, spatial.KindEnemyShot)
	insertShots(sc.PlayerShots, spatial.KindPlayerShot)
}
