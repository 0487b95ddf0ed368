package system

import (
	"io"
	"log/slog"
	"math/rand"
	"time"

	"roomcrawl/internal/component"
	"roomcrawl/internal/config"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/generate"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/spatial"
)

const tick = 16 * time.Millisecond

// recorder collects emitted events.
type recorder struct{ events []Event }

func (r *recorder) Emit(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(k EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func newTestScene(w, h float64, obstacles []gamemap.Obstacle, doors ...gamemap.Direction) (*Scene, *recorder) {
	rng := rand.New(rand.NewSource(42))
	t := config.Default()
	rec := &recorder{}
	shell := gamemap.NewShell(w, h, doors)
	var ds []component.Door
	for _, d := range doors {
		ds = append(ds, component.Door{Rect: shell.DoorRect(d), Dir: d, Locked: true})
	}
	return &Scene{
		Shell:       shell,
		Obstacles:   obstacles,
		Doors:       ds,
		Enemies:     ecs.NewStore[component.Enemy](),
		EnemyShots:  ecs.NewStore[component.Projectile](),
		PlayerShots: ecs.NewStore[component.Projectile](),
		Items:       ecs.NewStore[component.Item](),
		Grid:        spatial.NewGrid(t.Runtime.CellSize),
		Validator:   &generate.Validator{Rand: rng, MaxAttempts: 30, WallPadding: 30, Jitter: 20},
		Tuning:      t,
		Sink:        rec,
		Rand:        rng,
		Log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, rec
}

func newTestPlayer(sc *Scene, pos geom.Vec2) *component.Player {
	t := sc.Tuning.Player
	return &component.Player{
		Pos:    pos,
		Radius: t.Radius,
		Speed:  t.Speed,
		HP:     t.HP,
		MaxHP:  t.HP,
		Facing: geom.V(0, -1),
	}
}

func addEnemy(sc *Scene, kind component.EnemyKind, move component.Movement, pos geom.Vec2) (ecs.EntityID, *component.Enemy) {
	id := sc.Enemies.Add(component.Enemy{
		Kind:       kind,
		Move:       move,
		Pos:        pos,
		Radius:     14,
		Speed:      80,
		Aggression: 1,
		HP:         10,
		MaxHP:      10,
		Damage:     1,
		Active:     true,
	})
	return id, sc.Enemies.Get(id)
}
