// Package room runs one room at a time: it materializes a RoomSpec into live
// entities, advances them every tick and drives the door state machine.
package room

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"

	"roomcrawl/internal/component"
	"roomcrawl/internal/config"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/generate"
	"roomcrawl/internal/spatial"
	"roomcrawl/internal/system"
)

// State is the room's position in the clear sequence.
type State uint8

const (
	StateActive   State = iota // at least one enemy alive
	StateClearing              // last enemy died, doors being rolled
	StateOpen                  // terminal: doors unlocked
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateClearing:
		return "clearing"
	default:
		return "open"
	}
}

// Options tune how a spec is instantiated.
type Options struct {
	// Entry is the side the player came in through, NoDirection for the
	// first room of a floor.
	Entry gamemap.Direction
	// Cleared instantiates a previously cleared room: no enemies, no items,
	// every door open.
	Cleared bool
	// Links are the graph edges of this room, used as door targets.
	Links map[gamemap.Direction]int
}

// Runtime owns the live state of the active room.
type Runtime struct {
	Spec    *generate.RoomSpec
	Shell   *gamemap.Shell
	Doors   []component.Door
	Enemies *ecs.Store[component.Enemy]
	Shots   *ecs.Store[component.Projectile] // enemy shots
	Items   *ecs.Store[component.Item]

	state  State
	entry  gamemap.Direction
	opened []gamemap.Direction
	rolled bool
	pinned mapset.Set[ecs.EntityID] // fallback-placed items, exempt from repair

	tuning *config.Tuning
	rng    *rand.Rand
	log    *slog.Logger
	sink   system.Sink
	scene  *system.Scene
}

// New materializes spec. Malformed enemy specs are skipped; a combat room
// left without enemies gets a small fallback group.
func New(spec *generate.RoomSpec, opts Options, tuning *config.Tuning, rng *rand.Rand, logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runtime{
		Spec:    spec,
		Shell:   spec.Shell(),
		Enemies: ecs.NewStore[component.Enemy](),
		Shots:   ecs.NewStore[component.Projectile](),
		Items:   ecs.NewStore[component.Item](),
		entry:   opts.Entry,
		pinned:  mapset.New[ecs.EntityID](),
		tuning:  tuning,
		rng:     rng,
		log:     logger.With("room", spec.ID, "kind", spec.Kind.String()),
		sink:    system.NopSink{},
	}
	for _, d := range gamemap.Directions {
		rect, ok := r.Shell.Doors[d]
		if !ok {
			continue
		}
		door := component.Door{Rect: rect, Dir: d, Locked: true}
		if n, ok := opts.Links[d]; ok {
			door.Target, door.HasTarget = n, true
		}
		r.Doors = append(r.Doors, door)
	}
	r.scene = &system.Scene{
		Shell:      r.Shell,
		Obstacles:  spec.Obstacles,
		Doors:      r.Doors,
		Enemies:    r.Enemies,
		EnemyShots: r.Shots,
		Items:      r.Items,
		Grid:       spatial.NewGrid(tuning.Runtime.CellSize),
		Validator: &generate.Validator{
			Rand:        rng,
			MaxAttempts: tuning.Spawn.MaxAttempts,
			WallPadding: tuning.Spawn.WallPadding,
			Jitter:      tuning.Spawn.Jitter,
		},
		Tuning: tuning,
		Rand:   rng,
		Log:    r.log,
	}

	if opts.Cleared || spec.Kind == generate.RoomStart {
		r.unlockAll()
		return r
	}
	r.spawnItems(spec.Items)
	if r.spawnEnemies(spec.Enemies) == 0 {
		r.log.Warn("room has no enemies, spawning fallback group", "specs", len(spec.Enemies))
		r.spawnFallback()
	}
	return r
}

// State returns the current clear state.
func (r *Runtime) State() State { return r.state }

// Entry is the side the player entered through.
func (r *Runtime) Entry() gamemap.Direction { return r.entry }

// Alive counts the enemies that still block the clear.
func (r *Runtime) Alive() int {
	n := 0
	r.Enemies.Each(func(_ ecs.EntityID, e *component.Enemy) bool {
		if e.Alive() {
			n++
		}
		return true
	})
	return n
}

// Scene exposes the per-tick handle, e.g. for firing player shots.
func (r *Runtime) Scene(playerShots *ecs.Store[component.Projectile], sink system.Sink) *system.Scene {
	if sink == nil {
		sink = system.NopSink{}
	}
	r.sink = sink
	r.scene.PlayerShots = playerShots
	r.scene.Sink = sink
	return r.scene
}

// Update advances the room by dt: steering, movement, contacts, shots,
// pickups and finally the clear sequence, which runs to completion within
// the tick the last enemy dies in.
func (r *Runtime) Update(dt time.Duration, player *component.Player, playerShots *ecs.Store[component.Projectile], sink system.Sink) {
	sc := r.Scene(playerShots, sink)

	system.TickPlayer(player, dt)
	system.ProcessAI(sc, player, dt)
	system.MoveEnemies(sc, dt)
	sc.RebuildGrid()
	system.Separate(sc)
	system.MovePlayer(sc, player, dt)
	system.PlayerContacts(sc, player)
	system.StepProjectiles(sc, playerShots, player, dt)
	system.StepProjectiles(sc, r.Shots, player, dt)
	r.repairItems()
	system.CollectItems(sc, player)
	system.TickDying(sc, dt)

	r.Enemies.Compact()
	r.Shots.Compact()
	if playerShots != nil {
		playerShots.Compact()
	}
	r.advance()
}

func (r *Runtime) advance() {
	if r.state == StateActive && r.Alive() == 0 {
		r.state = StateClearing
		system.Emit(r.sink, system.Event{Kind: system.EventRoomCleared, Pos: r.Shell.Interior().Center()})
	}
	if r.state == StateClearing {
		r.OpenDoors(r.entry)
		r.state = StateOpen
	}
}

func (r *Runtime) unlockAll() {
	for i := range r.Doors {
		r.Doors[i].Locked = false
		r.opened = append(r.opened, r.Doors[i].Dir)
	}
	r.rolled = true
	r.state = StateOpen
}
