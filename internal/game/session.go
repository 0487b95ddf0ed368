package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"

	"roomcrawl/assets"
	"roomcrawl/internal/component"
	"roomcrawl/internal/config"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/generate"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/room"
	"roomcrawl/internal/system"
)

// TransitionState guards room changes against door bouncing.
type TransitionState uint8

const (
	TransitionIdle TransitionState = iota
	TransitionCooldown
)

// Outcome is the run's end state.
type Outcome uint8

const (
	OutcomePlaying Outcome = iota
	OutcomeDead
	OutcomeVictory
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDead:
		return "defeat"
	case OutcomeVictory:
		return "victory"
	default:
		return "playing"
	}
}

// Input is the player's intent for one tick.
type Input struct {
	Move geom.Vec2 // any length, normalized before use
	Aim  geom.Vec2 // zero aims along the facing
	Fire bool
	Dash bool
}

// Session is the headless core of a run: one player walking a dungeon
// floor by floor. Both front ends drive it through Step.
type Session struct {
	Player component.Player
	Shots  *ecs.Store[component.Projectile] // player shots of the current room

	tuning  *config.Tuning
	rng     *rand.Rand
	log     *slog.Logger
	sink    system.Sink
	run     *RunLog
	floor   int
	dungeon *generate.Dungeon
	room    *room.Runtime
	roomID  int
	// origin is the graph room an ad-hoc room was entered from.
	origin  int
	cleared mapset.Set[int]

	transition TransitionState
	cooldown   time.Duration
	advance    time.Duration // floor advance countdown, 0 when idle
	outcome    Outcome
	elapsed    time.Duration
	messages   []string
}

// NewSession builds floor one and puts the player in its start room.
func NewSession(tuning *config.Tuning, rng *rand.Rand, sink system.Sink, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		tuning: tuning,
		rng:    rng,
		log:    logger,
		run:    newRunLog(0),
	}
	if sink == nil {
		sink = system.NopSink{}
	}
	s.sink = system.Sinks{s.run, system.SinkFunc(s.notify), sink}

	t := tuning.Player
	s.Player = component.Player{
		Radius: t.Radius,
		Speed:  t.Speed,
		HP:     t.HP,
		MaxHP:  t.HP,
		Facing: geom.V(0, -1),
	}
	s.loadFloor(1)
	return s
}

// Step advances the run by dt with the given input.
func (s *Session) Step(dt time.Duration, in Input) {
	if s.outcome != OutcomePlaying {
		return
	}
	s.elapsed += dt
	s.applyInput(in)

	wasOpen := s.room.State() == room.StateOpen
	s.room.Update(dt, &s.Player, s.Shots, s.sink)

	if s.Player.Dead() {
		s.finish(OutcomeDead)
		return
	}
	if !wasOpen && s.room.State() == room.StateOpen {
		s.onRoomCleared()
	}
	if s.advance > 0 {
		s.advance -= dt
		if s.advance <= 0 {
			s.advance = 0
			s.nextFloor()
		}
		return
	}

	switch s.transition {
	case TransitionCooldown:
		s.cooldown -= dt
		if s.cooldown <= 0 {
			s.cooldown = 0
			s.transition = TransitionIdle
		}
	case TransitionIdle:
		if exit := s.room.CheckExit(&s.Player); exit != nil {
			s.transit(exit)
			s.transition = TransitionCooldown
			s.cooldown = s.tuning.Runtime.TransitionCooldown
		}
	}
}

func (s *Session) applyInput(in Input) {
	p := &s.Player
	if p.Knockback <= 0 {
		p.Vel = in.Move.Normalize().Scale(p.Speed)
	}
	if in.Dash && system.StartDash(p, in.Move, &s.tuning.Player) {
		system.Emit(s.sink, system.Event{Kind: system.EventDash, Pos: p.Pos})
	}
	if in.Fire {
		aim := in.Aim
		if aim.IsZero() {
			aim = p.Facing
		}
		system.PlayerFire(s.room.Scene(s.Shots, s.sink), p, aim)
	}
}

// notify turns the events the player should read about into messages.
func (s *Session) notify(e system.Event) {
	switch e.Kind {
	case system.EventPickup:
		def := assets.Items[e.Item]
		s.addMessage(fmt.Sprintf("%s %s: %s.", assets.ItemGlyph(e.Item), assets.ItemName(e.Item), def.Desc))
	case system.EventDoorLocked:
		s.addMessage("The door is sealed until the room is clear.")
	case system.EventShieldBlock:
		s.addMessage("The shield absorbs the blow.")
	case system.EventPlayerDied:
		s.addMessage("You fall.")
	}
}

func (s *Session) onRoomCleared() {
	s.addMessage("The doors grind open.")
	if s.roomID == generate.AdHocID {
		return
	}
	s.cleared.Put(s.roomID)
	floorDone := s.roomID == s.dungeon.Boss
	if s.dungeon.Boss < 0 {
		floorDone = s.cleared.Size() == len(s.dungeon.Rooms)
	}
	if floorDone {
		s.addMessage("The floor is clear.")
		system.Emit(s.sink, system.Event{Kind: system.EventFloorCleared, Amount: s.floor})
		s.advance = max(s.tuning.Runtime.FloorAdvanceDelay, time.Nanosecond)
	}
}

// transit moves the player through exit. Doors without a graph edge lead to
// an ad-hoc room; any door out of an ad-hoc room leads back to where the
// player came from.
func (s *Session) transit(exit *room.ExitInfo) {
	entry := exit.Direction.Opposite()
	if s.roomID == generate.AdHocID {
		s.enter(s.origin, entry)
	} else if next, ok := s.dungeon.NeighborOf(s.roomID, exit.Direction); ok {
		s.enter(next, entry)
	} else {
		s.log.Warn("no room behind door, generating ad-hoc room",
			"floor", s.floor, "room", s.roomID, "door", exit.Direction.String())
		s.origin = s.roomID
		cfg := LevelConfig(s.floor, s.tuning, s.rng)
		spec := generate.AdHocRoom(cfg, s.room.Spec.Difficulty)
		s.run.AdHocRooms++
		s.addMessage("This passage leads somewhere unmapped.")
		s.setRoom(spec, generate.AdHocID, room.Options{Entry: entry})
	}
	s.Player.Pos = exit.EntryPoint
	s.Player.Vel = geom.Vec2{}
	s.Player.Dash.Active = false
}

// enter loads graph room id with the player coming in through entry.
func (s *Session) enter(id int, entry gamemap.Direction) {
	spec, ok := s.dungeon.Rooms[id]
	if !ok {
		s.log.Error("dungeon room missing", "floor", s.floor, "room", id)
		spec = s.dungeon.Rooms[s.dungeon.Start]
		id = s.dungeon.Start
	}
	s.setRoom(spec, id, room.Options{
		Entry:   entry,
		Cleared: s.cleared.Has(id),
		Links:   s.dungeon.Links[id],
	})
}

func (s *Session) setRoom(spec *generate.RoomSpec, id int, opts room.Options) {
	s.roomID = id
	s.room = room.New(spec, opts, s.tuning, s.rng, s.log)
	s.Shots = ecs.NewStore[component.Projectile]()
	system.Emit(s.sink, system.Event{Kind: system.EventRoomEnter, Amount: id})
	s.log.Debug("room entered", "floor", s.floor, "room", id, "kind", spec.Kind.String(), "template", spec.Template.String())
}

func (s *Session) loadFloor(floor int) {
	s.floor = floor
	s.run.FloorsReached = max(s.run.FloorsReached, floor)
	cfg := LevelConfig(floor, s.tuning, s.rng)
	s.dungeon = generate.BuildDungeon(cfg)
	if err := s.dungeon.Validate(); err != nil {
		s.log.Error("dungeon failed validation", "floor", floor, "err", err)
	}
	s.cleared = mapset.New[int]()
	s.transition = TransitionIdle
	s.cooldown = 0
	s.enter(s.dungeon.Start, gamemap.NoDirection)
	s.Player.Pos = s.room.Shell.Interior().Center()
	s.cleared.Put(s.dungeon.Start)
	s.addMessage(fmt.Sprintf("Floor %d: %s.", floor, assets.FloorName(floor)))
	if line := assets.Lore(floor, s.rng); line != "" {
		s.addMessage(line)
	}
	s.log.Info("floor generated", "floor", floor, "rooms", len(s.dungeon.Rooms), "boss", s.dungeon.Boss)
}

func (s *Session) nextFloor() {
	if s.floor >= s.tuning.Dungeon.MaxFloors {
		s.finish(OutcomeVictory)
		return
	}
	s.loadFloor(s.floor + 1)
}

func (s *Session) finish(o Outcome) {
	s.outcome = o
	s.run.Outcome = o.String()
	s.run.Seconds = s.elapsed.Seconds()
	s.log.Info("run finished", "outcome", o.String(), "floor", s.floor, "kills", s.run.TotalKills())
}

func (s *Session) addMessage(msg string) {
	s.messages = append(s.messages, msg)
	if len(s.messages) > 50 {
		s.messages = s.messages[len(s.messages)-50:]
	}
}

// Room returns the active room.
func (s *Session) Room() *room.Runtime { return s.room }

// RoomID returns the graph id of the active room, or generate.AdHocID.
func (s *Session) RoomID() int { return s.roomID }

// Floor returns the current floor number.
func (s *Session) Floor() int { return s.floor }

// Dungeon returns the current floor's graph.
func (s *Session) Dungeon() *generate.Dungeon { return s.dungeon }

// Cleared reports whether graph room id has been cleared on this floor.
func (s *Session) Cleared(id int) bool { return s.cleared.Has(id) }

// Transition returns the transition machine state.
func (s *Session) Transition() TransitionState { return s.transition }

// Outcome returns the run outcome so far.
func (s *Session) Outcome() Outcome { return s.outcome }

// Run returns the statistics of this run.
func (s *Session) Run() *RunLog { return s.run }

// Messages returns the message log, oldest first.
func (s *Session) Messages() []string { return s.messages }

// Advancing reports whether the floor has been cleared and the next one is
// about to load.
func (s *Session) Advancing() bool { return s.advance > 0 }
