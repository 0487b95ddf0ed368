package game

import (
	"bytes"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"roomcrawl/internal/component"
	"roomcrawl/internal/config"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/generate"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/room"
	"roomcrawl/internal/system"
)

const tick = 16 * time.Millisecond

type recorder struct{ events []system.Event }

func (r *recorder) Emit(e system.Event) { r.events = append(r.events, e) }

func (r *recorder) count(k system.EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T, tuning *config.Tuning, seed int64) (*Session, *recorder) {
	t.Helper()
	if tuning == nil {
		tuning = config.Default()
	}
	rec := &recorder{}
	s := NewSession(tuning, rand.New(rand.NewSource(seed)), rec, discardLogger())
	return s, rec
}

// atDoor returns a player position touching the door on side dir from the
// inside.
func atDoor(s *Session, dir gamemap.Direction) geom.Vec2 {
	d, _ := s.Room().Door(dir)
	dx, dy := dir.Delta()
	return d.Rect.Center().Sub(geom.V(float64(dx), float64(dy)).Scale(s.Player.Radius))
}

// linkedDoor returns a side of the current room with a graph edge behind it.
func linkedDoor(t *testing.T, s *Session) (gamemap.Direction, int) {
	t.Helper()
	for _, dir := range gamemap.Directions {
		if n, ok := s.Dungeon().NeighborOf(s.RoomID(), dir); ok {
			return dir, n
		}
	}
	t.Fatalf("room %d has no neighbor", s.RoomID())
	return gamemap.NoDirection, 0
}

func killRoom(s *Session) {
	sc := s.Room().Scene(s.Shots, nil)
	s.Room().Enemies.Each(func(_ ecs.EntityID, e *component.Enemy) bool {
		if e.Alive() {
			system.HitEnemy(sc, e, e.HP, e.Pos.Add(geom.V(-1, 0)))
		}
		return true
	})
}

func TestNewSessionStartsInOpenStartRoom(t *testing.T) {
	s, rec := newTestSession(t, nil, 1)
	if s.Floor() != 1 {
		t.Errorf("Floor = %d; want 1", s.Floor())
	}
	if s.RoomID() != s.Dungeon().Start {
		t.Errorf("RoomID = %d; want start %d", s.RoomID(), s.Dungeon().Start)
	}
	if s.Room().State() != room.StateOpen {
		t.Errorf("start room state = %v; want open", s.Room().State())
	}
	if !s.Cleared(s.Dungeon().Start) {
		t.Error("start room should count as cleared")
	}
	if s.Room().Alive() != 0 {
		t.Errorf("start room has %d enemies", s.Room().Alive())
	}
	if s.Outcome() != OutcomePlaying {
		t.Errorf("Outcome = %v", s.Outcome())
	}
	if rec.count(system.EventRoomEnter) != 1 {
		t.Errorf("room enter events = %d; want 1", rec.count(system.EventRoomEnter))
	}
	if len(s.Messages()) == 0 || !strings.HasPrefix(s.Messages()[0], "Floor 1") {
		t.Errorf("messages = %v", s.Messages())
	}
	if !s.Room().Shell.Interior().Contains(s.Player.Pos) {
		t.Errorf("player at %v is outside the interior", s.Player.Pos)
	}
}

func TestTransitionFollowsGraphEdge(t *testing.T) {
	s, _ := newTestSession(t, nil, 2)
	dir, next := linkedDoor(t, s)
	s.Player.Pos = atDoor(s, dir)
	s.Step(tick, Input{})

	if s.RoomID() != next {
		t.Fatalf("RoomID = %d; want %d", s.RoomID(), next)
	}
	if s.Transition() != TransitionCooldown {
		t.Errorf("Transition = %v; want cooldown", s.Transition())
	}
	if s.Room().Entry() != dir.Opposite() {
		t.Errorf("entry = %v; want %v", s.Room().Entry(), dir.Opposite())
	}
	want := s.Room().Shell.EntryPoint(dir.Opposite(), s.Player.Radius)
	if s.Player.Pos != want {
		t.Errorf("player at %v; want entry point %v", s.Player.Pos, want)
	}
	if s.Room().State() != room.StateActive {
		t.Errorf("fresh combat room state = %v; want active", s.Room().State())
	}
}

func TestTransitionCooldownBlocksBounce(t *testing.T) {
	s, _ := newTestSession(t, nil, 3)
	start := s.RoomID()
	dir, next := linkedDoor(t, s)
	// A cleared room comes back open and empty.
	s.cleared.Put(next)

	s.Player.Pos = atDoor(s, dir)
	s.Step(tick, Input{})
	if s.RoomID() != next {
		t.Fatalf("RoomID = %d; want %d", s.RoomID(), next)
	}
	if s.Room().State() != room.StateOpen {
		t.Fatalf("cleared room state = %v; want open", s.Room().State())
	}

	back := dir.Opposite()
	cooldown := s.tuning.Runtime.TransitionCooldown
	var elapsed time.Duration
	for elapsed+tick < cooldown {
		s.Player.Pos = atDoor(s, back)
		s.Step(tick, Input{})
		elapsed += tick
		if s.RoomID() != next {
			t.Fatalf("bounced back after %v, cooldown is %v", elapsed, cooldown)
		}
	}

	for range 5 {
		s.Player.Pos = atDoor(s, back)
		s.Step(tick, Input{})
		if s.RoomID() == start {
			break
		}
	}
	if s.RoomID() != start {
		t.Errorf("RoomID = %d; want to be back in %d after the cooldown", s.RoomID(), start)
	}
}

func TestAdHocRoomReturnsToOrigin(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(config.Default(), rand.New(rand.NewSource(4)), nil, slog.New(slog.NewTextHandler(&buf, nil)))
	origin := s.RoomID()

	dead := gamemap.NoDirection
	for _, dir := range gamemap.Directions {
		if _, ok := s.Dungeon().NeighborOf(origin, dir); !ok {
			dead = dir
			break
		}
	}
	if dead == gamemap.NoDirection {
		t.Fatal("start room has no dead side")
	}

	entry := s.Room().Shell.EntryPoint(dead.Opposite(), s.Player.Radius)
	s.transit(&room.ExitInfo{Direction: dead, EntryPoint: entry})
	if s.RoomID() != generate.AdHocID {
		t.Fatalf("RoomID = %d; want ad-hoc", s.RoomID())
	}
	if s.Run().AdHocRooms != 1 {
		t.Errorf("AdHocRooms = %d; want 1", s.Run().AdHocRooms)
	}
	if !strings.Contains(buf.String(), "ad-hoc") {
		t.Errorf("expected an ad-hoc warning, log: %q", buf.String())
	}
	if len(s.Room().Doors) != 4 {
		t.Errorf("ad-hoc room has %d doors; want 4", len(s.Room().Doors))
	}

	// Clearing an ad-hoc room does not count towards the floor.
	killRoom(s)
	s.Step(tick, Input{})
	if s.Room().State() != room.StateOpen {
		t.Fatalf("ad-hoc room state = %v; want open", s.Room().State())
	}
	if s.Advancing() {
		t.Error("an ad-hoc room must not finish the floor")
	}

	out := s.Room().Doors[0].Dir
	s.transit(&room.ExitInfo{Direction: out, EntryPoint: entry})
	if s.RoomID() != origin {
		t.Errorf("RoomID = %d; want origin %d", s.RoomID(), origin)
	}
}

func TestFloorAdvanceAndVictory(t *testing.T) {
	tuning := config.Default()
	tuning.Dungeon.Rooms = 2
	tuning.Dungeon.RoomsPerFloor = 0
	tuning.Dungeon.Boss = false
	tuning.Dungeon.MaxFloors = 2
	tuning.Runtime.FloorAdvanceDelay = 50 * time.Millisecond
	s, rec := newTestSession(t, tuning, 5)

	for floor := 1; floor <= 2; floor++ {
		if s.Floor() != floor {
			t.Fatalf("Floor = %d; want %d", s.Floor(), floor)
		}
		if n := len(s.Dungeon().Rooms); n != 2 {
			t.Fatalf("floor %d has %d rooms; want 2", floor, n)
		}
		dir, next := linkedDoor(t, s)
		s.Player.Pos = atDoor(s, dir)
		s.Step(tick, Input{})
		if s.RoomID() != next {
			t.Fatalf("RoomID = %d; want %d", s.RoomID(), next)
		}
		killRoom(s)
		s.Step(tick, Input{})
		if !s.Cleared(next) {
			t.Fatalf("room %d not marked cleared", next)
		}
		if !s.Advancing() {
			t.Fatalf("floor %d should be advancing", floor)
		}
		for range 10 {
			s.Step(tick, Input{})
		}
	}

	if s.Outcome() != OutcomeVictory {
		t.Errorf("Outcome = %v; want victory", s.Outcome())
	}
	if s.Run().Outcome != "victory" || s.Run().FloorsReached != 2 {
		t.Errorf("run log = %+v", s.Run())
	}
	if rec.count(system.EventFloorCleared) != 2 {
		t.Errorf("floor cleared events = %d; want 2", rec.count(system.EventFloorCleared))
	}
}

func TestDeathEndsRun(t *testing.T) {
	s, _ := newTestSession(t, nil, 6)
	s.Step(tick, Input{})
	s.Player.HP = 0
	s.Step(tick, Input{})
	if s.Outcome() != OutcomeDead {
		t.Fatalf("Outcome = %v; want dead", s.Outcome())
	}
	if s.Run().Outcome != "defeat" {
		t.Errorf("run outcome = %q", s.Run().Outcome)
	}
	elapsed := s.elapsed
	s.Step(tick, Input{Move: geom.V(1, 0)})
	if s.elapsed != elapsed {
		t.Error("a finished run must not advance")
	}
}

func TestDashInputEmitsOnce(t *testing.T) {
	s, rec := newTestSession(t, nil, 7)
	s.Step(tick, Input{Move: geom.V(1, 0), Dash: true})
	if !s.Player.Dash.Active {
		t.Fatal("dash did not start")
	}
	s.Step(tick, Input{Move: geom.V(1, 0), Dash: true})
	if got := rec.count(system.EventDash); got != 1 {
		t.Errorf("dash events = %d; want 1 while on cooldown", got)
	}
}

func TestFireInputSpawnsShot(t *testing.T) {
	s, rec := newTestSession(t, nil, 8)
	s.Step(tick, Input{Fire: true, Aim: geom.V(0, -1)})
	if s.Shots.Len() != 1 {
		t.Fatalf("shots = %d; want 1", s.Shots.Len())
	}
	if rec.count(system.EventPlayerShot) != 1 {
		t.Errorf("shot events = %d; want 1", rec.count(system.EventPlayerShot))
	}
	// The cooldown holds the next shot back.
	s.Step(tick, Input{Fire: true, Aim: geom.V(0, -1)})
	if rec.count(system.EventPlayerShot) != 1 {
		t.Errorf("shot events = %d; want 1 during cooldown", rec.count(system.EventPlayerShot))
	}
}

func TestMoveInputIsNormalized(t *testing.T) {
	s, _ := newTestSession(t, nil, 9)
	start := s.Player.Pos
	s.Step(100*time.Millisecond, Input{Move: geom.V(3, 4)})
	moved := s.Player.Pos.Sub(start).Len()
	want := s.Player.Speed * 0.1
	if moved < want-0.01 || moved > want+0.01 {
		t.Errorf("moved %.3f; want %.3f", moved, want)
	}
}

func TestHitStunIgnoresMoveInput(t *testing.T) {
	s, _ := newTestSession(t, nil, 9)
	s.Player.Knockback = s.tuning.Player.HitStun
	start := s.Player.Pos
	s.Step(tick, Input{Move: geom.V(1, 0)})
	if s.Player.Pos != start {
		t.Errorf("stunned player moved from %v to %v", start, s.Player.Pos)
	}
	s.Step(s.tuning.Player.HitStun, Input{})
	s.Step(tick, Input{Move: geom.V(1, 0)})
	if s.Player.Pos.X <= start.X {
		t.Errorf("player should move once the stun is over, x=%v", s.Player.Pos.X)
	}
}

func TestPickupAndLockedDoorMessages(t *testing.T) {
	s, _ := newTestSession(t, nil, 10)
	s.sink.Emit(system.Event{Kind: system.EventPickup, Item: component.EffectShield})
	s.sink.Emit(system.Event{Kind: system.EventDoorLocked})
	msgs := s.Messages()
	if len(msgs) < 2 {
		t.Fatalf("messages = %v", msgs)
	}
	if !strings.Contains(msgs[len(msgs)-2], "absorbs the next hit") {
		t.Errorf("pickup message = %q", msgs[len(msgs)-2])
	}
	if !strings.Contains(msgs[len(msgs)-1], "sealed") {
		t.Errorf("locked door message = %q", msgs[len(msgs)-1])
	}
}
