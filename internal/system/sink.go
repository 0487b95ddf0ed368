package system

import (
	"roomcrawl/internal/component"
	"roomcrawl/internal/geom"
)

// EventKind identifies a presentation-worthy moment in the simulation.
type EventKind uint8

const (
	EventEnemyHit EventKind = iota
	EventEnemyKilled
	EventPlayerHit
	EventShieldBlock
	EventPickup
	EventDoorUnlocked
	EventDoorLocked
	EventDash
	EventDashHit
	EventRoomCleared
	EventRoomEnter
	EventPlayerShot
	EventEnemyShot
	EventShotBlocked
	EventItemDropped
	EventPlayerDied
	EventFloorCleared
)

var eventNames = [...]string{
	"enemy_hit", "enemy_killed", "player_hit", "shield_block", "pickup",
	"door_unlocked", "door_locked", "dash", "dash_hit", "room_cleared",
	"room_enter", "player_shot", "enemy_shot", "shot_blocked", "item_dropped",
	"player_died", "floor_cleared",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is the payload handed to sinks. Only the fields relevant to Kind
// are set.
type Event struct {
	Kind   EventKind
	Pos    geom.Vec2
	Amount int
	Enemy  component.EnemyKind
	Item   component.ItemEffect
}

// Sink receives simulation events. Implementations must not call back into
// the simulation; their results are never consulted.
type Sink interface {
	Emit(Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// Sinks fans an event out to several sinks, isolating each from the others.
type Sinks []Sink

func (s Sinks) Emit(e Event) {
	for _, sink := range s {
		Emit(sink, e)
	}
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// Emit delivers e to s. A nil sink is a no-op and a panicking sink is
// recovered so it cannot take the tick down with it.
func Emit(s Sink, e Event) {
	if s == nil {
		return
	}
	defer func() { _ = recover() }()
	s.Emit(e)
}
