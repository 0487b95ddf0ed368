package room

import (
	"roomcrawl/internal/component"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/system"
)

// ExitInfo describes the door the player is leaving through.
type ExitInfo struct {
	Direction gamemap.Direction
	// TargetRoomHint is the neighbor room id behind the door; HasTarget is
	// false when the graph has no edge there.
	TargetRoomHint int
	HasTarget      bool
	// EntryPoint is where the player appears in the next room.
	EntryPoint geom.Vec2
}

// OpenDoors unlocks a rolled number of doors (one, two or three by the
// configured weights), preferring doors that lead somewhere and keeping the
// exclude side locked unless too few other doors exist. The first call
// decides; later calls return the same set.
func (r *Runtime) OpenDoors(exclude gamemap.Direction) []gamemap.Direction {
	if r.rolled {
		return append([]gamemap.Direction(nil), r.opened...)
	}
	r.rolled = true
	want := min(r.rollDoorCount(), len(r.Doors))

	var linked, dead, excluded []int
	for i, d := range r.Doors {
		switch {
		case d.Dir == exclude:
			excluded = append(excluded, i)
		case d.HasTarget:
			linked = append(linked, i)
		default:
			dead = append(dead, i)
		}
	}
	r.rng.Shuffle(len(linked), func(i, j int) { linked[i], linked[j] = linked[j], linked[i] })
	r.rng.Shuffle(len(dead), func(i, j int) { dead[i], dead[j] = dead[j], dead[i] })
	order := append(append(linked, dead...), excluded...)

	for _, i := range order[:want] {
		d := &r.Doors[i]
		d.Locked = false
		r.opened = append(r.opened, d.Dir)
		system.Emit(r.sink, system.Event{Kind: system.EventDoorUnlocked, Pos: d.Rect.Center()})
	}
	r.log.Debug("doors opened", "count", len(r.opened), "doors", r.opened)
	return append([]gamemap.Direction(nil), r.opened...)
}

// rollDoorCount returns 1, 2 or 3 drawn with the configured weights.
func (r *Runtime) rollDoorCount() int {
	weights := r.tuning.Runtime.DoorWeights
	total := 0.0
	for _, w := range weights {
		total += max(w, 0)
	}
	if total <= 0 {
		return 1
	}
	x := r.rng.Float64() * total
	for i, w := range weights {
		w = max(w, 0)
		if x < w {
			return i + 1
		}
		x -= w
	}
	return len(weights)
}

// CheckExit reports the unlocked door the player is touching, if any. It
// does not change any state.
func (r *Runtime) CheckExit(player *component.Player) *ExitInfo {
	body := player.Circle()
	for _, d := range r.Doors {
		if d.Locked || !geom.CircleRect(body, d.Rect) {
			continue
		}
		return &ExitInfo{
			Direction:      d.Dir,
			TargetRoomHint: d.Target,
			HasTarget:      d.HasTarget,
			EntryPoint:     r.Shell.EntryPoint(d.Dir.Opposite(), player.Radius),
		}
	}
	return nil
}

// Door returns the door on side dir.
func (r *Runtime) Door(dir gamemap.Direction) (component.Door, bool) {
	for _, d := range r.Doors {
		if d.Dir == dir {
			return d, true
		}
	}
	return component.Door{}, false
}
