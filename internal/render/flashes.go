package render

import (
	"time"

	"roomcrawl/internal/geom"
	"roomcrawl/internal/system"
)

// flashTTL is how long a marker stays on screen.
const flashTTL = 250 * time.Millisecond

// Flash is a short-lived marker drawn over the room.
type Flash struct {
	Pos   geom.Vec2
	Glyph string
	Left  time.Duration
}

// Flashes is a sink that turns hits, kills and door events into markers.
// It is owned by the loop goroutine that also steps the session.
type Flashes struct {
	items []Flash
	max   int
}

// NewFlashes returns a sink that keeps at most limit markers.
func NewFlashes(limit int) *Flashes { return &Flashes{max: max(limit, 1)} }

var flashGlyphs = map[system.EventKind]string{
	system.EventEnemyHit:     "💥",
	system.EventEnemyKilled:  "💀",
	system.EventPlayerHit:    "💢",
	system.EventShieldBlock:  "🛡",
	system.EventPickup:       "✨",
	system.EventDoorUnlocked: "🔓",
	system.EventDoorLocked:   "🔒",
	system.EventDashHit:      "⚡",
	system.EventShotBlocked:  "·",
	system.EventItemDropped:  "🎁",
}

func (f *Flashes) Emit(e system.Event) {
	glyph, ok := flashGlyphs[e.Kind]
	if !ok {
		return
	}
	if len(f.items) >= f.max {
		f.items = f.items[1:]
	}
	f.items = append(f.items, Flash{Pos: e.Pos, Glyph: glyph, Left: flashTTL})
}

// Tick ages the markers and drops expired ones.
func (f *Flashes) Tick(dt time.Duration) {
	kept := f.items[:0]
	for _, fl := range f.items {
		fl.Left -= dt
		if fl.Left > 0 {
			kept = append(kept, fl)
		}
	}
	f.items = kept
}

// Active returns the live markers, oldest first.
func (f *Flashes) Active() []Flash { return f.items }

// Reset drops every marker, e.g. on room change.
func (f *Flashes) Reset() { f.items = f.items[:0] }
