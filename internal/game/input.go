package game

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"roomcrawl/internal/geom"
)

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionFireN
	ActionFireS
	ActionFireE
	ActionFireW
	ActionDash
	ActionQuit
	numActions
)

// holdWindow is how long a key press keeps its action held. Terminals only
// report presses and auto-repeat, never releases.
const holdWindow = 180 * time.Millisecond

// keyToAction maps a tcell key event to a game action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'w', 'W':
		return ActionMoveN
	case 's', 'S':
		return ActionMoveS
	case 'd', 'D':
		return ActionMoveE
	case 'a', 'A':
		return ActionMoveW
	case 'i', 'I':
		return ActionFireN
	case 'k', 'K':
		return ActionFireS
	case 'l', 'L':
		return ActionFireE
	case 'j', 'J':
		return ActionFireW
	case ' ':
		return ActionDash
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a move or fire action to a unit direction.
func actionToDelta(a Action) geom.Vec2 {
	switch a {
	case ActionMoveN, ActionFireN:
		return geom.V(0, -1)
	case ActionMoveS, ActionFireS:
		return geom.V(0, 1)
	case ActionMoveE, ActionFireE:
		return geom.V(1, 0)
	case ActionMoveW, ActionFireW:
		return geom.V(-1, 0)
	}
	return geom.Vec2{}
}

// heldKeys turns discrete key presses into a held-input snapshot.
type heldKeys struct {
	until [numActions]time.Time
	dash  bool
}

// press records a key press at now.
func (h *heldKeys) press(a Action, now time.Time) {
	if a == ActionDash {
		h.dash = true
		return
	}
	if a < numActions {
		h.until[a] = now.Add(holdWindow)
	}
}

func (h *heldKeys) held(a Action, now time.Time) bool { return now.Before(h.until[a]) }

// snapshot builds the Input for a tick at now. A dash press is consumed by
// the first snapshot after it.
func (h *heldKeys) snapshot(now time.Time) Input {
	var in Input
	for a := ActionMoveN; a <= ActionMoveW; a++ {
		if h.held(a, now) {
			in.Move = in.Move.Add(actionToDelta(a))
		}
	}
	for a := ActionFireN; a <= ActionFireW; a++ {
		if h.held(a, now) {
			in.Aim = in.Aim.Add(actionToDelta(a))
			in.Fire = true
		}
	}
	if in.Fire && in.Aim.IsZero() {
		in.Fire = false
	}
	in.Dash = h.dash
	h.dash = false
	return in
}

// reset drops every held key.
func (h *heldKeys) reset() { *h = heldKeys{} }
