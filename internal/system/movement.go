package system

import (
	"math"
	"time"

	"github.com/zyedidia/generic/mapset"

	"roomcrawl/internal/component"
	"roomcrawl/internal/config"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/spatial"
)

// TickPlayer counts down the player's timers.
func TickPlayer(p *component.Player, dt time.Duration) {
	dec := func(d *time.Duration) {
		if *d > 0 {
			*d = max(*d-dt, 0)
		}
	}
	dec(&p.Invuln)
	dec(&p.Knockback)
	dec(&p.FireCooldown)
	dec(&p.Shield)
	dec(&p.LockedNotice)
	dec(&p.Dash.Cooldown)
}

// StartDash begins a dash in dir, or along the facing when dir is zero. It
// reports false while the dash is cooling down or already running.
func StartDash(p *component.Player, dir geom.Vec2, t *config.Player) bool {
	if p.Dash.Active || p.Dash.Cooldown > 0 {
		return false
	}
	if dir.IsZero() {
		dir = p.Facing
	}
	dir = dir.Normalize()
	if dir.IsZero() {
		dir = geom.V(0, -1)
	}
	p.Dash = component.Dash{
		Active:    true,
		Dir:       dir,
		Remaining: t.DashDuration,
		Cooldown:  t.DashCooldown,
		Hits:      mapset.New[ecs.EntityID](),
	}
	return true
}

// substeps splits a move of length dist into steps no longer than step.
func substeps(dist, step float64) int {
	if step <= 0 || dist <= step {
		return 1
	}
	return int(math.Ceil(dist / step))
}

// MovePlayer integrates the player for one tick. Dashes override the input
// velocity. The move is cut into substeps and each substep is resolved
// against the static geometry so a fast body cannot tunnel through a wall.
// Dash contacts are checked per substep as well.
func MovePlayer(sc *Scene, p *component.Player, dt time.Duration) {
	vel := p.Vel
	dashing := p.Dash.Active
	if dashing {
		vel = p.Dash.Dir.Scale(p.Speed * sc.Tuning.Player.DashMultiplier)
	}
	secs := dt.Seconds()
	n := substeps(vel.Len()*secs, sc.Tuning.Runtime.SubstepLength)
	step := vel.Scale(secs / float64(n))

	locked := false
	for range n {
		p.Pos = p.Pos.Add(step)
		if ResolveStatic(sc, &p.Pos, &vel, p.Radius, geom.ResponseStop) {
			locked = true
		}
		step = vel.Scale(secs / float64(n))
		if dashing {
			dashContacts(sc, p)
		}
	}
	if !dashing {
		p.Vel = vel
	}
	if !vel.IsZero() {
		p.Facing = vel.Normalize()
	}

	if dashing {
		p.Dash.Remaining -= dt
		if p.Dash.Remaining <= 0 {
			p.Dash.Active = false
			p.Dash.Remaining = 0
			// The body may still overlap what it just hit.
			p.Invuln = max(p.Invuln, sc.Tuning.Player.DashGrace)
		}
	}
	if locked && p.LockedNotice <= 0 {
		p.LockedNotice = sc.Tuning.Runtime.LockedNotice
		sc.emit(Event{Kind: EventDoorLocked, Pos: p.Pos})
	}
}

// ResolveStatic pushes a body out of every wall, obstacle and locked door it
// overlaps. It reports whether a locked door was touched.
func ResolveStatic(sc *Scene, pos, vel *geom.Vec2, radius float64, resp geom.Response) bool {
	locked := false
	// A push out of one solid can land the body in a neighbor; a second
	// sweep settles corners.
	for range 2 {
		moved := false
		sc.EachSolid(func(s Solid) bool {
			if geom.Resolve(pos, vel, radius, s.Rect, resp) {
				moved = true
				if s.Door != nil {
					locked = true
				}
			}
			return true
		})
		if !moved {
			break
		}
	}
	*pos = sc.Shell.Bounds().Inset(radius).Clamp(*pos)
	return locked
}

// MoveEnemies integrates every living enemy and bounces it off the static
// geometry.
func MoveEnemies(sc *Scene, dt time.Duration) {
	secs := dt.Seconds()
	sc.Enemies.Each(func(_ ecs.EntityID, e *component.Enemy) bool {
		if !e.Alive() {
			return true
		}
		n := substeps(e.Vel.Len()*secs, sc.Tuning.Runtime.SubstepLength)
		for range n {
			e.Pos = e.Pos.Add(e.Vel.Scale(secs / float64(n)))
			ResolveStatic(sc, &e.Pos, &e.Vel, e.Radius, geom.ResponseBounce)
		}
		return true
	})
}

// Separate nudges overlapping enemies apart using the broad phase. Each
// pair is handled from its lower id so it is pushed once per tick.
func Separate(sc *Scene) {
	strength := sc.Tuning.Enemy.Separation
	if strength <= 0 {
		return
	}
	sc.Enemies.Each(func(id ecs.EntityID, e *component.Enemy) bool {
		if !e.Alive() {
			return true
		}
		sc.Grid.NearKind(e.Pos, spatial.KindEnemy, func(other ecs.EntityID) bool {
			if other <= id {
				return true
			}
			o := sc.Enemies.Get(other)
			if o == nil || !o.Alive() {
				return true
			}
			d := o.Pos.Sub(e.Pos)
			overlap := e.Radius + o.Radius - d.Len()
			if overlap <= 0 {
				return true
			}
			dir := d.Normalize()
			if dir.IsZero() {
				dir = geom.V(1, 0)
			}
			push := dir.Scale(overlap * strength / 2)
			e.Pos = e.Pos.Sub(push)
			o.Pos = o.Pos.Add(push)
			var still geom.Vec2
			ResolveStatic(sc, &e.Pos, &still, e.Radius, geom.ResponseStop)
			ResolveStatic(sc, &o.Pos, &still, o.Radius, geom.ResponseStop)
			return true
		})
		return true
	})
}
