package system

import (
	"time"

	"roomcrawl/internal/component"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/generate"
	"roomcrawl/internal/geom"
)

// ProcessAI sets the velocity of every living enemy for this tick and lets
// ranged enemies fire. Enemies still reeling from a hit keep the velocity of
// the knockback impulse.
func ProcessAI(sc *Scene, player *component.Player, dt time.Duration) {
	sc.Enemies.Each(func(id ecs.EntityID, e *component.Enemy) bool {
		if !e.Alive() {
			return true
		}
		if e.Knockback > 0 {
			e.Knockback -= dt
			if e.Knockback > 0 {
				return true
			}
			e.Knockback = 0
		}
		Steer(sc, e, player, dt)
		if e.Ranged {
			tryFire(sc, id, e, player, dt)
		}
		return true
	})
}

// Steer runs the movement behavior of a single enemy.
func Steer(sc *Scene, e *component.Enemy, player *component.Player, dt time.Duration) {
	switch e.Move {
	case component.MovePatrol:
		patrol(sc, e, 1, dt)
	case component.MoveFlank:
		flank(sc, e, player)
	case component.MoveAmbush:
		ambush(sc, e, player, dt)
	default:
		chase(e, player.Pos, e.Aggression)
	}
}

func chase(e *component.Enemy, target geom.Vec2, aggression float64) {
	dir := target.Sub(e.Pos).Normalize()
	e.Vel = dir.Scale(e.Speed * aggression)
}

// patrol walks the waypoint loop at speed fraction frac, dwelling at each
// point for a random interval before heading to the next one.
func patrol(sc *Scene, e *component.Enemy, frac float64, dt time.Duration) {
	b := &e.Behavior
	if len(b.Waypoints) == 0 {
		n := sc.Tuning.Spawn.PatrolPoints
		if n < 2 {
			n = 2
		}
		b.Waypoints = generate.PatrolRoute(sc.Validator, e.Pos, n,
			sc.Tuning.Spawn.EnemyClearance, sc.Obstacles, sc.Interior())
		b.PatrolIndex = 0
	}
	if b.Wait > 0 {
		e.Vel = geom.Vec2{}
		b.Wait -= dt
		if b.Wait <= 0 {
			b.Wait = 0
			b.PatrolIndex = (b.PatrolIndex + 1) % len(b.Waypoints)
		}
		return
	}
	if b.PatrolIndex >= len(b.Waypoints) {
		b.PatrolIndex = 0
	}
	target := b.Waypoints[b.PatrolIndex]
	if e.Pos.Dist(target) <= sc.Tuning.Enemy.PatrolArrive {
		e.Vel = geom.Vec2{}
		b.Wait = dwell(sc)
		if b.Wait <= 0 {
			b.PatrolIndex = (b.PatrolIndex + 1) % len(b.Waypoints)
		}
		return
	}
	e.Vel = target.Sub(e.Pos).Normalize().Scale(e.Speed * e.Aggression * frac)
}

func dwell(sc *Scene) time.Duration {
	lo, hi := sc.Tuning.Enemy.PatrolDwellMin, sc.Tuning.Enemy.PatrolDwellMax
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(sc.Rand.Int63n(int64(hi-lo)))
}

// flank aims at a point beside the player. The side is picked once per
// enemy; the offset shrinks as the enemy closes in so it still makes contact.
func flank(sc *Scene, e *component.Enemy, player *component.Player) {
	b := &e.Behavior
	if b.FlankSide == 0 {
		b.FlankSide = 1
		if sc.Rand.Intn(2) == 0 {
			b.FlankSide = -1
		}
	}
	to := player.Pos.Sub(e.Pos)
	dist := to.Len()
	if dist <= e.Radius+player.Radius {
		chase(e, player.Pos, e.Aggression)
		return
	}
	offset := min(sc.Tuning.Enemy.FlankOffset, dist*0.5)
	side := to.Normalize().Perp().Scale(b.FlankSide * offset)
	chase(e, player.Pos.Add(side), e.Aggression)
}

// ambush lurks on a slow patrol until the player comes close or the
// failsafe runs out, then charges for a fixed time and resets.
func ambush(sc *Scene, e *component.Enemy, player *component.Player, dt time.Duration) {
	b := &e.Behavior
	t := sc.Tuning.Enemy
	switch b.Ambush {
	case component.AmbushCharging:
		b.AmbushTimer -= dt
		if b.AmbushTimer <= 0 {
			b.Ambush = component.AmbushWaiting
			b.AmbushTimer = t.AmbushFailsafe
			patrol(sc, e, t.AmbushLurkSpeed, dt)
			return
		}
		chase(e, player.Pos, t.AmbushAggression)
	default:
		b.AmbushTimer -= dt
		if b.AmbushTimer <= 0 || e.Pos.Dist(player.Pos) <= t.AmbushRange {
			b.Ambush = component.AmbushCharging
			b.AmbushTimer = t.AmbushCharge
			b.Wait = 0
			chase(e, player.Pos, t.AmbushAggression)
			return
		}
		patrol(sc, e, t.AmbushLurkSpeed, dt)
	}
}

// tryFire counts down the fire cooldown. On expiry the enemy shoots when the
// player is in range and waits a full interval; out of range it retries
// after half an interval.
func tryFire(sc *Scene, id ecs.EntityID, e *component.Enemy, player *component.Player, dt time.Duration) {
	b := &e.Behavior
	t := sc.Tuning.Enemy
	b.FireCooldown -= dt
	if b.FireCooldown > 0 {
		return
	}
	if e.Pos.Dist(player.Pos) > t.FireRange || sc.EnemyShots == nil {
		b.FireCooldown = t.FireInterval / 2
		return
	}
	dir := player.Pos.Sub(e.Pos).Normalize()
	if dir.IsZero() {
		dir = geom.V(0, 1)
	}
	Fire(sc.EnemyShots, component.Projectile{
		Owner:   component.OwnerEnemy,
		Shooter: id,
		Pos:     e.Pos.Add(dir.Scale(e.Radius)),
		Dir:     dir,
		Speed:   t.ShotSpeed,
		Radius:  t.ShotRadius,
		Damage:  t.ShotDamage,
		TTL:     t.ShotTTL,
	})
	b.FireCooldown = t.FireInterval
	sc.emit(Event{Kind: EventEnemyShot, Pos: e.Pos, Enemy: e.Kind})
}
