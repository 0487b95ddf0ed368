package system

import (
	"time"

	"roomcrawl/internal/component"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/spatial"
)

// Fire adds an active projectile to store and returns its id.
func Fire(store *ecs.Store[component.Projectile], p component.Projectile) ecs.EntityID {
	p.Active = true
	p.Prev = p.Pos
	p.Dir = p.Dir.Normalize()
	return store.Add(p)
}

// PlayerFire shoots from the player toward aim when the fire cooldown
// allows. Empowered shots deal one extra damage.
func PlayerFire(sc *Scene, p *component.Player, aim geom.Vec2) bool {
	if p.FireCooldown > 0 || p.Dead() || sc.PlayerShots == nil {
		return false
	}
	dir := aim.Normalize()
	if dir.IsZero() {
		return false
	}
	t := sc.Tuning.Player
	dmg := t.ShotDamage
	if p.Empowered > 0 {
		p.Empowered--
		dmg++
	}
	Fire(sc.PlayerShots, component.Projectile{
		Owner:   component.OwnerPlayer,
		Shooter: ecs.NilEntity,
		Pos:     p.Pos.Add(dir.Scale(p.Radius)),
		Dir:     dir,
		Speed:   t.ShotSpeed,
		Radius:  t.ShotRadius,
		Damage:  dmg,
		TTL:     t.ShotTTL,
	})
	p.FireCooldown = t.FireInterval
	p.Facing = dir
	sc.emit(Event{Kind: EventPlayerShot, Pos: p.Pos, Amount: dmg})
	return true
}

// StepProjectiles advances every shot in store. Shots expire with their
// time to live, stop at walls, obstacles, locked doors and the room edge,
// and are spent on the first opposing body they touch.
func StepProjectiles(sc *Scene, store *ecs.Store[component.Projectile], p *component.Player, dt time.Duration) {
	if store == nil {
		return
	}
	secs := dt.Seconds()
	bounds := sc.Shell.Bounds()
	store.Each(func(id ecs.EntityID, s *component.Projectile) bool {
		if !s.Active {
			store.Remove(id)
			return true
		}
		s.TTL -= dt
		if s.TTL <= 0 {
			s.Active = false
			store.Remove(id)
			return true
		}
		n := substeps(s.Speed*secs, sc.Tuning.Runtime.SubstepLength)
		step := s.Dir.Scale(s.Speed * secs / float64(n))
		for range n {
			s.Prev = s.Pos
			s.Pos = s.Pos.Add(step)
			if !bounds.Contains(s.Pos) || hitsSolid(sc, s.Circle()) {
				s.Active = false
				sc.emit(Event{Kind: EventShotBlocked, Pos: s.Pos})
				break
			}
			if shotHits(sc, s, p) {
				s.Active = false
				break
			}
		}
		if !s.Active {
			store.Remove(id)
		}
		return true
	})
}

func hitsSolid(sc *Scene, c geom.Circle) bool {
	hit := false
	sc.EachSolid(func(s Solid) bool {
		if geom.CircleRect(c, s.Rect) {
			hit = true
			return false
		}
		return true
	})
	return hit
}

// shotHits applies the shot to the first opposing body it overlaps.
func shotHits(sc *Scene, s *component.Projectile, p *component.Player) bool {
	c := s.Circle()
	if s.Owner == component.OwnerEnemy {
		if p == nil || p.Dead() || p.Dash.Active || !geom.CirclesOverlap(c, p.Circle()) {
			return false
		}
		HurtPlayer(sc, p, s.Damage, s.Prev)
		return true
	}
	hit := false
	sc.Grid.NearKind(s.Pos, spatial.KindEnemy, func(id ecs.EntityID) bool {
		e := sc.Enemies.Get(id)
		if e == nil || !e.Alive() || !geom.CirclesOverlap(c, e.Circle()) {
			return true
		}
		HitEnemy(sc, e, s.Damage, s.Prev)
		hit = true
		return false
	})
	return hit
}
