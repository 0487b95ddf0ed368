package system

import (
	"time"

	"roomcrawl/internal/component"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/geom"
	"roomcrawl/internal/spatial"
)

// ItemRadius is the pickup disc of items dropped by enemies.
const ItemRadius = 10.0

// HurtPlayer applies dmg to the player from a source at from. Invulnerable
// players are untouched. An active shield absorbs the hit. It reports
// whether health was lost.
func HurtPlayer(sc *Scene, p *component.Player, dmg int, from geom.Vec2) bool {
	if p.Invulnerable() || p.Dead() {
		return false
	}
	t := sc.Tuning.Player
	p.Invuln = t.HitInvuln
	if p.Shield > 0 {
		p.Shield = 0
		sc.emit(Event{Kind: EventShieldBlock, Pos: p.Pos})
		return false
	}
	p.HP = max(p.HP-dmg, 0)
	p.Knockback = t.HitStun
	p.Vel = geom.Vec2{}
	away := p.Pos.Sub(from).Normalize()
	if !away.IsZero() && t.Knockback > 0 {
		p.Pos = p.Pos.Add(away.Scale(t.Knockback))
		ResolveStatic(sc, &p.Pos, nil, p.Radius, geom.ResponseStop)
	}
	sc.emit(Event{Kind: EventPlayerHit, Pos: p.Pos, Amount: dmg})
	if p.Dead() {
		sc.emit(Event{Kind: EventPlayerDied, Pos: p.Pos})
	}
	return true
}

// HitEnemy applies dmg to an enemy from a source at from. A surviving enemy
// is knocked back; a killed one starts its dying window and may drop an item.
func HitEnemy(sc *Scene, e *component.Enemy, dmg int, from geom.Vec2) {
	if !e.Alive() {
		return
	}
	t := sc.Tuning.Enemy
	e.HP -= dmg
	sc.emit(Event{Kind: EventEnemyHit, Pos: e.Pos, Amount: dmg, Enemy: e.Kind})
	if e.HP > 0 {
		away := e.Pos.Sub(from).Normalize()
		if !away.IsZero() {
			e.Knockback = t.Knockback
			e.Vel = away.Scale(t.KnockbackSpeed)
		}
		return
	}
	e.HP = 0
	e.Active = false
	e.Vel = geom.Vec2{}
	e.Dying = t.Dying
	sc.emit(Event{Kind: EventEnemyKilled, Pos: e.Pos, Enemy: e.Kind})
	if e.DropsItem {
		dropItem(sc, e.Pos)
	}
}

func dropItem(sc *Scene, at geom.Vec2) {
	if sc.Items == nil {
		return
	}
	effects := component.ItemEffects()
	effect := effects[sc.Rand.Intn(len(effects))]
	pos := at
	if sc.Validator != nil {
		// Corpses against a wall drop just inside the padded area rather
		// than anywhere in the room.
		pos = sc.Interior().Inset(sc.Validator.WallPadding).Clamp(at)
		pl, _ := sc.Validator.Repair(pos, sc.Tuning.Spawn.ItemClearance, sc.Obstacles, sc.Interior())
		pos = pl.Point
	}
	sc.Items.Add(component.Item{Pos: pos, Radius: ItemRadius, Effect: effect})
	sc.emit(Event{Kind: EventItemDropped, Pos: pos, Item: effect})
}

// dashContacts damages every enemy the dashing player overlaps, each at most
// once per dash.
func dashContacts(sc *Scene, p *component.Player) {
	body := p.Circle()
	sc.Grid.NearKind(p.Pos, spatial.KindEnemy, func(id ecs.EntityID) bool {
		e := sc.Enemies.Get(id)
		if e == nil || !e.Alive() || p.Dash.Hits.Has(id) {
			return true
		}
		if !geom.CirclesOverlap(body, e.Circle()) {
			return true
		}
		p.Dash.Hits.Put(id)
		sc.emit(Event{Kind: EventDashHit, Pos: e.Pos, Amount: sc.Tuning.Player.DashDamage, Enemy: e.Kind})
		HitEnemy(sc, e, sc.Tuning.Player.DashDamage, p.Pos)
		return true
	})
}

// PlayerContacts resolves the player touching enemy bodies and enemy shots
// that are already overlapping at the start of the pass.
func PlayerContacts(sc *Scene, p *component.Player) {
	if p.Dead() {
		return
	}
	body := p.Circle()
	sc.Grid.Near(p.Pos, func(r spatial.Ref) bool {
		switch r.Kind {
		case spatial.KindEnemy:
			e := sc.Enemies.Get(r.ID)
			if e == nil || !e.Alive() || !geom.CirclesOverlap(body, e.Circle()) {
				return true
			}
			if p.Dash.Active {
				return true
			}
			HurtPlayer(sc, p, e.Damage, e.Pos)
		case spatial.KindEnemyShot:
			if sc.EnemyShots == nil {
				return true
			}
			s := sc.EnemyShots.Get(r.ID)
			if s == nil || !s.Active || p.Dash.Active || !geom.CirclesOverlap(body, s.Circle()) {
				return true
			}
			s.Active = false
			HurtPlayer(sc, p, s.Damage, s.Pos)
		}
		return !p.Dead()
	})
}

// TickDying counts down the corpses of killed enemies and removes them once
// their window is over.
func TickDying(sc *Scene, dt time.Duration) {
	sc.Enemies.Each(func(id ecs.EntityID, e *component.Enemy) bool {
		if e.Active {
			return true
		}
		e.Dying -= dt
		if e.Dying <= 0 {
			sc.Enemies.Remove(id)
		}
		return true
	})
}
