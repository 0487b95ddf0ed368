package system

import (
	"roomcrawl/internal/component"
	"roomcrawl/internal/config"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/geom"
)

// ApplyItem applies a pickup's effect to the player.
func ApplyItem(p *component.Player, effect component.ItemEffect, t *config.Player) {
	switch effect {
	case component.EffectRestoreHealth:
		p.HP = min(p.HP+1, p.MaxHP)
	case component.EffectIncreaseSpeed:
		p.Speed = min(p.Speed*(1+t.SpeedBoost), t.MaxSpeed)
	case component.EffectShield:
		p.Shield = t.ShieldDuration
	case component.EffectDashReset:
		p.Dash.Cooldown = 0
	case component.EffectAmmoBoost:
		p.Empowered += t.AmmoBoost
	}
}

// CollectItems picks up every uncollected item the player overlaps.
func CollectItems(sc *Scene, p *component.Player) int {
	if sc.Items == nil || p.Dead() {
		return 0
	}
	body := p.Circle()
	n := 0
	sc.Items.Each(func(_ ecs.EntityID, it *component.Item) bool {
		if it.Collected || !geom.CirclesOverlap(body, it.Circle()) {
			return true
		}
		it.Collected = true
		ApplyItem(p, it.Effect, &sc.Tuning.Player)
		sc.emit(Event{Kind: EventPickup, Pos: it.Pos, Item: it.Effect})
		n++
		return true
	})
	return n
}
