package system

import (
	"testing"
	"time"

	"roomcrawl/internal/component"
	"roomcrawl/internal/geom"
)

func TestApplyItem(t *testing.T) {
	sc, _ := newTestScene(800, 600, nil)
	cfg := &sc.Tuning.Player
	tests := []struct {
		effect component.ItemEffect
		setup  func(p *component.Player)
		check  func(p *component.Player) bool
	}{
		{component.EffectRestoreHealth, func(p *component.Player) { p.HP = 2 }, func(p *component.Player) bool { return p.HP == 3 }},
		{component.EffectRestoreHealth, func(p *component.Player) {}, func(p *component.Player) bool { return p.HP == p.MaxHP }},
		{component.EffectIncreaseSpeed, func(p *component.Player) {}, func(p *component.Player) bool {
			return p.Speed > cfg.Speed && p.Speed <= cfg.MaxSpeed
		}},
		{component.EffectIncreaseSpeed, func(p *component.Player) { p.Speed = cfg.MaxSpeed }, func(p *component.Player) bool {
			return p.Speed == cfg.MaxSpeed
		}},
		{component.EffectShield, func(p *component.Player) {}, func(p *component.Player) bool { return p.Shield == cfg.ShieldDuration }},
		{component.EffectDashReset, func(p *component.Player) { p.Dash.Cooldown = time.Second }, func(p *component.Player) bool {
			return p.Dash.Cooldown == 0
		}},
		{component.EffectAmmoBoost, func(p *component.Player) { p.Empowered = 1 }, func(p *component.Player) bool {
			return p.Empowered == 1+cfg.AmmoBoost
		}},
	}
	for i, tt := range tests {
		p := newTestPlayer(sc, geom.V(100, 100))
		tt.setup(p)
		ApplyItem(p, tt.effect, cfg)
		if !tt.check(p) {
			t.Errorf("case %d (%s): unexpected player %+v", i, tt.effect, p)
		}
	}
}

func TestCollectItemsOnce(t *testing.T) {
	sc, rec := newTestScene(800, 600, nil)
	p := newTestPlayer(sc, geom.V(400, 300))
	p.HP = 1
	sc.Items.Add(component.Item{Pos: geom.V(405, 300), Radius: ItemRadius, Effect: component.EffectRestoreHealth})
	sc.Items.Add(component.Item{Pos: geom.V(600, 300), Radius: ItemRadius, Effect: component.EffectShield})

	if n := CollectItems(sc, p); n != 1 {
		t.Fatalf("collected %d, want 1", n)
	}
	if n := CollectItems(sc, p); n != 0 {
		t.Errorf("item collected twice")
	}
	if p.HP != 2 || p.Shield != 0 {
		t.Errorf("hp %d shield %v", p.HP, p.Shield)
	}
	if rec.count(EventPickup) != 1 {
		t.Errorf("pickup events = %d", rec.count(EventPickup))
	}
}
