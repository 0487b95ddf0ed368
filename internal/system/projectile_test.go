package system

import (
	"testing"
	"time"

	"roomcrawl/internal/component"
	"roomcrawl/internal/ecs"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
)

func TestProjectileExpiresWithTTL(t *testing.T) {
	sc, _ := newTestScene(4000, 600, nil)
	id := Fire(sc.EnemyShots, component.Projectile{
		Owner: component.OwnerEnemy,
		Pos:   geom.V(100, 300),
		Dir:   geom.V(1, 0),
		Speed: 200,
		TTL:   3 * time.Second,
	})
	step := 100 * time.Millisecond
	elapsed := time.Duration(0)
	for sc.EnemyShots.Alive(id) {
		StepProjectiles(sc, sc.EnemyShots, nil, step)
		elapsed += step
		if elapsed > 3*time.Second {
			t.Fatalf("projectile alive after %v", elapsed)
		}
	}
	if elapsed != 3*time.Second {
		t.Errorf("projectile expired at %v, want exactly at its lifetime", elapsed)
	}
}

func TestProjectileStopsAtObstacle(t *testing.T) {
	block := geom.R(300, 250, 40, 100)
	sc, rec := newTestScene(800, 600, []gamemap.Obstacle{gamemap.NewObstacle(block)})
	id := Fire(sc.PlayerShots, component.Projectile{
		Owner:  component.OwnerPlayer,
		Pos:    geom.V(100, 300),
		Dir:    geom.V(1, 0),
		Speed:  1000,
		Radius: 4,
		Damage: 1,
		TTL:    3 * time.Second,
	})
	var last geom.Vec2
	for range 20 {
		if s := sc.PlayerShots.Get(id); s != nil {
			last = s.Pos
		}
		StepProjectiles(sc, sc.PlayerShots, nil, tick)
	}
	if sc.PlayerShots.Alive(id) {
		t.Fatal("shot should have stopped at the obstacle")
	}
	if last.X >= block.MaxX() {
		t.Errorf("shot passed the obstacle: %v", last)
	}
	if rec.count(EventShotBlocked) != 1 {
		t.Errorf("blocked events = %d", rec.count(EventShotBlocked))
	}
}

func TestProjectileStopsAtLockedDoorOnly(t *testing.T) {
	for _, locked := range []bool{true, false} {
		sc, rec := newTestScene(800, 600, nil, gamemap.North)
		sc.Doors[0].Locked = locked
		Fire(sc.PlayerShots, component.Projectile{
			Owner: component.OwnerPlayer, Pos: geom.V(400, 100), Dir: geom.V(0, -1),
			Speed: 400, Radius: 4, Damage: 1, TTL: time.Second,
		})
		for range 30 {
			StepProjectiles(sc, sc.PlayerShots, nil, tick)
		}
		if sc.PlayerShots.Len() != 0 {
			t.Fatalf("locked=%v: shot still flying", locked)
		}
		// Either way the shot ends: at the door or at the room edge.
		if rec.count(EventShotBlocked) != 1 {
			t.Errorf("locked=%v: blocked events %d", locked, rec.count(EventShotBlocked))
		}
	}
}

func TestPlayerShotHitsEnemy(t *testing.T) {
	sc, rec := newTestScene(800, 600, nil)
	ida, _ := addEnemy(sc, component.KindNormal, component.MoveChase, geom.V(300, 300))
	idb, _ := addEnemy(sc, component.KindNormal, component.MoveChase, geom.V(330, 300))
	sc.RebuildGrid()
	Fire(sc.PlayerShots, component.Projectile{
		Owner: component.OwnerPlayer, Pos: geom.V(200, 300), Dir: geom.V(1, 0),
		Speed: 600, Radius: 4, Damage: 2, TTL: time.Second,
	})
	for range 20 {
		StepProjectiles(sc, sc.PlayerShots, nil, tick)
	}
	if hp := sc.Enemies.Get(ida).HP; hp != 8 {
		t.Errorf("first enemy hp = %d, want 8", hp)
	}
	if hp := sc.Enemies.Get(idb).HP; hp != 10 {
		t.Errorf("shot should stop at the first hit, second hp = %d", hp)
	}
	if rec.count(EventEnemyHit) != 1 {
		t.Errorf("enemy hit events = %d", rec.count(EventEnemyHit))
	}
}

func TestEnemyShotVsPlayer(t *testing.T) {
	for _, dashing := range []bool{false, true} {
		sc, _ := newTestScene(800, 600, nil)
		p := newTestPlayer(sc, geom.V(400, 300))
		if dashing {
			sc.Tuning.Player.DashDuration = time.Hour
			StartDash(p, geom.V(0, 1), &sc.Tuning.Player)
		}
		Fire(sc.EnemyShots, component.Projectile{
			Owner: component.OwnerEnemy, Shooter: ecs.EntityID(7), Pos: geom.V(200, 300), Dir: geom.V(1, 0),
			Speed: 600, Radius: 5, Damage: 1, TTL: time.Second,
		})
		for range 20 {
			StepProjectiles(sc, sc.EnemyShots, p, tick)
		}
		switch {
		case dashing && p.HP != p.MaxHP:
			t.Error("dash should dodge enemy shots")
		case !dashing && p.HP != p.MaxHP-1:
			t.Errorf("hp = %d, want %d", p.HP, p.MaxHP-1)
		}
	}
}

func TestPlayerFire(t *testing.T) {
	sc, _ := newTestScene(800, 600, nil)
	p := newTestPlayer(sc, geom.V(400, 300))
	p.Empowered = 1
	if !PlayerFire(sc, p, geom.V(0, -1)) {
		t.Fatal("first shot refused")
	}
	if PlayerFire(sc, p, geom.V(0, -1)) {
		t.Error("fired during cooldown")
	}
	TickPlayer(p, sc.Tuning.Player.FireInterval)
	if !PlayerFire(sc, p, geom.V(1, 0)) {
		t.Fatal("shot refused after cooldown")
	}
	var damages []int
	sc.PlayerShots.Each(func(_ ecs.EntityID, s *component.Projectile) bool {
		damages = append(damages, s.Damage)
		return true
	})
	base := sc.Tuning.Player.ShotDamage
	if len(damages) != 2 || damages[0] != base+1 || damages[1] != base {
		t.Errorf("damages %v, want [%d %d]", damages, base+1, base)
	}
	if p.Empowered != 0 {
		t.Errorf("empowered shots left %d", p.Empowered)
	}
	if PlayerFire(sc, p, geom.Vec2{}) {
		t.Error("fired without an aim")
	}
}
