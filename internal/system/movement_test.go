package system

import (
	"testing"
	"time"

	"roomcrawl/internal/component"
	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
)

// p0Gap is the free space left between the player's edge and a wall.
const p0Gap = 20.0

func TestDashDoesNotTunnel(t *testing.T) {
	for thickness := 15.0; thickness <= 40; thickness += 5 {
		for dist := 50.0; dist <= 900; dist += 50 {
			wall := geom.R(1000, 100, thickness, 400)
			sc, _ := newTestScene(2000, 600, []gamemap.Obstacle{gamemap.NewObstacle(wall)})
			sc.Tuning.Player.DashDuration = 100 * time.Millisecond
			p := newTestPlayer(sc, geom.V(wall.X-p0Gap-sc.Tuning.Player.Radius, 300))
			p.Speed = dist / (sc.Tuning.Player.DashMultiplier * 0.1)

			if !StartDash(p, geom.V(1, 0), &sc.Tuning.Player) {
				t.Fatal("dash refused")
			}
			for i := 0; p.Dash.Active && i < 100; i++ {
				TickPlayer(p, tick)
				MovePlayer(sc, p, tick)
				if p.Pos.X >= wall.X {
					t.Fatalf("thickness %v dist %v: player at x=%v crossed wall at %v", thickness, dist, p.Pos.X, wall.X)
				}
			}
			if p.Dash.Active {
				t.Fatalf("dash never ended")
			}
		}
	}
}

func TestDashCooldown(t *testing.T) {
	sc, _ := newTestScene(800, 600, nil)
	p := newTestPlayer(sc, geom.V(400, 300))
	if !StartDash(p, geom.Vec2{}, &sc.Tuning.Player) {
		t.Fatal("first dash refused")
	}
	if p.Dash.Dir != geom.V(0, -1) {
		t.Errorf("zero input should dash along facing, got %v", p.Dash.Dir)
	}
	if StartDash(p, geom.V(1, 0), &sc.Tuning.Player) {
		t.Error("dash accepted while dashing")
	}
	p.Dash.Active = false
	if StartDash(p, geom.V(1, 0), &sc.Tuning.Player) {
		t.Error("dash accepted during cooldown")
	}
	TickPlayer(p, sc.Tuning.Player.DashCooldown)
	if !StartDash(p, geom.V(1, 0), &sc.Tuning.Player) {
		t.Error("dash refused after cooldown")
	}
}

func TestPlayerStopsAtWall(t *testing.T) {
	sc, _ := newTestScene(800, 600, nil)
	p := newTestPlayer(sc, geom.V(400, 300))
	for range 400 {
		p.Vel = geom.V(p.Speed, 0)
		MovePlayer(sc, p, tick)
	}
	limit := 800 - gamemap.WallThickness - p.Radius
	if p.Pos.X > limit+1e-3 {
		t.Errorf("player at x=%v beyond wall face %v", p.Pos.X, limit)
	}
	if p.Vel.X != 0 {
		t.Errorf("velocity into the wall should be zeroed, got %v", p.Vel.X)
	}
}

func TestLockedDoorNoticeDebounced(t *testing.T) {
	sc, rec := newTestScene(800, 600, nil, gamemap.North)
	p := newTestPlayer(sc, geom.V(400, gamemap.WallThickness+p0Gap))
	for range 60 {
		TickPlayer(p, tick)
		p.Vel = geom.V(0, -p.Speed)
		MovePlayer(sc, p, tick)
	}
	if got := rec.count(EventDoorLocked); got != 2 {
		t.Errorf("locked notices over 960ms = %d, want 2", got)
	}
	if p.Pos.Y-p.Radius < gamemap.WallThickness-1e-3 {
		t.Errorf("player entered locked door, y=%v", p.Pos.Y)
	}
}

func TestUnlockedDoorIsPassable(t *testing.T) {
	sc, _ := newTestScene(800, 600, nil, gamemap.North)
	sc.Doors[0].Locked = false
	p := newTestPlayer(sc, geom.V(400, 60))
	for range 30 {
		p.Vel = geom.V(0, -p.Speed)
		MovePlayer(sc, p, tick)
	}
	if p.Pos.Y >= gamemap.WallThickness+p.Radius {
		t.Errorf("player should reach the door gap, y=%v", p.Pos.Y)
	}
}

func TestEnemiesBounceOffWalls(t *testing.T) {
	sc, _ := newTestScene(800, 600, nil)
	_, e := addEnemy(sc, component.KindNormal, component.MoveChase, geom.V(700, 300))
	e.Vel = geom.V(200, 0)
	for range 60 {
		MoveEnemies(sc, tick)
	}
	if e.Vel.X >= 0 {
		t.Errorf("enemy should have bounced, vel %v", e.Vel)
	}
	if !sc.Interior().Inset(e.Radius - 1e-3).Contains(e.Pos) {
		t.Errorf("enemy left the interior: %v", e.Pos)
	}
}

func TestSeparatePushesOverlapApart(t *testing.T) {
	sc, _ := newTestScene(800, 600, nil)
	ida, _ := addEnemy(sc, component.KindNormal, component.MoveChase, geom.V(400, 300))
	idb, _ := addEnemy(sc, component.KindNormal, component.MoveChase, geom.V(405, 300))
	sc.RebuildGrid()
	a, b := sc.Enemies.Get(ida), sc.Enemies.Get(idb)
	before := a.Pos.Dist(b.Pos)
	Separate(sc)
	if after := a.Pos.Dist(b.Pos); after <= before {
		t.Errorf("distance %v -> %v, want growth", before, after)
	}
}
