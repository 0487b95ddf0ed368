package generate

import (
	"math/rand"
	"testing"

	"roomcrawl/internal/gamemap"
)

func TestDungeonAllRoomsReachable(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		for _, size := range []int{1, 2, 5, 12, 30} {
			cfg := DefaultConfig(1, rand.New(rand.NewSource(seed)))
			cfg.Rooms = size
			d := BuildDungeon(cfg)

			want := size + 1 // plus the boss room
			if len(d.Rooms) != want {
				t.Fatalf("seed=%d size=%d: %d rooms, want %d", seed, size, len(d.Rooms), want)
			}
			if got := d.Reachable().Size(); got != want {
				t.Errorf("seed=%d size=%d: BFS visited %d of %d rooms", seed, size, got, want)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("seed=%d size=%d: %v", seed, size, err)
			}
		}
	}
}

func TestDungeonEdgesMirrored(t *testing.T) {
	cfg := DefaultConfig(2, rand.New(rand.NewSource(3)))
	cfg.Rooms = 15
	d := BuildDungeon(cfg)
	for id, links := range d.Links {
		for dir, n := range links {
			back, ok := d.NeighborOf(n, dir.Opposite())
			if !ok || back != id {
				t.Errorf("room %d %v -> %d not mirrored", id, dir, n)
			}
		}
	}
}

func TestDungeonStartHasOneDoor(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := DefaultConfig(1, rand.New(rand.NewSource(seed)))
		d := BuildDungeon(cfg)
		if n := len(d.Links[d.Start]); n != 1 {
			t.Fatalf("seed=%d: start room has %d edges, want 1", seed, n)
		}
		start := d.Rooms[d.Start]
		if start.Kind != RoomStart || len(start.Doors) != 1 {
			t.Fatalf("seed=%d: start spec kind=%v doors=%v", seed, start.Kind, start.Doors)
		}
		if len(start.Enemies) != 0 {
			t.Fatalf("seed=%d: start room has enemies", seed)
		}
	}
}

func TestDungeonBossIsDeepest(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := DefaultConfig(1, rand.New(rand.NewSource(seed)))
		cfg.Rooms = 10
		d := BuildDungeon(cfg)
		if d.Boss < 0 {
			t.Fatalf("seed=%d: no boss room", seed)
		}
		boss := d.Rooms[d.Boss]
		if boss.Kind != RoomBoss {
			t.Fatalf("seed=%d: boss spec has kind %v", seed, boss.Kind)
		}
		for id, r := range d.Rooms {
			if id != d.Boss && r.Depth >= boss.Depth {
				t.Errorf("seed=%d: room %d depth %d not shallower than boss depth %d", seed, id, r.Depth, boss.Depth)
			}
		}
	}
}

func TestDungeonSlotsUnique(t *testing.T) {
	cfg := DefaultConfig(1, rand.New(rand.NewSource(8)))
	cfg.Rooms = 25
	d := BuildDungeon(cfg)
	seen := make(map[[2]int]int)
	for id, r := range d.Rooms {
		k := [2]int{r.GridX, r.GridY}
		if other, ok := seen[k]; ok {
			t.Fatalf("rooms %d and %d share grid slot %v", id, other, k)
		}
		seen[k] = id
	}
}

func TestNeighborOfMiss(t *testing.T) {
	cfg := DefaultConfig(1, rand.New(rand.NewSource(1)))
	cfg.Rooms = 1
	cfg.Boss = false
	d := BuildDungeon(cfg)
	for _, dir := range gamemap.Directions {
		if _, ok := d.NeighborOf(d.Start, dir); ok {
			t.Fatalf("single-room dungeon has a neighbor on %v", dir)
		}
	}
}

func TestAdHocRoom(t *testing.T) {
	cfg := DefaultConfig(1, rand.New(rand.NewSource(6)))
	r := AdHocRoom(cfg, 2)
	if r.ID != AdHocID || len(r.Doors) != 4 || r.Kind != RoomCombat {
		t.Fatalf("unexpected ad-hoc room: id=%d doors=%v kind=%v", r.ID, r.Doors, r.Kind)
	}
}
