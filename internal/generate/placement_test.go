package generate

import (
	"math"
	"math/rand"
	"testing"

	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
)

func testValidator(seed int64) *Validator {
	return &Validator{Rand: rand.New(rand.NewSource(seed)), MaxAttempts: 30, WallPadding: 30, Jitter: 20}
}

// clearsAll checks the placement property directly: on at least one axis the
// point is clearance + half-extent away from each obstacle center.
func clearsAll(p geom.Vec2, clearance float64, obstacles []gamemap.Obstacle) bool {
	for _, o := range obstacles {
		c := o.Center()
		hw, hh := o.HalfExtents()
		if math.Abs(p.X-c.X) < clearance+hw && math.Abs(p.Y-c.Y) < clearance+hh {
			return false
		}
	}
	return true
}

func TestPlaceClearance(t *testing.T) {
	bounds := geom.R(20, 20, 760, 560)
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		shell := gamemap.NewShell(800, 600, gamemap.Directions[:])
		for _, kind := range Templates() {
			obs := BuildTemplate(kind, shell, rng)
			v := testValidator(seed)
			for i := 0; i < 50; i++ {
				pref := geom.V(rng.Float64()*800, rng.Float64()*600)
				pl := v.Place(pref, 25, obs, bounds)
				if pl.Fallback {
					continue
				}
				if !clearsAll(pl.Point, 25, obs) {
					t.Fatalf("seed=%d template=%v: %v violates clearance", seed, kind, pl.Point)
				}
				if !bounds.Inset(v.WallPadding).Contains(pl.Point) {
					t.Fatalf("seed=%d template=%v: %v outside padded bounds", seed, kind, pl.Point)
				}
			}
		}
	}
}

func TestPlaceKeepsValidPreferred(t *testing.T) {
	v := testValidator(1)
	obs := []gamemap.Obstacle{gamemap.NewObstacle(geom.R(100, 100, 50, 50))}
	want := geom.V(400, 300)
	pl := v.Place(want, 20, obs, geom.R(0, 0, 800, 600))
	if pl.Point != want || pl.Fallback {
		t.Fatalf("expected preferred point to be kept, got %+v", pl)
	}
}

func TestPlaceFallbackWhenImpossible(t *testing.T) {
	// One obstacle covering the whole room leaves no valid point.
	bounds := geom.R(0, 0, 400, 400)
	obs := []gamemap.Obstacle{gamemap.NewObstacle(bounds)}
	v := testValidator(3)
	pl := v.Place(geom.V(10, 10), 10, obs, bounds)
	if !pl.Fallback {
		t.Fatal("expected fallback placement")
	}
	c := bounds.Center()
	if math.Abs(pl.Point.X-c.X) > v.Jitter || math.Abs(pl.Point.Y-c.Y) > v.Jitter {
		t.Fatalf("fallback %v too far from center %v", pl.Point, c)
	}
}

func TestPlaceApartSpacing(t *testing.T) {
	bounds := geom.R(0, 0, 800, 600)
	v := testValidator(5)
	var placed []geom.Vec2
	for i := 0; i < 8; i++ {
		pl := v.PlaceApart(geom.V(400, 300), 10, nil, bounds, placed, 60)
		if pl.Fallback {
			t.Fatalf("unexpected fallback at %d", i)
		}
		for _, o := range placed {
			if pl.Point.Dist(o) < 60 {
				t.Fatalf("point %v within 60 of %v", pl.Point, o)
			}
		}
		placed = append(placed, pl.Point)
	}
}

func TestRepairIdempotent(t *testing.T) {
	bounds := geom.R(0, 0, 800, 600)
	obs := []gamemap.Obstacle{gamemap.NewObstacle(geom.R(300, 200, 200, 200))}
	v := testValidator(7)

	inside := geom.V(400, 300)
	first, moved := v.Repair(inside, 20, obs, bounds)
	if !moved {
		t.Fatal("point inside an obstacle should be moved")
	}
	if first.Fallback {
		t.Skip("validator fell back; nothing further to check")
	}
	second, moved := v.Repair(first.Point, 20, obs, bounds)
	if moved || second.Point != first.Point {
		t.Fatalf("second repair moved %v to %v", first.Point, second.Point)
	}
}

func TestFastAcceptMatchesAxisTest(t *testing.T) {
	o := gamemap.NewObstacle(geom.R(100, 100, 80, 20))
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		p := geom.V(rng.Float64()*300, rng.Float64()*300)
		got := Clear(p, 15, []gamemap.Obstacle{o})
		want := clearsAll(p, 15, []gamemap.Obstacle{o})
		if got != want {
			t.Fatalf("Clear(%v)=%v, axis test says %v", p, got, want)
		}
	}
}
