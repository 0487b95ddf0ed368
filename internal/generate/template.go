package generate

import (
	"fmt"
	"math/rand"

	"roomcrawl/internal/gamemap"
	"roomcrawl/internal/geom"
)

// TemplateKind names a room obstacle layout.
type TemplateKind uint8

const (
	TemplateCorners TemplateKind = iota
	TemplateCross
	TemplatePillars
	TemplateAsymmetric
	TemplateMaze
	TemplateEmpty
	numTemplates
)

var templateNames = [numTemplates]string{"corners", "cross", "pillars", "asymmetric", "maze", "empty"}

// Templates lists every layout in declaration order.
func Templates() []TemplateKind {
	out := make([]TemplateKind, numTemplates)
	for i := range out {
		out[i] = TemplateKind(i)
	}
	return out
}

func (k TemplateKind) String() string {
	if k < numTemplates {
		return templateNames[k]
	}
	return fmt.Sprintf("TemplateKind(%d)", uint8(k))
}

func (k TemplateKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *TemplateKind) UnmarshalText(b []byte) error {
	for i, n := range templateNames {
		if n == string(b) {
			*k = TemplateKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown template %q", b)
}

// Layout tuning, as fractions of the room interior unless noted.
const (
	cornerFrac    = 0.15
	cornerPadding = 60.0 // px from the interior edge
	barThickness  = 24.0
	crossFrac     = 0.4
	pillarFrac    = 0.08
	pillarTries   = 20
	tallBarFrac   = 0.7
	smallBlock    = 30.0
	mazeBarFrac   = 0.6
)

// PickTemplate chooses a layout by weight. Missing or non-positive weights
// count as zero; if every weight is zero the pick is uniform.
func PickTemplate(weights map[TemplateKind]float64, rng *rand.Rand) TemplateKind {
	total := 0.0
	for _, k := range Templates() {
		if w := weights[k]; w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return TemplateKind(rng.Intn(int(numTemplates)))
	}
	r := rng.Float64() * total
	for _, k := range Templates() {
		w := weights[k]
		if w <= 0 {
			continue
		}
		if r < w {
			return k
		}
		r -= w
	}
	return TemplateEmpty
}

// BuildTemplate emits the obstacle layout of kind scaled to the shell. Every
// obstacle lies inside the interior and outside every door approach lane.
func BuildTemplate(kind TemplateKind, shell *gamemap.Shell, rng *rand.Rand) []gamemap.Obstacle {
	in := shell.Interior()
	lanes := make([]geom.Rect, 0, len(shell.Doors))
	for _, d := range gamemap.Directions {
		if _, ok := shell.Doors[d]; ok {
			lanes = append(lanes, shell.Lane(d))
		}
	}
	b := &layoutBuilder{in: in, lanes: lanes, rng: rng}

	switch kind {
	case TemplateCorners:
		b.corners()
	case TemplateCross:
		b.cross()
	case TemplatePillars:
		b.pillars()
	case TemplateAsymmetric:
		b.asymmetric()
	case TemplateMaze:
		b.maze()
	default:
		b.scatter(rng.Intn(3), smallBlock)
	}
	return b.out
}

type layoutBuilder struct {
	in    geom.Rect
	lanes []geom.Rect
	rng   *rand.Rand
	out   []gamemap.Obstacle
}

// fits reports whether r can be placed: inside the interior, off the lanes.
func (b *layoutBuilder) fits(r geom.Rect) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	if r.X < b.in.X || r.Y < b.in.Y || r.MaxX() > b.in.MaxX() || r.MaxY() > b.in.MaxY() {
		return false
	}
	for _, l := range b.lanes {
		if l.Intersects(r) {
			return false
		}
	}
	return true
}

// add keeps r when it fits and drops it silently otherwise.
func (b *layoutBuilder) add(r geom.Rect) bool {
	if !b.fits(r) {
		return false
	}
	b.out = append(b.out, gamemap.NewObstacle(r))
	return true
}

func (b *layoutBuilder) corners() {
	s := cornerFrac * min(b.in.W, b.in.H)
	p := cornerPadding
	b.add(geom.R(b.in.X+p, b.in.Y+p, s, s))
	b.add(geom.R(b.in.MaxX()-p-s, b.in.Y+p, s, s))
	b.add(geom.R(b.in.X+p, b.in.MaxY()-p-s, s, s))
	b.add(geom.R(b.in.MaxX()-p-s, b.in.MaxY()-p-s, s, s))
}

func (b *layoutBuilder) cross() {
	c := b.in.Center()
	vl := crossFrac * b.in.H
	hl := crossFrac * b.in.W
	b.add(geom.R(c.X-barThickness/2, c.Y-vl/2, barThickness, vl))
	b.add(geom.R(c.X-hl/2, c.Y-barThickness/2, hl, barThickness))
}

func (b *layoutBuilder) pillars() {
	size := pillarFrac * min(b.in.W, b.in.H)
	minDist := 3 * size
	n := 4 + b.rng.Intn(3)
	area := b.in.Inset(size)
	var centers []geom.Vec2
	for range n {
		for range pillarTries {
			c := geom.V(area.X+b.rng.Float64()*area.W, area.Y+b.rng.Float64()*area.H)
			if tooClose(c, centers, minDist) {
				continue
			}
			if b.add(geom.R(c.X-size/2, c.Y-size/2, size, size)) {
				centers = append(centers, c)
				break
			}
		}
	}
}

func (b *layoutBuilder) asymmetric() {
	// The bar stops short of both walls so the room never splits in two.
	h := tallBarFrac * b.in.H
	x := b.in.X + 0.25*b.in.W
	if b.rng.Intn(2) == 1 {
		x = b.in.X + 0.7*b.in.W
	}
	bar := geom.R(x, b.in.Y+(b.in.H-h)/2, barThickness, h)
	b.add(bar)
	b.scatterAvoiding(3, smallBlock, bar.Expand(smallBlock))
}

func (b *layoutBuilder) maze() {
	w := mazeBarFrac * b.in.W
	y1 := b.in.Y + b.in.H/3
	y2 := b.in.Y + 2*b.in.H/3
	// Alternate the open end so the path zig-zags.
	b.add(geom.R(b.in.X, y1-barThickness/2, w, barThickness))
	b.add(geom.R(b.in.MaxX()-w, y2-barThickness/2, w, barThickness))

	vh := 0.2 * b.in.H
	for _, fx := range []float64{0.3, 0.7} {
		x := b.in.X + fx*b.in.W
		b.add(geom.R(x-barThickness/2, b.in.Center().Y-vh/2, barThickness, vh))
	}
}

func (b *layoutBuilder) scatter(n int, size float64) {
	b.scatterAvoiding(n, size, geom.Rect{})
}

func (b *layoutBuilder) scatterAvoiding(n int, size float64, avoid geom.Rect) {
	area := b.in.Inset(size)
	for range n {
		for range pillarTries {
			r := geom.R(area.X+b.rng.Float64()*(area.W-size), area.Y+b.rng.Float64()*(area.H-size), size, size)
			if avoid.W > 0 && avoid.Intersects(r) {
				continue
			}
			if b.overlapsExisting(r) {
				continue
			}
			if b.add(r) {
				break
			}
		}
	}
}

func (b *layoutBuilder) overlapsExisting(r geom.Rect) bool {
	for _, o := range b.out {
		if o.Intersects(r) {
			return true
		}
	}
	return false
}

func tooClose(p geom.Vec2, others []geom.Vec2, dist float64) bool {
	for _, o := range others {
		if p.DistSq(o) < dist*dist {
			return true
		}
	}
	return false
}
