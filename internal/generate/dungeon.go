package generate

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"roomcrawl/internal/gamemap"
)

// AdHocID is the id carried by rooms generated outside the dungeon graph.
const AdHocID = -1

// Dungeon is one floor: room specs connected through their doors.
type Dungeon struct {
	Floor int                               `yaml:"floor"`
	Start int                               `yaml:"start"`
	Boss  int                               `yaml:"boss"` // -1 when the floor has no boss room
	Rooms map[int]*RoomSpec                 `yaml:"rooms"`
	Links map[int]map[gamemap.Direction]int `yaml:"links"`
}

// NeighborOf returns the room behind the door on side dir of room id.
func (d *Dungeon) NeighborOf(id int, dir gamemap.Direction) (int, bool) {
	n, ok := d.Links[id][dir]
	return n, ok
}

// Reachable returns the set of rooms reachable from the start room.
func (d *Dungeon) Reachable() mapset.Set[int] {
	visited := mapset.New[int]()
	queue := []int{d.Start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited.Has(id) {
			continue
		}
		visited.Put(id)
		for _, dir := range gamemap.Directions {
			if n, ok := d.NeighborOf(id, dir); ok && !visited.Has(n) {
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// Validate checks the graph invariants: every room reachable from the start
// and every edge mirrored on its neighbor.
func (d *Dungeon) Validate() error {
	if _, ok := d.Rooms[d.Start]; !ok {
		return fmt.Errorf("start room %d missing", d.Start)
	}
	for id, links := range d.Links {
		for dir, n := range links {
			back, ok := d.NeighborOf(n, dir.Opposite())
			if !ok || back != id {
				return fmt.Errorf("edge %d -%s-> %d has no mirror", id, dir, n)
			}
		}
	}
	reach := d.Reachable()
	if reach.Size() != len(d.Rooms) {
		return fmt.Errorf("%d of %d rooms reachable from start", reach.Size(), len(d.Rooms))
	}
	return nil
}

type gridPos struct{ x, y int }

// BuildDungeon grows a tree of rooms on a grid of room slots. The start room
// gets exactly one neighbor; every other room attaches through a free side
// of a random existing room. With cfg.Boss set, the boss room is attached
// last to the deepest room that still has a free side.
func BuildDungeon(cfg *Config) *Dungeon {
	d := &Dungeon{
		Floor: cfg.Floor,
		Start: 0,
		Boss:  -1,
		Rooms: make(map[int]*RoomSpec),
		Links: make(map[int]map[gamemap.Direction]int),
	}
	b := &dungeonBuilder{
		cfg:   cfg,
		d:     d,
		slots: make(map[gridPos]int),
		pos:   make(map[int]gridPos),
		depth: make(map[int]int),
	}
	b.place(0, gridPos{}, 0)

	total := max(cfg.Rooms, 1)
	for len(b.pos) < total {
		from, dir, ok := b.pickAttach(false)
		if !ok {
			break
		}
		b.attach(from, dir)
	}
	if cfg.Boss {
		if from, dir, ok := b.pickAttach(true); ok {
			d.Boss = b.attach(from, dir)
		}
	}

	for id := range len(b.pos) {
		d.Rooms[id] = b.spec(id)
	}
	return d
}

type dungeonBuilder struct {
	cfg   *Config
	d     *Dungeon
	slots map[gridPos]int
	pos   map[int]gridPos
	depth map[int]int
	order []int
}

func (b *dungeonBuilder) place(id int, p gridPos, depth int) {
	b.slots[p] = id
	b.pos[id] = p
	b.depth[id] = depth
	b.order = append(b.order, id)
}

func (b *dungeonBuilder) freeSides(id int) []gamemap.Direction {
	var out []gamemap.Direction
	p := b.pos[id]
	for _, dir := range gamemap.Directions {
		dx, dy := dir.Delta()
		if _, taken := b.slots[gridPos{p.x + dx, p.y + dy}]; !taken {
			out = append(out, dir)
		}
	}
	return out
}

// pickAttach chooses a room and a free side to grow from. The start room is
// only eligible while it has no neighbor. deepest restricts the choice to the
// deepest rooms that have a free side.
func (b *dungeonBuilder) pickAttach(deepest bool) (int, gamemap.Direction, bool) {
	var candidates []int
	best := -1
	for _, id := range b.order {
		if id == b.d.Start && len(b.d.Links[id]) > 0 {
			continue
		}
		if len(b.freeSides(id)) == 0 {
			continue
		}
		if deepest {
			switch {
			case b.depth[id] > best:
				best = b.depth[id]
				candidates = candidates[:0]
				candidates = append(candidates, id)
			case b.depth[id] == best:
				candidates = append(candidates, id)
			}
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return 0, 0, false
	}
	from := candidates[b.cfg.Rand.Intn(len(candidates))]
	sides := b.freeSides(from)
	return from, sides[b.cfg.Rand.Intn(len(sides))], true
}

func (b *dungeonBuilder) attach(from int, dir gamemap.Direction) int {
	id := len(b.pos)
	p := b.pos[from]
	dx, dy := dir.Delta()
	b.place(id, gridPos{p.x + dx, p.y + dy}, b.depth[from]+1)
	b.link(from, dir, id)
	return id
}

func (b *dungeonBuilder) link(a int, dir gamemap.Direction, c int) {
	if b.d.Links[a] == nil {
		b.d.Links[a] = make(map[gamemap.Direction]int)
	}
	if b.d.Links[c] == nil {
		b.d.Links[c] = make(map[gamemap.Direction]int)
	}
	b.d.Links[a][dir] = c
	b.d.Links[c][dir.Opposite()] = a
}

func (b *dungeonBuilder) spec(id int) *RoomSpec {
	p := b.pos[id]
	kind := RoomCombat
	switch id {
	case b.d.Start:
		kind = RoomStart
	case b.d.Boss:
		kind = RoomBoss
	}
	var doors []gamemap.Direction
	if kind == RoomStart {
		for _, dir := range gamemap.Directions {
			if _, ok := b.d.Links[id][dir]; ok {
				doors = append(doors, dir)
			}
		}
	} else {
		doors = gamemap.Directions[:]
	}
	s := NewRoom(b.cfg, kind, doors, Difficulty(b.cfg, b.depth[id]))
	s.ID = id
	s.Depth = b.depth[id]
	s.GridX, s.GridY = p.x, p.y
	return s
}

// Difficulty derives a room's difficulty from the floor and its graph depth.
func Difficulty(cfg *Config, depth int) int {
	diff := max(cfg.Floor, 1) + depth/2
	if cfg.MaxDifficulty > 0 {
		diff = min(diff, cfg.MaxDifficulty)
	}
	return diff
}

// NewRoom lays out and populates a single room. The start room is always
// bare.
func NewRoom(cfg *Config, kind RoomKind, doors []gamemap.Direction, difficulty int) *RoomSpec {
	s := &RoomSpec{
		Kind:       kind,
		Template:   TemplateEmpty,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Doors:      append([]gamemap.Direction(nil), doors...),
		Difficulty: max(difficulty, 1),
	}
	shell := s.Shell()
	if kind != RoomStart {
		s.Template = PickTemplate(cfg.TemplateWeights, cfg.Rand)
		s.Obstacles = BuildTemplate(s.Template, shell, cfg.Rand)
	}
	content := Populate(cfg, Layout{Kind: kind, Shell: shell, Obstacles: s.Obstacles, Difficulty: s.Difficulty})
	s.Enemies = content.Enemies
	s.Items = content.Items
	return s
}

// AdHocRoom builds a four-door combat room that belongs to no graph. It is
// the degraded path taken when a door has no graph edge behind it.
func AdHocRoom(cfg *Config, difficulty int) *RoomSpec {
	s := NewRoom(cfg, RoomCombat, gamemap.Directions[:], difficulty)
	s.ID = AdHocID
	return s
}
