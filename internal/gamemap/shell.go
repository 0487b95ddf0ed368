package gamemap

import "roomcrawl/internal/geom"

// Default room frame dimensions, in room pixels.
const (
	WallThickness = 20.0
	DoorWidth     = 80.0
	// LaneDepth is how far a door's approach lane reaches into the room.
	LaneDepth = 110.0
)

// Shell is the static frame of a room: perimeter walls with a gap per door.
type Shell struct {
	Width, Height float64
	Walls         []geom.Rect
	Doors         map[Direction]geom.Rect
}

// NewShell builds the walls of a width x height room. Each side in doors
// gets a DoorWidth gap centered on that side and a door rectangle filling
// the gap; other sides are solid.
func NewShell(width, height float64, doors []Direction) *Shell {
	s := &Shell{Width: width, Height: height, Doors: make(map[Direction]geom.Rect, len(doors))}
	has := [4]bool{}
	for _, d := range doors {
		if d.Valid() {
			has[d] = true
		}
	}
	for _, d := range Directions {
		s.Walls = append(s.Walls, s.sideWalls(d, has[d])...)
		if has[d] {
			s.Doors[d] = s.DoorRect(d)
		}
	}
	return s
}

// Bounds is the full room rectangle, walls included.
func (s *Shell) Bounds() geom.Rect { return geom.R(0, 0, s.Width, s.Height) }

// Interior is the walkable area inside the walls.
func (s *Shell) Interior() geom.Rect { return s.Bounds().Inset(WallThickness) }

// DoorRect returns the rectangle a door on side d occupies.
func (s *Shell) DoorRect(d Direction) geom.Rect {
	t := WallThickness
	switch d {
	case North:
		return geom.R(s.Width/2-DoorWidth/2, 0, DoorWidth, t)
	case South:
		return geom.R(s.Width/2-DoorWidth/2, s.Height-t, DoorWidth, t)
	case East:
		return geom.R(s.Width-t, s.Height/2-DoorWidth/2, t, DoorWidth)
	default:
		return geom.R(0, s.Height/2-DoorWidth/2, t, DoorWidth)
	}
}

// Lane returns the approach corridor in front of the door on side d.
// Keeping it free of obstacles guarantees the door can be reached.
func (s *Shell) Lane(d Direction) geom.Rect {
	t := WallThickness
	w := DoorWidth + 2*t
	switch d {
	case North:
		return geom.R(s.Width/2-w/2, t, w, LaneDepth)
	case South:
		return geom.R(s.Width/2-w/2, s.Height-t-LaneDepth, w, LaneDepth)
	case East:
		return geom.R(s.Width-t-LaneDepth, s.Height/2-w/2, LaneDepth, w)
	default:
		return geom.R(t, s.Height/2-w/2, LaneDepth, w)
	}
}

// EntryPoint is where a body of the given radius appears after coming in
// through the door on side d.
func (s *Shell) EntryPoint(d Direction, radius float64) geom.Vec2 {
	in := WallThickness + radius + 24
	switch d {
	case North:
		return geom.V(s.Width/2, in)
	case South:
		return geom.V(s.Width/2, s.Height-in)
	case East:
		return geom.V(s.Width-in, s.Height/2)
	default:
		return geom.V(in, s.Height/2)
	}
}

// sideWalls returns the wall strips of one side, split around the door gap
// when open is set. Corners belong to the north and south strips.
func (s *Shell) sideWalls(d Direction, open bool) []geom.Rect {
	t := WallThickness
	switch d {
	case North, South:
		y := 0.0
		if d == South {
			y = s.Height - t
		}
		if !open {
			return []geom.Rect{geom.R(0, y, s.Width, t)}
		}
		gap := s.DoorRect(d)
		return []geom.Rect{
			geom.R(0, y, gap.X, t),
			geom.R(gap.MaxX(), y, s.Width-gap.MaxX(), t),
		}
	default:
		x := 0.0
		if d == East {
			x = s.Width - t
		}
		if !open {
			return []geom.Rect{geom.R(x, t, t, s.Height-2*t)}
		}
		gap := s.DoorRect(d)
		return []geom.Rect{
			geom.R(x, t, t, gap.Y-t),
			geom.R(x, gap.MaxY(), t, s.Height-t-gap.MaxY()),
		}
	}
}
