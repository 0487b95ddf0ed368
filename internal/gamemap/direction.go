package gamemap

import "fmt"

// Direction is one of the four sides of a room.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
	// NoDirection marks the absence of a side, e.g. the start room's entry.
	NoDirection
)

// Directions lists the four sides in clockwise order.
var Directions = [4]Direction{North, East, South, West}

// Valid reports whether d is one of the four sides.
func (d Direction) Valid() bool { return d < NoDirection }

// Opposite returns the side facing d. NoDirection is its own opposite.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return NoDirection
	}
	return (d + 2) % 4
}

// Delta returns the grid step taken when leaving through d. Y grows south.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case NoDirection:
		return "none"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// MarshalText writes the direction by name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText reads a direction name.
func (d *Direction) UnmarshalText(b []byte) error {
	for _, c := range Directions {
		if c.String() == string(b) {
			*d = c
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", b)
}
