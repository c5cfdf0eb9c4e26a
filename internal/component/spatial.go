package component

// Position is a cell on the arena grid.
type Position struct {
	X int16
	Y int16
}

// Velocity is the per-tick displacement of an entity.
type Velocity struct {
	X int16
	Y int16
}

// Arena is the playfield singleton. Interior cells are 0..Width-1 by 0..Height-1.
type Arena struct {
	Width  int16
	Height int16
}

// Contains reports whether p lies inside the arena.
func (a Arena) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < a.Width && p.Y < a.Height
}

// Direction is a heading on the grid.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirRight
	DirLeft
)

func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirRight:
		return DirLeft
	default:
		return DirRight
	}
}

// Velocity returns the unit velocity for d.
func (d Direction) Velocity() Velocity {
	switch d {
	case DirUp:
		return Velocity{X: 0, Y: -1}
	case DirDown:
		return Velocity{X: 0, Y: 1}
	case DirRight:
		return Velocity{X: 1, Y: 0}
	default:
		return Velocity{X: -1, Y: 0}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	default:
		return "left"
	}
}

// ParseDirection accepts the names produced by String.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range []Direction{DirUp, DirDown, DirRight, DirLeft} {
		if d.String() == s {
			return d, true
		}
	}
	return DirUp, false
}
