package component

// Render draws Sprite in the named color (any tcell color name).
type Render struct {
	Sprite rune
	Color  string
}

type EntityKind uint8

const (
	KindSnake EntityKind = iota
	KindApple
	KindSegment
	KindWall
)

func (k EntityKind) String() string {
	switch k {
	case KindSnake:
		return "Snake"
	case KindApple:
		return "Apple"
	case KindSegment:
		return "Segment"
	default:
		return "Wall"
	}
}

type Kind struct {
	Kind EntityKind
}

// Debug mirrors an entity's state for the debug overlay.
type Debug struct {
	Name     string
	X, Y     int16
	Alive    bool
	Collided bool
}
