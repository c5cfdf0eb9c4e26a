package component

import "github.com/snekecs/snek/internal/core/ecs"

// Snake is the player head. Body lists the tail segment entities from the
// neck to the tip. Pure data, zero behavior: all mutations happen in systems.
type Snake struct {
	Alive bool
	Body  []ecs.EntityID
	Grow  int // segments still to append on coming moves
}

// Length counts the head plus every body segment.
func (s *Snake) Length() int { return 1 + len(s.Body) }

// Segment is one tail cell following Owner.
type Segment struct {
	Owner ecs.EntityID
}

type Apple struct {
	Alive bool
}

// Wall is an impassable cell loaded from the level.
type Wall struct{}

// Collidable records the last contact of this tick. With is the entity that
// was hit.
type Collidable struct {
	Collided bool
	With     ecs.EntityID
}

// Score is attached to the snake.
type Score struct {
	Points int
	Apples int
	Speed  int
}
