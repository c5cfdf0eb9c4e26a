package system

import (
	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
)

// MoveSystem adds velocity into position. A snake's body follows its head and
// pending growth fills the cell the tail just left.
type MoveSystem struct{}

func NewMoveSystem() *MoveSystem { return &MoveSystem{} }

func (s *MoveSystem) Update(m *ecs.Manager, q *ecs.QueryCache, _ event.Action) {
	for _, id := range ecs.WithBoth[component.Velocity, component.Position](q, m) {
		snake, isSnake := ecs.GetMut[component.Snake](m, id)
		if isSnake && !snake.Alive {
			continue
		}
		vel, pos, ok := ecs.Pair[component.Velocity, component.Position](m, id)
		if !ok {
			continue
		}
		prev := *pos
		pos.X += vel.X
		pos.Y += vel.Y
		if isSnake {
			s.follow(m, id, snake, prev)
		}
	}
}

// follow shifts every segment into the cell of the one before it, starting at
// the head's previous cell, and grows the tail when growth is pending.
func (s *MoveSystem) follow(m *ecs.Manager, head ecs.EntityID, snake *component.Snake, prev component.Position) {
	for _, seg := range snake.Body {
		p, ok := ecs.GetMut[component.Position](m, seg)
		if !ok {
			continue
		}
		*p, prev = prev, *p
	}
	if snake.Grow > 0 {
		snake.Body = append(snake.Body, SpawnSegment(m, head, prev))
		snake.Grow--
	}
}
