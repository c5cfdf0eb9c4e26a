package system

import (
	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
)

// CollisionSystem compares every living head with apples, segments and walls.
// Apples hit by a head and heads hitting an obstacle are flagged Collided;
// DeathSystem acts on the flags.
type CollisionSystem struct {
	occupied map[component.Position]ecs.EntityID
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{occupied: make(map[component.Position]ecs.EntityID, 256)}
}

func (s *CollisionSystem) Update(m *ecs.Manager, q *ecs.QueryCache, _ event.Action) {
	heads := ecs.WithBoth[component.Snake, component.Position](q, m)
	if len(heads) == 0 {
		return
	}

	clear(s.occupied)
	for _, id := range ecs.WithBoth[component.Segment, component.Position](q, m) {
		pos, _ := ecs.Get[component.Position](m, id)
		s.occupied[pos] = id
	}
	for _, id := range ecs.WithBoth[component.Wall, component.Position](q, m) {
		pos, _ := ecs.Get[component.Position](m, id)
		s.occupied[pos] = id
	}

	apples := ecs.WithBoth[component.Apple, component.Position](q, m)
	for _, head := range heads {
		snake, ok := ecs.Get[component.Snake](m, head)
		if !ok || !snake.Alive {
			continue
		}
		hp, _ := ecs.Get[component.Position](m, head)

		if hit, ok := s.occupied[hp]; ok {
			markCollided(m, head, hit)
			continue
		}
		for _, apple := range apples {
			a, _ := ecs.Get[component.Apple](m, apple)
			ap, _ := ecs.Get[component.Position](m, apple)
			if a.Alive && ap == hp {
				markCollided(m, apple, head)
			}
		}
	}
}

func markCollided(m *ecs.Manager, id, with ecs.EntityID) {
	if c, ok := ecs.GetMut[component.Collidable](m, id); ok {
		c.Collided = true
		c.With = with
	}
}
