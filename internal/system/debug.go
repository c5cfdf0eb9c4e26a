package system

import (
	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
)

// DebugSystem mirrors position, liveness and collision state into the Debug
// component of every entity that carries one.
type DebugSystem struct{}

func NewDebugSystem() *DebugSystem { return &DebugSystem{} }

func (s *DebugSystem) Update(m *ecs.Manager, q *ecs.QueryCache, _ event.Action) {
	for _, id := range ecs.WithBoth[component.Kind, component.Debug](q, m) {
		kind, dbg, ok := ecs.Pair[component.Kind, component.Debug](m, id)
		if !ok {
			continue
		}
		dbg.Name = kind.Kind.String()
		if p, ok := ecs.Get[component.Position](m, id); ok {
			dbg.X, dbg.Y = p.X, p.Y
		}
		if c, ok := ecs.Get[component.Collidable](m, id); ok {
			dbg.Collided = c.Collided
		}
		switch kind.Kind {
		case component.KindSnake:
			snake, _ := ecs.Get[component.Snake](m, id)
			dbg.Alive = snake.Alive
		case component.KindApple:
			apple, _ := ecs.Get[component.Apple](m, id)
			dbg.Alive = apple.Alive
		default:
			dbg.Alive = m.Alive(id)
		}
	}
}
