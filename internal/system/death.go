package system

import (
	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
	"go.uber.org/zap"
)

// DeathSystem resolves this tick's collisions: eaten apples die and are queued
// for removal, the eater grows, and a snake that hit something dies once.
type DeathSystem struct {
	bus *event.Bus
	log *zap.Logger
}

func NewDeathSystem(bus *event.Bus, log *zap.Logger) *DeathSystem {
	return &DeathSystem{bus: bus, log: log}
}

func (s *DeathSystem) Update(m *ecs.Manager, q *ecs.QueryCache, _ event.Action) {
	for _, id := range ecs.WithBoth[component.Apple, component.Collidable](q, m) {
		apple, c, ok := ecs.Pair[component.Apple, component.Collidable](m, id)
		if !ok || !c.Collided {
			continue
		}
		eater := c.With
		c.Collided = false
		apple.Alive = false
		m.MarkForRemoval(id)

		snake, ok := ecs.GetMut[component.Snake](m, eater)
		if !ok {
			continue
		}
		snake.Grow++
		event.Emit(s.bus, event.AppleEaten{Snake: eater, Apple: id, Length: snake.Length() + snake.Grow})
	}

	for _, id := range ecs.WithBoth[component.Snake, component.Collidable](q, m) {
		snake, c, ok := ecs.Pair[component.Snake, component.Collidable](m, id)
		if !ok || !c.Collided || !snake.Alive {
			continue
		}
		snake.Alive = false
		cause := "collision"
		if k, ok := ecs.Get[component.Kind](m, c.With); ok {
			cause = "hit " + k.Kind.String()
		}
		event.Emit(s.bus, event.SnakeDied{Snake: id, Cause: cause})
		s.log.Info("snake died",
			zap.Stringer("snake", id),
			zap.String("cause", cause),
			zap.Int("length", snake.Length()),
			zap.Uint64("frame", m.Frame()))
	}
}
