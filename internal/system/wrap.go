package system

import (
	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
)

// WrapBoundarySystem teleports moving entities that left the arena to the
// opposite edge.
type WrapBoundarySystem struct{}

func NewWrapBoundarySystem() *WrapBoundarySystem { return &WrapBoundarySystem{} }

func (s *WrapBoundarySystem) Update(m *ecs.Manager, q *ecs.QueryCache, _ event.Action) {
	_, arena, ok := ecs.First[component.Arena](m)
	if !ok {
		return
	}
	for _, id := range ecs.WithBoth[component.Velocity, component.Position](q, m) {
		pos, ok := ecs.GetMut[component.Position](m, id)
		if !ok {
			continue
		}
		pos.X = wrap(pos.X, arena.Width)
		pos.Y = wrap(pos.Y, arena.Height)
	}
}

func wrap(v, size int16) int16 {
	switch {
	case v >= size:
		return 0
	case v < 0:
		return size - 1
	}
	return v
}
