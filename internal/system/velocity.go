package system

import (
	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
)

// VelocitySystem steers every living snake from the tick's action.
type VelocitySystem struct{}

func NewVelocitySystem() *VelocitySystem { return &VelocitySystem{} }

func (s *VelocitySystem) Update(m *ecs.Manager, q *ecs.QueryCache, action event.Action) {
	dir, ok := directionFor(action)
	if !ok {
		return
	}
	want := dir.Velocity()
	for _, id := range ecs.WithBoth[component.Snake, component.Velocity](q, m) {
		snake, vel, ok := ecs.Pair[component.Snake, component.Velocity](m, id)
		if !ok || !snake.Alive {
			continue
		}
		// Turning straight back would run the head into its own neck.
		if len(snake.Body) > 0 && want.X == -vel.X && want.Y == -vel.Y {
			continue
		}
		*vel = want
	}
}

func directionFor(a event.Action) (component.Direction, bool) {
	switch a {
	case event.ActionUp:
		return component.DirUp, true
	case event.ActionDown:
		return component.DirDown, true
	case event.ActionLeft:
		return component.DirLeft, true
	case event.ActionRight:
		return component.DirRight, true
	}
	return 0, false
}
