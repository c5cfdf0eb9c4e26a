package system

import (
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
)

// System is the interface every ECS system implements. Update runs once per
// tick, in registration order, and may read or write any component, create or
// remove entities, and rely on changes made by earlier systems in the same tick.
// Absence of an entity or component means "nothing to do", never an error.
type System interface {
	Update(m *ecs.Manager, q *ecs.QueryCache, action event.Action)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(m *ecs.Manager, q *ecs.QueryCache, action event.Action)

func (f SystemFunc) Update(m *ecs.Manager, q *ecs.QueryCache, action event.Action) {
	f(m, q, action)
}

// State is the scheduler's state: idle between ticks, running inside one.
type State uint8

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}
