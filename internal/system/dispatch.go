package system

import (
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
)

// EventDispatchSystem rotates the bus and delivers last tick's game events.
// Registered first so every later system sees the handlers' effects.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Update(_ *ecs.Manager, _ *ecs.QueryCache, _ event.Action) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
