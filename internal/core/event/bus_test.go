package event

import (
	"testing"

	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/stretchr/testify/assert"
)

func TestBusDeliversNextSwap(t *testing.T) {
	b := NewBus()
	var got []AppleEaten
	Subscribe(b, func(ev AppleEaten) { got = append(got, ev) })

	Emit(b, AppleEaten{Snake: ecs.NewEntityID(1, 0), Length: 4})
	assert.Equal(t, 1, Pending[AppleEaten](b))
	assert.Equal(t, 0, b.DispatchAll(), "nothing is readable before a swap")
	assert.Empty(t, got)

	b.SwapBuffers()
	assert.Equal(t, 0, Pending[AppleEaten](b))
	assert.Equal(t, 1, b.DispatchAll())
	assert.Equal(t, []AppleEaten{{Snake: ecs.NewEntityID(1, 0), Length: 4}}, got)

	b.SwapBuffers()
	assert.Equal(t, 0, b.DispatchAll(), "events are delivered once")
}

func TestBusRoutesByType(t *testing.T) {
	b := NewBus()
	var eaten, died int
	Subscribe(b, func(AppleEaten) { eaten++ })
	Subscribe(b, func(SnakeDied) { died++ })
	Subscribe(b, func(SnakeDied) { died++ })

	Emit(b, SnakeDied{Cause: "hit Wall"})
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, 0, eaten)
	assert.Equal(t, 2, died)
}

func TestBusEventsWithoutHandlersAreCounted(t *testing.T) {
	b := NewBus()
	Emit(b, SnakeDied{})
	Emit(b, SnakeDied{})
	b.SwapBuffers()
	assert.Equal(t, 2, b.DispatchAll())
}
