package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFOAndNonBlocking(t *testing.T) {
	q := NewQueue(2)
	assert.True(t, q.Push(ActionUp))
	assert.True(t, q.Push(ActionLeft))
	assert.False(t, q.Push(ActionExit), "full queue drops the newest action")
	assert.Equal(t, 2, q.Len())

	a, ok := q.TryPop()
	assert.True(t, ok)
	assert.Equal(t, ActionUp, a)
	a, ok = q.TryPop()
	assert.True(t, ok)
	assert.Equal(t, ActionLeft, a)

	a, ok = q.TryPop()
	assert.False(t, ok)
	assert.Equal(t, ActionNone, a)
}

func TestQueueMinimumSize(t *testing.T) {
	q := NewQueue(0)
	assert.True(t, q.Push(ActionDown))
	assert.False(t, q.Push(ActionDown))
}

func TestParseAction(t *testing.T) {
	for _, a := range []Action{ActionNone, ActionUp, ActionDown, ActionLeft, ActionRight, ActionExit} {
		got, ok := ParseAction(a.String())
		assert.True(t, ok, a.String())
		assert.Equal(t, a, got)
	}
	_, ok := ParseAction("jump")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Action(42).String())
}
