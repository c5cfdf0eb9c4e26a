package event

import "github.com/snekecs/snek/internal/core/ecs"

// Action is the input delivered to every system once per tick. The set is
// closed; the core forwards it unchanged.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionExit:
		return "exit"
	}
	return "unknown"
}

// ParseAction maps a config name back to an Action.
func ParseAction(s string) (Action, bool) {
	for a := ActionNone; a <= ActionExit; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return ActionNone, false
}

// Game events travel on the Bus and are delivered one tick after emission.

type AppleEaten struct {
	Snake  ecs.EntityID
	Apple  ecs.EntityID
	Length int // snake length after the meal, head included
}

type SnakeDied struct {
	Snake ecs.EntityID
	Cause string
}
