package system

import (
	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
)

// Sprites and colors of the built-in entity kinds.
const (
	SpriteHead    = '@'
	SpriteSegment = 'o'
	SpriteApple   = '*'
	SpriteWall    = '#'
)

// RegisterComponents registers every game component type with m.
func RegisterComponents(m *ecs.Manager) {
	ecs.Register[component.Position](m)
	ecs.Register[component.Velocity](m)
	ecs.Register[component.Render](m)
	ecs.Register[component.Collidable](m)
	ecs.Register[component.Arena](m)
	ecs.Register[component.Snake](m)
	ecs.Register[component.Segment](m)
	ecs.Register[component.Apple](m)
	ecs.Register[component.Wall](m)
	ecs.Register[component.Kind](m)
	ecs.Register[component.Debug](m)
	ecs.Register[component.Score](m)
}

func SpawnArena(m *ecs.Manager, w, h int16) ecs.EntityID {
	id := m.CreateEntity()
	ecs.Add(m, id, component.Arena{Width: w, Height: h})
	return id
}

// SpawnSnake creates the head at pos heading in dir, followed by length-1
// segments laid out behind it.
func SpawnSnake(m *ecs.Manager, pos component.Position, dir component.Direction, length int, debug bool) ecs.EntityID {
	id := m.CreateEntity()
	ecs.Add(m, id, pos)
	ecs.Add(m, id, dir.Velocity())
	ecs.Add(m, id, component.Render{Sprite: SpriteHead, Color: "lime"})
	ecs.Add(m, id, component.Collidable{})
	ecs.Add(m, id, component.Kind{Kind: component.KindSnake})
	ecs.Add(m, id, component.Score{})
	if debug {
		ecs.Add(m, id, component.Debug{})
	}

	snake := component.Snake{Alive: true}
	back := dir.Opposite().Velocity()
	cur := pos
	for i := 1; i < length; i++ {
		cur = component.Position{X: cur.X + back.X, Y: cur.Y + back.Y}
		snake.Body = append(snake.Body, SpawnSegment(m, id, cur))
	}
	ecs.Add(m, id, snake)
	return id
}

func SpawnSegment(m *ecs.Manager, owner ecs.EntityID, pos component.Position) ecs.EntityID {
	id := m.CreateEntity()
	ecs.Add(m, id, pos)
	ecs.Add(m, id, component.Segment{Owner: owner})
	ecs.Add(m, id, component.Render{Sprite: SpriteSegment, Color: "green"})
	ecs.Add(m, id, component.Kind{Kind: component.KindSegment})
	return id
}

// SpawnApple creates a dead apple; AppleSpawnSystem places it.
func SpawnApple(m *ecs.Manager, debug bool) ecs.EntityID {
	id := m.CreateEntity()
	ecs.Add(m, id, component.Apple{})
	ecs.Add(m, id, component.Position{X: -1, Y: -1})
	ecs.Add(m, id, component.Render{Sprite: SpriteApple, Color: "red"})
	ecs.Add(m, id, component.Collidable{})
	ecs.Add(m, id, component.Kind{Kind: component.KindApple})
	if debug {
		ecs.Add(m, id, component.Debug{})
	}
	return id
}

func SpawnWall(m *ecs.Manager, pos component.Position) ecs.EntityID {
	id := m.CreateEntity()
	ecs.Add(m, id, pos)
	ecs.Add(m, id, component.Wall{})
	ecs.Add(m, id, component.Render{Sprite: SpriteWall, Color: "gray"})
	ecs.Add(m, id, component.Kind{Kind: component.KindWall})
	return id
}
