package system

import (
	"math/rand"
	"testing"

	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
	coresys "github.com/snekecs/snek/internal/core/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type lengthRules struct{}

func (lengthRules) AppleScore(length, _ int) int { return length * 10 }

type world struct {
	sched *coresys.Scheduler
	m     *ecs.Manager
	bus   *event.Bus
	input *event.Queue
}

// newWorld wires the simulation systems in game order around an empty
// w x h arena. apples is the number of apples AppleSpawnSystem maintains.
func newWorld(t *testing.T, w, h int16, apples int) *world {
	t.Helper()
	input := event.NewQueue(8)
	sched := coresys.NewScheduler(input, zap.NewNop())
	bus := event.NewBus()
	m := sched.Manager()
	RegisterComponents(m)
	SpawnArena(m, w, h)

	sched.Register(NewEventDispatchSystem(bus))
	sched.Register(NewVelocitySystem())
	sched.Register(NewMoveSystem())
	sched.Register(NewWrapBoundarySystem())
	sched.Register(NewCollisionSystem())
	sched.Register(NewDeathSystem(bus, zap.NewNop()))
	sched.Register(NewCleanupSystem(zap.NewNop()))
	sched.Register(NewAppleSpawnSystem(apples, rand.New(rand.NewSource(1)), false))
	sched.Register(NewScoreSystem(bus, lengthRules{}, 1, 20))
	sched.Register(NewDebugSystem())
	return &world{sched: sched, m: m, bus: bus, input: input}
}

func (w *world) tick(a event.Action) {
	if a != event.ActionNone {
		w.input.Push(a)
	}
	w.sched.Tick()
}

func (w *world) pos(id ecs.EntityID) component.Position {
	p, _ := ecs.Get[component.Position](w.m, id)
	return p
}

func placeApple(m *ecs.Manager, x, y int16) ecs.EntityID {
	id := SpawnApple(m, false)
	a, p, _ := ecs.Pair[component.Apple, component.Position](m, id)
	a.Alive = true
	*p = component.Position{X: x, Y: y}
	return id
}

func TestSpawnSnakeLaysBodyBehindHead(t *testing.T) {
	m := ecs.NewManager()
	RegisterComponents(m)
	head := SpawnSnake(m, component.Position{X: 5, Y: 2}, component.DirRight, 3, false)

	snake, ok := ecs.Get[component.Snake](m, head)
	require.True(t, ok)
	require.Len(t, snake.Body, 2)
	assert.True(t, snake.Alive)
	p1, _ := ecs.Get[component.Position](m, snake.Body[0])
	p2, _ := ecs.Get[component.Position](m, snake.Body[1])
	assert.Equal(t, component.Position{X: 4, Y: 2}, p1)
	assert.Equal(t, component.Position{X: 3, Y: 2}, p2)
	seg, _ := ecs.Get[component.Segment](m, snake.Body[0])
	assert.Equal(t, head, seg.Owner)
	assert.False(t, ecs.Has[component.Debug](m, head))
}

func TestMoveBodyFollowsHead(t *testing.T) {
	w := newWorld(t, 10, 5, 0)
	head := SpawnSnake(w.m, component.Position{X: 2, Y: 2}, component.DirRight, 3, false)
	w.tick(event.ActionNone)

	snake, _ := ecs.Get[component.Snake](w.m, head)
	assert.Equal(t, component.Position{X: 3, Y: 2}, w.pos(head))
	assert.Equal(t, component.Position{X: 2, Y: 2}, w.pos(snake.Body[0]))
	assert.Equal(t, component.Position{X: 1, Y: 2}, w.pos(snake.Body[1]))
	assert.Equal(t, uint64(1), w.m.Frame())
}

func TestVelocityIgnoresReversalWithBody(t *testing.T) {
	w := newWorld(t, 10, 5, 0)
	head := SpawnSnake(w.m, component.Position{X: 5, Y: 2}, component.DirRight, 2, false)

	w.tick(event.ActionLeft)
	assert.Equal(t, component.Position{X: 6, Y: 2}, w.pos(head))

	w.tick(event.ActionUp)
	assert.Equal(t, component.Position{X: 6, Y: 1}, w.pos(head))
	v, _ := ecs.Get[component.Velocity](w.m, head)
	assert.Equal(t, component.DirUp.Velocity(), v)
}

func TestVelocityAllowsReversalWithoutBody(t *testing.T) {
	w := newWorld(t, 10, 5, 0)
	head := SpawnSnake(w.m, component.Position{X: 5, Y: 2}, component.DirRight, 1, false)
	w.tick(event.ActionLeft)
	assert.Equal(t, component.Position{X: 4, Y: 2}, w.pos(head))
}

func TestWrapBoundary(t *testing.T) {
	w := newWorld(t, 10, 5, 0)
	head := SpawnSnake(w.m, component.Position{X: 9, Y: 0}, component.DirRight, 1, false)

	w.tick(event.ActionNone)
	assert.Equal(t, component.Position{X: 0, Y: 0}, w.pos(head))

	w.tick(event.ActionUp)
	assert.Equal(t, component.Position{X: 0, Y: 4}, w.pos(head))

	w.tick(event.ActionLeft)
	assert.Equal(t, component.Position{X: 9, Y: 4}, w.pos(head))
}

func TestWrapHelper(t *testing.T) {
	assert.Equal(t, int16(0), wrap(10, 10))
	assert.Equal(t, int16(9), wrap(-1, 10))
	assert.Equal(t, int16(4), wrap(4, 10))
}

func TestEatingGrowsAndScores(t *testing.T) {
	w := newWorld(t, 10, 5, 0)
	head := SpawnSnake(w.m, component.Position{X: 1, Y: 1}, component.DirRight, 1, false)
	apple := placeApple(w.m, 2, 1)

	w.tick(event.ActionNone)
	assert.False(t, w.m.Alive(apple), "eaten apple is removed in the same tick")
	snake, _ := ecs.Get[component.Snake](w.m, head)
	assert.Equal(t, 1, snake.Grow)
	assert.Equal(t, 1, event.Pending[event.AppleEaten](w.bus))

	w.tick(event.ActionNone)
	snake, _ = ecs.Get[component.Snake](w.m, head)
	require.Len(t, snake.Body, 1)
	assert.Equal(t, 0, snake.Grow)
	assert.Equal(t, component.Position{X: 2, Y: 1}, w.pos(snake.Body[0]))

	score, _ := ecs.Get[component.Score](w.m, head)
	assert.Equal(t, component.Score{Points: 20, Apples: 1, Speed: 1}, score)
}

func TestSelfCollisionKillsSnake(t *testing.T) {
	w := newWorld(t, 10, 5, 0)
	head := SpawnSnake(w.m, component.Position{X: 5, Y: 2}, component.DirRight, 5, false)
	var deaths []event.SnakeDied
	event.Subscribe(w.bus, func(ev event.SnakeDied) { deaths = append(deaths, ev) })

	w.tick(event.ActionUp)
	w.tick(event.ActionLeft)
	snake, _ := ecs.Get[component.Snake](w.m, head)
	require.True(t, snake.Alive)

	w.tick(event.ActionDown)
	snake, _ = ecs.Get[component.Snake](w.m, head)
	assert.False(t, snake.Alive)
	assert.Equal(t, 1, event.Pending[event.SnakeDied](w.bus))

	frozen := w.pos(head)
	w.tick(event.ActionNone)
	assert.Equal(t, frozen, w.pos(head), "dead snakes stop moving")
	require.Len(t, deaths, 1)
	assert.Equal(t, "hit Segment", deaths[0].Cause)
	assert.Equal(t, head, deaths[0].Snake)
}

func TestWallCollision(t *testing.T) {
	w := newWorld(t, 10, 5, 0)
	head := SpawnSnake(w.m, component.Position{X: 2, Y: 2}, component.DirRight, 1, false)
	wall := SpawnWall(w.m, component.Position{X: 3, Y: 2})

	w.tick(event.ActionNone)
	snake, _ := ecs.Get[component.Snake](w.m, head)
	assert.False(t, snake.Alive)
	c, _ := ecs.Get[component.Collidable](w.m, head)
	assert.Equal(t, wall, c.With)
}

func TestAppleSpawnFindsLastFreeCell(t *testing.T) {
	w := newWorld(t, 2, 2, 1)
	SpawnSnake(w.m, component.Position{X: 0, Y: 0}, component.DirRight, 1, false)
	ecs.Set(w.m, ecs.IDs[component.Snake](w.m)[0], component.Velocity{})
	SpawnWall(w.m, component.Position{X: 1, Y: 0})
	SpawnWall(w.m, component.Position{X: 0, Y: 1})

	w.tick(event.ActionNone)
	ids := ecs.IDs[component.Apple](w.m)
	require.Len(t, ids, 1)
	apple, _ := ecs.Get[component.Apple](w.m, ids[0])
	assert.True(t, apple.Alive)
	assert.Equal(t, component.Position{X: 1, Y: 1}, w.pos(ids[0]))
}

func TestAppleSpawnReusesFreedID(t *testing.T) {
	w := newWorld(t, 10, 5, 1)
	SpawnSnake(w.m, component.Position{X: 1, Y: 1}, component.DirRight, 1, false)
	apple := placeApple(w.m, 2, 1)

	w.tick(event.ActionNone)
	ids := ecs.IDs[component.Apple](w.m)
	require.Len(t, ids, 1)
	assert.Equal(t, apple.Index(), ids[0].Index())
	assert.Equal(t, apple.Generation()+1, ids[0].Generation())
	assert.False(t, w.m.Alive(apple))
}

func TestAppleSpawnIdleWhenSnakeDead(t *testing.T) {
	w := newWorld(t, 10, 5, 3)
	head := SpawnSnake(w.m, component.Position{X: 1, Y: 1}, component.DirRight, 1, false)
	s, _ := ecs.GetMut[component.Snake](w.m, head)
	s.Alive = false

	w.tick(event.ActionNone)
	assert.Empty(t, ecs.IDs[component.Apple](w.m))
}

func TestDebugMirrorsState(t *testing.T) {
	w := newWorld(t, 10, 5, 0)
	head := SpawnSnake(w.m, component.Position{X: 1, Y: 1}, component.DirDown, 1, true)

	w.tick(event.ActionNone)
	dbg, ok := ecs.Get[component.Debug](w.m, head)
	require.True(t, ok)
	assert.Equal(t, component.Debug{Name: "Snake", X: 1, Y: 2, Alive: true}, dbg)
}

func TestScoreSpeedIsCapped(t *testing.T) {
	bus := event.NewBus()
	m := ecs.NewManager()
	RegisterComponents(m)
	head := SpawnSnake(m, component.Position{}, component.DirRight, 1, false)
	s := NewScoreSystem(bus, lengthRules{}, 2, 1)

	for i := 0; i < 6; i++ {
		event.Emit(bus, event.AppleEaten{Snake: head, Length: 2})
	}
	bus.SwapBuffers()
	bus.DispatchAll()
	s.Update(m, nil, event.ActionNone)

	score, _ := ecs.Get[component.Score](m, head)
	assert.Equal(t, 6, score.Apples)
	assert.Equal(t, 1, score.Speed)
	assert.Equal(t, 120, score.Points)
}
