package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/snekecs/snek/internal/component"
	"github.com/snekecs/snek/internal/config"
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
	coresys "github.com/snekecs/snek/internal/core/system"
	"github.com/snekecs/snek/internal/data"
	"github.com/snekecs/snek/internal/render"
	"github.com/snekecs/snek/internal/system"
	"go.uber.org/zap"
)

// Rules supplies the pace and scoring formulas.
type Rules interface {
	TickInterval(speed int) time.Duration
	AppleScore(length, speed int) int
}

// Sound is notified of every meal.
type Sound interface {
	Blip()
}

type Deps struct {
	Config *config.Config
	Level  *data.Level
	Screen *render.Screen
	Input  *event.Queue
	Rules  Rules
	Sound  Sound
	Rand   *rand.Rand
	Log    *zap.Logger
}

// Game is one round of snake on top of the ECS scheduler.
type Game struct {
	sched *coresys.Scheduler
	bus   *event.Bus
	rules Rules
	level *data.Level
	snake ecs.EntityID
	log   *zap.Logger
}

// Result summarises a finished or interrupted round.
type Result struct {
	Level  string
	Points int
	Apples int
	Length int
	Ticks  uint64
	Alive  bool
}

func New(d Deps) (*Game, error) {
	if err := d.Level.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", d.Level.Name, err)
	}
	dir, ok := component.ParseDirection(d.Level.Snake.Direction)
	if !ok {
		return nil, fmt.Errorf("level %s: %w: snake direction %q", d.Level.Name, data.ErrInvalidLevel, d.Level.Snake.Direction)
	}

	sched := coresys.NewScheduler(d.Input, d.Log)
	g := &Game{
		sched: sched,
		bus:   event.NewBus(),
		rules: d.Rules,
		level: d.Level,
		log:   d.Log,
	}

	m := sched.Manager()
	system.RegisterComponents(m)
	arena := component.Arena{Width: d.Level.Width, Height: d.Level.Height}
	system.SpawnArena(m, arena.Width, arena.Height)
	for _, c := range d.Level.WallCells() {
		system.SpawnWall(m, component.Position{X: c[0], Y: c[1]})
	}
	g.snake = system.SpawnSnake(m,
		component.Position{X: d.Level.Snake.X, Y: d.Level.Snake.Y},
		dir, d.Level.Snake.Length, d.Config.Game.Debug)

	if d.Sound != nil {
		event.Subscribe(g.bus, func(event.AppleEaten) { d.Sound.Blip() })
	}
	event.Subscribe(g.bus, func(ev event.SnakeDied) {
		g.log.Debug("death delivered", zap.String("cause", ev.Cause))
	})

	sched.Register(system.NewEventDispatchSystem(g.bus))
	sched.Register(system.NewVelocitySystem())
	sched.Register(system.NewMoveSystem())
	sched.Register(system.NewWrapBoundarySystem())
	sched.Register(system.NewCollisionSystem())
	sched.Register(system.NewDeathSystem(g.bus, d.Log))
	sched.Register(system.NewCleanupSystem(d.Log))
	sched.Register(system.NewAppleSpawnSystem(d.Level.Apples, d.Rand, d.Config.Game.Debug))
	sched.Register(system.NewScoreSystem(g.bus, d.Rules, d.Config.Speed.ApplesPerLevel, d.Config.Speed.MaxSpeed))
	sched.Register(system.NewDebugSystem())
	if d.Screen != nil {
		sched.Register(system.NewRenderSystem(d.Screen, arena, d.Level.Name))
	}
	sched.StopWhen(g.Over)

	g.log.Info("game ready",
		zap.String("level", d.Level.Name),
		zap.Int("entities", m.Pool().Len()),
		zap.Int("systems", sched.Len()))
	return g, nil
}

func (g *Game) Scheduler() *coresys.Scheduler { return g.sched }
func (g *Game) Bus() *event.Bus                { return g.bus }
func (g *Game) Snake() ecs.EntityID            { return g.snake }

// Tick advances the round by one tick.
func (g *Game) Tick() event.Action {
	return g.sched.Tick()
}

// Over reports whether the snake has died.
func (g *Game) Over() bool {
	snake, ok := ecs.Get[component.Snake](g.sched.Manager(), g.snake)
	return !ok || !snake.Alive
}

// Interval is the delay before the next tick at the snake's current speed.
func (g *Game) Interval() time.Duration {
	score, _ := ecs.Get[component.Score](g.sched.Manager(), g.snake)
	return g.rules.TickInterval(score.Speed)
}

// Run plays until the snake dies, the player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	return g.sched.Run(ctx, g.Interval)
}

func (g *Game) Result() Result {
	m := g.sched.Manager()
	score, _ := ecs.Get[component.Score](m, g.snake)
	snake, _ := ecs.Get[component.Snake](m, g.snake)
	return Result{
		Level:  g.level.Name,
		Points: score.Points,
		Apples: score.Apples,
		Length: snake.Length(),
		Ticks:  m.Frame(),
		Alive:  snake.Alive,
	}
}
