package system

import (
	"context"
	"time"

	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
	"go.uber.org/zap"
)

// Scheduler owns the entity manager, the query cache and the ordered system
// list, and drives one tick at a time. Everything runs on the caller's
// goroutine; the input queue is the only thing shared with other goroutines.
type Scheduler struct {
	manager *ecs.Manager
	cache   *ecs.QueryCache
	systems []System
	input   *event.Queue
	state   State
	stop    func() bool
	log     *zap.Logger
}

func NewScheduler(input *event.Queue, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		manager: ecs.NewManager(),
		cache:   ecs.NewQueryCache(),
		systems: make([]System, 0, 16),
		input:   input,
		log:     log,
	}
}

func (s *Scheduler) Manager() *ecs.Manager      { return s.manager }
func (s *Scheduler) QueryCache() *ecs.QueryCache { return s.cache }
func (s *Scheduler) State() State                { return s.state }
func (s *Scheduler) Len() int                    { return len(s.systems) }

// Register appends sys; systems run in the order they were registered.
func (s *Scheduler) Register(sys System) {
	if s.state == StateRunning {
		panic("system: Register called during a tick")
	}
	s.systems = append(s.systems, sys)
}

// StopWhen installs a predicate checked after every tick by Run.
func (s *Scheduler) StopWhen(fn func() bool) {
	s.stop = fn
}

// Tick takes at most one pending action without blocking, runs every system
// once with it and advances the tick counter. It returns the action seen.
func (s *Scheduler) Tick() event.Action {
	if s.state == StateRunning {
		panic("system: Tick called from inside a system")
	}
	action := event.ActionNone
	if s.input != nil {
		if a, ok := s.input.TryPop(); ok {
			action = a
		}
	}

	s.state = StateRunning
	for _, sys := range s.systems {
		sys.Update(s.manager, s.cache, action)
	}
	s.state = StateIdle

	frame := s.manager.AdvanceFrame()
	if action != event.ActionNone {
		s.log.Debug("tick", zap.Uint64("frame", frame), zap.Stringer("action", action))
	}
	return action
}

// Run ticks until ctx is done, a tick carried ActionExit, or the stop
// predicate reports true. interval is consulted before every tick so the pace
// can change while running.
func (s *Scheduler) Run(ctx context.Context, interval func() time.Duration) error {
	timer := time.NewTimer(interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if s.Tick() == event.ActionExit {
				s.log.Info("exit requested", zap.Uint64("frame", s.manager.Frame()))
				return nil
			}
			if s.stop != nil && s.stop() {
				s.log.Info("stop condition reached", zap.Uint64("frame", s.manager.Frame()))
				return nil
			}
			timer.Reset(interval())
		}
	}
}
