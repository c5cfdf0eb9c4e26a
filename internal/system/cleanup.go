package system

import (
	"github.com/snekecs/snek/internal/core/ecs"
	"github.com/snekecs/snek/internal/core/event"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity removal queue. It runs right after
// DeathSystem so freed ids are reusable by spawns in the same tick.
type CleanupSystem struct {
	log *zap.Logger
}

func NewCleanupSystem(log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{log: log}
}

func (s *CleanupSystem) Update(m *ecs.Manager, _ *ecs.QueryCache, _ event.Action) {
	if n := m.FlushRemovals(); n > 0 {
		s.log.Debug("entities removed", zap.Int("count", n), zap.Uint64("frame", m.Frame()))
	}
}
