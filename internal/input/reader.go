package input

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/snekecs/snek/internal/core/event"
	"go.uber.org/zap"
)

// Reader turns terminal key presses into actions on a Queue. It runs on its
// own goroutine and never waits on the simulation.
type Reader struct {
	screen tcell.Screen
	keys   KeyMap
	queue  *event.Queue
	log    *zap.Logger
}

func NewReader(screen tcell.Screen, keys KeyMap, queue *event.Queue, log *zap.Logger) *Reader {
	return &Reader{screen: screen, keys: keys, queue: queue, log: log}
}

// Run polls events until the screen is finalised or ctx is done. Because
// PollEvent blocks, cancelling ctx takes effect at the next event; closing
// the screen stops it immediately.
func (r *Reader) Run(ctx context.Context) {
	for {
		ev := r.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		a := r.keys.Resolve(key)
		if a == event.ActionNone {
			continue
		}
		if !r.queue.Push(a) {
			r.log.Debug("input queue full, action dropped", zap.Stringer("action", a))
		}
	}
}
