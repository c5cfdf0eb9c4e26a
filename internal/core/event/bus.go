package event

import (
	"reflect"
	"sync"
)

// topic holds everything the bus knows about one event type.
type topic struct {
	front    []any
	back     []any
	handlers []func(any)
}

// Bus is a double-buffered event bus. Events emitted during tick N land in
// the back buffer and are delivered during tick N+1, after SwapBuffers.
type Bus struct {
	mu     sync.Mutex // guards topic creation and Subscribe
	topics map[reflect.Type]*topic
}

func NewBus() *Bus {
	return &Bus{topics: make(map[reflect.Type]*topic, 8)}
}

func (b *Bus) topic(t reflect.Type) *topic {
	b.mu.Lock()
	defer b.mu.Unlock()
	tp, ok := b.topics[t]
	if !ok {
		tp = &topic{}
		b.topics[t] = tp
	}
	return tp
}

// Emit queues ev for delivery after the next swap.
func Emit[T any](b *Bus, ev T) {
	tp := b.topic(reflect.TypeFor[T]())
	tp.back = append(tp.back, ev)
}

// Subscribe registers fn for every future T.
func Subscribe[T any](b *Bus, fn func(T)) {
	tp := b.topic(reflect.TypeFor[T]())
	b.mu.Lock()
	tp.handlers = append(tp.handlers, func(ev any) { fn(ev.(T)) })
	b.mu.Unlock()
}

// SwapBuffers makes last tick's events deliverable and empties the back
// buffer. The old front slices are reused.
func (b *Bus) SwapBuffers() {
	for _, tp := range b.topics {
		tp.front, tp.back = tp.back, tp.front[:0]
	}
}

// DispatchAll hands every front-buffer event to its handlers and returns the
// number of events delivered, handled or not.
func (b *Bus) DispatchAll() int {
	n := 0
	for _, tp := range b.topics {
		for _, ev := range tp.front {
			for _, h := range tp.handlers {
				h(ev)
			}
		}
		n += len(tp.front)
	}
	return n
}

// Pending counts the T events waiting for the next swap.
func Pending[T any](b *Bus) int {
	b.mu.Lock()
	tp, ok := b.topics[reflect.TypeFor[T]()]
	b.mu.Unlock()
	if !ok {
		return 0
	}
	return len(tp.back)
}
