package event

// Queue carries actions from the input goroutine to the simulation. Neither
// side ever blocks: a full queue drops the newest action and an empty queue
// reads as ActionNone.
type Queue struct {
	ch chan Action
}

func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{ch: make(chan Action, size)}
}

// Push enqueues a without blocking. It reports false when the queue is full.
func (q *Queue) Push(a Action) bool {
	select {
	case q.ch <- a:
		return true
	default:
		return false
	}
}

// TryPop returns the oldest queued action, if any.
func (q *Queue) TryPop() (Action, bool) {
	select {
	case a := <-q.ch:
		return a, true
	default:
		return ActionNone, false
	}
}

func (q *Queue) Len() int { return len(q.ch) }
