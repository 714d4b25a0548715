package terminal

import (
	"sync"
)

// EventKind distinguishes input event categories
type EventKind uint8

const (
	KindKey EventKind = iota
	KindMouse
	KindResize
	KindError
	KindClosed
)

// Event is the unified record the input pipeline queues for the application
type Event struct {
	Kind  EventKind
	Key   KeyEvent
	Mouse MouseEvent

	// For KindResize
	Width  int
	Height int

	// For KindError
	Err error
}

// defaultQueueLimit bounds the queue; input decoding never blocks, so a
// consumer that stops draining loses the oldest headroom rather than
// wedging the reader
const defaultQueueLimit = 256

// InputEventQueue is an ordered buffer of decoded events, drained once per
// application tick. FIFO order is preserved across decode calls.
type InputEventQueue struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// NewInputEventQueue creates a queue; limit <= 0 uses the default
func NewInputEventQueue(limit int) *InputEventQueue {
	if limit <= 0 {
		limit = defaultQueueLimit
	}
	return &InputEventQueue{limit: limit}
}

// Push appends an event, reporting false when the queue is full and the
// event was dropped
func (q *InputEventQueue) Push(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) >= q.limit {
		return false
	}
	q.events = append(q.events, ev)
	return true
}

// Drain removes and returns all queued events in arrival order
func (q *InputEventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events
func (q *InputEventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
