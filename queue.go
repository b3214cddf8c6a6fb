package battleground

import "sync"

// EventQueue is a FIFO of input events. Any goroutine may push; exactly one
// goroutine (the frame loop) drains it and dispatches the result, which keeps
// handler execution serialized when events originate off the frame goroutine.
type EventQueue struct {
	mu    sync.Mutex
	items []Event
	spare []Event
}

// Push appends an event.
func (q *EventQueue) Push(ev Event) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain returns all pending events in push order and empties the queue.
// The returned slice is only valid until the next Drain.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = q.spare[:0]
	q.spare = out
	return out
}

// DispatchTo drains the queue into d and returns how many events were
// dispatched.
func (q *EventQueue) DispatchTo(d *Dispatcher) int {
	events := q.Drain()
	for _, ev := range events {
		d.Dispatch(ev)
	}
	return len(events)
}

// --- Synthetic input ---

// InjectPress queues a left-button press at the given screen coordinates.
func (q *EventQueue) InjectPress(x, y float64) {
	q.Push(ButtonEvent(TransitionDown, x, y, MouseButtonLeft))
}

// InjectMove queues a pointer move to the given screen coordinates.
func (q *EventQueue) InjectMove(x, y float64) {
	q.Push(MoveEvent(x, y))
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (q *EventQueue) InjectRelease(x, y float64) {
	q.Push(ButtonEvent(TransitionUp, x, y, MouseButtonLeft))
}

// InjectClick queues a press followed by a release at the same coordinates.
func (q *EventQueue) InjectClick(x, y float64) {
	q.InjectPress(x, y)
	q.InjectRelease(x, y)
}

// InjectWheel queues one wheel event per notch: n > 0 zooms in, n < 0 out.
func (q *EventQueue) InjectWheel(n int) {
	tick := 1
	if n < 0 {
		tick, n = -1, -n
	}
	for range n {
		q.Push(WheelEvent(tick))
	}
}

// InjectDrag queues a full drag: press at (fromX, fromY), steps linearly
// interpolated moves ending exactly at (toX, toY), and a release there.
// steps is clamped to at least 1.
func (q *EventQueue) InjectDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	q.InjectPress(fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		q.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	q.InjectRelease(toX, toY)
}
