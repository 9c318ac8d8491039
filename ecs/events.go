package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventCollision = "collision"
	EventBoundary  = "boundary"
)

// CollisionEvent is emitted when a player shape starts overlapping an
// obstacle shape.
type CollisionEvent struct {
	Player   Entity
	Obstacle Entity
}

// BoundaryEvent is emitted when the player leaves the vertical play area.
type BoundaryEvent struct {
	Entity Entity
	// Floor is true for the bottom edge, false for the ceiling.
	Floor bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
