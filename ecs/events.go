package ecs

// EventKind identifies an event payload.
type EventKind string

const (
	EventTransition EventKind = "transition"
	EventPlayerHit  EventKind = "player_hit"
	EventEnemyHit   EventKind = "enemy_hit"
	EventExpired    EventKind = "expired"
	EventReloaded   EventKind = "reloaded"
)

// Event is a world event. Data carries the kind-specific payload.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// Transition is the payload of EventTransition.
type Transition struct {
	Enemy   string
	Species string
	From    string
	To      string
}

// Hit is the payload of the hit events.
type Hit struct {
	Amount    int
	Remaining int
}

// EventQueue is a FIFO of events raised during one scheduler update.
type EventQueue struct {
	items []Event
}

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

// Len returns the number of queued events.
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
