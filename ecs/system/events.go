package system

import "github.com/milk9111/bestiary/ecs"

// EventSystem drains the world's event queue into its handlers. Add it last
// so it sees everything raised during the update.
type EventSystem struct {
	handlers []func(ecs.Event)
	seen     int
}

func NewEventSystem(handlers ...func(ecs.Event)) *EventSystem {
	return &EventSystem{handlers: handlers}
}

// Handle registers another handler.
func (s *EventSystem) Handle(h func(ecs.Event)) {
	if h != nil {
		s.handlers = append(s.handlers, h)
	}
}

func (s *EventSystem) Update(w *ecs.World) {
	for _, ev := range w.Events().Drain() {
		s.seen++
		for _, h := range s.handlers {
			h(ev)
		}
	}
}

// Seen counts events delivered since creation.
func (s *EventSystem) Seen() int { return s.seen }
