// Package telemetry streams enemy AI records to websocket viewers.
package telemetry

import (
	"time"

	"github.com/milk9111/bestiary/ecs"
)

// Record is one JSON message on the feed.
type Record struct {
	Seq       uint64    `json:"seq"`
	Frame     uint64    `json:"frame"`
	Kind      string    `json:"kind"`
	Entity    string    `json:"entity,omitempty"`
	Enemy     string    `json:"enemy,omitempty"`
	Species   string    `json:"species,omitempty"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Amount    int       `json:"amount,omitempty"`
	Remaining int       `json:"remaining,omitempty"`
	Time      time.Time `json:"time"`
}

// FromEvent converts the world events the feed carries. Other kinds report
// false.
func FromEvent(ev ecs.Event, frame uint64) (Record, bool) {
	rec := Record{Frame: frame, Kind: string(ev.Kind), Entity: ev.Entity.String(), Time: time.Now()}
	switch data := ev.Data.(type) {
	case ecs.Transition:
		rec.Enemy, rec.Species, rec.From, rec.To = data.Enemy, data.Species, data.From, data.To
	case ecs.Hit:
		rec.Amount, rec.Remaining = data.Amount, data.Remaining
	default:
		if ev.Kind != ecs.EventReloaded {
			return Record{}, false
		}
	}
	return rec, true
}

// Forward returns a world event handler that publishes the carried events of
// w to h.
func (h *Hub) Forward(w *ecs.World) func(ecs.Event) {
	return func(ev ecs.Event) {
		if rec, ok := FromEvent(ev, w.Frame()); ok {
			h.Publish(rec)
		}
	}
}
