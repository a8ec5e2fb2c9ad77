package system

import (
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
)

// TTLSystem counts TTL components down by the phase delta and destroys
// entities whose time ran out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= w.Delta()
		if ttl.Seconds > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
		w.Events().Push(ecs.Event{Kind: ecs.EventExpired, Entity: e})
	})
}
