package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
)

var zero cp.Vector

// SensorSystem writes the aggro and strike sensors of every enemy from its
// distance to the player. Without a living player both sensors read false.
type SensorSystem struct{}

func NewSensorSystem() *SensorSystem {
	return &SensorSystem{}
}

func (s *SensorSystem) Update(w *ecs.World) {
	target, ok := PlayerPosition(w)

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, en *component.Enemy, tr *component.Transform) {
		if en.Enemy == nil {
			return
		}
		if !ok {
			en.Enemy.SetAggroStatus(false)
			en.Enemy.SetStrikingDistance(false)
			return
		}
		d := cp.Vector{X: tr.X, Y: tr.Y}.Distance(target)
		en.Enemy.SetAggroStatus(d <= en.AggroRadius)
		en.Enemy.SetStrikingDistance(d <= en.StrikeRadius)
	})
}

// PlayerPosition returns the living player's position.
func PlayerPosition(w *ecs.World) (cp.Vector, bool) {
	e, _, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return zero, false
	}
	if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && hp.Current <= 0 {
		return zero, false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return zero, false
	}
	return cp.Vector{X: tr.X, Y: tr.Y}, true
}
