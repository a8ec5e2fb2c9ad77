package system

import (
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
)

// AnimationSystem advances enemy animators by the frame delta and forwards
// the frame events they raised to the enemy's current state. It runs before
// AISystem so events and the frame update land in the same frame.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, en *component.Enemy) {
		if en.Animator == nil {
			return
		}
		en.Animator.Update(w.Delta())
		for _, t := range en.Animator.DrainEvents() {
			if en.Enemy != nil {
				en.Enemy.AnimationTriggerEvent(t)
			}
		}
	})
}
