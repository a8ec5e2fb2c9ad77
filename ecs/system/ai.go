package system

import (
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
	"github.com/milk9111/bestiary/enemy"
)

// AIFixedSystem runs every enemy's physics channel on the fixed step.
type AIFixedSystem struct{}

func NewAIFixedSystem() *AIFixedSystem {
	return &AIFixedSystem{}
}

func (s *AIFixedSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, en *component.Enemy) {
		if en.Enemy != nil {
			en.Enemy.FixedTick(w.Delta())
		}
	})
}

// AISystem runs every enemy's frame channel and the pack cooldowns.
type AISystem struct {
	Packs enemy.Packs
}

func NewAISystem(packs enemy.Packs) *AISystem {
	return &AISystem{Packs: packs}
}

func (s *AISystem) Update(w *ecs.World) {
	s.Packs.Advance(w.Delta())
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, en *component.Enemy, tr *component.Transform) {
		if en.Enemy == nil {
			return
		}
		en.Enemy.Tick(w.Delta())
		tr.FacingRight = en.Enemy.FacingRight()
	})
}
