package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
)

// StrikeEnemies damages every living enemy within radius of center and
// returns how many were hit.
func StrikeEnemies(w *ecs.World, center cp.Vector, radius float64, amount int) int {
	hits := 0
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, en *component.Enemy, tr *component.Transform) {
		if en.Enemy == nil || !en.Enemy.Alive() {
			return
		}
		if (cp.Vector{X: tr.X, Y: tr.Y}).DistanceSq(center) > radius*radius {
			return
		}
		if !en.Enemy.Damage(amount) {
			return
		}
		hits++
		w.Events().Push(ecs.Event{
			Kind:   ecs.EventEnemyHit,
			Entity: e,
			Data:   ecs.Hit{Amount: amount, Remaining: en.Enemy.Health()},
		})
	})
	return hits
}
