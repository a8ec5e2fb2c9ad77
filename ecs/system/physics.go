package system

import (
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
	"github.com/milk9111/bestiary/physics"
)

// PhysicsSystem steps the chipmunk space on the fixed step and mirrors body
// positions into transforms. Bodies of dead enemies are pulled from the space
// so corpses stop blocking.
type PhysicsSystem struct {
	World *physics.World
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{World: world}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.World == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, en *component.Enemy, pb *component.PhysicsBody) {
		if en.Enemy != nil && !en.Enemy.Alive() && pb.Body != nil {
			pb.Body.SetVelocity(zero)
			ps.World.Remove(pb.Body)
		}
	})

	ps.World.Step(w.Delta())

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, tr *component.Transform) {
		if pb.Body == nil {
			return
		}
		p := pb.Body.Position()
		tr.X, tr.Y = p.X, p.Y
	})
}
