package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
	"github.com/milk9111/bestiary/physics"
)

// PlayerSpec tunes the sandbox player.
type PlayerSpec struct {
	Speed  float64
	Radius float64
	Health int
}

// SpawnPlayer creates the player entity enemies target.
func SpawnPlayer(w *ecs.World, pw *physics.World, pos cp.Vector, spec PlayerSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	body := pw.AddBody(pos, spec.Radius, physics.KindPlayer)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, FacingRight: true}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{Speed: spec.Speed, Radius: spec.Radius}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}
	return entity, nil
}
