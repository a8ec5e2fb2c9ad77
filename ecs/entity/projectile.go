package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
)

// projectileSpawner turns an enemy's shots into timed projectile entities.
type projectileSpawner struct {
	w      *ecs.World
	owner  string
	damage int
	radius float64
}

func (p *projectileSpawner) Spawn(origin, velocity cp.Vector, lifetime float64) {
	SpawnProjectile(p.w, origin, component.Projectile{
		Velocity: velocity,
		Radius:   p.radius,
		Damage:   p.damage,
		Owner:    p.owner,
	}, lifetime)
}

// SpawnProjectile creates a projectile that expires after lifetime seconds.
func SpawnProjectile(w *ecs.World, origin cp.Vector, p component.Projectile, lifetime float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: origin.X, Y: origin.Y})
	_ = ecs.Add(w, e, component.ProjectileComponent.Kind(), &p)
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: lifetime})
	return e
}
