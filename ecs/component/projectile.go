package component

import "github.com/jakecoffman/cp"

// Projectile moves in a straight line until it hits the player, a wall or its
// TTL runs out.
type Projectile struct {
	Velocity cp.Vector
	Radius   float64
	Damage   int
	Owner    string
}

var ProjectileComponent = NewComponent[Projectile]()
