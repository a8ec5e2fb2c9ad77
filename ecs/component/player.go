package component

// Player tags the entity enemies target.
type Player struct {
	Speed  float64
	Radius float64
}

var PlayerComponent = NewComponent[Player]()

// Health is hit points. Invulnerable counts down the grace period after a
// hit.
type Health struct {
	Current      int
	Max          int
	Invulnerable float64
}

var HealthComponent = NewComponent[Health]()
