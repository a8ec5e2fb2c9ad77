package system

import (
	"github.com/jakecoffman/cp"
	animation "github.com/milk9111/bestiary/component"
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
)

// hitGrace is the player's invulnerability after a hit, in seconds.
const hitGrace = 0.4

// ProjectileSystem moves projectiles on the fixed step. A projectile that
// enters a blocked grid cell is destroyed; one that overlaps the player
// damages it and is destroyed.
type ProjectileSystem struct {
	Grid *animation.Grid
}

func NewProjectileSystem(grid *animation.Grid) *ProjectileSystem {
	return &ProjectileSystem{Grid: grid}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	dt := w.Delta()
	player, pl, hasPlayer := ecs.First(w, component.PlayerComponent.Kind())
	target, alive := PlayerPosition(w)

	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, hp *component.Health) {
		if hp.Invulnerable > 0 {
			hp.Invulnerable -= dt
		}
	})

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, tr *component.Transform) {
		pos := cp.Vector{X: tr.X, Y: tr.Y}.Add(p.Velocity.Mult(dt))
		tr.X, tr.Y = pos.X, pos.Y

		if s.Grid != nil {
			cell := s.Grid.CellOf(pos)
			outside := pos.X < 0 || pos.Y < 0 ||
				pos.X >= float64(s.Grid.Width)*s.Grid.CellSize || pos.Y >= float64(s.Grid.Height)*s.Grid.CellSize
			if outside || s.Grid.Blocked(cell.X, cell.Y) {
				ecs.DestroyEntity(w, e)
				return
			}
		}

		if !hasPlayer || !alive {
			return
		}
		reach := p.Radius + pl.Radius
		if pos.DistanceSq(target) > reach*reach {
			return
		}
		ecs.DestroyEntity(w, e)
		DamagePlayer(w, player, p.Damage)
	})
}

// DamagePlayer applies amount to the player unless it is in its hit grace
// window. It reports whether damage was applied.
func DamagePlayer(w *ecs.World, player ecs.Entity, amount int) bool {
	hp, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok || amount <= 0 || hp.Current <= 0 || hp.Invulnerable > 0 {
		return false
	}
	hp.Current -= amount
	if hp.Current < 0 {
		hp.Current = 0
	}
	hp.Invulnerable = hitGrace
	w.Events().Push(ecs.Event{
		Kind:   ecs.EventPlayerHit,
		Entity: player,
		Data:   ecs.Hit{Amount: amount, Remaining: hp.Current},
	})
	return true
}
