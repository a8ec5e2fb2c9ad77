// Package entity assembles host entities from prefabs: enemies with their AI
// context and collaborators, the player and projectiles.
package entity

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/behavior"
	animation "github.com/milk9111/bestiary/component"
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
	"github.com/milk9111/bestiary/ecs/system"
	"github.com/milk9111/bestiary/enemy"
	"github.com/milk9111/bestiary/physics"
	"github.com/milk9111/bestiary/prefabs"
	"github.com/sirupsen/logrus"
)

const (
	defaultColliderRadius   = 6.0
	defaultProjectileRadius = 2.0
)

// Spawner builds enemies from the prefab library into a world.
type Spawner struct {
	World   *ecs.World
	Physics *physics.World
	Grid    *animation.Grid
	Library *prefabs.Library
	Packs   enemy.Packs
	Logger  logrus.FieldLogger
	Rand    *rand.Rand

	next int
}

func NewSpawner(w *ecs.World, pw *physics.World, grid *animation.Grid, lib *prefabs.Library, log logrus.FieldLogger, seed int64) *Spawner {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Spawner{
		World:   w,
		Physics: pw,
		Grid:    grid,
		Library: lib,
		Packs:   enemy.Packs{},
		Logger:  log,
		Rand:    rand.New(rand.NewSource(seed)),
	}
}

// SpawnEnemy loads prefab and creates an enemy entity at pos.
func (s *Spawner) SpawnEnemy(prefab string, pos cp.Vector) (ecs.Entity, error) {
	spec, err := s.Library.Enemy(prefab)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}
	loadout, err := enemy.LoadoutFor(spec, s.Library)
	if err != nil {
		return 0, fmt.Errorf("enemy: build loadout: %w", err)
	}

	w := s.World
	entity := ecs.CreateEntity(w)
	s.next++
	id := fmt.Sprintf("%s-%d", spec.Name, s.next)

	radius := spec.Collider.Radius
	if radius <= 0 {
		radius = defaultColliderRadius
	}
	body := s.Physics.AddBody(pos, radius, physics.KindEnemy)
	anim := animation.NewAnimator(animation.DefsFromSpec(spec.Animation))

	cfg := enemy.Config{
		ID:          id,
		Species:     spec.Species,
		MaxHealth:   spec.MaxHealth,
		Spawn:       &pos,
		Body:        body,
		Target:      enemy.TargetFunc(func() (cp.Vector, bool) { return system.PlayerPosition(w) }),
		Animator:    anim,
		Projectiles: &projectileSpawner{w: w, owner: id, damage: spec.Ranged.BulletDamage, radius: defaultProjectileRadius},
		Damager:     playerDamager{w: w},
		Rand:        rand.New(rand.NewSource(s.Rand.Int63())),
		Logger:      s.Logger.WithField("prefab", prefab),
		OnTransition: func(e *enemy.Enemy, from, to behavior.StateID) {
			w.Events().Push(ecs.Event{
				Kind:   ecs.EventTransition,
				Entity: entity,
				Data:   ecs.Transition{Enemy: e.ID(), Species: string(e.Species()), From: string(from), To: string(to)},
			})
		},
	}

	var agent *animation.GridAgent
	if s.Grid != nil {
		agent = animation.NewGridAgent(s.Grid, body.Position)
		cfg.Pathfinder = agent
	}
	pack := s.Packs.Get(spec.Pack, spec.Howl.Cooldown)
	if pack != nil {
		cfg.Pack = pack
	}

	e, err := enemy.New(cfg, loadout)
	if err != nil {
		s.discard(entity, body, id)
		return 0, fmt.Errorf("enemy: %s: %w", prefab, err)
	}
	if pack != nil {
		pack.Join(e)
	}

	err = addEnemyComponents(w, entity, pos, body, &component.Enemy{
		Enemy:        e,
		Animator:     anim,
		Agent:        agent,
		Prefab:       prefab,
		Spawn:        pos,
		AggroRadius:  spec.AggroRadius,
		StrikeRadius: spec.StrikeRadius,
	})
	if err != nil {
		s.discard(entity, body, id)
		return 0, err
	}

	s.Logger.WithFields(logrus.Fields{"enemy": id, "species": spec.Species}).Debug("enemy spawned")
	return entity, nil
}

func addEnemyComponents(w *ecs.World, entity ecs.Entity, pos cp.Vector, body *physics.Body, en *component.Enemy) error {
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, FacingRight: true}); err != nil {
		return fmt.Errorf("enemy: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}); err != nil {
		return fmt.Errorf("enemy: add physics body: %w", err)
	}
	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), en); err != nil {
		return fmt.Errorf("enemy: add enemy: %w", err)
	}
	return nil
}

// discard undoes a half-built enemy: pack membership, body and entity.
func (s *Spawner) discard(entity ecs.Entity, body *physics.Body, id string) {
	for _, p := range s.Packs {
		p.Leave(id)
	}
	s.Physics.Remove(body)
	ecs.DestroyEntity(s.World, entity)
}

// Despawn removes an enemy entity, its body and its pack membership.
func (s *Spawner) Despawn(entity ecs.Entity) bool {
	w := s.World
	if en, ok := ecs.Get(w, entity, component.EnemyComponent.Kind()); ok && en.Enemy != nil {
		for _, p := range s.Packs {
			p.Leave(en.Enemy.ID())
		}
	}
	if pb, ok := ecs.Get(w, entity, component.PhysicsBodyComponent.Kind()); ok {
		s.Physics.Remove(pb.Body)
	}
	return ecs.DestroyEntity(w, entity)
}

// Respawn rebuilds every enemy spawned from one of the given prefabs at its
// original spawn point. It returns how many were rebuilt.
func (s *Spawner) Respawn(prefabNames []string) (int, error) {
	wanted := make(map[string]bool, len(prefabNames))
	for _, name := range prefabNames {
		wanted[name] = true
	}

	type spot struct {
		entity ecs.Entity
		prefab string
		pos    cp.Vector
	}
	var spots []spot
	ecs.ForEach(s.World, component.EnemyComponent.Kind(), func(e ecs.Entity, en *component.Enemy) {
		if wanted[en.Prefab] {
			spots = append(spots, spot{e, en.Prefab, en.Spawn})
		}
	})

	n := 0
	for _, sp := range spots {
		s.Despawn(sp.entity)
		if _, err := s.SpawnEnemy(sp.prefab, sp.pos); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

type playerDamager struct {
	w *ecs.World
}

func (d playerDamager) DamageTarget(amount int) {
	if player, _, ok := ecs.First(d.w, component.PlayerComponent.Kind()); ok {
		system.DamagePlayer(d.w, player, amount)
	}
}
