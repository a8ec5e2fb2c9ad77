// Package arena assembles a playable world from a level: walls, the player,
// the enemies and the system schedule that drives them.
package arena

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	animation "github.com/milk9111/bestiary/component"
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/ecs/component"
	"github.com/milk9111/bestiary/ecs/entity"
	"github.com/milk9111/bestiary/ecs/system"
	"github.com/milk9111/bestiary/levels"
	"github.com/milk9111/bestiary/physics"
	"github.com/milk9111/bestiary/prefabs"
	"github.com/sirupsen/logrus"
)

// Step is the fixed physics step.
const Step = 1.0 / 60

var ErrNoPlayer = errors.New("arena: level has no player spawn")

var DefaultPlayer = entity.PlayerSpec{Speed: 90, Radius: 6, Health: 10}

type Options struct {
	Level   string
	Seed    int64
	Player  entity.PlayerSpec
	Library *prefabs.Library
	Logger  logrus.FieldLogger
}

// Arena owns one running world.
type Arena struct {
	Level     *levels.Level
	Grid      *animation.Grid
	World     *ecs.World
	Physics   *physics.World
	Spawner   *entity.Spawner
	Scheduler *ecs.Scheduler
	Events    *system.EventSystem
	Player    ecs.Entity

	log logrus.FieldLogger
}

// New loads the named level and spawns everything placed on it. An enemy
// whose prefab fails to build is logged and skipped.
func New(opts Options) (*Arena, error) {
	if opts.Level == "" {
		opts.Level = "arena"
	}
	if opts.Player == (entity.PlayerSpec{}) {
		opts.Player = DefaultPlayer
	}
	if opts.Library == nil {
		opts.Library = prefabs.NewLibrary()
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	lvl, err := levels.LoadLevelFromFS(opts.Level)
	if err != nil {
		return nil, err
	}
	spawn, ok := lvl.Player()
	if !ok {
		return nil, ErrNoPlayer
	}

	a := &Arena{
		Level:   lvl,
		Grid:    lvl.Grid(),
		World:   ecs.NewWorld(),
		Physics: physics.NewWorld(),
		log:     log.WithField("level", opts.Level),
	}
	a.Physics.AddWallsFromGrid(a.Grid)
	a.Spawner = entity.NewSpawner(a.World, a.Physics, a.Grid, opts.Library, log, opts.Seed)

	a.Player, err = entity.SpawnPlayer(a.World, a.Physics, lvl.Position(spawn), opts.Player)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}
	for _, e := range lvl.Enemies() {
		if _, err := a.Spawner.SpawnEnemy(e.Prefab, lvl.Position(e)); err != nil {
			a.log.WithError(err).WithField("prefab", e.Prefab).Error("failed to spawn enemy")
		}
	}

	a.Events = system.NewEventSystem()
	a.Scheduler = ecs.NewScheduler(Step)
	a.Scheduler.AddFixed(
		system.NewAIFixedSystem(),
		system.NewPhysicsSystem(a.Physics),
		system.NewProjectileSystem(a.Grid),
		system.NewTTLSystem(),
	)
	a.Scheduler.Add(
		system.NewSensorSystem(),
		system.NewAnimationSystem(),
		system.NewAISystem(a.Spawner.Packs),
		a.Events,
	)

	a.log.WithField("enemies", len(lvl.Enemies())).Info("arena loaded")
	return a, nil
}

// Update advances the world by dt and returns the fixed steps taken.
func (a *Arena) Update(dt float64) int {
	return a.Scheduler.Update(a.World, dt)
}

// Handle subscribes h to every world event.
func (a *Arena) Handle(h func(ecs.Event)) {
	a.Events.Handle(h)
}

// MovePlayer drives the player along dir at its configured speed. A zero dir
// stops it. Dead players do not move.
func (a *Arena) MovePlayer(dir cp.Vector) {
	pb, ok := ecs.Get(a.World, a.Player, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return
	}
	p, _ := ecs.Get(a.World, a.Player, component.PlayerComponent.Kind())
	if hp := a.PlayerHealth(); hp.Current <= 0 || p == nil {
		pb.Body.SetVelocity(cp.Vector{})
		return
	}
	if dir.LengthSq() > 0 {
		dir = dir.Normalize().Mult(p.Speed)
	}
	pb.Body.SetVelocity(dir)
}

// Strike hits every enemy within radius of the player.
func (a *Arena) Strike(radius float64, damage int) int {
	pos, ok := system.PlayerPosition(a.World)
	if !ok {
		return 0
	}
	return system.StrikeEnemies(a.World, pos, radius, damage)
}

// PlayerHealth returns a copy of the player's health.
func (a *Arena) PlayerHealth() component.Health {
	if hp, ok := ecs.Get(a.World, a.Player, component.HealthComponent.Kind()); ok {
		return *hp
	}
	return component.Health{}
}

// Reload feeds changed prefab or script files to the library and rebuilds
// the affected enemies. It returns how many were rebuilt.
func (a *Arena) Reload(paths []string) (int, error) {
	seen := map[string]bool{}
	var names []string
	var errs []error
	for _, p := range paths {
		affected, err := a.Spawner.Library.Reload(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("reload %s: %w", p, err))
			continue
		}
		for _, name := range affected {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return 0, errors.Join(errs...)
	}

	n, err := a.Spawner.Respawn(names)
	if err != nil {
		errs = append(errs, err)
	}
	a.World.Events().Push(ecs.Event{Kind: ecs.EventReloaded, Data: names})
	a.log.WithFields(logrus.Fields{"prefabs": names, "respawned": n}).Info("prefabs reloaded")
	return n, errors.Join(errs...)
}

// Reset rebuilds every enemy at its spawn point and restores the player.
func (a *Arena) Reset() (int, error) {
	seen := map[string]bool{}
	var names []string
	for _, v := range a.Enemies() {
		if !seen[v.Prefab] {
			seen[v.Prefab] = true
			names = append(names, v.Prefab)
		}
	}
	n, err := a.Spawner.Respawn(names)

	if hp, ok := ecs.Get(a.World, a.Player, component.HealthComponent.Kind()); ok {
		hp.Current, hp.Invulnerable = hp.Max, 0
	}
	if spawn, ok := a.Level.Player(); ok {
		pos := a.Level.Position(spawn)
		if pb, ok := ecs.Get(a.World, a.Player, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			pb.Body.Teleport(pos)
		}
		if tr, ok := ecs.Get(a.World, a.Player, component.TransformComponent.Kind()); ok {
			tr.X, tr.Y = pos.X, pos.Y
		}
	}
	a.log.WithField("respawned", n).Info("arena reset")
	return n, err
}

// EnemyView is a read-only summary of one enemy.
type EnemyView struct {
	Entity  ecs.Entity
	ID      string
	Prefab  string
	Species string
	State   string
	Health  int
	Max     int
	X, Y    float64
	Facing  bool
	Aggro   bool
	Strike  bool
	Path    int
	Pack    string
	Leader  bool
}

// Enemies lists every enemy sorted by id.
func (a *Arena) Enemies() []EnemyView {
	var out []EnemyView
	ecs.ForEach2(a.World, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, en *component.Enemy, tr *component.Transform) {
		if en.Enemy == nil {
			return
		}
		v := EnemyView{
			Entity:  e,
			ID:      en.Enemy.ID(),
			Prefab:  en.Prefab,
			Species: string(en.Enemy.Species()),
			State:   string(en.Enemy.CurrentState()),
			Health:  en.Enemy.Health(),
			Max:     en.Enemy.MaxHealth(),
			X:       tr.X,
			Y:       tr.Y,
			Facing:  tr.FacingRight,
			Aggro:   en.Enemy.IsAggroed(),
			Strike:  en.Enemy.IsWithinStrikingDistance(),
		}
		if en.Agent != nil {
			v.Path = len(en.Agent.Path())
		}
		for name, p := range a.Spawner.Packs {
			if p.IsMember(v.ID) {
				v.Pack = name
				v.Leader = p.IsLeader(v.ID)
			}
		}
		out = append(out, v)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Snapshot renders the player and every enemy as plain text.
func (a *Arena) Snapshot() string {
	var b strings.Builder
	hp := a.PlayerHealth()
	pos, _ := system.PlayerPosition(a.World)
	fmt.Fprintf(&b, "frame %d player hp=%d/%d at (%.1f,%.1f)\n", a.World.Frame(), hp.Current, hp.Max, pos.X, pos.Y)
	for _, v := range a.Enemies() {
		fmt.Fprintf(&b, "%-12s %-8s %-7s hp=%d/%d at (%.1f,%.1f) aggro=%t strike=%t",
			v.ID, v.Species, v.State, v.Health, v.Max, round(v.X), round(v.Y), v.Aggro, v.Strike)
		if v.Pack != "" {
			fmt.Fprintf(&b, " pack=%s leader=%t", v.Pack, v.Leader)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func round(v float64) float64 {
	return math.Round(v*10) / 10
}
