package enemy

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/prefabs"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeBody struct {
	pos cp.Vector
	vel cp.Vector
}

func (b *fakeBody) Position() cp.Vector     { return b.pos }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }

type shot struct {
	origin, velocity cp.Vector
	lifetime         float64
}

type fakeSpawner struct{ shots []shot }

func (s *fakeSpawner) Spawn(origin, velocity cp.Vector, lifetime float64) {
	s.shots = append(s.shots, shot{origin, velocity, lifetime})
}

type fakeDamager struct{ hits []int }

func (d *fakeDamager) DamageTarget(amount int) { d.hits = append(d.hits, amount) }

type fakeScripts map[string][]byte

func (f fakeScripts) Script(path string) ([]byte, error) {
	src, ok := f[path]
	if !ok {
		return nil, prefabs.ErrInvalidSpec
	}
	return src, nil
}

type harness struct {
	body    *fakeBody
	target  cp.Vector
	hasTgt  bool
	spawner *fakeSpawner
	damager *fakeDamager
	hook    *test.Hook
	cfg     Config
}

func newHarness(id string, species prefabs.Species, maxHealth int) *harness {
	log, hook := test.NewNullLogger()
	h := &harness{
		body:    &fakeBody{},
		spawner: &fakeSpawner{},
		damager: &fakeDamager{},
		hook:    hook,
	}
	h.cfg = Config{
		ID:          id,
		Species:     species,
		MaxHealth:   maxHealth,
		Body:        h.body,
		Target:      TargetFunc(func() (cp.Vector, bool) { return h.target, h.hasTgt }),
		Projectiles: h.spawner,
		Damager:     h.damager,
		Rand:        rand.New(rand.NewSource(3)),
		Logger:      log,
	}
	return h
}

func (h *harness) warnings(msg string) int {
	n := 0
	for _, e := range h.hook.AllEntries() {
		if e.Message == msg {
			n++
		}
	}
	return n
}

func genericSpec() *prefabs.EnemySpec {
	return &prefabs.EnemySpec{
		Name:         "skeleton",
		Species:      prefabs.SpeciesGeneric,
		MaxHealth:    3,
		AggroRadius:  120,
		StrikeRadius: 60,
		Wander:       prefabs.WanderSpec{Radius: 20, Speed: 10, Interval: 2},
		Chase:        prefabs.ChaseSpec{Speed: 50, PathThreshold: 80, PathMargin: 10},
		Ranged: prefabs.RangedSpec{
			TimeBetweenShots: 0.5,
			BulletSpeed:      100,
			BulletLifetime:   1,
			LateralOffset:    2,
			TimeTillExit:     0.5,
		},
	}
}

func wolfSpec() *prefabs.EnemySpec {
	return &prefabs.EnemySpec{
		Name:         "wolf",
		Species:      prefabs.SpeciesWolf,
		MaxHealth:    8,
		AggroRadius:  180,
		StrikeRadius: 14,
		Pack:         "grey",
		Wander:       prefabs.WanderSpec{Radius: 20, Speed: 10},
		Chase:        prefabs.ChaseSpec{Speed: 80, PathThreshold: 80, PathMargin: 10},
		Melee:        prefabs.MeleeSpec{Damage: 2, MoveScale: 0.25, Duration: 0.5},
		Howl:         prefabs.HowlSpec{Duration: 1, Cooldown: 8},
	}
}

func badgerSpec() *prefabs.EnemySpec {
	return &prefabs.EnemySpec{
		Name:         "badger",
		Species:      prefabs.SpeciesBadger,
		MaxHealth:    4,
		AggroRadius:  100,
		StrikeRadius: 10,
		Wander:       prefabs.WanderSpec{Radius: 10, Speed: 5},
		Burrow:       prefabs.BurrowSpec{Speed: 100, ArriveDistance: 2},
		Tunnel:       prefabs.TunnelSpec{Speed: 100, Distance: 50},
		Unburrow:     prefabs.UnburrowSpec{Damage: 3, FleeChance: 1, PostAttackIdle: 1, Duration: 0.5},
	}
}
