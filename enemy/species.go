package enemy

import (
	"fmt"
	"strings"

	"github.com/milk9111/bestiary/behavior"
	"github.com/milk9111/bestiary/prefabs"
)

// defaultArriveDistance is used when a badger prefab leaves arrive_distance
// unset.
const defaultArriveDistance = 2.0

// Loadout is the strategy set an enemy is built with.
type Loadout struct {
	Initial    behavior.StateID
	Strategies map[behavior.StateID]behavior.Strategy

	// Badger is the flag block shared by the badger strategies, nil otherwise.
	Badger *behavior.BadgerState
}

// ScriptSource resolves a script path to its source.
type ScriptSource interface {
	Script(path string) ([]byte, error)
}

// LoadoutFor builds the loadout matching spec.Species. scripts is only
// consulted for scripted enemies and may be nil otherwise.
func LoadoutFor(spec *prefabs.EnemySpec, scripts ScriptSource) (Loadout, error) {
	switch spec.Species {
	case prefabs.SpeciesGeneric:
		return GenericLoadout(spec), nil
	case prefabs.SpeciesWolf:
		return WolfLoadout(spec), nil
	case prefabs.SpeciesBadger:
		return BadgerLoadout(spec), nil
	case prefabs.SpeciesScripted:
		if scripts == nil {
			return Loadout{}, fmt.Errorf("%w: %s: no script source", ErrInvalidLoadout, spec.Name)
		}
		src, err := scripts.Script(spec.Script.Path)
		if err != nil {
			return Loadout{}, err
		}
		return ScriptedLoadout(spec, src)
	}
	return Loadout{}, fmt.Errorf("%w: %q", prefabs.ErrUnknownSpecies, spec.Species)
}

func wanderConfig(spec *prefabs.EnemySpec, onAggro behavior.StateID) behavior.WanderConfig {
	return behavior.WanderConfig{
		Radius:   spec.Wander.Radius,
		Speed:    spec.Wander.Speed,
		Interval: spec.Wander.Interval,
		OnAggro:  onAggro,
	}
}

func chaseConfig(spec *prefabs.EnemySpec) behavior.ChaseConfig {
	return behavior.ChaseConfig{
		Speed:         spec.Chase.Speed,
		PathThreshold: spec.Chase.PathThreshold,
		PathMargin:    spec.Chase.PathMargin,
	}
}

func dualShotConfig(spec *prefabs.EnemySpec) behavior.DualShotConfig {
	return behavior.DualShotConfig{
		TimeBetweenShots: spec.Ranged.TimeBetweenShots,
		BulletSpeed:      spec.Ranged.BulletSpeed,
		BulletLifetime:   spec.Ranged.BulletLifetime,
		LateralOffset:    spec.Ranged.LateralOffset,
		TimeTillExit:     spec.Ranged.TimeTillExit,
	}
}

// GenericLoadout is the ranged archetype: wander, chase, twin shots.
func GenericLoadout(spec *prefabs.EnemySpec) Loadout {
	return Loadout{
		Initial: behavior.StateIdle,
		Strategies: map[behavior.StateID]behavior.Strategy{
			behavior.StateIdle:   behavior.NewWander(wanderConfig(spec, behavior.StateChase)),
			behavior.StateChase:  behavior.NewChase(chaseConfig(spec)),
			behavior.StateAttack: behavior.NewDualShot(dualShotConfig(spec)),
			behavior.StateDead:   behavior.NewDeath(),
		},
	}
}

// WolfLoadout howls before chasing and bites in melee.
func WolfLoadout(spec *prefabs.EnemySpec) Loadout {
	return Loadout{
		Initial: behavior.StateIdle,
		Strategies: map[behavior.StateID]behavior.Strategy{
			behavior.StateIdle:  behavior.NewWander(wanderConfig(spec, behavior.StateHowl)),
			behavior.StateHowl:  behavior.NewHowler(behavior.HowlConfig{Duration: spec.Howl.Duration}),
			behavior.StateChase: behavior.NewChase(chaseConfig(spec)),
			behavior.StateAttack: behavior.NewMelee(behavior.MeleeConfig{
				Damage:    spec.Melee.Damage,
				Speed:     spec.Chase.Speed,
				MoveScale: spec.Melee.MoveScale,
				Duration:  spec.Melee.Duration,
			}),
			behavior.StateDead: behavior.NewDeath(),
		},
	}
}

// BadgerLoadout burrows to the target, surfaces to strike and sometimes
// tunnels away afterwards. All four strategies share one BadgerState.
func BadgerLoadout(spec *prefabs.EnemySpec) Loadout {
	arrive := spec.Burrow.ArriveDistance
	if arrive <= 0 {
		arrive = defaultArriveDistance
	}
	state := &behavior.BadgerState{}
	return Loadout{
		Initial: behavior.StateIdle,
		Badger:  state,
		Strategies: map[behavior.StateID]behavior.Strategy{
			behavior.StateIdle: behavior.NewBadgerIdle(state, wanderConfig(spec, "")),
			behavior.StateBurrow: behavior.NewBurrower(state, behavior.BurrowConfig{
				Speed:          spec.Burrow.Speed,
				ArriveDistance: arrive,
			}),
			behavior.StateTunnel: behavior.NewTunneler(state, behavior.TunnelConfig{
				Speed:          spec.Tunnel.Speed,
				Distance:       spec.Tunnel.Distance,
				ArriveDistance: arrive,
			}),
			behavior.StateAttack: behavior.NewUnburrower(state, behavior.UnburrowConfig{
				Damage:         spec.Unburrow.Damage,
				FleeChance:     spec.Unburrow.FleeChance,
				PostAttackIdle: spec.Unburrow.PostAttackIdle,
				Duration:       spec.Unburrow.Duration,
			}),
			behavior.StateDead: behavior.NewDeath(),
		},
	}
}

// ScriptedLoadout runs src for every state listed in the spec's script
// section. Unlisted states keep the generic ranged attack and death.
func ScriptedLoadout(spec *prefabs.EnemySpec, src []byte) (Loadout, error) {
	if err := behavior.CompileScript(src); err != nil {
		return Loadout{}, fmt.Errorf("%w: %s: %v", ErrInvalidLoadout, spec.Script.Path, err)
	}
	l := Loadout{
		Initial: behavior.StateIdle,
		Strategies: map[behavior.StateID]behavior.Strategy{
			behavior.StateAttack: behavior.NewDualShot(dualShotConfig(spec)),
			behavior.StateDead:   behavior.NewDeath(),
		},
	}
	for _, name := range spec.Script.States {
		id := behavior.StateID(strings.ToLower(strings.TrimSpace(name)))
		if id == "" || id == behavior.StateDead {
			continue
		}
		l.Strategies[id] = behavior.NewScript(behavior.ScriptConfig{
			Name:   spec.Script.Path,
			Source: src,
			State:  id,
		})
	}
	if l.Strategies[behavior.StateIdle] == nil {
		if len(spec.Script.States) == 0 {
			return Loadout{}, fmt.Errorf("%w: %s: script drives no states", ErrInvalidLoadout, spec.Name)
		}
		l.Initial = behavior.StateID(strings.ToLower(strings.TrimSpace(spec.Script.States[0])))
	}
	return l, nil
}
