package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownSpecies = errors.New("prefabs: unknown species")
	ErrInvalidSpec    = errors.New("prefabs: invalid enemy spec")
)

// Species selects the strategy loadout an enemy is built with.
type Species string

const (
	SpeciesGeneric  Species = "generic"
	SpeciesWolf     Species = "wolf"
	SpeciesBadger   Species = "badger"
	SpeciesScripted Species = "scripted"
)

func (s Species) Known() bool {
	switch s {
	case SpeciesGeneric, SpeciesWolf, SpeciesBadger, SpeciesScripted:
		return true
	}
	return false
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EnemySpec is one enemy prefab. Sections a species does not use are ignored.
type EnemySpec struct {
	Name         string        `yaml:"name"`
	Species      Species       `yaml:"species"`
	MaxHealth    int           `yaml:"max_health"`
	AggroRadius  float64       `yaml:"aggro_radius"`
	StrikeRadius float64       `yaml:"strike_radius"`
	Collider     ColliderSpec  `yaml:"collider"`
	Pack         string        `yaml:"pack"`
	Animation    AnimationSpec `yaml:"animation"`

	Wander   WanderSpec   `yaml:"wander"`
	Chase    ChaseSpec    `yaml:"chase"`
	Ranged   RangedSpec   `yaml:"ranged"`
	Melee    MeleeSpec    `yaml:"melee"`
	Howl     HowlSpec     `yaml:"howl"`
	Burrow   BurrowSpec   `yaml:"burrow"`
	Tunnel   TunnelSpec   `yaml:"tunnel"`
	Unburrow UnburrowSpec `yaml:"unburrow"`
	Script   ScriptSpec   `yaml:"script"`
}

type ColliderSpec struct {
	Radius float64 `yaml:"radius"`
}

type WanderSpec struct {
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`
	Interval float64 `yaml:"interval"`
}

type ChaseSpec struct {
	Speed         float64 `yaml:"speed"`
	PathThreshold float64 `yaml:"path_threshold"`
	PathMargin    float64 `yaml:"path_margin"`
}

type RangedSpec struct {
	TimeBetweenShots float64 `yaml:"time_between_shots"`
	BulletSpeed      float64 `yaml:"bullet_speed"`
	BulletLifetime   float64 `yaml:"bullet_lifetime"`
	BulletDamage     int     `yaml:"bullet_damage"`
	LateralOffset    float64 `yaml:"lateral_offset"`
	TimeTillExit     float64 `yaml:"time_till_exit"`
}

type MeleeSpec struct {
	Damage    int     `yaml:"damage"`
	MoveScale float64 `yaml:"move_scale"`
	Duration  float64 `yaml:"duration"`
}

type HowlSpec struct {
	Duration float64 `yaml:"duration"`
	Cooldown float64 `yaml:"cooldown"`
}

type BurrowSpec struct {
	Speed          float64 `yaml:"speed"`
	ArriveDistance float64 `yaml:"arrive_distance"`
}

type TunnelSpec struct {
	Speed    float64 `yaml:"speed"`
	Distance float64 `yaml:"distance"`
}

type UnburrowSpec struct {
	Damage         int     `yaml:"damage"`
	FleeChance     float64 `yaml:"flee_chance"`
	PostAttackIdle float64 `yaml:"post_attack_idle"`
	Duration       float64 `yaml:"duration"`
}

// ScriptSpec binds a Tengo script to the states it drives.
type ScriptSpec struct {
	Path   string   `yaml:"path"`
	States []string `yaml:"states"`
}

type AnimationSpec struct {
	Defs map[string]AnimationDefSpec `yaml:"defs"`
}

// AnimationDefSpec describes a clip. Events maps a frame index to the trigger
// raised when playback reaches it.
type AnimationDefSpec struct {
	FrameCount int            `yaml:"frame_count"`
	FPS        float64        `yaml:"fps"`
	Loop       bool           `yaml:"loop"`
	Tag        string         `yaml:"tag"`
	Events     map[int]string `yaml:"events"`
}

// LoadEnemySpec loads and validates an enemy prefab.
func LoadEnemySpec(name string) (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks the fields the species loadout depends on.
func (s *EnemySpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSpec)
	}
	if !s.Species.Known() {
		return fmt.Errorf("%w: %s: %q", ErrUnknownSpecies, s.Name, s.Species)
	}

	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(s.MaxHealth > 0, "max_health must be positive")
	check(s.StrikeRadius > 0, "strike_radius must be positive")
	check(s.AggroRadius >= s.StrikeRadius, "aggro_radius must cover strike_radius")
	check(s.Wander.Speed >= 0 && s.Wander.Radius >= 0, "wander must not be negative")

	switch s.Species {
	case SpeciesGeneric:
		check(s.Chase.Speed > 0, "chase.speed must be positive")
		check(s.Chase.PathMargin >= 0 && s.Chase.PathMargin <= s.Chase.PathThreshold, "chase.path_margin must be within path_threshold")
		check(s.Ranged.TimeBetweenShots > 0, "ranged.time_between_shots must be positive")
		check(s.Ranged.BulletLifetime > 0, "ranged.bullet_lifetime must be positive")
	case SpeciesWolf:
		check(s.Chase.Speed > 0, "chase.speed must be positive")
		check(s.Melee.Duration > 0, "melee.duration must be positive")
		check(s.Howl.Duration > 0, "howl.duration must be positive")
	case SpeciesBadger:
		check(s.Burrow.Speed > 0, "burrow.speed must be positive")
		check(s.Tunnel.Speed > 0 && s.Tunnel.Distance > 0, "tunnel needs speed and distance")
		check(s.Unburrow.FleeChance >= 0 && s.Unburrow.FleeChance <= 1, "unburrow.flee_chance must be in [0,1]")
		check(s.Unburrow.Duration > 0, "unburrow.duration must be positive")
	case SpeciesScripted:
		check(strings.TrimSpace(s.Script.Path) != "", "script.path is required")
		check(len(s.Script.States) > 0, "script.states is required")
	}

	for name, def := range s.Animation.Defs {
		check(def.FrameCount > 0 && def.FPS > 0, "animation "+name+" needs frame_count and fps")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrInvalidSpec, s.Name, strings.Join(problems, "; "))
	}
	return nil
}
