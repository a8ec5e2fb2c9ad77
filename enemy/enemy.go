// Package enemy wires behavior strategies into a per-enemy state machine and
// exposes the sensor and game-loop surface the host drives it through.
package enemy

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/behavior"
	"github.com/milk9111/bestiary/fsm"
	"github.com/milk9111/bestiary/prefabs"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoBody         = errors.New("enemy: body is required")
	ErrInvalidLoadout = errors.New("enemy: invalid loadout")
)

// facingEpsilon is the horizontal speed below which facing is left alone.
const facingEpsilon = 1e-3

// Body is the movement sink. The enemy only ever hands it a velocity.
type Body interface {
	Position() cp.Vector
	SetVelocity(v cp.Vector)
}

// TargetProvider reports where the current target is, if there is one.
type TargetProvider interface {
	TargetPosition() (cp.Vector, bool)
}

// TargetFunc adapts a function to TargetProvider.
type TargetFunc func() (cp.Vector, bool)

func (f TargetFunc) TargetPosition() (cp.Vector, bool) { return f() }

// FacingListener is told when horizontal facing flips.
type FacingListener func(facingRight bool)

// Config carries identity and collaborators. Every collaborator except Body
// may be nil; strategies that need a missing one degrade and log a warning.
type Config struct {
	ID        string
	Species   prefabs.Species
	MaxHealth int
	Spawn     *cp.Vector

	Body        Body
	Target      TargetProvider
	Animator    behavior.Animator
	Pathfinder  behavior.Pathfinder
	Projectiles behavior.ProjectileSpawner
	Pack        behavior.Pack
	Damager     behavior.Damager

	Rand   *rand.Rand
	Logger logrus.FieldLogger

	OnFacing     FacingListener
	OnTransition func(e *Enemy, from, to behavior.StateID)
}

// Enemy is the context every strategy of one enemy shares. It owns the state
// machine, the sensors and the collaborator handles.
type Enemy struct {
	cfg     Config
	log     logrus.FieldLogger
	rng     *rand.Rand
	spawn   cp.Vector
	machine *fsm.StateMachine
	states  map[behavior.StateID]*State
	badger  *behavior.BadgerState

	health       int
	maxHealth    int
	aggro        bool
	strike       bool
	alerted      bool
	facingRight  bool
	frameDelta   float64
	physicsDelta float64
	pendingDeath bool
	unknown      map[behavior.StateID]bool
}

// New builds the enemy's states from the loadout, initializes every strategy
// once and enters the loadout's initial state.
func New(cfg Config, l Loadout) (*Enemy, error) {
	if cfg.Body == nil {
		return nil, ErrNoBody
	}
	initial := l.Initial
	if initial == "" {
		initial = behavior.StateIdle
	}
	if l.Strategies[initial] == nil {
		return nil, fmt.Errorf("%w: no strategy for initial state %q", ErrInvalidLoadout, initial)
	}
	if l.Strategies[behavior.StateDead] == nil {
		return nil, fmt.Errorf("%w: no strategy for %q", ErrInvalidLoadout, behavior.StateDead)
	}

	e := &Enemy{
		cfg:         cfg,
		rng:         cfg.Rand,
		states:      make(map[behavior.StateID]*State, len(l.Strategies)),
		badger:      l.Badger,
		maxHealth:   cfg.MaxHealth,
		facingRight: true,
		unknown:     map[behavior.StateID]bool{},
	}
	if e.maxHealth <= 0 {
		e.maxHealth = 1
	}
	e.health = e.maxHealth
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	base := cfg.Logger
	if base == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		base = discard
	}
	e.log = base.WithFields(logrus.Fields{"enemy": cfg.ID, "species": string(cfg.Species)})
	e.spawn = cfg.Body.Position()
	if cfg.Spawn != nil {
		e.spawn = *cfg.Spawn
	}

	ids := make([]string, 0, len(l.Strategies))
	for id, s := range l.Strategies {
		if s != nil {
			ids = append(ids, string(id))
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		sid := behavior.StateID(id)
		strategy := l.Strategies[sid]
		e.states[sid] = NewState(sid, strategy)
		strategy.Initialize(e)
	}

	e.machine = fsm.NewStateMachine()
	e.machine.OnTransition = e.onTransition
	e.machine.Initialize(e.states[initial])
	return e, nil
}

// Tick runs the frame channel: pending death first, then the current state's
// frame update.
func (e *Enemy) Tick(frameDelta float64) {
	e.frameDelta = frameDelta
	if e.pendingDeath {
		e.pendingDeath = false
		e.ChangeState(behavior.StateDead)
	}
	e.machine.Current().FrameUpdate()
}

// FixedTick runs the fixed-step physics channel.
func (e *Enemy) FixedTick(stepDelta float64) {
	e.physicsDelta = stepDelta
	e.machine.Current().PhysicsUpdate()
}

// AnimationTriggerEvent forwards an animation event to the current state.
func (e *Enemy) AnimationTriggerEvent(t fsm.Trigger) {
	e.machine.Current().AnimationTriggerEvent(t)
}

// Damage lowers health and raises TriggerEnemyDamaged. Reaching zero schedules
// the Dead transition for the next Tick. It reports whether damage applied.
func (e *Enemy) Damage(amount int) bool {
	if amount <= 0 || !e.Alive() {
		return false
	}
	e.health -= amount
	if e.health < 0 {
		e.health = 0
	}
	if a := e.cfg.Animator; a != nil {
		a.SetTrigger("hurt")
	}
	e.AnimationTriggerEvent(fsm.TriggerEnemyDamaged)
	if e.health == 0 {
		e.pendingDeath = true
		e.log.WithField("state", e.CurrentState()).Debug("enemy killed")
	}
	return true
}

// ChangeState moves the machine to id. Dead is terminal, and ids without a
// strategy are ignored with a warning.
func (e *Enemy) ChangeState(id behavior.StateID) {
	if e.CurrentState() == behavior.StateDead {
		return
	}
	next, ok := e.states[id]
	if !ok {
		if !e.unknown[id] {
			e.unknown[id] = true
			e.Logger().WithField("requested", id).Warn("no strategy for requested state")
		}
		return
	}
	if id == behavior.StateIdle {
		e.alerted = false
	}
	e.machine.ChangeState(next)
}

func (e *Enemy) onTransition(from, to fsm.State) {
	fromID := from.(*State).ID()
	toID := to.(*State).ID()
	e.log.WithFields(logrus.Fields{"from": fromID, "to": toID}).Debug("state transition")
	if e.cfg.OnTransition != nil {
		e.cfg.OnTransition(e, fromID, toID)
	}
}

// SetAggroStatus records whether the target is inside the aggro radius. A
// tripped sensor supersedes a pending alert.
func (e *Enemy) SetAggroStatus(aggroed bool) {
	e.aggro = aggroed
	if aggroed {
		e.alerted = false
	}
}

// SetStrikingDistance records whether the target is inside strike range.
func (e *Enemy) SetStrikingDistance(within bool) { e.strike = within }

// Alert makes the enemy count as aggroed until it next enters Idle or its own
// aggro sensor trips.
func (e *Enemy) Alert() {
	if e.Alive() {
		e.alerted = true
	}
}

func (e *Enemy) ID() string                     { return e.cfg.ID }
func (e *Enemy) Species() prefabs.Species       { return e.cfg.Species }
func (e *Enemy) Position() cp.Vector            { return e.cfg.Body.Position() }
func (e *Enemy) SpawnPosition() cp.Vector       { return e.spawn }
func (e *Enemy) IsAggroed() bool                { return e.aggro || e.alerted }
func (e *Enemy) Alerted() bool                  { return e.alerted }
func (e *Enemy) IsWithinStrikingDistance() bool { return e.strike }
func (e *Enemy) FrameDelta() float64            { return e.frameDelta }
func (e *Enemy) PhysicsDelta() float64          { return e.physicsDelta }
func (e *Enemy) Rand() *rand.Rand               { return e.rng }

func (e *Enemy) TargetPosition() (cp.Vector, bool) {
	if e.cfg.Target == nil {
		return cp.Vector{}, false
	}
	return e.cfg.Target.TargetPosition()
}

// MoveEnemy hands velocity to the body and keeps facing in sync.
func (e *Enemy) MoveEnemy(velocity cp.Vector) {
	e.cfg.Body.SetVelocity(velocity)
	switch {
	case velocity.X > facingEpsilon && !e.facingRight:
		e.setFacing(true)
	case velocity.X < -facingEpsilon && e.facingRight:
		e.setFacing(false)
	}
}

func (e *Enemy) setFacing(right bool) {
	e.facingRight = right
	if e.cfg.OnFacing != nil {
		e.cfg.OnFacing(right)
	}
}

// Logger returns the enemy's logger tagged with the current state.
func (e *Enemy) Logger() logrus.FieldLogger {
	return e.log.WithField("state", e.CurrentState())
}

func (e *Enemy) Animator() behavior.Animator             { return e.cfg.Animator }
func (e *Enemy) Pathfinder() behavior.Pathfinder         { return e.cfg.Pathfinder }
func (e *Enemy) Projectiles() behavior.ProjectileSpawner { return e.cfg.Projectiles }
func (e *Enemy) Pack() behavior.Pack                     { return e.cfg.Pack }
func (e *Enemy) Damager() behavior.Damager               { return e.cfg.Damager }

// CurrentState returns the id of the active state.
func (e *Enemy) CurrentState() behavior.StateID {
	if e.machine == nil || e.machine.Current() == nil {
		return ""
	}
	return e.machine.Current().(*State).ID()
}

// Strategy returns the strategy bound to id, or nil.
func (e *Enemy) Strategy(id behavior.StateID) behavior.Strategy {
	if s, ok := e.states[id]; ok {
		return s.Strategy()
	}
	return nil
}

// Badger returns the shared badger flags, or nil for other species.
func (e *Enemy) Badger() *behavior.BadgerState { return e.badger }

func (e *Enemy) Alive() bool       { return e.health > 0 }
func (e *Enemy) Health() int       { return e.health }
func (e *Enemy) MaxHealth() int    { return e.maxHealth }
func (e *Enemy) FacingRight() bool { return e.facingRight }
func (e *Enemy) Transitions() int  { return e.machine.Transitions() }
