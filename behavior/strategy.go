// Package behavior holds the swappable per-state, per-species strategies that
// drive an enemy. A strategy never owns physics, rendering or audio; it reads
// sensors from its Context and issues movement and animation commands back
// through it.
package behavior

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/fsm"
	"github.com/sirupsen/logrus"
)

// StateID identifies an enemy FSM state category.
type StateID string

const (
	StateIdle   StateID = "idle"
	StateChase  StateID = "chase"
	StateAttack StateID = "attack"
	StateHowl   StateID = "howl"
	StateBurrow StateID = "burrow"
	StateTunnel StateID = "tunnel"
	StateDead   StateID = "dead"
)

// Strategy is the fixed callback set every state behavior implements.
//
// Initialize runs once per enemy. EnterLogic and ExitLogic run exactly once per
// transition into and out of the owning state, and ExitLogic must leave the
// strategy reset via ResetValues.
type Strategy interface {
	Initialize(ctx Context)
	EnterLogic()
	ExitLogic()
	FrameUpdateLogic()
	PhysicsUpdateLogic()
	AnimationTriggerEventLogic(t fsm.Trigger)
	ResetValues()
}

// Context is the enemy as seen by its strategies.
type Context interface {
	ID() string
	Position() cp.Vector
	SpawnPosition() cp.Vector
	TargetPosition() (cp.Vector, bool)
	IsAggroed() bool
	IsWithinStrikingDistance() bool

	// MoveEnemy hands a velocity to the movement sink.
	MoveEnemy(velocity cp.Vector)
	ChangeState(id StateID)

	FrameDelta() float64
	PhysicsDelta() float64
	Rand() *rand.Rand
	Logger() logrus.FieldLogger

	// Optional collaborators. Any of these may be nil.
	Animator() Animator
	Pathfinder() Pathfinder
	Projectiles() ProjectileSpawner
	Pack() Pack
	Damager() Damager
}

// Animator is the animation-playback collaborator. Commands are
// fire-and-forget; CurrentTag and NormalizedTime are read-only polls.
type Animator interface {
	Play(clip string)
	SetTrigger(name string)
	SetBool(name string, v bool)
	CurrentTag() string
	NormalizedTime() float64
}

// Pathfinder returns a unit direction toward target, or the zero vector when
// no path exists.
type Pathfinder interface {
	GetMoveDirection(target cp.Vector) cp.Vector
}

// ProjectileSpawner instantiates a projectile with a velocity and lifetime.
type ProjectileSpawner interface {
	Spawn(origin, velocity cp.Vector, lifetime float64)
}

// Pack arbitrates which member of a group may broadcast a howl.
type Pack interface {
	EnsureLeader(member string)
	IsLeader(member string) bool
	CanLeaderHowl() bool
	HandleLeaderHowl(member string)
}

// Damager applies damage to the current target.
type Damager interface {
	DamageTarget(amount int)
}

// Base supplies no-op defaults for every callback and keeps the bound context.
type Base struct {
	ctx Context
}

func (b *Base) Initialize(ctx Context)                   { b.ctx = ctx }
func (b *Base) EnterLogic()                              {}
func (b *Base) ExitLogic()                               {}
func (b *Base) FrameUpdateLogic()                        {}
func (b *Base) PhysicsUpdateLogic()                      {}
func (b *Base) AnimationTriggerEventLogic(_ fsm.Trigger) {}
func (b *Base) ResetValues()                             {}

// Context returns the context passed to Initialize.
func (b *Base) Context() Context { return b.ctx }

func play(ctx Context, clip string) {
	if a := ctx.Animator(); a != nil {
		a.Play(clip)
	}
}

func setBool(ctx Context, name string, v bool) {
	if a := ctx.Animator(); a != nil {
		a.SetBool(name, v)
	}
}

// warnMissing logs a degraded behavior at most once per activation.
func warnMissing(ctx Context, warned *bool, what string) {
	if *warned {
		return
	}
	*warned = true
	ctx.Logger().WithField("missing", what).Warn("behavior degraded: required collaborator not set")
}

func directionTo(from, to cp.Vector) cp.Vector {
	d := to.Sub(from)
	if d.LengthSq() == 0 {
		return cp.Vector{}
	}
	return d.Normalize()
}
