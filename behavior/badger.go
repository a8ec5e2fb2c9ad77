package behavior

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/fsm"
)

// emergeTag is the animator tag carried by the badger's emerge clip.
const emergeTag = "emerge"

// Underground travel gives up after the straight-line time scaled by
// travelSlack plus travelGrace seconds.
const (
	travelSlack = 1.5
	travelGrace = 0.5
)

// travelLimit is how long a move of dist at speed may take before the mover
// is treated as blocked.
func travelLimit(dist, speed float64) float64 {
	if speed <= 0 {
		return travelGrace
	}
	return dist/speed*travelSlack + travelGrace
}

// BadgerState is shared by the badger's idle, burrow, tunnel and unburrow
// strategies. It outlives any single activation, so ResetValues on those
// strategies never clears it.
//
// Precedence: IsBurrowing and IsTunneling are never both set. The flee flag is
// only read when leaving idle and is cleared when an escape tunnel completes.
type BadgerState struct {
	IsWondering               bool
	IsBurrowing               bool
	IsTunneling               bool
	ShouldRunAwayOnNextBurrow bool

	// PostAttackIdle is the remaining forced idle time in seconds.
	PostAttackIdle float64
}

// BadgerIdle wanders and, once the post-attack idle has run out, answers
// aggro with either a burrow attack or an escape tunnel.
type BadgerIdle struct {
	Base
	state  *BadgerState
	wander *Wander
}

func NewBadgerIdle(state *BadgerState, cfg WanderConfig) *BadgerIdle {
	cfg.OnAggro = ""
	return &BadgerIdle{state: state, wander: NewWander(cfg)}
}

func (b *BadgerIdle) Initialize(ctx Context) {
	b.Base.Initialize(ctx)
	b.wander.Initialize(ctx)
}

func (b *BadgerIdle) EnterLogic() {
	b.state.IsWondering = true
	b.wander.EnterLogic()
}

func (b *BadgerIdle) ExitLogic() {
	b.state.IsWondering = false
	b.ResetValues()
}

func (b *BadgerIdle) FrameUpdateLogic() {
	ctx := b.ctx
	if b.state.PostAttackIdle > 0 {
		b.state.PostAttackIdle = math.Max(0, b.state.PostAttackIdle-ctx.FrameDelta())
		b.wander.Step()
		return
	}
	if ctx.IsAggroed() {
		if b.state.ShouldRunAwayOnNextBurrow {
			ctx.ChangeState(StateTunnel)
		} else {
			ctx.ChangeState(StateBurrow)
		}
		return
	}
	b.wander.Step()
}

func (b *BadgerIdle) ResetValues() {
	b.wander.ResetValues()
}

// BurrowConfig tunes Burrower.
type BurrowConfig struct {
	Speed          float64
	ArriveDistance float64
}

// Burrower digs in and travels underground straight to where the target stood
// on entry, then surfaces into the attack state. A burrow that runs past its
// travel limit surfaces where it is.
type Burrower struct {
	Base
	state *BadgerState
	cfg   BurrowConfig

	target  cp.Vector
	elapsed float64
	limit   float64
}

func NewBurrower(state *BadgerState, cfg BurrowConfig) *Burrower {
	return &Burrower{state: state, cfg: cfg}
}

func (b *Burrower) EnterLogic() {
	b.state.IsBurrowing = true
	b.state.IsTunneling = false
	b.target = b.ctx.Position()
	if target, ok := b.ctx.TargetPosition(); ok {
		b.target = target
	}
	b.elapsed = 0
	b.limit = travelLimit(b.ctx.Position().Distance(b.target), b.cfg.Speed)
	play(b.ctx, "burrow")
	setBool(b.ctx, "burrowed", true)
}

func (b *Burrower) ExitLogic() {
	b.ResetValues()
}

func (b *Burrower) FrameUpdateLogic() {
	ctx := b.ctx
	pos := ctx.Position()
	b.elapsed += ctx.FrameDelta()
	if pos.DistanceSq(b.target) < b.cfg.ArriveDistance*b.cfg.ArriveDistance || b.elapsed >= b.limit {
		ctx.MoveEnemy(cp.Vector{})
		ctx.ChangeState(StateAttack)
		return
	}
	ctx.MoveEnemy(directionTo(pos, b.target).Mult(b.cfg.Speed))
}

func (b *Burrower) ResetValues() {
	b.target = cp.Vector{}
	b.elapsed = 0
	b.limit = 0
}

// Target returns the burrow destination fixed on entry.
func (b *Burrower) Target() cp.Vector { return b.target }

// TunnelConfig tunes Tunneler.
type TunnelConfig struct {
	Speed          float64
	Distance       float64
	ArriveDistance float64
}

// Tunneler runs a fixed-length escape line directly away from the target,
// tracking how much of the line is left. An escape cut short by a wall ends
// at the travel limit as if it had finished.
type Tunneler struct {
	Base
	state *BadgerState
	cfg   TunnelConfig

	start     cp.Vector
	dir       cp.Vector
	remaining float64
	elapsed   float64
}

func NewTunneler(state *BadgerState, cfg TunnelConfig) *Tunneler {
	return &Tunneler{state: state, cfg: cfg}
}

func (t *Tunneler) EnterLogic() {
	ctx := t.ctx
	t.state.IsTunneling = true
	t.state.IsBurrowing = false
	t.start = ctx.Position()
	if target, ok := ctx.TargetPosition(); ok {
		t.dir = directionTo(target, t.start)
	}
	if t.dir.LengthSq() == 0 {
		t.dir = cp.ForAngle(ctx.Rand().Float64() * 2 * math.Pi)
	}
	t.remaining = t.cfg.Distance
	t.elapsed = 0
	play(ctx, "tunnel")
	setBool(ctx, "burrowed", true)
}

func (t *Tunneler) ExitLogic() {
	t.ResetValues()
}

func (t *Tunneler) FrameUpdateLogic() {
	ctx := t.ctx
	travelled := ctx.Position().Sub(t.start).Dot(t.dir)
	t.remaining = math.Max(0, t.cfg.Distance-travelled)
	t.elapsed += ctx.FrameDelta()
	if t.remaining <= t.cfg.ArriveDistance || t.elapsed >= travelLimit(t.cfg.Distance, t.cfg.Speed) {
		t.state.IsTunneling = false
		t.state.ShouldRunAwayOnNextBurrow = false
		ctx.MoveEnemy(cp.Vector{})
		setBool(ctx, "burrowed", false)
		ctx.ChangeState(StateIdle)
		return
	}
	ctx.MoveEnemy(t.dir.Mult(t.cfg.Speed))
}

func (t *Tunneler) ResetValues() {
	t.start = cp.Vector{}
	t.dir = cp.Vector{}
	t.remaining = 0
	t.elapsed = 0
}

// Remaining returns the distance left on the escape line.
func (t *Tunneler) Remaining() float64 { return t.remaining }

// Direction returns the unit direction of the escape line.
func (t *Tunneler) Direction() cp.Vector { return t.dir }

// UnburrowConfig tunes Unburrower.
type UnburrowConfig struct {
	Damage         int
	FleeChance     float64
	PostAttackIdle float64
	Duration       float64 // emerge length used when no animator is attached
}

// Unburrower is the badger's attack: it surfaces under the target, strikes
// once, clears the burrow flags and decides whether the next cycle flees.
type Unburrower struct {
	Base
	state *BadgerState
	cfg   UnburrowConfig

	elapsed float64
	landed  bool
	done    bool
	warned  bool
}

func NewUnburrower(state *BadgerState, cfg UnburrowConfig) *Unburrower {
	return &Unburrower{state: state, cfg: cfg}
}

func (u *Unburrower) EnterLogic() {
	u.ctx.MoveEnemy(cp.Vector{})
	play(u.ctx, "emerge")
	setBool(u.ctx, "burrowed", false)
}

func (u *Unburrower) ExitLogic() {
	u.ResetValues()
}

func (u *Unburrower) FrameUpdateLogic() {
	ctx := u.ctx
	ctx.MoveEnemy(cp.Vector{})
	u.elapsed += ctx.FrameDelta()
	if !u.done && u.emerged() {
		u.done = true
	}
	if !u.done {
		return
	}
	u.unburrow()
	ctx.ChangeState(StateIdle)
}

func (u *Unburrower) AnimationTriggerEventLogic(t fsm.Trigger) {
	switch t {
	case fsm.TriggerAttackLanded:
		if u.landed || !u.ctx.IsWithinStrikingDistance() {
			return
		}
		u.landed = true
		if dmg := u.ctx.Damager(); dmg != nil {
			dmg.DamageTarget(u.cfg.Damage)
		} else {
			warnMissing(u.ctx, &u.warned, "damager")
		}
	case fsm.TriggerEmerged:
		u.done = true
	}
}

func (u *Unburrower) ResetValues() {
	u.elapsed = 0
	u.landed = false
	u.done = false
	u.warned = false
}

func (u *Unburrower) emerged() bool {
	if a := u.ctx.Animator(); a != nil && a.CurrentTag() == emergeTag {
		return a.NormalizedTime() >= 1
	}
	return u.elapsed >= u.cfg.Duration
}

func (u *Unburrower) unburrow() {
	u.state.IsBurrowing = false
	u.state.IsTunneling = false
	u.state.ShouldRunAwayOnNextBurrow = u.ctx.Rand().Float64() < u.cfg.FleeChance
	u.state.PostAttackIdle = u.cfg.PostAttackIdle
}
