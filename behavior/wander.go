package behavior

import (
	"math"

	"github.com/jakecoffman/cp"
)

// wanderEpsilonSq is the squared arrival distance at which a new wander target
// is picked.
const wanderEpsilonSq = 0.01

// WanderConfig tunes Wander.
type WanderConfig struct {
	Radius   float64
	Speed    float64
	Interval float64 // re-pick after this many seconds; <= 0 disables
	OnAggro  StateID // empty keeps the enemy idle when aggroed
}

// Wander picks random points around the enemy and strolls to them until the
// aggro sensor trips.
type Wander struct {
	Base
	cfg WanderConfig

	target    cp.Vector
	hasTarget bool
	timer     float64
	picks     int
}

func NewWander(cfg WanderConfig) *Wander {
	return &Wander{cfg: cfg}
}

func (w *Wander) EnterLogic() {
	w.pickTarget()
	play(w.ctx, "walk")
}

func (w *Wander) ExitLogic() {
	w.ResetValues()
}

func (w *Wander) FrameUpdateLogic() {
	ctx := w.ctx
	if ctx.IsAggroed() && w.cfg.OnAggro != "" {
		ctx.ChangeState(w.cfg.OnAggro)
		return
	}
	w.Step()
}

// Step advances the wander timer and moves toward the target without looking
// at sensors. Other idle strategies reuse it.
func (w *Wander) Step() {
	ctx := w.ctx
	if !w.hasTarget {
		w.pickTarget()
	}
	w.timer += ctx.FrameDelta()

	pos := ctx.Position()
	expired := w.cfg.Interval > 0 && w.timer > w.cfg.Interval
	if pos.DistanceSq(w.target) < wanderEpsilonSq || expired {
		w.pickTarget()
	}
	ctx.MoveEnemy(directionTo(pos, w.target).Mult(w.cfg.Speed))
}

func (w *Wander) ResetValues() {
	w.target = cp.Vector{}
	w.hasTarget = false
	w.timer = 0
}

// Target returns the current wander target.
func (w *Wander) Target() cp.Vector { return w.target }

// Picks returns how many targets have been generated since Initialize.
func (w *Wander) Picks() int { return w.picks }

func (w *Wander) pickTarget() {
	w.target = w.ctx.Position().Add(randomInCircle(w.ctx, w.cfg.Radius))
	w.hasTarget = true
	w.timer = 0
	w.picks++
}

// randomInCircle returns a point uniformly distributed in a disc of radius r.
func randomInCircle(ctx Context, r float64) cp.Vector {
	rng := ctx.Rand()
	angle := rng.Float64() * 2 * math.Pi
	dist := r * math.Sqrt(rng.Float64())
	return cp.Vector{X: math.Cos(angle) * dist, Y: math.Sin(angle) * dist}
}
