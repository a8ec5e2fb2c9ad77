package behavior

import "github.com/jakecoffman/cp"

// ChaseMode is the steering sub-mode of Chase.
type ChaseMode int

const (
	ChaseDirect ChaseMode = iota
	ChasePath
)

func (m ChaseMode) String() string {
	if m == ChasePath {
		return "path"
	}
	return "direct"
}

// ChaseConfig tunes Chase. Path following is used beyond PathThreshold, with
// a band of ±PathMargin to stop the mode flapping near the threshold.
type ChaseConfig struct {
	Speed         float64
	PathThreshold float64
	PathMargin    float64
}

// Chase runs at the target, steering directly when close and following the
// pathfinder when far.
type Chase struct {
	Base
	cfg ChaseConfig

	mode   ChaseMode
	warned bool
}

func NewChase(cfg ChaseConfig) *Chase {
	return &Chase{cfg: cfg}
}

func (c *Chase) EnterLogic() {
	c.warned = false
	c.mode = ChaseDirect
	if target, ok := c.ctx.TargetPosition(); ok {
		if c.ctx.Position().Distance(target) > c.cfg.PathThreshold {
			c.mode = ChasePath
		}
	}
	play(c.ctx, "run")
}

func (c *Chase) ExitLogic() {
	c.ResetValues()
}

func (c *Chase) FrameUpdateLogic() {
	ctx := c.ctx
	if !ctx.IsAggroed() {
		ctx.ChangeState(StateIdle)
		return
	}
	if ctx.IsWithinStrikingDistance() {
		ctx.ChangeState(StateAttack)
		return
	}

	target, ok := ctx.TargetPosition()
	if !ok {
		ctx.MoveEnemy(cp.Vector{})
		return
	}

	pos := ctx.Position()
	c.updateMode(pos.Distance(target))

	dir := directionTo(pos, target)
	if c.mode == ChasePath {
		if pf := ctx.Pathfinder(); pf == nil {
			warnMissing(ctx, &c.warned, "pathfinder")
		} else if step := pf.GetMoveDirection(target); step.LengthSq() > 0 {
			dir = step.Normalize()
		}
	}
	ctx.MoveEnemy(dir.Mult(c.cfg.Speed))
}

func (c *Chase) updateMode(dist float64) {
	switch c.mode {
	case ChaseDirect:
		if dist > c.cfg.PathThreshold+c.cfg.PathMargin {
			c.mode = ChasePath
		}
	case ChasePath:
		if dist < c.cfg.PathThreshold-c.cfg.PathMargin {
			c.mode = ChaseDirect
		}
	}
}

func (c *Chase) ResetValues() {
	c.mode = ChaseDirect
	c.warned = false
}

// Mode reports the current steering mode.
func (c *Chase) Mode() ChaseMode { return c.mode }
