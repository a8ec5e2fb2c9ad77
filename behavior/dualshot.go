package behavior

import "github.com/jakecoffman/cp"

// DualShotConfig tunes DualShot.
type DualShotConfig struct {
	TimeBetweenShots float64
	BulletSpeed      float64
	BulletLifetime   float64
	LateralOffset    float64
	TimeTillExit     float64
}

// DualShot holds position and fires a pair of parallel projectiles at the
// target on a fixed interval. It falls back to Chase once the target has been
// out of striking range for longer than TimeTillExit.
type DualShot struct {
	Base
	cfg DualShotConfig

	shotTimer float64
	exitTimer float64
	volleys   int
	warned    bool
}

func NewDualShot(cfg DualShotConfig) *DualShot {
	return &DualShot{cfg: cfg}
}

func (d *DualShot) EnterLogic() {
	d.warned = false
	d.ctx.MoveEnemy(cp.Vector{})
	play(d.ctx, "attack")
}

func (d *DualShot) ExitLogic() {
	d.ResetValues()
}

func (d *DualShot) FrameUpdateLogic() {
	ctx := d.ctx
	dt := ctx.FrameDelta()
	ctx.MoveEnemy(cp.Vector{})

	if d.cfg.TimeBetweenShots > 0 {
		d.shotTimer += dt
		if d.shotTimer >= d.cfg.TimeBetweenShots {
			d.shotTimer -= d.cfg.TimeBetweenShots
			d.fire()
		}
	}

	if ctx.IsWithinStrikingDistance() {
		d.exitTimer = 0
		return
	}
	d.exitTimer += dt
	if d.exitTimer > d.cfg.TimeTillExit {
		ctx.ChangeState(StateChase)
	}
}

func (d *DualShot) fire() {
	ctx := d.ctx
	spawner := ctx.Projectiles()
	if spawner == nil {
		warnMissing(ctx, &d.warned, "projectile spawner")
		return
	}
	target, ok := ctx.TargetPosition()
	if !ok {
		return
	}
	pos := ctx.Position()
	dir := directionTo(pos, target)
	if dir.LengthSq() == 0 {
		return
	}

	offset := dir.Perp().Mult(d.cfg.LateralOffset)
	velocity := dir.Mult(d.cfg.BulletSpeed)
	spawner.Spawn(pos.Add(offset), velocity, d.cfg.BulletLifetime)
	spawner.Spawn(pos.Sub(offset), velocity, d.cfg.BulletLifetime)
	d.volleys++
}

func (d *DualShot) ResetValues() {
	d.shotTimer = 0
	d.exitTimer = 0
	d.warned = false
}

// Volleys returns the number of paired shots fired since Initialize.
func (d *DualShot) Volleys() int { return d.volleys }

// ExitTimer returns the accumulated out-of-range time.
func (d *DualShot) ExitTimer() float64 { return d.exitTimer }
