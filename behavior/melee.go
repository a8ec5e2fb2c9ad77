package behavior

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/fsm"
)

// attackTag is the animator tag carried by melee attack clips.
const attackTag = "attack"

// MeleeConfig tunes Melee.
type MeleeConfig struct {
	Damage    int
	Speed     float64
	MoveScale float64 // fraction of Speed allowed mid-swing; 0 locks movement
	Duration  float64 // swing length used when no animator is attached
}

// Melee swings at the target. Swing completion is detected by polling the
// animator's normalized time so a dropped animation event cannot stall it.
type Melee struct {
	Base
	cfg MeleeConfig

	elapsed  float64
	landed   bool
	finished bool
	swings   int
	warned   bool
}

func NewMelee(cfg MeleeConfig) *Melee {
	return &Melee{cfg: cfg}
}

func (m *Melee) EnterLogic() {
	m.warned = false
	m.startSwing()
}

func (m *Melee) ExitLogic() {
	m.ResetValues()
}

func (m *Melee) FrameUpdateLogic() {
	ctx := m.ctx
	m.elapsed += ctx.FrameDelta()
	if !m.finished && m.swingComplete() {
		m.finished = true
	}
	if !m.finished {
		return
	}
	if ctx.IsWithinStrikingDistance() {
		m.startSwing()
		return
	}
	ctx.ChangeState(StateChase)
}

func (m *Melee) PhysicsUpdateLogic() {
	ctx := m.ctx
	if !m.swinging() {
		return
	}
	target, ok := ctx.TargetPosition()
	if !ok || m.cfg.MoveScale <= 0 {
		ctx.MoveEnemy(cp.Vector{})
		return
	}
	dir := directionTo(ctx.Position(), target)
	ctx.MoveEnemy(dir.Mult(m.cfg.Speed * m.cfg.MoveScale))
}

func (m *Melee) AnimationTriggerEventLogic(t fsm.Trigger) {
	switch t {
	case fsm.TriggerAttackLanded:
		if m.landed || !m.ctx.IsWithinStrikingDistance() {
			return
		}
		m.landed = true
		if dmg := m.ctx.Damager(); dmg != nil {
			dmg.DamageTarget(m.cfg.Damage)
		} else {
			warnMissing(m.ctx, &m.warned, "damager")
		}
	case fsm.TriggerAttackFinished:
		m.finished = true
	}
}

func (m *Melee) ResetValues() {
	m.elapsed = 0
	m.landed = false
	m.finished = false
	m.warned = false
}

// Swings returns how many swings have started since Initialize.
func (m *Melee) Swings() int { return m.swings }

func (m *Melee) startSwing() {
	m.elapsed = 0
	m.landed = false
	m.finished = false
	m.swings++
	play(m.ctx, "attack")
}

func (m *Melee) swinging() bool {
	if a := m.ctx.Animator(); a != nil && a.CurrentTag() == attackTag {
		return a.NormalizedTime() < 1
	}
	return !m.finished
}

func (m *Melee) swingComplete() bool {
	if a := m.ctx.Animator(); a != nil && a.CurrentTag() == attackTag {
		return a.NormalizedTime() >= 1
	}
	return m.elapsed >= m.cfg.Duration
}
