package behavior

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/fsm"
)

// HowlConfig tunes Howler.
type HowlConfig struct {
	Duration float64
}

// Howler rallies a pack before the chase. Only the pack leader howls, and only
// when the pack's cooldown allows it; everyone else goes straight to Chase.
type Howler struct {
	Base
	cfg HowlConfig

	howling bool
	timer   float64
	howls   int
	warned  bool
}

func NewHowler(cfg HowlConfig) *Howler {
	return &Howler{cfg: cfg}
}

func (h *Howler) EnterLogic() {
	h.warned = false
	pack := h.ctx.Pack()
	if pack == nil {
		return
	}
	id := h.ctx.ID()
	pack.EnsureLeader(id)
	if !pack.IsLeader(id) || !pack.CanLeaderHowl() {
		return
	}
	h.howling = true
	h.timer = 0
	h.ctx.MoveEnemy(cp.Vector{})
	play(h.ctx, "howl")
}

func (h *Howler) ExitLogic() {
	h.ResetValues()
}

func (h *Howler) FrameUpdateLogic() {
	ctx := h.ctx
	if !h.howling {
		if ctx.Pack() == nil {
			warnMissing(ctx, &h.warned, "pack coordinator")
		}
		ctx.ChangeState(StateChase)
		return
	}

	ctx.MoveEnemy(cp.Vector{})
	h.timer += ctx.FrameDelta()
	if h.timer >= h.cfg.Duration {
		h.finish()
	}
}

func (h *Howler) AnimationTriggerEventLogic(t fsm.Trigger) {
	// completes on the next frame update; transitions stay on the update path
	if t == fsm.TriggerHowlFinished && h.howling {
		h.timer = h.cfg.Duration
	}
}

func (h *Howler) finish() {
	h.howling = false
	h.howls++
	if pack := h.ctx.Pack(); pack != nil {
		pack.HandleLeaderHowl(h.ctx.ID())
	}
	h.ctx.ChangeState(StateChase)
}

func (h *Howler) ResetValues() {
	h.howling = false
	h.timer = 0
	h.warned = false
}

// Howling reports whether the howl animation and timer are running.
func (h *Howler) Howling() bool { return h.howling }

// Timer returns the elapsed howl time.
func (h *Howler) Timer() float64 { return h.timer }

// Howls returns the number of completed howls since Initialize.
func (h *Howler) Howls() int { return h.howls }
