package component

import (
	"math"

	"github.com/milk9111/bestiary/fsm"
)

// AnimationDef is one clip. Frames advance at FPS; a looping clip wraps,
// otherwise it holds its last frame.
type AnimationDef struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
	Tag        string
	Events     map[int]fsm.Trigger
}

// Duration returns the clip length in seconds.
func (d AnimationDef) Duration() float64 {
	if d.FPS <= 0 {
		return 0
	}
	return float64(d.FrameCount) / d.FPS
}

// Animator plays clips by time instead of sprite sheets, so it can run
// headless. Frame events are collected during Update and drained by the host.
type Animator struct {
	Defs map[string]AnimationDef

	current  string
	elapsed  float64
	frame    int
	started  bool
	playing  bool
	bools    map[string]bool
	triggers map[string]bool
	pending  []fsm.Trigger
}

func NewAnimator(defs map[string]AnimationDef) *Animator {
	return &Animator{
		Defs:     defs,
		bools:    map[string]bool{},
		triggers: map[string]bool{},
	}
}

// Play restarts playback on clip. Unknown clips are still recorded so the
// current tag reflects the request.
func (a *Animator) Play(clip string) {
	a.current = clip
	a.elapsed = 0
	a.frame = 0
	a.started = false
	a.playing = true
}

func (a *Animator) SetTrigger(name string) {
	a.triggers[name] = true
}

// ConsumeTrigger reports and clears a trigger set by SetTrigger.
func (a *Animator) ConsumeTrigger(name string) bool {
	if !a.triggers[name] {
		return false
	}
	delete(a.triggers, name)
	return true
}

func (a *Animator) SetBool(name string, v bool) {
	a.bools[name] = v
}

func (a *Animator) Bool(name string) bool {
	return a.bools[name]
}

// Current returns the playing clip name.
func (a *Animator) Current() string { return a.current }

// Frame returns the current frame index.
func (a *Animator) Frame() int { return a.frame }

// Playing reports whether a non-looping clip has not reached its end yet.
func (a *Animator) Playing() bool { return a.playing }

func (a *Animator) CurrentTag() string {
	def, ok := a.Defs[a.current]
	if !ok || def.Tag == "" {
		return a.current
	}
	return def.Tag
}

// NormalizedTime is the progress through the current clip: [0,1] for one-shot
// clips and the fraction of the current loop for looping ones. Unknown clips
// report 1 so pollers never wait on them.
func (a *Animator) NormalizedTime() float64 {
	def, ok := a.Defs[a.current]
	if !ok || def.Duration() <= 0 {
		return 1
	}
	t := a.elapsed / def.Duration()
	if def.Loop {
		return t - math.Floor(t)
	}
	return math.Min(t, 1)
}

// Update advances playback by dt seconds and queues the events of every frame
// entered, including frame 0 on the first update after Play.
func (a *Animator) Update(dt float64) {
	def, ok := a.Defs[a.current]
	if !ok || def.FrameCount <= 0 || def.FPS <= 0 {
		return
	}
	if !a.started {
		a.started = true
		a.emit(def, 0)
	}
	if !a.playing {
		return
	}

	a.elapsed += dt
	if !def.Loop && a.elapsed >= def.Duration() {
		a.elapsed = def.Duration()
	}

	target := int(a.elapsed * def.FPS)
	for a.frame < target {
		a.frame++
		idx := a.frame
		if def.Loop {
			idx %= def.FrameCount
		} else if idx >= def.FrameCount {
			a.frame = def.FrameCount - 1
			a.playing = false
			return
		}
		a.emit(def, idx)
	}
	if def.Loop {
		// keep frame bounded; elapsed carries the loop phase
		loops := a.frame / def.FrameCount
		if loops > 0 {
			a.frame -= loops * def.FrameCount
			a.elapsed -= float64(loops) * def.Duration()
		}
	}
}

// DrainEvents returns and clears the queued frame events.
func (a *Animator) DrainEvents() []fsm.Trigger {
	out := a.pending
	a.pending = nil
	return out
}

func (a *Animator) emit(def AnimationDef, frame int) {
	if t, ok := def.Events[frame]; ok && t != "" {
		a.pending = append(a.pending, t)
	}
}
