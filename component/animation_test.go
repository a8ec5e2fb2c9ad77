package component

import (
	"testing"

	"github.com/milk9111/bestiary/fsm"
	"github.com/milk9111/bestiary/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefs() map[string]AnimationDef {
	return map[string]AnimationDef{
		"walk": {Name: "walk", FrameCount: 4, FPS: 4, Loop: true, Events: map[int]fsm.Trigger{0: fsm.TriggerFootstep, 2: fsm.TriggerFootstep}},
		"attack": {Name: "attack", FrameCount: 4, FPS: 8, Tag: "attack", Events: map[int]fsm.Trigger{
			2: fsm.TriggerAttackLanded,
			3: fsm.TriggerAttackFinished,
		}},
	}
}

func TestAnimatorOneShot(t *testing.T) {
	a := NewAnimator(testDefs())
	a.Play("attack")
	assert.Equal(t, "attack", a.CurrentTag())
	assert.Zero(t, a.NormalizedTime())

	a.Update(0.25)
	assert.Equal(t, 2, a.Frame())
	assert.Equal(t, []fsm.Trigger{fsm.TriggerAttackLanded}, a.DrainEvents())
	assert.InDelta(t, 0.5, a.NormalizedTime(), 1e-9)

	a.Update(0.125)
	assert.Equal(t, []fsm.Trigger{fsm.TriggerAttackFinished}, a.DrainEvents())
	assert.True(t, a.Playing())

	a.Update(1)
	assert.False(t, a.Playing())
	assert.Equal(t, 3, a.Frame())
	assert.Equal(t, 1.0, a.NormalizedTime())
	assert.Empty(t, a.DrainEvents())
}

func TestAnimatorLoopingEvents(t *testing.T) {
	a := NewAnimator(testDefs())
	a.Play("walk")

	var got []fsm.Trigger
	for i := 0; i < 8; i++ {
		a.Update(0.25)
		got = append(got, a.DrainEvents()...)
	}
	// frame 0 on start, then frames 2, 0, 2, 0
	assert.Len(t, got, 5)
	assert.True(t, a.Playing())
	assert.Less(t, a.NormalizedTime(), 1.0)
	assert.Less(t, a.Frame(), 4)
}

func TestAnimatorPlayRestarts(t *testing.T) {
	a := NewAnimator(testDefs())
	a.Play("attack")
	a.Update(0.3)
	a.DrainEvents()

	a.Play("attack")
	assert.Zero(t, a.Frame())
	assert.Zero(t, a.NormalizedTime())
}

func TestAnimatorUnknownClip(t *testing.T) {
	a := NewAnimator(testDefs())
	a.Play("howl")
	a.Update(1)
	assert.Equal(t, "howl", a.CurrentTag())
	assert.Equal(t, 1.0, a.NormalizedTime())
	assert.Empty(t, a.DrainEvents())
}

func TestAnimatorParameters(t *testing.T) {
	a := NewAnimator(nil)
	a.SetBool("burrowed", true)
	assert.True(t, a.Bool("burrowed"))

	a.SetTrigger("hit")
	assert.True(t, a.ConsumeTrigger("hit"))
	assert.False(t, a.ConsumeTrigger("hit"))
}

func TestDefsFromSpec(t *testing.T) {
	defs := DefsFromSpec(prefabs.AnimationSpec{Defs: map[string]prefabs.AnimationDefSpec{
		"emerge": {FrameCount: 6, FPS: 10, Tag: "emerge", Events: map[int]string{2: " Attack_Landed ", 5: "emerged", 1: ""}},
	}})
	require.Contains(t, defs, "emerge")
	d := defs["emerge"]
	assert.Equal(t, "emerge", d.Name)
	assert.InDelta(t, 0.6, d.Duration(), 1e-9)
	assert.Equal(t, map[int]fsm.Trigger{2: fsm.TriggerAttackLanded, 5: fsm.TriggerEmerged}, d.Events)
}
