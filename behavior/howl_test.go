package behavior

import (
	"testing"

	"github.com/milk9111/bestiary/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHowlLeaderHowlsThenChases(t *testing.T) {
	ctx := newFakeContext()
	ctx.frameDt = 0.25
	anim := &fakeAnimator{}
	ctx.animator = anim
	pack := &fakePack{canHowl: true}
	ctx.pack = pack

	h := NewHowler(HowlConfig{Duration: 1})
	h.Initialize(ctx)
	h.EnterLogic()
	require.True(t, h.Howling())
	assert.Equal(t, []string{"howl"}, anim.played)

	for i := 0; i < 3; i++ {
		h.FrameUpdateLogic()
	}
	assert.Empty(t, ctx.changes)
	h.FrameUpdateLogic()
	assert.Equal(t, []StateID{StateChase}, ctx.changes)
	assert.Equal(t, []string{"e1"}, pack.howledBy)
	assert.Equal(t, 1, h.Howls())
}

func TestHowlGating(t *testing.T) {
	cases := []struct {
		name    string
		leader  string
		canHowl bool
	}{
		{"non leader", "e0", true},
		{"leader on cooldown", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := newFakeContext()
			anim := &fakeAnimator{}
			ctx.animator = anim
			pack := &fakePack{leader: tc.leader, canHowl: tc.canHowl}
			ctx.pack = pack

			h := NewHowler(HowlConfig{Duration: 1})
			h.Initialize(ctx)
			h.EnterLogic()

			assert.False(t, h.Howling())
			assert.Empty(t, anim.played)
			assert.Equal(t, 1, pack.ensured)

			h.FrameUpdateLogic()
			assert.Equal(t, []StateID{StateChase}, ctx.changes)
			assert.Zero(t, h.Timer())
			assert.Empty(t, pack.howledBy)
		})
	}
}

func TestHowlFinishedTriggerCompletesNextFrame(t *testing.T) {
	ctx := newFakeContext()
	ctx.pack = &fakePack{canHowl: true}
	h := NewHowler(HowlConfig{Duration: 10})
	h.Initialize(ctx)
	h.EnterLogic()

	h.AnimationTriggerEventLogic(fsm.TriggerHowlFinished)
	assert.Empty(t, ctx.changes)
	h.FrameUpdateLogic()
	assert.Equal(t, []StateID{StateChase}, ctx.changes)
}

func TestHowlWithoutPack(t *testing.T) {
	ctx := newFakeContext()
	h := NewHowler(HowlConfig{Duration: 1})
	h.Initialize(ctx)
	h.EnterLogic()
	h.FrameUpdateLogic()

	assert.Equal(t, []StateID{StateChase}, ctx.changes)
	assert.Equal(t, 1, ctx.warnings())
}
