package behavior

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChaseFixture(dist float64) (*fakeContext, *Chase) {
	ctx := newFakeContext()
	ctx.aggro = true
	ctx.setTarget(cp.Vector{X: dist})
	c := NewChase(ChaseConfig{Speed: 4, PathThreshold: 10, PathMargin: 2})
	c.Initialize(ctx)
	return ctx, c
}

func TestChaseInitialMode(t *testing.T) {
	cases := []struct {
		dist float64
		want ChaseMode
	}{
		{5, ChaseDirect},
		{10, ChaseDirect},
		{10.5, ChasePath},
		{30, ChasePath},
	}
	for _, tc := range cases {
		_, c := newChaseFixture(tc.dist)
		c.EnterLogic()
		assert.Equal(t, tc.want, c.Mode(), "dist %v", tc.dist)
	}
}

func TestChaseHysteresis(t *testing.T) {
	ctx, c := newChaseFixture(5)
	ctx.path = &fakePathfinder{dir: cp.Vector{Y: 1}}
	c.EnterLogic()
	require.Equal(t, ChaseDirect, c.Mode())

	steps := []struct {
		dist float64
		want ChaseMode
	}{
		{11, ChaseDirect},
		{12, ChaseDirect},
		{12.1, ChasePath},
		{9, ChasePath},
		{8, ChasePath},
		{7.9, ChaseDirect},
	}
	for _, s := range steps {
		ctx.target = cp.Vector{X: s.dist}
		c.FrameUpdateLogic()
		assert.Equal(t, s.want, c.Mode(), "dist %v", s.dist)
	}
}

func TestChaseSteering(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		ctx, c := newChaseFixture(5)
		c.EnterLogic()
		c.FrameUpdateLogic()
		assert.Equal(t, cp.Vector{X: 4}, ctx.lastMove())
	})
	t.Run("path", func(t *testing.T) {
		ctx, c := newChaseFixture(40)
		pf := &fakePathfinder{dir: cp.Vector{Y: 2}}
		ctx.path = pf
		c.EnterLogic()
		c.FrameUpdateLogic()
		assert.Equal(t, 1, pf.calls)
		assert.InDelta(t, 4, ctx.lastMove().Y, 1e-9)
	})
	t.Run("no path falls back to direct", func(t *testing.T) {
		ctx, c := newChaseFixture(40)
		ctx.path = &fakePathfinder{}
		c.EnterLogic()
		c.FrameUpdateLogic()
		assert.Equal(t, cp.Vector{X: 4}, ctx.lastMove())
		assert.Equal(t, ChasePath, c.Mode())
	})
	t.Run("nil pathfinder warns once", func(t *testing.T) {
		ctx, c := newChaseFixture(40)
		c.EnterLogic()
		for i := 0; i < 5; i++ {
			c.FrameUpdateLogic()
		}
		assert.Equal(t, cp.Vector{X: 4}, ctx.lastMove())
		assert.Equal(t, 1, ctx.warnings())
	})
}

func TestChaseTransitions(t *testing.T) {
	cases := []struct {
		name   string
		aggro  bool
		strike bool
		want   []StateID
	}{
		{"lost aggro", false, false, []StateID{StateIdle}},
		{"in range", true, true, []StateID{StateAttack}},
		{"pursuing", true, false, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, c := newChaseFixture(5)
			c.EnterLogic()
			ctx.aggro = tc.aggro
			ctx.strike = tc.strike
			c.FrameUpdateLogic()
			assert.Equal(t, tc.want, ctx.changes)
		})
	}
}

func TestChaseExitResets(t *testing.T) {
	_, c := newChaseFixture(40)
	c.EnterLogic()
	require.Equal(t, ChasePath, c.Mode())
	c.ExitLogic()
	assert.Equal(t, ChaseDirect, c.Mode())
	c.ResetValues()
	assert.Equal(t, ChaseDirect, c.Mode())
}
