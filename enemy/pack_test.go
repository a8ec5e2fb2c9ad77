package enemy

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/behavior"
	"github.com/milk9111/bestiary/fsm"
	"github.com/milk9111/bestiary/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWolf(t *testing.T, id string, pack *PackCoordinator) (*Enemy, *harness) {
	t.Helper()
	h := newHarness(id, prefabs.SpeciesWolf, 8)
	h.target, h.hasTgt = cp.Vector{X: 300}, true
	h.cfg.Pack = pack
	e, err := New(h.cfg, WolfLoadout(wolfSpec()))
	require.NoError(t, err)
	pack.Join(e)
	return e, h
}

func TestPackHowlRalliesMembers(t *testing.T) {
	pack := NewPackCoordinator("grey", 8)
	leader, _ := newWolf(t, "w1", pack)
	follower, _ := newWolf(t, "w2", pack)
	pack.Join(leader)
	assert.Len(t, pack.Members(), 2, "joining twice is a no-op")

	leader.SetAggroStatus(true)
	leader.Tick(frame)
	require.Equal(t, behavior.StateHowl, leader.CurrentState())
	assert.Equal(t, "w1", pack.Leader())
	howler := leader.Strategy(behavior.StateHowl).(*behavior.Howler)
	assert.True(t, howler.Howling())

	leader.AnimationTriggerEvent(fsm.TriggerHowlFinished)
	assert.Equal(t, behavior.StateHowl, leader.CurrentState(), "the howl completes on the update path")
	leader.Tick(frame)
	require.Equal(t, behavior.StateChase, leader.CurrentState())
	assert.Equal(t, 1, pack.Howls())
	assert.False(t, pack.CanLeaderHowl())
	assert.True(t, follower.Alerted())

	follower.Tick(frame)
	require.Equal(t, behavior.StateHowl, follower.CurrentState(), "the alert trips the follower's idle")
	assert.False(t, follower.Strategy(behavior.StateHowl).(*behavior.Howler).Howling())
	follower.Tick(frame)
	assert.Equal(t, behavior.StateChase, follower.CurrentState())
	assert.Equal(t, 1, pack.Howls())

	pack.Advance(5)
	assert.InDelta(t, 3, pack.CooldownLeft(), 1e-9)
	pack.Advance(5)
	assert.True(t, pack.CanLeaderHowl())
	assert.Zero(t, pack.CooldownLeft())
}

func TestPackLeaderSuccession(t *testing.T) {
	pack := NewPackCoordinator("grey", 8)
	w1, _ := newWolf(t, "w1", pack)
	newWolf(t, "w2", pack)
	newWolf(t, "w3", pack)

	pack.EnsureLeader("w3")
	assert.True(t, pack.IsLeader("w1"), "the first living member leads")
	assert.False(t, pack.IsLeader("w3"))

	w1.Damage(8)
	pack.EnsureLeader("w3")
	assert.True(t, pack.IsLeader("w2"))

	pack.Leave("w2")
	assert.Empty(t, pack.Leader())
	pack.EnsureLeader("w3")
	assert.True(t, pack.IsLeader("w3"))
}

func TestPackIgnoresHowlFromNonLeader(t *testing.T) {
	pack := NewPackCoordinator("grey", 8)
	newWolf(t, "w1", pack)
	w2, _ := newWolf(t, "w2", pack)
	pack.EnsureLeader("w2")

	pack.HandleLeaderHowl("w2")
	assert.Zero(t, pack.Howls())
	assert.True(t, pack.CanLeaderHowl())
	assert.False(t, w2.Alerted())
}
