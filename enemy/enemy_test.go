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

const frame = 1.0 / 60

func TestNewValidatesConfig(t *testing.T) {
	h := newHarness("e1", prefabs.SpeciesGeneric, 3)

	cfg := h.cfg
	cfg.Body = nil
	_, err := New(cfg, GenericLoadout(genericSpec()))
	assert.ErrorIs(t, err, ErrNoBody)

	l := GenericLoadout(genericSpec())
	delete(l.Strategies, behavior.StateDead)
	_, err = New(h.cfg, l)
	assert.ErrorIs(t, err, ErrInvalidLoadout)

	_, err = New(h.cfg, Loadout{Initial: behavior.StateHowl, Strategies: GenericLoadout(genericSpec()).Strategies})
	assert.ErrorIs(t, err, ErrInvalidLoadout)
}

func TestNewEntersInitialState(t *testing.T) {
	h := newHarness("e1", prefabs.SpeciesGeneric, 0)
	h.body.pos = cp.Vector{X: 3, Y: 4}

	e, err := New(h.cfg, GenericLoadout(genericSpec()))
	require.NoError(t, err)
	assert.Equal(t, behavior.StateIdle, e.CurrentState())
	assert.Equal(t, cp.Vector{X: 3, Y: 4}, e.SpawnPosition())
	assert.Equal(t, 1, e.MaxHealth(), "non-positive health is clamped")
	assert.True(t, e.Alive())
	assert.Zero(t, e.Transitions())
	assert.Nil(t, e.Badger())
	assert.IsType(t, &behavior.Wander{}, e.Strategy(behavior.StateIdle))
	assert.Nil(t, e.Strategy(behavior.StateHowl))
}

func TestGenericCycle(t *testing.T) {
	h := newHarness("skel", prefabs.SpeciesGeneric, 3)
	h.target, h.hasTgt = cp.Vector{X: 100}, true

	var seen [][2]behavior.StateID
	h.cfg.OnTransition = func(_ *Enemy, from, to behavior.StateID) {
		seen = append(seen, [2]behavior.StateID{from, to})
	}
	e, err := New(h.cfg, GenericLoadout(genericSpec()))
	require.NoError(t, err)

	e.Tick(frame)
	assert.Equal(t, behavior.StateIdle, e.CurrentState(), "no aggro, keep wandering")

	e.SetAggroStatus(true)
	e.Tick(frame)
	require.Equal(t, behavior.StateChase, e.CurrentState())
	assert.Equal(t, behavior.ChasePath, e.Strategy(behavior.StateChase).(*behavior.Chase).Mode())

	e.SetStrikingDistance(true)
	e.Tick(frame)
	require.Equal(t, behavior.StateAttack, e.CurrentState())

	e.Tick(0.6)
	assert.Len(t, h.spawner.shots, 2, "one volley is two projectiles")

	e.SetStrikingDistance(false)
	e.Tick(0.6)
	assert.Equal(t, behavior.StateChase, e.CurrentState())
	assert.Len(t, h.spawner.shots, 4)

	e.SetAggroStatus(false)
	e.Tick(frame)
	assert.Equal(t, behavior.StateIdle, e.CurrentState())

	assert.Equal(t, [][2]behavior.StateID{
		{behavior.StateIdle, behavior.StateChase},
		{behavior.StateChase, behavior.StateAttack},
		{behavior.StateAttack, behavior.StateChase},
		{behavior.StateChase, behavior.StateIdle},
	}, seen)
	assert.Equal(t, 4, e.Transitions())
}

func TestDeathAppliedOnNextTick(t *testing.T) {
	h := newHarness("skel", prefabs.SpeciesGeneric, 3)
	e, err := New(h.cfg, GenericLoadout(genericSpec()))
	require.NoError(t, err)

	assert.False(t, e.Damage(0))
	assert.True(t, e.Damage(1))
	assert.Equal(t, 2, e.Health())

	assert.True(t, e.Damage(5))
	assert.Zero(t, e.Health())
	assert.False(t, e.Alive())
	assert.Equal(t, behavior.StateIdle, e.CurrentState(), "death waits for the frame channel")

	e.Tick(frame)
	assert.Equal(t, behavior.StateDead, e.CurrentState())
	assert.Equal(t, cp.Vector{}, h.body.vel)

	assert.False(t, e.Damage(1), "dead enemies take no damage")
	e.ChangeState(behavior.StateIdle)
	e.SetAggroStatus(true)
	e.Tick(frame)
	e.FixedTick(frame)
	assert.Equal(t, behavior.StateDead, e.CurrentState(), "dead is terminal")
	assert.Equal(t, 1, e.Transitions())
}

func TestUnknownStateWarnsOnce(t *testing.T) {
	h := newHarness("skel", prefabs.SpeciesGeneric, 3)
	e, err := New(h.cfg, GenericLoadout(genericSpec()))
	require.NoError(t, err)

	e.ChangeState(behavior.StateHowl)
	e.ChangeState(behavior.StateHowl)
	e.ChangeState(behavior.StateBurrow)

	assert.Equal(t, behavior.StateIdle, e.CurrentState())
	assert.Equal(t, 2, h.warnings("no strategy for requested state"))
	assert.Zero(t, e.Transitions())
}

func TestFacingFollowsHorizontalVelocity(t *testing.T) {
	h := newHarness("skel", prefabs.SpeciesGeneric, 3)
	var flips []bool
	h.cfg.OnFacing = func(right bool) { flips = append(flips, right) }
	e, err := New(h.cfg, GenericLoadout(genericSpec()))
	require.NoError(t, err)
	flips = nil

	cases := []struct {
		name  string
		v     cp.Vector
		right bool
	}{
		{"left", cp.Vector{X: -5}, false},
		{"vertical keeps facing", cp.Vector{Y: 5}, false},
		{"tiny drift keeps facing", cp.Vector{X: 1e-6}, false},
		{"right", cp.Vector{X: 2, Y: -1}, true},
	}
	for _, tc := range cases {
		e.MoveEnemy(tc.v)
		assert.Equal(t, tc.right, e.FacingRight(), tc.name)
		assert.Equal(t, tc.v, h.body.vel, tc.name)
	}
	assert.Equal(t, []bool{false, true}, flips)
}

func TestAlertCountsAsAggroUntilIdle(t *testing.T) {
	h := newHarness("skel", prefabs.SpeciesGeneric, 3)
	e, err := New(h.cfg, GenericLoadout(genericSpec()))
	require.NoError(t, err)

	e.Alert()
	assert.True(t, e.IsAggroed())
	e.Tick(frame)
	require.Equal(t, behavior.StateChase, e.CurrentState())
	assert.True(t, e.Alerted())

	e.ChangeState(behavior.StateIdle)
	assert.False(t, e.Alerted())
	assert.False(t, e.IsAggroed())

	e.Alert()
	e.SetAggroStatus(true)
	e.SetAggroStatus(false)
	assert.False(t, e.IsAggroed(), "a tripped sensor replaces the alert")
}

func TestDamageRaisesTrigger(t *testing.T) {
	h := newHarness("bot", prefabs.SpeciesScripted, 3)
	src := []byte(`
on_trigger := func(e, s) {
	s.last = e.trigger()
}
handlers := {trigger: on_trigger}
`)
	l := Loadout{
		Strategies: map[behavior.StateID]behavior.Strategy{
			behavior.StateIdle: behavior.NewScript(behavior.ScriptConfig{Name: "t", Source: src, State: behavior.StateIdle}),
			behavior.StateDead: behavior.NewDeath(),
		},
	}
	e, err := New(h.cfg, l)
	require.NoError(t, err)

	e.Damage(1)
	script := e.Strategy(behavior.StateIdle).(*behavior.Script)
	assert.Equal(t, string(fsm.TriggerEnemyDamaged), script.Data()["last"])
}
