package fsm

// Trigger names an animation event raised by the animation layer.
type Trigger string

const (
	TriggerEnemyDamaged   Trigger = "enemy_damaged"
	TriggerFootstep       Trigger = "footstep"
	TriggerAttackLanded   Trigger = "attack_landed"
	TriggerAttackFinished Trigger = "attack_finished"
	TriggerHowlFinished   Trigger = "howl_finished"
	TriggerEmerged        Trigger = "emerged"
)

// State is one node of a StateMachine. Each method runs synchronously on the
// game loop.
type State interface {
	EnterState()
	ExitState()
	FrameUpdate()
	PhysicsUpdate()
	AnimationTriggerEvent(t Trigger)
}

// StateMachine holds exactly one current state and sequences transitions as
// exit old, swap, enter new.
//
// A transition requested from inside EnterState or ExitState is undefined;
// states must only call ChangeState from FrameUpdate or PhysicsUpdate.
type StateMachine struct {
	// OnTransition, if set, runs after the new state has been entered.
	OnTransition func(from, to State)

	current     State
	initialized bool
	transitions int
}

// NewStateMachine returns an uninitialized machine.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// Initialize sets the starting state and enters it. It panics if the machine
// was already initialized or start is nil.
func (m *StateMachine) Initialize(start State) {
	if m.initialized {
		panic("fsm: state machine already initialized")
	}
	if start == nil {
		panic("fsm: nil start state")
	}
	m.initialized = true
	m.current = start
	m.current.EnterState()
}

// ChangeState exits the current state, swaps in next and enters it.
func (m *StateMachine) ChangeState(next State) {
	if !m.initialized {
		panic("fsm: ChangeState before Initialize")
	}
	if next == nil {
		panic("fsm: nil next state")
	}
	prev := m.current
	prev.ExitState()
	m.current = next
	m.current.EnterState()
	m.transitions++
	if m.OnTransition != nil {
		m.OnTransition(prev, next)
	}
}

// Current returns the active state, or nil before Initialize.
func (m *StateMachine) Current() State {
	return m.current
}

// Initialized reports whether Initialize has run.
func (m *StateMachine) Initialized() bool {
	return m.initialized
}

// Transitions returns how many ChangeState calls have completed.
func (m *StateMachine) Transitions() int {
	return m.transitions
}
