package enemy

import (
	"github.com/milk9111/bestiary/behavior"
	"github.com/milk9111/bestiary/fsm"
)

// State binds one FSM state to the strategy that implements it for this
// enemy's species. It adds no behavior of its own.
type State struct {
	id       behavior.StateID
	strategy behavior.Strategy
}

func NewState(id behavior.StateID, strategy behavior.Strategy) *State {
	return &State{id: id, strategy: strategy}
}

func (s *State) ID() behavior.StateID { return s.id }

func (s *State) Strategy() behavior.Strategy { return s.strategy }

func (s *State) EnterState()    { s.strategy.EnterLogic() }
func (s *State) ExitState()     { s.strategy.ExitLogic() }
func (s *State) FrameUpdate()   { s.strategy.FrameUpdateLogic() }
func (s *State) PhysicsUpdate() { s.strategy.PhysicsUpdateLogic() }

func (s *State) AnimationTriggerEvent(t fsm.Trigger) {
	s.strategy.AnimationTriggerEventLogic(t)
}
