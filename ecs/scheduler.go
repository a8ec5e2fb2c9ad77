package ecs

// System updates a world once per phase. Systems read the phase step from
// World.Delta.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

const defaultMaxSteps = 5

// Scheduler runs fixed systems zero or more times per update on an
// accumulated fixed step, then frame systems once with the frame delta.
type Scheduler struct {
	Step     float64
	MaxSteps int

	fixed []System
	frame []System
	acc   float64
}

func NewScheduler(step float64) *Scheduler {
	return &Scheduler{Step: step, MaxSteps: defaultMaxSteps}
}

// AddFixed appends systems to the fixed-step phase.
func (s *Scheduler) AddFixed(systems ...System) {
	for _, sys := range systems {
		if sys != nil {
			s.fixed = append(s.fixed, sys)
		}
	}
}

// Add appends systems to the frame phase.
func (s *Scheduler) Add(systems ...System) {
	for _, sys := range systems {
		if sys != nil {
			s.frame = append(s.frame, sys)
		}
	}
}

// Update advances the world by dt and returns how many fixed steps ran. A
// backlog beyond MaxSteps is dropped. Undrained events are discarded at the
// end of the update.
func (s *Scheduler) Update(w *World, dt float64) int {
	steps := 0
	if s.Step > 0 {
		maxSteps := s.MaxSteps
		if maxSteps <= 0 {
			maxSteps = defaultMaxSteps
		}
		s.acc += dt
		for s.acc >= s.Step && steps < maxSteps {
			w.delta = s.Step
			for _, sys := range s.fixed {
				sys.Update(w)
			}
			s.acc -= s.Step
			steps++
		}
		if steps == maxSteps && s.acc >= s.Step {
			s.acc = 0
		}
	}

	w.delta = dt
	for _, sys := range s.frame {
		sys.Update(w)
	}
	w.frame++
	w.events.flush()
	return steps
}

// Systems returns the fixed and frame systems in run order.
func (s *Scheduler) Systems() (fixed, frame []System) {
	return append([]System(nil), s.fixed...), append([]System(nil), s.frame...)
}
