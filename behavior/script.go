package behavior

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/fsm"
)

// Script phases. Each strategy callback runs the matching handler, if any.
const (
	PhaseEnter   = "enter"
	PhaseExit    = "exit"
	PhaseFrame   = "frame"
	PhasePhysics = "physics"
	PhaseTrigger = "trigger"
	PhaseReset   = "reset"
)

// scriptDispatch is appended to every script. A script declares a
// `handlers` map keyed by phase; each handler is called as h(engine, state).
const scriptDispatch = `
__h := handlers[__phase]
if __h != undefined {
	__h(__engine, __state)
}
`

// ScriptConfig names a Tengo source and the state it runs as.
type ScriptConfig struct {
	Name   string
	Source []byte
	State  StateID
}

// Script is a strategy whose callbacks are written in Tengo. State changes
// requested by the script are applied after the frame or physics phase that
// requested them, so enter, exit and trigger handlers never transition.
type Script struct {
	Base
	cfg ScriptConfig

	compiled *tengo.Compiled
	engine   *tengo.ImmutableMap
	data     *tengo.Map
	loadErr  error

	phase   string
	trigger fsm.Trigger
	pending StateID
	runs    int
	warned  bool
}

func NewScript(cfg ScriptConfig) *Script {
	return &Script{cfg: cfg}
}

// CompileScript checks that a source compiles with the dispatch footer.
func CompileScript(src []byte) error {
	_, err := compileScript(src)
	return err
}

func compileScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	err := declare(script, map[string]any{
		"__phase":  "",
		"__engine": map[string]any{},
		"__state":  map[string]any{},
	})
	if err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// declare adds the dispatch globals to script.
func declare(script *tengo.Script, vars map[string]any) error {
	for name, v := range vars {
		if err := script.Add(name, v); err != nil {
			return fmt.Errorf("declare %s: %w", name, err)
		}
	}
	return nil
}

func (s *Script) Initialize(ctx Context) {
	s.Base.Initialize(ctx)
	s.data = &tengo.Map{Value: map[string]tengo.Object{}}
	s.engine = s.buildEngine()
	compiled, err := compileScript(s.cfg.Source)
	if err != nil {
		s.loadErr = fmt.Errorf("compile %s: %w", s.cfg.Name, err)
		ctx.Logger().WithError(s.loadErr).Error("script strategy disabled")
		return
	}
	s.compiled = compiled
}

func (s *Script) EnterLogic() {
	s.run(PhaseEnter)
}

func (s *Script) ExitLogic() {
	s.run(PhaseExit)
	s.ResetValues()
}

func (s *Script) FrameUpdateLogic() {
	s.run(PhaseFrame)
	s.flush()
}

func (s *Script) PhysicsUpdateLogic() {
	s.run(PhasePhysics)
	s.flush()
}

func (s *Script) AnimationTriggerEventLogic(t fsm.Trigger) {
	s.trigger = t
	s.run(PhaseTrigger)
	s.trigger = ""
}

func (s *Script) ResetValues() {
	s.pending = ""
	s.warned = false
	if s.compiled != nil && s.data != nil {
		s.run(PhaseReset)
		s.data.Value = map[string]tengo.Object{}
	}
}

// Err returns the compile error, if the script failed to load.
func (s *Script) Err() error { return s.loadErr }

// Runs counts successful phase executions.
func (s *Script) Runs() int { return s.runs }

// Data exposes the script's persistent state map.
func (s *Script) Data() map[string]any {
	out := map[string]any{}
	if s.data == nil {
		return out
	}
	for k, v := range s.data.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

func (s *Script) flush() {
	if s.pending == "" {
		return
	}
	next := s.pending
	s.pending = ""
	s.ctx.ChangeState(next)
}

func (s *Script) run(phase string) {
	if s.compiled == nil {
		return
	}
	s.phase = phase
	defer func() { s.phase = "" }()

	err := s.compiled.Set("__phase", phase)
	if err == nil {
		err = s.compiled.Set("__engine", s.engine)
	}
	if err == nil {
		err = s.compiled.Set("__state", s.data)
	}
	if err == nil {
		err = s.compiled.Run()
	}
	if err != nil {
		if !s.warned {
			s.warned = true
			s.ctx.Logger().WithError(err).WithField("phase", phase).Warn("script phase failed")
		}
		return
	}
	s.runs++
}

func (s *Script) buildEngine() *tengo.ImmutableMap {
	vec := func(v cp.Vector) tengo.Object {
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
	}
	boolean := func(b bool) tengo.Object {
		if b {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	}
	fn := func(name string, f tengo.CallableFunc) tengo.Object {
		return &tengo.UserFunction{Name: name, Value: f}
	}

	values := map[string]tengo.Object{
		"state_id": fn("state_id", func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.String{Value: string(s.cfg.State)}, nil
		}),
		"position": fn("position", func(args ...tengo.Object) (tengo.Object, error) {
			return vec(s.ctx.Position()), nil
		}),
		"spawn": fn("spawn", func(args ...tengo.Object) (tengo.Object, error) {
			return vec(s.ctx.SpawnPosition()), nil
		}),
		"target": fn("target", func(args ...tengo.Object) (tengo.Object, error) {
			p, ok := s.ctx.TargetPosition()
			if !ok {
				return tengo.UndefinedValue, nil
			}
			return vec(p), nil
		}),
		"aggroed": fn("aggroed", func(args ...tengo.Object) (tengo.Object, error) {
			return boolean(s.ctx.IsAggroed()), nil
		}),
		"in_range": fn("in_range", func(args ...tengo.Object) (tengo.Object, error) {
			return boolean(s.ctx.IsWithinStrikingDistance()), nil
		}),
		"delta": fn("delta", func(args ...tengo.Object) (tengo.Object, error) {
			if s.phase == PhasePhysics {
				return &tengo.Float{Value: s.ctx.PhysicsDelta()}, nil
			}
			return &tengo.Float{Value: s.ctx.FrameDelta()}, nil
		}),
		"rand": fn("rand", func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: s.ctx.Rand().Float64()}, nil
		}),
		"trigger": fn("trigger", func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.String{Value: string(s.trigger)}, nil
		}),
		"move": fn("move", func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			x, okx := tengo.ToFloat64(args[0])
			y, oky := tengo.ToFloat64(args[1])
			if !okx || !oky {
				return nil, tengo.ErrInvalidArgumentType{Name: "velocity", Expected: "float", Found: args[0].TypeName()}
			}
			s.ctx.MoveEnemy(cp.Vector{X: x, Y: y})
			return tengo.TrueValue, nil
		}),
		"play": fn("play", func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			clip, _ := tengo.ToString(args[0])
			play(s.ctx, strings.TrimSpace(clip))
			return tengo.TrueValue, nil
		}),
		"change_state": fn("change_state", func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			name, _ := tengo.ToString(args[0])
			name = strings.TrimSpace(name)
			if name == "" {
				return tengo.FalseValue, nil
			}
			s.pending = StateID(name)
			return tengo.TrueValue, nil
		}),
	}
	return &tengo.ImmutableMap{Value: values}
}
