package behavior

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeContext struct {
	id       string
	pos      cp.Vector
	spawn    cp.Vector
	target   cp.Vector
	hasTgt   bool
	aggro    bool
	strike   bool
	frameDt  float64
	physDt   float64
	rng      *rand.Rand
	log      *logrus.Logger
	hook     *test.Hook
	moves    []cp.Vector
	changes  []StateID
	animator Animator
	path     Pathfinder
	shots    ProjectileSpawner
	pack     Pack
	damager  Damager
}

func newFakeContext() *fakeContext {
	log, hook := test.NewNullLogger()
	return &fakeContext{
		id:      "e1",
		frameDt: 1.0 / 60,
		physDt:  1.0 / 60,
		rng:     rand.New(rand.NewSource(7)),
		log:     log,
		hook:    hook,
	}
}

func (f *fakeContext) ID() string                        { return f.id }
func (f *fakeContext) Position() cp.Vector               { return f.pos }
func (f *fakeContext) SpawnPosition() cp.Vector          { return f.spawn }
func (f *fakeContext) TargetPosition() (cp.Vector, bool) { return f.target, f.hasTgt }
func (f *fakeContext) IsAggroed() bool                   { return f.aggro }
func (f *fakeContext) IsWithinStrikingDistance() bool    { return f.strike }
func (f *fakeContext) MoveEnemy(v cp.Vector)             { f.moves = append(f.moves, v) }
func (f *fakeContext) ChangeState(id StateID)            { f.changes = append(f.changes, id) }
func (f *fakeContext) FrameDelta() float64               { return f.frameDt }
func (f *fakeContext) PhysicsDelta() float64             { return f.physDt }
func (f *fakeContext) Rand() *rand.Rand                  { return f.rng }
func (f *fakeContext) Logger() logrus.FieldLogger        { return f.log }
func (f *fakeContext) Animator() Animator                { return f.animator }
func (f *fakeContext) Pathfinder() Pathfinder            { return f.path }
func (f *fakeContext) Projectiles() ProjectileSpawner    { return f.shots }
func (f *fakeContext) Pack() Pack                        { return f.pack }
func (f *fakeContext) Damager() Damager                  { return f.damager }

func (f *fakeContext) setTarget(p cp.Vector) {
	f.target = p
	f.hasTgt = true
}

func (f *fakeContext) lastMove() cp.Vector {
	if len(f.moves) == 0 {
		return cp.Vector{}
	}
	return f.moves[len(f.moves)-1]
}

func (f *fakeContext) warnings() int {
	n := 0
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}

type fakeAnimator struct {
	played []string
	bools  map[string]bool
	tag    string
	norm   float64
}

func (a *fakeAnimator) Play(clip string) {
	a.played = append(a.played, clip)
	a.tag = clip
	a.norm = 0
}
func (a *fakeAnimator) SetTrigger(string) {}
func (a *fakeAnimator) SetBool(name string, v bool) {
	if a.bools == nil {
		a.bools = map[string]bool{}
	}
	a.bools[name] = v
}
func (a *fakeAnimator) CurrentTag() string      { return a.tag }
func (a *fakeAnimator) NormalizedTime() float64 { return a.norm }

type shot struct {
	origin, velocity cp.Vector
	lifetime         float64
}

type fakeSpawner struct {
	shots []shot
}

func (s *fakeSpawner) Spawn(origin, velocity cp.Vector, lifetime float64) {
	s.shots = append(s.shots, shot{origin, velocity, lifetime})
}

type fakePathfinder struct {
	dir   cp.Vector
	calls int
}

func (p *fakePathfinder) GetMoveDirection(cp.Vector) cp.Vector {
	p.calls++
	return p.dir
}

type fakePack struct {
	leader   string
	canHowl  bool
	ensured  int
	howledBy []string
}

func (p *fakePack) EnsureLeader(member string) {
	p.ensured++
	if p.leader == "" {
		p.leader = member
	}
}
func (p *fakePack) IsLeader(member string) bool    { return p.leader == member }
func (p *fakePack) CanLeaderHowl() bool            { return p.canHowl }
func (p *fakePack) HandleLeaderHowl(member string) { p.howledBy = append(p.howledBy, member) }

type fakeDamager struct {
	hits []int
}

func (d *fakeDamager) DamageTarget(n int) { d.hits = append(d.hits, n) }
