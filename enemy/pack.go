package enemy

// PackCoordinator groups enemies that rally together. One living member is
// the leader; only the leader howls, and the pack shares one howl cooldown.
type PackCoordinator struct {
	Name     string
	Cooldown float64

	members      []*Enemy
	leader       string
	cooldownLeft float64
	howls        int
}

func NewPackCoordinator(name string, cooldown float64) *PackCoordinator {
	return &PackCoordinator{Name: name, Cooldown: cooldown}
}

// Join adds e to the pack. Joining twice is a no-op.
func (p *PackCoordinator) Join(e *Enemy) {
	if p.member(e.ID()) != nil {
		return
	}
	p.members = append(p.members, e)
}

// Leave removes the member with id and drops its leadership.
func (p *PackCoordinator) Leave(id string) {
	for i, m := range p.members {
		if m.ID() == id {
			p.members = append(p.members[:i], p.members[i+1:]...)
			break
		}
	}
	if p.leader == id {
		p.leader = ""
	}
}

// EnsureLeader keeps the current leader while it lives, otherwise promotes
// the first living member. member is the caller and is preferred only when no
// earlier member qualifies.
func (p *PackCoordinator) EnsureLeader(member string) {
	if l := p.member(p.leader); l != nil && l.Alive() {
		return
	}
	p.leader = ""
	for _, m := range p.members {
		if m.Alive() {
			p.leader = m.ID()
			return
		}
	}
	if m := p.member(member); m != nil && m.Alive() {
		p.leader = member
	}
}

func (p *PackCoordinator) IsLeader(member string) bool {
	return p.leader != "" && p.leader == member
}

// CanLeaderHowl reports whether the pack's howl cooldown has run out.
func (p *PackCoordinator) CanLeaderHowl() bool {
	return p.cooldownLeft <= 0
}

// HandleLeaderHowl starts the cooldown and alerts every other living member.
// Calls from non-leaders are ignored.
func (p *PackCoordinator) HandleLeaderHowl(member string) {
	if !p.IsLeader(member) {
		return
	}
	p.howls++
	p.cooldownLeft = p.Cooldown
	for _, m := range p.members {
		if m.ID() != member && m.Alive() {
			m.Alert()
		}
	}
}

// Advance runs the howl cooldown down by dt.
func (p *PackCoordinator) Advance(dt float64) {
	if p.cooldownLeft > 0 {
		p.cooldownLeft -= dt
	}
}

func (p *PackCoordinator) Leader() string          { return p.leader }
func (p *PackCoordinator) Howls() int              { return p.howls }
func (p *PackCoordinator) CooldownLeft() float64   { return max(p.cooldownLeft, 0) }
func (p *PackCoordinator) Members() []*Enemy       { return p.members }
func (p *PackCoordinator) IsMember(id string) bool { return p.member(id) != nil }

func (p *PackCoordinator) member(id string) *Enemy {
	if id == "" {
		return nil
	}
	for _, m := range p.members {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// Packs indexes pack coordinators by name.
type Packs map[string]*PackCoordinator

// Get returns the named pack, creating it with cooldown on first use. An
// empty name means no pack.
func (ps Packs) Get(name string, cooldown float64) *PackCoordinator {
	if name == "" {
		return nil
	}
	if p, ok := ps[name]; ok {
		return p
	}
	p := NewPackCoordinator(name, cooldown)
	ps[name] = p
	return p
}

// Advance runs every pack's cooldown down by dt.
func (ps Packs) Advance(dt float64) {
	for _, p := range ps {
		p.Advance(dt)
	}
}
