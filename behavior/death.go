package behavior

import "github.com/jakecoffman/cp"

// Death is terminal: the enemy stops and plays its death clip.
type Death struct {
	Base
}

func NewDeath() *Death {
	return &Death{}
}

func (d *Death) EnterLogic() {
	d.ctx.MoveEnemy(cp.Vector{})
	play(d.ctx, "death")
}

func (d *Death) ExitLogic() {
	d.ResetValues()
}

func (d *Death) PhysicsUpdateLogic() {
	d.ctx.MoveEnemy(cp.Vector{})
}
