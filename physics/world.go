// Package physics wraps a chipmunk space for a top-down arena. Enemies hand
// their desired velocity to a Body; the space resolves walls and crowding.
//
// Chipmunk integrates positions before it solves contacts, so a velocity that
// is re-set every step would keep driving bodies into walls. Step strips the
// wall-ward part of each desired velocity against the contacts of the last
// substep before advancing.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/component"
)

// Kind is the collision role of a body.
type Kind int

const (
	KindEnemy Kind = iota + 1
	KindPlayer
)

// Substeps is how many chipmunk steps one Step is split into.
const Substeps = 2

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeEnemy
	collisionTypePlayer
)

// World owns the chipmunk space and the static arena geometry.
type World struct {
	space  *cp.Space
	bodies map[*cp.Body]*Body
}

func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	w := &World{space: space, bodies: map[*cp.Body]*Body{}}
	w.setupHandlers()
	return w
}

// Space returns the underlying chipmunk space.
func (w *World) Space() *cp.Space { return w.space }

// Bodies returns the number of dynamic bodies in the space.
func (w *World) Bodies() int { return len(w.bodies) }

// AddWallsFromGrid adds a static box for every blocked cell and a boundary
// around the grid.
func (w *World) AddWallsFromGrid(g *component.Grid) {
	if g == nil {
		return
	}
	for _, n := range g.BlockedCells() {
		x0 := float64(n.X) * g.CellSize
		y0 := float64(n.Y) * g.CellSize
		bb := cp.BB{L: x0, B: y0, R: x0 + g.CellSize, T: y0 + g.CellSize}
		w.addStatic(cp.NewBox2(w.space.StaticBody, bb, 0))
	}

	width := float64(g.Width) * g.CellSize
	height := float64(g.Height) * g.CellSize
	t := g.CellSize
	bounds := []cp.BB{
		{L: -t, B: -t, R: width + t, T: 0},
		{L: -t, B: height, R: width + t, T: height + t},
		{L: -t, B: 0, R: 0, T: height},
		{L: width, B: 0, R: width + t, T: height},
	}
	for _, bb := range bounds {
		w.addStatic(cp.NewBox2(w.space.StaticBody, bb, 0))
	}
}

func (w *World) addStatic(shape *cp.Shape) {
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeWall)
	w.space.AddShape(shape)
}

// AddBody creates a round, non-rotating body.
func (w *World) AddBody(pos cp.Vector, radius float64, kind Kind) *Body {
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(pos)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	if kind == KindPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	} else {
		shape.SetCollisionType(collisionTypeEnemy)
	}

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{world: w, body: body, shape: shape, kind: kind, radius: radius}
	w.bodies[body] = b
	return b
}

// Remove takes a body out of the space. Removing twice is a no-op.
func (w *World) Remove(b *Body) {
	if b == nil || b.world != w {
		return
	}
	if _, ok := w.bodies[b.body]; !ok {
		return
	}
	delete(w.bodies, b.body)
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
}

// Step advances the simulation by dt in Substeps equal parts.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	sub := dt / Substeps
	for range Substeps {
		for _, b := range w.bodies {
			b.body.SetVelocityVector(b.slide(b.desired))
		}
		w.space.Step(sub)
	}
}

func (w *World) setupHandlers() {
	// enemies overlap the player instead of shoving it; contact damage is
	// resolved by the game, not the solver
	h := w.space.NewCollisionHandler(collisionTypePlayer, collisionTypeEnemy)
	h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}
}

// Body is the movement sink for one mover.
type Body struct {
	world   *World
	body    *cp.Body
	shape   *cp.Shape
	kind    Kind
	radius  float64
	desired cp.Vector
}

func (b *Body) Position() cp.Vector { return b.body.Position() }

// SetVelocity sets the velocity the body tries to keep until changed.
func (b *Body) SetVelocity(v cp.Vector) {
	b.desired = v
	b.body.SetVelocityVector(v)
}

// Velocity returns the requested velocity, not the solved one.
func (b *Body) Velocity() cp.Vector { return b.desired }

// Teleport moves the body and stops it.
func (b *Body) Teleport(p cp.Vector) {
	b.body.SetPosition(p)
	b.SetVelocity(cp.Vector{})
}

// slide removes from v every component pointing into a touched wall.
func (b *Body) slide(v cp.Vector) cp.Vector {
	b.body.EachArbiter(func(arb *cp.Arbiter) {
		_, other := arb.Bodies()
		if other != b.world.space.StaticBody {
			return
		}
		n := arb.Normal()
		if d := v.Dot(n); d > 0 {
			v = v.Sub(n.Mult(d))
		}
	})
	return v
}

func (b *Body) Kind() Kind { return b.kind }

func (b *Body) Radius() float64 { return b.radius }
