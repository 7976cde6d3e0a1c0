package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeGround cp.CollisionType = iota + 1
	collisionTypeWall
	collisionTypeFighter
	collisionTypeProjectile
)

// Arena describes the static level: a flat ground strip and side walls.
type Arena struct {
	Width        float64
	Height       float64
	GroundY      float64
	GroundHeight float64
	Gravity      float64
}

// GroundTop returns the y of the walkable surface.
func (a Arena) GroundTop() float64 {
	return a.GroundY - a.GroundHeight/2
}

// World owns the Chipmunk space and every body in it.
type World struct {
	arena  Arena
	space  *cp.Space
	steps  uint64
	bodies map[*cp.Shape]*Body
}

// NewWorld builds a space with gravity, the ground strip, and side walls.
func NewWorld(arena Arena) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: arena.Gravity})

	w := &World{
		arena:  arena,
		space:  space,
		bodies: make(map[*cp.Shape]*Body),
	}
	w.buildStaticShapes()
	w.setupHandlers()
	return w
}

// Arena returns the static layout.
func (w *World) Arena() Arena {
	return w.arena
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.steps++
	w.space.Step(dt)
}

// BodySpec sizes a new dynamic body. X and Y are the body center.
type BodySpec struct {
	X, Y          float64
	Width, Height float64
	DragX         float64
	MaxVX, MaxVY  float64
}

// AddFighter creates a dynamic box that never rotates and integrates its
// velocity with arcade acceleration, drag, and speed caps.
func (w *World) AddFighter(spec BodySpec) *Body {
	cpBody := cp.NewBody(1, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: spec.X, Y: spec.Y})
	shape := cp.NewBox(cpBody, spec.Width, spec.Height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeFighter)

	b := &Body{
		world:   w,
		body:    cpBody,
		shape:   shape,
		hw:      spec.Width / 2,
		hh:      spec.Height / 2,
		dragX:   spec.DragX,
		maxVX:   spec.MaxVX,
		maxVY:   spec.MaxVY,
		gravity: true,
	}
	cpBody.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		b.integrate(gravity, dt)
	})

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)
	w.bodies[shape] = b
	return b
}

// AddProjectile creates a kinematic sensor box moving at a constant velocity.
func (w *World) AddProjectile(x, y, width, height, vx float64) *Body {
	cpBody := cp.NewKinematicBody()
	cpBody.SetPosition(cp.Vector{X: x, Y: y})
	cpBody.SetVelocity(vx, 0)
	shape := cp.NewBox(cpBody, width, height, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeProjectile)

	b := &Body{
		world:     w,
		body:      cpBody,
		shape:     shape,
		hw:        width / 2,
		hh:        height / 2,
		kinematic: true,
	}
	w.space.AddBody(cpBody)
	w.space.AddShape(shape)
	w.bodies[shape] = b
	return b
}

// Remove takes a body out of the space. Removing twice is harmless.
func (w *World) Remove(b *Body) {
	if w == nil || b == nil || b.removed {
		return
	}
	b.removed = true
	delete(w.bodies, b.shape)
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
}

func (w *World) buildStaticShapes() {
	a := w.arena
	top := a.GroundTop()
	ground := cp.NewBox2(w.space.StaticBody, cp.BB{L: 0, B: top, R: a.Width, T: top + a.GroundHeight}, 0)
	ground.SetFriction(0)
	ground.SetCollisionType(collisionTypeGround)
	w.space.AddShape(ground)

	thickness := 1.0
	walls := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: a.Height}},
		{a: cp.Vector{X: a.Width, Y: 0}, b: cp.Vector{X: a.Width, Y: a.Height}},
	}
	for _, seg := range walls {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeWall)
		w.space.AddShape(shape)
	}
}

func (w *World) setupHandlers() {
	groundHandler := w.space.NewCollisionHandler(collisionTypeFighter, collisionTypeGround)
	groundHandler.UserData = w
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		if b := world.bodies[shapeA]; b != nil {
			b.groundStep = world.steps
		} else if b := world.bodies[shapeB]; b != nil {
			b.groundStep = world.steps
		}
		return true
	}

	// fighters pass through each other
	fighterHandler := w.space.NewCollisionHandler(collisionTypeFighter, collisionTypeFighter)
	fighterHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		return false
	}
}
