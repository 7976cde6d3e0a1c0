package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/common"
)

// groundTolerance is how far above the ground surface a resting body may
// float and still count as grounded.
const groundTolerance = 1.0

// Body is a fighter or projectile body in the space.
type Body struct {
	world *World
	body  *cp.Body
	shape *cp.Shape

	hw, hh       float64
	accelX       float64
	dragX        float64
	maxVX, maxVY float64
	gravity      bool
	kinematic    bool
	removed      bool
	groundStep   uint64
}

func (b *Body) integrate(gravity cp.Vector, dt float64) {
	v := b.body.Velocity()
	if b.gravity {
		v.Y += gravity.Y * dt
	}
	if b.accelX != 0 {
		v.X += b.accelX * dt
	} else if b.dragX > 0 {
		v.X = common.Approach(v.X, b.dragX*dt)
	}
	if b.maxVX > 0 {
		v.X = common.Clamp(v.X, -b.maxVX, b.maxVX)
	}
	if b.maxVY > 0 {
		v.Y = common.Clamp(v.Y, -b.maxVY, b.maxVY)
	}
	b.body.SetVelocityVector(v)
}

func (b *Body) Position() (float64, float64) {
	p := b.body.Position()
	return p.X, p.Y
}

func (b *Body) SetPosition(x, y float64) {
	b.body.SetPosition(cp.Vector{X: x, Y: y})
}

func (b *Body) Velocity() (float64, float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

func (b *Body) SetVelocity(vx, vy float64) {
	b.body.SetVelocity(vx, vy)
}

func (b *Body) SetVelocityX(vx float64) {
	v := b.body.Velocity()
	b.body.SetVelocity(vx, v.Y)
}

func (b *Body) SetVelocityY(vy float64) {
	v := b.body.Velocity()
	b.body.SetVelocity(v.X, vy)
}

func (b *Body) AccelerationX() float64 {
	return b.accelX
}

func (b *Body) SetAccelerationX(ax float64) {
	b.accelX = ax
}

// SetMaxVelocity caps speed per axis. Zero means uncapped.
func (b *Body) SetMaxVelocity(x, y float64) {
	b.maxVX, b.maxVY = x, y
}

func (b *Body) MaxVelocityX() float64 {
	return b.maxVX
}

// Extents returns the half width and half height.
func (b *Body) Extents() (float64, float64) {
	return b.hw, b.hh
}

// Bounds returns the current axis-aligned box.
func (b *Body) Bounds() cp.BB {
	return cp.NewBBForExtents(b.body.Position(), b.hw, b.hh)
}

// Overlaps reports whether two bodies' boxes intersect.
func (b *Body) Overlaps(other *Body) bool {
	if b == nil || other == nil {
		return false
	}
	return b.Bounds().Intersects(other.Bounds())
}

// Grounded reports whether the body is resting on the ground: it touched the
// ground in the latest step, or sits on it, and is not moving upward.
func (b *Body) Grounded() bool {
	if b == nil || b.kinematic {
		return false
	}
	if v := b.body.Velocity(); v.Y < 0 {
		return false
	}
	if b.world != nil && b.world.steps > 0 && b.groundStep == b.world.steps {
		return true
	}
	_, y := b.Position()
	top := b.world.arena.GroundTop()
	return y+b.hh >= top-groundTolerance
}

// Removed reports whether the body has left the space.
func (b *Body) Removed() bool {
	return b == nil || b.removed
}
