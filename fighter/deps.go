package fighter

import (
	"image/color"
	"time"
)

// Body is the physics body a fighter moves through.
type Body interface {
	Position() (float64, float64)
	SetPosition(x, y float64)
	Velocity() (float64, float64)
	SetVelocity(vx, vy float64)
	SetVelocityX(vx float64)
	SetVelocityY(vy float64)
	SetAccelerationX(ax float64)
	SetMaxVelocity(x, y float64)
	Extents() (float64, float64)
	Grounded() bool
}

// Effects receives cosmetic hit feedback.
type Effects interface {
	Tint(f *Fighter, c color.RGBA, d time.Duration)
	Shake(d time.Duration, intensity float64)
}

type noEffects struct{}

func (noEffects) Tint(*Fighter, color.RGBA, time.Duration) {}
func (noEffects) Shake(time.Duration, float64)             {}
