package fighter

import (
	"math"
	"time"
)

// Halt stops horizontal motion at once.
func (f *Fighter) Halt() {
	if f.body == nil {
		return
	}
	f.body.SetVelocityX(0)
	f.body.SetAccelerationX(0)
}

// Accelerate pushes toward dir (-1, 0, 1) and faces that way. A zero dir
// lets drag bring the body to rest.
func (f *Fighter) Accelerate(dir int, now time.Duration) {
	if f.dead || f.body == nil {
		return
	}
	if dir == 0 {
		f.body.SetAccelerationX(0)
		f.moveDir = 0
		return
	}
	f.body.SetAccelerationX(float64(dir) * f.stats.Acceleration)
	f.SetFacing(dir)
	if f.moveDir != dir {
		f.moveDir = dir
		f.moveStart = now
	}
}

// MovingFor returns how long the current direction has been held.
func (f *Fighter) MovingFor(now time.Duration) time.Duration {
	if f.moveDir == 0 {
		return 0
	}
	return now - f.moveStart
}

// Drive applies held horizontal input and refines the locomotion state:
// airborne is Jump, a held direction is Walk until it has been held for
// RunAfter at speed, and no input settles to Idle once slow enough.
func (f *Fighter) Drive(dir int, now time.Duration) {
	if f.dead {
		return
	}
	f.Accelerate(dir, now)

	vx, _ := f.body.Velocity()
	speed := math.Abs(vx)
	switch {
	case !f.body.Grounded():
		f.SetState(Jump, false)
	case dir != 0:
		if f.MovingFor(now) >= f.stats.RunAfter && speed > f.stats.RunMinSpeed {
			f.SetState(Run, false)
		} else {
			f.SetState(Walk, false)
		}
	case speed < f.stats.StopSpeed:
		f.SetState(Idle, false)
	default:
		f.SetState(Walk, false)
	}
}

// Jump launches the fighter if it stands on the ground.
func (f *Fighter) Jump() bool {
	if f.dead || !f.Grounded() {
		return false
	}
	f.body.SetVelocityY(f.stats.JumpForce)
	f.SetState(Jump, false)
	return true
}

// Block plants the fighter in Shield. With stamina enabled an empty meter
// refuses the block.
func (f *Fighter) Block() bool {
	if f.dead || f.body == nil {
		return false
	}
	if f.stats.Stamina.Enabled && f.stamina <= 0 {
		return false
	}
	f.body.SetVelocity(0, 0)
	f.body.SetAccelerationX(0)
	f.moveDir = 0
	f.SetState(Shield, false)
	return true
}

// ReleaseBlock leaves Shield for Idle.
func (f *Fighter) ReleaseBlock() {
	if f.state == Shield {
		f.SetState(Idle, false)
	}
}

// UpdateStamina drains the meter while shielding and refills it otherwise.
// An empty meter drops the shield.
func (f *Fighter) UpdateStamina(dt time.Duration) {
	st := f.stats.Stamina
	if !st.Enabled || f.dead {
		return
	}
	secs := dt.Seconds()
	if f.state == Shield {
		f.stamina -= st.Drain * secs
		if f.stamina <= 0 {
			f.stamina = 0
			f.SetState(Idle, false)
		}
		return
	}
	f.stamina = math.Min(st.Max, f.stamina+st.Regen*secs)
}
