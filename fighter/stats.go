package fighter

import (
	"image/color"
	"time"
)

// Stats are the tuning constants shared by both fighters.
type Stats struct {
	WalkSpeed      float64
	RunSpeed       float64
	JumpForce      float64
	Acceleration   float64
	Drag           float64
	MaxVelocityY   float64
	AttackCooldown time.Duration
	PunchDamage    int
	KickDamage     int
	HitDistance    float64
	MaxHealth      int

	// RunAfter is how long a direction must be held before Walk becomes Run,
	// and only while moving faster than RunMinSpeed.
	RunAfter    time.Duration
	RunMinSpeed float64
	// StopSpeed is the speed under which a grounded fighter with no input
	// settles into Idle.
	StopSpeed float64

	BlockFactor float64
	DeathDelay  time.Duration

	Stamina StaminaStats
}

// StaminaStats configure the optional stamina meter. Rates are per second.
type StaminaStats struct {
	Enabled bool
	Max     float64
	Drain   float64
	Regen   float64
	// BlockMin is the stamina needed for Shield to reduce damage.
	BlockMin float64
}

func DefaultStats() Stats {
	return Stats{
		WalkSpeed:      250,
		RunSpeed:       300,
		JumpForce:      -550,
		Acceleration:   2500,
		Drag:           1200,
		MaxVelocityY:   1000,
		AttackCooldown: 200 * time.Millisecond,
		PunchDamage:    10,
		KickDamage:     15,
		HitDistance:    70,
		MaxHealth:      100,
		RunAfter:       500 * time.Millisecond,
		RunMinSpeed:    50,
		StopSpeed:      30,
		BlockFactor:    0.1,
		DeathDelay:     2 * time.Second,
		Stamina: StaminaStats{
			Max:      100,
			Drain:    31.25,
			Regen:    18.75,
			BlockMin: 10,
		},
	}
}

// Damage returns the melee damage of an attack state.
func (s Stats) Damage(state State) int {
	if state == Kick {
		return s.KickDamage
	}
	return s.PunchDamage
}

// Hit feedback.
var (
	TintHit     = color.RGBA{R: 0xff, A: 0xff}
	TintBlocked = color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
)

const (
	tintDuration  = 150 * time.Millisecond
	shakeDuration = 100 * time.Millisecond
	shakeHit      = 0.008
	shakeBlocked  = 0.003
)
