package combat

import (
	"time"

	"github.com/milk9111/brawler/fighter"
)

// Config holds the timing and geometry of hit resolution.
type Config struct {
	HitDelay          time.Duration
	HitStop           time.Duration
	VerticalTolerance float64
	PointBlank        float64
	KnockbackX        float64
	KnockbackY        float64

	CastDelay       time.Duration
	ProjectileTTL   time.Duration
	ProjectileFade  time.Duration
	ProjectileSpan  float64
	SpawnMargin     float64
	PointBlankDelay time.Duration
	ImpactShake     time.Duration
	ImpactShakeDiv  float64
	ImpactSpark     time.Duration
}

func DefaultConfig() Config {
	return Config{
		HitDelay:          200 * time.Millisecond,
		HitStop:           60 * time.Millisecond,
		VerticalTolerance: 100,
		PointBlank:        50,
		KnockbackX:        200,
		KnockbackY:        -100,
		CastDelay:         150 * time.Millisecond,
		ProjectileTTL:     2700 * time.Millisecond,
		ProjectileFade:    300 * time.Millisecond,
		ProjectileSpan:    1000,
		SpawnMargin:       40,
		PointBlankDelay:   10 * time.Millisecond,
		ImpactShake:       200 * time.Millisecond,
		ImpactShakeDiv:    2000,
		ImpactSpark:       250 * time.Millisecond,
	}
}

// Power is one ranged attack.
type Power struct {
	ID       fighter.PowerID
	Speed    float64
	Damage   int
	Cooldown time.Duration
	Scale    float64
	OffsetX  float64
	OffsetY  float64
}

func DefaultPowers() map[fighter.PowerID]Power {
	return map[fighter.PowerID]Power{
		fighter.PowerBall:  {ID: fighter.PowerBall, Speed: 600, Damage: 25, Cooldown: 3000 * time.Millisecond, Scale: 0.0525, OffsetX: 50, OffsetY: 15},
		fighter.PowerArrow: {ID: fighter.PowerArrow, Speed: 600, Damage: 15, Cooldown: 1500 * time.Millisecond, Scale: 0.07, OffsetX: 60, OffsetY: 15},
		fighter.PowerSpell: {ID: fighter.PowerSpell, Speed: 600, Damage: 35, Cooldown: 5000 * time.Millisecond, Scale: 0.0875, OffsetX: 60, OffsetY: 25},
	}
}
