package fighter

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/brawler/anim"
	"github.com/milk9111/brawler/clock"
)

// Config identifies a fighter and where it spawns.
type Config struct {
	Name      string
	Character string
	Element   string
	Entity    uint64
	SpawnX    float64
	SpawnY    float64
	Facing    int
}

// Deps are the collaborators a fighter drives.
type Deps struct {
	Body     Body
	Animator *anim.Animator
	Clock    *clock.Clock
	Effects  Effects
	Logger   *zap.Logger
}

// Damage describes the outcome of one TakeDamage call.
type Damage struct {
	Applied int
	Blocked bool
	Killed  bool
}

type lockWatch struct {
	state  State
	playID uint64
	active bool
}

// Fighter is one combatant. Every state change goes through SetState.
type Fighter struct {
	cfg     Config
	stats   Stats
	body    Body
	anim    *anim.Animator
	clock   *clock.Clock
	effects Effects
	log     *zap.Logger

	health     int
	stamina    float64
	state      State
	dead       bool
	facing     int
	lastAttack time.Duration
	cooldowns  map[PowerID]time.Duration
	buffer     InputBuffer
	lock       lockWatch

	moveDir   int
	moveStart time.Duration

	onDeath     func(*Fighter)
	deathHandle clock.Handle
}

func New(cfg Config, deps Deps, stats Stats) *Fighter {
	if deps.Effects == nil {
		deps.Effects = noEffects{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.Facing == 0 {
		cfg.Facing = 1
	}
	f := &Fighter{
		cfg:     cfg,
		stats:   stats,
		body:    deps.Body,
		anim:    deps.Animator,
		clock:   deps.Clock,
		effects: deps.Effects,
	}
	f.SetLogger(deps.Logger)
	f.Reset()
	return f
}

// SetLogger replaces the logger; the fighter name field is added again.
func (f *Fighter) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	f.log = log.With(zap.String("fighter", f.cfg.Name))
}

// OnDeath sets the callback run DeathDelay after the fighter dies.
func (f *Fighter) OnDeath(fn func(*Fighter)) {
	f.onDeath = fn
}

// Reset restores full health and Idle at the spawn point. Pending death
// resolution is cancelled.
func (f *Fighter) Reset() {
	if f.deathHandle != 0 {
		f.clock.Cancel(f.deathHandle)
		f.deathHandle = 0
	}
	f.health = f.stats.MaxHealth
	f.stamina = f.stats.Stamina.Max
	f.dead = false
	f.facing = f.cfg.Facing
	f.lastAttack = 0
	f.cooldowns = make(map[PowerID]time.Duration)
	f.buffer.Clear()
	f.lock = lockWatch{}
	f.moveDir = 0
	if f.body != nil {
		f.body.SetPosition(f.cfg.SpawnX, f.cfg.SpawnY)
		f.body.SetVelocity(0, 0)
		f.body.SetAccelerationX(0)
	}
	f.SetState(Idle, true)
}

func (f *Fighter) Name() string      { return f.cfg.Name }
func (f *Fighter) Character() string { return f.cfg.Character }
func (f *Fighter) Element() string   { return f.cfg.Element }
func (f *Fighter) Entity() uint64    { return f.cfg.Entity }
func (f *Fighter) Body() Body        { return f.body }
func (f *Fighter) Stats() Stats      { return f.stats }

// Animator returns the fighter's pose engine.
func (f *Fighter) Animator() *anim.Animator { return f.anim }

func (f *Fighter) State() State { return f.state }
func (f *Fighter) IsDead() bool { return f.dead }
func (f *Fighter) Health() int  { return f.health }
func (f *Fighter) MaxHealth() int {
	return f.stats.MaxHealth
}

// HealthPercent returns health as 0..100.
func (f *Fighter) HealthPercent() float64 {
	if f.stats.MaxHealth <= 0 {
		return 0
	}
	return math.Max(0, float64(f.health)/float64(f.stats.MaxHealth)*100)
}

func (f *Fighter) Stamina() float64 { return f.stamina }

// StaminaPercent returns stamina as 0..100, or 100 when stamina is off.
func (f *Fighter) StaminaPercent() float64 {
	if !f.stats.Stamina.Enabled || f.stats.Stamina.Max <= 0 {
		return 100
	}
	return f.stamina / f.stats.Stamina.Max * 100
}

func (f *Fighter) Facing() int { return f.facing }

func (f *Fighter) SetFacing(dir int) {
	if dir > 0 {
		f.facing = 1
	} else if dir < 0 {
		f.facing = -1
	}
}

// FaceToward turns toward x. Standing exactly on x keeps the facing.
func (f *Fighter) FaceToward(x float64) {
	px, _ := f.Position()
	switch {
	case x > px:
		f.facing = 1
	case x < px:
		f.facing = -1
	}
}

// IsFacing reports whether other stands on the side this fighter faces.
func (f *Fighter) IsFacing(other *Fighter) bool {
	x, _ := f.Position()
	ox, _ := other.Position()
	return (ox >= x && f.facing > 0) || (ox <= x && f.facing < 0)
}

func (f *Fighter) Position() (float64, float64) {
	if f.body == nil {
		return 0, 0
	}
	return f.body.Position()
}

func (f *Fighter) Grounded() bool {
	return f.body != nil && f.body.Grounded()
}

func (f *Fighter) LastAttack() time.Duration { return f.lastAttack }

// MarkAttack stamps the time of the latest attack or cast.
func (f *Fighter) MarkAttack(now time.Duration) {
	f.lastAttack = now
}

// CanAttack reports whether the melee cooldown has passed.
func (f *Fighter) CanAttack(now time.Duration) bool {
	return now > f.lastAttack+f.stats.AttackCooldown
}

// CooldownReady reports whether the cooldown of p lies strictly behind now.
// The bot waits on this before choosing a power.
func (f *Fighter) CooldownReady(p PowerID, now time.Duration) bool {
	return now > f.cooldowns[p]
}

// CanCast reports whether power p may be cast at now. A power is castable
// again from the instant its cooldown ends.
func (f *Fighter) CanCast(p PowerID, now time.Duration) bool {
	return now >= f.cooldowns[p]
}

// StartCooldown blocks power p until the given time.
func (f *Fighter) StartCooldown(p PowerID, until time.Duration) {
	f.cooldowns[p] = until
}

// ReadyAt returns when power p becomes usable.
func (f *Fighter) ReadyAt(p PowerID) time.Duration {
	return f.cooldowns[p]
}

// BufferInput stores a player action for up to BufferWindow.
func (f *Fighter) BufferInput(a Action, now time.Duration) {
	f.buffer.Write(a, now)
}

// ConsumeBuffer takes the buffered action if it is still fresh.
func (f *Fighter) ConsumeBuffer(now time.Duration) (Action, bool) {
	return f.buffer.Consume(now)
}

// SetState is the only way a fighter changes state. It does nothing once
// the fighter is dead, or when next is already current and force is unset.
// Locked states return to Idle when their own clip play completes.
func (f *Fighter) SetState(next State, force bool) bool {
	if f.dead {
		return false
	}
	if next == f.state && !force {
		return false
	}
	prev := f.state
	f.state = next
	f.applySpeedCap()

	var playID uint64
	started := false
	if f.anim != nil {
		playID, started = f.anim.Play(next.String(), force)
	}
	if next.Locked() && started {
		f.lock = lockWatch{state: next, playID: playID, active: true}
	} else {
		f.lock = lockWatch{}
		if next.Locked() {
			f.log.Warn("locked state without clip", zap.Stringer("state", next))
		}
	}

	if prev != next {
		f.log.Debug("state", zap.Stringer("from", prev), zap.Stringer("to", next))
	}
	return true
}

// OnClipComplete is fed every completion from the fighter's animator.
func (f *Fighter) OnClipComplete(c anim.Completion) {
	if !f.lock.active || c.PlayID != f.lock.playID || f.state != f.lock.state {
		return
	}
	f.lock = lockWatch{}
	f.SetState(Idle, false)
}

// Animate advances the animator and handles its completions.
func (f *Fighter) Animate(dt time.Duration) {
	if f.anim == nil {
		return
	}
	if c, ok := f.anim.Update(dt); ok {
		f.OnClipComplete(c)
	}
}

// TakeDamage applies amount, reduced to the block factor while shielding.
func (f *Fighter) TakeDamage(amount int) Damage {
	if f.dead {
		return Damage{}
	}
	if amount < 0 {
		amount = 0
	}

	blocked := f.state == Shield
	if blocked && f.stats.Stamina.Enabled && f.stamina <= f.stats.Stamina.BlockMin {
		blocked = false
	}
	applied := amount
	if blocked {
		applied = int(math.Ceil(float64(amount) * f.stats.BlockFactor))
	}
	f.health -= applied
	if f.health < 0 {
		f.health = 0
	}

	if blocked {
		f.effects.Tint(f, TintBlocked, tintDuration)
		f.effects.Shake(shakeDuration, shakeBlocked)
	} else {
		f.effects.Tint(f, TintHit, tintDuration)
		f.effects.Shake(shakeDuration, shakeHit)
	}

	f.log.Info("damage",
		zap.Int("amount", amount),
		zap.Int("applied", applied),
		zap.Bool("blocked", blocked),
		zap.Int("health", f.health),
	)

	result := Damage{Applied: applied, Blocked: blocked}
	if f.health == 0 {
		f.Die()
		result.Killed = true
		return result
	}
	if !blocked {
		if f.body != nil {
			f.body.SetVelocity(0, 0)
		}
		f.SetState(Hurt, true)
	}
	return result
}

// Die enters Dead for good. Gravity keeps acting on the body; round
// resolution runs DeathDelay later.
func (f *Fighter) Die() {
	if f.dead {
		return
	}
	f.SetState(Dead, true)
	f.dead = true
	f.lock = lockWatch{}
	f.buffer.Clear()
	if f.body != nil {
		f.body.SetAccelerationX(0)
	}
	f.log.Info("died")
	if f.clock != nil {
		f.deathHandle = f.clock.After(f.stats.DeathDelay, "round_resolve", nil, func(time.Duration) {
			f.deathHandle = 0
			if f.onDeath != nil {
				f.onDeath(f)
			}
		})
	}
}

func (f *Fighter) applySpeedCap() {
	if f.body == nil {
		return
	}
	maxX := f.stats.WalkSpeed
	if f.state == Run {
		maxX = f.stats.RunSpeed
	}
	f.body.SetMaxVelocity(maxX, f.stats.MaxVelocityY)
}
