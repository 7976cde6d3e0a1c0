package ai

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/brawler/fighter"
)

const (
	castSpacing = 500 * time.Millisecond
	castPause   = 800 * time.Millisecond
	chaseRun    = 1000 * time.Millisecond
	settleSpeed = 20.0
)

// Arsenal is how the bot attacks.
type Arsenal interface {
	PerformAttack(attacker, target *fighter.Fighter, state fighter.State, damage int, now time.Duration) bool
	UsePower(caster *fighter.Fighter, id fighter.PowerID, now time.Duration) bool
}

type Options struct {
	Profile Profile
	Policy  Policy
	Source  Source
	Logger  *zap.Logger
}

// Engine drives one fighter against an opponent.
type Engine struct {
	self     *fighter.Fighter
	opponent *fighter.Fighter
	arsenal  Arsenal
	profile  Profile
	policy   Policy
	rng      Source
	log      *zap.Logger

	behavior  Behavior
	nextThink time.Duration
	thought   bool
}

func NewEngine(self, opponent *fighter.Fighter, arsenal Arsenal, opts Options) *Engine {
	if opts.Policy == nil {
		opts.Policy = DefaultPolicy{}
	}
	if opts.Source == nil {
		opts.Source = NewSource(uint64(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Engine{
		self:     self,
		opponent: opponent,
		arsenal:  arsenal,
		profile:  opts.Profile,
		policy:   opts.Policy,
		rng:      opts.Source,
		log:      opts.Logger.With(zap.String("bot", self.Name())),
	}
}

func (e *Engine) Behavior() Behavior        { return e.behavior }
func (e *Engine) NextThink() time.Duration  { return e.nextThink }
func (e *Engine) Profile() Profile          { return e.profile }
func (e *Engine) SetProfile(p Profile)      { e.profile = p }
func (e *Engine) SetPolicy(p Policy)        { e.policy = p }
func (e *Engine) Fighter() *fighter.Fighter { return e.self }

// SetLogger replaces the logger, tagging lines with the bot's fighter.
func (e *Engine) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	e.log = log.With(zap.String("bot", e.self.Name()))
}

// Reset forgets the current behavior so the next update thinks at once.
func (e *Engine) Reset() {
	e.behavior = Idle
	e.nextThink = 0
	e.thought = false
}

// Update runs one frame of the bot. A dead, hurt, or mid-attack fighter is
// left alone. Once the opponent is dead the bot only idles.
func (e *Engine) Update(now time.Duration) {
	if e.self.IsDead() || e.self.State().Locked() {
		return
	}
	if e.opponent.IsDead() {
		if e.behavior != Idle {
			e.log.Debug("behavior", zap.Stringer("from", e.behavior), zap.Stringer("to", Idle), zap.String("reason", "opponent dead"))
			e.behavior = Idle
		}
		e.execute(now)
		return
	}
	ox, _ := e.opponent.Position()
	e.self.FaceToward(ox)

	if !e.thought || now > e.nextThink {
		e.think(now)
	}
	e.execute(now)
}

func (e *Engine) think(now time.Duration) {
	e.thought = true
	e.nextThink = now + e.thinkDelay()

	sx, sy := e.self.Position()
	ox, oy := e.opponent.Position()
	s := Situation{
		Distance:          math.Hypot(ox-sx, oy-sy),
		OpponentAttacking: e.opponent.State().Attacking(),
		SelfHealth:        e.self.HealthPercent(),
		OpponentHealth:    e.opponent.HealthPercent(),
	}
	prev := e.behavior
	e.behavior = e.policy.Decide(s, e.profile, e.rng.Float64())

	if e.behavior != Blocking && e.self.State() == fighter.Shield {
		e.self.SetState(fighter.Idle, false)
	}
	if prev != e.behavior {
		e.log.Debug("behavior", zap.Stringer("from", prev), zap.Stringer("to", e.behavior), zap.Float64("distance", s.Distance))
	}
}

func (e *Engine) thinkDelay() time.Duration {
	span := int((e.profile.ThinkMax - e.profile.ThinkMin) / time.Millisecond)
	if span <= 0 {
		return e.profile.ThinkMin
	}
	return e.profile.ThinkMin + time.Duration(e.rng.IntN(span+1))*time.Millisecond
}

func (e *Engine) execute(now time.Duration) {
	switch e.behavior {
	case Blocking:
		e.self.Block()
	case Idle:
		e.self.Accelerate(0, now)
		e.dropShield()
		vx, _ := e.velocity()
		if st := e.self.State(); math.Abs(vx) < settleSpeed && (st == fighter.Walk || st == fighter.Run) {
			e.self.SetState(fighter.Idle, false)
		}
	case Attacking:
		e.self.Halt()
		e.self.Accelerate(0, now)
		e.dropShield()
		e.attack(now)
	case Casting:
		e.self.Halt()
		e.self.Accelerate(0, now)
		e.dropShield()
		pw := e.randomPower()
		if e.self.CooldownReady(pw, now) && now > e.self.LastAttack()+castSpacing {
			e.arsenal.UsePower(e.self, pw, now)
			e.self.MarkAttack(now)
			e.nextThink = now + castPause
			return
		}
		e.behavior = Chasing
	case Chasing:
		e.dropShield()
		e.chase(now)
	}
}

func (e *Engine) attack(now time.Duration) {
	if now <= e.self.LastAttack()+e.profile.AttackDelay {
		return
	}
	if e.rng.Float64() < e.profile.PowerChance {
		pw := e.randomPower()
		if e.self.CooldownReady(pw, now) {
			e.arsenal.UsePower(e.self, pw, now)
			e.self.MarkAttack(now)
			e.nextThink = now + e.profile.AttackDelay
			return
		}
	}
	state := fighter.Kick
	if e.rng.Float64() > 0.5 {
		state = fighter.Punch
	}
	e.arsenal.PerformAttack(e.self, e.opponent, state, e.self.Stats().Damage(state), now)
	e.nextThink = now + e.profile.AttackDelay
}

func (e *Engine) chase(now time.Duration) {
	sx, _ := e.self.Position()
	ox, _ := e.opponent.Position()
	dir := 1
	if ox < sx {
		dir = -1
	}
	e.self.Accelerate(dir, now)
	if e.self.State() == fighter.Jump {
		return
	}
	if e.self.MovingFor(now) > chaseRun {
		e.self.SetState(fighter.Run, false)
	} else {
		e.self.SetState(fighter.Walk, false)
	}
}

func (e *Engine) dropShield() {
	if e.self.State() == fighter.Shield {
		e.self.SetState(fighter.Idle, false)
	}
}

func (e *Engine) randomPower() fighter.PowerID {
	powers := fighter.Powers()
	return powers[e.rng.IntN(len(powers))]
}

func (e *Engine) velocity() (float64, float64) {
	if b := e.self.Body(); b != nil {
		return b.Velocity()
	}
	return 0, 0
}
