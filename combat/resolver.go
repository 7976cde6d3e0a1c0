package combat

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/brawler/clock"
	"github.com/milk9111/brawler/fighter"
)

// Hit describes a landed melee or projectile hit.
type Hit struct {
	Attacker *fighter.Fighter
	Target   *fighter.Fighter
	Source   string
	Damage   fighter.Damage
}

// Resolver times melee attacks and applies their hits.
type Resolver struct {
	cfg     Config
	clock   *clock.Clock
	stop    Freezer
	log     *zap.Logger
	pending map[*fighter.Fighter]clock.Handle
	onHit   func(Hit)
}

func NewResolver(cfg Config, clk *clock.Clock, stop Freezer, log *zap.Logger) *Resolver {
	if stop == nil {
		stop = (*HitStop)(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		cfg:     cfg,
		clock:   clk,
		stop:    stop,
		log:     log,
		pending: make(map[*fighter.Fighter]clock.Handle),
	}
}

func (r *Resolver) SetLogger(log *zap.Logger) {
	if log != nil {
		r.log = log
	}
}

// OnHit registers an observer for landed hits.
func (r *Resolver) OnHit(fn func(Hit)) {
	r.onHit = fn
}

// PerformAttack starts a melee attack: the attacker halts, enters state,
// and the hit is checked HitDelay later. A new attack replaces the pending
// check of the same attacker.
func (r *Resolver) PerformAttack(attacker, target *fighter.Fighter, state fighter.State, damage int, now time.Duration) bool {
	if attacker == nil || target == nil || attacker.IsDead() {
		return false
	}
	attacker.Halt()
	attacker.SetState(state, true)
	attacker.MarkAttack(now)

	if h, ok := r.pending[attacker]; ok {
		r.clock.Cancel(h)
	}
	r.pending[attacker] = r.clock.After(r.cfg.HitDelay, "melee_hit",
		func() bool { return !attacker.IsDead() && !target.IsDead() },
		func(time.Duration) {
			delete(r.pending, attacker)
			r.resolve(attacker, target, state, damage)
		})
	return true
}

func (r *Resolver) resolve(attacker, target *fighter.Fighter, state fighter.State, damage int) {
	if !r.InRange(attacker, target) {
		r.log.Debug("whiff", zap.String("attacker", attacker.Name()), zap.Stringer("attack", state))
		return
	}
	dmg := target.TakeDamage(damage)
	if r.onHit != nil {
		r.onHit(Hit{Attacker: attacker, Target: target, Source: state.String(), Damage: dmg})
	}

	ax, _ := attacker.Position()
	tx, _ := target.Position()
	dir := -1.0
	if ax < tx {
		dir = 1
	}
	r.stop.Freeze(func() {
		if body := target.Body(); body != nil {
			body.SetVelocity(dir*r.cfg.KnockbackX, r.cfg.KnockbackY)
		}
	})
}

// InRange reports whether attacker would connect with target right now.
func (r *Resolver) InRange(attacker, target *fighter.Fighter) bool {
	ax, ay := attacker.Position()
	tx, ty := target.Position()
	return HitTest(math.Hypot(tx-ax, ty-ay), math.Abs(ty-ay), attacker.IsFacing(target),
		attacker.Stats().HitDistance, r.cfg.PointBlank, r.cfg.VerticalTolerance)
}

// HitTest is the melee hit rule: vertically aligned, and either within
// reach while facing or close enough that facing does not matter.
func HitTest(dist, dy float64, facing bool, reach, pointBlank, vertical float64) bool {
	return dy < vertical && ((dist < reach && facing) || dist < pointBlank)
}

// Pending reports whether attacker has a hit check waiting.
func (r *Resolver) Pending(attacker *fighter.Fighter) bool {
	h, ok := r.pending[attacker]
	return ok && r.clock.Pending(h)
}

// Reset cancels every pending check.
func (r *Resolver) Reset() {
	for f, h := range r.pending {
		r.clock.Cancel(h)
		delete(r.pending, f)
	}
}
