package combat

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/brawler/clock"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/fighter"
	"github.com/milk9111/brawler/physics"
)

// Impacts receives projectile hit feedback.
type Impacts interface {
	Impact(x, y, radius float64, element string)
	Shake(d time.Duration, intensity float64)
}

type noImpacts struct{}

func (noImpacts) Impact(float64, float64, float64, string) {}
func (noImpacts) Shake(time.Duration, float64)             {}

// Projectiles spawns power projectiles as entities and resolves their hits.
type Projectiles struct {
	cfg      Config
	powers   map[fighter.PowerID]Power
	clock    *clock.Clock
	world    *ecs.World
	phys     *physics.World
	stop     Freezer
	impacts  Impacts
	running  func() bool
	log      *zap.Logger
	fighters []*fighter.Fighter
	onHit    func(Hit)
}

type ProjectileDeps struct {
	Clock   *clock.Clock
	World   *ecs.World
	Physics *physics.World
	Stop    Freezer
	Impacts Impacts
	// Running reports whether the match still accepts new projectiles.
	// Nil means always.
	Running func() bool
	Logger  *zap.Logger
}

func NewProjectiles(cfg Config, powers map[fighter.PowerID]Power, deps ProjectileDeps) *Projectiles {
	if deps.Impacts == nil {
		deps.Impacts = noImpacts{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Stop == nil {
		deps.Stop = (*HitStop)(nil)
	}
	if deps.Running == nil {
		deps.Running = func() bool { return true }
	}
	if powers == nil {
		powers = DefaultPowers()
	}
	return &Projectiles{
		cfg:     cfg,
		powers:  powers,
		clock:   deps.Clock,
		world:   deps.World,
		phys:    deps.Physics,
		stop:    deps.Stop,
		impacts: deps.Impacts,
		running: deps.Running,
		log:     deps.Logger,
	}
}

// Register adds fighters that projectiles can hit.
func (p *Projectiles) Register(fs ...*fighter.Fighter) {
	p.fighters = append(p.fighters, fs...)
}

func (p *Projectiles) SetLogger(log *zap.Logger) {
	if log != nil {
		p.log = log
	}
}

func (p *Projectiles) OnHit(fn func(Hit)) {
	p.onHit = fn
}

// Power returns the definition for id.
func (p *Projectiles) Power(id fighter.PowerID) (Power, bool) {
	pw, ok := p.powers[id]
	return pw, ok
}

// Use casts power id. The caster plays the punch motion and the projectile
// appears CastDelay later, provided the caster still lives and the match is
// still running. It returns false while the power cools down.
func (p *Projectiles) Use(caster *fighter.Fighter, id fighter.PowerID, now time.Duration) bool {
	if caster == nil || caster.IsDead() {
		return false
	}
	power, ok := p.powers[id]
	if !ok || !caster.CanCast(id, now) {
		return false
	}
	caster.StartCooldown(id, now+power.Cooldown)
	caster.SetState(fighter.Punch, true)
	p.clock.After(p.cfg.CastDelay, "spawn_projectile",
		func() bool { return !caster.IsDead() && p.running() },
		func(time.Duration) { p.Spawn(caster, id) })
	p.log.Debug("cast", zap.String("caster", caster.Name()), zap.String("power", string(id)))
	return true
}

// Spawn places a projectile in front of caster. An opponent already inside
// the launch point is hit almost immediately instead of waiting for overlap.
func (p *Projectiles) Spawn(caster *fighter.Fighter, id fighter.PowerID) (ecs.Entity, bool) {
	power, ok := p.powers[id]
	if !ok {
		return 0, false
	}
	x, y := caster.Position()
	dir := float64(caster.Facing())
	width := p.cfg.ProjectileSpan * power.Scale
	body := p.phys.AddProjectile(x+power.OffsetX*dir, y+power.OffsetY, width, width/2, power.Speed*dir)

	e := ecs.CreateEntity(p.world)
	proj := &component.Projectile{
		Owner:   caster.Entity(),
		Power:   string(id),
		Element: caster.Element(),
		Damage:  power.Damage,
		Scale:   power.Scale,
		Body:    body,
		Active:  true,
	}
	if err := ecs.Add(p.world, e, component.ProjectileComponent.Kind(), proj); err != nil {
		p.phys.Remove(body)
		p.log.Error("spawn projectile", zap.Error(err))
		return 0, false
	}
	if err := ecs.Add(p.world, e, component.TTLComponent.Kind(), &component.TTL{Remaining: p.cfg.ProjectileTTL}); err != nil {
		p.log.Error("projectile ttl", zap.Object("entity", e), zap.Error(err))
	}
	if err := ecs.Add(p.world, e, component.FadeComponent.Kind(), &component.Fade{Duration: p.cfg.ProjectileFade}); err != nil {
		p.log.Error("projectile fade", zap.Object("entity", e), zap.Error(err))
	}

	if target := p.opponent(caster); target != nil && !target.IsDead() {
		tx, ty := target.Position()
		dx := tx - x
		toward := dx != 0 && common.Sign(dx) == dir
		adx, ady := math.Abs(dx), math.Abs(ty-y)
		if ady < p.cfg.VerticalTolerance && ((toward && adx < math.Abs(power.OffsetX)+p.cfg.SpawnMargin) || adx < p.cfg.SpawnMargin) {
			p.clock.After(p.cfg.PointBlankDelay, "point_blank_hit",
				func() bool { _, live := p.active(e); return live && !target.IsDead() },
				func(time.Duration) { p.HandleHit(target, e) })
		}
	}
	return e, true
}

// HandleHit applies projectile e to target. The caster is never hit by its
// own projectile, and a projectile lands at most once.
func (p *Projectiles) HandleHit(target *fighter.Fighter, e ecs.Entity) bool {
	proj, ok := p.active(e)
	if !ok || target == nil || target.IsDead() || proj.Owner == target.Entity() {
		return false
	}
	dmg := target.TakeDamage(proj.Damage)

	x, y := proj.Body.Position()
	p.impacts.Impact(x, y, 100*proj.Scale, proj.Element)
	p.impacts.Shake(p.cfg.ImpactShake, float64(proj.Damage)/p.cfg.ImpactShakeDiv)
	if p.onHit != nil {
		p.onHit(Hit{Attacker: p.owner(proj.Owner), Target: target, Source: proj.Power, Damage: dmg})
	}
	p.destroy(e)
	return true
}

// Update checks live projectiles against fighters. Nothing moves while the
// world is in hit-stop, so nothing is checked either.
func (p *Projectiles) Update(w *ecs.World) {
	if p.stop.Active() {
		return
	}
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(e ecs.Entity, proj *component.Projectile) {
		if !proj.Active {
			return
		}
		for _, f := range p.fighters {
			if f.Entity() == proj.Owner || f.IsDead() {
				continue
			}
			if overlaps(proj.Body, f) {
				p.HandleHit(f, e)
				return
			}
		}
	})
}

// Release frees the physics body of a projectile entity that is being
// destroyed by something else.
func (p *Projectiles) Release(w *ecs.World, e ecs.Entity) {
	if proj, ok := ecs.Get(w, e, component.ProjectileComponent.Kind()); ok {
		proj.Active = false
		p.phys.Remove(proj.Body)
	}
	ecs.DestroyEntity(w, e)
}

// Clear removes every projectile.
func (p *Projectiles) Clear() {
	ecs.ForEach(p.world, component.ProjectileComponent.Kind(), func(e ecs.Entity, _ *component.Projectile) {
		p.destroy(e)
	})
}

// Count returns the number of live projectiles.
func (p *Projectiles) Count() int {
	return ecs.Count(p.world, component.ProjectileComponent.Kind())
}

func (p *Projectiles) destroy(e ecs.Entity) {
	p.Release(p.world, e)
}

func (p *Projectiles) active(e ecs.Entity) (*component.Projectile, bool) {
	proj, ok := ecs.Get(p.world, e, component.ProjectileComponent.Kind())
	if !ok || !proj.Active {
		return nil, false
	}
	return proj, true
}

func (p *Projectiles) opponent(of *fighter.Fighter) *fighter.Fighter {
	for _, f := range p.fighters {
		if f != of {
			return f
		}
	}
	return nil
}

func (p *Projectiles) owner(id uint64) *fighter.Fighter {
	for _, f := range p.fighters {
		if f.Entity() == id {
			return f
		}
	}
	return nil
}

func overlaps(b *physics.Body, f *fighter.Fighter) bool {
	body := f.Body()
	if b == nil || b.Removed() || body == nil {
		return false
	}
	fx, fy := body.Position()
	fw, fh := body.Extents()
	return b.Bounds().Intersects(cp.NewBBForExtents(cp.Vector{X: fx, Y: fy}, fw, fh))
}
