// Package match runs one game: two fighters, the bot, the round timer,
// and the rounds themselves.
package match

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milk9111/brawler/ai"
	"github.com/milk9111/brawler/anim"
	"github.com/milk9111/brawler/clock"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/fighter"
	"github.com/milk9111/brawler/physics"
	"github.com/milk9111/brawler/prefabs"
)

const (
	SpawnPlayerX = 200.0
	SpawnEnemyX  = 600.0
	SpawnY       = 450.0
	BodyWidth    = 40.0
	BodyHeight   = 90.0

	// OutOfBoundsY is the depth below which a fighter is killed.
	OutOfBoundsY = 600.0
	LethalDamage = 999

	DefaultDuration = 99 * time.Second
	DefaultTick     = time.Second / 60

	roundBreak  = 1500 * time.Millisecond
	roundBanner = 1500 * time.Millisecond
	fightBanner = 800 * time.Millisecond
)

// Event types pushed onto the world queue.
const (
	EventHit       = "hit"
	EventRoundOver = "round_over"
)

var ErrNoBundle = errors.New("match: no prefab bundle")

// DefaultArena is the 800x600 stage with its ground strip.
func DefaultArena() physics.Arena {
	return physics.Arena{Width: 800, Height: 600, GroundY: 570, GroundHeight: 40, Gravity: 1500}
}

type Options struct {
	Setup  Setup
	Bundle *prefabs.Bundle
	Combat combat.Config
	Arena  physics.Arena
	// Duration is the round timer. Zero means DefaultDuration.
	Duration    time.Duration
	RoundsToWin int
	Tick        time.Duration
	// Seed drives the enemy pick and the bot. Zero seeds from the wall clock.
	Seed   uint64
	Policy ai.Policy
	Logger *zap.Logger
}

// Match owns both fighters and everything they act through.
type Match struct {
	opts    Options
	log     *zap.Logger
	clock   *clock.Clock
	world   *ecs.World
	phys    *physics.World
	stop    *combat.HitStop
	melee   *combat.Resolver
	ranged  *combat.Projectiles
	arsenal combat.Arsenal
	systems *ecs.Scheduler
	fx      *effects

	player *fighter.Fighter
	enemy  *fighter.Fighter
	bot    *ai.Engine
	labels [2]string

	state  MatchState
	paused bool
}

// New builds a match from the start-menu setup and starts round one.
func New(opts Options) (*Match, error) {
	if opts.Bundle == nil {
		return nil, ErrNoBundle
	}
	if err := opts.Setup.Validate(opts.Bundle.Roster); err != nil {
		return nil, err
	}
	opts = withDefaults(opts)

	rng := ai.NewSource(opts.Seed)
	opp, err := PickOpponent(opts.Bundle.Roster, opts.Setup, rng)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	m := &Match{
		opts:  opts,
		log:   opts.Logger.With(zap.String("match_id", id.String())),
		clock: clock.New(),
		world: ecs.NewWorld(),
		phys:  physics.NewWorld(opts.Arena),
		state: MatchState{ID: id},
	}
	m.stop = combat.NewHitStop(m.clock, opts.Combat.HitStop)
	m.fx = newEffects(m.world, opts.Combat.ImpactSpark, m.log)
	m.melee = combat.NewResolver(opts.Combat, m.clock, m.stop, m.log)
	m.ranged = combat.NewProjectiles(opts.Combat, opts.Bundle.Powers, combat.ProjectileDeps{
		Clock:   m.clock,
		World:   m.world,
		Physics: m.phys,
		Stop:    m.stop,
		Impacts: m.fx,
		Running: func() bool { return m.state.Phase == PhaseFighting },
		Logger:  m.log,
	})
	m.arsenal = combat.Arsenal{Melee: m.melee, Ranged: m.ranged}

	setup := opts.Setup
	if m.player, err = m.newFighter(SlotPlayer, "player", setup.character(), strings.ToLower(setup.Element), SpawnPlayerX, 1); err != nil {
		return nil, err
	}
	if m.enemy, err = m.newFighter(SlotEnemy, "enemy", opp.Character, opp.Element, SpawnEnemyX, -1); err != nil {
		return nil, err
	}
	m.ranged.Register(m.player, m.enemy)
	m.melee.OnHit(m.logHit)
	m.ranged.OnHit(m.logHit)

	m.bot = ai.NewEngine(m.enemy, m.player, m.arsenal, ai.Options{
		Profile: opts.Bundle.Profile(setup.Difficulty),
		Policy:  opts.Policy,
		Source:  rng,
		Logger:  m.log,
	})
	m.labels[SlotPlayer] = m.label(setup.character())
	m.labels[SlotEnemy] = fmt.Sprintf("%s (%s)", m.label(opp.Character), setup.Difficulty)

	m.systems = ecs.NewScheduler(
		ecs.SystemFunc(m.checkBounds),
		m.ranged,
		combat.NewLifetimeSystem(opts.Tick, m.ranged.Release),
		NewEffectSystem(opts.Tick),
	)

	m.log.Info("match created",
		zap.String("player", setup.character()),
		zap.String("enemy", opp.Character),
		zap.String("element", m.player.Element()),
		zap.Stringer("difficulty", setup.Difficulty),
		zap.Int("rounds_to_win", opts.RoundsToWin),
	)
	m.startRound(1)
	return m, nil
}

func withDefaults(opts Options) Options {
	if opts.Combat == (combat.Config{}) {
		opts.Combat = combat.DefaultConfig()
	}
	if opts.Arena == (physics.Arena{}) {
		opts.Arena = DefaultArena()
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.RoundsToWin <= 0 {
		opts.RoundsToWin = 1
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func (m *Match) newFighter(slot int, name, character, element string, x float64, facing int) (*fighter.Fighter, error) {
	lib, ok := m.opts.Bundle.Libraries[character]
	if !ok {
		return nil, fmt.Errorf("match: no clips for %s: %w", character, ErrUnknownCharacter)
	}
	stats := m.opts.Bundle.Stats

	e := ecs.CreateEntity(m.world)
	if err := ecs.Add(m.world, e, component.FighterTagComponent.Kind(), &component.FighterTag{Slot: slot}); err != nil {
		return nil, fmt.Errorf("match: tag %s: %w", name, err)
	}
	body := m.phys.AddFighter(physics.BodySpec{
		X:      x,
		Y:      SpawnY,
		Width:  BodyWidth,
		Height: BodyHeight,
		DragX:  stats.Drag,
		MaxVX:  stats.WalkSpeed,
		MaxVY:  stats.MaxVelocityY,
	})
	f := fighter.New(fighter.Config{
		Name:      name,
		Character: character,
		Element:   element,
		Entity:    uint64(e),
		SpawnX:    x,
		SpawnY:    SpawnY,
		Facing:    facing,
	}, fighter.Deps{
		Body:     body,
		Animator: anim.NewAnimator(lib),
		Clock:    m.clock,
		Effects:  m.fx,
		Logger:   m.log,
	}, stats)
	f.OnDeath(m.onDeath)
	return f, nil
}

func (m *Match) label(character string) string {
	if ch, err := m.opts.Bundle.Roster.Character(character); err == nil && ch.Name != "" {
		return ch.Name
	}
	return character
}

// Update runs one fixed tick.
func (m *Match) Update(in PlayerInput) {
	if m.paused {
		return
	}
	m.clock.Advance(m.opts.Tick)
	now := m.clock.Now()
	m.checkTimer(now)

	if m.state.Phase == PhaseFighting {
		m.bot.Update(now)
		m.handleInput(in, now)
	}
	if !m.stop.Active() {
		m.phys.Step(m.opts.Tick.Seconds())
	}
	m.clock.RunDue()
	m.systems.Update(m.world)

	if !m.stop.Active() {
		m.player.Animate(m.opts.Tick)
		m.enemy.Animate(m.opts.Tick)
	}
	m.player.UpdateStamina(m.opts.Tick)
	m.enemy.UpdateStamina(m.opts.Tick)
}

// checkTimer counts the round down once per second while both fighters
// live. At zero the fighter with less health is finished off, or both
// when tied.
func (m *Match) checkTimer(now time.Duration) {
	s := &m.state
	if s.Phase != PhaseFighting || s.Timer <= 0 || now <= s.lastTimerTick+time.Second {
		return
	}
	if m.player.IsDead() || m.enemy.IsDead() {
		return
	}
	s.Timer--
	s.lastTimerTick = now
	if s.Timer > 0 {
		return
	}
	ph, eh := m.player.Health(), m.enemy.Health()
	m.log.Info("time up", zap.Int("player_health", ph), zap.Int("enemy_health", eh))
	if ph <= eh {
		m.player.TakeDamage(LethalDamage)
	}
	if eh <= ph {
		m.enemy.TakeDamage(LethalDamage)
	}
}

// checkBounds finishes off a fighter that fell out of the arena.
func (m *Match) checkBounds(*ecs.World) {
	for _, f := range []*fighter.Fighter{m.player, m.enemy} {
		if _, y := f.Position(); y > OutOfBoundsY && !f.IsDead() {
			m.log.Info("out of bounds", zap.String("fighter", f.Name()), zap.Float64("y", y))
			f.TakeDamage(LethalDamage)
		}
	}
}

// onDeath runs DeathDelay after a fighter died. The first one to fire
// decides the round.
func (m *Match) onDeath(f *fighter.Fighter) {
	if m.state.Phase != PhaseFighting {
		return
	}
	out := OutcomeWon
	switch {
	case m.player.IsDead() && m.enemy.IsDead():
		out = OutcomeDraw
	case f == m.player:
		out = OutcomeLost
	}
	m.endRound(out)
}

func (m *Match) endRound(out Outcome) {
	s := &m.state
	s.RoundOutcome = out
	switch out {
	case OutcomeWon:
		s.Wins[SlotPlayer]++
	case OutcomeLost:
		s.Wins[SlotEnemy]++
	}

	final := OutcomeNone
	switch {
	case m.opts.RoundsToWin == 1:
		final = out
	case s.Wins[SlotPlayer] >= m.opts.RoundsToWin:
		final = OutcomeWon
	case s.Wins[SlotEnemy] >= m.opts.RoundsToWin:
		final = OutcomeLost
	}
	m.world.Events().Push(ecs.Event{Type: EventRoundOver, Data: out})
	m.log.Info("round over",
		zap.Int("round", s.Round),
		zap.String("outcome", string(out)),
		zap.Int("player_wins", s.Wins[SlotPlayer]),
		zap.Int("enemy_wins", s.Wins[SlotEnemy]),
	)

	if final != OutcomeNone {
		s.Phase = PhaseOver
		s.Outcome = final
		s.Banner = string(final)
		m.log.Info("match over", zap.String("outcome", string(final)))
		return
	}
	s.Phase = PhaseIntro
	s.Banner = string(out)
	next := s.Round + 1
	m.clock.After(roundBreak, "next_round", nil, func(time.Duration) {
		m.startRound(next)
	})
}

// startRound resets both fighters and, in a multi-round match, plays the
// ROUND n / FIGHT! intro before handing over control.
func (m *Match) startRound(n int) {
	m.resetRound()
	s := &m.state
	s.Round = n
	s.Timer = int(m.opts.Duration / time.Second)
	s.RoundOutcome = OutcomeNone

	if m.opts.RoundsToWin == 1 {
		m.fight(m.clock.Now())
		return
	}
	s.Phase = PhaseIntro
	s.Banner = fmt.Sprintf("ROUND %d", n)
	m.clock.After(roundBanner, "round_banner", nil, func(time.Duration) {
		s.Banner = "FIGHT!"
		m.clock.After(fightBanner, "fight", nil, m.fight)
	})
}

func (m *Match) fight(now time.Duration) {
	m.state.Phase = PhaseFighting
	m.state.Banner = ""
	m.state.lastTimerTick = now
	m.log.Info("fight", zap.Int("round", m.state.Round))
}

func (m *Match) resetRound() {
	m.melee.Reset()
	m.ranged.Clear()
	m.stop.Reset()
	m.fx.clear()
	m.player.Reset()
	m.enemy.Reset()
	m.bot.Reset()
}

// setLogger hands a logger carrying the current match id to every part
// of the match that logs.
func (m *Match) setLogger(log *zap.Logger) {
	m.log = log
	m.fx.log = log
	m.melee.SetLogger(log)
	m.ranged.SetLogger(log)
	m.bot.SetLogger(log)
	m.player.SetLogger(log)
	m.enemy.SetLogger(log)
}

// Restart replays the match from round one with the same fighters.
func (m *Match) Restart() {
	m.clock.Reset()
	m.paused = false
	m.state = MatchState{ID: uuid.New()}
	m.setLogger(m.opts.Logger.With(zap.String("match_id", m.state.ID.String())))
	m.log.Info("match restarted")
	m.startRound(1)
}

func (m *Match) logHit(h combat.Hit) {
	m.world.Events().Push(ecs.Event{Type: EventHit, Data: h})
	m.log.Debug("hit",
		zap.String("target", h.Target.Name()),
		zap.String("source", h.Source),
		zap.Int("damage", h.Damage.Applied),
		zap.Bool("blocked", h.Damage.Blocked),
	)
}

// Events drains the hits and round results queued since the last call.
func (m *Match) Events() []ecs.Event {
	return m.world.Events().Drain()
}

// TogglePause freezes or resumes the whole match, clock included.
func (m *Match) TogglePause() bool {
	if m.state.Phase == PhaseOver {
		return m.paused
	}
	m.paused = !m.paused
	return m.paused
}

func (m *Match) Paused() bool                     { return m.paused }
func (m *Match) State() MatchState                { return m.state }
func (m *Match) Player() *fighter.Fighter         { return m.player }
func (m *Match) Enemy() *fighter.Fighter          { return m.enemy }
func (m *Match) Bot() *ai.Engine                  { return m.bot }
func (m *Match) Clock() *clock.Clock              { return m.clock }
func (m *Match) World() *ecs.World                { return m.world }
func (m *Match) Physics() *physics.World          { return m.phys }
func (m *Match) Projectiles() *combat.Projectiles { return m.ranged }
func (m *Match) HitStop() *combat.HitStop         { return m.stop }

// Shake returns the camera shake in effect, if any.
func (m *Match) Shake() (component.CameraShakeRequest, bool) {
	return m.fx.shake()
}
