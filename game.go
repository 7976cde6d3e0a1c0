package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/milk9111/brawler/ai"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/config"
	"github.com/milk9111/brawler/match"
	"github.com/milk9111/brawler/prefabs"
)

type Game struct {
	cfg   config.Config
	log   *zap.Logger
	debug bool

	bundle  *prefabs.Bundle
	policy  ai.Policy
	watcher *prefabs.Watcher

	input    *Input
	renderer *Renderer
	menu     *Menu

	setup     match.Setup
	match     *match.Match
	lastEvent string
}

func NewGame(cfg config.Config, log *zap.Logger, debug bool) (*Game, error) {
	bundle, err := loadBundle(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := loadPolicy(cfg.AI, bundle, log)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		log:      log,
		debug:    debug,
		bundle:   bundle,
		policy:   policy,
		input:    NewInput(),
		renderer: NewRenderer(bundle),
		setup: match.Setup{
			Character:  match.DefaultCharacter,
			Difficulty: ai.DifficultyOrDefault(cfg.Match.Difficulty),
		},
	}
	if cfg.Prefabs.Watch {
		w, err := prefabs.WatchDir(cfg.Prefabs.Dir)
		if err != nil {
			log.Warn("prefab watcher disabled", zap.String("dir", cfg.Prefabs.Dir), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	g.menu = NewMenu(g)
	return g, nil
}

// loadBundle builds the prefabs and lays the config overrides on top.
func loadBundle(cfg config.Config) (*prefabs.Bundle, error) {
	b, err := prefabs.LoadBundle()
	if err != nil {
		return nil, err
	}
	b.Stats.BlockFactor = cfg.Combat.BlockFactor
	b.Stats.DeathDelay = cfg.Match.DeathDelay
	b.Stats.Stamina.Enabled = cfg.Stamina.Enabled
	if cfg.Stamina.Enabled {
		b.Stats.Stamina.Max = cfg.Stamina.Max
		b.Stats.Stamina.Drain = cfg.Stamina.Drain
		b.Stats.Stamina.Regen = cfg.Stamina.Regen
	}
	return b, nil
}

func loadPolicy(cfg config.AIConfig, b *prefabs.Bundle, log *zap.Logger) (ai.Policy, error) {
	if cfg.Script == "" {
		return ai.DefaultPolicy{}, nil
	}
	src := b.AIScript
	if cfg.Script != prefabs.AIScriptFile {
		var err error
		if src, err = prefabs.LoadScript(cfg.Script); err != nil {
			return nil, err
		}
	}
	p, err := ai.NewScriptPolicy(src, log)
	if err != nil {
		return nil, fmt.Errorf("ai script %s: %w", cfg.Script, err)
	}
	return p, nil
}

func combatConfig(cfg config.CombatConfig) combat.Config {
	c := combat.DefaultConfig()
	c.HitDelay = cfg.HitDelay
	c.HitStop = cfg.HitStop
	c.KnockbackX = cfg.KnockbackX
	c.KnockbackY = cfg.KnockbackY
	c.PointBlank = cfg.PointBlank
	c.VerticalTolerance = cfg.VerticalTolerance
	return c
}

// startMatch begins a match with the current menu choices.
func (g *Game) startMatch() error {
	m, err := match.New(match.Options{
		Setup:       g.setup,
		Bundle:      g.bundle,
		Combat:      combatConfig(g.cfg.Combat),
		Arena:       match.DefaultArena(),
		Duration:    g.cfg.Match.Duration,
		RoundsToWin: g.cfg.Match.RoundsToWin,
		Tick:        time.Second / time.Duration(g.cfg.Match.TickRate),
		Seed:        g.cfg.Match.Seed,
		Policy:      g.policy,
		Logger:      g.log,
	})
	if err != nil {
		return err
	}
	g.match = m
	return nil
}

// backToMenu drops the match; the menu keeps the previous choices.
func (g *Game) backToMenu() {
	g.match = nil
	g.menu.Refresh()
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		g.log.Warn("prefab watcher", zap.Error(err))
	default:
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	b, err := loadBundle(g.cfg)
	if err != nil {
		g.log.Warn("prefab reload failed", zap.Strings("files", changed), zap.Error(err))
		return
	}
	p, err := loadPolicy(g.cfg.AI, b, g.log)
	if err != nil {
		g.log.Warn("ai script reload failed", zap.Strings("files", changed), zap.Error(err))
		return
	}
	g.bundle, g.policy = b, p
	g.renderer = NewRenderer(b)
	g.menu = NewMenu(g)
	g.log.Info("prefabs reloaded", zap.Strings("files", changed))
}

func (g *Game) Update() error {
	g.reloadPrefabs()
	g.input.Update()

	switch {
	case g.match == nil:
		g.menu.start.Update()
	case g.match.State().Over():
		g.match.Update(match.PlayerInput{})
		g.menu.Refresh()
		g.menu.over.Update()
	default:
		if g.input.PausePressed {
			g.match.TogglePause()
		}
		if g.match.Paused() {
			g.menu.pause.Update()
			return nil
		}
		g.match.Update(g.input.Player())
	}
	g.noteEvents()
	return nil
}

// noteEvents keeps the latest hit or round result for the debug line.
func (g *Game) noteEvents() {
	if g.match == nil {
		return
	}
	for _, evt := range g.match.Events() {
		switch data := evt.Data.(type) {
		case combat.Hit:
			g.lastEvent = fmt.Sprintf("%s %s -> %s (%d)", evt.Type, data.Source, data.Target.Name(), data.Damage.Applied)
		case match.Outcome:
			g.lastEvent = fmt.Sprintf("%s %s", evt.Type, data)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.match == nil {
		screen.Fill(backgroundColor)
		g.menu.start.Draw(screen)
		return
	}
	g.renderer.Draw(screen, g.match)
	switch {
	case g.match.State().Over():
		g.menu.over.Draw(screen)
	case g.match.Paused():
		g.menu.pause.Draw(screen)
	}

	if g.debug {
		p, e := g.match.Player(), g.match.Enemy()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  player: %s  enemy: %s  bot: %s\n%s",
			ebiten.ActualFPS(), p.State(), e.State(), g.match.Bot().Behavior(), g.lastEvent))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
