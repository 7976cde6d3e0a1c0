package match

import (
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/milk9111/brawler/fighter"
)

// CooldownHUD is one power pip.
type CooldownHUD struct {
	Power fighter.PowerID
	Ready bool
}

// FighterHUD is the panel of one fighter.
type FighterHUD struct {
	Label        string
	Element      string
	Health       float64
	HealthColor  color.RGBA
	Stamina      float64
	StaminaShown bool
	Cooldowns    []CooldownHUD
	State        fighter.State
}

// HUD is everything the overlay draws, taken after each tick.
type HUD struct {
	Phase    Phase
	Timer    int
	Round    int
	Wins     [2]int
	Banner   string
	Outcome  Outcome
	Paused   bool
	Fighters [2]FighterHUD
}

// HealthColor fades from green at 100% through yellow at 50% to red at 0.
func HealthColor(pct float64) color.RGBA {
	pct = math.Max(0, math.Min(100, pct))
	if pct > 50 {
		r := math.Floor(255 * (1 - (pct-50)/50))
		return color.RGBA{R: uint8(r), G: 0xff, A: 0xff}
	}
	g := math.Floor(255 * (pct / 50))
	return color.RGBA{R: 0xff, G: uint8(g), A: 0xff}
}

// HUD returns the overlay snapshot for the current tick.
func (m *Match) HUD() HUD {
	now := m.clock.Now()
	h := HUD{
		Phase:   m.state.Phase,
		Timer:   m.state.Timer,
		Round:   m.state.Round,
		Wins:    m.state.Wins,
		Banner:  m.state.Banner,
		Outcome: m.state.Outcome,
		Paused:  m.paused,
	}
	h.Fighters[SlotPlayer] = m.fighterHUD(m.player, m.labels[SlotPlayer], now)
	h.Fighters[SlotEnemy] = m.fighterHUD(m.enemy, m.labels[SlotEnemy], now)
	return h
}

func (m *Match) fighterHUD(f *fighter.Fighter, label string, now time.Duration) FighterHUD {
	pct := f.HealthPercent()
	fh := FighterHUD{
		Label:        label,
		Element:      "ELEMENT: " + strings.ToUpper(f.Element()),
		Health:       pct,
		HealthColor:  HealthColor(pct),
		Stamina:      f.StaminaPercent(),
		StaminaShown: f.Stats().Stamina.Enabled,
		State:        f.State(),
	}
	for _, id := range fighter.Powers() {
		fh.Cooldowns = append(fh.Cooldowns, CooldownHUD{Power: id, Ready: f.CanCast(id, now)})
	}
	return fh
}
