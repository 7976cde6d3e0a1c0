package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/brawler/anim"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/fighter"
	"github.com/milk9111/brawler/match"
	"github.com/milk9111/brawler/prefabs"
	"github.com/milk9111/brawler/skeleton"
)

const (
	skeletonScale = 0.42

	barWidth  = 300
	barHeight = 18
	barMargin = 20
)

var (
	backgroundColor = color.RGBA{R: 0x14, G: 0x14, B: 0x1c, A: 0xff}
	groundColor     = color.RGBA{R: 0x2a, G: 0x2a, B: 0x30, A: 0xff}
	barBackColor    = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	staminaColor    = color.RGBA{R: 0x33, G: 0x99, B: 0xff, A: 0xff}
	readyColor      = color.RGBA{R: 0x33, G: 0xcc, B: 0x66, A: 0xff}
	coolingColor    = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	textColor       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var powerKeys = map[fighter.PowerID]string{
	fighter.PowerBall:  "Q",
	fighter.PowerArrow: "W",
	fighter.PowerSpell: "E",
}

// Renderer draws the arena, both skeletons, powers, and the HUD.
type Renderer struct {
	face    text.Face
	palette prefabs.Palette
	colors  map[string]color.RGBA
	rng     *rand.Rand
	rig     skeleton.Rig
}

func NewRenderer(b *prefabs.Bundle) *Renderer {
	r := &Renderer{
		face:    text.NewGoXFace(basicfont.Face7x13),
		palette: b.Roster.Palette(),
		colors:  make(map[string]color.RGBA, len(b.Roster.Characters)),
		rng:     rand.New(rand.NewPCG(1, 2)),
		rig:     skeleton.Rig{Scale: skeletonScale},
	}
	for _, ch := range b.Roster.Characters {
		r.colors[ch.ID] = ch.Color.RGBA8(textColor)
	}
	return r
}

func (r *Renderer) Draw(screen *ebiten.Image, m *match.Match) {
	screen.Fill(backgroundColor)

	ox, oy := r.shakeOffset(m)
	arena := m.Physics().Arena()
	top := arena.GroundTop()
	vector.FillRect(screen, float32(ox), float32(top+oy), float32(arena.Width), float32(arena.GroundHeight), groundColor, false)

	w := m.World()
	r.drawProjectiles(screen, w, ox, oy)
	r.drawFighter(screen, w, m.Enemy(), top, ox, oy)
	r.drawFighter(screen, w, m.Player(), top, ox, oy)
	r.drawSparks(screen, w, ox, oy)

	r.drawHUD(screen, m.HUD(), arena.Width)
}

// shakeOffset jitters the world by up to intensity times the view size.
func (r *Renderer) shakeOffset(m *match.Match) (float64, float64) {
	s, ok := m.Shake()
	if !ok {
		return 0, 0
	}
	a := m.Physics().Arena()
	return (r.rng.Float64()*2 - 1) * s.Intensity * a.Width, (r.rng.Float64()*2 - 1) * s.Intensity * a.Height
}

func (r *Renderer) drawFighter(screen *ebiten.Image, w *ecs.World, f *fighter.Fighter, groundTop, ox, oy float64) {
	x, y := f.Position()
	_, hh := f.Body().Extents()
	clr := r.colors[f.Character()]
	if t, ok := ecs.Get(w, ecs.Entity(f.Entity()), component.TintComponent.Kind()); ok {
		clr = t.Color
	}

	shadow := 100 * skeletonScale
	vector.FillRect(screen, float32(x-shadow/2+ox), float32(groundTop-3+oy), float32(shadow), 4, color.RGBA{A: 0x40}, false)

	var pose anim.Pose
	if a := f.Animator(); a != nil {
		pose = a.Pose()
	}
	hips := r.rig.Hips(y+hh, pose)
	r.rig.Draw(screen, x+ox, hips+oy, pose, float64(f.Facing()), clr)
}

func (r *Renderer) drawProjectiles(screen *ebiten.Image, w *ecs.World, ox, oy float64) {
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(e ecs.Entity, p *component.Projectile) {
		if p.Body == nil || p.Body.Removed() {
			return
		}
		alpha := 1.0
		if f, ok := ecs.Get(w, e, component.FadeComponent.Kind()); ok {
			alpha = f.Alpha()
		}
		x, y := p.Body.Position()
		_, hh := p.Body.Extents()
		glow := withAlpha(r.palette.Glow[p.Element], 0.35*alpha)
		core := withAlpha(r.palette.Glow[p.Element], alpha)
		vector.FillCircle(screen, float32(x+ox), float32(y+oy), float32(hh*1.6), glow, true)
		vector.FillCircle(screen, float32(x+ox), float32(y+oy), float32(hh), core, true)
	})
}

func (r *Renderer) drawSparks(screen *ebiten.Image, w *ecs.World, ox, oy float64) {
	ecs.ForEach(w, component.ImpactSparkComponent.Kind(), func(_ ecs.Entity, s *component.ImpactSpark) {
		t := s.Progress()
		clr := withAlpha(r.palette.Spark[s.Element], 1-t)
		vector.StrokeCircle(screen, float32(s.X+ox), float32(s.Y+oy), float32(s.Radius*(0.3+0.7*t)), 3, clr, true)
	})
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	a = math.Max(0, math.Min(1, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, h match.HUD, width float64) {
	r.drawPanel(screen, h.Fighters[match.SlotPlayer], barMargin, false)
	r.drawPanel(screen, h.Fighters[match.SlotEnemy], width-barMargin-barWidth, true)

	r.text(screen, fmt.Sprintf("%d", h.Timer), width/2, barMargin, 3, textColor, true)
	if h.Round > 0 && (h.Wins[0] > 0 || h.Wins[1] > 0) {
		r.text(screen, fmt.Sprintf("%d - %d", h.Wins[0], h.Wins[1]), width/2, barMargin+44, 1, textColor, true)
	}
	if h.Banner != "" {
		r.text(screen, h.Banner, width/2, 220, 4, textColor, true)
	}
}

func (r *Renderer) drawPanel(screen *ebiten.Image, f match.FighterHUD, x float64, right bool) {
	r.text(screen, f.Label, x, barMargin-16, 1, textColor, false)
	vector.FillRect(screen, float32(x), barMargin, barWidth, barHeight, barBackColor, false)
	fill := barWidth * f.Health / 100
	fx := x
	if right {
		fx = x + barWidth - fill
	}
	vector.FillRect(screen, float32(fx), barMargin, float32(fill), barHeight, f.HealthColor, false)
	vector.StrokeRect(screen, float32(x), barMargin, barWidth, barHeight, 2, textColor, false)

	y := float64(barMargin + barHeight + 4)
	if f.StaminaShown {
		vector.FillRect(screen, float32(x), float32(y), float32(barWidth*f.Stamina/100), 5, staminaColor, false)
		y += 9
	}
	r.text(screen, f.Element, x, y, 1, textColor, false)

	for i, cd := range f.Cooldowns {
		px := x + float64(i)*26
		clr := coolingColor
		if cd.Ready {
			clr = readyColor
		}
		vector.FillRect(screen, float32(px), float32(y+16), 22, 22, clr, false)
		r.text(screen, powerKeys[cd.Power], px+11, y+20, 1, textColor, true)
	}
}

func (r *Renderer) text(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color, centered bool) {
	op := &text.DrawOptions{}
	if centered {
		w, _ := text.Measure(s, r.face, 0)
		x -= w * scale / 2
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}
