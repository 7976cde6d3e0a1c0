// Package skeleton draws a stick figure from an animation pose.
package skeleton

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/brawler/anim"
)

// Unscaled segment lengths.
const (
	LegLength  = 50
	ArmLength  = 40
	HipSocket  = 30
	Shoulder   = -35
	Neck       = -40
	HeadRadius = 16
	LimbWidth  = 11

	// Height runs from the hip joint to the soles of a straight leg.
	Height = HipSocket + 2*LegLength
)

// Rig draws poses at a fixed scale.
type Rig struct {
	Scale float64
}

// Hips returns the hip y that stands the feet on floorY.
func (r Rig) Hips(floorY float64, p anim.Pose) float64 {
	return floorY - Height*r.Scale + p.Get(anim.HipsY)*r.Scale
}

func (r Rig) joint(parent ebiten.GeoM, tx, ty, deg float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Rotate(deg * math.Pi / 180)
	g.Translate(tx*r.Scale, ty*r.Scale)
	g.Concat(parent)
	return g
}

func (r Rig) bone(screen *ebiten.Image, g ebiten.GeoM, length float64, clr color.Color) {
	w := float32(LimbWidth * r.Scale)
	x0, y0 := g.Apply(0, 0)
	x1, y1 := g.Apply(0, length*r.Scale)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), w, clr, true)
	vector.FillCircle(screen, float32(x1), float32(y1), w/2, clr, true)
}

func (r Rig) limb(screen *ebiten.Image, socket ebiten.GeoM, upper, lower, length, dir float64, clr color.Color) {
	u := r.joint(socket, 0, 0, upper*dir)
	r.bone(screen, u, length, clr)
	r.bone(screen, r.joint(u, 0, length, lower*dir), length, clr)
}

// Draw renders p with the hips at x, y. A negative dir mirrors every
// rotation so the figure faces left. Back limbs go first and the front arm
// last.
func (r Rig) Draw(screen *ebiten.Image, x, y float64, p anim.Pose, dir float64, clr color.Color) {
	var root ebiten.GeoM
	root.Translate(x, y)
	w := float32(LimbWidth * r.Scale)

	r.limb(screen, r.joint(root, 0, HipSocket, 0), p.Get(anim.LLegU), p.Get(anim.LLegL), LegLength, dir, clr)

	torso := r.joint(root, 0, 0, p.Get(anim.Torso)*dir)
	x0, y0 := torso.Apply(0, HipSocket*r.Scale)
	x1, y1 := torso.Apply(0, Neck*r.Scale)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), w, clr, true)

	neck := r.joint(torso, 0, Neck, p.Get(anim.Head)*dir)
	hx, hy := neck.Apply(0, -18*r.Scale)
	vector.FillCircle(screen, float32(hx), float32(hy), float32(HeadRadius*r.Scale), clr, true)

	r.limb(screen, r.joint(torso, 0, Shoulder, 0), p.Get(anim.LArmU), p.Get(anim.LArmL), ArmLength, dir, clr)
	r.limb(screen, r.joint(root, 0, HipSocket, 0), p.Get(anim.RLegU), p.Get(anim.RLegL), LegLength, dir, clr)
	r.limb(screen, r.joint(torso, 0, Shoulder, 0), p.Get(anim.RArmU), p.Get(anim.RArmL), ArmLength, dir, clr)
}
