package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/brawler/fighter"
	"github.com/milk9111/brawler/match"
)

// actionKeys maps keys that feed the input buffer.
var actionKeys = []struct {
	key    ebiten.Key
	action fighter.Action
}{
	{ebiten.KeyJ, fighter.ActionPunch},
	{ebiten.KeyK, fighter.ActionKick},
	{ebiten.KeySpace, fighter.ActionJump},
	{ebiten.KeyQ, fighter.ActionBall},
	{ebiten.KeyW, fighter.ActionArrow},
	{ebiten.KeyE, fighter.ActionSpell},
}

// Input polls the keyboard once per tick.
type Input struct {
	player match.PlayerInput
	// PausePressed is true on the tick P or Escape went down.
	PausePressed bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	p := match.PlayerInput{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Block: ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	}
	for _, k := range actionKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			p.Pressed = append(p.Pressed, k.action)
		}
	}
	// Up arrow jumps too.
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		p.Pressed = append(p.Pressed, fighter.ActionJump)
	}
	i.player = p
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// Player returns this tick's fighter controls.
func (i *Input) Player() match.PlayerInput {
	return i.player
}
