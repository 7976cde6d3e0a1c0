package match

import (
	"time"

	"github.com/milk9111/brawler/fighter"
)

// PlayerInput is one tick of player controls. Held keys are flags; keys
// that went down this tick are listed in Pressed.
type PlayerInput struct {
	Left    bool
	Right   bool
	Block   bool
	Pressed []fighter.Action
}

// Direction returns -1, 0 or 1 from the held movement keys. Left wins when
// both are held.
func (in PlayerInput) Direction() int {
	switch {
	case in.Left:
		return -1
	case in.Right:
		return 1
	}
	return 0
}

func (m *Match) handleInput(in PlayerInput, now time.Duration) {
	p := m.player
	if p.IsDead() || p.State() == fighter.Hurt {
		return
	}
	for _, a := range in.Pressed {
		p.BufferInput(a, now)
	}
	onGround := p.Grounded()

	switch p.State() {
	case fighter.Punch, fighter.Kick:
		return
	case fighter.Shield:
		if in.Block {
			return
		}
		p.ReleaseBlock()
	}

	if in.Block && onGround && p.Block() {
		return
	}

	if a, ok := p.ConsumeBuffer(now); ok {
		if id, isPower := a.Power(); isPower {
			m.arsenal.UsePower(p, id, now)
			return
		}
		switch a {
		case fighter.ActionPunch, fighter.ActionKick:
			if p.CanAttack(now) {
				state := fighter.Punch
				if a == fighter.ActionKick {
					state = fighter.Kick
				}
				m.arsenal.PerformAttack(p, m.enemy, state, p.Stats().Damage(state), now)
				return
			}
		case fighter.ActionJump:
			if onGround {
				p.Jump()
			}
		}
	}

	p.Drive(in.Direction(), now)
}
