package fighter

// Action is a discrete input that goes through the input buffer.
type Action int

const (
	ActionNone Action = iota
	ActionPunch
	ActionKick
	ActionJump
	ActionBall
	ActionArrow
	ActionSpell
)

func (a Action) String() string {
	switch a {
	case ActionPunch:
		return "punch"
	case ActionKick:
		return "kick"
	case ActionJump:
		return "jump"
	case ActionBall:
		return "ball"
	case ActionArrow:
		return "arrow"
	case ActionSpell:
		return "spell"
	}
	return "none"
}

// PowerID names a ranged power.
type PowerID string

const (
	PowerBall  PowerID = "ball"
	PowerArrow PowerID = "arrow"
	PowerSpell PowerID = "spell"
)

// Powers lists the powers in HUD order.
func Powers() []PowerID {
	return []PowerID{PowerBall, PowerArrow, PowerSpell}
}

// Power returns the power an action casts, if any.
func (a Action) Power() (PowerID, bool) {
	switch a {
	case ActionBall:
		return PowerBall, true
	case ActionArrow:
		return PowerArrow, true
	case ActionSpell:
		return PowerSpell, true
	}
	return "", false
}
