package fighter

import "fmt"

// State is the discrete state of a fighter. Each state plays the clip of
// the same name.
type State int

const (
	Idle State = iota
	Walk
	Run
	Jump
	Punch
	Kick
	Shield
	Hurt
	Dead
)

var stateNames = [...]string{
	Idle:   "idle",
	Walk:   "walk",
	Run:    "run",
	Jump:   "jump",
	Punch:  "punch",
	Kick:   "kick",
	Shield: "shield",
	Hurt:   "hurt",
	Dead:   "dead",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Locked states ignore movement input until their clip completes.
func (s State) Locked() bool {
	return s == Punch || s == Kick || s == Hurt
}

// Attacking reports whether the state is a melee attack.
func (s State) Attacking() bool {
	return s == Punch || s == Kick
}

// AllStates lists every state; each needs a clip of the same name.
func AllStates() []State {
	return []State{Idle, Walk, Run, Jump, Punch, Kick, Shield, Hurt, Dead}
}
