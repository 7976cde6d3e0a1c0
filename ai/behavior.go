package ai

import (
	"fmt"
	"strings"
)

// Behavior is what the bot commits to between thinks.
type Behavior int

const (
	Idle Behavior = iota
	Blocking
	Attacking
	Casting
	Chasing
)

var behaviorNames = [...]string{
	Idle:      "idle",
	Blocking:  "blocking",
	Attacking: "attacking",
	Casting:   "casting",
	Chasing:   "chasing",
}

func (b Behavior) String() string {
	if b < 0 || int(b) >= len(behaviorNames) {
		return fmt.Sprintf("Behavior(%d)", int(b))
	}
	return behaviorNames[b]
}

func ParseBehavior(s string) (Behavior, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range behaviorNames {
		if name == s {
			return Behavior(i), true
		}
	}
	return Idle, false
}
