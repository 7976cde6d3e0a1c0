package match

import (
	"time"

	"github.com/google/uuid"
)

// Phase is where a match stands.
type Phase int

const (
	// PhaseIntro shows the round banner; input is ignored.
	PhaseIntro Phase = iota
	PhaseFighting
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseFighting:
		return "fighting"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// Outcome is the game-over text, always from the player's side.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeDraw Outcome = "DRAW"
	OutcomeWon  Outcome = "YOU WON"
	OutcomeLost Outcome = "YOU LOST"
)

// Slots of the two fighters.
const (
	SlotPlayer = 0
	SlotEnemy  = 1
)

// MatchState holds every match-wide value.
type MatchState struct {
	ID      uuid.UUID
	Phase   Phase
	Round   int
	Timer   int
	Outcome Outcome
	// RoundOutcome is how the latest round ended.
	RoundOutcome Outcome
	Wins         [2]int
	Banner       string

	lastTimerTick time.Duration
}

// Over reports whether the match has a final outcome.
func (s MatchState) Over() bool {
	return s.Phase == PhaseOver
}
