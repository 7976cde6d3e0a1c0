package ai

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownDifficulty = errors.New("ai: unknown difficulty")

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "EASY"
	case Medium:
		return "MEDIUM"
	case Hard:
		return "HARD"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// Difficulties lists the presets in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty accepts a preset name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EASY":
		return Easy, nil
	case "MEDIUM":
		return Medium, nil
	case "HARD":
		return Hard, nil
	}
	return Hard, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// DifficultyOrDefault parses s and falls back to Hard.
func DifficultyOrDefault(s string) Difficulty {
	d, err := ParseDifficulty(s)
	if err != nil {
		return Hard
	}
	return d
}

// Profile tunes how the bot reacts.
type Profile struct {
	ThinkMin    time.Duration
	ThinkMax    time.Duration
	BlockChance float64
	AttackDelay time.Duration
	PowerChance float64
	ChaseChance float64
}

// Profile returns the preset for d. Unknown values get Hard.
func (d Difficulty) Profile() Profile {
	switch d {
	case Easy:
		return Profile{
			ThinkMin:    800 * time.Millisecond,
			ThinkMax:    1500 * time.Millisecond,
			BlockChance: 0.1,
			AttackDelay: 1200 * time.Millisecond,
			PowerChance: 0.3,
			ChaseChance: 0.4,
		}
	case Medium:
		return Profile{
			ThinkMin:    500 * time.Millisecond,
			ThinkMax:    1000 * time.Millisecond,
			BlockChance: 0.4,
			AttackDelay: 800 * time.Millisecond,
			PowerChance: 0.5,
			ChaseChance: 0.5,
		}
	}
	return Profile{
		ThinkMin:    300 * time.Millisecond,
		ThinkMax:    800 * time.Millisecond,
		BlockChance: 0.7,
		AttackDelay: 400 * time.Millisecond,
		PowerChance: 0.7,
		ChaseChance: 0.6,
	}
}

// Validate checks that the chances are probabilities and the think window
// is ordered.
func (p Profile) Validate() error {
	var errs []error
	if p.ThinkMin < 0 || p.ThinkMax < p.ThinkMin {
		errs = append(errs, fmt.Errorf("think window %s..%s", p.ThinkMin, p.ThinkMax))
	}
	for name, v := range map[string]float64{"block": p.BlockChance, "power": p.PowerChance, "chase": p.ChaseChance} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s chance %v outside [0,1]", name, v))
		}
	}
	if p.AttackDelay < 0 {
		errs = append(errs, fmt.Errorf("attack delay %s", p.AttackDelay))
	}
	return errors.Join(errs...)
}
