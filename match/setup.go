package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/brawler/ai"
	"github.com/milk9111/brawler/prefabs"
)

// NoElementMessage is what the start menu shows when Fight is pressed
// before an element was picked.
const NoElementMessage = "Please select an element first!"

var (
	ErrNoElement        = errors.New(NoElementMessage)
	ErrUnknownCharacter = prefabs.ErrUnknownCharacter
	ErrUnknownElement   = prefabs.ErrUnknownElement
)

// DefaultCharacter is used when the menu never picked one.
const DefaultCharacter = "Player1"

// Setup is what the player chose on the start menu.
type Setup struct {
	Character  string
	Element    string
	Difficulty ai.Difficulty
}

// Validate checks the choices against the roster.
func (s Setup) Validate(roster prefabs.RosterSpec) error {
	if strings.TrimSpace(s.Element) == "" {
		return ErrNoElement
	}
	if _, err := roster.Character(s.character()); err != nil {
		return err
	}
	if _, err := roster.Element(strings.ToLower(s.Element)); err != nil {
		return err
	}
	return nil
}

func (s Setup) character() string {
	if s.Character == "" {
		return DefaultCharacter
	}
	return s.Character
}

// Opponent is the enemy's character and element.
type Opponent struct {
	Character string
	Element   string
}

// PickOpponent draws the enemy among the characters the player did not
// take. The enemy element is the opposite of the player's.
func PickOpponent(roster prefabs.RosterSpec, s Setup, rng ai.Source) (Opponent, error) {
	if err := s.Validate(roster); err != nil {
		return Opponent{}, err
	}
	var rest []string
	for _, id := range roster.CharacterIDs() {
		if id != s.character() {
			rest = append(rest, id)
		}
	}
	if len(rest) == 0 {
		return Opponent{}, fmt.Errorf("match: no opponent for %s: %w", s.character(), ErrUnknownCharacter)
	}
	el, err := roster.Element(strings.ToLower(s.Element))
	if err != nil {
		return Opponent{}, err
	}
	opposite := el.Opposite
	if opposite == "" {
		opposite = el.ID
	}
	return Opponent{Character: rest[rng.IntN(len(rest))], Element: opposite}, nil
}
