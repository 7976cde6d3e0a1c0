package prefabs

import (
	"github.com/milk9111/brawler/ai"
	"github.com/milk9111/brawler/anim"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/fighter"
)

const (
	ClipsFile      = "clips.yaml"
	PowersFile     = "powers.yaml"
	RosterFile     = "roster.yaml"
	DifficultyFile = "difficulty.yaml"
	StatsFile      = "stats.yaml"
	AIScriptFile   = "ai.tengo"
)

// Bundle is every piece of game data a match needs.
type Bundle struct {
	Roster            RosterSpec
	Libraries         map[string]*anim.Library
	Powers            map[fighter.PowerID]combat.Power
	Profiles          map[ai.Difficulty]ai.Profile
	DefaultDifficulty ai.Difficulty
	Stats             fighter.Stats
	AIScript          []byte
}

// LoadBundle loads and builds all prefabs.
func LoadBundle() (*Bundle, error) {
	roster, err := LoadSpec[RosterSpec](RosterFile)
	if err != nil {
		return nil, err
	}
	clips, err := LoadSpec[ClipsSpec](ClipsFile)
	if err != nil {
		return nil, err
	}
	powersSpec, err := LoadSpec[PowersSpec](PowersFile)
	if err != nil {
		return nil, err
	}
	diffSpec, err := LoadSpec[DifficultySpec](DifficultyFile)
	if err != nil {
		return nil, err
	}
	statsSpec, err := LoadSpec[StatsSpec](StatsFile)
	if err != nil {
		return nil, err
	}
	script, err := LoadScript(AIScriptFile)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		Roster:            roster,
		Libraries:         make(map[string]*anim.Library, len(roster.Characters)),
		Stats:             BuildStats(statsSpec),
		AIScript:          script,
		DefaultDifficulty: ai.DifficultyOrDefault(diffSpec.Default),
	}
	for _, ch := range roster.Characters {
		lib, err := BuildLibrary(clips, ch)
		if err != nil {
			return nil, err
		}
		b.Libraries[ch.ID] = lib
	}
	if b.Powers, err = BuildPowers(powersSpec); err != nil {
		return nil, err
	}
	if b.Profiles, err = BuildProfiles(diffSpec); err != nil {
		return nil, err
	}
	return b, nil
}

// Profile returns the preset for d.
func (b *Bundle) Profile(d ai.Difficulty) ai.Profile {
	if p, ok := b.Profiles[d]; ok {
		return p
	}
	return d.Profile()
}
