package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ClipsSpec struct {
	Clips []ClipSpec `yaml:"clips"`
}

// ClipSpec is one animation clip. Durations are milliseconds. Frames and
// Rate, when both set, fix the clip length to Frames/Rate seconds.
type ClipSpec struct {
	Name      string         `yaml:"name"`
	Loop      bool           `yaml:"loop"`
	Blend     int            `yaml:"blend"`
	Ease      string         `yaml:"ease"`
	Frames    int            `yaml:"frames"`
	Rate      float64        `yaml:"rate"`
	Keyframes []KeyframeSpec `yaml:"keyframes"`
}

type KeyframeSpec struct {
	Duration int                `yaml:"duration"`
	Pose     map[string]float64 `yaml:"pose"`
}

// ClipTiming overrides the sprite timing of one clip for one character.
type ClipTiming struct {
	Frames int     `yaml:"frames"`
	Rate   float64 `yaml:"rate"`
}

type PowersSpec struct {
	Powers []PowerSpec `yaml:"powers"`
}

type PowerSpec struct {
	ID       string  `yaml:"id"`
	Speed    float64 `yaml:"speed"`
	Damage   int     `yaml:"damage"`
	Cooldown int     `yaml:"cooldown"`
	Scale    float64 `yaml:"scale"`
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
}

type RosterSpec struct {
	Characters []CharacterSpec `yaml:"characters"`
	Elements   []ElementSpec   `yaml:"elements"`
}

type CharacterSpec struct {
	ID    string                `yaml:"id"`
	Name  string                `yaml:"name"`
	Color *YAMLColor            `yaml:"color"`
	Clips map[string]ClipTiming `yaml:"clips"`
}

type ElementSpec struct {
	ID       string     `yaml:"id"`
	Opposite string     `yaml:"opposite"`
	Glow     *YAMLColor `yaml:"glow"`
	Spark    *YAMLColor `yaml:"spark"`
}

type DifficultySpec struct {
	Default string                 `yaml:"default"`
	Presets map[string]ProfileSpec `yaml:"presets"`
}

type ProfileSpec struct {
	ThinkMin    int     `yaml:"think_min"`
	ThinkMax    int     `yaml:"think_max"`
	BlockChance float64 `yaml:"block_chance"`
	AttackDelay int     `yaml:"attack_delay"`
	PowerChance float64 `yaml:"power_chance"`
	ChaseChance float64 `yaml:"chase_chance"`
}

type StatsSpec struct {
	WalkSpeed      float64     `yaml:"walk_speed"`
	RunSpeed       float64     `yaml:"run_speed"`
	JumpForce      float64     `yaml:"jump_force"`
	Acceleration   float64     `yaml:"acceleration"`
	Drag           float64     `yaml:"drag"`
	MaxVelocityY   float64     `yaml:"max_velocity_y"`
	AttackCooldown int         `yaml:"attack_cooldown"`
	PunchDamage    int         `yaml:"punch_damage"`
	KickDamage     int         `yaml:"kick_damage"`
	HitDistance    float64     `yaml:"hit_distance"`
	MaxHealth      int         `yaml:"max_health"`
	RunAfter       int         `yaml:"run_after"`
	RunMinSpeed    float64     `yaml:"run_min_speed"`
	StopSpeed      float64     `yaml:"stop_speed"`
	BlockFactor    float64     `yaml:"block_factor"`
	DeathDelay     int         `yaml:"death_delay"`
	Stamina        StaminaSpec `yaml:"stamina"`
}

type StaminaSpec struct {
	Max      float64 `yaml:"max"`
	Drain    float64 `yaml:"drain"`
	Regen    float64 `yaml:"regen"`
	BlockMin float64 `yaml:"block_min"`
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the color as color.RGBA, or fallback when unset.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
