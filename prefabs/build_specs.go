package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/milk9111/brawler/ai"
	"github.com/milk9111/brawler/anim"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/fighter"
)

var (
	ErrMissingClip      = errors.New("prefabs: missing clip")
	ErrUnknownPower     = errors.New("prefabs: unknown power")
	ErrUnknownCharacter = errors.New("prefabs: unknown character")
	ErrUnknownElement   = errors.New("prefabs: unknown element")
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// BuildLibrary builds the clip library of one character. Every fighter
// state needs a clip of the same name.
func BuildLibrary(spec ClipsSpec, ch CharacterSpec) (*anim.Library, error) {
	clips := make([]*anim.Clip, 0, len(spec.Clips))
	for _, cs := range spec.Clips {
		clip, err := buildClip(cs, ch.Clips[cs.Name])
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	lib, err := anim.NewLibrary(clips...)
	if err != nil {
		return nil, fmt.Errorf("prefabs: character %s: %w", ch.ID, err)
	}
	var errs []error
	for _, st := range fighter.AllStates() {
		if _, ok := lib.Clip(st.String()); !ok {
			errs = append(errs, fmt.Errorf("%w: %s for %s", ErrMissingClip, st, ch.ID))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return lib, nil
}

func buildClip(cs ClipSpec, override ClipTiming) (*anim.Clip, error) {
	frames := make([]anim.Keyframe, 0, len(cs.Keyframes))
	for i, kf := range cs.Keyframes {
		pose, err := anim.PoseFromMap(kf.Pose)
		if err != nil {
			return nil, fmt.Errorf("prefabs: clip %s keyframe %d: %w", cs.Name, i, err)
		}
		frames = append(frames, anim.Keyframe{Duration: ms(kf.Duration), Pose: pose})
	}

	ease := anim.EaseQuadInOut
	switch strings.ToLower(cs.Ease) {
	case "", "quad", "quad_in_out":
	case "linear":
		ease = anim.EaseLinear
	default:
		return nil, fmt.Errorf("prefabs: clip %s: unknown ease %q", cs.Name, cs.Ease)
	}

	n, rate := cs.Frames, cs.Rate
	if override.Frames > 0 {
		n = override.Frames
	}
	if override.Rate > 0 {
		rate = override.Rate
	}
	var length time.Duration
	if n > 0 && rate > 0 {
		length = time.Duration(float64(n) * float64(time.Second) / rate)
	}

	clip, err := anim.NewClip(cs.Name, frames, anim.ClipOptions{
		Loop:   cs.Loop,
		Blend:  ms(cs.Blend),
		Ease:   ease,
		Length: length,
	})
	if err != nil {
		return nil, fmt.Errorf("prefabs: %w", err)
	}
	return clip, nil
}

func BuildPowers(spec PowersSpec) (map[fighter.PowerID]combat.Power, error) {
	known := make(map[fighter.PowerID]bool)
	for _, id := range fighter.Powers() {
		known[id] = true
	}
	out := make(map[fighter.PowerID]combat.Power, len(spec.Powers))
	for _, ps := range spec.Powers {
		id := fighter.PowerID(ps.ID)
		if !known[id] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPower, ps.ID)
		}
		out[id] = combat.Power{
			ID:       id,
			Speed:    ps.Speed,
			Damage:   ps.Damage,
			Cooldown: ms(ps.Cooldown),
			Scale:    ps.Scale,
			OffsetX:  ps.OffsetX,
			OffsetY:  ps.OffsetY,
		}
	}
	for id := range known {
		if _, ok := out[id]; !ok {
			return nil, fmt.Errorf("%w: %s not defined", ErrUnknownPower, id)
		}
	}
	return out, nil
}

// BuildProfiles converts the presets. Missing presets keep the built-in
// values.
func BuildProfiles(spec DifficultySpec) (map[ai.Difficulty]ai.Profile, error) {
	out := make(map[ai.Difficulty]ai.Profile, len(ai.Difficulties()))
	for _, d := range ai.Difficulties() {
		out[d] = d.Profile()
	}
	for name, ps := range spec.Presets {
		d, err := ai.ParseDifficulty(name)
		if err != nil {
			return nil, fmt.Errorf("prefabs: difficulty.yaml: %w", err)
		}
		p := ai.Profile{
			ThinkMin:    ms(ps.ThinkMin),
			ThinkMax:    ms(ps.ThinkMax),
			BlockChance: ps.BlockChance,
			AttackDelay: ms(ps.AttackDelay),
			PowerChance: ps.PowerChance,
			ChaseChance: ps.ChaseChance,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("prefabs: difficulty %s: %w", d, err)
		}
		out[d] = p
	}
	return out, nil
}

func BuildStats(spec StatsSpec) fighter.Stats {
	return fighter.Stats{
		WalkSpeed:      spec.WalkSpeed,
		RunSpeed:       spec.RunSpeed,
		JumpForce:      spec.JumpForce,
		Acceleration:   spec.Acceleration,
		Drag:           spec.Drag,
		MaxVelocityY:   spec.MaxVelocityY,
		AttackCooldown: ms(spec.AttackCooldown),
		PunchDamage:    spec.PunchDamage,
		KickDamage:     spec.KickDamage,
		HitDistance:    spec.HitDistance,
		MaxHealth:      spec.MaxHealth,
		RunAfter:       ms(spec.RunAfter),
		RunMinSpeed:    spec.RunMinSpeed,
		StopSpeed:      spec.StopSpeed,
		BlockFactor:    spec.BlockFactor,
		DeathDelay:     ms(spec.DeathDelay),
		Stamina: fighter.StaminaStats{
			Max:      spec.Stamina.Max,
			Drain:    spec.Stamina.Drain,
			Regen:    spec.Stamina.Regen,
			BlockMin: spec.Stamina.BlockMin,
		},
	}
}

// Character returns the roster entry with id.
func (r RosterSpec) Character(id string) (CharacterSpec, error) {
	for _, c := range r.Characters {
		if c.ID == id {
			return c, nil
		}
	}
	return CharacterSpec{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, id)
}

func (r RosterSpec) Element(id string) (ElementSpec, error) {
	for _, e := range r.Elements {
		if e.ID == id {
			return e, nil
		}
	}
	return ElementSpec{}, fmt.Errorf("%w: %q", ErrUnknownElement, id)
}

// CharacterIDs lists the roster in order.
func (r RosterSpec) CharacterIDs() []string {
	ids := make([]string, 0, len(r.Characters))
	for _, c := range r.Characters {
		ids = append(ids, c.ID)
	}
	return ids
}

// Palette maps each element to its projectile glow and impact colors.
type Palette struct {
	Glow  map[string]color.RGBA
	Spark map[string]color.RGBA
}

func (r RosterSpec) Palette() Palette {
	p := Palette{Glow: map[string]color.RGBA{}, Spark: map[string]color.RGBA{}}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for _, e := range r.Elements {
		p.Glow[e.ID] = e.Glow.RGBA8(white)
		p.Spark[e.ID] = e.Spark.RGBA8(white)
	}
	return p
}
