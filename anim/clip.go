package anim

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// DefaultBlend is the cross-fade used when a clip does not set its own.
const DefaultBlend = 200 * time.Millisecond

var ErrEmptyClip = errors.New("anim: clip has no keyframes")

type Easing int

const (
	EaseQuadInOut Easing = iota
	EaseLinear
)

type Keyframe struct {
	Duration time.Duration
	Pose     Pose
}

// Clip is an immutable keyframe sequence shared by every fighter.
type Clip struct {
	name      string
	keyframes []Keyframe
	loop      bool
	blend     time.Duration
	ease      Easing
}

// ClipOptions configures NewClip.
type ClipOptions struct {
	Loop  bool
	Blend time.Duration
	Ease  Easing
	// Length, when set, rescales keyframe durations to fill exactly this
	// long. Sprite timing (frames / rate) is expressed this way.
	Length time.Duration
}

func NewClip(name string, keyframes []Keyframe, opts ClipOptions) (*Clip, error) {
	if len(keyframes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyClip, name)
	}
	var total time.Duration
	for i, kf := range keyframes {
		if kf.Duration <= 0 {
			return nil, fmt.Errorf("anim: clip %s keyframe %d: duration must be positive", name, i)
		}
		total += kf.Duration
	}
	frames := append([]Keyframe(nil), keyframes...)
	if opts.Length > 0 && opts.Length != total {
		scale := float64(opts.Length) / float64(total)
		var used time.Duration
		for i := range frames {
			if i == len(frames)-1 {
				frames[i].Duration = opts.Length - used
				break
			}
			d := time.Duration(float64(frames[i].Duration) * scale)
			if d <= 0 {
				d = time.Millisecond
			}
			frames[i].Duration = d
			used += d
		}
		if frames[len(frames)-1].Duration <= 0 {
			return nil, fmt.Errorf("anim: clip %s: length %s too short for %d keyframes", name, opts.Length, len(frames))
		}
	}
	blend := opts.Blend
	if blend == 0 {
		blend = DefaultBlend
	}
	return &Clip{name: name, keyframes: frames, loop: opts.Loop, blend: blend, ease: opts.Ease}, nil
}

func (c *Clip) Name() string            { return c.name }
func (c *Clip) Loop() bool              { return c.loop }
func (c *Clip) Blend() time.Duration    { return c.blend }
func (c *Clip) Ease() Easing            { return c.ease }
func (c *Clip) Len() int                { return len(c.keyframes) }
func (c *Clip) Keyframe(i int) Keyframe { return c.keyframes[i] }

// Duration is the time one pass of the clip takes.
func (c *Clip) Duration() time.Duration {
	var total time.Duration
	for _, kf := range c.keyframes {
		total += kf.Duration
	}
	return total
}

// Library is a read-only set of clips keyed by name.
type Library struct {
	clips map[string]*Clip
}

func NewLibrary(clips ...*Clip) (*Library, error) {
	lib := &Library{clips: make(map[string]*Clip, len(clips))}
	for _, c := range clips {
		if c == nil {
			continue
		}
		if _, dup := lib.clips[c.name]; dup {
			return nil, fmt.Errorf("anim: duplicate clip %q", c.name)
		}
		lib.clips[c.name] = c
	}
	return lib, nil
}

func (l *Library) Clip(name string) (*Clip, bool) {
	if l == nil {
		return nil, false
	}
	c, ok := l.clips[name]
	return c, ok
}

// Names returns the clip names in sorted order.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.clips))
	for n := range l.clips {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
