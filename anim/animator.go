package anim

import (
	"time"

	"github.com/milk9111/brawler/common"
)

// Completion reports that a non-looping clip reached its end. PlayID tells
// apart two plays of the same clip.
type Completion struct {
	Clip   string
	PlayID uint64
}

// Animator advances one fighter's current clip and cross-fades into new
// clips from a snapshot of the pose shown when the switch happened.
type Animator struct {
	lib    *Library
	clip   *Clip
	playID uint64

	frame     int
	frameTime time.Duration
	done      bool

	blending      bool
	blendTimer    time.Duration
	blendDuration time.Duration
	snapshot      Pose

	pose Pose
}

func NewAnimator(lib *Library) *Animator {
	return &Animator{lib: lib}
}

// Play switches to the named clip. Replaying the current clip is ignored
// unless force is set. It returns the play id of the clip now running and
// whether a new play started.
func (a *Animator) Play(name string, force bool) (uint64, bool) {
	if a.clip != nil && a.clip.name == name && !force {
		return a.playID, false
	}
	clip, ok := a.lib.Clip(name)
	if !ok {
		return a.playID, false
	}

	a.snapshot = a.pose
	a.blendTimer = 0
	a.blendDuration = clip.blend
	a.blending = a.blendDuration > 0

	a.clip = clip
	a.playID++
	a.frame = 0
	a.frameTime = 0
	a.done = false
	return a.playID, true
}

// Update advances by dt and recomputes the pose. A completion is returned
// once, on the update where a non-looping clip ends.
func (a *Animator) Update(dt time.Duration) (Completion, bool) {
	if a.clip == nil {
		return Completion{}, false
	}
	var (
		completion Completion
		completed  bool
	)
	n := len(a.clip.keyframes)
	if !a.done {
		a.frameTime += dt
		for a.frameTime >= a.clip.keyframes[a.frame].Duration {
			a.frameTime -= a.clip.keyframes[a.frame].Duration
			a.frame++
			if a.frame < n {
				continue
			}
			if a.clip.loop {
				a.frame = 0
				continue
			}
			a.frame = n - 1
			a.frameTime = a.clip.keyframes[a.frame].Duration
			a.done = true
			completion = Completion{Clip: a.clip.name, PlayID: a.playID}
			completed = true
			break
		}
	}

	target := a.target()
	if a.blending {
		a.blendTimer += dt
		pct := float64(a.blendTimer) / float64(a.blendDuration)
		if pct >= 1 {
			a.blending = false
			a.pose = target
		} else {
			a.pose = LerpPose(a.snapshot, target, common.SmoothStep(pct))
		}
	} else {
		a.pose = target
	}
	return completion, completed
}

func (a *Animator) target() Pose {
	kfs := a.clip.keyframes
	cur := kfs[a.frame]
	next := cur.Pose
	switch {
	case a.clip.loop:
		next = kfs[(a.frame+1)%len(kfs)].Pose
	case a.frame < len(kfs)-1:
		next = kfs[a.frame+1].Pose
	}
	progress := common.Clamp(float64(a.frameTime)/float64(cur.Duration), 0, 1)
	if a.clip.ease == EaseQuadInOut {
		progress = common.QuadInOut(progress)
	}
	return LerpPose(cur.Pose, next, progress)
}

// Pose returns a copy of the current pose.
func (a *Animator) Pose() Pose {
	return a.pose
}

// Current returns the name of the running clip.
func (a *Animator) Current() string {
	if a.clip == nil {
		return ""
	}
	return a.clip.name
}

func (a *Animator) PlayID() uint64 {
	return a.playID
}

// Frame returns the index of the keyframe being played.
func (a *Animator) Frame() int {
	return a.frame
}

// Done reports whether a non-looping clip is holding its last frame.
func (a *Animator) Done() bool {
	return a.done
}

// Blending reports whether a cross-fade is in progress.
func (a *Animator) Blending() bool {
	return a.blending
}
