package anim

import (
	"fmt"

	"github.com/milk9111/brawler/common"
)

// Joint names one scalar of a skeleton pose. Angles are in degrees; HipsY is
// a vertical offset in pixels.
type Joint int

const (
	HipsY Joint = iota
	Torso
	Head
	LArmU
	LArmL
	RArmU
	RArmL
	LLegU
	LLegL
	RLegU
	RLegL
	NumJoints
)

var jointNames = [NumJoints]string{
	"hipsY", "torso", "head",
	"lArmU", "lArmL", "rArmU", "rArmL",
	"lLegU", "lLegL", "rLegU", "rLegL",
}

func (j Joint) String() string {
	if j < 0 || j >= NumJoints {
		return fmt.Sprintf("Joint(%d)", int(j))
	}
	return jointNames[j]
}

// ParseJoint maps a joint name to its Joint.
func ParseJoint(name string) (Joint, bool) {
	for i, n := range jointNames {
		if n == name {
			return Joint(i), true
		}
	}
	return 0, false
}

// Pose is a full set of joint values. It is an array so assignment copies
// it; the zero Pose is the rest pose.
type Pose [NumJoints]float64

func (p Pose) Get(j Joint) float64 {
	return p[j]
}

// With returns a copy of p with j set to v.
func (p Pose) With(j Joint, v float64) Pose {
	p[j] = v
	return p
}

// LerpPose interpolates every joint from a toward b.
func LerpPose(a, b Pose, t float64) Pose {
	var out Pose
	for i := range out {
		out[i] = common.Lerp(a[i], b[i], t)
	}
	return out
}

// PoseFromMap builds a pose from joint names; missing joints stay zero.
func PoseFromMap(m map[string]float64) (Pose, error) {
	var p Pose
	for name, v := range m {
		j, ok := ParseJoint(name)
		if !ok {
			return Pose{}, fmt.Errorf("anim: unknown joint %q", name)
		}
		p[j] = v
	}
	return p, nil
}
