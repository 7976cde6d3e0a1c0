package component

import "time"

// ImpactSpark is the expanding glow left where a projectile hit.
type ImpactSpark struct {
	X, Y     float64
	Radius   float64
	Element  string
	Duration time.Duration
	Elapsed  time.Duration
}

// Progress returns 0 at spawn and 1 when the spark is gone.
func (s *ImpactSpark) Progress() float64 {
	if s == nil || s.Duration <= 0 {
		return 1
	}
	p := float64(s.Elapsed) / float64(s.Duration)
	if p > 1 {
		return 1
	}
	return p
}

var ImpactSparkComponent = NewComponent[ImpactSpark]("impact_spark")
