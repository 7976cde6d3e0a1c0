package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// QuadInOut eases t in [0,1] with quadratic acceleration and deceleration.
func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// SmoothStep is the cubic Hermite curve t*t*(3-2t).
func SmoothStep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// Approach moves v toward zero by step without crossing it.
func Approach(v, step float64) float64 {
	if v > 0 {
		return math.Max(0, v-step)
	}
	return math.Min(0, v+step)
}
