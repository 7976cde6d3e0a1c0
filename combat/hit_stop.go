package combat

import (
	"time"

	"github.com/milk9111/brawler/clock"
)

// Freezer pauses the world for a landed hit.
type Freezer interface {
	Active() bool
	Freeze(resume func())
}

// HitStop is the global freeze applied on a landed melee hit. While active,
// physics and animation do not advance. Overlapping freezes nest.
type HitStop struct {
	clock    *clock.Clock
	duration time.Duration
	depth    int
	epoch    int
}

func NewHitStop(clk *clock.Clock, duration time.Duration) *HitStop {
	return &HitStop{clock: clk, duration: duration}
}

// Active reports whether the world is frozen.
func (h *HitStop) Active() bool {
	return h != nil && h.depth > 0
}

// Freeze pauses the world and runs resume once the freeze ends.
func (h *HitStop) Freeze(resume func()) {
	if h == nil {
		return
	}
	h.depth++
	epoch := h.epoch
	h.clock.After(h.duration, "hit_stop_resume", func() bool { return epoch == h.epoch }, func(time.Duration) {
		if h.depth > 0 {
			h.depth--
		}
		if resume != nil {
			resume()
		}
	})
}

// Reset clears any freeze. Resumes still queued are dropped.
func (h *HitStop) Reset() {
	if h == nil {
		return
	}
	h.depth = 0
	h.epoch++
}
