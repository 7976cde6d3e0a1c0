package component

import "time"

// TTL counts down match time. When it runs out the entity is destroyed, or
// starts fading if it also carries a Fade.
type TTL struct {
	Remaining time.Duration
}

var TTLComponent = NewComponent[TTL]("ttl")

// Fade runs after TTL expiry. Alpha goes from 1 to 0 over Duration.
type Fade struct {
	Duration time.Duration
	Elapsed  time.Duration
	Started  bool
}

// Alpha returns the current opacity.
func (f *Fade) Alpha() float64 {
	if f == nil || !f.Started || f.Duration <= 0 {
		return 1
	}
	a := 1 - float64(f.Elapsed)/float64(f.Duration)
	if a < 0 {
		return 0
	}
	return a
}

var FadeComponent = NewComponent[Fade]("fade")
