package component

import "github.com/milk9111/brawler/physics"

// Projectile is a moving power hazard. Owner is the caster's entity handle
// and is only used for identity; the projectile never keeps the caster alive.
type Projectile struct {
	Owner   uint64
	Power   string
	Element string
	Damage  int
	Scale   float64
	Body    *physics.Body
	Active  bool
}

var ProjectileComponent = NewComponent[Projectile]("projectile")
