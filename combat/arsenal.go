package combat

import (
	"time"

	"github.com/milk9111/brawler/fighter"
)

// Arsenal bundles melee and ranged attacks behind one value.
type Arsenal struct {
	Melee  *Resolver
	Ranged *Projectiles
}

func (a Arsenal) PerformAttack(attacker, target *fighter.Fighter, state fighter.State, damage int, now time.Duration) bool {
	return a.Melee.PerformAttack(attacker, target, state, damage, now)
}

func (a Arsenal) UsePower(caster *fighter.Fighter, id fighter.PowerID, now time.Duration) bool {
	return a.Ranged.Use(caster, id, now)
}
