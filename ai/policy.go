package ai

const (
	// AttackRange is the distance under which the bot stops to fight.
	AttackRange = 70.0
	// ThreatRange is how close an attacking opponent must be to consider
	// blocking.
	ThreatRange = 120.0
	castShare   = 0.3
)

// Situation is what the bot sees when it thinks.
type Situation struct {
	Distance          float64
	OpponentAttacking bool
	SelfHealth        float64
	OpponentHealth    float64
}

// Policy picks a behavior from a situation and one uniform roll in [0,1).
type Policy interface {
	Decide(s Situation, p Profile, roll float64) Behavior
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(s Situation, p Profile, roll float64) Behavior

func (f PolicyFunc) Decide(s Situation, p Profile, roll float64) Behavior {
	return f(s, p, roll)
}

// DefaultPolicy blocks a nearby attack with BlockChance, fights in range,
// and otherwise chases, casts, or waits.
type DefaultPolicy struct{}

func (DefaultPolicy) Decide(s Situation, p Profile, roll float64) Behavior {
	if s.OpponentAttacking && s.Distance < ThreatRange {
		if roll < p.BlockChance {
			return Blocking
		}
		return Idle
	}
	switch {
	case s.Distance < AttackRange:
		return Attacking
	case roll < p.ChaseChance:
		return Chasing
	case roll < p.ChaseChance+castShare:
		return Casting
	}
	return Idle
}
