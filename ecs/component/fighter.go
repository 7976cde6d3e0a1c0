package component

// FighterTag marks the entity that stands in for a fighter in the world.
// Slot 0 is the player and slot 1 the opponent.
type FighterTag struct {
	Slot int
}

var FighterTagComponent = NewComponent[FighterTag]("fighter_tag")
