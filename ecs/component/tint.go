package component

import (
	"image/color"
	"time"
)

// Tint colors a fighter's skeleton for a short time after a hit.
type Tint struct {
	Color     color.RGBA
	Remaining time.Duration
}

var TintComponent = NewComponent[Tint]("tint")
