package component

import "image/color"

// Tint overrides the sprite colour. It marks the player as damaged once the
// round is over.
type Tint struct {
	Color color.RGBA
}

var TintComponent = NewComponent[Tint]()
