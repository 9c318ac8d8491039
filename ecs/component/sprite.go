package component

import "image/color"

// Sprite is a flat-coloured rectangle drawn at the entity transform.
type Sprite struct {
	Width  float64
	Height float64
	Color  color.RGBA
}

var SpriteComponent = NewComponent[Sprite]()
