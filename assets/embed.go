package assets

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// Fallbacks for prefabs that leave a colour unset.
var (
	DefaultBackground = colornames.Skyblue
	DefaultPlayer     = colornames.Gold
	DefaultObstacle   = colornames.Forestgreen
)

type solidKey struct {
	w, h int
	c    color.RGBA
}

// Cache hands out flat-colour images, generating each size and colour once.
type Cache struct {
	images map[solidKey]*ebiten.Image
}

func NewCache() *Cache {
	return &Cache{images: make(map[solidKey]*ebiten.Image)}
}

// Solid returns a w x h image filled with c. Non-positive sizes are clamped
// to one pixel.
func (c *Cache) Solid(w, h int, col color.RGBA) *ebiten.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	key := solidKey{w: w, h: h, c: col}
	if img, ok := c.images[key]; ok {
		return img
	}
	img := ebiten.NewImage(w, h)
	img.Fill(col)
	c.images[key] = img
	return img
}

// OrDefault returns col unless it is the zero colour.
func OrDefault(col, fallback color.RGBA) color.RGBA {
	if col == (color.RGBA{}) {
		return fallback
	}
	return col
}
