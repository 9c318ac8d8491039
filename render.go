package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/flapper/assets"
	"github.com/milk9111/flapper/ecs"
	"github.com/milk9111/flapper/ecs/component"
)

// drawWorld draws every sprite as a flat rectangle. Obstacle pairs draw their
// upper and lower segments; a Tint replaces the sprite colour.
func drawWorld(w *ecs.World, screen *ebiten.Image, images *assets.Cache) {
	if w == nil || screen == nil {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		col := s.Color
		if tint, ok := ecs.Get(w, e, component.TintComponent.Kind()); ok {
			col = tint.Color
		}

		obstacle, ok := ecs.Get(w, e, component.ObstacleComponent.Kind())
		if !ok || obstacle.Pair == nil {
			drawRect(screen, images, t.X, t.Y, s.Width, s.Height, assets.OrDefault(col, assets.DefaultPlayer))
			return
		}

		col = assets.OrDefault(col, assets.DefaultObstacle)
		pair := obstacle.Pair
		length := obstacle.SegmentLength
		if length <= 0 {
			length = pair.UpperBottomY
		}
		drawRect(screen, images, t.X, pair.UpperBottomY-length, s.Width, length, col)
		drawRect(screen, images, t.X, pair.LowerTopY, s.Width, length, col)
	})
}

func drawRect(screen *ebiten.Image, images *assets.Cache, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(images.Solid(int(w), int(h), col), op)
}
