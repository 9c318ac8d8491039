package system

import (
	"github.com/milk9111/flapper/ecs"
	"github.com/milk9111/flapper/ecs/component"
)

// BoundarySystem reports players that hit the floor or rose more than their
// own height above the ceiling.
type BoundarySystem struct{}

func NewBoundarySystem() *BoundarySystem { return &BoundarySystem{} }

func (s *BoundarySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	areaEntity, ok := w.First(component.PlayAreaComponent.Kind())
	if !ok {
		return
	}
	area, ok := ecs.Get(w, areaEntity, component.PlayAreaComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform, b *component.PhysicsBody) {
		floor := t.Y+b.Height >= area.Height
		ceiling := t.Y <= -b.Height
		if !floor && !ceiling {
			return
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventBoundary,
			Data: ecs.BoundaryEvent{Entity: e, Floor: floor},
		})
	})
}
