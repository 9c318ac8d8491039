package system

import (
	"github.com/milk9111/flapper/course"
	"github.com/milk9111/flapper/ecs"
)

// RecycleSystem hands pairs that scrolled past the left edge back to the
// front of the course. The physics system picks the new placement up on its
// next sync.
type RecycleSystem struct {
	stream *course.Stream

	recycled int
}

func NewRecycleSystem(stream *course.Stream) *RecycleSystem {
	return &RecycleSystem{stream: stream}
}

func (s *RecycleSystem) Update(w *ecs.World) {
	if s == nil || s.stream == nil {
		return
	}
	s.recycled += len(s.stream.RecycleOffscreen())
}

// Recycled counts pairs recycled since the system was created.
func (s *RecycleSystem) Recycled() int {
	return s.recycled
}
