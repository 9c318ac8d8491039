package system

import (
	"github.com/milk9111/flapper/ecs"
	"github.com/milk9111/flapper/round"
)

// RoundEndSystem drains collision and boundary events and ends the round on
// the first one. It must run after physics and the boundary check.
type RoundEndSystem struct {
	round *round.Round
}

func NewRoundEndSystem(r *round.Round) *RoundEndSystem {
	return &RoundEndSystem{round: r}
}

func (s *RoundEndSystem) Update(w *ecs.World) {
	if s == nil || s.round == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventCollision:
			s.round.End(round.ReasonCollision)
		case ecs.EventBoundary:
			s.round.End(round.ReasonBoundary)
		}
	}
}
