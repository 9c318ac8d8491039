package component

import "github.com/milk9111/flapper/course"

// Obstacle binds an entity to one pair of the obstacle pool. The pair is
// shared with the course stream, so placements made there are seen here.
type Obstacle struct {
	Pair  *course.Pair
	Index int
	// SegmentLength is how far each segment extends away from the gap.
	SegmentLength float64
}

var ObstacleComponent = NewComponent[Obstacle]()
