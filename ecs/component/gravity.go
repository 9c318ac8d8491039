package component

// Gravity is a per-body downward acceleration in pixels per second squared.
// The physics space itself has no gravity.
type Gravity struct {
	Rate float64
}

var GravityComponent = NewComponent[Gravity]()
